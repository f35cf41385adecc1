package store

import (
	"fmt"

	"easy_pay/internal/domain"

	"gorm.io/gorm"
)

// AppendNotifications adds entries to users' feeds. Feeds are append-only.
func AppendNotifications(db *gorm.DB, notes ...domain.Notification) error {
	if len(notes) == 0 {
		return nil
	}
	if err := db.Create(&notes).Error; err != nil {
		return fmt.Errorf("append notifications: %w", err)
	}
	return nil
}
