package domain

import "time"

// Notification is one entry of a user's notification feed
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	Msg       string    `gorm:"type:text;not null" json:"msg"`
	CreatedAt time.Time `json:"-"`
}
