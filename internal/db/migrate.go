package db

import (
	"context" // Context for store operations
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"easy_pay/internal/config" // Custom package for configuration
	"easy_pay/internal/domain" // Importing domain models
	"easy_pay/internal/utils"  // PIN hashing

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.Notification{}, &domain.Transaction{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.")
	return nil
}

// EnsureAdmin creates the single admin account when none exists. An existing admin is left untouched.
func EnsureAdmin(ctx context.Context, db *gorm.DB, seed config.AdminSeed, bcryptCost int) (*domain.User, error) {
	var admin domain.User
	err := db.WithContext(ctx).Where("role = ?", domain.RoleAdmin).First(&admin).Error
	if err == nil {
		logrus.WithField("number", admin.Number).Info("Admin already present")
		return &admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if seed.Email == "" || seed.Number == "" || seed.NID == "" || seed.Pin == "" {
		return nil, errors.New("ADMIN_EMAIL, ADMIN_NUMBER, ADMIN_NID and ADMIN_PIN are required to seed the admin")
	}
	digest, err := utils.HashPin(seed.Pin, bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin pin: %w", err)
	}
	admin = domain.User{
		Name:      seed.Name,
		Email:     seed.Email,
		Number:    seed.Number,
		NID:       seed.NID,
		PinDigest: digest,
		Role:      domain.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	logrus.WithFields(logrus.Fields{"id": admin.ID, "number": admin.Number}).Info("Admin seeded")
	return &admin, nil
}
