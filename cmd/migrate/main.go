package main

import (
	"context" // Context for seeding

	"easy_pay/internal/config" // Custom import path (Config)
	"easy_pay/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Connect(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("%v", err)
	}
	// The admin is the fee sink for every transfer
	if _, err := db.EnsureAdmin(context.Background(), gdb, cfg.Admin, cfg.BcryptCost); err != nil {
		logrus.Fatalf("failed to seed admin: %v", err)
	}
}
