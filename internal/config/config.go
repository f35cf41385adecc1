package config

import (
	"fmt"  // Error wrapping
	"time" // Durations for token and cache lifetimes

	"github.com/caarlos0/env/v11" // Struct-tag environment parsing
	"github.com/joho/godotenv"    // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string `env:"APP_PORT" envDefault:"8080"`     // Application port
	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql"`   // mysql, postgres or sqlite
	DBUser     string `env:"DB_USER"`                        // Database user
	DBPassword string `env:"DB_PASSWORD"`                    // Database password
	DBHost     string `env:"DB_HOST" envDefault:"127.0.0.1"` // Database host
	DBPort     string `env:"DB_PORT"`                        // Database port
	DBName     string `env:"DB_NAME" envDefault:"easy_pay"`  // Database name
	DBPath     string `env:"DB_PATH" envDefault:"easy_pay.db"`

	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"` // JWT secret key
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"8760h"` // 365 days

	RedisAddr string        `env:"REDIS_ADDR"`                 // Redis server address, empty disables caching
	RedisPass string        `env:"REDIS_PASS"`                 // Redis password
	RedisDB   int           `env:"REDIS_DB" envDefault:"0"`    // Redis database number
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"60s"` // Read cache lifetime

	BcryptCost        int `env:"BCRYPT_COST" envDefault:"10"`
	NotificationLimit int `env:"NOTIFICATION_LIMIT" envDefault:"50"` // Notifications returned per user

	IsProd   bool   `env:"IS_PROD" envDefault:"false"` // Is production environment
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Admin AdminSeed `envPrefix:"ADMIN_"` // Fee-sink account created by cmd/migrate
}

// AdminSeed describes the single admin record
type AdminSeed struct {
	Name   string `env:"NAME" envDefault:"Admin"`
	Email  string `env:"EMAIL"`
	Number string `env:"NUMBER"`
	NID    string `env:"NID"`
	Pin    string `env:"PIN"`
}

// LoadConfig loads configuration from the environment, reading .env first if present
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port)
	case "sqlite":
		return c.DBPath
	default:
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true"
	}
}
