package config

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config centralises environment configuration for the gateway.
type Config struct {
	Port          string
	APIBaseURL    string
	APISessionKey string
	DBDriver      string
	DBDSN         string
	PollInterval  time.Duration
	AllowedOrigin string
}

// Load reads the environment, failing fast on the one variable the gateway
// cannot run without.
func Load() (*Config, error) {
	apiURL := os.Getenv("EASYBAR_API_URL")
	if apiURL == "" {
		return nil, fmt.Errorf("EASYBAR_API_URL is not set")
	}

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		APIBaseURL:    apiURL,
		APISessionKey: os.Getenv("EASYBAR_API_SESSION_KEY"),
		DBDriver:      getEnvOrDefault("DB_DRIVER", "sqlite"),
		DBDSN:         getEnvOrDefault("DB_DSN", "easybar_gateway.db"),
		PollInterval:  10 * time.Second,
		AllowedOrigin: getEnvOrDefault("ALLOWED_ORIGIN", "http://localhost:3000"),
	}

	if raw := os.Getenv("ORDER_POLL_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid ORDER_POLL_INTERVAL %q: %w", raw, err)
		}
		cfg.PollInterval = interval
	}

	return cfg, nil
}

// InitDB opens the session store. MySQL in production, SQLite for local
// runs and tests.
func InitDB(cfg *Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
