package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/tropicaldog17/orgledger/internal/db"
)

// Config holds the server configuration.
type Config struct {
	Port string

	DB *db.Config

	// Ledger
	Timezone       string
	PersistTimeout time.Duration
	// RefreshInterval is how often the server checks for a day change and
	// recomputes the period totals.
	RefreshInterval time.Duration
}

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("SERVER_PORT", "8080"),
		DB:              db.NewConfig(),
		Timezone:        getEnv("LEDGER_TIMEZONE", "Asia/Ho_Chi_Minh"),
		PersistTimeout:  getEnvDuration("LEDGER_PERSIST_TIMEOUT", 5*time.Second),
		RefreshInterval: getEnvDuration("LEDGER_REFRESH_INTERVAL", time.Minute),
	}
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DB.Driver {
	case db.DriverPostgres:
		if c.DB.Host == "" || c.DB.Name == "" {
			problems = append(problems, "postgres driver requires DB_HOST and DB_NAME")
		}
	case db.DriverSQLite:
		if c.DB.SQLitePath == "" {
			problems = append(problems, "sqlite driver requires SQLITE_PATH")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid DB_DRIVER '%s': must be one of postgres, sqlite", c.DB.Driver))
	}

	if _, err := c.Location(); err != nil {
		problems = append(problems, err.Error())
	}

	if c.PersistTimeout <= 0 {
		problems = append(problems, "LEDGER_PERSIST_TIMEOUT must be positive")
	}

	if c.RefreshInterval <= 0 {
		problems = append(problems, "LEDGER_REFRESH_INTERVAL must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
