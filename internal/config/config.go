// Package config resolves runtime settings from TASKDESK_* environment
// variables, optionally read from a .env file first.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"

	"taskdesk/internal/util"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds every runtime setting.
type Config struct {
	Addr            string
	Driver          string
	DBPath          string
	DatabaseURL     string
	StorageTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogFormat       string
	LogLevel        string
}

// LoadDotEnv loads variables from the given files, or ./.env when none are
// given. Variables already set in the environment win. A missing default
// .env file is not an error.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && len(files) == 0 && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// FromEnv builds a Config from the environment, applying defaults.
func FromEnv() Config {
	return Config{
		Addr:            util.EnvOrDefault("TASKDESK_ADDR", ":8080"),
		Driver:          util.EnvOrDefault("TASKDESK_DB_DRIVER", DriverSQLite),
		DBPath:          util.EnvOrDefault("TASKDESK_DB_PATH", "data/taskdesk.db"),
		DatabaseURL:     util.EnvOrDefault("TASKDESK_DATABASE_URL", ""),
		StorageTimeout:  util.DurationOrDefault("TASKDESK_STORAGE_TIMEOUT", 5*time.Second),
		ShutdownTimeout: util.DurationOrDefault("TASKDESK_SHUTDOWN_TIMEOUT", 5*time.Second),
		LogFormat:       util.EnvOrDefault("TASKDESK_LOG_FORMAT", "text"),
		LogLevel:        util.EnvOrDefault("TASKDESK_LOG_LEVEL", "info"),
	}
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("sqlite driver needs a database path")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("postgres driver needs TASKDESK_DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Driver)
	}
	if c.StorageTimeout <= 0 {
		return fmt.Errorf("storage timeout must be positive")
	}
	return nil
}
