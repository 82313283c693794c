// Package cli defines the cobra command tree for taskdesk.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"taskdesk/internal/config"
	"taskdesk/internal/logging"
	"taskdesk/internal/service"
	"taskdesk/internal/storage/postgres"
	"taskdesk/internal/storage/sqlite"
)

var (
	flagEnvFile string
	flagDriver  string
	flagDB      string
	flagDBURL   string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taskdesk",
		Short:         "Track parties, their tasks and site visits",
		Long:          "taskdesk is a small task tracking backend. It stores parties (clients, vendors, partners), the tasks assigned to them and a visit counter, and serves them over a JSON API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "load variables from this file (default: ./.env if present)")
	root.PersistentFlags().StringVar(&flagDriver, "driver", "", "storage driver: sqlite or postgres (env TASKDESK_DB_DRIVER)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (env TASKDESK_DB_PATH)")
	root.PersistentFlags().StringVar(&flagDBURL, "database-url", "", "PostgreSQL connection string (env TASKDESK_DATABASE_URL)")

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
		newVersionCmd(),
	)

	return root
}

// loadConfig reads the env file and environment, then applies global flags.
func loadConfig() (config.Config, error) {
	var files []string
	if flagEnvFile != "" {
		files = append(files, flagEnvFile)
	}
	if err := config.LoadDotEnv(files...); err != nil {
		return config.Config{}, err
	}

	cfg := config.FromEnv()
	if flagDriver != "" {
		cfg.Driver = flagDriver
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flagDBURL != "" {
		cfg.DatabaseURL = flagDBURL
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.New(cfg.LogFormat, cfg.LogLevel, os.Stdout)
}

// openBackend opens the configured store.
func openBackend(cfg config.Config, logger *slog.Logger) (service.Backend, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DatabaseURL,
			postgres.WithLogger(logger),
			postgres.WithLogQueries(logging.ParseLevel(cfg.LogLevel) == slog.LevelDebug),
		)
	default:
		return sqlite.Open(cfg.DBPath, logger)
	}
}

// closeBackend closes the store, logging any error.
func closeBackend(b service.Backend, logger *slog.Logger) {
	if err := b.Close(); err != nil {
		logger.Warn("closing database", slog.String("error", err.Error()))
	}
}
