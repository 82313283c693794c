package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"taskdesk/internal/models"
	"taskdesk/internal/seed"
	"taskdesk/internal/service"
)

func newSeedCmd() *cobra.Command {
	var (
		file  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert starter parties",
		Long:  "Insert parties from a YAML file, or the built-in starter set. Skipped when parties already exist unless --force is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, file, force)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a top-level parties list")
	cmd.Flags().BoolVar(&force, "force", false, "insert even when parties already exist")

	return cmd
}

func runSeed(cmd *cobra.Command, file string, force bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	var parties []models.Party
	if file != "" {
		parties, err = seed.LoadFile(file)
	} else {
		parties, err = seed.Default()
	}
	if err != nil {
		return err
	}

	backend, err := openBackend(cfg, logger)
	if err != nil {
		return err
	}
	defer closeBackend(backend, logger)

	svc := service.NewFromBackend(backend, service.WithTimeout(cfg.StorageTimeout), service.WithLogger(logger))
	n, err := svc.SeedParties(context.Background(), parties, force)
	if err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		return fmt.Errorf("seeding parties: %w", err)
	}

	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Parties already present, nothing inserted (use --force to insert anyway)")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d parties\n", n)
	return nil
}
