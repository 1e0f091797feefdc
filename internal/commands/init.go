package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/banklytics/banklytics/internal/config"
	"github.com/banklytics/banklytics/internal/ledger"
	"github.com/banklytics/banklytics/internal/observability"
	"github.com/banklytics/banklytics/internal/storage"
)

func newInitCommand() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new banklytics setup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, seed)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "seed the ledger with demo transactions")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, seed bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfgPath := filepath.Join(dir, "banklytics.yaml")
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	cfg := config.Default()
	cfg.Storage.Path = filepath.Join(dir, cfg.Storage.Path)
	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	store, err := storage.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if seed {
		logger := observability.NewLogger(cfg.Log.Level)
		defer logger.Sync()
		if err := ledger.NewService(store, logger).Seed(); err != nil {
			return fmt.Errorf("seeding ledger: %w", err)
		}
	}

	cmd.Printf("Initialized banklytics in %s\n", dir)
	return nil
}
