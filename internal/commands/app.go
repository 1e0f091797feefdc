package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/banklytics/banklytics/internal/budget"
	"github.com/banklytics/banklytics/internal/config"
	"github.com/banklytics/banklytics/internal/ledger"
	"github.com/banklytics/banklytics/internal/observability"
	"github.com/banklytics/banklytics/internal/storage"
)

// app bundles the wired services every subcommand needs.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *storage.SQLiteStore
	ledger  *ledger.Service
	budgets *budget.Service
}

// openApp loads config, opens the store, and wires the trackers.
func openApp(cmd *cobra.Command) (*app, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config (run `banklytics init` first?): %w", err)
	}

	logger := observability.NewLogger(cfg.Log.Level)

	store, err := storage.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     logger,
		store:   store,
		ledger:  ledger.NewService(store, logger),
		budgets: budget.NewService(store, logger),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing store", zap.Error(err))
	}
	_ = a.log.Sync()
}
