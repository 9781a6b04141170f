package main

import (
	"log/slog"
	"os"

	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/application/reconcile"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/cli"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/domain/cue"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/config"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/logging"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/pdftext"
	"github.com/cinecart/dailycommerce-cli-payment-reconciliation-amazon/internal/infrastructure/storage"
)

func main() {
	flags := cli.ParseFlags()

	cfg := loadConfig(flags)
	logger := logging.NewLoggerWithSystem(cfg.Logging, "reconcile")

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The cueline catalog is mandatory; nothing can be located
	// without it.
	catalog, err := cue.Load(cfg.Paths.Cuelines)
	if err != nil {
		logger.Error("Failed to load cueline catalog",
			slog.String("file", cfg.Paths.Cuelines),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// Run history is optional; without a database path the run simply
	// is not recorded.
	var store reconcile.RunStore
	var db *storage.Storage
	if cfg.Paths.DatabasePath != "" {
		db, err = storage.NewStorage(cfg.Paths.DatabasePath)
		if err != nil {
			logger.Error("Failed to open history database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()
		store = db
	}

	cli.PrintHeader(flags.DryRun)
	cli.PrintConfiguration(cfg)

	texts := pdftext.NewProvider(cfg.Matching.MinLineLength)
	orchestrator := reconcile.New(cfg, logger, catalog, texts, store)

	result, err := orchestrator.Run(reconcile.Options{DryRun: flags.DryRun})
	if err != nil {
		logger.Error("Reconciliation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cli.PrintSummary(result, db, flags.DryRun)
}

func loadConfig(flags cli.Flags) *config.Config {
	cfg := config.Default()
	if flags.ConfigFile != "" {
		loaded, err := config.Load(flags.ConfigFile)
		if err != nil {
			slog.Error("Failed to load config file",
				slog.String("file", flags.ConfigFile),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		cfg = loaded
	}
	flags.Apply(cfg)
	return cfg
}
