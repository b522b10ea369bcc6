package cli

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"taskboard/go-backend/internal/adapters/metrics"
	"taskboard/go-backend/internal/adapters/persistence"
	"taskboard/go-backend/internal/application/logging"
	"taskboard/go-backend/internal/application/setup"
	"taskboard/go-backend/internal/infrastructure/config"
	"taskboard/go-backend/internal/infrastructure/database"
)

// NewServeCommand creates the serve command that runs the daemon
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the taskboard daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg := config.MustLoadConfig(configPath)

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.NewZapLogger(level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := persistence.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var collector *metrics.RequestMetricsCollector
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector = metrics.NewRequestMetricsCollector()
		if err := collector.Register(); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	if _, err := setup.BuildMediator(setup.Dependencies{
		DB:       db,
		Logger:   logger,
		TxConfig: cfg.Transaction,
		Metrics:  collector,
	}); err != nil {
		return fmt.Errorf("failed to build dispatch pipeline: %w", err)
	}

	logger.Info("taskboard daemon started", map[string]interface{}{
		"database": cfg.Database.Type,
	})

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewListener(cfg.Metrics.Address)
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics listener failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}()
		logger.Info("metrics listener started", map[string]interface{}{
			"address": cfg.Metrics.Address,
		})
	}

	// Block until shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("shutting down", map[string]interface{}{
		"signal": sig.String(),
	})

	if metricsServer != nil {
		_ = metricsServer.Close()
	}
	return nil
}
