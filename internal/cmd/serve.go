package cmd

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tadeyemo32/career26-vanguard/internal/config"
	"github.com/tadeyemo32/career26-vanguard/internal/core/engine"
	"github.com/tadeyemo32/career26-vanguard/internal/core/store"
	errwrap "github.com/tadeyemo32/career26-vanguard/internal/errors"
	"github.com/tadeyemo32/career26-vanguard/internal/observability"
	"github.com/tadeyemo32/career26-vanguard/internal/server"
	"github.com/tadeyemo32/career26-vanguard/internal/server/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the name-to-search HTTP API with graceful shutdown support.

Endpoints:
  POST /v1/name-to-search          convert one name
  POST /v1/name-to-search/record   convert one company record
  POST /v1/name-to-search/batch    convert many records
  GET  /v1/companies/{number}/search-queries   store-backed resolver

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Reload and validate the config file (restart to apply)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := currentConfig(cmd.Context())
		if err != nil {
			return errwrap.WrapConfigInvalid(cmd.Context(), err, "config load failed")
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		return runServe(cmd.Context(), cfg)
	},
}

func runServe(ctx context.Context, cfg *config.Config) error {
	identity := GetAppIdentity()
	namespace := identity.TelemetryNamespace()

	if err := observability.InitServerLogger(identity.BinaryName, cfg.Logging.Level, namespace); err != nil {
		return errwrap.WrapConfigInvalid(ctx, err, "server logger initialization failed")
	}
	logger := observability.ServerLogger

	metricsPort := cfg.Metrics.Port
	if metricsPort == 0 {
		metricsPort = observability.DefaultMetricsPort
	}
	if cfg.Metrics.Enabled {
		if err := observability.InitMetrics(identity.BinaryName, metricsPort, namespace); err != nil {
			logger.Error("Failed to initialize metrics", zap.Error(err))
			return errwrap.WrapInternal(ctx, err, "metrics initialization failed")
		}
	}

	pipeline, err := engine.NewPipeline(cfg.Pipeline)
	if err != nil {
		return errwrap.WrapConfigInvalid(ctx, err, "pipeline configuration invalid")
	}

	opts := []server.Option{
		server.WithPipeline(pipeline),
		server.WithDefaults(engine.OptionsFromConfig(cfg.Pipeline)),
		server.WithAPI(cfg.API),
		server.WithTimeouts(cfg.Server),
		server.WithWorkers(cfg.Workers),
		server.WithVersion(versionInfo.Version),
		server.WithMetricsPort(metricsPort),
		server.WithHealth(cfg.Health.Enabled),
		server.WithAdminToken(os.Getenv(identity.EnvPrefix + "ADMIN_TOKEN")),
		server.WithProfiler(cfg.Debug.Enabled && cfg.Debug.PprofEnabled),
	}

	// The store only backs the company endpoint; the rest of the API works
	// without it.
	db, err := openStore(ctx, cfg)
	if err != nil {
		logger.Warn("Store unavailable, company endpoint disabled", zap.Error(err))
	} else {
		opts = append(opts, server.WithStore(db))
	}

	logger.Info("Initializing server",
		zap.String("service", identity.BinaryName),
		zap.String("namespace", namespace),
		zap.String("version", versionInfo.Version),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Int("metrics_port", metricsPort),
		zap.Bool("store", db != nil))

	srv := server.New(cfg.Server.Host, cfg.Server.Port, opts...)
	handlers.SetAppIdentity(identity)

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}

	// Shutdown handlers run LIFO: server, store, metrics, then logger.
	signals.OnShutdown(func(ctx context.Context) error {
		if err := logger.Sync(); err != nil {
			// stdout/stderr may already be closed
			logger.Warn("Logger sync returned error (may be benign)", zap.Error(err))
		}
		return nil
	})
	signals.OnShutdown(func(ctx context.Context) error {
		if err := observability.ShutdownMetrics(); err != nil {
			logger.Warn("Metrics exporter stop failed", zap.Error(err))
		}
		return nil
	})
	if db != nil {
		signals.OnShutdown(func(ctx context.Context) error {
			return closeStore(db)
		})
	}
	signals.OnShutdown(func(ctx context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errwrap.WrapInternal(ctx, err, "server shutdown failed")
		}
		logger.Info("HTTP server stopped gracefully")
		return nil
	})

	signals.OnReload(func(ctx context.Context) error {
		logger.Info("Received SIGHUP: validating configuration")
		reloaded, err := config.LoadFile(ctx, cfgFile)
		if err != nil {
			logger.Error("Config reload failed", zap.Error(err))
			return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
		}
		logger.Info("Configuration is valid; restart to apply",
			zap.String("file", config.ConfigFileUsed()),
			zap.Int("max_queries", reloaded.Pipeline.MaxQueries))
		return nil
	})

	if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
		Window:  2 * time.Second,
		Message: "Press Ctrl+C again within 2 seconds to force quit",
	}); err != nil {
		logger.Warn("Failed to enable double-tap force quit", zap.Error(err))
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	go func() {
		if err := signals.Listen(ctx); err != nil {
			logger.Error("Signal handler error", zap.Error(err))
			errChan <- err
		}
	}()

	if err := <-errChan; err != nil {
		return errwrap.WrapInternal(ctx, err, "server error")
	}
	return nil
}

func closeStore(db *store.Store) error {
	if err := db.Close(); err != nil {
		observability.ServerLogger.Warn("Store close failed", zap.Error(err))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "localhost", "server host (default from config)")
	serveCmd.Flags().IntP("port", "p", 8080, "server port (default from config)")
}
