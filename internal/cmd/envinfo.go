package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tadeyemo32/career26-vanguard/internal/config"
	"github.com/tadeyemo32/career26-vanguard/internal/observability"
)

var envInfoCmd = &cobra.Command{
	Use:   "envinfo",
	Short: "Display environment information",
	Long:  "Display environment, configuration, and version information.",
	Run: func(cmd *cobra.Command, args []string) {
		logger := observability.CLILogger
		version := crucible.GetVersion()
		identity := GetAppIdentity()

		logger.Info("=== Vanguard Environment Information ===")
		logger.Info("")

		logger.Info("Application:")
		logger.Info("  Name:       " + identity.BinaryName)
		logger.Info("  Version:    " + versionInfo.Version)
		logger.Info("  Commit:     " + versionInfo.Commit)
		logger.Info("  Built:      " + versionInfo.BuildDate)
		logger.Info("  Env Prefix: " + identity.EnvPrefix)
		logger.Info("")

		logger.Info("SSOT:")
		logger.Info("  Gofulmen:   "+version.Gofulmen, zap.String("gofulmen_version", version.Gofulmen))
		logger.Info("  Crucible:   "+version.Crucible, zap.String("crucible_version", version.Crucible))
		logger.Info("")

		logger.Info("Runtime:")
		logger.Info("  Go Version: "+runtime.Version(), zap.String("go_version", runtime.Version()))
		logger.Info("  GOOS:       "+runtime.GOOS, zap.String("goos", runtime.GOOS))
		logger.Info("  GOARCH:     "+runtime.GOARCH, zap.String("goarch", runtime.GOARCH))
		logger.Info(fmt.Sprintf("  NumCPU:     %d", runtime.NumCPU()), zap.Int("num_cpu", runtime.NumCPU()))
		logger.Info("")

		cfg, err := currentConfig(cmd.Context())
		if err != nil {
			logger.Warn("Config load failed", zap.Error(err))
			return
		}

		configFile := config.ConfigFileUsed()
		if configFile == "" {
			configFile = "(none, defaults and environment)"
		}

		logger.Info("Configuration:")
		logger.Info("  Config File:    " + configFile)
		logger.Info("  Server:         "+fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), zap.String("host", cfg.Server.Host), zap.Int("port", cfg.Server.Port))
		logger.Info("  Log Level:      "+cfg.Logging.Level, zap.String("log_level", cfg.Logging.Level))
		logger.Info("  DB Driver:      "+cfg.Store.Driver, zap.String("db_driver", cfg.Store.Driver))
		if strings.TrimSpace(cfg.Store.URL) != "" {
			logger.Info("  DB URL:         "+cfg.Store.URL, zap.String("db_url", cfg.Store.URL))
		} else {
			logger.Info("  DB Path:        "+cfg.Store.Path, zap.String("db_path", cfg.Store.Path))
		}
		logger.Info(fmt.Sprintf("  Metrics:        %t (port %d)", cfg.Metrics.Enabled, cfg.Metrics.Port), zap.Int("metrics_port", cfg.Metrics.Port))
		logger.Info(fmt.Sprintf("  Workers:        %d", cfg.Workers), zap.Int("workers", cfg.Workers))
		logger.Info("")

		p := cfg.Pipeline
		logger.Info("Pipeline:")
		logger.Info(fmt.Sprintf("  Max Queries:      %d", p.MaxQueries), zap.Int("max_queries", p.MaxQueries))
		logger.Info(fmt.Sprintf("  Location Variants: %t", p.IncludeLocationVariants))
		logger.Info(fmt.Sprintf("  Dedup Threshold:  %.1f", p.DedupThreshold))
		logger.Info(fmt.Sprintf("  Similarity:       %t (%s, fold=%t)", p.Similarity.Enabled, p.Similarity.Algorithm, p.Similarity.Fold))
		commonness := "embedded"
		if strings.TrimSpace(p.Commonness.Path) != "" {
			commonness = p.Commonness.Path
		}
		logger.Info(fmt.Sprintf("  Commonness:       %t (%s)", p.Commonness.Enabled, commonness))
		logger.Info(fmt.Sprintf("  Zipf Thresholds:  common %.1f, scoring %.1f", p.CommonWordZipf, p.ScoringZipf))
		logger.Info("")

		logger.Info("API:")
		if cfg.API.RateLimit > 0 {
			logger.Info(fmt.Sprintf("  Rate Limit:  %.2f req/s (burst %d)", cfg.API.RateLimit, cfg.API.RateBurst))
		} else {
			logger.Info("  Rate Limit:  disabled")
		}
		logger.Info(fmt.Sprintf("  Max Batch:   %d", cfg.API.MaxBatch), zap.Int("max_batch", cfg.API.MaxBatch))
		logger.Info("")

		logger.Info("=== End Environment Information ===")
	},
}

func init() {
	rootCmd.AddCommand(envInfoCmd)
}
