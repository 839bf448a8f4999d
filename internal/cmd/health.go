package cmd

import (
	"context"
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tadeyemo32/career26-vanguard/internal/config"
	"github.com/tadeyemo32/career26-vanguard/internal/core/engine"
	"github.com/tadeyemo32/career26-vanguard/internal/observability"
	"github.com/tadeyemo32/career26-vanguard/internal/server/handlers"
)

// selfCheck is one step of the health command.
type selfCheck struct {
	name string
	run  func(ctx context.Context, cfg *config.Config) error
	// exit code used when the step fails
	code foundry.ExitCode
}

var selfChecks = []selfCheck{
	{
		name: "version information",
		run: func(context.Context, *config.Config) error {
			if versionInfo.Version == "" {
				return fmt.Errorf("version information missing")
			}
			return nil
		},
		code: foundry.ExitConfigInvalid,
	},
	{
		name: "configuration",
		run: func(_ context.Context, cfg *config.Config) error {
			return config.Validate(cfg)
		},
		code: foundry.ExitConfigInvalid,
	},
	{
		name: "pipeline",
		run: func(ctx context.Context, cfg *config.Config) error {
			pipeline, err := engine.NewPipeline(cfg.Pipeline)
			if err != nil {
				return err
			}
			return handlers.PipelineChecker{Pipeline: pipeline}.CheckHealth(ctx)
		},
		code: foundry.ExitConfigInvalid,
	},
	{
		name: "store",
		run: func(ctx context.Context, cfg *config.Config) error {
			db, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close() // nolint:errcheck // best-effort cleanup
			return db.Ping(ctx)
		},
		code: foundry.ExitExternalServiceUnavailable,
	},
}

// runSelfChecks returns the first failing check, or nil.
func runSelfChecks(ctx context.Context, cfg *config.Config, checks []selfCheck) (*selfCheck, error) {
	for i := range checks {
		if err := checks[i].run(ctx, cfg); err != nil {
			return &checks[i], err
		}
	}
	return nil, nil
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run self-health check",
	Long:  "Verify configuration, the pipeline canary and the store before starting the server.",
	Run: func(cmd *cobra.Command, args []string) {
		logger := observability.CLILogger
		cfg, err := currentConfig(cmd.Context())
		if err != nil {
			ExitWithCode(logger, foundry.ExitConfigInvalid, "Configuration could not be loaded", err)
			return
		}

		failed, err := runSelfChecks(cmd.Context(), cfg, selfChecks)
		if failed != nil {
			ExitWithCode(logger, failed.code, "Health check failed: "+failed.name, err)
			return
		}
		for _, check := range selfChecks {
			logger.Info("✅ "+check.name, zap.String("check", check.name))
		}
		logger.Info("✅ All health checks passed")
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
