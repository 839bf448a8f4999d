package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tadeyemo32/career26-vanguard/internal/config"
	"github.com/tadeyemo32/career26-vanguard/internal/output"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect persisted pipeline results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent stored results",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		rejectedOnly, _ := cmd.Flags().GetBool("rejected-only")
		cfg, err := currentConfig(cmd.Context())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return runResultsList(cmd.Context(), cmd.OutOrStdout(), cfg, limit, rejectedOnly, format)
	},
}

var resultsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accepted and rejected totals for stored results",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}
		cfg, err := currentConfig(cmd.Context())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return runResultsStats(cmd.Context(), cmd.OutOrStdout(), cfg, format)
	},
}

func runResultsList(ctx context.Context, w io.Writer, cfg *config.Config, limit int, rejectedOnly bool, format output.Format) error {
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close() // nolint:errcheck // best-effort cleanup

	results, err := db.ListResults(ctx, limit, rejectedOnly)
	if err != nil {
		return fmt.Errorf("list results: %w", err)
	}
	rendered, err := output.FormatStoredResults(format, results)
	if err != nil {
		return err
	}
	sink, _ := openSink("", w)
	return writeOutput(sink, rendered)
}

func runResultsStats(ctx context.Context, w io.Writer, cfg *config.Config, format output.Format) error {
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close() // nolint:errcheck // best-effort cleanup

	stats, err := db.ResultStats(ctx)
	if err != nil {
		return fmt.Errorf("result stats: %w", err)
	}
	rendered, err := output.FormatStats(format, stats)
	if err != nil {
		return err
	}
	sink, _ := openSink("", w)
	return writeOutput(sink, rendered)
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsStatsCmd)

	resultsListCmd.Flags().Int("limit", 50, "maximum results to list")
	resultsListCmd.Flags().Bool("rejected-only", false, "list rejected names only")
	addOutputFlag(resultsListCmd)
	addOutputFlag(resultsStatsCmd)
}
