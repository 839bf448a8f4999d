package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tadeyemo32/career26-vanguard/internal/config"
	"github.com/tadeyemo32/career26-vanguard/internal/core"
	"github.com/tadeyemo32/career26-vanguard/internal/core/engine"
	"github.com/tadeyemo32/career26-vanguard/internal/core/namesearch"
	"github.com/tadeyemo32/career26-vanguard/internal/observability"
	"github.com/tadeyemo32/career26-vanguard/internal/output"
)

type searchRequest struct {
	Company    core.Company
	MaxQueries int
	NoLocation bool
	Explain    bool
	Save       bool
	Format     output.Format
}

var searchCmd = &cobra.Command{
	Use:   "search <company-name>",
	Short: "Convert one company name into search queries",
	Long: `Convert one legal company name into ranked web search queries.

Examples:
  vanguard search "ACME TRADING LIMITED"
  vanguard search "THE WIDGET COMPANY (UK) LTD" --town Leeds --explain
  vanguard search "ACME HOLDINGS PLC" --number 01234567 --save -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}
		cfg, err := currentConfig(cmd.Context())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		req := searchRequest{Format: format}
		req.Company.Name = strings.Join(args, " ")
		req.Company.Number, _ = cmd.Flags().GetString("number")
		req.Company.PostTown, _ = cmd.Flags().GetString("town")
		req.Company.Country, _ = cmd.Flags().GetString("country")
		req.MaxQueries, _ = cmd.Flags().GetInt("max-queries")
		req.NoLocation, _ = cmd.Flags().GetBool("no-location")
		req.Explain, _ = cmd.Flags().GetBool("explain")
		req.Save, _ = cmd.Flags().GetBool("save")

		return runSearch(cmd.Context(), cmd.OutOrStdout(), cfg, req)
	},
}

func runSearch(ctx context.Context, w io.Writer, cfg *config.Config, req searchRequest) error {
	pipeline, err := engine.NewPipeline(cfg.Pipeline)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	runner := &engine.Runner{
		Pipeline: pipeline,
		Options:  searchOptions(cfg.Pipeline, req.MaxQueries, req.NoLocation),
		Explain:  req.Explain,
		Source:   "cli",
		Logger:   observability.CLILogger,
	}
	result := runner.Process(req.Company)

	if req.Save {
		if err := saveResults(ctx, cfg, []*core.BatchResult{result}); err != nil {
			return err
		}
	}

	rendered, err := output.NewFormatter(req.Format).FormatBatch(result)
	if err != nil {
		return err
	}
	sink, _ := openSink("", w)
	return writeOutput(sink, rendered)
}

// searchOptions applies command-line overrides to the configured defaults.
func searchOptions(cfg config.PipelineConfig, maxQueries int, noLocation bool) namesearch.Options {
	opts := engine.OptionsFromConfig(cfg)
	if maxQueries > 0 {
		opts.MaxQueries = maxQueries
	}
	if noLocation {
		opts.IncludeLocationVariants = false
	}
	return opts
}

// saveResults persists results to the configured store.
func saveResults(ctx context.Context, cfg *config.Config, results []*core.BatchResult) error {
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close() // nolint:errcheck // best-effort cleanup

	mapped := make([]namesearch.ResultMap, 0, len(results))
	for _, res := range results {
		if res != nil {
			mapped = append(mapped, res.ResultMap)
		}
	}
	if err := db.SaveResults(ctx, mapped); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	if logger := observability.CLILogger; logger != nil {
		logger.Debug("Saved results", zap.Int("count", len(mapped)))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("number", "", "company number recorded with the result")
	searchCmd.Flags().String("town", "", "registered post town, used for location variants")
	searchCmd.Flags().String("country", "", "registered country, used for location variants")
	searchCmd.Flags().Int("max-queries", 0, "maximum queries to return (default from config)")
	searchCmd.Flags().Bool("no-location", false, "do not add location-enriched variants")
	searchCmd.Flags().Bool("explain", false, "include the stage-by-stage trace")
	searchCmd.Flags().Bool("save", false, "persist the result to the store")
	addOutputFlag(searchCmd)
}
