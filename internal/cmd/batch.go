package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tadeyemo32/career26-vanguard/internal/config"
	"github.com/tadeyemo32/career26-vanguard/internal/core"
	"github.com/tadeyemo32/career26-vanguard/internal/core/engine"
	"github.com/tadeyemo32/career26-vanguard/internal/core/register"
	"github.com/tadeyemo32/career26-vanguard/internal/observability"
	"github.com/tadeyemo32/career26-vanguard/internal/output"
)

type batchRequest struct {
	Path         string
	Format       register.Format
	Concurrency  int
	ActiveOnly   bool
	RejectedOnly bool
	MaxQueries   int
	NoLocation   bool
	Save         bool
	Output       output.Format
	Out          string
}

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Convert every company in a register file",
	Long: `Convert every company in a register file into search queries.

Supported inputs: CSV or XLSX exports of the company register, JSON Lines with
company_number/company_name fields, or plain text with one name per line.
The format is detected from the file extension unless --format is given.

Examples:
  vanguard batch companies.csv
  vanguard batch register.xlsx --active-only --save
  vanguard batch names.txt --rejected-only -o json --out rejected.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outFormat, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}
		formatValue, _ := cmd.Flags().GetString("format")
		inFormat, err := register.ParseFormat(formatValue)
		if err != nil {
			return err
		}
		cfg, err := currentConfig(cmd.Context())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		req := batchRequest{Path: args[0], Format: inFormat, Output: outFormat}
		req.Concurrency, _ = cmd.Flags().GetInt("concurrency")
		if req.Concurrency < 1 {
			req.Concurrency = cfg.Workers
		}
		req.ActiveOnly, _ = cmd.Flags().GetBool("active-only")
		req.RejectedOnly, _ = cmd.Flags().GetBool("rejected-only")
		req.MaxQueries, _ = cmd.Flags().GetInt("max-queries")
		req.NoLocation, _ = cmd.Flags().GetBool("no-location")
		req.Save, _ = cmd.Flags().GetBool("save")
		req.Out, _ = cmd.Flags().GetString("out")

		return runBatch(cmd.Context(), cmd.OutOrStdout(), cfg, req)
	},
}

func runBatch(ctx context.Context, w io.Writer, cfg *config.Config, req batchRequest) error {
	companies, err := register.ReadFile(req.Path, req.Format)
	if err != nil {
		return fmt.Errorf("read %s: %w", req.Path, err)
	}
	if req.ActiveOnly {
		companies = register.ActiveOnly(companies)
	}

	pipeline, err := engine.NewPipeline(cfg.Pipeline)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	runner := &engine.Runner{
		Pipeline:    pipeline,
		Options:     searchOptions(cfg.Pipeline, req.MaxQueries, req.NoLocation),
		Concurrency: req.Concurrency,
		Source:      "cli",
		Logger:      observability.CLILogger,
	}

	started := time.Now()
	results, err := runner.Run(ctx, companies)
	if err != nil {
		return fmt.Errorf("run batch: %w", err)
	}
	summary := engine.Summarize(results, time.Since(started))

	if logger := observability.CLILogger; logger != nil {
		logger.Debug("Batch complete",
			zap.String("file", req.Path),
			zap.Int("processed", summary.Processed),
			zap.Int("rejected", summary.Rejected),
			zap.Int64("duration_ms", summary.DurationMs))
	}

	if req.Save {
		if err := saveResults(ctx, cfg, results); err != nil {
			return err
		}
	}

	return writeBatch(w, req, engine.Filter(results, req.RejectedOnly), summary)
}

func writeBatch(w io.Writer, req batchRequest, results []*core.BatchResult, summary core.BatchSummary) error {
	sink, err := openSink(req.Out, w)
	if err != nil {
		return err
	}
	defer sink.close() // nolint:errcheck // best-effort cleanup

	rendered, err := output.FormatBatchList(req.Output, results)
	if err != nil {
		return err
	}
	if err := writeOutput(sink, rendered); err != nil {
		return err
	}

	// Structured formats stay a single document; the summary goes to the
	// terminal only for the human formats.
	if req.Output == output.FormatJSON || req.Output == output.FormatYAML {
		return nil
	}
	totals, err := output.FormatSummary(req.Output, summary)
	if err != nil {
		return err
	}
	return writeOutput(sink, totals)
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("format", "auto", "input format: auto, csv, xlsx, jsonl, text")
	batchCmd.Flags().Int("concurrency", 0, "parallel workers (default from config)")
	batchCmd.Flags().Bool("active-only", false, "skip companies whose status is not Active")
	batchCmd.Flags().Bool("rejected-only", false, "print only rejected names")
	batchCmd.Flags().Int("max-queries", 0, "maximum queries per company (default from config)")
	batchCmd.Flags().Bool("no-location", false, "do not add location-enriched variants")
	batchCmd.Flags().Bool("save", false, "persist every result to the store")
	batchCmd.Flags().String("out", "", "write output to a file instead of stdout")
	addOutputFlag(batchCmd)
}
