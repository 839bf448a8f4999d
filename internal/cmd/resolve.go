package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tadeyemo32/career26-vanguard/internal/config"
	"github.com/tadeyemo32/career26-vanguard/internal/core"
	"github.com/tadeyemo32/career26-vanguard/internal/core/engine"
	"github.com/tadeyemo32/career26-vanguard/internal/output"
)

type resolveRequest struct {
	CompanyNumber string
	Name          string
	MaxQueries    int
	WithLocation  bool
	Format        output.Format
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <company-number>",
	Short: "Resolve a stored company to search queries",
	Long: `Resolve a company known to the store into search queries.

Pipeline output is preferred. When the name is rejected, the raw name and
stored name variants are returned instead so there is always something to
search for. --name supplies the name for companies the store does not know.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}
		cfg, err := currentConfig(cmd.Context())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		req := resolveRequest{CompanyNumber: args[0], Format: format}
		req.Name, _ = cmd.Flags().GetString("name")
		req.MaxQueries, _ = cmd.Flags().GetInt("max-queries")
		req.WithLocation, _ = cmd.Flags().GetBool("with-location")

		return runResolve(cmd.Context(), cmd.OutOrStdout(), cfg, req)
	},
}

func runResolve(ctx context.Context, w io.Writer, cfg *config.Config, req resolveRequest) error {
	pipeline, err := engine.NewPipeline(cfg.Pipeline)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close() // nolint:errcheck // best-effort cleanup

	company, err := db.Company(ctx, req.CompanyNumber)
	if err != nil {
		return fmt.Errorf("look up company %s: %w", req.CompanyNumber, err)
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		if company == nil {
			company = &core.Company{Number: req.CompanyNumber}
		}
		company.Name = name
	}
	if company == nil {
		return fmt.Errorf("company %s is not in the store (import variants or pass --name)", req.CompanyNumber)
	}

	resolver := &engine.Resolver{
		Pipeline:        pipeline,
		Variants:        db,
		MaxQueries:      req.MaxQueries,
		IncludeLocation: req.WithLocation,
	}
	res, err := resolver.Resolve(ctx, *company)
	if err != nil {
		return err
	}

	rendered, err := output.FormatResolution(req.Format, res)
	if err != nil {
		return err
	}
	sink, _ := openSink("", w)
	return writeOutput(sink, rendered)
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().String("name", "", "company name to use instead of the stored one")
	resolveCmd.Flags().Int("max-queries", 0, "maximum queries to return (default 3)")
	resolveCmd.Flags().Bool("with-location", false, "allow location-enriched queries")
	addOutputFlag(resolveCmd)
}
