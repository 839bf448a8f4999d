package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tadeyemo32/career26-vanguard/internal/config"
	"github.com/tadeyemo32/career26-vanguard/internal/core/register"
	"github.com/tadeyemo32/career26-vanguard/internal/observability"
	"github.com/tadeyemo32/career26-vanguard/internal/output"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "Manage stored company name variants",
	Long: `Manage the company name variants used by resolve and the company
search-queries endpoint when a name is rejected by the pipeline.`,
}

var variantsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import official and previous names from a register file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatValue, _ := cmd.Flags().GetString("format")
		format, err := register.ParseFormat(formatValue)
		if err != nil {
			return err
		}
		source, _ := cmd.Flags().GetString("source")
		cfg, err := currentConfig(cmd.Context())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return runVariantsImport(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], format, source)
	},
}

var variantsListCmd = &cobra.Command{
	Use:   "list <company-number>",
	Short: "List stored name variants for a company",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}
		cfg, err := currentConfig(cmd.Context())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return runVariantsList(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], format)
	},
}

func runVariantsImport(ctx context.Context, w io.Writer, cfg *config.Config, path string, format register.Format, source string) error {
	companies, err := register.ReadFile(path, format)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close() // nolint:errcheck // best-effort cleanup

	inserted, err := db.PopulateVariants(ctx, companies, source)
	if err != nil {
		return fmt.Errorf("import variants: %w", err)
	}

	if logger := observability.CLILogger; logger != nil {
		logger.Debug("Imported name variants",
			zap.String("file", path),
			zap.Int("companies", len(companies)),
			zap.Int("inserted", inserted))
	}
	_, err = fmt.Fprintf(w, "Imported %d name variants from %d companies\n", inserted, len(companies))
	return err
}

func runVariantsList(ctx context.Context, w io.Writer, cfg *config.Config, companyNumber string, format output.Format) error {
	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close() // nolint:errcheck // best-effort cleanup

	variants, err := db.ListVariants(ctx, companyNumber)
	if err != nil {
		return fmt.Errorf("list variants: %w", err)
	}
	rendered, err := output.FormatVariants(format, variants)
	if err != nil {
		return err
	}
	sink, _ := openSink("", w)
	return writeOutput(sink, rendered)
}

func init() {
	rootCmd.AddCommand(variantsCmd)
	variantsCmd.AddCommand(variantsImportCmd)
	variantsCmd.AddCommand(variantsListCmd)

	variantsImportCmd.Flags().String("format", "auto", "input format: auto, csv, xlsx, jsonl, text")
	variantsImportCmd.Flags().String("source", "register", "source label stored with each variant")
	addOutputFlag(variantsListCmd)
}
