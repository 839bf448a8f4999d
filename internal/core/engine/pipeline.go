package engine

import (
	"fmt"
	"strings"

	"github.com/tadeyemo32/career26-vanguard/internal/config"
	"github.com/tadeyemo32/career26-vanguard/internal/core/namesearch"
	"github.com/tadeyemo32/career26-vanguard/internal/core/similarity"
	"github.com/tadeyemo32/career26-vanguard/internal/core/wordfreq"
)

// NewPipeline builds a pipeline from configuration. Disabled capabilities are
// left out, which makes the pipeline more permissive.
func NewPipeline(cfg config.PipelineConfig) (*namesearch.Pipeline, error) {
	opts := []namesearch.Option{
		namesearch.WithDedupThreshold(cfg.DedupThreshold),
		namesearch.WithCommonWordThreshold(cfg.CommonWordZipf),
		namesearch.WithScoringCommonThreshold(cfg.ScoringZipf),
	}

	if cfg.Similarity.Enabled {
		algorithm, err := similarity.ParseAlgorithm(cfg.Similarity.Algorithm)
		if err != nil {
			return nil, err
		}
		opts = append(opts, namesearch.WithSimilarity(similarity.NewMatcher(
			similarity.WithAlgorithm(algorithm),
			similarity.WithFold(cfg.Similarity.Fold),
		)))
	}

	if cfg.Commonness.Enabled {
		table := wordfreq.Embedded()
		if path := strings.TrimSpace(cfg.Commonness.Path); path != "" {
			loaded, err := wordfreq.LoadFile(path)
			if err != nil {
				return nil, fmt.Errorf("load word frequencies: %w", err)
			}
			table = loaded
		}
		opts = append(opts, namesearch.WithCommonness(table))
	}

	return namesearch.New(opts...), nil
}

// OptionsFromConfig returns the per-call defaults configured for the pipeline.
func OptionsFromConfig(cfg config.PipelineConfig) namesearch.Options {
	return namesearch.Options{
		MaxQueries:              cfg.MaxQueries,
		IncludeLocationVariants: cfg.IncludeLocationVariants,
	}
}
