package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/tadeyemo32/career26-vanguard/internal/core"
	"github.com/tadeyemo32/career26-vanguard/internal/core/namesearch"
)

// Resolution sources.
const (
	SourcePipeline = "pipeline"
	SourceFallback = "fallback"
)

// VariantSource supplies stored names for a company, official name first.
type VariantSource interface {
	VariantNames(ctx context.Context, companyNumber string) ([]string, error)
}

// Resolution is the outcome of resolving a company to search queries.
type Resolution struct {
	CompanyNumber string               `json:"company_number" yaml:"company_number"`
	Queries       []string             `json:"search_queries" yaml:"search_queries"`
	Source        string               `json:"source" yaml:"source"`
	Pipeline      namesearch.ResultMap `json:"pipeline" yaml:"pipeline"`
}

// Resolver turns a company into search queries for downstream lookups. It
// prefers pipeline output; a rejected name falls back to the raw name plus
// stored variants.
type Resolver struct {
	Pipeline *namesearch.Pipeline
	Variants VariantSource
	// MaxQueries defaults to namesearch.DefaultMaxQueries.
	MaxQueries int
	// IncludeLocation is off by default to avoid over-specific queries.
	IncludeLocation bool
}

// Resolve returns between one and MaxQueries queries for company. Only a
// variant lookup failure is reported as an error.
func (r *Resolver) Resolve(ctx context.Context, company core.Company) (*Resolution, error) {
	if r == nil || r.Pipeline == nil {
		return nil, fmt.Errorf("resolver has no pipeline")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	limit := r.MaxQueries
	if limit < 1 {
		limit = namesearch.DefaultMaxQueries
	}

	rec := company.Record()
	if !r.IncludeLocation {
		rec.Address = nil
	}
	mapped := r.Pipeline.FromRecord(rec, namesearch.Options{
		MaxQueries:              limit,
		IncludeLocationVariants: r.IncludeLocation,
	})

	res := &Resolution{
		CompanyNumber: company.Number,
		Source:        SourcePipeline,
		Pipeline:      mapped,
	}
	if !mapped.Rejected && len(mapped.SearchQueries) > 0 {
		res.Queries = truncate(mapped.SearchQueries, limit)
		return res, nil
	}

	res.Source = SourceFallback
	names := make([]string, 0, limit)
	if strings.TrimSpace(company.Name) != "" {
		names = append(names, company.Name)
	}
	if r.Variants != nil {
		variants, err := r.Variants.VariantNames(ctx, company.Number)
		if err != nil {
			return nil, fmt.Errorf("load name variants: %w", err)
		}
		for _, v := range variants {
			v = strings.TrimSpace(v)
			if v != "" && !slices.Contains(names, v) {
				names = append(names, v)
			}
		}
	}
	if len(names) == 0 {
		names = append(names, company.Name)
	}
	res.Queries = truncate(names, limit)
	return res, nil
}

func truncate(values []string, limit int) []string {
	if len(values) > limit {
		values = values[:limit]
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
