package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/tadeyemo32/career26-vanguard/internal/core"
	"github.com/tadeyemo32/career26-vanguard/internal/core/namesearch"
	"github.com/tadeyemo32/career26-vanguard/internal/metrics"
)

const defaultConcurrency = 4

// Runner converts many companies through one pipeline with a bounded pool of
// workers. Results keep input order.
type Runner struct {
	Pipeline    *namesearch.Pipeline
	Options     namesearch.Options
	Concurrency int
	Explain     bool
	// Source labels metrics, e.g. "cli" or "api".
	Source string
	Logger *logging.Logger
	Clock  func() time.Time
}

type runJob struct {
	index   int
	company core.Company
}

// Run processes companies. It stops early and returns ctx.Err() when the
// context is cancelled.
func (r *Runner) Run(ctx context.Context, companies []core.Company) ([]*core.BatchResult, error) {
	if r == nil || r.Pipeline == nil {
		return nil, errors.New("runner has no pipeline")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if len(companies) == 0 {
		return []*core.BatchResult{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*core.BatchResult, len(companies))
	jobs := make(chan runJob)

	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for job := range jobs {
			if ctx.Err() != nil {
				return
			}
			results[job.index] = r.process(job.index, job.company)
		}
	}

	concurrency := r.Concurrency
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	if concurrency > len(companies) {
		concurrency = len(companies)
	}
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go worker()
	}

sendLoop:
	for i, company := range companies {
		select {
		case <-ctx.Done():
			break sendLoop
		case jobs <- runJob{index: i, company: company}:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	metrics.SetBatchSize(r.source(), len(companies))
	return results, nil
}

// Process converts a single company.
func (r *Runner) Process(company core.Company) *core.BatchResult {
	return r.process(0, company)
}

func (r *Runner) process(index int, company core.Company) *core.BatchResult {
	started := time.Now()
	rec := company.Record()
	var town, country string
	if rec.Address != nil {
		town, country = rec.Address.PostTown, rec.Address.Country
	}

	var (
		result namesearch.Result
		trace  *namesearch.Trace
	)
	if r.Explain {
		res, t := r.Pipeline.Explain(company.Number, company.Name, town, country, r.Options)
		result, trace = res, &t
	} else {
		result = r.Pipeline.NameToSearch(company.Number, company.Name, town, country, r.Options)
	}

	mapped := result.Map()
	metrics.RecordNameSearch(r.source(), mapped.Rejected, mapped.Reason(), len(mapped.SearchQueries), time.Since(started))
	if mapped.Rejected && r.Logger != nil {
		r.Logger.Debug("Name rejected",
			zap.String("company_number", mapped.CompanyNumber),
			zap.String("canonical_name", mapped.CanonicalName),
			zap.String("reason", mapped.Reason()))
	}

	return &core.BatchResult{
		ResultMap:   mapped,
		Index:       index,
		Trace:       trace,
		CompletedAt: r.now(),
	}
}

func (r *Runner) source() string {
	if r.Source == "" {
		return "engine"
	}
	return r.Source
}

func (r *Runner) now() time.Time {
	if r.Clock != nil {
		return r.Clock()
	}
	return time.Now().UTC()
}

// Summarize totals a batch.
func Summarize(results []*core.BatchResult, elapsed time.Duration) core.BatchSummary {
	summary := core.BatchSummary{
		ByReason:   make(map[string]int),
		DurationMs: elapsed.Milliseconds(),
	}
	for _, res := range results {
		if res == nil {
			continue
		}
		summary.Processed++
		if res.Rejected {
			summary.Rejected++
			summary.ByReason[res.Reason()]++
			continue
		}
		summary.Accepted++
		summary.Queries += len(res.SearchQueries)
	}
	return summary
}

// Filter keeps rejected results only when rejectedOnly is set.
func Filter(results []*core.BatchResult, rejectedOnly bool) []*core.BatchResult {
	if !rejectedOnly {
		return results
	}
	filtered := make([]*core.BatchResult, 0, len(results))
	for _, res := range results {
		if res != nil && res.Rejected {
			filtered = append(filtered, res)
		}
	}
	return filtered
}
