package namesearch

import (
	"sync"

	"github.com/tadeyemo32/career26-vanguard/internal/core/similarity"
)

const (
	// DefaultMaxQueries caps the number of emitted queries.
	DefaultMaxQueries = 5

	// DefaultCommonWordZipf is the validation threshold for a common token.
	DefaultCommonWordZipf = 1.0

	// DefaultScoringZipf is the threshold for the common-word scoring bonus.
	DefaultScoringZipf = 2.0

	// enrichedBaseCount is how many humanized candidates get a location variant.
	enrichedBaseCount = 2
)

// Options tune a single invocation.
type Options struct {
	MaxQueries              int  `json:"max_queries" yaml:"max_queries"`
	IncludeLocationVariants bool `json:"include_location_variants" yaml:"include_location_variants"`
}

// DefaultOptions returns MaxQueries 5 with location variants enabled.
func DefaultOptions() Options {
	return Options{MaxQueries: DefaultMaxQueries, IncludeLocationVariants: true}
}

func (o Options) maxQueries() int {
	if o.MaxQueries < 1 {
		return DefaultMaxQueries
	}
	return o.MaxQueries
}

// Pipeline turns legal company names into ranked search queries. It holds no
// mutable state after construction and is safe for concurrent use.
type Pipeline struct {
	commonness     WordCommonness
	similarity     StringSimilarity
	dedupThreshold float64
	minCommonZipf  float64
	scoringZipf    float64
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCommonness sets the word frequency source. Nil means none.
func WithCommonness(c WordCommonness) Option {
	return func(p *Pipeline) {
		if c == nil {
			c = NoCommonness{}
		}
		p.commonness = c
	}
}

// WithSimilarity sets the string similarity measure used for deduplication.
func WithSimilarity(s StringSimilarity) Option {
	return func(p *Pipeline) {
		if s == nil {
			s = NoSimilarity{}
		}
		p.similarity = s
	}
}

// WithDedupThreshold sets the near-duplicate ratio (0..100].
func WithDedupThreshold(t float64) Option {
	return func(p *Pipeline) {
		if t > 0 && t <= 100 {
			p.dedupThreshold = t
		}
	}
}

// WithCommonWordThreshold sets the zipf score a token needs to pass validation.
func WithCommonWordThreshold(z float64) Option {
	return func(p *Pipeline) { p.minCommonZipf = z }
}

// WithScoringCommonThreshold sets the zipf score a token needs for the scoring bonus.
func WithScoringCommonThreshold(z float64) Option {
	return func(p *Pipeline) { p.scoringZipf = z }
}

// New builds a pipeline. Without options it has no frequency source and no
// similarity measure, which is the most permissive configuration.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		commonness:     NoCommonness{},
		similarity:     NoSimilarity{},
		dedupThreshold: DefaultDedupThreshold,
		minCommonZipf:  DefaultCommonWordZipf,
		scoringZipf:    DefaultScoringZipf,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Default builds a pipeline with the built-in similarity measure. The word
// commonness gate stays off: the embedded frequency table is too small to judge
// register names, so callers opt in with WithCommonness and a full export.
// Extra options are applied afterwards.
func Default(opts ...Option) *Pipeline {
	base := []Option{
		WithSimilarity(similarity.NewMatcher()),
	}
	return New(append(base, opts...)...)
}

var (
	defaultOnce     sync.Once
	defaultPipeline *Pipeline
)

func shared() *Pipeline {
	defaultOnce.Do(func() {
		defaultPipeline = Default()
	})
	return defaultPipeline
}

// NameToSearch runs the default pipeline.
func NameToSearch(companyNumber, companyName, postTown, country string, opts Options) Result {
	return shared().NameToSearch(companyNumber, companyName, postTown, country, opts)
}

// NameToSearchFromRecord runs the default pipeline on a record.
func NameToSearchFromRecord(rec Record, opts Options) ResultMap {
	return shared().FromRecord(rec, opts)
}

// NameToSearch converts one legal name into ranked search queries or a rejection.
func (p *Pipeline) NameToSearch(companyNumber, companyName, postTown, country string, opts Options) Result {
	return p.run(companyNumber, companyName, postTown, country, opts, nil)
}

// FromRecord runs the pipeline on a record and returns the plain mapping.
func (p *Pipeline) FromRecord(rec Record, opts Options) ResultMap {
	town, country := rec.location()
	return p.NameToSearch(rec.CompanyNumber, rec.CompanyName, town, country, opts).Map()
}

// Explain runs the pipeline and records every intermediate stage.
func (p *Pipeline) Explain(companyNumber, companyName, postTown, country string, opts Options) (Result, Trace) {
	var trace Trace
	res := p.run(companyNumber, companyName, postTown, country, opts, &trace)
	return res, trace
}

func (p *Pipeline) run(number, name, postTown, country string, opts Options, trace *Trace) Result {
	canonical := Canonical(name)
	res := Result{CompanyNumber: number, CanonicalName: canonical}
	if trace != nil {
		trace.Canonical = canonical
	}

	finish := func(o Outcome) Result {
		res.Outcome = o
		if trace != nil {
			trace.Final = o.Queries()
			if reason, rejected := o.Reason(); rejected {
				trace.Rejection = string(reason)
			}
		}
		return res
	}

	if canonical == "" {
		return finish(reject(ReasonEmptyName))
	}

	normalized := Normalize(canonical)
	if trace != nil {
		trace.Normalized = normalized
	}
	if normalized == "" {
		return finish(reject(ReasonEmptyNormalization))
	}

	legal := LegalVariants(normalized)
	cleaned := make([]string, 0, len(legal))
	for _, v := range legal {
		if c := RemoveSymbols(v); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	cleaned = uniqueStrings(cleaned)
	if trace != nil {
		trace.LegalVariants = legal
		trace.SearchVariants = cleaned
	}

	valid := make([]string, 0, len(cleaned))
	for _, c := range cleaned {
		ok, why := p.Validate(c)
		if trace != nil {
			trace.Validation = append(trace.Validation, CandidateCheck{Candidate: c, Valid: ok, Reason: why})
		}
		if ok {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return finish(reject(ReasonNoPlausibleName))
	}

	humanized := make([]string, 0, len(valid))
	for _, v := range valid {
		humanized = append(humanized, Humanize(v))
	}
	humanized = uniqueStrings(humanized)
	if trace != nil {
		trace.Humanized = humanized
	}

	town, nation := newLocationHint(postTown), newLocationHint(country)
	candidates := humanized
	if opts.IncludeLocationVariants && (!town.empty() || !nation.empty()) {
		candidates = p.withLocationVariants(humanized, town, nation, trace)
	}

	scored := p.rank(candidates, town, nation)
	ordered := make([]string, 0, len(scored))
	for _, s := range scored {
		ordered = append(ordered, s.Query)
	}
	deduped := p.Dedupe(ordered)
	if trace != nil {
		trace.Scored = scored
		trace.Deduplicated = deduped
	}

	if limit := opts.maxQueries(); len(deduped) > limit {
		deduped = deduped[:limit]
	}
	return finish(accept(deduped))
}

// withLocationVariants appends enriched forms of the leading candidates. An
// enriched form is kept only when it differs from its base and still validates.
func (p *Pipeline) withLocationVariants(base []string, town, nation locationHint, trace *Trace) []string {
	out := make([]string, len(base), len(base)+enrichedBaseCount)
	copy(out, base)

	limit := enrichedBaseCount
	if len(base) < limit {
		limit = len(base)
	}
	for _, b := range base[:limit] {
		enriched := enrich(b, town, nation)
		if enriched == b {
			continue
		}
		if ok, _ := p.Validate(enriched); !ok {
			continue
		}
		if trace != nil {
			trace.Enriched = append(trace.Enriched, enriched)
		}
		out = append(out, enriched)
	}
	return uniqueStrings(out)
}
