package namesearch

// RejectionReason labels why no search query could be produced. The set is closed;
// callers should branch on Rejected() and keep the reason for logs and audit.
type RejectionReason string

const (
	ReasonEmptyName          RejectionReason = "Empty company name"
	ReasonEmptyNormalization RejectionReason = "Normalization produced empty string"
	ReasonNoPlausibleName    RejectionReason = "No plausible human-readable company name"
	ReasonNoCandidates       RejectionReason = "No valid candidates after scoring"
)

// RejectionReasons lists every reason the pipeline can emit, in stage order.
var RejectionReasons = []RejectionReason{
	ReasonEmptyName,
	ReasonEmptyNormalization,
	ReasonNoPlausibleName,
	ReasonNoCandidates,
}

// Outcome is either accepted (one or more queries) or rejected (a reason).
// The zero value is a rejection with ReasonNoCandidates.
type Outcome struct {
	queries []string
	reason  RejectionReason
}

func accept(queries []string) Outcome {
	if len(queries) == 0 {
		return reject(ReasonNoCandidates)
	}
	out := make([]string, len(queries))
	copy(out, queries)
	return Outcome{queries: out}
}

func reject(reason RejectionReason) Outcome {
	if reason == "" {
		reason = ReasonNoCandidates
	}
	return Outcome{reason: reason}
}

// Accepted reports whether the outcome carries queries.
func (o Outcome) Accepted() bool {
	return len(o.queries) > 0
}

// Queries returns a copy of the ranked queries; nil when rejected.
func (o Outcome) Queries() []string {
	if len(o.queries) == 0 {
		return nil
	}
	out := make([]string, len(o.queries))
	copy(out, o.queries)
	return out
}

// Reason returns the rejection reason and true when rejected.
func (o Outcome) Reason() (RejectionReason, bool) {
	if o.Accepted() {
		return "", false
	}
	if o.reason == "" {
		return ReasonNoCandidates, true
	}
	return o.reason, true
}

// Result is the output of one pipeline invocation.
type Result struct {
	CompanyNumber string
	// CanonicalName is the trimmed input, kept for traceability only.
	CanonicalName string
	Outcome       Outcome
}

// SearchQueries returns the ranked queries (highest score first).
func (r Result) SearchQueries() []string {
	return r.Outcome.Queries()
}

// Rejected reports whether no valid candidate could be produced.
func (r Result) Rejected() bool {
	return !r.Outcome.Accepted()
}

// RejectionReason returns the reason and true when the result is rejected.
func (r Result) RejectionReason() (RejectionReason, bool) {
	return r.Outcome.Reason()
}

// Map converts the result to the plain mapping shared with downstream consumers.
func (r Result) Map() ResultMap {
	m := ResultMap{
		CompanyNumber: r.CompanyNumber,
		CanonicalName: r.CanonicalName,
		SearchQueries: r.SearchQueries(),
		Rejected:      r.Rejected(),
	}
	if m.SearchQueries == nil {
		m.SearchQueries = []string{}
	}
	if reason, ok := r.RejectionReason(); ok {
		value := string(reason)
		m.RejectionReason = &value
	}
	return m
}

// ResultMap is the serialized result shape. It is the only shape that search
// query resolution and enrichment consumers may depend on.
type ResultMap struct {
	CompanyNumber   string   `json:"company_number" yaml:"company_number"`
	CanonicalName   string   `json:"canonical_name" yaml:"canonical_name"`
	SearchQueries   []string `json:"search_queries" yaml:"search_queries"`
	Rejected        bool     `json:"rejected" yaml:"rejected"`
	RejectionReason *string  `json:"rejection_reason" yaml:"rejection_reason"`
}

// Reason returns the rejection reason or an empty string.
func (m ResultMap) Reason() string {
	if m.RejectionReason == nil {
		return ""
	}
	return *m.RejectionReason
}

// Address carries the optional location context of a company record.
type Address struct {
	PostTown string `json:"post_town,omitempty" yaml:"post_town,omitempty"`
	Country  string `json:"country,omitempty" yaml:"country,omitempty"`
}

// Record is a company record as supplied by the register ingestion layer.
type Record struct {
	CompanyNumber string   `json:"company_number" yaml:"company_number"`
	CompanyName   string   `json:"company_name" yaml:"company_name"`
	Address       *Address `json:"address,omitempty" yaml:"address,omitempty"`
}

func (r Record) location() (string, string) {
	if r.Address == nil {
		return "", ""
	}
	return r.Address.PostTown, r.Address.Country
}
