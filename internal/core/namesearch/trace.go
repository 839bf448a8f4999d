package namesearch

// CandidateCheck is the validation verdict for one symbol-cleaned candidate.
type CandidateCheck struct {
	Candidate string        `json:"candidate" yaml:"candidate"`
	Valid     bool          `json:"valid" yaml:"valid"`
	Reason    InvalidReason `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Trace records the intermediate values of one pipeline run. Stages that were
// never reached stay empty.
type Trace struct {
	Canonical      string            `json:"canonical" yaml:"canonical"`
	Normalized     string            `json:"normalized" yaml:"normalized"`
	LegalVariants  []string          `json:"legal_variants,omitempty" yaml:"legal_variants,omitempty"`
	SearchVariants []string          `json:"search_variants,omitempty" yaml:"search_variants,omitempty"`
	Validation     []CandidateCheck  `json:"validation,omitempty" yaml:"validation,omitempty"`
	Humanized      []string          `json:"humanized,omitempty" yaml:"humanized,omitempty"`
	Enriched       []string          `json:"enriched,omitempty" yaml:"enriched,omitempty"`
	Scored         []ScoredCandidate `json:"scored,omitempty" yaml:"scored,omitempty"`
	Deduplicated   []string          `json:"deduplicated,omitempty" yaml:"deduplicated,omitempty"`
	Final          []string          `json:"final" yaml:"final"`
	Rejection      string            `json:"rejection,omitempty" yaml:"rejection,omitempty"`
}
