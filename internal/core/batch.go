package core

import (
	"time"

	"github.com/tadeyemo32/career26-vanguard/internal/core/namesearch"
)

// BatchResult captures the pipeline outcome for one company in a batch.
type BatchResult struct {
	namesearch.ResultMap `yaml:",inline"`
	Index       int               `json:"-" yaml:"-"`
	Trace       *namesearch.Trace `json:"trace,omitempty" yaml:"trace,omitempty"`
	CompletedAt time.Time         `json:"completed_at" yaml:"completed_at"`
}

// BatchSummary totals a batch run.
type BatchSummary struct {
	Processed  int            `json:"processed" yaml:"processed"`
	Accepted   int            `json:"accepted" yaml:"accepted"`
	Rejected   int            `json:"rejected" yaml:"rejected"`
	Queries    int            `json:"queries" yaml:"queries"`
	ByReason   map[string]int `json:"by_reason" yaml:"by_reason"`
	DurationMs int64          `json:"duration_ms" yaml:"duration_ms"`
}
