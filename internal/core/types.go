package core

import (
	"strings"
	"time"

	"github.com/tadeyemo32/career26-vanguard/internal/core/namesearch"
)

// Company is one register entry: the identity the pipeline needs plus the
// register-only extras used for filtering and name variants.
type Company struct {
	Number        string   `json:"company_number" yaml:"company_number"`
	Name          string   `json:"company_name" yaml:"company_name"`
	Status        string   `json:"company_status,omitempty" yaml:"company_status,omitempty"`
	PostTown      string   `json:"post_town,omitempty" yaml:"post_town,omitempty"`
	Country       string   `json:"country,omitempty" yaml:"country,omitempty"`
	PreviousNames []string `json:"previous_names,omitempty" yaml:"previous_names,omitempty"`
}

// Record converts the company to pipeline input.
func (c Company) Record() namesearch.Record {
	rec := namesearch.Record{CompanyNumber: c.Number, CompanyName: c.Name}
	if strings.TrimSpace(c.PostTown) != "" || strings.TrimSpace(c.Country) != "" {
		rec.Address = &namesearch.Address{PostTown: c.PostTown, Country: c.Country}
	}
	return rec
}

// IsActive reports an "Active" register status, including qualified forms
// such as "Active - Proposal to Strike off".
func (c Company) IsActive() bool {
	status := strings.TrimSpace(c.Status)
	return status == "Active" || strings.HasPrefix(status, "Active ")
}

// VariantType classifies a stored company name.
type VariantType string

const (
	VariantOfficial VariantType = "official"
	VariantPrevious VariantType = "previous"
)

// Confidence assigned to stored variants by type.
const (
	OfficialConfidence = 1.0
	PreviousConfidence = 0.9
)

// NameVariant is a known name for a company.
type NameVariant struct {
	CompanyNumber string      `json:"company_number" yaml:"company_number"`
	Name          string      `json:"variant_name" yaml:"variant_name"`
	Type          VariantType `json:"variant_type" yaml:"variant_type"`
	Source        string      `json:"source" yaml:"source"`
	Confidence    float64     `json:"confidence" yaml:"confidence"`
	CreatedAt     time.Time   `json:"created_at" yaml:"created_at"`
}

// StoredResult is a persisted pipeline result.
type StoredResult struct {
	namesearch.ResultMap `yaml:",inline"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ResultStats aggregates persisted results.
type ResultStats struct {
	Total    int            `json:"total" yaml:"total"`
	Accepted int            `json:"accepted" yaml:"accepted"`
	Rejected int            `json:"rejected" yaml:"rejected"`
	ByReason map[string]int `json:"by_reason" yaml:"by_reason"`
}
