package store

import (
	"context"

	"github.com/tadeyemo32/career26-vanguard/internal/core"
)

// Company rebuilds what the store knows about a company: the official name
// from its variants (or the canonical name of a stored result) plus previous
// names. It returns nil when the company is unknown.
func (s *Store) Company(ctx context.Context, companyNumber string) (*core.Company, error) {
	variants, err := s.ListVariants(ctx, companyNumber)
	if err != nil {
		return nil, err
	}

	company := &core.Company{Number: companyNumber}
	for _, v := range variants {
		switch {
		case v.Type == core.VariantOfficial && company.Name == "":
			company.Name = v.Name
		default:
			company.PreviousNames = append(company.PreviousNames, v.Name)
		}
	}
	if company.Name != "" {
		return company, nil
	}

	stored, err := s.GetResult(ctx, companyNumber)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		company.Name = stored.CanonicalName
		return company, nil
	}
	if len(company.PreviousNames) > 0 {
		company.Name = company.PreviousNames[0]
		company.PreviousNames = company.PreviousNames[1:]
		return company, nil
	}
	return nil, nil
}
