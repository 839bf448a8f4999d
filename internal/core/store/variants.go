package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tadeyemo32/career26-vanguard/internal/core"
)

// DefaultVariantSource labels variants imported from a register extract.
const DefaultVariantSource = "companies_house"

const insertVariantSQL = `
	INSERT OR IGNORE INTO company_name_variants (company_number, variant_name, variant_type, source, confidence, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
`

// UpsertVariant stores a name variant unless the company already has that
// name. It reports whether a row was inserted.
func (s *Store) UpsertVariant(ctx context.Context, variant core.NameVariant) (bool, error) {
	if s == nil || s.DB == nil {
		return false, errNotOpen
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return insertVariant(ctx, s.DB, variant, time.Now().UTC())
}

func insertVariant(ctx context.Context, db execer, variant core.NameVariant, now time.Time) (bool, error) {
	number := strings.TrimSpace(variant.CompanyNumber)
	name := collapseSpaces(variant.Name)
	if number == "" || name == "" {
		return false, errors.New("company number and variant name are required")
	}
	variantType := variant.Type
	if variantType == "" {
		variantType = core.VariantOfficial
	}
	source := strings.TrimSpace(variant.Source)
	if source == "" {
		source = DefaultVariantSource
	}
	confidence := variant.Confidence
	if confidence <= 0 {
		confidence = core.OfficialConfidence
	}

	res, err := db.ExecContext(ctx, insertVariantSQL, number, name, string(variantType), source, confidence, now.Unix())
	if err != nil {
		return false, fmt.Errorf("store name variant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		// Inserted, but the driver cannot say so.
		return false, nil
	}
	return affected > 0, nil
}

// VariantNames returns stored names for a company: the official name first,
// then the rest by descending confidence.
func (s *Store) VariantNames(ctx context.Context, companyNumber string) ([]string, error) {
	variants, err := s.ListVariants(ctx, companyNumber)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(variants))
	for _, v := range variants {
		names = append(names, v.Name)
	}
	return names, nil
}

// ListVariants returns stored variants for a company in VariantNames order.
func (s *Store) ListVariants(ctx context.Context, companyNumber string) ([]core.NameVariant, error) {
	if s == nil || s.DB == nil {
		return nil, errNotOpen
	}
	if ctx == nil {
		ctx = context.Background()
	}

	number := strings.TrimSpace(companyNumber)
	if number == "" {
		return nil, errors.New("company number is required")
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT company_number, variant_name, variant_type, source, confidence, created_at
		FROM company_name_variants
		WHERE company_number = ?
		ORDER BY variant_type = 'official' DESC, confidence DESC, id ASC
	`, number)
	if err != nil {
		return nil, fmt.Errorf("list name variants: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	variants := make([]core.NameVariant, 0)
	for rows.Next() {
		var (
			v           core.NameVariant
			variantType string
			createdAt   int64
		)
		if err := rows.Scan(&v.CompanyNumber, &v.Name, &variantType, &v.Source, &v.Confidence, &createdAt); err != nil {
			return nil, fmt.Errorf("scan name variant: %w", err)
		}
		v.Type = core.VariantType(variantType)
		v.CreatedAt = time.Unix(createdAt, 0).UTC()
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list name variants: %w", err)
	}
	return variants, nil
}

// PopulateVariants records each company's official name and previous names.
// It is idempotent and returns the number of rows inserted.
func (s *Store) PopulateVariants(ctx context.Context, companies []core.Company, source string) (_ int, err error) {
	defer observe("populate_variants", time.Now(), &err)
	if s == nil || s.DB == nil {
		return 0, errNotOpen
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if len(companies) == 0 {
		return 0, nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin variants transaction: %w", err)
	}

	now := time.Now().UTC()
	inserted := 0
	insert := func(v core.NameVariant) error {
		ok, err := insertVariant(ctx, tx, v, now)
		if err != nil {
			return err
		}
		if ok {
			inserted++
		}
		return nil
	}

	for _, c := range companies {
		number := strings.TrimSpace(c.Number)
		official := collapseSpaces(c.Name)
		if number == "" {
			continue
		}
		if official != "" {
			if err = insert(core.NameVariant{
				CompanyNumber: number,
				Name:          official,
				Type:          core.VariantOfficial,
				Source:        source,
				Confidence:    core.OfficialConfidence,
			}); err != nil {
				_ = tx.Rollback()
				return 0, err
			}
		}
		for _, prev := range c.PreviousNames {
			name := collapseSpaces(prev)
			if name == "" || name == official {
				continue
			}
			if err = insert(core.NameVariant{
				CompanyNumber: number,
				Name:          name,
				Type:          core.VariantPrevious,
				Source:        source,
				Confidence:    core.PreviousConfidence,
			}); err != nil {
				_ = tx.Rollback()
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit variants: %w", err)
	}
	return inserted, nil
}

func collapseSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
