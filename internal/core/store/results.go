package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tadeyemo32/career26-vanguard/internal/core"
	"github.com/tadeyemo32/career26-vanguard/internal/core/namesearch"
)

const upsertResultSQL = `
	INSERT INTO name_search_results (company_number, canonical_name, search_queries, rejected, rejection_reason, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(company_number) DO UPDATE SET
		canonical_name = excluded.canonical_name,
		search_queries = excluded.search_queries,
		rejected = excluded.rejected,
		rejection_reason = excluded.rejection_reason,
		updated_at = excluded.updated_at
`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SaveResult stores a pipeline result keyed by company number. Re-running a
// company replaces its queries and keeps the original created_at.
func (s *Store) SaveResult(ctx context.Context, result namesearch.ResultMap) (err error) {
	defer observe("save_result", time.Now(), &err)
	if s == nil || s.DB == nil {
		return errNotOpen
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return saveResult(ctx, s.DB, result, time.Now().UTC())
}

// SaveResults stores many results in one transaction.
func (s *Store) SaveResults(ctx context.Context, results []namesearch.ResultMap) (err error) {
	defer observe("save_results", time.Now(), &err)
	if s == nil || s.DB == nil {
		return errNotOpen
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin results transaction: %w", err)
	}
	now := time.Now().UTC()
	for _, result := range results {
		if err = saveResult(ctx, tx, result, now); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit results: %w", err)
	}
	return nil
}

func saveResult(ctx context.Context, db execer, result namesearch.ResultMap, now time.Time) error {
	number := strings.TrimSpace(result.CompanyNumber)
	if number == "" {
		return errors.New("company number is required")
	}

	queries := result.SearchQueries
	if queries == nil {
		queries = []string{}
	}
	payload, err := json.Marshal(queries)
	if err != nil {
		return fmt.Errorf("encode search queries: %w", err)
	}

	var reason sql.NullString
	if result.RejectionReason != nil {
		reason = sql.NullString{String: *result.RejectionReason, Valid: true}
	}

	_, err = db.ExecContext(ctx, upsertResultSQL,
		number, result.CanonicalName, string(payload), boolToInt(result.Rejected), reason, now.Unix(), now.Unix())
	if err != nil {
		return fmt.Errorf("store name search result: %w", err)
	}
	return nil
}

// GetResult returns the stored result for a company, or nil when none exists.
func (s *Store) GetResult(ctx context.Context, companyNumber string) (*core.StoredResult, error) {
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

	row := s.DB.QueryRowContext(ctx, `
		SELECT company_number, canonical_name, search_queries, rejected, rejection_reason, created_at
		FROM name_search_results
		WHERE company_number = ?
	`, number)

	result, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListResults returns stored results, newest first. limit <= 0 returns all.
func (s *Store) ListResults(ctx context.Context, limit int, rejectedOnly bool) ([]core.StoredResult, error) {
	if s == nil || s.DB == nil {
		return nil, errNotOpen
	}
	if ctx == nil {
		ctx = context.Background()
	}

	query := `
		SELECT company_number, canonical_name, search_queries, rejected, rejection_reason, created_at
		FROM name_search_results`
	args := make([]any, 0, 1)
	if rejectedOnly {
		query += ` WHERE rejected = 1`
	}
	query += ` ORDER BY created_at DESC, company_number ASC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list name search results: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	results := make([]core.StoredResult, 0)
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list name search results: %w", err)
	}
	return results, nil
}

// ResultStats counts stored results by outcome and rejection reason.
func (s *Store) ResultStats(ctx context.Context) (*core.ResultStats, error) {
	if s == nil || s.DB == nil {
		return nil, errNotOpen
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT rejected, COALESCE(rejection_reason, ''), COUNT(*)
		FROM name_search_results
		GROUP BY rejected, rejection_reason
	`)
	if err != nil {
		return nil, fmt.Errorf("query result stats: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	stats := &core.ResultStats{ByReason: make(map[string]int)}
	for rows.Next() {
		var (
			rejected int
			reason   string
			count    int
		)
		if err := rows.Scan(&rejected, &reason, &count); err != nil {
			return nil, fmt.Errorf("scan result stats: %w", err)
		}
		stats.Total += count
		if rejected == 0 {
			stats.Accepted += count
			continue
		}
		stats.Rejected += count
		stats.ByReason[reason] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query result stats: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*core.StoredResult, error) {
	var (
		number    string
		canonical string
		payload   string
		rejected  int
		reason    sql.NullString
		createdAt int64
	)
	if err := row.Scan(&number, &canonical, &payload, &rejected, &reason, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan name search result: %w", err)
	}

	queries := make([]string, 0)
	if err := json.Unmarshal([]byte(payload), &queries); err != nil {
		return nil, fmt.Errorf("decode search queries: %w", err)
	}

	result := &core.StoredResult{
		ResultMap: namesearch.ResultMap{
			CompanyNumber: number,
			CanonicalName: canonical,
			SearchQueries: queries,
			Rejected:      rejected != 0,
		},
		CreatedAt: time.Unix(createdAt, 0).UTC(),
	}
	if reason.Valid {
		value := reason.String
		result.RejectionReason = &value
	}
	return result, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
