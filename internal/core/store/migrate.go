package store

import (
	"context"
	"fmt"
)

// migrations are applied in order; PRAGMA user_version holds the number
// already applied. Append only.
var migrations = [][]string{
	{
		`CREATE TABLE IF NOT EXISTS name_search_results (
			company_number TEXT PRIMARY KEY,
			canonical_name TEXT NOT NULL,
			search_queries TEXT NOT NULL,
			rejected INTEGER NOT NULL DEFAULT 0,
			rejection_reason TEXT,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_name_search_results_rejected ON name_search_results(rejected)`,
		`CREATE TABLE IF NOT EXISTS company_name_variants (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_number TEXT NOT NULL,
			variant_name TEXT NOT NULL,
			variant_type TEXT NOT NULL,
			source TEXT NOT NULL,
			confidence REAL NOT NULL DEFAULT 1.0,
			created_at INTEGER NOT NULL,
			UNIQUE(company_number, variant_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_company_name_variants_number ON company_name_variants(company_number)`,
	},
	{
		`ALTER TABLE name_search_results ADD COLUMN updated_at INTEGER`,
	},
}

// SchemaVersion reports how many migrations have been applied.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	if s == nil || s.DB == nil {
		return 0, errNotOpen
	}
	var version int
	if err := s.DB.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// Migrate applies pending migrations, each in its own transaction.
func (s *Store) Migrate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	for i := current; i < len(migrations); i++ {
		if err := s.applyMigration(ctx, i+1, migrations[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) applyMigration(ctx context.Context, version int, stmts []string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migration %d: begin: %w", version, err)
	}
	defer tx.Rollback() // nolint:errcheck // no-op after commit

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", version, err)
		}
	}
	// PRAGMA does not accept bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("migration %d: set version: %w", version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %d: commit: %w", version, err)
	}
	return nil
}
