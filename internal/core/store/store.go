// Package store persists pipeline results and company name variants in
// libSQL, either a local SQLite file or a remote Turso database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/tadeyemo32/career26-vanguard/internal/config"
	"github.com/tadeyemo32/career26-vanguard/internal/metrics"
)

const (
	driverLibsql = "libsql"
	memoryDSN    = ":memory:"

	busyTimeout = 5 * time.Second
)

var errNotOpen = errors.New("store is not open")

// Store wraps the database handle shared by result and variant queries.
type Store struct {
	DB     *sql.DB
	driver string
}

// target is a resolved connection string.
type target struct {
	dsn   string
	local bool
}

// Open connects to the configured database and verifies it answers. Local
// databases are tuned for a single writer.
func Open(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	driver := strings.TrimSpace(cfg.Driver)
	if driver == "" {
		driver = driverLibsql
	}
	if driver != driverLibsql {
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}

	tgt, err := resolveTarget(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverLibsql, tgt.dsn)
	if err != nil {
		return nil, fmt.Errorf("open libsql store: %w", err)
	}
	if err := prepare(ctx, db, tgt); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{DB: db, driver: driver}, nil
}

func prepare(ctx context.Context, db *sql.DB, tgt target) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping libsql store: %w", err)
	}
	if !tgt.local {
		return nil
	}

	// One connection keeps a :memory: database alive across queries and
	// serialises writers on a file.
	db.SetMaxOpenConns(1)
	if tgt.dsn == memoryDSN {
		return nil
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout.Milliseconds()),
	}
	for _, pragma := range pragmas {
		// both pragmas echo their new value as a row
		var ignored string
		if err := db.QueryRowContext(ctx, pragma).Scan(&ignored); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Ping backs the store health check.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errNotOpen
	}
	return s.DB.PingContext(ctx)
}

func (s *Store) Driver() string {
	if s == nil {
		return ""
	}
	return s.driver
}

// resolveTarget turns the store config into a libsql DSN. A URL wins over a
// path; bare paths become file: DSNs and get their directory created.
func resolveTarget(cfg config.StoreConfig) (target, error) {
	if raw := strings.TrimSpace(cfg.URL); raw != "" {
		dsn, err := withAuthToken(raw, cfg.AuthToken)
		return target{dsn: dsn}, err
	}

	path := strings.TrimSpace(cfg.Path)
	switch {
	case path == "":
		return target{}, errors.New("store path or url is required")
	case path == memoryDSN:
		return target{dsn: memoryDSN, local: true}, nil
	case strings.HasPrefix(path, "libsql:"):
		return target{dsn: path}, nil
	case strings.HasPrefix(path, "file:"):
		local, err := fileDSNPath(path)
		if err != nil {
			return target{}, err
		}
		return target{dsn: path, local: true}, makeParentDir(local)
	default:
		return target{dsn: "file:" + filepath.Clean(path), local: true}, makeParentDir(path)
	}
}

func withAuthToken(dsn, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return dsn, nil
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid store url: %w", err)
	}
	q := u.Query()
	if q.Get("authToken") != "" {
		return dsn, nil
	}
	q.Set("authToken", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// fileDSNPath extracts the filesystem path from a file: DSN.
func fileDSNPath(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid store path: %w", err)
	}
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	return strings.TrimPrefix(p, "//"), nil
}

func makeParentDir(path string) error {
	dir := filepath.Dir(filepath.Clean(path))
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}
	// #nosec G301 -- shared data directory
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	return nil
}

// observe records the outcome of a store call once it returns.
func observe(operation string, started time.Time, err *error) {
	metrics.RecordStoreOperation(operation, *err == nil, time.Since(started))
}
