//go:build cgo

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tadeyemo32/career26-vanguard/internal/config"
)

func TestOpenMemoryStoreMigrates(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, config.StoreConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.Equal(t, "libsql", s.Driver())
	require.NoError(t, s.Ping(ctx))

	version, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	require.Zero(t, version)

	require.NoError(t, s.Migrate(ctx))
	version, err = s.SchemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, len(migrations), version)

	// a second run is a no-op
	require.NoError(t, s.Migrate(ctx))
}

func TestOpenFileStoreTunesSQLite(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, config.StoreConfig{Path: t.TempDir() + "/data/vanguard.db"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.Equal(t, 1, s.DB.Stats().MaxOpenConnections)

	var journal string
	require.NoError(t, s.DB.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journal))
	require.Equal(t, "wal", journal)

	var timeout int
	require.NoError(t, s.DB.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
	require.EqualValues(t, busyTimeout.Milliseconds(), timeout)
}
