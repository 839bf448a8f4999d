package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateConfigDirs points XDG lookups at empty temp dirs so a developer's
// own config file cannot leak into the test.
func isolateConfigDirs(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("LoadDefaults", func(t *testing.T) {
		isolateConfigDirs(t)

		cfg, err := Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		// Verify server defaults
		assert.Equal(t, "localhost", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

		// Verify store defaults
		assert.Equal(t, "libsql", cfg.Store.Driver)
		expectedStorePath := filepath.Join(gfconfig.GetAppDataDir("vanguard"), "vanguard.db")
		assert.Equal(t, expectedStorePath, cfg.Store.Path)
		assert.Equal(t, "", cfg.Store.URL)
		assert.Equal(t, "", cfg.Store.AuthToken)

		// Verify pipeline defaults
		assert.Equal(t, 5, cfg.Pipeline.MaxQueries)
		assert.True(t, cfg.Pipeline.IncludeLocationVariants)
		assert.Equal(t, 90.0, cfg.Pipeline.DedupThreshold)
		assert.Equal(t, 1.0, cfg.Pipeline.CommonWordZipf)
		assert.Equal(t, 2.0, cfg.Pipeline.ScoringZipf)
		assert.True(t, cfg.Pipeline.Similarity.Enabled)
		assert.Equal(t, "indel", cfg.Pipeline.Similarity.Algorithm)
		assert.False(t, cfg.Pipeline.Commonness.Enabled)
		assert.Empty(t, cfg.Pipeline.Commonness.Path)

		// Verify API defaults
		assert.Zero(t, cfg.API.RateLimit)
		assert.Equal(t, 20, cfg.API.RateBurst)
		assert.Equal(t, 1000, cfg.API.MaxBatch)

		assert.Equal(t, "info", cfg.Logging.Level)

		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, 9090, cfg.Metrics.Port)
		assert.True(t, cfg.Health.Enabled)
		assert.False(t, cfg.Debug.Enabled)
		assert.False(t, cfg.Debug.PprofEnabled)
		assert.Equal(t, 4, cfg.Workers)
	})

	t.Run("RuntimeOverrides", func(t *testing.T) {
		isolateConfigDirs(t)
		overrides := map[string]any{
			"server": map[string]any{
				"port": 9000,
				"host": "0.0.0.0",
			},
			"logging": map[string]any{
				"level": "debug",
			},
			"pipeline": map[string]any{
				"max_queries": 3,
			},
		}

		cfg, err := Load(ctx, overrides)
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, 3, cfg.Pipeline.MaxQueries)

		// Verify non-overridden values remain default
		assert.Equal(t, 9090, cfg.Metrics.Port)
		assert.Equal(t, 90.0, cfg.Pipeline.DedupThreshold)
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		isolateConfigDirs(t)
		t.Setenv("VANGUARD_PORT", "3000")
		t.Setenv("VANGUARD_LOG_LEVEL", "warn")
		t.Setenv("VANGUARD_METRICS_ENABLED", "false")
		t.Setenv("VANGUARD_MAX_QUERIES", "2")
		t.Setenv("VANGUARD_DEDUP_THRESHOLD", "85.5")
		t.Setenv("VANGUARD_SIMILARITY_ALGORITHM", "levenshtein")
		t.Setenv("VANGUARD_API_RATE_LIMIT", "12.5")

		cfg, err := Load(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.False(t, cfg.Metrics.Enabled)
		assert.Equal(t, 2, cfg.Pipeline.MaxQueries)
		assert.Equal(t, 85.5, cfg.Pipeline.DedupThreshold)
		assert.Equal(t, "levenshtein", cfg.Pipeline.Similarity.Algorithm)
		assert.Equal(t, 12.5, cfg.API.RateLimit)
	})

	t.Run("ConfigPrecedence", func(t *testing.T) {
		isolateConfigDirs(t)
		t.Setenv("VANGUARD_PORT", "4000")

		overrides := map[string]any{
			"server": map[string]any{
				"port": 5000,
			},
		}

		cfg, err := Load(ctx, overrides)
		require.NoError(t, err)
		assert.Equal(t, 5000, cfg.Server.Port)
	})
}

func TestLoadFile(t *testing.T) {
	isolateConfigDirs(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "vanguard.yaml")
	content := []byte(`
server:
  port: 7070
pipeline:
  max_queries: 7
  include_location_variants: false
  similarity:
    algorithm: levenshtein
    fold: true
  commonness:
    path: /tmp/freq.tsv
api:
  rate_limit: 5
  rate_burst: 10
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("VANGUARD_PORT", "7171")

	cfg, err := LoadFile(ctx, path)
	require.NoError(t, err)

	// env beats file
	assert.Equal(t, 7171, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Pipeline.MaxQueries)
	assert.False(t, cfg.Pipeline.IncludeLocationVariants)
	assert.Equal(t, "levenshtein", cfg.Pipeline.Similarity.Algorithm)
	assert.True(t, cfg.Pipeline.Similarity.Fold)
	assert.Equal(t, "/tmp/freq.tsv", cfg.Pipeline.Commonness.Path)
	assert.Equal(t, 5.0, cfg.API.RateLimit)
	assert.Equal(t, 10, cfg.API.RateBurst)
	// untouched keys keep defaults
	assert.Equal(t, 90.0, cfg.Pipeline.DedupThreshold)
	assert.Equal(t, path, ConfigFileUsed())

	_, err = LoadFile(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidPipeline(t *testing.T) {
	isolateConfigDirs(t)
	ctx := context.Background()

	_, err := Load(ctx, map[string]any{"pipeline": map[string]any{"max_queries": 0}})
	require.ErrorContains(t, err, "max_queries")

	_, err = Load(ctx, map[string]any{"pipeline": map[string]any{"dedup_threshold": 120.0}})
	require.ErrorContains(t, err, "dedup_threshold")

	_, err = Load(ctx, map[string]any{"pipeline": map[string]any{
		"similarity": map[string]any{"algorithm": "jaro"},
	}})
	require.ErrorContains(t, err, "algorithm")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Pipeline: PipelineConfig{MaxQueries: 5, DedupThreshold: 90, Similarity: SimilarityConfig{Algorithm: "indel"}},
			API:      APIConfig{MaxBatch: 1000},
			Workers:  4,
		}
	}
	require.NoError(t, Validate(valid()))
	require.Error(t, Validate(nil))

	cfg := valid()
	cfg.Pipeline.DedupThreshold = 0
	require.Error(t, Validate(cfg))

	cfg = valid()
	cfg.Pipeline.DedupThreshold = 100
	require.NoError(t, Validate(cfg))

	cfg = valid()
	cfg.API.RateLimit = -1
	require.Error(t, Validate(cfg))

	cfg = valid()
	cfg.API.MaxBatch = 0
	require.Error(t, Validate(cfg))

	cfg = valid()
	cfg.Workers = 0
	require.Error(t, Validate(cfg))
}

func TestGetConfig(t *testing.T) {
	isolateConfigDirs(t)
	ctx := context.Background()

	cfg, err := Load(ctx)
	require.NoError(t, err)

	retrieved := GetConfig()
	require.NotNil(t, retrieved)
	assert.Equal(t, cfg.Server.Port, retrieved.Server.Port)
	assert.Equal(t, cfg.Logging.Level, retrieved.Logging.Level)
}

func TestEnvSpecs(t *testing.T) {
	isolateConfigDirs(t)
	_, err := Load(context.Background())
	require.NoError(t, err)

	envVarNames := make(map[string]bool)
	for _, spec := range getEnvSpecs() {
		envVarNames[spec.Name] = true
	}

	for _, name := range []string{
		"VANGUARD_LOG_LEVEL",
		"VANGUARD_PORT",
		"VANGUARD_HOST",
		"VANGUARD_METRICS_PORT",
		"VANGUARD_DB_PATH",
		"VANGUARD_MAX_QUERIES",
		"VANGUARD_API_RATE_LIMIT",
	} {
		assert.True(t, envVarNames[name], "%s must be mapped", name)
	}
}

func TestDurationParsing(t *testing.T) {
	isolateConfigDirs(t)
	t.Setenv("VANGUARD_READ_TIMEOUT", "45s")
	t.Setenv("VANGUARD_SHUTDOWN_TIMEOUT", "5m")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Server.ShutdownTimeout)
}

func TestConfigReload(t *testing.T) {
	isolateConfigDirs(t)
	ctx := context.Background()

	cfg1, err := Load(ctx)
	require.NoError(t, err)
	initialPort := cfg1.Server.Port

	cfg2, err := Load(ctx, map[string]any{
		"server": map[string]any{"port": initialPort + 1000},
	})
	require.NoError(t, err)
	assert.Equal(t, initialPort+1000, cfg2.Server.Port)
	assert.Equal(t, cfg2.Server.Port, GetConfig().Server.Port)
}
