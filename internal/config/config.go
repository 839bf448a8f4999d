package config

import (
	"time"
)

// Config represents the complete application configuration.
// Precedence, lowest first: built-in defaults, config file, environment
// variables, runtime overrides.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	API      APIConfig      `mapstructure:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Health   HealthConfig   `mapstructure:"health"`
	Debug    DebugConfig    `mapstructure:"debug"`
	Workers  int            `mapstructure:"workers"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig contains database configuration for libsql/Turso
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// PipelineConfig tunes the name-to-search pipeline.
type PipelineConfig struct {
	MaxQueries              int              `mapstructure:"max_queries"`
	IncludeLocationVariants bool             `mapstructure:"include_location_variants"`
	DedupThreshold          float64          `mapstructure:"dedup_threshold"`
	CommonWordZipf          float64          `mapstructure:"common_word_zipf"`
	ScoringZipf             float64          `mapstructure:"scoring_zipf"`
	Similarity              SimilarityConfig `mapstructure:"similarity"`
	Commonness              CommonnessConfig `mapstructure:"commonness"`
}

// SimilarityConfig selects the fuzzy ratio used for near-duplicate removal.
type SimilarityConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Algorithm string `mapstructure:"algorithm"`
	// Fold compares transliterated, lower-cased forms.
	Fold bool `mapstructure:"fold"`
}

// CommonnessConfig selects the word frequency source.
// An empty Path uses the embedded English table.
type CommonnessConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// APIConfig contains REST API limits.
type APIConfig struct {
	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
	MaxBatch  int     `mapstructure:"max_batch"`
}

// LoggingConfig sets the server log level: trace, debug, info, warn or
// error. CLI commands log at info, or debug with --verbose.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated metrics endpoint port (Prometheus format)
	Port int `mapstructure:"port"`
}

// HealthConfig contains health check configuration
type HealthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DebugConfig contains debug and profiling configuration
type DebugConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// PprofEnabled controls whether pprof endpoints are exposed
	// WARNING: Only enable in development/staging environments
	PprofEnabled bool `mapstructure:"pprof_enabled"`
}
