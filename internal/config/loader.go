// Package config provides centralized configuration management for vanguard.
// Values are layered with viper: built-in defaults, an optional YAML config
// file, environment variables named after the app identity prefix, then
// runtime overrides.
package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fulmenhq/gofulmen/appidentity"
	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/tadeyemo32/career26-vanguard/internal/appid"
	"github.com/tadeyemo32/career26-vanguard/internal/core/similarity"
)

const (
	defaultAppName   = "vanguard"
	defaultEnvPrefix = "VANGUARD_"
)

var (
	// appConfig holds the current application configuration
	appConfig   *Config
	configFile  string
	configMu    sync.RWMutex
	appIdentity *appidentity.Identity
)

// EnvVarSpec defines environment variable mappings for config fields
// following the pattern: {PREFIX}{NAME} maps to config path
type EnvVarSpec = gfconfig.EnvVarSpec

// Environment variable types
const (
	EnvString = gfconfig.EnvString
	EnvInt    = gfconfig.EnvInt
	EnvBool   = gfconfig.EnvBool
)

// Load loads configuration from defaults, the discovered config file,
// environment variables and runtimeOverrides (highest precedence).
//
// This function is safe to call multiple times (e.g., for config reload)
func Load(ctx context.Context, runtimeOverrides ...map[string]any) (*Config, error) {
	return LoadFile(ctx, "", runtimeOverrides...)
}

// LoadFile is Load with an explicit config file. An empty path searches the
// app config directory and ./config for config.yaml; a missing file is not an
// error unless the path was given explicitly.
func LoadFile(ctx context.Context, path string, runtimeOverrides ...map[string]any) (*Config, error) {
	if appIdentity == nil {
		appIdentity = appid.GetOrFallback(ctx)
	}

	v := viper.New()
	setDefaults(v)

	if err := readConfigFile(v, path); err != nil {
		return nil, err
	}
	usedFile := v.ConfigFileUsed()

	envOverrides, err := gfconfig.LoadEnvOverrides(getEnvSpecs())
	if err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}
	if err := v.MergeConfigMap(envOverrides); err != nil {
		return nil, fmt.Errorf("failed to merge environment overrides: %w", err)
	}
	for _, overrides := range runtimeOverrides {
		if err := v.MergeConfigMap(overrides); err != nil {
			return nil, fmt.Errorf("failed to merge runtime overrides: %w", err)
		}
	}

	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToFloat64HookFunc(),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.Store.URL) == "" && strings.TrimSpace(cfg.Store.Path) == "" {
		cfg.Store.Path = DefaultStorePath()
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	setConfig(cfg, usedFile)

	return cfg, nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	for _, dir := range getUserConfigDirs() {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath("./config")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// ConfigFileUsed returns the file read by the last Load, or "" when only
// defaults and environment were used.
func ConfigFileUsed() string {
	configMu.RLock()
	defer configMu.RUnlock()
	return configFile
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Logging defaults
	v.SetDefault("logging.level", "info")

	// Store defaults
	v.SetDefault("store.driver", "libsql")
	v.SetDefault("store.path", "")
	v.SetDefault("store.url", "")
	v.SetDefault("store.auth_token", "")

	// Pipeline defaults
	v.SetDefault("pipeline.max_queries", 5)
	v.SetDefault("pipeline.include_location_variants", true)
	v.SetDefault("pipeline.dedup_threshold", 90.0)
	v.SetDefault("pipeline.common_word_zipf", 1.0)
	v.SetDefault("pipeline.scoring_zipf", 2.0)
	v.SetDefault("pipeline.similarity.enabled", true)
	v.SetDefault("pipeline.similarity.algorithm", string(similarity.AlgorithmIndel))
	v.SetDefault("pipeline.similarity.fold", false)
	v.SetDefault("pipeline.commonness.enabled", false)
	v.SetDefault("pipeline.commonness.path", "")

	// API defaults
	v.SetDefault("api.rate_limit", 0.0)
	v.SetDefault("api.rate_burst", 20)
	v.SetDefault("api.max_batch", 1000)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)

	// Health check defaults
	v.SetDefault("health.enabled", true)

	// Worker defaults
	v.SetDefault("workers", 4)

	// Debug defaults
	v.SetDefault("debug.enabled", false)
	v.SetDefault("debug.pprof_enabled", false)
}

// Validate rejects settings the pipeline cannot honour.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	p := cfg.Pipeline
	if p.MaxQueries < 1 {
		return fmt.Errorf("pipeline.max_queries must be at least 1, got %d", p.MaxQueries)
	}
	if p.DedupThreshold <= 0 || p.DedupThreshold > 100 {
		return fmt.Errorf("pipeline.dedup_threshold must be in (0, 100], got %g", p.DedupThreshold)
	}
	if p.CommonWordZipf < 0 || p.ScoringZipf < 0 {
		return errors.New("pipeline zipf thresholds must not be negative")
	}
	if _, err := similarity.ParseAlgorithm(p.Similarity.Algorithm); err != nil {
		return fmt.Errorf("pipeline.similarity.algorithm: %w", err)
	}
	if cfg.API.RateLimit < 0 || cfg.API.RateBurst < 0 {
		return errors.New("api rate limit settings must not be negative")
	}
	if cfg.API.MaxBatch < 1 {
		return fmt.Errorf("api.max_batch must be at least 1, got %d", cfg.API.MaxBatch)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	return nil
}

// GetConfig returns the current application configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// setConfig updates the current configuration (thread-safe)
func setConfig(cfg *Config, file string) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
	configFile = file
}

func envPrefix() string {
	prefix := defaultEnvPrefix
	if appIdentity != nil && strings.TrimSpace(appIdentity.EnvPrefix) != "" {
		prefix = appIdentity.EnvPrefix
	}
	if !strings.HasSuffix(prefix, "_") {
		prefix += "_"
	}
	return prefix
}

// getUserConfigDirs returns the XDG config directories to search, current
// name first, then the binary name when it differs.
func getUserConfigDirs() []string {
	configName, binaryName := appNamesForPaths()
	dirs := []string{}
	if dir := gfconfig.GetAppConfigDir(configName); strings.TrimSpace(dir) != "" {
		dirs = append(dirs, dir)
	}
	if binaryName != configName {
		if dir := gfconfig.GetAppConfigDir(binaryName); strings.TrimSpace(dir) != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// getEnvSpecs returns environment variable specifications for config mapping
// Maps {PREFIX}{NAME} environment variables to config paths
func getEnvSpecs() []EnvVarSpec {
	prefix := envPrefix()

	return []EnvVarSpec{
		// Server config
		{Name: prefix + "HOST", Path: []string{"server", "host"}, Type: EnvString},
		{Name: prefix + "PORT", Path: []string{"server", "port"}, Type: EnvInt},
		// Duration fields are parsed as strings and converted by mapstructure decode hook
		{Name: prefix + "READ_TIMEOUT", Path: []string{"server", "read_timeout"}, Type: EnvString},
		{Name: prefix + "WRITE_TIMEOUT", Path: []string{"server", "write_timeout"}, Type: EnvString},
		{Name: prefix + "IDLE_TIMEOUT", Path: []string{"server", "idle_timeout"}, Type: EnvString},
		{Name: prefix + "SHUTDOWN_TIMEOUT", Path: []string{"server", "shutdown_timeout"}, Type: EnvString},

		{Name: prefix + "LOG_LEVEL", Path: []string{"logging", "level"}, Type: EnvString},

		// Store config
		{Name: prefix + "DB_DRIVER", Path: []string{"store", "driver"}, Type: EnvString},
		{Name: prefix + "DB_PATH", Path: []string{"store", "path"}, Type: EnvString},
		{Name: prefix + "DB_URL", Path: []string{"store", "url"}, Type: EnvString},
		{Name: prefix + "DB_AUTH_TOKEN", Path: []string{"store", "auth_token"}, Type: EnvString},

		// Pipeline config; float values are strings for the decode hook
		{Name: prefix + "MAX_QUERIES", Path: []string{"pipeline", "max_queries"}, Type: EnvInt},
		{Name: prefix + "INCLUDE_LOCATION_VARIANTS", Path: []string{"pipeline", "include_location_variants"}, Type: EnvBool},
		{Name: prefix + "DEDUP_THRESHOLD", Path: []string{"pipeline", "dedup_threshold"}, Type: EnvString},
		{Name: prefix + "COMMON_WORD_ZIPF", Path: []string{"pipeline", "common_word_zipf"}, Type: EnvString},
		{Name: prefix + "SCORING_ZIPF", Path: []string{"pipeline", "scoring_zipf"}, Type: EnvString},
		{Name: prefix + "SIMILARITY_ENABLED", Path: []string{"pipeline", "similarity", "enabled"}, Type: EnvBool},
		{Name: prefix + "SIMILARITY_ALGORITHM", Path: []string{"pipeline", "similarity", "algorithm"}, Type: EnvString},
		{Name: prefix + "SIMILARITY_FOLD", Path: []string{"pipeline", "similarity", "fold"}, Type: EnvBool},
		{Name: prefix + "COMMONNESS_ENABLED", Path: []string{"pipeline", "commonness", "enabled"}, Type: EnvBool},
		{Name: prefix + "COMMONNESS_PATH", Path: []string{"pipeline", "commonness", "path"}, Type: EnvString},

		// API config
		{Name: prefix + "API_RATE_LIMIT", Path: []string{"api", "rate_limit"}, Type: EnvString},
		{Name: prefix + "API_RATE_BURST", Path: []string{"api", "rate_burst"}, Type: EnvInt},
		{Name: prefix + "API_MAX_BATCH", Path: []string{"api", "max_batch"}, Type: EnvInt},

		// Metrics config
		{Name: prefix + "METRICS_ENABLED", Path: []string{"metrics", "enabled"}, Type: EnvBool},
		{Name: prefix + "METRICS_PORT", Path: []string{"metrics", "port"}, Type: EnvInt},

		// Health config
		{Name: prefix + "HEALTH_ENABLED", Path: []string{"health", "enabled"}, Type: EnvBool},

		// Debug config
		{Name: prefix + "DEBUG_ENABLED", Path: []string{"debug", "enabled"}, Type: EnvBool},
		{Name: prefix + "DEBUG_PPROF_ENABLED", Path: []string{"debug", "pprof_enabled"}, Type: EnvBool},

		// Workers
		{Name: prefix + "WORKERS", Path: []string{"workers"}, Type: EnvInt},
	}
}

// appNamesForPaths returns the config name and binary name from app identity,
// falling back to "vanguard" if not set.
func appNamesForPaths() (configName string, binaryName string) {
	configName = defaultAppName
	binaryName = defaultAppName
	if appIdentity == nil {
		return configName, binaryName
	}

	if strings.TrimSpace(appIdentity.ConfigName) != "" {
		configName = appIdentity.ConfigName
	}
	if strings.TrimSpace(appIdentity.BinaryName) != "" {
		binaryName = appIdentity.BinaryName
	}
	return configName, binaryName
}

// DefaultConfigPath returns the XDG-compliant path to the user config file.
func DefaultConfigPath() string {
	configName, _ := appNamesForPaths()
	configDir := gfconfig.GetAppConfigDir(configName)
	if strings.TrimSpace(configDir) == "" {
		return ""
	}
	return filepath.Join(configDir, "config.yaml")
}

// DefaultDataDir returns the XDG-compliant data directory for the app.
func DefaultDataDir() string {
	configName, _ := appNamesForPaths()
	return gfconfig.GetAppDataDir(configName)
}

// DefaultCacheDir returns the XDG-compliant cache directory for the app.
func DefaultCacheDir() string {
	configName, _ := appNamesForPaths()
	return gfconfig.GetAppCacheDir(configName)
}

// DefaultStorePath returns the XDG-compliant path to the database file.
func DefaultStorePath() string {
	configName, binaryName := appNamesForPaths()
	dataDir := gfconfig.GetAppDataDir(configName)
	if strings.TrimSpace(dataDir) == "" {
		return "./" + binaryName + ".db"
	}
	return filepath.Join(dataDir, binaryName+".db")
}
