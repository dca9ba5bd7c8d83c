package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides. Double underscores
// separate nesting levels: KAGGLE_MCP_CACHE__MAX_TTL sets cache.max_ttl.
const EnvPrefix = "KAGGLE_MCP_"

// Sentinel errors for configuration validation.
var (
	ErrInvalidPageSize = errors.New("config: invalid page size")
	ErrInvalidTTL      = errors.New("config: invalid cache TTL")
	ErrInvalidRetry    = errors.New("config: invalid retry settings")
	ErrEmptyRoot       = errors.New("config: download root is empty")
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Kaggle   KaggleConfig   `koanf:"kaggle"`
	Download DownloadConfig `koanf:"download"`
	Page     PageConfig     `koanf:"page"`
	Cache    CacheConfig    `koanf:"cache"`
	Retry    RetryConfig    `koanf:"retry"`
	Observe  ObserveConfig  `koanf:"observe"`
}

// ServerConfig names the MCP server as advertised to clients.
type ServerConfig struct {
	Name    string `koanf:"name"`
	Version string `koanf:"version"`
}

// KaggleConfig overrides credential discovery and the API endpoint.
// Username and Key fall back to the standard Kaggle sources when empty.
type KaggleConfig struct {
	Username string `koanf:"username"`
	Key      string `koanf:"key"`
	BaseURL  string `koanf:"base_url"`
}

// DownloadConfig controls where downloaded files land.
type DownloadConfig struct {
	Root string `koanf:"root"`
}

// PageConfig bounds pagination arguments.
type PageConfig struct {
	DefaultSize int `koanf:"default_size"`
	MaxSize     int `koanf:"max_size"`
}

// CacheConfig holds per-resource TTLs.
type CacheConfig struct {
	Enabled         bool          `koanf:"enabled"`
	CompetitionsTTL time.Duration `koanf:"competitions_ttl"`
	DatasetsTTL     time.Duration `koanf:"datasets_ttl"`
	ModelsTTL       time.Duration `koanf:"models_ttl"`
	MaxTTL          time.Duration `koanf:"max_ttl"`
}

// RetryConfig bounds retries of transient remote failures.
type RetryConfig struct {
	MaxAttempts   int           `koanf:"max_attempts"`
	InitialDelay  time.Duration `koanf:"initial_delay"`
	MaxDelay      time.Duration `koanf:"max_delay"`
	RemoteTimeout time.Duration `koanf:"remote_timeout"`
}

// ObserveConfig selects telemetry exporters and the log level.
type ObserveConfig struct {
	Enabled         bool   `koanf:"enabled"`
	ServiceName     string `koanf:"service_name"`
	TracingExporter string `koanf:"tracing_exporter"`
	MetricsExporter string `koanf:"metrics_exporter"`
	LogLevel        string `koanf:"log_level"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.name":              "kaggle-mcp",
		"server.version":           "1.0.0",
		"kaggle.base_url":          "https://www.kaggle.com/api/v1",
		"download.root":            "./kaggle_data",
		"page.default_size":        20,
		"page.max_size":            100,
		"cache.enabled":            true,
		"cache.competitions_ttl":   "1h",
		"cache.datasets_ttl":       "6h",
		"cache.models_ttl":         "6h",
		"cache.max_ttl":            "24h",
		"retry.max_attempts":       3,
		"retry.initial_delay":      "500ms",
		"retry.max_delay":          "10s",
		"retry.remote_timeout":     "60s",
		"observe.enabled":          false,
		"observe.service_name":     "kaggle-mcp",
		"observe.tracing_exporter": "none",
		"observe.metrics_exporter": "none",
		"observe.log_level":        "info",
	}
}

// Load builds the configuration from defaults, the YAML file at path
// (skipped when path is empty or the file does not exist) and the
// environment. The result is validated.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			expanded, err := expandEnvStrict(string(raw))
			if err != nil {
				return nil, fmt.Errorf("config: expanding %s: %w", path, err)
			}
			if err := k.Load(rawbytes.Provider([]byte(expanded)), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Optional file; defaults and environment still apply.
		default:
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks invariants that would otherwise surface as confusing
// runtime behavior.
func (c *Config) Validate() error {
	if c.Page.DefaultSize < 1 || c.Page.MaxSize < 1 {
		return fmt.Errorf("%w: sizes must be positive", ErrInvalidPageSize)
	}
	if c.Page.DefaultSize > c.Page.MaxSize {
		return fmt.Errorf("%w: default_size %d exceeds max_size %d",
			ErrInvalidPageSize, c.Page.DefaultSize, c.Page.MaxSize)
	}

	for name, ttl := range map[string]time.Duration{
		"competitions_ttl": c.Cache.CompetitionsTTL,
		"datasets_ttl":     c.Cache.DatasetsTTL,
		"models_ttl":       c.Cache.ModelsTTL,
		"max_ttl":          c.Cache.MaxTTL,
	} {
		if ttl < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalidTTL, name)
		}
	}

	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("%w: max_attempts must be at least 1", ErrInvalidRetry)
	}
	if c.Retry.InitialDelay < 0 || c.Retry.MaxDelay < 0 || c.Retry.RemoteTimeout <= 0 {
		return fmt.Errorf("%w: delays must be non-negative and remote_timeout positive", ErrInvalidRetry)
	}

	if strings.TrimSpace(c.Download.Root) == "" {
		return ErrEmptyRoot
	}
	return nil
}
