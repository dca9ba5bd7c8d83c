package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Name != "kaggle-mcp" {
		t.Errorf("Server.Name = %q", cfg.Server.Name)
	}
	if cfg.Page.DefaultSize != 20 || cfg.Page.MaxSize != 100 {
		t.Errorf("Page = %+v", cfg.Page)
	}
	if cfg.Cache.CompetitionsTTL != time.Hour {
		t.Errorf("CompetitionsTTL = %v, want 1h", cfg.Cache.CompetitionsTTL)
	}
	if cfg.Cache.DatasetsTTL != 6*time.Hour {
		t.Errorf("DatasetsTTL = %v, want 6h", cfg.Cache.DatasetsTTL)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should default to enabled")
	}
	if cfg.Observe.Enabled {
		t.Error("telemetry should default to disabled")
	}
	if cfg.Download.Root != "./kaggle_data" {
		t.Errorf("Download.Root = %q", cfg.Download.Root)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  name: custom-server
cache:
  datasets_ttl: 2h
page:
  max_size: 50
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Name != "custom-server" {
		t.Errorf("Server.Name = %q", cfg.Server.Name)
	}
	if cfg.Cache.DatasetsTTL != 2*time.Hour {
		t.Errorf("DatasetsTTL = %v, want 2h", cfg.Cache.DatasetsTTL)
	}
	if cfg.Page.MaxSize != 50 {
		t.Errorf("Page.MaxSize = %d, want 50", cfg.Page.MaxSize)
	}
	// Untouched keys keep their defaults.
	if cfg.Page.DefaultSize != 20 {
		t.Errorf("Page.DefaultSize = %d, want 20", cfg.Page.DefaultSize)
	}
}

func TestLoad_MissingFileIsOptional(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("missing file should fall back to defaults: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KAGGLE_MCP_SERVER__NAME", "env-server")
	t.Setenv("KAGGLE_MCP_CACHE__MAX_TTL", "30m")
	t.Setenv("KAGGLE_MCP_PAGE__DEFAULT_SIZE", "10")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Name != "env-server" {
		t.Errorf("Server.Name = %q", cfg.Server.Name)
	}
	if cfg.Cache.MaxTTL != 30*time.Minute {
		t.Errorf("MaxTTL = %v, want 30m", cfg.Cache.MaxTTL)
	}
	if cfg.Page.DefaultSize != 10 {
		t.Errorf("Page.DefaultSize = %d, want 10", cfg.Page.DefaultSize)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  name: from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("KAGGLE_MCP_SERVER__NAME", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Name != "from-env" {
		t.Errorf("Server.Name = %q, want from-env", cfg.Server.Name)
	}
}

func TestLoad_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("TEST_KAGGLE_USER", "alice")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("kaggle:\n  username: ${TEST_KAGGLE_USER}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Kaggle.Username != "alice" {
		t.Errorf("Kaggle.Username = %q, want alice", cfg.Kaggle.Username)
	}
}

func TestLoad_MissingPlaceholderFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("kaggle:\n  key: ${DEFINITELY_NOT_SET_12345}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for unresolved placeholder")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"default beats max", func(c *Config) { c.Page.DefaultSize = 200 }, ErrInvalidPageSize},
		{"zero max size", func(c *Config) { c.Page.MaxSize = 0 }, ErrInvalidPageSize},
		{"negative ttl", func(c *Config) { c.Cache.DatasetsTTL = -time.Hour }, ErrInvalidTTL},
		{"zero attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, ErrInvalidRetry},
		{"zero remote timeout", func(c *Config) { c.Retry.RemoteTimeout = 0 }, ErrInvalidRetry},
		{"blank root", func(c *Config) { c.Download.Root = "  " }, ErrEmptyRoot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandEnvStrict(t *testing.T) {
	t.Setenv("EXPAND_TEST_VAL", "hello")

	got, err := expandEnvStrict("value: ${EXPAND_TEST_VAL}")
	if err != nil {
		t.Fatalf("expandEnvStrict failed: %v", err)
	}
	if got != "value: hello" {
		t.Errorf("got %q", got)
	}

	got, err = expandEnvStrict("price: $$5")
	if err != nil {
		t.Fatalf("expandEnvStrict failed: %v", err)
	}
	if got != "price: $5" {
		t.Errorf("escape hatch produced %q", got)
	}

	if _, err := expandEnvStrict("${EXPAND_TEST_UNSET_98765}"); err == nil {
		t.Error("expected error for missing variable")
	}
}
