package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_BaseCurrencyEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_BASE_CURRENCY", "usd")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.BaseCurrency != "USD" {
		t.Errorf("BaseCurrency = %q, want USD", cfg.BaseCurrency)
	}
}

func TestConfig_InvalidBaseCurrencyFallsBack(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.BaseCurrency = "DOLLARYDOOS"
	validateBaseCurrency(cfg)
	if cfg.BaseCurrency != "AUD" {
		t.Errorf("BaseCurrency = %q, want AUD fallback", cfg.BaseCurrency)
	}
}

func TestConfig_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	content := `
environment = "production"
base_currency = "USD"

[server]
host = "127.0.0.1"
port = 9191

[clients.eodhd]
api_key = "test-key"
rate_limit = 5
timeout = "10s"

[performance]
fetch_timeout = "15s"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.Clients.EODHD.GetTimeout() != 10*time.Second {
		t.Errorf("EODHD timeout = %v, want 10s", cfg.Clients.EODHD.GetTimeout())
	}
	if cfg.Performance.GetFetchTimeout() != 15*time.Second {
		t.Errorf("fetch timeout = %v, want 15s", cfg.Performance.GetFetchTimeout())
	}
}

func TestConfig_MissingFileSkipped(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestEODHDConfig_BadTimeoutDefaults(t *testing.T) {
	c := EODHDConfig{Timeout: "not-a-duration"}
	if c.GetTimeout() != 30*time.Second {
		t.Errorf("GetTimeout = %v, want 30s default", c.GetTimeout())
	}
}
