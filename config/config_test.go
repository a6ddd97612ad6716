package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MEMAGENT_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("MEMAGENT_API_URL", "")
	t.Setenv("MEMAGENT_WS_URL", "")
	t.Setenv("MEMAGENT_STATE_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8000/api/v1" {
		t.Errorf("base url = %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout() != 30*time.Second {
		t.Errorf("timeout = %s", cfg.API.Timeout())
	}
	if cfg.Realtime.ReconnectDelay() != 3*time.Second {
		t.Errorf("reconnect delay = %s", cfg.Realtime.ReconnectDelay())
	}
	if cfg.Realtime.MaxReconnects != 0 {
		t.Errorf("max reconnects = %d, want unlimited", cfg.Realtime.MaxReconnects)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[api]
base_url = "https://memagent.example.com/api/v1"
timeout_seconds = 10
cache_ttl_seconds = 120

[realtime]
url = "wss://memagent.example.com/api/v1/ws"
keepalive_seconds = 15
max_reconnects = 5

[state]
dir = "/var/lib/memagent"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MEMAGENT_CONFIG", path)
	t.Setenv("MEMAGENT_API_URL", "")
	t.Setenv("MEMAGENT_WS_URL", "")
	t.Setenv("MEMAGENT_STATE_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.API.BaseURL != "https://memagent.example.com/api/v1" {
		t.Errorf("base url = %s", cfg.API.BaseURL)
	}
	if cfg.API.CacheTTL() != 2*time.Minute {
		t.Errorf("cache ttl = %s", cfg.API.CacheTTL())
	}
	if cfg.Realtime.Keepalive() != 15*time.Second {
		t.Errorf("keepalive = %s", cfg.Realtime.Keepalive())
	}
	if cfg.Realtime.MaxReconnects != 5 {
		t.Errorf("max reconnects = %d", cfg.Realtime.MaxReconnects)
	}
	// Unset fields keep their defaults.
	if cfg.Realtime.ReconnectDelaySecs != 3 {
		t.Errorf("reconnect delay secs = %d, want default 3", cfg.Realtime.ReconnectDelaySecs)
	}
	if cfg.State.Dir != "/var/lib/memagent" {
		t.Errorf("state dir = %s", cfg.State.Dir)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[api]
base_url = "https://file.example.com"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MEMAGENT_CONFIG", path)
	t.Setenv("MEMAGENT_API_URL", "https://env.example.com")
	t.Setenv("MEMAGENT_WS_URL", "wss://env.example.com/ws")
	t.Setenv("MEMAGENT_STATE_DIR", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.API.BaseURL != "https://env.example.com" {
		t.Errorf("base url = %s, env should win", cfg.API.BaseURL)
	}
	if cfg.Realtime.URL != "wss://env.example.com/ws" {
		t.Errorf("ws url = %s", cfg.Realtime.URL)
	}
	if cfg.State.Dir != dir {
		t.Errorf("state dir = %s", cfg.State.Dir)
	}
}

func TestLoadBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MEMAGENT_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected a decode error")
	}
}
