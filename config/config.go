// Package config loads client configuration from a TOML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	API      APIConfig      `toml:"api"`
	Realtime RealtimeConfig `toml:"realtime"`
	State    StateConfig    `toml:"state"`
}

type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	CacheTTLSecs   int    `toml:"cache_ttl_seconds"`
}

type RealtimeConfig struct {
	// URL is the websocket base; room ID and token are appended at
	// dial time.
	URL                string `toml:"url"`
	KeepaliveSeconds   int    `toml:"keepalive_seconds"`
	ReconnectDelaySecs int    `toml:"reconnect_delay_seconds"`
	MaxReconnects      int    `toml:"max_reconnects"`
}

type StateConfig struct {
	// Dir holds the persisted session and layout store files.
	Dir string `toml:"dir"`
}

func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

func (a APIConfig) CacheTTL() time.Duration {
	return time.Duration(a.CacheTTLSecs) * time.Second
}

func (r RealtimeConfig) Keepalive() time.Duration {
	return time.Duration(r.KeepaliveSeconds) * time.Second
}

func (r RealtimeConfig) ReconnectDelay() time.Duration {
	return time.Duration(r.ReconnectDelaySecs) * time.Second
}

// Load reads the config file named by MEMAGENT_CONFIG (default
// ~/.memagent/config.toml) over built-in defaults, then applies
// environment overrides.
func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("MEMAGENT_CONFIG", defaultConfigPath())
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file: %w", err)
		}
	}

	if v := os.Getenv("MEMAGENT_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("MEMAGENT_WS_URL"); v != "" {
		cfg.Realtime.URL = v
	}
	if v := os.Getenv("MEMAGENT_STATE_DIR"); v != "" {
		cfg.State.Dir = v
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000/api/v1",
			TimeoutSeconds: 30,
			CacheTTLSecs:   60,
		},
		Realtime: RealtimeConfig{
			URL:                "ws://localhost:8000/api/v1/ws",
			KeepaliveSeconds:   30,
			ReconnectDelaySecs: 3,
			MaxReconnects:      0,
		},
		State: StateConfig{
			Dir: defaultStateDir(),
		},
	}
}

func defaultConfigPath() string {
	return filepath.Join(defaultStateDir(), "config.toml")
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".memagent"
	}
	return filepath.Join(home, ".memagent")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
