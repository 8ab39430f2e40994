package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReturnsDefaults(t *testing.T) {
	os.Unsetenv("PRICING_REDIS_ADDR")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Redis.Addr != "" {
		t.Errorf("Redis.Addr: got %q, want empty (memory store)", cfg.Redis.Addr)
	}
	if cfg.API.Host != "0.0.0.0" {
		t.Errorf("API.Host: got %q, want %q", cfg.API.Host, "0.0.0.0")
	}
	if cfg.API.Port != 8080 {
		t.Errorf("API.Port: got %d, want 8080", cfg.API.Port)
	}
	if cfg.Service.StreamPollIntervalSec != 2 {
		t.Errorf("Service.StreamPollIntervalSec: got %d, want 2", cfg.Service.StreamPollIntervalSec)
	}
	if !cfg.Service.EnableLogging {
		t.Error("Service.EnableLogging should default to true")
	}
	if cfg.Feed.IntervalSec != 5 {
		t.Errorf("Feed.IntervalSec: got %d, want 5", cfg.Feed.IntervalSec)
	}
	if cfg.Feed.TickBumpBP != 1.0 {
		t.Errorf("Feed.TickBumpBP: got %f, want 1.0", cfg.Feed.TickBumpBP)
	}
	if cfg.Risk.BumpBP != 1.0 {
		t.Errorf("Risk.BumpBP: got %f, want 1.0", cfg.Risk.BumpBP)
	}
	if cfg.Risk.FXBumpPct != 0.01 {
		t.Errorf("Risk.FXBumpPct: got %f, want 0.01", cfg.Risk.FXBumpPct)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "test_config.yaml")
	content := []byte(`
redis:
  addr: "tcp://localhost:6380/1"
api:
  port: 9090
service:
  stream_poll_interval_sec: 1
  enable_logging: false
risk:
  bump_bp: 0.5
`)
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	os.Unsetenv("PRICING_REDIS_ADDR")

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Redis.Addr != "tcp://localhost:6380/1" {
		t.Errorf("Redis.Addr: got %q", cfg.Redis.Addr)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port: got %d, want 9090", cfg.API.Port)
	}
	if cfg.Service.StreamPollIntervalSec != 1 {
		t.Errorf("Service.StreamPollIntervalSec: got %d, want 1", cfg.Service.StreamPollIntervalSec)
	}
	if cfg.Service.EnableLogging {
		t.Error("Service.EnableLogging should be false from file")
	}
	if cfg.Risk.BumpBP != 0.5 {
		t.Errorf("Risk.BumpBP: got %f, want 0.5", cfg.Risk.BumpBP)
	}
	// Untouched sections keep defaults
	if cfg.Feed.IntervalSec != 5 {
		t.Errorf("Feed.IntervalSec: got %d, want default 5", cfg.Feed.IntervalSec)
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("LoadFromFile() with nonexistent path should return error")
	}
}

func TestOverrideFromEnv(t *testing.T) {
	os.Setenv("PRICING_REDIS_ADDR", "tcp://redis:6379/2")
	defer os.Unsetenv("PRICING_REDIS_ADDR")

	cfg := &Config{Redis: RedisConfig{Addr: "tcp://file:6379"}}
	overrideFromEnv(cfg)

	if cfg.Redis.Addr != "tcp://redis:6379/2" {
		t.Errorf("Redis.Addr: got %q, want env value", cfg.Redis.Addr)
	}
}

func TestOverrideFromEnvNoEnvSet(t *testing.T) {
	os.Unsetenv("PRICING_REDIS_ADDR")

	cfg := &Config{Redis: RedisConfig{Addr: "tcp://file:6379"}}
	overrideFromEnv(cfg)

	if cfg.Redis.Addr != "tcp://file:6379" {
		t.Errorf("Redis.Addr should stay as file value when env unset, got %q", cfg.Redis.Addr)
	}
}

func TestHomeDirReturnsNonEmpty(t *testing.T) {
	if homeDir() == "" {
		t.Error("homeDir() should not return empty string")
	}
}
