// Package config handles configuration loading for the pricing
// service. It supports YAML config files with environment variable
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Redis   RedisConfig   `mapstructure:"redis"   yaml:"redis"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Service ServiceConfig `mapstructure:"service" yaml:"service"`
	Feed    FeedConfig    `mapstructure:"feed"    yaml:"feed"`
	Risk    RiskConfig    `mapstructure:"risk"    yaml:"risk"`
}

// RedisConfig holds the market store connection settings. An empty
// address means the service runs on its in-memory store.
type RedisConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"` // e.g. "tcp://localhost:6379/0"
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// ServiceConfig holds pricing service runtime settings.
type ServiceConfig struct {
	StreamPollIntervalSec int  `mapstructure:"stream_poll_interval_sec" yaml:"stream_poll_interval_sec"`
	EnableLogging         bool `mapstructure:"enable_logging"           yaml:"enable_logging"`
}

// FeedConfig holds the simulated curve feed settings.
type FeedConfig struct {
	IntervalSec int     `mapstructure:"interval_sec" yaml:"interval_sec"`
	TickBumpBP  float64 `mapstructure:"tick_bump_bp" yaml:"tick_bump_bp"`
}

// RiskConfig holds default bump sizes for sensitivity requests.
type RiskConfig struct {
	BumpBP    float64 `mapstructure:"bump_bp"     yaml:"bump_bp"`
	FXBumpPct float64 `mapstructure:"fx_bump_pct" yaml:"fx_bump_pct"`
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.pricing-service/config.yaml (home directory)
//  3. /etc/pricing-service/config.yaml (system)
//
// Environment variables override config file values.
// Format: PRICING_<SECTION>_<KEY>, e.g., PRICING_REDIS_ADDR
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".pricing-service"))
	v.AddConfigPath("/etc/pricing-service")

	// Environment variable settings
	v.SetEnvPrefix("PRICING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("PRICING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Redis defaults: empty addr keeps the service on its memory store
	v.SetDefault("redis.addr", "")

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Service defaults
	v.SetDefault("service.stream_poll_interval_sec", 2)
	v.SetDefault("service.enable_logging", true)

	// Feed defaults
	v.SetDefault("feed.interval_sec", 5)
	v.SetDefault("feed.tick_bump_bp", 1.0)

	// Risk defaults
	v.SetDefault("risk.bump_bp", 1.0)
	v.SetDefault("risk.fx_bump_pct", 0.01)
}

// overrideFromEnv explicitly reads connection keys from environment
// variables so they win even when a config file sets them.
func overrideFromEnv(cfg *Config) {
	if addr := os.Getenv("PRICING_REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
