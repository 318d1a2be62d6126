package config

import (
	"time"

	"github.com/Tsedii1275/campusadmin/internal/access"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	API     APIConfig     `yaml:"api"`
	Mode    string        `yaml:"mode"` // live, mock; empty = derived from APP_ENV
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// APIConfig holds the admin API endpoint settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

// CacheConfig selects the read-cache backend.
type CacheConfig struct {
	Backend string                  `yaml:"backend"` // memory, redis, none
	TTL     string                  `yaml:"ttl"`     // e.g. "30s", "1m"
	Redis   access.RedisCacheConfig `yaml:"redis"`
}

// ReadTTL parses the cache TTL, falling back to 30s on bad input.
func (c CacheConfig) ReadTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// MetricsConfig holds the metrics endpoint settings for watch mode.
type MetricsConfig struct {
	Port int `yaml:"port"`
}

// AccessMode resolves the routing mode. An explicit value wins;
// otherwise development-like environments default to mock and
// everything else to live-with-fallback.
func (c *AppConfig) AccessMode(env string) access.Mode {
	switch c.Mode {
	case "live":
		return access.ModeLive
	case "mock":
		return access.ModeMock
	}
	switch env {
	case "development", "dev", "local", "test":
		return access.ModeMock
	default:
		return access.ModeLive
	}
}
