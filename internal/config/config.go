// Package config loads client configuration from a YAML file and supports
// hot reload. The backend's listening port can change between launches, so
// configuration is re-readable at runtime and swapped atomically.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Timeout defaults. Streaming gets a much larger budget than a plain lookup
// because story generation can run for minutes.
const (
	DefaultRequestTimeout = 60 * time.Second
	DefaultStreamTimeout  = 300 * time.Second
)

// Config holds all client configuration.
type Config struct {
	// BaseURL is the backend address, e.g. http://127.0.0.1:5001.
	BaseURL string `yaml:"base_url"`
	// PortFile, when set, points at a file holding the backend's current
	// listening port. It takes precedence over BaseURL.
	PortFile string `yaml:"port_file"`

	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
	StreamTimeoutSeconds  int `yaml:"stream_timeout_seconds"`

	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CacheConfig controls the in-memory cache for idempotent GET responses.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

// RateLimitConfig controls the client-side request rate limiter.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		BaseURL:               "http://127.0.0.1:5001",
		RequestTimeoutSeconds: int(DefaultRequestTimeout / time.Second),
		StreamTimeoutSeconds:  int(DefaultStreamTimeout / time.Second),
		Cache:                 CacheConfig{TTLSeconds: 30},
		Logging:               LoggingConfig{Level: "info"},
	}
}

// LoadFromFile reads and parses a YAML configuration file. Environment
// variables in the format ${VAR_NAME} are expanded; fields absent from the
// file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.BaseURL == "" && c.PortFile == "" {
		return fmt.Errorf("one of base_url or port_file is required")
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive, got %d", c.RequestTimeoutSeconds)
	}
	if c.StreamTimeoutSeconds <= 0 {
		return fmt.Errorf("stream_timeout_seconds must be positive, got %d", c.StreamTimeoutSeconds)
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("rate_limit.rps cannot be negative")
	}
	if c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit.burst cannot be negative")
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds cannot be negative")
	}
	return nil
}

// RequestTimeout returns the plain-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// StreamTimeout returns the streaming timeout as a duration.
func (c *Config) StreamTimeout() time.Duration {
	return time.Duration(c.StreamTimeoutSeconds) * time.Second
}

// TTL returns the GET response cache TTL as a duration.
func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}
