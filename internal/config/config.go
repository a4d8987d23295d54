// Package config provides configuration management for the contacts tools.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvBaseURL  = "STRAPI_URL"
	EnvAddr     = "CONTACTS_ADDR"
	EnvLogLevel = "LOG_LEVEL"
)

// Configuration validation errors.
var (
	ErrMissingBaseURL     = errors.New("cms.base_url is required")
	ErrInvalidBaseURL     = errors.New("cms.base_url must be an absolute http(s) URL")
	ErrInvalidTimeout     = errors.New("cms.timeout_sec must be at least 1")
	ErrInvalidMaxResponse = errors.New("cms.max_response_mb must be at least 1")
	ErrMissingAddr        = errors.New("server.addr is required")
	ErrInvalidShutdown    = errors.New("server.shutdown_timeout_sec must be non-negative")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat   = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete application configuration.
type Config struct {
	CMS     CMSConfig     `yaml:"cms"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// CMSConfig describes how to reach the content management system.
type CMSConfig struct {
	BaseURL       string `yaml:"base_url"`
	TimeoutSec    int    `yaml:"timeout_sec"`
	MaxResponseMb int    `yaml:"max_response_mb"`
	ForwardSearch bool   `yaml:"forward_search"`
}

// ServerConfig contains the HTTP API settings.
type ServerConfig struct {
	Addr                 string `yaml:"addr"`
	ReadHeaderTimeoutSec int    `yaml:"read_header_timeout_sec"`
	ShutdownTimeoutSec   int    `yaml:"shutdown_timeout_sec"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		CMS: CMSConfig{
			BaseURL:       "http://127.0.0.1:1337",
			TimeoutSec:    30,
			MaxResponseMb: 10,
		},
		Server: ServerConfig{
			Addr:                 ":8080",
			ReadHeaderTimeoutSec: 10,
			ShutdownTimeoutSec:   15,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from YAML file. Keys missing from the file
// keep their defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Load reads the file at path (defaults when path is empty), overlays the
// process environment and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides values with the environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvBaseURL); ok && strings.TrimSpace(v) != "" {
		c.CMS.BaseURL = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvAddr); ok && strings.TrimSpace(v) != "" {
		c.Server.Addr = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}

	c.normalize()
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.CMS.BaseURL == "" {
		return ErrMissingBaseURL
	}

	u, err := url.Parse(c.CMS.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.CMS.BaseURL)
	}

	if c.CMS.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.CMS.MaxResponseMb < 1 {
		return ErrInvalidMaxResponse
	}

	if c.Server.Addr == "" {
		return ErrMissingAddr
	}

	if c.Server.ShutdownTimeoutSec < 0 {
		return ErrInvalidShutdown
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

func (c *Config) normalize() {
	c.CMS.BaseURL = strings.TrimRight(strings.TrimSpace(c.CMS.BaseURL), "/")
	c.Logging.Level = strings.ToLower(c.Logging.Level)

	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// GetTimeout returns the CMS request timeout.
func (c *CMSConfig) GetTimeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// MaxResponseBytes returns the response size limit in bytes.
func (c *CMSConfig) MaxResponseBytes() int64 {
	return int64(c.MaxResponseMb) << 20
}

// GetReadHeaderTimeout returns the server read header timeout.
func (s *ServerConfig) GetReadHeaderTimeout() time.Duration {
	return time.Duration(s.ReadHeaderTimeoutSec) * time.Second
}

// GetShutdownTimeout returns how long graceful shutdown may take.
func (s *ServerConfig) GetShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{CMS: %s, Timeout: %ds, Addr: %s, Log: %s}",
		c.CMS.BaseURL,
		c.CMS.TimeoutSec,
		c.Server.Addr,
		c.Logging.Level,
	)
}
