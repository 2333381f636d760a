// Package config loads the diskview server configuration from a YAML
// file, falling back to defaults when no file exists.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// StaticDir is served at / when non-empty.
	StaticDir string `yaml:"static_dir"`
	// DefaultDepth is used when start_scan omits scanDepth.
	DefaultDepth int `yaml:"default_depth"`
	// MaxDepth caps the depth a client may request.
	MaxDepth int `yaml:"max_depth"`

	Remote RemoteConfig `yaml:"remote"`
}

// RemoteConfig controls SFTP-backed scan roots of the form user@host:path.
type RemoteConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
	// BatchMode disables interactive SSH prompts; key/agent auth only.
	// Servers should leave this on.
	BatchMode      bool `yaml:"batch_mode"`
	TimeoutSeconds int  `yaml:"timeout_seconds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:         ":8090",
		DefaultDepth: 2,
		MaxDepth:     10,
		Remote: RemoteConfig{
			Enabled:        false,
			Port:           22,
			BatchMode:      true,
			TimeoutSeconds: 15,
		},
	}
}

// Load reads the configuration at path. A missing file is not an error;
// defaults are returned instead.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DefaultDepth < 1 {
		return fmt.Errorf("default_depth must be >= 1")
	}
	if c.MaxDepth < c.DefaultDepth {
		return fmt.Errorf("max_depth must be >= default_depth")
	}
	if c.Remote.Port < 1 || c.Remote.Port > 65535 {
		return fmt.Errorf("remote port must be between 1 and 65535")
	}
	if c.Remote.TimeoutSeconds < 1 {
		return fmt.Errorf("remote timeout_seconds must be >= 1")
	}
	return nil
}
