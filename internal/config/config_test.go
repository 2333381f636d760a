package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Addr != ":8090" || cfg.DefaultDepth != 2 || cfg.MaxDepth != 10 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Remote.Enabled {
		t.Fatal("remote scanning enabled by default")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != Default().Addr {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
addr: ":9999"
default_depth: 4
max_depth: 6
remote:
  enabled: true
  port: 2222
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9999" || cfg.DefaultDepth != 4 || cfg.MaxDepth != 6 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if !cfg.Remote.Enabled || cfg.Remote.Port != 2222 {
		t.Fatalf("remote = %+v", cfg.Remote)
	}
	// Fields the file omits keep their defaults.
	if cfg.Remote.TimeoutSeconds != 15 {
		t.Fatalf("timeout = %d, want default 15", cfg.Remote.TimeoutSeconds)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed YAML loaded without error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"zero default depth", func(c *Config) { c.DefaultDepth = 0 }},
		{"max below default", func(c *Config) { c.MaxDepth = 1; c.DefaultDepth = 5 }},
		{"bad remote port", func(c *Config) { c.Remote.Port = 0 }},
		{"bad remote timeout", func(c *Config) { c.Remote.TimeoutSeconds = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("invalid config passed validation")
			}
		})
	}
}
