package recon

import (
	"path/filepath"
	"testing"
	"time"
)

// =============================================================================
// Default Configuration Tests
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", cfg.MaxDepth)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Workers)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.Delay != 100*time.Millisecond {
		t.Errorf("Delay = %v, want 100ms", cfg.Delay)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("Output.Format = %q, want table", cfg.Output.Format)
	}
}

// =============================================================================
// Validation Tests
// =============================================================================

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) { c.Target = "https://example.com" },
		},
		{
			name:    "missing target",
			mutate:  func(c *Config) {},
			wantErr: true,
		},
		{
			name:    "target without scheme",
			mutate:  func(c *Config) { c.Target = "example.com" },
			wantErr: true,
		},
		{
			name:    "target without host",
			mutate:  func(c *Config) { c.Target = "https://" },
			wantErr: true,
		},
		{
			name: "negative depth",
			mutate: func(c *Config) {
				c.Target = "https://example.com"
				c.MaxDepth = -1
			},
			wantErr: true,
		},
		{
			name: "zero depth allowed",
			mutate: func(c *Config) {
				c.Target = "https://example.com"
				c.MaxDepth = 0
			},
		},
		{
			name: "zero workers",
			mutate: func(c *Config) {
				c.Target = "https://example.com"
				c.Workers = 0
			},
			wantErr: true,
		},
		{
			name: "bad output format",
			mutate: func(c *Config) {
				c.Target = "https://example.com"
				c.Output.Format = "xml"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// =============================================================================
// File Round-Trip Tests
// =============================================================================

func TestConfig_SaveAndLoad(t *testing.T) {
	for _, ext := range []string{".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config"+ext)

			cfg := DefaultConfig()
			cfg.Target = "https://example.com"
			cfg.MaxDepth = 5
			cfg.WordlistDir = "/opt/wordlists"
			cfg.Output.Format = "json"

			if err := cfg.SaveToFile(path); err != nil {
				t.Fatalf("SaveToFile() error = %v", err)
			}

			loaded, err := LoadFromFile(path)
			if err != nil {
				t.Fatalf("LoadFromFile() error = %v", err)
			}
			if loaded.Target != cfg.Target {
				t.Errorf("Target = %q, want %q", loaded.Target, cfg.Target)
			}
			if loaded.MaxDepth != 5 {
				t.Errorf("MaxDepth = %d, want 5", loaded.MaxDepth)
			}
			if loaded.WordlistDir != "/opt/wordlists" {
				t.Errorf("WordlistDir = %q, want /opt/wordlists", loaded.WordlistDir)
			}
			if loaded.Output.Format != "json" {
				t.Errorf("Output.Format = %q, want json", loaded.Output.Format)
			}
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFromFile() on missing file should error")
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Target = "https://example.com"
	cfg.CustomHeaders = map[string]string{"X-A": "1"}

	clone := cfg.Clone()
	clone.Target = "https://other.com"
	clone.CustomHeaders["X-A"] = "2"

	if cfg.Target != "https://example.com" {
		t.Error("Clone() shares Target with the original")
	}
	if cfg.CustomHeaders["X-A"] != "1" {
		t.Error("Clone() shares the header map with the original")
	}
}
