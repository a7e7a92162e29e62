package recon

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Cr3zy-dev/webdust/internal/scope"
)

// Config holds all scanner configuration.
type Config struct {
	// Target URL to scan
	Target string `json:"target" yaml:"target"`

	// Maximum crawl depth (hops from the seed)
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// Number of concurrent fetch workers; 1 reproduces strict
	// breadth-first ordering
	Workers int `json:"workers" yaml:"workers"`

	// Per-request timeout
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Politeness delay between fetches
	Delay time.Duration `json:"delay" yaml:"delay"`

	// Rate limiting; zero disables the token bucket
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `json:"burst" yaml:"burst"`

	// User agent sent with every request
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// Custom headers to include in all requests
	CustomHeaders map[string]string `json:"custom_headers" yaml:"custom_headers"`

	// Skip TLS certificate verification
	SkipTLSVerify bool `json:"skip_tls_verify" yaml:"skip_tls_verify"`

	// Directory of keyword-override wordlists (<category>.txt)
	WordlistDir string `json:"wordlist_dir" yaml:"wordlist_dir"`

	// Output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Path of the bbolt scan-history database; empty disables it
	HistoryDB string `json:"history_db" yaml:"history_db"`

	// Verbose logging
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Debug mode
	Debug bool `json:"debug" yaml:"debug"`
}

// OutputConfig defines output configuration.
type OutputConfig struct {
	// Format is table, json, or text
	Format string `json:"format" yaml:"format"`

	// FilePath receives the rendered result; empty means stdout
	FilePath string `json:"file_path" yaml:"file_path"`

	// Pretty enables indented JSON
	Pretty bool `json:"pretty" yaml:"pretty"`

	// NoColor disables ANSI coloring in table output
	NoColor bool `json:"no_color" yaml:"no_color"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:          2,
		Workers:           1,
		Timeout:           10 * time.Second,
		Delay:             100 * time.Millisecond,
		RequestsPerSecond: 20,
		Burst:             5,
		UserAgent:         "WebDust/1.1 (+https://github.com/Cr3zy-dev/webdust)",
		SkipTLSVerify:     true,
		Output: OutputConfig{
			Format: "table",
			Pretty: true,
		},
	}
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return config, nil
}

// SaveToFile saves configuration to a file.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if len(path) > 5 && path[len(path)-5:] == ".json" {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate validates the configuration. A seed URL without a scheme
// or host is rejected here, before any fetch is attempted.
func (c *Config) Validate() error {
	if c.Target == "" {
		return fmt.Errorf("target URL is required")
	}
	if err := scope.ValidateSeed(c.Target); err != nil {
		return err
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	switch c.Output.Format {
	case "", "table", "json", "text":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}

	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	data, _ := json.Marshal(c)
	clone := &Config{}
	json.Unmarshal(data, clone)
	return clone
}
