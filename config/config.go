package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ─── struct ───────────────────────────────────────────────────────────────────

// Config holds all runtime configuration for l4scan.
type Config struct {
	Wait            time.Duration `yaml:"wait"`
	Retries         int           `yaml:"retries"`
	SourcePortStart int           `yaml:"source_port_start"`
	SourcePortEnd   int           `yaml:"source_port_end"`
	Output          string        `yaml:"output"`
	LogLevel        string        `yaml:"log_level"`
}

// ─── defaults ─────────────────────────────────────────────────────────────────

// Default returns a Config populated with the scanner defaults.
func Default() Config {
	return Config{
		Wait:            5000 * time.Millisecond,
		Retries:         2,
		SourcePortStart: 50000,
		SourcePortEnd:   60000,
		Output:          "text",
		LogLevel:        "info",
	}
}

// ─── load ─────────────────────────────────────────────────────────────────────

// Load reads a YAML config file and merges it onto the defaults.
// If the file does not exist, defaults are returned without error.
func Load(path string) (Config, error) {
	cfg := Default()

	// fall back to default location if path is empty
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".l4scan.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // no file, not an error
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate rejects values the scanner cannot run with.
func (c Config) Validate() error {
	if c.Wait <= 0 {
		return fmt.Errorf("wait must be positive, got %s", c.Wait)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if c.SourcePortStart < 1 || c.SourcePortEnd > 65536 || c.SourcePortStart >= c.SourcePortEnd {
		return fmt.Errorf("source port window [%d, %d) is invalid", c.SourcePortStart, c.SourcePortEnd)
	}
	switch c.Output {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unknown output %q", c.Output)
	}
	return nil
}
