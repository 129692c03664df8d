// Package config loads monitor settings from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults. Tail sizes follow what Steam's content log needs in practice:
// 2 MiB of history is enough to seed state, and the rate line shows up well
// within the last 512 KiB.
const (
	DefaultReportIntervalSec = 60
	DefaultReportCount       = 5
	DefaultSeedTailBytes     = 2 * 1024 * 1024
	DefaultTickTailBytes     = 512 * 1024
)

// Config holds all configuration for the monitor.
type Config struct {
	// SteamPath overrides install-root discovery when set.
	SteamPath string `yaml:"steam_path"`

	// Report loop
	ReportIntervalSec int `yaml:"report_interval_sec"`
	ReportCount       int `yaml:"report_count"`

	// Reader limits
	SeedTailBytes int64 `yaml:"seed_tail_bytes"`
	TickTailBytes int64 `yaml:"tick_tail_bytes"`

	// Observability
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Default returns a config with all defaults applied.
func Default() *Config {
	return &Config{
		ReportIntervalSec: DefaultReportIntervalSec,
		ReportCount:       DefaultReportCount,
		SeedTailBytes:     DefaultSeedTailBytes,
		TickTailBytes:     DefaultTickTailBytes,
		LogLevel:          "info",
	}
}

// Load reads configuration from a YAML file, applying defaults for fields
// the file leaves unset. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ReportIntervalSec < 1 {
		return fmt.Errorf("report_interval_sec must be at least 1")
	}
	if c.ReportCount < 1 {
		return fmt.Errorf("report_count must be at least 1")
	}
	if c.SeedTailBytes < 1 {
		return fmt.Errorf("seed_tail_bytes must be positive")
	}
	if c.TickTailBytes < 1 {
		return fmt.Errorf("tick_tail_bytes must be positive")
	}
	return nil
}
