// Package config loads and saves the engine configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/rosterguard/internal/core/detect"
)

// Config represents the flat rosterguard configuration.
// Zero-valued limits fall back to engine defaults.
type Config struct {
	Version            string  `json:"version"`
	MaxDailyWorkHours  float64 `json:"max_daily_work_hours,omitempty"`
	MaxWeeklyWorkHours float64 `json:"max_weekly_work_hours,omitempty"`
	Workers            int     `json:"workers,omitempty"` // batch detection pool size, 0 = NumCPU
}

// DefaultConfig returns a config carrying the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:            "1.0",
		MaxDailyWorkHours:  detect.DefaultMaxDailyWorkHours,
		MaxWeeklyWorkHours: detect.DefaultMaxWeeklyWorkHours,
	}
}

// DetectorConfig converts to the detection engine's config.
func (c *Config) DetectorConfig() detect.Config {
	return detect.Config{
		MaxDailyWorkHours:  c.MaxDailyWorkHours,
		MaxWeeklyWorkHours: c.MaxWeeklyWorkHours,
	}
}

// LoadConfig reads .rosterguard/config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".rosterguard", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.MaxDailyWorkHours < 0 || cfg.MaxWeeklyWorkHours < 0 {
		return nil, fmt.Errorf("work hour limits must not be negative")
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative")
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ".rosterguard")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create .rosterguard dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// LoadOrDefault reads the config from dir, falling back to defaults when
// no config file exists.
func LoadOrDefault(dir string) *Config {
	cfg, err := LoadConfig(dir)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}
