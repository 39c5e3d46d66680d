// Package config provides configuration file support for punch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name inside the punch config directory.
const FileName = "config.yaml"

// Config represents the punch configuration.
type Config struct {
	// DailyTarget is the daily working-time target as a Go duration string,
	// e.g. "8h" or "7h30m". Empty means no target.
	DailyTarget string `yaml:"daily_target"`
	// StatsMonths is the lookback window of the stats report in months.
	StatsMonths int `yaml:"stats_months"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DailyTarget: "",
		StatsMonths: 2,
	}
}

// TargetDuration parses DailyTarget. A zero duration means no target is set.
func (c *Config) TargetDuration() (time.Duration, error) {
	if c.DailyTarget == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.DailyTarget)
	if err != nil {
		return 0, fmt.Errorf("parse daily_target: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("daily_target must not be negative: %s", c.DailyTarget)
	}
	return d, nil
}

// Set updates a configuration value by key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "daily_target":
		if value != "" {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration %q: %w", value, err)
			}
			if d < 0 {
				return fmt.Errorf("daily_target must not be negative: %s", value)
			}
		}
		c.DailyTarget = value
	case "stats_months":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", value, err)
		}
		if n < 0 {
			return fmt.Errorf("stats_months must not be negative: %d", n)
		}
		c.StatsMonths = n
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// Get returns a configuration value by key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "daily_target":
		return c.DailyTarget, nil
	case "stats_months":
		return strconv.Itoa(c.StatsMonths), nil
	}
	return "", fmt.Errorf("unknown config key %q", key)
}

// Dir returns the punch configuration directory under the user config dir.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "punch"), nil
}

// Load loads configuration from dir/config.yaml.
// Returns default config if the file doesn't exist.
func Load(dir string) (*Config, error) {
	cfg := Default()
	cfgPath := filepath.Join(dir, FileName)

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return cfg, nil // No config file is OK, use defaults
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to dir/config.yaml.
func Save(dir string, cfg *Config) error {
	cfgPath := filepath.Join(dir, FileName)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(cfgPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
