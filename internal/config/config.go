// Package config loads and validates gitpulse configuration from file,
// environment and defaults. Field tags use mapstructure for viper
// unmarshalling.
package config

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/gitpulse/internal/analyzers/busfactor"
)

// ErrConfig indicates an invalid parameter combination. Fatal before any
// traversal begins.
var ErrConfig = errors.New("invalid configuration")

// Default engine parameters.
const (
	DefaultChurnWindowDays = 30
	DefaultChurnMinTotal   = 0
)

// Config is the top-level configuration struct for gitpulse.
type Config struct {
	History   HistoryConfig   `mapstructure:"history"`
	Churn     ChurnConfig     `mapstructure:"churn"`
	BusFactor BusFactorConfig `mapstructure:"bus_factor"`
	Scan      ScanConfig      `mapstructure:"scan"`
	Log       LogConfig       `mapstructure:"log"`
}

// HistoryConfig bounds the commit-graph traversal.
type HistoryConfig struct {
	Reference string `mapstructure:"reference"`
	Limit     int    `mapstructure:"limit"`
	Since     string `mapstructure:"since"`
}

// ChurnConfig holds churn engine settings.
type ChurnConfig struct {
	WindowDays int `mapstructure:"window_days"`
	Depth      int `mapstructure:"depth"`
	MinTotal   int `mapstructure:"min_total"`
}

// BusFactorConfig holds bus-factor engine settings.
type BusFactorConfig struct {
	Threshold  float64 `mapstructure:"threshold"`
	MinTotal   int     `mapstructure:"min_total"`
	MaxCommits int     `mapstructure:"max_commits"`
	Threads    int     `mapstructure:"threads"`
}

// ScanConfig holds the extension filter settings.
type ScanConfig struct {
	All        bool     `mapstructure:"all"`
	IncludeExt []string `mapstructure:"include_ext"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Default returns the configuration used when no file or env overrides
// exist.
func Default() *Config {
	return &Config{
		Churn: ChurnConfig{
			WindowDays: DefaultChurnWindowDays,
			MinTotal:   DefaultChurnMinTotal,
		},
		BusFactor: BusFactorConfig{
			Threshold:  busfactor.DefaultThreshold,
			MinTotal:   busfactor.DefaultMinTotal,
			MaxCommits: busfactor.DefaultMaxCommits,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Validate rejects invalid parameter combinations before any repository work
// starts.
func (c *Config) Validate() error {
	if c.BusFactor.Threshold < 0 || c.BusFactor.Threshold > 1 {
		return fmt.Errorf("%w: bus_factor.threshold %v outside [0,1]", ErrConfig, c.BusFactor.Threshold)
	}

	if c.Churn.WindowDays <= 0 {
		return fmt.Errorf("%w: churn.window_days must be positive, got %d", ErrConfig, c.Churn.WindowDays)
	}

	if c.History.Limit < 0 {
		return fmt.Errorf("%w: history.limit must not be negative, got %d", ErrConfig, c.History.Limit)
	}

	for name, value := range map[string]int{
		"churn.min_total":        c.Churn.MinTotal,
		"bus_factor.min_total":   c.BusFactor.MinTotal,
		"bus_factor.max_commits": c.BusFactor.MaxCommits,
		"bus_factor.threads":     c.BusFactor.Threads,
	} {
		if value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrConfig, name, value)
		}
	}

	return nil
}
