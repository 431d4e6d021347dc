// Package config loads tutorial settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// HistoryPolicy decides what happens to saved docstrings on restart.
type HistoryPolicy string

const (
	// HistoryRetain keeps saved docstrings across restarts within one process.
	HistoryRetain HistoryPolicy = "retain"
	// HistoryClear drops saved docstrings on restart.
	HistoryClear HistoryPolicy = "clear"
)

// Config holds application configuration.
type Config struct {
	// History is the saved docstring retention policy applied on restart.
	History HistoryPolicy `yaml:"history"`

	// HoverHideDelay is how long a suggestion popup stays open after focus leaves its line.
	HoverHideDelay time.Duration `yaml:"hover_hide_delay"`

	// ScrollDelay is the pause before the code view scrolls to the validation questions.
	ScrollDelay time.Duration `yaml:"scroll_delay"`

	// HighlightStyle names the chroma style used for code.
	HighlightStyle string `yaml:"highlight_style"`

	// LogFile receives structured logs. Empty disables file logging.
	LogFile string `yaml:"log_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		History:        HistoryRetain,
		HoverHideDelay: 200 * time.Millisecond,
		ScrollDelay:    150 * time.Millisecond,
		HighlightStyle: "monokai",
		LogLevel:       "info",
	}
}

// Load reads the YAML file at path and merges it over the defaults.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}

		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	overlay := &Config{}
	if err := yaml.Unmarshal(data, overlay); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg := Merge(DefaultConfig(), overlay)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Merge combines base and overlay configs. Overlay values win when non-zero.
func Merge(base, overlay *Config) *Config {
	result := *base

	if overlay.History != "" {
		result.History = overlay.History
	}

	if overlay.HoverHideDelay != 0 {
		result.HoverHideDelay = overlay.HoverHideDelay
	}

	if overlay.ScrollDelay != 0 {
		result.ScrollDelay = overlay.ScrollDelay
	}

	if overlay.HighlightStyle != "" {
		result.HighlightStyle = overlay.HighlightStyle
	}

	if overlay.LogFile != "" {
		result.LogFile = overlay.LogFile
	}

	if overlay.LogLevel != "" {
		result.LogLevel = overlay.LogLevel
	}

	return &result
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.History {
	case HistoryRetain, HistoryClear:
	default:
		return fmt.Errorf("unknown history policy %q", c.History)
	}

	if c.HoverHideDelay < 0 || c.ScrollDelay < 0 {
		return errors.New("delays must not be negative")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	return nil
}
