// Package config provides configuration types, defaults, and persistence
// for the scrollto demo.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kvisser/scrollto/internal/log"
)

// Config holds all configuration options for the demo.
type Config struct {
	// Feed is the path to the item feed file, one item per line.
	// Empty means the demo generates synthetic items.
	Feed string `mapstructure:"feed"`

	// AutoReload re-reads the feed when it changes on disk.
	AutoReload bool `mapstructure:"auto_reload"`

	// Items is the synthetic item count used when no feed is set.
	Items int `mapstructure:"items"`

	Scroll ScrollConfig `mapstructure:"scroll"`
	Theme  ThemeConfig  `mapstructure:"theme"`
}

// ScrollConfig tunes scroll targeting and animation.
type ScrollConfig struct {
	// Alignment places the target within the viewport: 0 top, 0.5
	// center, 1 bottom.
	Alignment float64 `mapstructure:"alignment"`

	// DurationMS is the animation duration in milliseconds. Zero jumps.
	DurationMS int `mapstructure:"duration_ms"`

	// Curve names the easing curve: "linear", "ease-out", or
	// "ease-in-out".
	Curve string `mapstructure:"curve"`

	// Overscan is how many rows beyond the visible window stay rendered.
	Overscan int `mapstructure:"overscan"`

	// EstimatedHeight is the assumed line height of unrendered rows.
	EstimatedHeight int `mapstructure:"estimated_height"`
}

// ThemeConfig holds color customization. Values are hex colors or ANSI
// color numbers, as understood by lipgloss.
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"`
	Subtle    string `mapstructure:"subtle"`
	Accent    string `mapstructure:"accent"`
	Error     string `mapstructure:"error"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoReload: true,
		Items:      500,
		Scroll: ScrollConfig{
			Alignment:       0,
			DurationMS:      300,
			Curve:           "ease-in-out",
			Overscan:        10,
			EstimatedHeight: 1,
		},
		Theme: ThemeConfig{
			Highlight: "#AD58B4",
			Subtle:    "#5C5C5C",
			Accent:    "#54A0FF",
			Error:     "#FF8787",
		},
	}
}

// Validate checks the configuration for errors. Zero values pass since
// they fall back to defaults.
func Validate(cfg Config) error {
	if cfg.Items < 0 {
		return fmt.Errorf("items must not be negative, got %d", cfg.Items)
	}
	return ValidateScroll(cfg.Scroll)
}

// ValidateScroll checks the scroll section for errors.
func ValidateScroll(s ScrollConfig) error {
	if s.Alignment < 0 || s.Alignment > 1 {
		return fmt.Errorf("scroll.alignment must be between 0.0 and 1.0, got %v", s.Alignment)
	}
	if s.DurationMS < 0 {
		return fmt.Errorf("scroll.duration_ms must not be negative, got %d", s.DurationMS)
	}
	if s.Overscan < 0 {
		return fmt.Errorf("scroll.overscan must not be negative, got %d", s.Overscan)
	}
	if s.EstimatedHeight < 0 {
		return fmt.Errorf("scroll.estimated_height must not be negative, got %d", s.EstimatedHeight)
	}
	switch s.Curve {
	case "", "linear", "ease-out", "ease-in-out":
	default:
		return fmt.Errorf("scroll.curve must be \"linear\", \"ease-out\", or \"ease-in-out\", got %q", s.Curve)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with
// comments.
func DefaultConfigTemplate() string {
	return `# scrollto demo configuration

# Path to an item feed file, one item per line.
# When unset, the demo generates synthetic items.
# feed: /path/to/items.txt

# Re-read the feed when it changes on disk
auto_reload: true

# Synthetic item count (used when no feed is set)
items: 500

# Scroll targeting and animation
scroll:
  alignment: 0.0          # 0 = top, 0.5 = center, 1 = bottom
  duration_ms: 300        # animation duration; 0 jumps instantly
  curve: ease-in-out  # linear, ease-out, ease-in-out
  overscan: 10            # rows kept rendered beyond the visible window
  estimated_height: 1     # assumed line height of unrendered rows

# Theme colors (hex or ANSI color numbers)
theme:
  highlight: "#AD58B4"
  subtle: "#5C5C5C"
  accent: "#54A0FF"
  error: "#FF8787"
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
