// Package config provides settings types, defaults, and persistence for
// texit. Settings live in a flat JSON file under the user config dir and
// are merged over defaults on load; a corrupt or missing file is never
// fatal.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/texit/internal/autosave"
)

// Config holds all user-facing settings. Field names map to the flat JSON
// keys of the settings file.
type Config struct {
	Theme           string `mapstructure:"theme" json:"theme"`
	FontFamily      string `mapstructure:"font_family" json:"font_family"`
	FontSize        int    `mapstructure:"font_size" json:"font_size"`
	ShowLineNumbers bool   `mapstructure:"show_line_numbers" json:"show_line_numbers"`
	AutosaveEnabled bool   `mapstructure:"autosave_enabled" json:"autosave_enabled"`
	AutosaveSecs    int    `mapstructure:"autosave_secs" json:"autosave_secs"`
	// HighlightDebounceMS is the quiet period after an edit before the
	// document is re-lexed.
	HighlightDebounceMS int `mapstructure:"highlight_debounce_ms" json:"highlight_debounce_ms"`
}

// Defaults returns the documented default settings.
func Defaults() Config {
	return Config{
		Theme:               "blue",
		FontFamily:          "Fira Code",
		FontSize:            12,
		ShowLineNumbers:     true,
		AutosaveEnabled:     true,
		AutosaveSecs:        autosave.DefaultIntervalSecs,
		HighlightDebounceMS: 250,
	}
}

// ThemeNames lists the built-in theme presets in display order.
func ThemeNames() []string {
	return []string{"blue", "green", "purple"}
}

// ValidTheme reports whether name is a built-in preset.
func ValidTheme(name string) bool {
	for _, n := range ThemeNames() {
		if n == name {
			return true
		}
	}
	return false
}

// Normalize clamps out-of-range values back to usable ones instead of
// failing: unknown themes fall back to the default, the autosave interval
// clamps to its 5-300 s bounds, and a non-positive debounce gets the
// default. Settings problems degrade, they never block startup.
func (c Config) Normalize() Config {
	d := Defaults()
	if !ValidTheme(c.Theme) {
		c.Theme = d.Theme
	}
	if c.FontFamily == "" {
		c.FontFamily = d.FontFamily
	}
	if c.FontSize <= 0 {
		c.FontSize = d.FontSize
	}
	c.AutosaveSecs = int(autosave.ClampInterval(c.AutosaveSecs).Seconds())
	if c.HighlightDebounceMS <= 0 {
		c.HighlightDebounceMS = d.HighlightDebounceMS
	}
	return c
}

// DefaultConfigDir returns the per-user configuration directory,
// ~/.config/texit, or empty string if the home dir is unavailable.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "texit")
}

// DefaultConfigPath returns the default settings file path.
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.json")
}

// DefaultHistoryPath returns the default path of the recents/snapshots
// database.
func DefaultHistoryPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "history.db")
}

// WriteDefaultConfig creates a settings file at the given path with default
// values. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	if err := Save(configPath, Defaults()); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
