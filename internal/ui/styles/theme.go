// Package styles builds Lip Gloss styles from a theme preset plus optional
// per-token color overrides. A Theme is an explicit value passed to the UI
// components; there is no package-level mutable palette.
package styles

import (
	"fmt"
	"maps"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/texit/internal/highlight"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ThemeConfig selects a preset and optional color overrides.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// Theme holds the resolved styles for every UI surface.
type Theme struct {
	Name string

	Text      lipgloss.Style
	Gutter    lipgloss.Style
	Selection lipgloss.Style
	Accent    lipgloss.Style
	StatusBar lipgloss.Style
	StatusMsg lipgloss.Style
	Dialog    lipgloss.Style
	Button    lipgloss.Style

	tokenStyles map[highlight.Class]lipgloss.Style
	colors      map[ColorToken]string
}

// NewTheme resolves a theme: preset colors first, then per-token overrides.
// Unknown presets, unknown tokens, and malformed hex values are errors so a
// typo in settings surfaces instead of silently rendering wrong.
func NewTheme(cfg ThemeConfig) (Theme, error) {
	name := cfg.Preset
	if name == "" {
		name = "blue"
	}
	preset, ok := Presets[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme preset: %s", name)
	}

	colors := maps.Clone(preset.Colors)
	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return Theme{}, fmt.Errorf("unknown color token: %s", key)
		}
		if !hexColorPattern.MatchString(value) {
			return Theme{}, fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	return build(name, colors), nil
}

func build(name string, colors map[ColorToken]string) Theme {
	color := func(t ColorToken) lipgloss.Color {
		return lipgloss.Color(colors[t])
	}

	tokens := map[highlight.Class]lipgloss.Style{
		highlight.ClassKeyword:     lipgloss.NewStyle().Foreground(color(TokenSynKeyword)).Bold(true),
		highlight.ClassBuiltin:     lipgloss.NewStyle().Foreground(color(TokenSynBuiltin)),
		highlight.ClassString:      lipgloss.NewStyle().Foreground(color(TokenSynString)),
		highlight.ClassNumber:      lipgloss.NewStyle().Foreground(color(TokenSynNumber)),
		highlight.ClassComment:     lipgloss.NewStyle().Foreground(color(TokenSynComment)).Italic(true),
		highlight.ClassOperator:    lipgloss.NewStyle().Foreground(color(TokenSynOperator)),
		highlight.ClassFunction:    lipgloss.NewStyle().Foreground(color(TokenSynFunction)),
		highlight.ClassClass:       lipgloss.NewStyle().Foreground(color(TokenSynClass)),
		highlight.ClassPunctuation: lipgloss.NewStyle().Foreground(color(TokenSynPunctuation)),
		highlight.ClassPlain:       lipgloss.NewStyle().Foreground(color(TokenSynPlain)),
	}

	return Theme{
		Name:      name,
		Text:      lipgloss.NewStyle().Foreground(color(TokenForeground)),
		Gutter:    lipgloss.NewStyle().Foreground(color(TokenGutterFg)).Background(color(TokenGutterBg)),
		Selection: lipgloss.NewStyle().Foreground(color(TokenSelectFg)).Background(color(TokenSelectBg)),
		Accent:    lipgloss.NewStyle().Foreground(color(TokenAccent)),
		StatusBar: lipgloss.NewStyle().Foreground(color(TokenForeground)).Background(color(TokenGutterBg)),
		StatusMsg: lipgloss.NewStyle().Foreground(color(TokenAccent)).Background(color(TokenGutterBg)),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(TokenAccent)).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(color(TokenForeground)).
			Background(color(TokenAccent)).
			Padding(0, 1),

		tokenStyles: tokens,
		colors:      colors,
	}
}

// ClassStyle returns the style for one syntax display class.
func (t Theme) ClassStyle(class highlight.Class) lipgloss.Style {
	if s, ok := t.tokenStyles[class]; ok {
		return s
	}
	return t.Text
}

// Color returns the raw hex value of a token, for surfaces that need the
// color rather than a style.
func (t Theme) Color(token ColorToken) string {
	return t.colors[token]
}

// DisplayName returns the human-facing preset name ("Blue") for a key.
func DisplayName(key string) string {
	if p, ok := Presets[key]; ok {
		return p.Name
	}
	return strings.Title(key) //nolint:staticcheck // preset keys are ASCII
}
