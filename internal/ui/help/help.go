// Package help renders the keybinding reference overlay as markdown.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/texit/internal/keys"
	"github.com/zjrosen/texit/internal/ui/styles"
)

// noMarginStyle removes document margins so the overlay box does its own
// padding.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Model holds the rendered help content.
type Model struct {
	content string
	theme   styles.Theme
	width   int
}

// New renders the keybinding reference for the given key map.
func New(theme styles.Theme, km keys.KeyMap, width int) (Model, error) {
	if width < 30 {
		width = 30
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return Model{}, fmt.Errorf("creating help renderer: %w", err)
	}

	rendered, err := renderer.Render(referenceMarkdown(km))
	if err != nil {
		return Model{}, fmt.Errorf("rendering help: %w", err)
	}

	return Model{
		content: strings.TrimRight(rendered, "\n"),
		theme:   theme,
		width:   width,
	}, nil
}

// View renders the overlay box.
func (m Model) View() string {
	body := m.content + "\n\n" + m.theme.Gutter.Render("esc close")
	return m.theme.Dialog.Width(m.width).Render(body)
}

func referenceMarkdown(km keys.KeyMap) string {
	section := func(title string, bindings ...key.Binding) string {
		var b strings.Builder
		fmt.Fprintf(&b, "## %s\n\n", title)
		for _, binding := range bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "- `%s` %s\n", h.Key, h.Desc)
		}
		return b.String()
	}

	return strings.Join([]string{
		"# texit\n",
		section("File", km.New, km.Open, km.Save, km.SaveAs, km.Reload),
		section("Edit", km.Find, km.Cut, km.Copy, km.Paste, km.Undo, km.Redo),
		section("View", km.ToggleLineNumbers, km.CycleTheme, km.ToggleAutosave, km.AutosaveInterval),
		section("General", km.Help, km.Escape, km.Quit),
	}, "\n")
}
