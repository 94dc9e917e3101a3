// Package finddialog implements the find and replace overlay. The dialog
// owns the pattern and options; the actual search runs in the app against
// the editor buffer, driven by the messages emitted here.
package finddialog

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/texit/internal/search"
	"github.com/zjrosen/texit/internal/ui/styles"
)

// FindNextMsg asks for the next match after the cursor.
type FindNextMsg struct {
	Query search.Query
}

// ReplaceMsg asks to replace the current match and advance.
type ReplaceMsg struct {
	Query       search.Query
	Replacement string
}

// ReplaceAllMsg asks to replace every match in the buffer.
type ReplaceAllMsg struct {
	Query       search.Query
	Replacement string
}

// ClosedMsg signals that the dialog was dismissed.
type ClosedMsg struct{}

const (
	fieldFind = iota
	fieldReplace
)

// Model holds the dialog state.
type Model struct {
	findInput    textinput.Model
	replaceInput textinput.Model
	focus        int

	isRegex       bool
	caseSensitive bool

	theme styles.Theme
	width int
}

// New creates the dialog with the find field focused.
func New(theme styles.Theme) Model {
	find := textinput.New()
	find.Placeholder = "pattern"
	find.Prompt = "Find: "
	find.Focus()

	replace := textinput.New()
	replace.Placeholder = "replacement"
	replace.Prompt = "Replace: "

	return Model{
		findInput:    find,
		replaceInput: replace,
		theme:        theme,
		width:        60,
	}
}

// SetTheme swaps the active theme.
func (m *Model) SetTheme(theme styles.Theme) {
	m.theme = theme
}

// SetWidth sets the dialog width in cells.
func (m *Model) SetWidth(w int) {
	if w < 20 {
		w = 20
	}
	m.width = w
	m.findInput.Width = w - 14
	m.replaceInput.Width = w - 14
}

// Query returns the current query built from the inputs and toggles.
func (m Model) Query() search.Query {
	return search.Query{
		Pattern:       m.findInput.Value(),
		IsRegex:       m.isRegex,
		CaseSensitive: m.caseSensitive,
	}
}

// SetPattern pre-fills the find field, used when reopening with a prior
// search.
func (m *Model) SetPattern(pattern string) {
	m.findInput.SetValue(pattern)
	m.findInput.CursorEnd()
}

// Update handles dialog input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return ClosedMsg{} }
	case "tab", "shift+tab", "up", "down":
		if m.focus == fieldFind {
			m.focus = fieldReplace
			m.findInput.Blur()
			m.replaceInput.Focus()
		} else {
			m.focus = fieldFind
			m.replaceInput.Blur()
			m.findInput.Focus()
		}
		return m, nil
	case "alt+x":
		m.isRegex = !m.isRegex
		return m, nil
	case "alt+c":
		m.caseSensitive = !m.caseSensitive
		return m, nil
	case "enter":
		if m.findInput.Value() == "" {
			return m, nil
		}
		q := m.Query()
		return m, func() tea.Msg { return FindNextMsg{Query: q} }
	case "alt+r":
		if m.findInput.Value() == "" {
			return m, nil
		}
		q := m.Query()
		repl := m.replaceInput.Value()
		return m, func() tea.Msg { return ReplaceMsg{Query: q, Replacement: repl} }
	case "alt+a":
		if m.findInput.Value() == "" {
			return m, nil
		}
		q := m.Query()
		repl := m.replaceInput.Value()
		return m, func() tea.Msg { return ReplaceAllMsg{Query: q, Replacement: repl} }
	}

	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.findInput, cmd = m.findInput.Update(msg)
	cmds = append(cmds, cmd)
	m.replaceInput, cmd = m.replaceInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the dialog box.
func (m Model) View() string {
	toggle := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}
	options := fmt.Sprintf("%s regex (alt+x)  %s match case (alt+c)",
		toggle(m.isRegex), toggle(m.caseSensitive))
	hint := "enter find next · alt+r replace · alt+a replace all · esc close"

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Accent.Render("Find & Replace"),
		m.findInput.View(),
		m.replaceInput.View(),
		options,
		m.theme.Gutter.Render(hint),
	)
	return m.theme.Dialog.Width(m.width).Render(body)
}
