// Package prompt implements a one-line modal input, used for open and
// save-as paths and the autosave interval.
package prompt

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/texit/internal/ui/styles"
)

// Kind tells the app what the submitted value is for.
type Kind int

const (
	KindOpenPath Kind = iota
	KindSaveAsPath
	KindAutosaveInterval
)

// SubmittedMsg carries the entered value.
type SubmittedMsg struct {
	Kind  Kind
	Value string
}

// CancelledMsg signals the prompt was dismissed without a value.
type CancelledMsg struct {
	Kind Kind
}

// Model holds the prompt state.
type Model struct {
	kind  Kind
	title string
	input textinput.Model
	theme styles.Theme
	width int
}

// New creates a prompt of the given kind.
func New(theme styles.Theme, kind Kind, title, placeholder, initial string) Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "> "
	input.SetValue(initial)
	input.CursorEnd()
	input.Focus()

	return Model{
		kind:  kind,
		title: title,
		input: input,
		theme: theme,
		width: 60,
	}
}

// Kind returns what this prompt asks for.
func (m Model) Kind() Kind {
	return m.kind
}

// SetWidth sets the dialog width in cells.
func (m *Model) SetWidth(w int) {
	if w < 20 {
		w = 20
	}
	m.width = w
	m.input.Width = w - 6
}

// Value returns the current input text.
func (m Model) Value() string {
	return m.input.Value()
}

// Update handles input and emits SubmittedMsg or CancelledMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			kind, value := m.kind, m.input.Value()
			return m, func() tea.Msg { return SubmittedMsg{Kind: kind, Value: value} }
		case "esc":
			kind := m.kind
			return m, func() tea.Msg { return CancelledMsg{Kind: kind} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt box.
func (m Model) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Accent.Render(m.title),
		m.input.View(),
		m.theme.Gutter.Render("enter confirm · esc cancel"),
	)
	return m.theme.Dialog.Width(m.width).Render(body)
}
