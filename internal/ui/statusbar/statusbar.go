// Package statusbar renders the single-line footer: file name, dirty
// marker, cursor position, autosave state, and transient messages.
package statusbar

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/texit/internal/ui/styles"
)

// DefaultMessageDuration is how long a transient message stays visible.
const DefaultMessageDuration = 3 * time.Second

// ClearMsg expires a transient message. Seq guards against a stale timer
// clearing a newer message.
type ClearMsg struct {
	Seq int
}

// Model holds the statusbar state.
type Model struct {
	width int
	theme styles.Theme

	fileName string
	dirty    bool
	line     int
	col      int

	autosaveOn   bool
	autosaveSecs int
	themeName    string

	message    string
	messageSeq int
}

// New creates a statusbar.
func New(theme styles.Theme) Model {
	return Model{width: 80, theme: theme, fileName: "Untitled"}
}

// SetTheme swaps the active theme.
func (m *Model) SetTheme(theme styles.Theme) {
	m.theme = theme
}

// SetWidth sets the render width in cells.
func (m *Model) SetWidth(w int) {
	if w < 1 {
		w = 1
	}
	m.width = w
}

// SetFile updates the displayed file name and dirty flag.
func (m *Model) SetFile(name string, dirty bool) {
	if name == "" {
		name = "Untitled"
	}
	m.fileName = name
	m.dirty = dirty
}

// SetCursor updates the displayed cursor position. Line and col are
// 1-based.
func (m *Model) SetCursor(line, col int) {
	m.line = line
	m.col = col
}

// SetAutosave updates the autosave indicator.
func (m *Model) SetAutosave(on bool, secs int) {
	m.autosaveOn = on
	m.autosaveSecs = secs
}

// SetThemeName updates the theme indicator.
func (m *Model) SetThemeName(name string) {
	m.themeName = name
}

// ShowMessage displays a transient message and returns the command that
// clears it after DefaultMessageDuration.
func (m *Model) ShowMessage(text string) tea.Cmd {
	m.messageSeq++
	m.message = text
	seq := m.messageSeq
	return tea.Tick(DefaultMessageDuration, func(time.Time) tea.Msg {
		return ClearMsg{Seq: seq}
	})
}

// Update handles message expiry.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if clear, ok := msg.(ClearMsg); ok && clear.Seq == m.messageSeq {
		m.message = ""
	}
	return m, nil
}

// Message returns the current transient message, empty when none.
func (m Model) Message() string {
	return m.message
}

// View renders the bar at the configured width.
func (m Model) View() string {
	name := m.fileName
	if m.dirty {
		name += " *"
	}

	left := name
	if m.message != "" {
		left = name + "  " + m.theme.StatusMsg.Render(m.message)
	}

	autosave := "autosave off"
	if m.autosaveOn {
		autosave = fmt.Sprintf("autosave %ds", m.autosaveSecs)
	}
	right := fmt.Sprintf("%s | %s | Ln %d, Col %d", m.themeName, autosave, m.line, m.col)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = truncate.StringWithTail(left, uint(max(m.width-lipgloss.Width(right)-2, 1)), "…")
		gap = m.width - lipgloss.Width(left) - lipgloss.Width(right)
		if gap < 1 {
			gap = 1
		}
	}

	bar := left + lipgloss.NewStyle().Render(fmt.Sprintf("%*s", gap, "")) + right
	return m.theme.StatusBar.Width(m.width).Render(truncate.String(bar, uint(m.width)))
}
