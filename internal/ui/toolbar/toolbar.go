// Package toolbar renders the clickable button row at the top of the
// screen. Buttons are registered as bubblezone marks so mouse clicks map
// back to actions without manual coordinate math.
package toolbar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/texit/internal/ui/styles"
)

// Action identifies a toolbar button.
type Action int

const (
	ActionNew Action = iota
	ActionOpen
	ActionSave
	ActionFind
)

// ClickedMsg reports a toolbar button press.
type ClickedMsg struct {
	Action Action
}

type button struct {
	action Action
	label  string
	zoneID string
}

// Model holds the toolbar state.
type Model struct {
	buttons []button
	width   int
	theme   styles.Theme
}

// New creates the toolbar with the standard buttons.
func New(theme styles.Theme) Model {
	return Model{
		theme: theme,
		width: 80,
		buttons: []button{
			{action: ActionNew, label: "New", zoneID: "toolbar_new"},
			{action: ActionOpen, label: "Open", zoneID: "toolbar_open"},
			{action: ActionSave, label: "Save", zoneID: "toolbar_save"},
			{action: ActionFind, label: "Find", zoneID: "toolbar_find"},
		},
	}
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

// Update translates mouse releases over a button zone into ClickedMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return m, nil
	}
	if mouse.Action != tea.MouseActionRelease || mouse.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for _, btn := range m.buttons {
		if z := zone.Get(btn.zoneID); z != nil && z.InBounds(mouse) {
			action := btn.action
			return m, func() tea.Msg { return ClickedMsg{Action: action} }
		}
	}
	return m, nil
}

// View renders the button row.
func (m Model) View() string {
	parts := make([]string, 0, len(m.buttons))
	for _, btn := range m.buttons {
		parts = append(parts, zone.Mark(btn.zoneID, m.theme.Button.Render(btn.label)))
	}
	row := strings.Join(parts, " ")
	return m.theme.StatusBar.Width(m.width).Render(row)
}
