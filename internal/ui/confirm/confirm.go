// Package confirm implements the unsaved-changes gate. Destructive actions
// (new, open, quit) route through here when the buffer is dirty. The dialog
// shows a short diff of what would be lost.
package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/texit/internal/ui/styles"
)

// Choice is the user's decision.
type Choice int

const (
	ChoiceSave Choice = iota
	ChoiceDiscard
	ChoiceCancel
)

// ResultMsg carries the decision back to the app.
type ResultMsg struct {
	Choice Choice
}

const maxPreviewLines = 8

// Model holds the gate state.
type Model struct {
	question string
	preview  []string
	selected Choice
	theme    styles.Theme
	width    int
}

// New creates the gate. question names the pending action ("Open another
// file?"); saved and current are the on-disk and buffer contents used for
// the diff preview.
func New(theme styles.Theme, question, saved, current string) Model {
	return Model{
		question: question,
		preview:  diffPreview(saved, current),
		selected: ChoiceSave,
		theme:    theme,
		width:    60,
	}
}

// SetWidth sets the dialog width in cells.
func (m *Model) SetWidth(w int) {
	if w < 24 {
		w = 24
	}
	m.width = w
}

// Selected returns the currently highlighted choice.
func (m Model) Selected() Choice {
	return m.selected
}

// Update handles navigation and confirmation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "left", "shift+tab":
		if m.selected > ChoiceSave {
			m.selected--
		}
	case "right", "tab":
		if m.selected < ChoiceCancel {
			m.selected++
		}
	case "s":
		return m.choose(ChoiceSave)
	case "d":
		return m.choose(ChoiceDiscard)
	case "c", "esc":
		return m.choose(ChoiceCancel)
	case "enter":
		return m.choose(m.selected)
	}
	return m, nil
}

func (m Model) choose(c Choice) (Model, tea.Cmd) {
	return m, func() tea.Msg { return ResultMsg{Choice: c} }
}

// View renders the dialog.
func (m Model) View() string {
	addStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Color(styles.TokenSynString)))
	delStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Color(styles.TokenSynOperator)))

	var lines []string
	lines = append(lines, m.theme.Accent.Render("Unsaved changes"))
	lines = append(lines, m.question)

	if len(m.preview) > 0 {
		lines = append(lines, "")
		for _, p := range m.preview {
			switch {
			case strings.HasPrefix(p, "+"):
				lines = append(lines, addStyle.Render(p))
			case strings.HasPrefix(p, "-"):
				lines = append(lines, delStyle.Render(p))
			default:
				lines = append(lines, p)
			}
		}
	}

	lines = append(lines, "")
	lines = append(lines, m.buttons())
	lines = append(lines, m.theme.Gutter.Render("s save · d discard · c cancel"))

	return m.theme.Dialog.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) buttons() string {
	labels := []string{"Save", "Discard", "Cancel"}
	parts := make([]string, len(labels))
	for i, label := range labels {
		if Choice(i) == m.selected {
			parts[i] = m.theme.Button.Render("[" + label + "]")
		} else {
			parts[i] = " " + label + " "
		}
	}
	return strings.Join(parts, " ")
}

// diffPreview renders a line-oriented summary of the edits between saved
// and current, capped at maxPreviewLines.
func diffPreview(saved, current string) []string {
	if saved == current {
		return nil
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(saved, current, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var lines []string
	for _, d := range diffs {
		text := strings.TrimRight(d.Text, "\n")
		if text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				lines = append(lines, "+"+line)
			case diffmatchpatch.DiffDelete:
				lines = append(lines, "-"+line)
			}
			if len(lines) >= maxPreviewLines {
				lines = append(lines, "…")
				return lines
			}
		}
	}
	return lines
}
