package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/texit/internal/ui/styles"
)

func newGate(t *testing.T, saved, current string) Model {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	theme, err := styles.NewTheme(styles.ThemeConfig{Preset: "blue"})
	require.NoError(t, err)
	return New(theme, "Quit without saving?", saved, current)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestShortcutKeys(t *testing.T) {
	cases := []struct {
		key    string
		choice Choice
	}{
		{"s", ChoiceSave},
		{"d", ChoiceDiscard},
		{"c", ChoiceCancel},
		{"esc", ChoiceCancel},
	}
	for _, tc := range cases {
		m := newGate(t, "a", "b")
		_, cmd := m.Update(key(tc.key))
		require.NotNil(t, cmd, tc.key)
		require.Equal(t, ResultMsg{Choice: tc.choice}, cmd(), tc.key)
	}
}

func TestArrowNavigationAndEnter(t *testing.T) {
	m := newGate(t, "a", "b")
	require.Equal(t, ChoiceSave, m.Selected())

	m, _ = m.Update(key("right"))
	require.Equal(t, ChoiceDiscard, m.Selected())

	m, _ = m.Update(key("right"))
	m, _ = m.Update(key("right")) // clamped at Cancel
	require.Equal(t, ChoiceCancel, m.Selected())

	_, cmd := m.Update(key("enter"))
	require.Equal(t, ResultMsg{Choice: ChoiceCancel}, cmd())
}

func TestViewShowsQuestionAndButtons(t *testing.T) {
	m := newGate(t, "hello", "hello world")
	view := m.View()
	require.Contains(t, view, "Quit without saving?")
	require.Contains(t, view, "Save")
	require.Contains(t, view, "Discard")
	require.Contains(t, view, "Cancel")
}

func TestDiffPreviewShowsChanges(t *testing.T) {
	m := newGate(t, "hello\n", "hello\nnew line\n")
	view := m.View()
	require.Contains(t, view, "+new line")
}

func TestNoPreviewWhenIdentical(t *testing.T) {
	require.Nil(t, diffPreview("same", "same"))
}

func TestPreviewIsCapped(t *testing.T) {
	var current string
	for i := 0; i < 50; i++ {
		current += "added line\n"
	}
	lines := diffPreview("", current)
	require.LessOrEqual(t, len(lines), maxPreviewLines+1)
	require.Equal(t, "…", lines[len(lines)-1])
}
