package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/texit/internal/ui/styles"
)

func newPrompt(t *testing.T, kind Kind, initial string) Model {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	theme, err := styles.NewTheme(styles.ThemeConfig{Preset: "blue"})
	require.NoError(t, err)
	return New(theme, kind, "Open file", "path", initial)
}

func TestSubmitEmitsValue(t *testing.T) {
	m := newPrompt(t, KindOpenPath, "")
	for _, r := range "notes.txt" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, SubmittedMsg{Kind: KindOpenPath, Value: "notes.txt"}, cmd())
}

func TestEscapeCancels(t *testing.T) {
	m := newPrompt(t, KindSaveAsPath, "draft.txt")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	require.NotNil(t, cmd)
	require.Equal(t, CancelledMsg{Kind: KindSaveAsPath}, cmd())
}

func TestInitialValuePrefilled(t *testing.T) {
	m := newPrompt(t, KindAutosaveInterval, "10")
	require.Equal(t, "10", m.Value())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, SubmittedMsg{Kind: KindAutosaveInterval, Value: "10"}, cmd())
}

func TestViewShowsTitle(t *testing.T) {
	m := newPrompt(t, KindOpenPath, "")
	require.Contains(t, m.View(), "Open file")
}
