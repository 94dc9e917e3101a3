package finddialog

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/texit/internal/search"
	"github.com/zjrosen/texit/internal/ui/styles"
)

func newDialog(t *testing.T) Model {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	theme, err := styles.NewTheme(styles.ThemeConfig{Preset: "blue"})
	require.NoError(t, err)
	return New(theme)
}

func typeInto(m Model, text string) Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "alt+x":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}
	case "alt+c":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}, Alt: true}
	case "alt+r":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}, Alt: true}
	case "alt+a":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEnterEmitsFindNext(t *testing.T) {
	m := newDialog(t)
	m = typeInto(m, "needle")

	m, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(FindNextMsg)
	require.True(t, ok)
	require.Equal(t, "needle", msg.Query.Pattern)
	require.False(t, msg.Query.IsRegex)
	require.False(t, msg.Query.CaseSensitive)
}

func TestEmptyPatternDoesNotEmit(t *testing.T) {
	m := newDialog(t)
	_, cmd := m.Update(key("enter"))
	require.Nil(t, cmd)
}

func TestTogglesCarryIntoQuery(t *testing.T) {
	m := newDialog(t)
	m = typeInto(m, "a.b")
	m, _ = m.Update(key("alt+x"))
	m, _ = m.Update(key("alt+c"))

	q := m.Query()
	require.True(t, q.IsRegex)
	require.True(t, q.CaseSensitive)

	// Toggling again turns them back off.
	m, _ = m.Update(key("alt+x"))
	require.False(t, m.Query().IsRegex)
}

func TestTabMovesToReplaceField(t *testing.T) {
	m := newDialog(t)
	m = typeInto(m, "old")
	m, _ = m.Update(key("tab"))
	m = typeInto(m, "new")

	m, cmd := m.Update(key("alt+a"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(ReplaceAllMsg)
	require.True(t, ok)
	require.Equal(t, "old", msg.Query.Pattern)
	require.Equal(t, "new", msg.Replacement)
}

func TestReplaceOneEmitsReplaceMsg(t *testing.T) {
	m := newDialog(t)
	m = typeInto(m, "old")
	m, _ = m.Update(key("tab"))
	m = typeInto(m, "new")

	_, cmd := m.Update(key("alt+r"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(ReplaceMsg)
	require.True(t, ok)
	require.Equal(t, search.Query{Pattern: "old"}, msg.Query)
	require.Equal(t, "new", msg.Replacement)
}

func TestEscapeCloses(t *testing.T) {
	m := newDialog(t)
	_, cmd := m.Update(key("esc"))
	require.NotNil(t, cmd)
	require.IsType(t, ClosedMsg{}, cmd())
}

func TestSetPatternPrefills(t *testing.T) {
	m := newDialog(t)
	m.SetPattern("carried")
	require.Equal(t, "carried", m.Query().Pattern)
}

func TestViewShowsFieldsAndOptions(t *testing.T) {
	m := newDialog(t)
	view := m.View()
	require.Contains(t, view, "Find & Replace")
	require.Contains(t, view, "regex")
	require.Contains(t, view, "match case")
}
