package statusbar

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/texit/internal/ui/styles"
)

func newBar(t *testing.T) Model {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	theme, err := styles.NewTheme(styles.ThemeConfig{Preset: "blue"})
	require.NoError(t, err)
	m := New(theme)
	m.SetWidth(80)
	m.SetCursor(1, 1)
	m.SetAutosave(true, 10)
	m.SetThemeName("Blue")
	return m
}

func TestViewShowsFileAndPosition(t *testing.T) {
	m := newBar(t)
	m.SetFile("notes.txt", false)
	m.SetCursor(3, 7)

	view := m.View()
	require.Contains(t, view, "notes.txt")
	require.NotContains(t, view, "*")
	require.Contains(t, view, "Ln 3, Col 7")
}

func TestDirtyMarker(t *testing.T) {
	m := newBar(t)
	m.SetFile("notes.txt", true)
	require.Contains(t, m.View(), "notes.txt *")
}

func TestUntitledFallback(t *testing.T) {
	m := newBar(t)
	m.SetFile("", false)
	require.Contains(t, m.View(), "Untitled")
}

func TestAutosaveIndicator(t *testing.T) {
	m := newBar(t)
	m.SetAutosave(true, 30)
	require.Contains(t, m.View(), "autosave 30s")

	m.SetAutosave(false, 30)
	require.Contains(t, m.View(), "autosave off")
}

func TestTransientMessageLifecycle(t *testing.T) {
	m := newBar(t)
	cmd := m.ShowMessage("saved")
	require.NotNil(t, cmd)
	require.Contains(t, m.View(), "saved")

	clear, ok := cmd().(ClearMsg)
	require.True(t, ok)

	m, _ = m.Update(clear)
	require.Empty(t, m.Message())
}

func TestStaleClearDoesNotDropNewerMessage(t *testing.T) {
	m := newBar(t)
	first := m.ShowMessage("one")()
	_ = m.ShowMessage("two")

	m, _ = m.Update(first)
	require.Equal(t, "two", m.Message())
}

func TestViewFitsWidth(t *testing.T) {
	m := newBar(t)
	m.SetWidth(40)
	m.SetFile("a-very-long-file-name-that-never-ends.txt", true)
	view := m.View()
	require.LessOrEqual(t, lipgloss.Width(view), 40)
}
