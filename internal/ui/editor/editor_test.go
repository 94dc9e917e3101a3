package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/texit/internal/highlight"
	"github.com/zjrosen/texit/internal/ui/styles"
)

func testTheme(t *testing.T) styles.Theme {
	t.Helper()
	theme, err := styles.NewTheme(styles.ThemeConfig{Preset: "blue"})
	require.NoError(t, err)
	return theme
}

func newEditor(t *testing.T, text string) Model {
	t.Helper()
	m := New(testTheme(t))
	m.SetValue(text)
	m.SetSize(40, 10)
	return m
}

func keyPress(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	case "delete":
		msg = tea.KeyMsg{Type: tea.KeyDelete}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "home":
		msg = tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		msg = tea.KeyMsg{Type: tea.KeyEnd}
	case "shift+left":
		msg = tea.KeyMsg{Type: tea.KeyShiftLeft}
	case "shift+right":
		msg = tea.KeyMsg{Type: tea.KeyShiftRight}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ = m.Update(msg)
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m = keyPress(m, string(r))
	}
	return m
}

func TestValueRoundTrip(t *testing.T) {
	for _, text := range []string{"", "hello", "a\nb\nc", "trailing\n"} {
		m := newEditor(t, text)
		require.Equal(t, text, m.Value())
	}
}

func TestTypingInsertsAtCursor(t *testing.T) {
	m := newEditor(t, "")
	m = typeText(m, "hi")
	require.Equal(t, "hi", m.Value())
	require.Equal(t, 1, m.Line())
	require.Equal(t, 3, m.Column())
}

func TestEnterSplitsLine(t *testing.T) {
	m := newEditor(t, "abcd")
	m.SetCursorOffset(2)
	m = keyPress(m, "enter")
	require.Equal(t, "ab\ncd", m.Value())
	require.Equal(t, 2, m.Line())
	require.Equal(t, 1, m.Column())
}

func TestBackspaceJoinsLines(t *testing.T) {
	m := newEditor(t, "ab\ncd")
	m.SetCursorOffset(3) // start of "cd"
	m = keyPress(m, "backspace")
	require.Equal(t, "abcd", m.Value())
	require.Equal(t, 1, m.Line())
	require.Equal(t, 3, m.Column())
}

func TestDeleteAtEndOfLineJoins(t *testing.T) {
	m := newEditor(t, "ab\ncd")
	m.SetCursorOffset(2)
	m = keyPress(m, "delete")
	require.Equal(t, "abcd", m.Value())
}

func TestBackspaceAtBufferStartIsNoop(t *testing.T) {
	m := newEditor(t, "ab")
	m.SetCursorOffset(0)
	m = keyPress(m, "backspace")
	require.Equal(t, "ab", m.Value())
}

func TestCursorMovesByGrapheme(t *testing.T) {
	// "é" as e plus combining accent is one grapheme but three bytes.
	m := newEditor(t, "aéb")
	m.SetCursorOffset(0)
	m = keyPress(m, "right")
	m = keyPress(m, "right")
	require.Equal(t, 3, m.Column())
	require.Equal(t, 4, m.CursorOffset())

	m = keyPress(m, "backspace")
	require.Equal(t, "ab", m.Value())
}

func TestCursorOffsetRoundTrip(t *testing.T) {
	text := "one\ntwo e\u0301\nthree"
	m := newEditor(t, text)
	for off := 0; off <= len(text); off++ {
		m.SetCursorOffset(off)
		got := m.CursorOffset()
		require.LessOrEqual(t, got, off)
		// Setting again is stable.
		m.SetCursorOffset(got)
		require.Equal(t, got, m.CursorOffset())
	}
}

func TestSelectionWithShiftArrows(t *testing.T) {
	m := newEditor(t, "hello")
	m.SetCursorOffset(0)
	m = keyPress(m, "shift+right")
	m = keyPress(m, "shift+right")

	start, end, ok := m.Selection()
	require.True(t, ok)
	require.Equal(t, 0, start)
	require.Equal(t, 2, end)

	// Plain movement clears the selection.
	m = keyPress(m, "left")
	_, _, ok = m.Selection()
	require.False(t, ok)
}

func TestTypingReplacesSelection(t *testing.T) {
	m := newEditor(t, "hello world")
	m.SetSelection(0, 5)
	m = keyPress(m, "x")
	require.Equal(t, "x world", m.Value())
}

func TestBackspaceDeletesSelection(t *testing.T) {
	m := newEditor(t, "hello world")
	m.SetSelection(5, 11)
	m = keyPress(m, "backspace")
	require.Equal(t, "hello", m.Value())
}

func TestCutRemovesSelectionAndEmits(t *testing.T) {
	m := newEditor(t, "hello world")
	m.SetSelection(0, 6)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	require.Equal(t, "world", m.Value())
	require.NotNil(t, cmd, "cut is an edit")
	require.Equal(t, ContentChangedMsg{}, cmd())
}

func TestCutWithoutSelectionIsNoop(t *testing.T) {
	m := newEditor(t, "hello")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	require.Equal(t, "hello", m.Value())
	require.Nil(t, cmd)
}

func TestCopyLeavesBufferAndSelection(t *testing.T) {
	m := newEditor(t, "hello world")
	m.SetSelection(0, 5)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.Equal(t, "hello world", m.Value())
	require.Nil(t, cmd, "copy is not an edit")
	start, end, ok := m.Selection()
	require.True(t, ok)
	require.Equal(t, 0, start)
	require.Equal(t, 5, end)
}

func TestPasteInsertsAtCursorAndReplacesSelection(t *testing.T) {
	m := newEditor(t, "ab")
	m.SetCursorOffset(1)

	m, cmd := m.Update(pasteMsg("XY"))
	require.Equal(t, "aXYb", m.Value())
	require.NotNil(t, cmd)
	require.Equal(t, ContentChangedMsg{}, cmd())

	m.SetSelection(0, 3)
	m, _ = m.Update(pasteMsg("z"))
	require.Equal(t, "zb", m.Value())
}

func TestPasteUndoRestoresBuffer(t *testing.T) {
	m := newEditor(t, "ab")
	m.SetCursorOffset(2)

	m, _ = m.Update(pasteMsg("cd"))
	require.Equal(t, "abcd", m.Value())
	require.True(t, m.Undo())
	require.Equal(t, "ab", m.Value())
}

func TestSetSelectionSwapsReversedRange(t *testing.T) {
	m := newEditor(t, "hello")
	m.SetSelection(4, 1)
	start, end, ok := m.Selection()
	require.True(t, ok)
	require.Equal(t, 1, start)
	require.Equal(t, 4, end)
}

func TestReplaceRange(t *testing.T) {
	m := newEditor(t, "foo bar baz")
	m.ReplaceRange(4, 7, "qux")
	require.Equal(t, "foo qux baz", m.Value())
	require.Equal(t, 7, m.CursorOffset())
}

func TestReplaceRangeClampsOffsets(t *testing.T) {
	m := newEditor(t, "abc")
	m.ReplaceRange(-5, 100, "xyz")
	require.Equal(t, "xyz", m.Value())
}

func TestUndoRedo(t *testing.T) {
	m := newEditor(t, "")
	m = typeText(m, "abc")
	require.Equal(t, "abc", m.Value())

	require.True(t, m.Undo())
	require.Equal(t, "ab", m.Value())
	require.True(t, m.Undo())
	require.Equal(t, "a", m.Value())

	require.True(t, m.Redo())
	require.Equal(t, "ab", m.Value())
	require.True(t, m.Redo())
	require.Equal(t, "abc", m.Value())
	require.False(t, m.Redo())
}

func TestEditAfterUndoDropsRedo(t *testing.T) {
	m := newEditor(t, "")
	m = typeText(m, "ab")
	require.True(t, m.Undo())
	m = keyPress(m, "z")
	require.Equal(t, "az", m.Value())
	require.False(t, m.Redo())
}

func TestUndoEmptyStack(t *testing.T) {
	m := newEditor(t, "fresh")
	require.False(t, m.Undo())
}

func TestVerticalMovementKeepsColumn(t *testing.T) {
	m := newEditor(t, "longer line\nab\nanother line")
	m.SetCursorOffset(8)
	m = keyPress(m, "down")
	require.Equal(t, 2, m.Line())
	require.Equal(t, 3, m.Column()) // clamped to short line end
	m = keyPress(m, "down")
	require.Equal(t, 3, m.Line())
	require.Equal(t, 9, m.Column()) // sticky column restored
}

func TestEditEmitsContentChanged(t *testing.T) {
	m := newEditor(t, "")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	require.NotNil(t, cmd)
	require.IsType(t, ContentChangedMsg{}, cmd())

	// Pure movement does not emit.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	require.Nil(t, cmd)
}

func TestBlurredEditorIgnoresInput(t *testing.T) {
	m := newEditor(t, "abc")
	m.Blur()
	m = keyPress(m, "x")
	require.Equal(t, "abc", m.Value())
}

func TestViewShowsContentAndGutter(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m := newEditor(t, "alpha\nbeta")
	view := m.View()
	require.Contains(t, view, "alpha")
	require.Contains(t, view, "beta")
	require.Contains(t, view, " 1 ")
	require.Contains(t, view, " 2 ")
}

func TestViewHidesGutterWhenDisabled(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m := newEditor(t, "alpha")
	m.SetShowLineNumbers(false)
	view := m.View()
	require.Contains(t, view, "alpha")
	require.NotContains(t, view, " 1 ")
}

func TestViewScrollsToCursor(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "line")
	}
	lines = append(lines, "last-line")
	m := newEditor(t, strings.Join(lines, "\n"))
	m.SetCursorOffset(len(m.Value()))
	view := m.View()
	require.Contains(t, view, "last-line")
	require.NotContains(t, view, " 1 ")
}

func TestViewRendersTabsAsSpaces(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m := newEditor(t, "\tx")
	m.SetShowLineNumbers(false)
	m.Blur()
	view := m.View()
	require.Contains(t, view, "    x")
}

func TestSetSpansDoesNotPanicOnStaleOffsets(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m := newEditor(t, "ab")
	m.SetSpans([]highlight.Span{{Class: highlight.ClassKeyword, Start: 0, End: 500}})
	require.NotPanics(t, func() { _ = m.View() })
}
