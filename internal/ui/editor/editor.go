// Package editor provides the multi-line text editing widget. Content is a
// slice of lines, the cursor addresses grapheme clusters so combining marks
// and emoji move as one unit, and all external offsets are byte offsets into
// the joined text.
package editor

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/texit/internal/highlight"
	"github.com/zjrosen/texit/internal/ui/styles"
)

const (
	maxUndoDepth = 200
	tabWidth     = 4
)

// ContentChangedMsg signals that an edit modified the buffer.
type ContentChangedMsg struct{}

// pasteMsg carries clipboard content back into the editor.
type pasteMsg string

type pasteErrMsg struct{ error }

// Paste reads the system clipboard. Issued as a command so the read
// happens off the update loop.
func Paste() tea.Msg {
	str, err := clipboard.ReadAll()
	if err != nil {
		return pasteErrMsg{err}
	}
	return pasteMsg(str)
}

type snapshot struct {
	lines []string
	line  int
	col   int
}

// Model is the editor widget state.
type Model struct {
	lines []string

	cursorLine int // 0-based line index
	cursorCol  int // grapheme index within the line
	desiredCol int // sticky display column for vertical movement

	selecting  bool
	anchorLine int
	anchorCol  int

	offsetRow int // first visible line
	offsetCol int // first visible display column

	width  int
	height int

	showLineNumbers bool
	focused         bool

	theme styles.Theme
	spans []highlight.Span

	undoStack []snapshot
	redoStack []snapshot
}

// New creates an empty editor.
func New(theme styles.Theme) Model {
	return Model{
		lines:           []string{""},
		width:           80,
		height:          24,
		showLineNumbers: true,
		focused:         true,
		theme:           theme,
	}
}

// Value returns the buffer content with lines joined by "\n".
func (m Model) Value() string {
	return strings.Join(m.lines, "\n")
}

// SetValue replaces the buffer, resets the cursor and scroll, and clears
// selection and undo history.
func (m *Model) SetValue(text string) {
	m.lines = strings.Split(text, "\n")
	m.cursorLine = 0
	m.cursorCol = 0
	m.desiredCol = 0
	m.offsetRow = 0
	m.offsetCol = 0
	m.selecting = false
	m.undoStack = nil
	m.redoStack = nil
	m.spans = nil
}

// SetTheme swaps the active theme.
func (m *Model) SetTheme(theme styles.Theme) {
	m.theme = theme
}

// SetSpans installs the syntax spans used by the next render. Offsets are
// byte offsets into Value().
func (m *Model) SetSpans(spans []highlight.Span) {
	m.spans = spans
}

// SetSize sets the widget dimensions in cells.
func (m *Model) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	m.width = width
	m.height = height
	m.scrollToCursor()
}

// SetShowLineNumbers toggles the gutter.
func (m *Model) SetShowLineNumbers(on bool) {
	m.showLineNumbers = on
}

// ShowLineNumbers reports whether the gutter is drawn.
func (m Model) ShowLineNumbers() bool {
	return m.showLineNumbers
}

// Focus gives the editor keyboard focus.
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the editor has keyboard focus.
func (m Model) Focused() bool { return m.focused }

// Line returns the 1-based cursor line for display.
func (m Model) Line() int { return m.cursorLine + 1 }

// Column returns the 1-based cursor column in grapheme clusters for display.
func (m Model) Column() int { return m.cursorCol + 1 }

// LineCount returns the number of lines in the buffer.
func (m Model) LineCount() int { return len(m.lines) }

// CursorOffset returns the cursor position as a byte offset into Value().
func (m Model) CursorOffset() int {
	off := 0
	for i := 0; i < m.cursorLine; i++ {
		off += len(m.lines[i]) + 1
	}
	return off + byteIndexOfGrapheme(m.lines[m.cursorLine], m.cursorCol)
}

// SetCursorOffset moves the cursor to a byte offset, clamping to the buffer.
func (m *Model) SetCursorOffset(offset int) {
	line, col := m.locate(offset)
	m.cursorLine = line
	m.cursorCol = col
	m.desiredCol = displayWidth(m.lines[line][:byteIndexOfGrapheme(m.lines[line], col)])
	m.scrollToCursor()
}

// Selection returns the selected byte range, start <= end. ok is false when
// nothing is selected.
func (m Model) Selection() (start, end int, ok bool) {
	if !m.selecting {
		return 0, 0, false
	}
	a := m.offsetAt(m.anchorLine, m.anchorCol)
	b := m.CursorOffset()
	if a == b {
		return 0, 0, false
	}
	if a > b {
		a, b = b, a
	}
	return a, b, true
}

// SetSelection selects the byte range [start, end) and places the cursor at
// end.
func (m *Model) SetSelection(start, end int) {
	if start > end {
		start, end = end, start
	}
	m.anchorLine, m.anchorCol = m.locate(start)
	m.selecting = true
	m.SetCursorOffset(end)
}

// ClearSelection drops the selection without moving the cursor.
func (m *Model) ClearSelection() {
	m.selecting = false
}

// ReplaceRange replaces the byte range [start, end) with repl and moves the
// cursor to the end of the inserted text. Offsets are clamped.
func (m *Model) ReplaceRange(start, end int, repl string) {
	text := m.Value()
	start = clamp(start, 0, len(text))
	end = clamp(end, start, len(text))

	m.pushUndo()
	next := text[:start] + repl + text[end:]
	m.lines = strings.Split(next, "\n")
	m.selecting = false
	m.SetCursorOffset(start + len(repl))
}

// InsertText inserts text at the cursor, replacing any active selection.
func (m *Model) InsertText(text string) {
	m.pushUndo()
	m.deleteSelectionLocked()
	m.insertRaw(text)
}

// Undo restores the previous snapshot. Returns false when there is nothing
// to undo.
func (m *Model) Undo() bool {
	if len(m.undoStack) == 0 {
		return false
	}
	m.redoStack = append(m.redoStack, m.capture())
	m.restore(m.undoStack[len(m.undoStack)-1])
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	return true
}

// Redo re-applies the last undone snapshot.
func (m *Model) Redo() bool {
	if len(m.redoStack) == 0 {
		return false
	}
	m.undoStack = append(m.undoStack, m.capture())
	m.restore(m.redoStack[len(m.redoStack)-1])
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	return true
}

// Update handles key input. It emits ContentChangedMsg when an edit changed
// the buffer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	if p, ok := msg.(pasteMsg); ok {
		if p == "" {
			return m, nil
		}
		m.pushUndo()
		m.deleteSelectionLocked()
		m.insertRaw(string(p))
		m.scrollToCursor()
		return m, func() tea.Msg { return ContentChangedMsg{} }
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	edited := false
	switch keyMsg.String() {
	case "left":
		m.moveHorizontal(-1, false)
	case "right":
		m.moveHorizontal(1, false)
	case "shift+left":
		m.moveHorizontal(-1, true)
	case "shift+right":
		m.moveHorizontal(1, true)
	case "up":
		m.moveVertical(-1, false)
	case "down":
		m.moveVertical(1, false)
	case "shift+up":
		m.moveVertical(-1, true)
	case "shift+down":
		m.moveVertical(1, true)
	case "home", "ctrl+a":
		m.selecting = false
		m.cursorCol = 0
		m.desiredCol = 0
	case "end":
		m.selecting = false
		m.cursorCol = graphemeCount(m.lines[m.cursorLine])
		m.desiredCol = displayWidth(m.lines[m.cursorLine])
	case "pgup":
		m.moveVertical(-(m.height - 1), false)
	case "pgdown":
		m.moveVertical(m.height-1, false)
	case "alt+left", "alt+b":
		m.moveWord(-1)
	case "alt+right", "alt+f":
		m.moveWord(1)
	case "ctrl+c":
		m.copySelection()
	case "ctrl+x":
		if m.copySelection() {
			m.pushUndo()
			m.deleteSelectionLocked()
			edited = true
		}
	case "ctrl+v":
		return m, Paste
	case "backspace":
		edited = m.backspace()
	case "delete":
		edited = m.deleteForward()
	case "enter":
		m.pushUndo()
		m.deleteSelectionLocked()
		m.insertRaw("\n")
		edited = true
	case "tab":
		m.pushUndo()
		m.deleteSelectionLocked()
		m.insertRaw(strings.Repeat(" ", tabWidth))
		edited = true
	default:
		if keyMsg.Type == tea.KeyRunes || keyMsg.Type == tea.KeySpace {
			text := string(keyMsg.Runes)
			if keyMsg.Type == tea.KeySpace {
				text = " "
			}
			if keyMsg.Alt {
				return m, nil
			}
			m.pushUndo()
			m.deleteSelectionLocked()
			m.insertRaw(text)
			edited = true
		}
	}

	m.scrollToCursor()
	if edited {
		return m, func() tea.Msg { return ContentChangedMsg{} }
	}
	return m, nil
}

// copySelection writes the selected text to the system clipboard. Returns
// false when nothing is selected. Clipboard errors are ignored so cut still
// edits the buffer on terminals without clipboard access.
func (m Model) copySelection() bool {
	start, end, ok := m.Selection()
	if !ok {
		return false
	}
	_ = clipboard.WriteAll(m.Value()[start:end])
	return true
}

func (m *Model) moveHorizontal(delta int, extend bool) {
	m.updateAnchor(extend)
	if delta < 0 {
		if m.cursorCol > 0 {
			m.cursorCol--
		} else if m.cursorLine > 0 {
			m.cursorLine--
			m.cursorCol = graphemeCount(m.lines[m.cursorLine])
		}
	} else {
		if m.cursorCol < graphemeCount(m.lines[m.cursorLine]) {
			m.cursorCol++
		} else if m.cursorLine < len(m.lines)-1 {
			m.cursorLine++
			m.cursorCol = 0
		}
	}
	m.desiredCol = m.cursorDisplayCol()
}

func (m *Model) moveVertical(delta int, extend bool) {
	m.updateAnchor(extend)
	m.cursorLine = clamp(m.cursorLine+delta, 0, len(m.lines)-1)
	m.cursorCol = graphemeAtDisplayCol(m.lines[m.cursorLine], m.desiredCol)
}

func (m *Model) moveWord(dir int) {
	m.selecting = false
	line := m.lines[m.cursorLine]
	b := byteIndexOfGrapheme(line, m.cursorCol)
	if dir < 0 {
		b = prevWordStart(line, b)
	} else {
		b = nextWordEnd(line, b)
	}
	m.cursorCol = graphemeIndexAtByte(line, b)
	m.desiredCol = m.cursorDisplayCol()
}

func (m *Model) updateAnchor(extend bool) {
	if extend {
		if !m.selecting {
			m.selecting = true
			m.anchorLine = m.cursorLine
			m.anchorCol = m.cursorCol
		}
		return
	}
	m.selecting = false
}

func (m *Model) backspace() bool {
	if _, _, ok := m.Selection(); ok {
		m.pushUndo()
		m.deleteSelectionLocked()
		return true
	}
	if m.cursorCol == 0 && m.cursorLine == 0 {
		return false
	}
	m.pushUndo()
	if m.cursorCol > 0 {
		line := m.lines[m.cursorLine]
		start := byteIndexOfGrapheme(line, m.cursorCol-1)
		end := byteIndexOfGrapheme(line, m.cursorCol)
		m.lines[m.cursorLine] = line[:start] + line[end:]
		m.cursorCol--
	} else {
		prev := m.lines[m.cursorLine-1]
		m.cursorCol = graphemeCount(prev)
		m.lines[m.cursorLine-1] = prev + m.lines[m.cursorLine]
		m.lines = append(m.lines[:m.cursorLine], m.lines[m.cursorLine+1:]...)
		m.cursorLine--
	}
	m.desiredCol = m.cursorDisplayCol()
	return true
}

func (m *Model) deleteForward() bool {
	if _, _, ok := m.Selection(); ok {
		m.pushUndo()
		m.deleteSelectionLocked()
		return true
	}
	line := m.lines[m.cursorLine]
	if m.cursorCol < graphemeCount(line) {
		m.pushUndo()
		start := byteIndexOfGrapheme(line, m.cursorCol)
		end := byteIndexOfGrapheme(line, m.cursorCol+1)
		m.lines[m.cursorLine] = line[:start] + line[end:]
		return true
	}
	if m.cursorLine < len(m.lines)-1 {
		m.pushUndo()
		m.lines[m.cursorLine] = line + m.lines[m.cursorLine+1]
		m.lines = append(m.lines[:m.cursorLine+1], m.lines[m.cursorLine+2:]...)
		return true
	}
	return false
}

// deleteSelectionLocked removes the selected range. The caller has already
// pushed an undo snapshot.
func (m *Model) deleteSelectionLocked() {
	start, end, ok := m.Selection()
	if !ok {
		m.selecting = false
		return
	}
	text := m.Value()
	m.lines = strings.Split(text[:start]+text[end:], "\n")
	m.selecting = false
	line, col := m.locate(start)
	m.cursorLine = line
	m.cursorCol = col
	m.desiredCol = m.cursorDisplayCol()
}

func (m *Model) insertRaw(text string) {
	line := m.lines[m.cursorLine]
	at := byteIndexOfGrapheme(line, m.cursorCol)
	joined := line[:at] + text + line[at:]

	parts := strings.Split(joined, "\n")
	rest := append([]string{}, m.lines[m.cursorLine+1:]...)
	m.lines = append(m.lines[:m.cursorLine], parts...)
	m.lines = append(m.lines, rest...)

	m.cursorLine += len(parts) - 1
	if len(parts) == 1 {
		m.cursorCol = graphemeIndexAtByte(parts[0], at+len(text))
	} else {
		lastSeg := text[strings.LastIndexByte(text, '\n')+1:]
		m.cursorCol = graphemeIndexAtByte(parts[len(parts)-1], len(lastSeg))
	}
	m.desiredCol = m.cursorDisplayCol()
}

func (m *Model) pushUndo() {
	m.undoStack = append(m.undoStack, m.capture())
	if len(m.undoStack) > maxUndoDepth {
		m.undoStack = m.undoStack[1:]
	}
	m.redoStack = nil
}

func (m Model) capture() snapshot {
	lines := make([]string, len(m.lines))
	copy(lines, m.lines)
	return snapshot{lines: lines, line: m.cursorLine, col: m.cursorCol}
}

func (m *Model) restore(s snapshot) {
	m.lines = make([]string, len(s.lines))
	copy(m.lines, s.lines)
	m.cursorLine = clamp(s.line, 0, len(m.lines)-1)
	m.cursorCol = clamp(s.col, 0, graphemeCount(m.lines[m.cursorLine]))
	m.selecting = false
	m.desiredCol = m.cursorDisplayCol()
	m.scrollToCursor()
}

func (m Model) cursorDisplayCol() int {
	line := m.lines[m.cursorLine]
	return displayWidth(line[:byteIndexOfGrapheme(line, m.cursorCol)])
}

func (m Model) offsetAt(line, col int) int {
	line = clamp(line, 0, len(m.lines)-1)
	off := 0
	for i := 0; i < line; i++ {
		off += len(m.lines[i]) + 1
	}
	return off + byteIndexOfGrapheme(m.lines[line], col)
}

// locate converts a byte offset into (line, grapheme col), clamping to the
// buffer.
func (m Model) locate(offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	remaining := offset
	for i, line := range m.lines {
		if remaining <= len(line) {
			return i, graphemeIndexAtByte(line, remaining)
		}
		remaining -= len(line) + 1
	}
	last := len(m.lines) - 1
	return last, graphemeCount(m.lines[last])
}

func (m *Model) scrollToCursor() {
	if m.cursorLine < m.offsetRow {
		m.offsetRow = m.cursorLine
	}
	if m.cursorLine >= m.offsetRow+m.height {
		m.offsetRow = m.cursorLine - m.height + 1
	}

	textWidth := m.textWidth()
	col := m.cursorDisplayCol()
	if col < m.offsetCol {
		m.offsetCol = col
	}
	if col >= m.offsetCol+textWidth {
		m.offsetCol = col - textWidth + 1
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- grapheme helpers ---

func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// byteIndexOfGrapheme returns the byte index where grapheme cluster g
// starts, clamped to len(s).
func byteIndexOfGrapheme(s string, g int) int {
	if g <= 0 {
		return 0
	}
	idx := 0
	state := -1
	rest := s
	for len(rest) > 0 && g > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		idx += len(cluster)
		g--
	}
	return idx
}

// graphemeIndexAtByte returns the index of the grapheme cluster containing
// byte offset b.
func graphemeIndexAtByte(s string, b int) int {
	if b <= 0 {
		return 0
	}
	idx, count := 0, 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if idx+len(cluster) > b {
			return count
		}
		idx += len(cluster)
		count++
	}
	return count
}

// graphemeAtDisplayCol returns the grapheme index whose cell column is
// closest to col without exceeding it.
func graphemeAtDisplayCol(s string, col int) int {
	count, width := 0, 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w = clusterWidth(cluster, w)
		if width+w > col {
			return count
		}
		width += w
		count++
	}
	return count
}

func displayWidth(s string) int {
	width := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		width += clusterWidth(cluster, w)
	}
	return width
}

// clusterWidth maps tab to a fixed cell width.
func clusterWidth(cluster string, w int) int {
	if cluster == "\t" {
		return tabWidth
	}
	return w
}

func nextWordEnd(s string, pos int) int {
	n := len(s)
	for pos < n && !isWordChar(s[pos]) {
		pos++
	}
	for pos < n && isWordChar(s[pos]) {
		pos++
	}
	return pos
}

func prevWordStart(s string, pos int) int {
	for pos > 0 && !isWordChar(s[pos-1]) {
		pos--
	}
	for pos > 0 && isWordChar(s[pos-1]) {
		pos--
	}
	return pos
}

func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}
