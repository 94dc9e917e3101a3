// Package textpos converts between absolute byte offsets and line/column
// positions in a document. Positions are always derived from the current
// text; nothing is cached across edits.
package textpos

import "strings"

// Position is a location in a document. Line is 1-based, Col is a 0-based
// byte offset within the line (excluding the terminating newline).
type Position struct {
	Line int
	Col  int
}

// OffsetToPosition maps an absolute byte offset to a Position. The offset is
// clamped to [0, len(text)]. An offset of len(text) yields the position just
// past the last character: line = total line count, col = length of the
// final line fragment.
func OffsetToPosition(text string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	line := 1
	col := 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return Position{Line: line, Col: col}
}

// PositionToOffset maps a Position back to an absolute byte offset. Lines
// before the target contribute their full length including the terminating
// newline. Out-of-range positions clamp to the nearest valid offset, so
// PositionToOffset(text, OffsetToPosition(text, o)) == o for every valid o.
func PositionToOffset(text string, pos Position) int {
	if pos.Line < 1 {
		return 0
	}

	offset := 0
	line := 1
	for line < pos.Line {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			// Position names a line past the end; clamp to end of text.
			return len(text)
		}
		offset += nl + 1
		line++
	}

	col := pos.Col
	if col < 0 {
		col = 0
	}
	lineLen := len(text) - offset
	if nl := strings.IndexByte(text[offset:], '\n'); nl >= 0 {
		lineLen = nl
	}
	if col > lineLen {
		col = lineLen
	}
	return offset + col
}

// LineStarts returns the byte offset of the start of every line in text.
// The result always has at least one entry (offset 0). Used by the render
// layer to project absolute spans onto individual lines.
func LineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
