package editor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/texit/internal/highlight"
)

// gutterWidth returns the total cell width of the line number gutter,
// including the trailing space, or 0 when the gutter is hidden.
func (m Model) gutterWidth() int {
	if !m.showLineNumbers {
		return 0
	}
	digits := len(fmt.Sprintf("%d", len(m.lines)))
	if digits < 2 {
		digits = 2
	}
	return digits + 1
}

// textWidth returns the cell width available to buffer text.
func (m Model) textWidth() int {
	w := m.width - m.gutterWidth()
	if w < 1 {
		w = 1
	}
	return w
}

// View renders the visible window of the buffer.
func (m Model) View() string {
	gutterW := m.gutterWidth()
	textW := m.textWidth()

	var b strings.Builder
	for row := 0; row < m.height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		idx := m.offsetRow + row
		if idx >= len(m.lines) {
			if gutterW > 0 {
				b.WriteString(m.theme.Gutter.Render(strings.Repeat(" ", gutterW)))
			}
			continue
		}
		b.WriteString(m.renderRow(idx, gutterW, textW))
	}
	return b.String()
}

func (m Model) renderRow(idx, gutterW, textW int) string {
	var b strings.Builder
	if gutterW > 0 {
		b.WriteString(m.theme.Gutter.Render(fmt.Sprintf("%*d ", gutterW-1, idx+1)))
	}

	styled := m.styleLine(idx)
	b.WriteString(ansi.Cut(styled, m.offsetCol, m.offsetCol+textW))
	return b.String()
}

// styleLine renders one full line with syntax, selection, and cursor
// styling applied, before horizontal clipping.
func (m Model) styleLine(idx int) string {
	line := m.lines[idx]
	lineStart := m.lineStartOffset(idx)
	selStart, selEnd, hasSel := m.Selection()
	cursorHere := m.focused && idx == m.cursorLine

	type run struct {
		class    highlight.Class
		selected bool
	}

	var b strings.Builder
	var cur run
	var buf strings.Builder

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		style := m.theme.ClassStyle(cur.class)
		if cur.selected {
			style = m.theme.Selection
		}
		b.WriteString(style.Render(buf.String()))
		buf.Reset()
	}

	byteOff := 0
	gIdx := 0
	state := -1
	rest := line
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		abs := lineStart + byteOff

		display := cluster
		if cluster == "\t" {
			display = strings.Repeat(" ", tabWidth)
		}

		if cursorHere && gIdx == m.cursorCol {
			flush()
			b.WriteString(m.cursorStyle().Render(display))
		} else {
			next := run{
				class:    spanClassAt(m.spans, abs),
				selected: hasSel && abs >= selStart && abs < selEnd,
			}
			if next != cur {
				flush()
				cur = next
			}
			buf.WriteString(display)
		}

		byteOff += len(cluster)
		gIdx++
	}
	flush()

	// Cursor sits past the last cluster on this line.
	if cursorHere && m.cursorCol >= gIdx {
		b.WriteString(m.cursorStyle().Render(" "))
	}
	return b.String()
}

func (m Model) cursorStyle() lipgloss.Style {
	return m.theme.Text.Reverse(true)
}

func (m Model) lineStartOffset(idx int) int {
	off := 0
	for i := 0; i < idx; i++ {
		off += len(m.lines[i]) + 1
	}
	return off
}

// spanClassAt returns the syntax class covering byte offset off, or
// ClassPlain when no span covers it. Spans are ordered and disjoint.
func spanClassAt(spans []highlight.Span, off int) highlight.Class {
	i := sort.Search(len(spans), func(i int) bool {
		return spans[i].End > off
	})
	if i < len(spans) && spans[i].Start <= off {
		return spans[i].Class
	}
	return highlight.ClassPlain
}
