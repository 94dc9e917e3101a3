// Package overlay composites a dialog on top of a background view without
// clearing the screen underneath.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center draws fg centered over bg for a viewport of the given size. The
// splice is ANSI-aware so styling on both layers survives.
func Center(width, height int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	fgWidth := lipgloss.Width(fg)
	startX := (width - fgWidth) / 2
	startY := (height - len(fgLines)) / 2
	if startX < 0 {
		startX = 0
	}
	if startY < 0 {
		startY = 0
	}

	for i, fgLine := range fgLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		bgLine := bgLines[y]

		left := ansi.Truncate(bgLine, startX, "")
		if pad := startX - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}

		endX := startX + ansi.StringWidth(fgLine)
		var right string
		if endX < ansi.StringWidth(bgLine) {
			right = ansi.TruncateLeft(bgLine, endX, "")
		}

		bgLines[y] = left + fgLine + right
	}

	return strings.Join(bgLines, "\n")
}
