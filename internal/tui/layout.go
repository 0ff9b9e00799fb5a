package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// fitPane forces s to exactly width columns (ANSI-aware) and height lines.
// Overlong lines end in an ellipsis.
func fitPane(s string, width, height int) string {
	width, height = max(width, 0), max(height, 0)

	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, ln := range lines {
		lines[i] = fitLine(ln, width)
	}
	return strings.Join(lines, "\n")
}

func fitLine(ln string, width int) string {
	w := xansi.StringWidth(ln)
	if w > width {
		switch {
		case width <= 0:
			ln = ""
		case width == 1:
			ln = xansi.Cut(ln, 0, 1)
		default:
			// Terminate styling so it does not bleed into the padding.
			ln = xansi.Cut(ln, 0, width-1) + "\x1b[0m…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// inputLine renders a text input view as one line of the given width.
func inputLine(width int, view string) string {
	view = strings.ReplaceAll(view, "\n", " ")
	view = strings.ReplaceAll(view, "\r", " ")
	line := lipgloss.PlaceHorizontal(
		max(width, 1),
		lipgloss.Left,
		" "+view,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	return fitLine(line, width)
}
