package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style and wrap width. WithAutoStyle queries the
	// terminal and can block, so the style is always chosen up front.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// MarkdownStyle picks a glamour standard style for output going through r.
// PLANNER_MD_STYLE (dark|light|notty) overrides the detection.
func MarkdownStyle(r *lipgloss.Renderer) string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PLANNER_MD_STYLE"))) {
	case "dark":
		return styles.DarkStyle
	case "light":
		return styles.LightStyle
	case "notty":
		return styles.NoTTYStyle
	}
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if r.ColorProfile() == termenv.Ascii {
		return styles.NoTTYStyle
	}
	if r.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}

// RenderMarkdown renders md wrapped to width. On renderer errors the source is
// returned as is.
func RenderMarkdown(md string, width int, style string) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	key := style + ":" + strconv.Itoa(width)
	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
