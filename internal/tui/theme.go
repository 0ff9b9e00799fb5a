package tui

import "github.com/charmbracelet/lipgloss"

// The chrome around the table must stay readable on light and dark terminals,
// so every color is adaptive.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    = ac("240", "243")
	colorAccent   = ac("27", "62")
	colorAccentFg = ac("255", "235")
	colorError    = ac("160", "203")
	colorStatusBg = ac("252", "236")
	colorStatusFg = ac("235", "252")
	colorInputBg  = ac("254", "234")
	colorBorder   = ac("250", "243")
)

type theme struct {
	status  lipgloss.Style
	badge   lipgloss.Style
	message lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	panel   lipgloss.Style
	title   lipgloss.Style
}

// newTheme binds the styles to the renderer the table is painted with.
func newTheme(r *lipgloss.Renderer) theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return theme{
		status:  r.NewStyle().Background(colorStatusBg).Foreground(colorStatusFg),
		badge:   r.NewStyle().Background(colorAccent).Foreground(colorAccentFg).Bold(true).Padding(0, 1),
		message: r.NewStyle().Background(colorStatusBg).Foreground(colorStatusFg).Italic(true),
		err:     r.NewStyle().Background(colorStatusBg).Foreground(colorError).Bold(true),
		muted:   r.NewStyle().Foreground(colorMuted),
		panel:   r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		title:   r.NewStyle().Bold(true).Foreground(colorAccent),
	}
}
