// Package tui is the interactive project viewer: the editor's table and Gantt
// chart painted into the terminal, driven by keys and the mouse.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"planner-cli/internal/session"
	"planner-cli/internal/store"
)

// Run blocks until the user quits. The editor state is saved to st on quit.
func Run(s *session.Session, st store.Store) error {
	m := newAppModel(s, st)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
