package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"planner-cli/internal/editor"
	"planner-cli/internal/model"
)

func (m *appModel) openPrompt(t editTarget, label, value string) {
	m.edit = t
	m.prompt.Prompt = label + ": "
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	m.mode = modePrompt
	m.pending = m.prompt.Focus()
}

func (m *appModel) openEdit(ref model.EntityRef, k model.InfoKey) {
	info := m.s.Project.TaskInfo(ref.ID)
	if ref.Kind == model.KindGroup {
		info = m.s.Project.GroupInfo(ref.ID)
	}
	m.prompt.ShowSuggestions = false
	m.prompt.SetSuggestions(nil)
	m.openPrompt(editTarget{ref: ref, key: k}, string(k), info.Get(k))
}

// openColumnChooser asks for a column key to show or hide.
func (m *appModel) openColumnChooser() {
	keys := make([]string, 0, len(editor.Attributes()))
	for _, a := range editor.Attributes() {
		keys = append(keys, a.Key())
	}
	m.prompt.ShowSuggestions = true
	m.prompt.SetSuggestions(keys)
	m.openPrompt(editTarget{column: true}, "toggle column", "")
}

func (m *appModel) closePrompt() {
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.mode = modeTable
}

func (m *appModel) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closePrompt()
		return nil
	case key.Matches(msg, m.keys.Confirm):
		m.commitPrompt()
		return nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *appModel) commitPrompt() {
	t := m.edit
	value := strings.TrimSpace(m.prompt.Value())
	m.closePrompt()

	if t.column {
		a, ok := editor.ParseAttribute(value)
		if !ok {
			m.fail(fmt.Errorf("unknown column %q", value))
			return
		}
		if err := m.s.Editor.ToggleColumn(a, editor.NoAnchor); err != nil {
			m.fail(err)
		}
		return
	}

	var err error
	if t.ref.Kind == model.KindGroup {
		err = m.s.Project.SetGroupInfo(t.ref.ID, t.key, value)
	} else {
		err = m.s.Project.SetTaskInfo(t.ref.ID, t.key, value)
	}
	if err != nil {
		m.fail(err)
		return
	}
	m.dirty = true
	if ids := m.s.Tracker.AffectedTaskIDs(); t.key == model.InfoDurationValue && len(ids) > 0 {
		m.setMessage(fmt.Sprintf("%s updated, %d task(s) rescheduled", t.key, len(ids)))
	} else {
		m.setMessage(string(t.key) + " updated")
	}
}
