package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"planner-cli/internal/editor"
	"planner-cli/internal/model"
	"planner-cli/internal/render"
	"planner-cli/internal/session"
	"planner-cli/internal/store"
)

type mode int

const (
	modeTable mode = iota
	modePrompt
	modeComments
)

const (
	wheelRows    = 3
	scrollCols   = 8
	zoomFactor   = 1.25
	dayCheckTick = time.Minute
)

// editTarget is what the open prompt writes to: an info field, or the column
// chooser when column is set.
type editTarget struct {
	ref    model.EntityRef
	key    model.InfoKey
	column bool
}

// editKeys maps the editable table columns to the field an edit action changes.
var editKeys = map[editor.Attribute]model.InfoKey{
	editor.AttrTitle:    model.InfoTitle,
	editor.AttrDuration: model.InfoDurationValue,
}

var statusCycle = []string{model.StatusNotStarted, model.StatusStarted, model.StatusCompleted}

type dayTickMsg time.Time

// appModel owns the session for the lifetime of the program. The editor's
// signals write into it, so it is always used through a pointer.
type appModel struct {
	s     *session.Session
	st    store.Store
	keys  keyMap
	help  help.Model
	theme theme

	width  int
	height int
	frame  *render.Frame
	mouse  editor.InteractionState

	mode          mode
	prompt        textinput.Model
	edit          editTarget
	comments      viewport.Model
	commentsTitle string

	message     string
	failed      bool
	dirty       bool
	confirmQuit bool
	pending     tea.Cmd
}

func newAppModel(s *session.Session, st store.Store) *appModel {
	m := &appModel{
		s:     s,
		st:    st,
		keys:  defaultKeyMap(),
		help:  help.New(),
		theme: newTheme(s.Painter.Renderer()),
	}
	m.prompt = textinput.New()
	m.prompt.CharLimit = 256
	m.comments = viewport.New(0, 0)

	s.Editor.SetSignals(editor.Signals{
		ShowMessage:           m.setMessage,
		ActionRequested:       m.onAction,
		GanttStartDateChanged: m.ganttMoved,
	})
	return m
}

func (m *appModel) ganttMoved(d time.Time) {
	m.s.Logger.Debug("gantt start moved", "date", d.Format(time.DateOnly))
}

func tickDay() tea.Cmd {
	return tea.Tick(dayCheckTick, func(t time.Time) tea.Msg { return dayTickMsg(t) })
}

func (m *appModel) Init() tea.Cmd {
	return tickDay()
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resizeComments()

	case dayTickMsg:
		if m.s.Editor.CheckIfCurrentDateChanged() {
			m.s.Logger.Info("current date changed", "at", time.Time(msg).Format(time.DateOnly))
		}
		cmd = tickDay()

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modePrompt:
			cmd = m.updatePrompt(msg)
		case modeComments:
			cmd = m.updateComments(msg)
		default:
			cmd = m.updateTable(msg)
		}
	}

	m.repaint()
	if m.pending != nil {
		cmd = tea.Batch(cmd, m.pending)
		m.pending = nil
	}
	return m, cmd
}

// tableLines is the number of terminal lines left for the table.
func (m *appModel) tableLines() int {
	return max(m.height-1-lipgloss.Height(m.help.View(m.keys)), 1)
}

func (m *appModel) repaint() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	f, err := m.s.Frame(m.width, m.tableLines())
	if err != nil {
		m.fail(err)
		return
	}
	m.frame = f
}

func (m *appModel) setMessage(msg string) {
	m.message, m.failed = msg, false
}

func (m *appModel) fail(err error) {
	m.s.Logger.Warn("action failed", "err", err)
	m.message, m.failed = err.Error(), true
}

func (m *appModel) updateTable(msg tea.KeyMsg) tea.Cmd {
	e := m.s.Editor
	if !key.Matches(msg, m.keys.Quit) {
		m.confirmQuit = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty && !m.confirmQuit {
			m.confirmQuit = true
			m.setMessage("unsaved changes: ctrl+s saves, q again quits without saving")
			return nil
		}
		if err := m.s.SaveState(m.st); err != nil {
			m.s.Logger.Warn("editor state not saved", "err", err)
		}
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		e.ScrollBy(-m.pageHeight())
	case key.Matches(msg, m.keys.PageDown):
		e.ScrollBy(m.pageHeight())
	case key.Matches(msg, m.keys.First):
		m.selectRow(0)
	case key.Matches(msg, m.keys.Last):
		m.selectRow(e.Projection().Len() - 1)
	case key.Matches(msg, m.keys.Left):
		e.ScrollLeftBy(-scrollCols * m.s.Painter.CellWidth())
	case key.Matches(msg, m.keys.Right):
		e.ScrollLeftBy(scrollCols * m.s.Painter.CellWidth())

	case key.Matches(msg, m.keys.Toggle):
		if ref, ok := m.selected(); ok && ref.Kind == model.KindGroup {
			if err := e.ToggleExpanded(ref.ID); err != nil {
				m.fail(err)
			}
		}
	case key.Matches(msg, m.keys.ExpandAll):
		for _, id := range m.s.Project.GroupIDs() {
			if !e.Projection().IsExpanded(id) {
				_ = e.Expand(id)
			}
		}

	case key.Matches(msg, m.keys.EditTitle):
		if ref, ok := m.selected(); ok {
			m.openEdit(ref, model.InfoTitle)
		}
	case key.Matches(msg, m.keys.Duration):
		if ref, ok := m.selected(); ok && ref.Kind == model.KindTask {
			m.openEdit(ref, model.InfoDurationValue)
		}
	case key.Matches(msg, m.keys.Status):
		if ref, ok := m.selected(); ok && ref.Kind == model.KindTask {
			m.cycleStatus(ref.ID)
		}
	case key.Matches(msg, m.keys.Comments):
		ref, ok := m.selected()
		if !ok || ref.Kind != model.KindTask {
			m.setMessage("select a task to read its comments")
			return nil
		}
		m.openComments(ref.ID)
	case key.Matches(msg, m.keys.Column):
		m.openColumnChooser()

	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(zoomFactor)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(1 / zoomFactor)

	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *appModel) pageHeight() int {
	_, h := m.s.Editor.ViewportSize()
	return max(h-m.s.Editor.HeaderHeight(), m.s.Painter.RowHeight())
}

func (m *appModel) zoom(f float64) {
	scale := m.s.Editor.GanttScale() * f
	scale = min(max(scale, editor.MinGanttScale), editor.MaxGanttScale)
	if err := m.s.Editor.SetGanttScale(scale); err != nil {
		m.fail(err)
		return
	}
	m.setMessage(fmt.Sprintf("gantt scale %.1f", scale))
}

func (m *appModel) save() {
	if err := m.s.Save(context.Background()); err != nil {
		m.fail(err)
		return
	}
	m.dirty = false
	m.setMessage("saved " + m.s.Path)
	m.s.Logger.Info("saved project", "path", m.s.Path)
}

func (m *appModel) cycleStatus(taskID int) {
	cur := m.s.Project.TaskInfo(taskID).Get(model.InfoCompletionStatus)
	next := statusCycle[0]
	for i, st := range statusCycle {
		if st == cur {
			next = statusCycle[(i+1)%len(statusCycle)]
		}
	}
	if err := m.s.Project.SetTaskInfo(taskID, model.InfoCompletionStatus, next); err != nil {
		m.fail(err)
		return
	}
	m.dirty = true
}

// onAction handles the cell actions the editor does not complete itself.
func (m *appModel) onAction(a editor.CellAction) {
	m.s.Logger.Debug("cell action", "kind", a.Kind.String(), "column", a.Attribute.Key(), "id", a.Ref.ID)
	switch a.Kind {
	case editor.ActionNotStarted, editor.ActionStarted, editor.ActionCompleted:
		m.dirty = true
		return
	case editor.ActionEdit:
		if a.Attribute == editor.AttrComments && a.Ref.Kind == model.KindTask {
			m.openComments(a.Ref.ID)
			return
		}
		if k, ok := editKeys[a.Attribute]; ok {
			m.openEdit(a.Ref, k)
			return
		}
	}
	m.setMessage(fmt.Sprintf("%s: %s is not available in the viewer", a.Attribute.Label(), a.Kind))
}

func (m *appModel) handleMouse(msg tea.MouseMsg) {
	if m.mode != modeTable || m.frame == nil {
		return
	}
	e := m.s.Editor
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		dir := 1
		if msg.Button == tea.MouseButtonWheelUp {
			dir = -1
		}
		if msg.Shift {
			e.ScrollLeftBy(dir * scrollCols * m.s.Painter.CellWidth())
		} else {
			e.ScrollBy(dir * wheelRows * m.s.Painter.RowHeight())
		}
		return
	case tea.MouseButtonWheelLeft:
		e.ScrollLeftBy(-scrollCols * m.s.Painter.CellWidth())
		return
	case tea.MouseButtonWheelRight:
		e.ScrollLeftBy(scrollCols * m.s.Painter.CellWidth())
		return
	}

	x, y, ok := m.frame.PixelAt(msg.X, msg.Y)
	if !ok {
		m.mouse = e.MouseLeave(m.mouse)
		return
	}
	switch msg.Action {
	case tea.MouseActionMotion:
		m.mouse = e.MouseMove(m.mouse, x, y)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.mouse, _, _ = e.MousePress(m.mouse, x, y, msg.Ctrl || msg.Shift)
		}
	case tea.MouseActionRelease:
		m.mouse = e.MouseRelease(m.mouse, x, y)
	}
}

func (m *appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	var body string
	switch {
	case m.mode == modeComments:
		body = m.commentsView()
	case m.frame != nil:
		body = m.frame.String()
	}
	return strings.Join([]string{
		fitPane(body, m.width, m.tableLines()),
		m.statusView(),
		m.help.View(m.keys),
	}, "\n")
}

func (m *appModel) statusView() string {
	if m.mode == modePrompt {
		return inputLine(m.width, m.prompt.View())
	}

	name := m.s.Project.Name()
	if m.dirty {
		name += " *"
	}
	left := m.theme.badge.Render(name)

	e := m.s.Editor
	pos := fmt.Sprintf(" %d/%d  scale %.1f ", m.cursor()+1, e.Projection().Len(), e.GanttScale())
	right := m.theme.status.Render(pos)

	msgW := max(m.width-xansi.StringWidth(left)-xansi.StringWidth(right), 0)
	style := m.theme.message
	if m.failed {
		style = m.theme.err
	}
	msg := style.Render(fitLine(" "+m.message, msgW))
	return fitLine(left+msg+right, m.width)
}
