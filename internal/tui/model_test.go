package tui

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"planner-cli/internal/editor"
	"planner-cli/internal/model"
	"planner-cli/internal/session"
	"planner-cli/internal/store"
)

func chain() model.Project {
	return model.Project{
		Name:    "Chain",
		Members: []model.Member{{Group: 10}},
		Groups:  []model.Group{{ID: 10, Title: "Build", Members: []model.Member{{Task: 1}, {Task: 2}}}},
		Tasks: []model.Task{
			{ID: 1, Reference: "A", Title: "Spec", DurationValue: "2", DurationUnits: "wd", EarlyStart: "2024-03-04", EarlyFinish: "2024-03-05"},
			{ID: 2, Reference: "B", Title: "Code", DurationValue: "1", DurationUnits: "wd", EarlyStart: "2024-03-06", EarlyFinish: "2024-03-06"},
		},
		Links:     []model.Link{{Predecessor: 1, Successor: 2, Type: model.LinkFinishToStart}},
		Resources: []model.Resource{{ID: 7, Name: "Ada"}},
		Comments:  []model.Comment{{ID: 1, Task: 2, Title: "Check dates", Body: "Needs review.", Mentions: []int{7}}},
	}
}

func newTestModel(t *testing.T, doc model.Project) (*appModel, store.Store) {
	t.Helper()
	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))
	r.SetColorProfile(termenv.Ascii)
	s, err := session.New(doc, session.Options{
		Config:   store.DefaultConfig(),
		Renderer: r,
		Now:      func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	s.Path = filepath.Join(t.TempDir(), "chain.yaml")
	st := store.Store{Dir: t.TempDir()}
	m := newAppModel(s, st)
	send(m, tea.WindowSizeMsg{Width: 160, Height: 20})
	return m, st
}

func send(m *appModel, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func keys(m *appModel, ks ...string) {
	for _, k := range ks {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		send(m, msg)
	}
}

// rowLineOf finds the frame line of the row whose first cell holds reference.
func rowLineOf(t *testing.T, m *appModel, reference string) int {
	t.Helper()
	isSep := func(r rune) bool { return r == '│' || r == '|' }
	for i, ln := range m.frame.PlainLines() {
		cells := strings.FieldsFunc(ln, isSep)
		if len(cells) > 0 && strings.TrimSpace(cells[0]) == reference {
			return i
		}
	}
	t.Fatalf("no row with reference %q:\n%s", reference, strings.Join(m.frame.PlainLines(), "\n"))
	return -1
}

func TestModel_ViewFitsTheWindow(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, chain())
	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 20 {
		t.Fatalf("view has %d lines; want 20", len(lines))
	}
	if !strings.Contains(view, "Build") || !strings.Contains(view, "Chain") {
		t.Fatalf("view lacks the group or the project name:\n%s", view)
	}
	if strings.Contains(view, "Spec") {
		t.Fatalf("collapsed group shows its tasks:\n%s", view)
	}
}

func TestModel_KeyboardSelectionAndExpansion(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, chain())
	if m.cursor() != -1 {
		t.Fatalf("cursor = %d; want no selection", m.cursor())
	}

	keys(m, "down", "enter")
	if ref, ok := m.selected(); !ok || ref != model.GroupRef(10) {
		t.Fatalf("selected = %v, %v", ref, ok)
	}
	if got := m.s.Editor.Projection().Len(); got != 3 {
		t.Fatalf("rows after expand = %d; want 3", got)
	}

	keys(m, "down", "down", "down")
	if ref, _ := m.selected(); ref != model.TaskRef(2) {
		t.Fatalf("selected = %v; want the last task", ref)
	}
	keys(m, "g")
	if m.cursor() != 0 {
		t.Fatalf("cursor after g = %d", m.cursor())
	}
	keys(m, "enter")
	if got := m.s.Editor.Projection().Len(); got != 1 {
		t.Fatalf("rows after collapse = %d; want 1", got)
	}
}

func TestModel_EditDurationReschedules(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, chain())
	keys(m, "E", "down", "down", "d")
	if m.mode != modePrompt || m.edit.key != model.InfoDurationValue {
		t.Fatalf("mode = %v, edit = %+v", m.mode, m.edit)
	}
	if got := m.prompt.Value(); got != "2" {
		t.Fatalf("prompt value = %q; want the current duration", got)
	}
	m.prompt.SetValue("3")
	keys(m, "enter")

	if m.mode != modeTable || m.failed {
		t.Fatalf("mode = %v, message = %q", m.mode, m.message)
	}
	if got := m.s.Project.TaskInfo(2).Get(model.InfoEarlyStart); got != "2024-03-07" {
		t.Fatalf("successor start = %q", got)
	}
	if !m.dirty || !strings.Contains(m.message, "rescheduled") {
		t.Fatalf("dirty = %v, message = %q", m.dirty, m.message)
	}
}

func TestModel_EditGroupTitleAndCancel(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, chain())
	keys(m, "down", "e")
	m.prompt.SetValue("Phase one")
	keys(m, "esc")
	if got := m.s.Project.GroupInfo(10).Get(model.InfoTitle); got != "Build" || m.dirty {
		t.Fatalf("cancelled edit applied: %q", got)
	}

	keys(m, "e")
	m.prompt.SetValue("Phase one")
	keys(m, "enter")
	if got := m.s.Project.GroupInfo(10).Get(model.InfoTitle); got != "Phase one" {
		t.Fatalf("group title = %q", got)
	}
	if !strings.Contains(strings.Join(m.frame.PlainLines(), "\n"), "Phase one") {
		t.Fatalf("frame not repainted after edit")
	}
}

func TestModel_InvalidEditShowsError(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, chain())
	keys(m, "E", "down", "down", "d")
	m.prompt.SetValue("soon")
	keys(m, "enter")
	if !m.failed || m.dirty {
		t.Fatalf("failed = %v, dirty = %v, message = %q", m.failed, m.dirty, m.message)
	}
}

func TestModel_CycleStatus(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, chain())
	keys(m, "E", "down", "down")

	var got []string
	for range statusCycle {
		keys(m, "s")
		got = append(got, m.s.Project.TaskInfo(1).Get(model.InfoCompletionStatus))
	}
	want := []string{model.StatusStarted, model.StatusCompleted, model.StatusNotStarted}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("statuses = %v; want %v", got, want)
	}
}

func TestModel_ToggleColumnAndZoom(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, chain())
	keys(m, "t")
	m.prompt.SetValue("slack (wd)")
	keys(m, "enter")
	visible := false
	for _, a := range m.s.Editor.Columns().Visible() {
		if a == editor.AttrSlackWorkdays {
			visible = true
		}
	}
	if !visible {
		t.Fatalf("slack column not shown: %v", m.s.Editor.Columns().Visible())
	}

	keys(m, "t")
	m.prompt.SetValue("budget")
	keys(m, "enter")
	if !m.failed {
		t.Fatalf("unknown column accepted")
	}

	keys(m, "+")
	if got := m.s.Editor.GanttScale(); got != 25 {
		t.Fatalf("scale = %v; want 25", got)
	}
}

func TestModel_CommentsPanel(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, chain())
	keys(m, "c")
	if m.mode != modeTable || !strings.Contains(m.message, "select a task") {
		t.Fatalf("comments opened without a task: mode %v", m.mode)
	}

	keys(m, "E", "G", "c")
	if m.mode != modeComments {
		t.Fatalf("mode = %v, message = %q", m.mode, m.message)
	}
	view := m.View()
	for _, s := range []string{"Code (1)", "Check dates", "Ada"} {
		if !strings.Contains(view, s) {
			t.Fatalf("panel lacks %q:\n%s", s, view)
		}
	}
	keys(m, "esc")
	if m.mode != modeTable {
		t.Fatalf("esc did not close the panel")
	}
}

func TestModel_MouseSelectsRow(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, chain())
	keys(m, "E")
	// Task A's successors cell also shows "B (Code)", so match on the reference cell.
	y := rowLineOf(t, m, "B")
	send(m, tea.MouseMsg{X: 1, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	send(m, tea.MouseMsg{X: 1, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if ref, ok := m.selected(); !ok || ref != model.TaskRef(2) {
		t.Fatalf("selected = %v, %v", ref, ok)
	}

	// Below the painted rows the pointer leaves the table.
	send(m, tea.MouseMsg{X: 1, Y: 17, Action: tea.MouseActionMotion})
	if m.s.Editor.Interaction().Hover.Active {
		t.Fatalf("hover still active below the rows")
	}
}

func TestModel_WheelScrolls(t *testing.T) {
	t.Parallel()

	doc := model.Project{Name: "Long"}
	for i := 1; i <= 40; i++ {
		doc.Members = append(doc.Members, model.Member{Task: i})
		doc.Tasks = append(doc.Tasks, model.Task{ID: i, Title: fmt.Sprintf("Task %d", i), DurationValue: "1", DurationUnits: "wd"})
	}
	m, _ := newTestModel(t, doc)

	send(m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if got := m.s.Editor.TopOffset(); got != wheelRows*m.s.Painter.RowHeight() {
		t.Fatalf("top offset = %d", got)
	}
	send(m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if got := m.s.Editor.TopOffset(); got != 0 {
		t.Fatalf("top offset after wheel up = %d", got)
	}

	// Moving the selection past the bottom scrolls it into view.
	keys(m, "G")
	if m.s.Editor.TopOffset() != m.s.Editor.MaximumTopOffset() {
		t.Fatalf("last row not revealed: offset %d of %d", m.s.Editor.TopOffset(), m.s.Editor.MaximumTopOffset())
	}
	keys(m, "g")
	if m.s.Editor.TopOffset() != 0 {
		t.Fatalf("first row not revealed")
	}
}

func TestModel_QuitConfirmsUnsavedChangesAndSavesState(t *testing.T) {
	t.Parallel()

	m, st := newTestModel(t, chain())
	keys(m, "down", "enter", "down", "s")
	if !m.dirty {
		t.Fatalf("status change did not mark the project dirty")
	}

	if cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatalf("quit without confirmation")
		}
	}
	cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("second q returned no command")
	}
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Fatalf("second q did not quit")
	}

	saved, err := st.LoadEditorState(m.s.Path)
	if err != nil || saved == nil {
		t.Fatalf("editor state not saved: %v, %v", saved, err)
	}
	if !slices.Contains(saved.Expanded, 10) {
		t.Fatalf("saved state lost the expanded group: %+v", saved.Expanded)
	}
}

func TestModel_Save(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, chain())
	keys(m, "down", "enter", "down", "s")
	send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.dirty || m.failed {
		t.Fatalf("dirty = %v, message = %q", m.dirty, m.message)
	}
	doc, err := store.LoadProject(t.Context(), m.s.Path)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if doc.Tasks[0].Status != model.StatusStarted {
		t.Fatalf("saved status = %q", doc.Tasks[0].Status)
	}
}
