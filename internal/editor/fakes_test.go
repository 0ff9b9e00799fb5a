package editor

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"planner-cli/internal/model"
)

// world is an in-memory implementation of every store the editor reads from.
type world struct {
	tasks     map[int]model.Info
	taskGroup map[int]int

	groups   map[int]model.Info
	parent   map[int]int
	children map[int][]model.EntityRef

	links map[[2]int]model.Link

	taskResources map[int][]int
	resourceNames map[int]string

	comments    map[int]model.Comment
	attachments map[int]model.Attachment

	holidays map[string]string

	affected []int
	updates  int
	lookups  int
}

func newWorld() *world {
	return &world{
		tasks:         map[int]model.Info{},
		taskGroup:     map[int]int{},
		groups:        map[int]model.Info{},
		parent:        map[int]int{},
		children:      map[int][]model.EntityRef{},
		links:         map[[2]int]model.Link{},
		taskResources: map[int][]int{},
		resourceNames: map[int]string{},
		comments:      map[int]model.Comment{},
		attachments:   map[int]model.Attachment{},
		holidays:      map[string]string{},
	}
}

func (w *world) addTask(id, group int, ref, title string) {
	w.tasks[id] = model.Info{
		model.InfoReference:        ref,
		model.InfoTitle:            title,
		model.InfoDurationValue:    "1",
		model.InfoDurationUnits:    "wd",
		model.InfoCompletionStatus: model.StatusNotStarted,
	}
	w.taskGroup[id] = group
	w.children[group] = append(w.children[group], model.TaskRef(id))
}

func (w *world) addGroup(id, parent int, title string) {
	w.groups[id] = model.Info{model.InfoTitle: title, model.InfoCompletionValue: "0"}
	w.parent[id] = parent
	w.children[parent] = append(w.children[parent], model.GroupRef(id))
}

func (w *world) link(pred, succ int) {
	w.links[[2]int{pred, succ}] = model.Link{Predecessor: pred, Successor: succ, Type: model.LinkFinishToStart}
}

func (w *world) TaskExists(id int) bool {
	_, ok := w.tasks[id]
	return ok
}

func (w *world) TaskInfo(id int) model.Info {
	w.lookups++
	return w.tasks[id]
}
func (w *world) TaskGroup(id int) int { return w.taskGroup[id] }

func (w *world) GroupExists(id int) bool {
	_, ok := w.groups[id]
	return ok
}

func (w *world) GroupInfo(id int) model.Info {
	w.lookups++
	return w.groups[id]
}
func (w *world) GroupParent(id int) int { return w.parent[id] }
func (w *world) Children(id int) []model.EntityRef {
	return append([]model.EntityRef(nil), w.children[id]...)
}

func (w *world) Predecessors(taskID int) []int {
	var out []int
	for k := range w.links {
		if k[1] == taskID {
			out = append(out, k[0])
		}
	}
	return out
}

func (w *world) Successors(taskID int) []int {
	var out []int
	for k := range w.links {
		if k[0] == taskID {
			out = append(out, k[1])
		}
	}
	return out
}

func (w *world) Link(pred, succ int) (model.Link, bool) {
	l, ok := w.links[[2]int{pred, succ}]
	return l, ok
}

func (w *world) TaskResourceIDs(taskID int) []int { return w.taskResources[taskID] }
func (w *world) ResourceName(id int) string       { return w.resourceNames[id] }
func (w *world) ResourceTaskIDs(resourceID int) []int {
	var out []int
	for task, ids := range w.taskResources {
		for _, id := range ids {
			if id == resourceID {
				out = append(out, task)
			}
		}
	}
	return out
}

func (w *world) TaskCommentIDs(taskID int) []int {
	var out []int
	for id, c := range w.comments {
		if c.Task == taskID {
			out = append(out, id)
		}
	}
	return out
}

func (w *world) Comment(id int) (model.Comment, bool) {
	c, ok := w.comments[id]
	return c, ok
}

func (w *world) CommentTaskID(id int) int {
	if c, ok := w.comments[id]; ok {
		return c.Task
	}
	return model.InvalidID
}

func (w *world) TaskAttachmentIDs(taskID int) []int {
	var out []int
	for id, a := range w.attachments {
		if a.Task == taskID {
			out = append(out, id)
		}
	}
	return out
}
func (w *world) Attachment(id int) (model.Attachment, bool) {
	a, ok := w.attachments[id]
	return a, ok
}
func (w *world) AttachmentTaskID(id int) int {
	if a, ok := w.attachments[id]; ok {
		return a.Task
	}
	return model.InvalidID
}

func (w *world) UpdateSchedule()        { w.updates++ }
func (w *world) AffectedTaskIDs() []int { return w.affected }

func (w *world) IsWorkday(d time.Time) bool {
	return d.Weekday() != time.Saturday && d.Weekday() != time.Sunday
}

func (w *world) Holiday(d time.Time) (string, bool) {
	name, ok := w.holidays[d.Format("2006-01-02")]
	return name, ok
}

// Text is measured at 8 px per character and 16 px per line.
const (
	fakeCharWidth  = 8
	fakeLineHeight = 16
)

var (
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
	entityPattern = regexp.MustCompile(`&[#a-zA-Z0-9]+;`)
)

func plainText(markup string) string {
	return entityPattern.ReplaceAllString(tagPattern.ReplaceAllString(markup, ""), "?")
}

type fakePainter struct {
	surfaces int
}

func (p *fakePainter) NewSurface(width, height int, bg Color) Surface {
	p.surfaces++
	return &fakeSurface{w: width, h: height, bg: bg}
}

func (p *fakePainter) TextHeight(markup string, width int) int {
	n := utf8.RuneCountInString(plainText(markup))
	if n == 0 {
		return 0
	}
	perLine := max(1, width/fakeCharWidth)
	return (n + perLine - 1) / perLine * fakeLineHeight
}

type fakeSurface struct {
	w, h  int
	bg    Color
	texts []string
	fills []Color
}

func (s *fakeSurface) Width() int                            { return s.w }
func (s *fakeSurface) Height() int                           { return s.h }
func (s *fakeSurface) Fill(_ Rect, c Color, _ float64)       { s.fills = append(s.fills, c) }
func (s *fakeSurface) Text(_ Rect, markup string)            { s.texts = append(s.texts, markup) }
func (s *fakeSurface) VLine(_, _, _ int, _ Color, _ float64) {}
func (s *fakeSurface) HLine(_, _, _ int, _ Color, _ float64) {}
func (s *fakeSurface) Draw(_ Surface, _, _ int)              {}

func (s *fakeSurface) hasText(sub string) bool {
	return strings.Contains(strings.Join(s.texts, "\n"), sub)
}

func (s *fakeSurface) hasFill(c Color) bool {
	for _, f := range s.fills {
		if f == c {
			return true
		}
	}
	return false
}

type recordingLogger struct {
	errors []string
}

func (l *recordingLogger) Debug(interface{}, ...interface{}) {}
func (l *recordingLogger) Warn(interface{}, ...interface{})  {}
func (l *recordingLogger) Error(msg interface{}, _ ...interface{}) {
	l.errors = append(l.errors, fmt.Sprint(msg))
}

type fakeWriter struct {
	calls []string
}

func (w *fakeWriter) SetTaskInfo(id int, key model.InfoKey, value string) error {
	w.calls = append(w.calls, fmt.Sprintf("%d %s=%s", id, key, value))
	return nil
}

var testNow = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

type harness struct {
	w       *world
	ed      *Editor
	log     *recordingLogger
	painter *fakePainter
	writer  *fakeWriter

	selections [][]int
	sizes      int
	messages   []string
	actions    []CellAction
}

func newHarness(t *testing.T, w *world) *harness {
	t.Helper()
	h := &harness{w: w, log: &recordingLogger{}, painter: &fakePainter{}, writer: &fakeWriter{}}
	ed, err := New(Deps{
		Tasks:       w,
		Groups:      w,
		Links:       w,
		Resources:   w,
		Comments:    w,
		Attachments: w,
		Schedule:    w,
		Calendar:    w,
		Painter:     h.painter,
		Logger:      h.log,
		Writer:      h.writer,
		Now:         func() time.Time { return testNow },
	}, Signals{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ed.SetSignals(Signals{
		SelectionChanged: func(tasks, _ []int) { h.selections = append(h.selections, tasks) },
		SizeChanged:      func() { h.sizes++ },
		ShowMessage:      func(msg string) { h.messages = append(h.messages, msg) },
		ActionRequested:  func(a CellAction) { h.actions = append(h.actions, a) },
	})
	h.ed = ed
	return h
}

// paintAll builds every row surface so later drops are observable.
func (h *harness) paintAll(t *testing.T) {
	t.Helper()
	for i := 0; i < h.ed.Projection().Len(); i++ {
		h.ed.Rows().Height(i)
		h.ed.Rows().Surface(i, BandAttributes)
		h.ed.Rows().Surface(i, BandGantt)
	}
}

// abcWorld has three tasks under the root; B is a finish-to-start predecessor of C.
func abcWorld() *world {
	w := newWorld()
	w.addTask(1, model.RootGroupID, "A", "Alpha")
	w.addTask(2, model.RootGroupID, "B", "Bravo")
	w.addTask(3, model.RootGroupID, "C", "Charlie")
	w.link(2, 3)
	return w
}
