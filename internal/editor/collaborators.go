package editor

import (
	"time"

	"planner-cli/internal/model"
)

// The editor only reads from these stores. Mutations happen elsewhere and come back
// in through the change handlers.

type TaskStore interface {
	TaskExists(id int) bool
	TaskInfo(id int) model.Info
	// TaskGroup returns the id of the group that directly contains the task.
	TaskGroup(id int) int
}

type GroupStore interface {
	GroupExists(id int) bool
	GroupInfo(id int) model.Info
	GroupParent(id int) int
	// Children returns the direct members of a group in declared order.
	Children(groupID int) []model.EntityRef
}

type LinkStore interface {
	Predecessors(taskID int) []int
	Successors(taskID int) []int
	Link(predecessorID, successorID int) (model.Link, bool)
}

type ResourceStore interface {
	TaskResourceIDs(taskID int) []int
	ResourceName(id int) string
	ResourceTaskIDs(resourceID int) []int
}

type CommentStore interface {
	TaskCommentIDs(taskID int) []int
	Comment(id int) (model.Comment, bool)
	CommentTaskID(id int) int
}

type AttachmentStore interface {
	TaskAttachmentIDs(taskID int) []int
	Attachment(id int) (model.Attachment, bool)
	AttachmentTaskID(id int) int
}

// Scheduler keeps computed dates current. UpdateSchedule must be cheap when nothing
// changed since the last call.
type Scheduler interface {
	UpdateSchedule()
	AffectedTaskIDs() []int
}

type Calendar interface {
	IsWorkday(d time.Time) bool
	Holiday(d time.Time) (name string, ok bool)
}

// TaskWriter is optional; completion shortcuts are ignored without one.
type TaskWriter interface {
	SetTaskInfo(id int, key model.InfoKey, value string) error
}

// Logger is satisfied by *log.Logger from charmbracelet/log.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

type Color struct {
	R, G, B uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Painter creates surfaces and measures markup. Units are pixels.
type Painter interface {
	NewSurface(width, height int, bg Color) Surface
	// TextHeight returns the height of markup wrapped to width.
	TextHeight(markup string, width int) int
}

type Surface interface {
	Width() int
	Height() int
	Fill(r Rect, c Color, opacity float64)
	// Text draws markup wrapped to r.W and clipped to r.
	Text(r Rect, markup string)
	VLine(x, y0, y1 int, c Color, opacity float64)
	HLine(x0, x1, y int, c Color, opacity float64)
	// Draw copies src with its top-left corner at (x, y).
	Draw(src Surface, x, y int)
}

// Deps wires the editor to its collaborators. Writer and Now are optional.
type Deps struct {
	Tasks       TaskStore
	Groups      GroupStore
	Links       LinkStore
	Resources   ResourceStore
	Comments    CommentStore
	Attachments AttachmentStore
	Schedule    Scheduler
	Calendar    Calendar
	Painter     Painter
	Logger      Logger
	Writer      TaskWriter
	Now         func() time.Time
}

// Signals are raised toward the enclosing shell. Nil funcs are skipped.
type Signals struct {
	SelectionChanged      func(taskIDs, groupIDs []int)
	SizeChanged           func()
	ShowMessage           func(msg string)
	GanttStartDateChanged func(d time.Time)
	TopLeftChanged        func()
	ActionRequested       func(a CellAction)
}

func (s Signals) selectionChanged(taskIDs, groupIDs []int) {
	if s.SelectionChanged != nil {
		s.SelectionChanged(taskIDs, groupIDs)
	}
}

func (s Signals) sizeChanged() {
	if s.SizeChanged != nil {
		s.SizeChanged()
	}
}

func (s Signals) showMessage(msg string) {
	if s.ShowMessage != nil {
		s.ShowMessage(msg)
	}
}

func (s Signals) ganttStartDateChanged(d time.Time) {
	if s.GanttStartDateChanged != nil {
		s.GanttStartDateChanged(d)
	}
}

func (s Signals) topLeftChanged() {
	if s.TopLeftChanged != nil {
		s.TopLeftChanged()
	}
}

func (s Signals) actionRequested(a CellAction) {
	if s.ActionRequested != nil {
		s.ActionRequested(a)
	}
}
