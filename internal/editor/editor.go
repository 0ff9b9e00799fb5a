// Package editor keeps the projection, content and row caches of the project table
// and invalidates exactly what a change notification affects.
package editor

import (
	"errors"
	"time"
)

// Editor is single-threaded: handlers, input and Paint must run on one goroutine.
type Editor struct {
	tasks       TaskStore
	groups      GroupStore
	links       LinkStore
	resources   ResourceStore
	comments    CommentStore
	attachments AttachmentStore
	schedule    Scheduler
	calendar    Calendar
	painter     Painter
	writer      TaskWriter
	now         func() time.Time
	rep         reporter
	signals     Signals

	columns    *Columns
	projection *Projection
	content    *ContentCache
	rows       *RowCache
	gantt      *gantt

	selection   Selection
	hover       Hover
	interaction InteractionState

	headerHeight int
	headerAttrs  Surface
	headerGantt  Surface
	lineH        int

	vp viewport
}

func New(d Deps, signals Signals) (*Editor, error) {
	switch {
	case d.Tasks == nil, d.Groups == nil, d.Links == nil:
		return nil, errors.New("editor: task, group and link stores are required")
	case d.Resources == nil, d.Comments == nil, d.Attachments == nil:
		return nil, errors.New("editor: resource, comment and attachment stores are required")
	case d.Schedule == nil:
		return nil, errors.New("editor: scheduler is required")
	case d.Painter == nil:
		return nil, errors.New("editor: painter is required")
	}
	if d.Logger == nil {
		d.Logger = nopLogger{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	e := &Editor{
		tasks:       d.Tasks,
		groups:      d.Groups,
		links:       d.Links,
		resources:   d.Resources,
		comments:    d.Comments,
		attachments: d.Attachments,
		schedule:    d.Schedule,
		calendar:    d.Calendar,
		painter:     d.Painter,
		writer:      d.Writer,
		now:         d.Now,
		rep:         reporter{log: d.Logger},
		signals:     signals,
		columns:     NewColumns(),
		projection:  NewProjection(d.Groups),
		selection:   Selection{Tasks: map[int]bool{}, Groups: map[int]bool{}},
	}
	e.content = NewContentCache(d, e.columns)
	e.rows = newRowCache(e)
	today := dateOnly(e.now())
	e.gantt = &gantt{ed: e, start: today, today: today}
	e.lineH = e.painter.TextHeight("X", 1<<16)
	if e.lineH <= 0 {
		e.lineH = 1
	}
	e.projection.Rebuild()
	return e, nil
}

func (e *Editor) SetSignals(s Signals) { e.signals = s }

func (e *Editor) lineHeight() int { return e.lineH }

func (e *Editor) Columns() *Columns       { return e.columns }
func (e *Editor) Projection() *Projection { return e.projection }
func (e *Editor) Content() *ContentCache  { return e.content }
func (e *Editor) Rows() *RowCache         { return e.rows }

func (e *Editor) Selection() (taskIDs, groupIDs []int) {
	return sortedKeys(e.selection.Tasks), sortedKeys(e.selection.Groups)
}

func (e *Editor) GanttStartDate() time.Time { return e.gantt.start }

func (e *Editor) GanttScale() float64 { return e.columns.GanttScale() }

// EffectiveGanttFormat resolves the automatic Gantt header format.
func (e *Editor) EffectiveGanttFormat() Format { return e.gantt.effectiveFormat() }

func (e *Editor) HeaderHeight() int {
	if e.headerHeight == 0 {
		e.updateHeaderHeight()
	}
	return e.headerHeight
}

// updateHeaderHeight recomputes the header height and drops the header surfaces
// when it changed. It reports whether the height changed.
func (e *Editor) updateHeaderHeight() bool {
	h := 0
	for _, a := range e.columns.Visible() {
		if a == AttrGanttChart {
			h = max(h, e.gantt.headerLines()*e.lineHeight())
			continue
		}
		h = max(h, e.painter.TextHeight(headerMarkup(e.columns.Title(a)), e.columns.Width(a)-2*AttributePadding))
	}
	h += 2 * RowPadding
	if h == e.headerHeight {
		return false
	}
	e.headerHeight = h
	e.headerAttrs = nil
	e.headerGantt = nil
	return true
}

func headerMarkup(title string) string {
	return `<p align="center"><b>` + title + `</b></p>`
}

func (e *Editor) headerAttributes() Surface {
	if e.headerAttrs != nil {
		return e.headerAttrs
	}
	height := e.HeaderHeight()
	s := e.painter.NewSurface(e.columns.AttributesWidth(), height, HeaderBackgroundColor)
	for _, a := range e.columns.Visible() {
		if a == AttrGanttChart {
			continue
		}
		x := e.columns.Left(a)
		s.Text(Rect{X: x + AttributePadding, Y: RowPadding, W: e.columns.Width(a) - 2*AttributePadding, H: height - 2*RowPadding}, headerMarkup(e.columns.Title(a)))
		s.VLine(e.columns.Right(a)-1, 0, height, SeparatorColor, 1)
	}
	s.HLine(0, s.Width(), height-1, SeparatorColor, 1)
	e.headerAttrs = s
	return s
}

func (e *Editor) headerGanttChart() Surface {
	if e.headerGantt != nil {
		return e.headerGantt
	}
	e.headerGantt = e.gantt.buildHeader(e.HeaderHeight())
	return e.headerGantt
}

// Paint draws the header and the rows that intersect the viewport into target and
// records the row coordinates used for hit testing.
func (e *Editor) Paint(target Surface) {
	e.clampViewport()

	vp := &e.vp
	vp.paintFirst = vp.topIndex
	vp.tops = vp.tops[:0]
	vp.bottoms = vp.bottoms[:0]

	header := e.HeaderHeight()
	left := vp.leftOffset
	ganttVisible := e.columns.IsVisible(AttrGanttChart)
	ganttX := e.columns.AttributesWidth() - left

	y := header - vp.topOffset
	for i := vp.topIndex; i < e.projection.Len() && y < vp.height; i++ {
		h := e.rows.Height(i)
		if s := e.rows.Surface(i, BandAttributes); s != nil {
			target.Draw(s, -left, y)
		}
		if ganttVisible {
			if s := e.rows.Surface(i, BandGantt); s != nil {
				target.Draw(s, ganttX, y)
			}
		}
		vp.tops = append(vp.tops, y)
		vp.bottoms = append(vp.bottoms, y+h)
		y += h
	}

	target.Draw(e.headerAttributes(), -left, 0)
	if ganttVisible {
		target.Draw(e.headerGanttChart(), ganttX, 0)
	}
}

// Rebuild refreshes the projection after an external change the handlers do not cover.
func (e *Editor) Rebuild() {
	e.projection.Rebuild()
}

// Invalidate drops every cached artifact.
func (e *Editor) Invalidate() {
	e.content.Clear()
	e.rows.Clear()
	e.headerHeight = 0
	e.headerAttrs = nil
	e.headerGantt = nil
}
