package editor

import (
	"planner-cli/internal/model"
)

const (
	RowPadding        = 2
	AttributePadding  = 5
	IndentScale       = 20
	MaxLinesInContent = 5
	ActionIconSize    = 16
)

var (
	BackgroundColors = [2]Color{RGB(230, 230, 230), RGB(240, 240, 240)}
	SelectedColor    = RGB(160, 160, 255)
	HoverColor       = RGB(0, 0, 255)
	SeparatorColor   = RGB(160, 160, 160)
)

const (
	SelectedOpacity = 0.5
	HoverOpacity    = 0.1
)

type Band int

const (
	BandAttributes Band = iota
	BandGantt
)

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionAdd
	ActionSubtract
	ActionEdit
	ActionNotStarted
	ActionStarted
	ActionCompleted
)

func (k ActionKind) String() string {
	switch k {
	case ActionAdd:
		return "add"
	case ActionSubtract:
		return "subtract"
	case ActionEdit:
		return "edit"
	case ActionNotStarted:
		return "not started"
	case ActionStarted:
		return "started"
	case ActionCompleted:
		return "completed"
	default:
		return "none"
	}
}

// CellAction is a clickable affordance on the hovered row. Rect is in row-local
// coordinates of the attributes band. Data is the fragment's related id, or -1.
type CellAction struct {
	Kind      ActionKind
	Attribute Attribute
	Ref       model.EntityRef
	Data      int
	Rect      Rect
}

// Hover is the part of the interaction state that row surfaces depend on.
type Hover struct {
	Ref       model.EntityRef
	Attribute Attribute
	// CellY is the pointer y relative to the row's top edge.
	CellY  int
	Active bool
}

// Selection holds the selected task and group ids.
type Selection struct {
	Tasks  map[int]bool
	Groups map[int]bool
}

func (s Selection) Contains(ref model.EntityRef) bool {
	if ref.Kind == model.KindGroup {
		return s.Groups[ref.ID]
	}
	return s.Tasks[ref.ID]
}

// rowSurface remembers the row parity its background was painted with.
type rowSurface struct {
	s      Surface
	parity int
}

// RowCache memoizes row surfaces and heights per entity. Callers map row indices
// to entities through the projection. A surface whose row moved to an index of the
// other parity is repainted.
type RowCache struct {
	ed *Editor

	attrs   map[model.EntityRef]rowSurface
	gantts  map[model.EntityRef]rowSurface
	heights map[model.EntityRef]int

	// actions belong to the hovered row and are rebuilt with its surface.
	actions []CellAction
}

func newRowCache(ed *Editor) *RowCache {
	return &RowCache{
		ed:      ed,
		attrs:   map[model.EntityRef]rowSurface{},
		gantts:  map[model.EntityRef]rowSurface{},
		heights: map[model.EntityRef]int{},
	}
}

func (rc *RowCache) Height(index int) int {
	row, ok := rc.ed.projection.Row(index)
	if !ok {
		rc.ed.rep.report(errInvalidArgument("row height", index, "row index out of range"))
		return 0
	}
	ref := row.Ref()
	if h, ok := rc.heights[ref]; ok {
		return h
	}
	h := rc.computeHeight(row)
	rc.heights[ref] = h
	return h
}

func (rc *RowCache) computeHeight(row Row) int {
	ed := rc.ed
	ref := row.Ref()
	maxLine := MaxLinesInContent * ed.lineHeight()
	height := 0
	for _, a := range ed.columns.Visible() {
		h := 0
		if a == AttrGanttChart {
			h = GanttBarHeight
		} else {
			width := ed.columns.Width(a) - 2*AttributePadding
			if a == AttrTitle {
				width -= titleInset(row)
			}
			for _, frag := range ed.content.Get(ref, a).Fragments {
				h += min(ed.painter.TextHeight(frag, width), maxLine)
			}
		}
		height = max(height, h)
	}
	if height == 0 {
		height = ed.lineHeight()
	}
	return height + 2*RowPadding
}

// titleInset is the horizontal space before the title text: indentation plus the
// expand marker of groups.
func titleInset(row Row) int {
	inset := row.Indent * IndentScale
	if row.Kind == model.KindGroup {
		inset += IndentScale
	}
	return inset
}

func (rc *RowCache) Surface(index int, band Band) Surface {
	row, ok := rc.ed.projection.Row(index)
	if !ok {
		rc.ed.rep.report(errInvalidArgument("row surface", index, "row index out of range"))
		return nil
	}
	ref := row.Ref()
	parity := index % 2
	switch band {
	case BandAttributes:
		if c, ok := rc.attrs[ref]; ok && c.parity == parity {
			return c.s
		}
		s := rc.buildAttributes(index, row)
		rc.attrs[ref] = rowSurface{s: s, parity: parity}
		return s
	case BandGantt:
		if c, ok := rc.gantts[ref]; ok && c.parity == parity {
			return c.s
		}
		s := rc.ed.gantt.buildRow(index, row)
		rc.gantts[ref] = rowSurface{s: s, parity: parity}
		return s
	default:
		rc.ed.rep.report(errInvalidArgument("row surface", band, "unknown band"))
		return nil
	}
}

func (rc *RowCache) has(ref model.EntityRef) (attrs, gantt, height bool) {
	_, attrs = rc.attrs[ref]
	_, gantt = rc.gantts[ref]
	_, height = rc.heights[ref]
	return attrs, gantt, height
}

// background paints the parity color and the selection and hover tints.
func (rc *RowCache) background(index int, ref model.EntityRef, width, height int) Surface {
	ed := rc.ed
	s := ed.painter.NewSurface(width, height, BackgroundColors[index%2])
	all := Rect{W: width, H: height}
	if ed.selection.Contains(ref) {
		s.Fill(all, SelectedColor, SelectedOpacity)
	}
	if ed.hover.Active && ed.hover.Ref == ref {
		s.Fill(all, HoverColor, HoverOpacity)
	}
	return s
}

func (rc *RowCache) buildAttributes(index int, row Row) Surface {
	ed := rc.ed
	ed.schedule.UpdateSchedule()

	ref := row.Ref()
	height := rc.Height(index)
	s := rc.background(index, ref, ed.columns.AttributesWidth(), height)

	hovered := ed.hover.Active && ed.hover.Ref == ref
	if hovered {
		rc.actions = rc.actions[:0]
	}
	maxLine := MaxLinesInContent * ed.lineHeight()

	for _, a := range ed.columns.Visible() {
		if a == AttrGanttChart {
			continue
		}
		x := ed.columns.Left(a) + AttributePadding
		width := ed.columns.Width(a) - 2*AttributePadding
		if a == AttrTitle {
			inset := titleInset(row)
			if row.Kind == model.KindGroup {
				marker := "&#x25B8;"
				if ed.projection.IsExpanded(row.ID) {
					marker = "&#x25BE;"
				}
				s.Text(Rect{X: x + row.Indent*IndentScale, Y: RowPadding, W: IndentScale, H: ed.lineHeight()}, marker)
			}
			x += inset
			width -= inset
		}

		content := ed.content.Get(ref, a)
		y := 0
		for i, frag := range content.Fragments {
			dy := min(ed.painter.TextHeight(frag, width), maxLine)
			s.Text(Rect{X: x, Y: RowPadding + y, W: width, H: dy}, frag)
			if hovered && ed.hover.Attribute == a && ed.hover.CellY-RowPadding >= y && ed.hover.CellY-RowPadding < y+dy {
				rc.addFragmentActions(s, ref, a, x, width, y, content.IDs[i])
			}
			y += dy
		}
		if hovered && ed.hover.Attribute == a {
			rc.addCellActions(s, ref, a, x, width, y, len(content.Fragments) == 0)
		}
	}

	for _, a := range ed.columns.Visible() {
		if a == AttrGanttChart {
			continue
		}
		r := ed.columns.Right(a)
		s.VLine(r-1, 0, height, SeparatorColor, 1)
	}
	return s
}

var actionGlyphs = map[ActionKind]string{
	ActionAdd:        "+",
	ActionSubtract:   "&minus;",
	ActionEdit:       "&#x270E;",
	ActionNotStarted: `<font color="red">&#x25A0;</font>`,
	ActionStarted:    `<font color="yellow">&#x25A0;</font>`,
	ActionCompleted:  `<font color="green">&#x25A0;</font>`,
}

func (rc *RowCache) place(s Surface, ref model.EntityRef, a Attribute, kinds []ActionKind, data []int, x, width, y int) {
	cx := x + width - len(kinds)*ActionIconSize
	for i, k := range kinds {
		r := Rect{X: cx, Y: RowPadding + y, W: ActionIconSize, H: ActionIconSize}
		rc.actions = append(rc.actions, CellAction{Kind: k, Attribute: a, Ref: ref, Data: data[i], Rect: r})
		s.Text(r, actionGlyphs[k])
		cx += ActionIconSize
	}
}

// addFragmentActions adds the per-fragment affordances of multi-valued cells.
func (rc *RowCache) addFragmentActions(s Surface, ref model.EntityRef, a Attribute, x, width, y, id int) {
	if ref.Kind != model.KindTask {
		return
	}
	switch a {
	case AttrPredecessors, AttrSuccessors, AttrComments:
		rc.place(s, ref, a, []ActionKind{ActionEdit, ActionSubtract, ActionAdd}, []int{id, id, model.InvalidID}, x, width, y)
	case AttrResources, AttrAttachments:
		rc.place(s, ref, a, []ActionKind{ActionSubtract, ActionAdd}, []int{id, model.InvalidID}, x, width, y)
	}
}

// addCellActions adds the affordances that do not depend on a fragment.
func (rc *RowCache) addCellActions(s Surface, ref model.EntityRef, a Attribute, x, width, endY int, empty bool) {
	none := model.InvalidID
	switch a {
	case AttrTitle:
		rc.place(s, ref, a, []ActionKind{ActionEdit}, []int{none}, x, width, 0)
	}
	if ref.Kind != model.KindTask {
		return
	}
	switch a {
	case AttrID:
		rc.place(s, ref, a, []ActionKind{ActionEdit}, []int{none}, x, width, 0)
	case AttrDuration:
		rc.place(s, ref, a, []ActionKind{ActionAdd, ActionSubtract}, []int{none, none}, x, width, 0)
	case AttrCompletionStatus:
		rc.place(s, ref, a, []ActionKind{ActionNotStarted, ActionStarted, ActionCompleted}, []int{none, none, none}, x, width, 0)
	case AttrPredecessors, AttrSuccessors, AttrComments, AttrResources, AttrAttachments:
		if empty {
			rc.place(s, ref, a, []ActionKind{ActionAdd}, []int{none}, x, width, endY)
		}
	}
}

// Actions returns the affordances of the hovered row.
func (rc *RowCache) Actions() []CellAction {
	return append([]CellAction(nil), rc.actions...)
}

func (rc *RowCache) ActionAt(x, y int) (CellAction, bool) {
	for _, a := range rc.actions {
		if a.Rect.Contains(x, y) {
			return a, true
		}
	}
	return CellAction{}, false
}

// DropSurfaces drops both bands of ref. Dropping an absent entry is a no-op.
func (rc *RowCache) DropSurfaces(ref model.EntityRef) {
	delete(rc.attrs, ref)
	delete(rc.gantts, ref)
}

func (rc *RowCache) DropHeight(ref model.EntityRef) {
	delete(rc.heights, ref)
}

func (rc *RowCache) Drop(ref model.EntityRef) {
	rc.DropSurfaces(ref)
	rc.DropHeight(ref)
}

func (rc *RowCache) ClearAttributes() {
	rc.attrs = map[model.EntityRef]rowSurface{}
}

func (rc *RowCache) ClearGantt() {
	rc.gantts = map[model.EntityRef]rowSurface{}
}

func (rc *RowCache) ClearHeights() {
	rc.heights = map[model.EntityRef]int{}
}

func (rc *RowCache) Clear() {
	rc.ClearAttributes()
	rc.ClearGantt()
	rc.ClearHeights()
	rc.actions = nil
}
