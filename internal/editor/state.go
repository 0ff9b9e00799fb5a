package editor

import (
	"sort"
)

// ColumnState is one column of the persisted editor state. Gantt columns carry a
// scale; the others a title, alignment and width.
type ColumnState struct {
	Type    string  `json:"type"`
	Visible bool    `json:"visible"`
	Index   *int    `json:"index,omitempty"`
	Format  string  `json:"format"`
	Scale   float64 `json:"scale,omitempty"`
	Title   string  `json:"title,omitempty"`
	Align   string  `json:"align,omitempty"`
	Width   int     `json:"width,omitempty"`
}

type ViewportState struct {
	TopIndex   int `json:"top_index"`
	TopOffset  int `json:"top_offset"`
	LeftOffset int `json:"left_offset"`
}

// State is the persisted column, expansion and scroll state. The Gantt start date
// is not part of it.
type State struct {
	Version  int           `json:"version"`
	Columns  []ColumnState `json:"columns"`
	Expanded []int         `json:"expanded"`
	Viewport ViewportState `json:"viewport"`
}

const StateVersion = 1

func (e *Editor) State() State {
	st := State{
		Version:  StateVersion,
		Expanded: e.projection.ExpandedIDs(),
		Viewport: ViewportState{
			TopIndex:   e.vp.topIndex,
			TopOffset:  e.vp.topOffset,
			LeftOffset: e.vp.leftOffset,
		},
	}
	for a := Attribute(0); a < numAttributes; a++ {
		col := e.columns.Column(a)
		cs := ColumnState{
			Type:    a.Key(),
			Visible: e.columns.IsVisible(a),
			Format:  string(col.Format),
		}
		if cs.Visible {
			i := e.columns.Index(a)
			cs.Index = &i
		}
		if a == AttrGanttChart {
			cs.Scale = e.columns.GanttScale()
		} else {
			cs.Title = col.Title
			cs.Align = string(col.Align)
			cs.Width = col.Width
		}
		st.Columns = append(st.Columns, cs)
	}
	return st
}

func parseAlign(s string) (Align, bool) {
	switch s {
	case "", "left":
		return AlignLeft, true
	case "center":
		return AlignCenter, true
	case "right":
		return AlignRight, true
	default:
		return "", false
	}
}

// ApplyState replaces columns, expansion and scroll position. An invalid document
// is rejected as a whole. The Gantt start date resets to today.
func (e *Editor) ApplyState(st State) error {
	const op = "apply state"
	if st.Version > StateVersion {
		return e.rep.report(errInvalidArgument(op, st.Version, "unsupported state version"))
	}

	var cols [numAttributes]Column
	for a := Attribute(0); a < numAttributes; a++ {
		cols[a] = NewColumns().Column(a)
	}
	scale := DefaultGanttScale
	seen := map[Attribute]bool{}
	type placed struct {
		attr  Attribute
		index int
	}
	var visible []placed

	for _, cs := range st.Columns {
		a, ok := ParseAttribute(cs.Type)
		if !ok {
			return e.rep.report(errInvalidArgument(op, cs.Type, "unknown column type"))
		}
		if seen[a] {
			return e.rep.report(errInvalidArgument(op, cs.Type, "duplicate column"))
		}
		seen[a] = true
		f := Format(cs.Format)
		if !a.Supports(f) {
			return e.rep.report(errInvalidArgument(op, cs.Format, "unknown display format for "+cs.Type))
		}
		cols[a].Format = f
		if a == AttrGanttChart {
			if cs.Scale != 0 {
				if cs.Scale < MinGanttScale || cs.Scale > MaxGanttScale {
					return e.rep.report(errInvalidArgument(op, cs.Scale, "gantt scale outside [1, 50]"))
				}
				scale = cs.Scale
			}
		} else {
			align, ok := parseAlign(cs.Align)
			if !ok {
				return e.rep.report(errInvalidArgument(op, cs.Align, "unknown alignment"))
			}
			cols[a].Align = align
			if cs.Title != "" {
				cols[a].Title = cs.Title
			}
			if cs.Width != 0 {
				cols[a].Width = max(cs.Width, MinColumnWidth)
			}
		}
		if cs.Visible {
			idx := len(visible)
			if cs.Index != nil {
				idx = *cs.Index
			}
			visible = append(visible, placed{attr: a, index: idx})
		}
	}
	if len(seen) == 0 {
		for i, a := range DefaultVisibleAttributes() {
			visible = append(visible, placed{attr: a, index: i})
		}
	}
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].index < visible[j].index })
	order := make([]Attribute, 0, len(visible))
	for _, p := range visible {
		order = append(order, p.attr)
	}

	e.columns.restore(cols, order, scale)
	e.projection.SetExpanded(st.Expanded)
	e.projection.Rebuild()
	e.Invalidate()
	today := dateOnly(e.now())
	e.gantt.start, e.gantt.today = today, today

	e.vp.topIndex, e.vp.topOffset, e.vp.leftOffset = 0, 0, 0
	if st.Viewport.TopIndex >= 0 && st.Viewport.TopIndex < e.projection.Len() {
		e.vp.topIndex = st.Viewport.TopIndex
		if st.Viewport.TopOffset >= 0 {
			e.vp.topOffset = st.Viewport.TopOffset
		}
	}
	if st.Viewport.LeftOffset >= 0 {
		e.vp.leftOffset = st.Viewport.LeftOffset
	}
	if e.vp.width > 0 && e.vp.height > 0 {
		e.clampViewport()
	}
	e.signals.sizeChanged()
	return nil
}
