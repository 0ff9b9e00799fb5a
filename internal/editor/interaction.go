package editor

import "planner-cli/internal/model"

// InteractionState is the pointer state threaded through the input functions.
// The functions return the updated value; the editor keeps the last one it saw
// for painting.
type InteractionState struct {
	Hover Hover

	// OverSeparator is set while the pointer is close enough to a header column
	// separator to start a resize.
	OverSeparator bool

	Dragging       bool
	DragAttribute  Attribute
	DragStartX     int
	DragStartWidth int
}

func (e *Editor) Interaction() InteractionState { return e.interaction }

// setHover drops the surfaces of the rows entering and leaving the hover.
func (e *Editor) setHover(h Hover) {
	old := e.hover
	if old == h {
		return
	}
	if old.Active {
		e.rows.DropSurfaces(old.Ref)
	}
	if h.Active {
		e.rows.DropSurfaces(h.Ref)
	}
	e.rows.actions = nil
	e.hover = h
}

func (e *Editor) commit(st InteractionState) InteractionState {
	e.setHover(st.Hover)
	e.interaction = st
	return st
}

// MouseMove handles pointer motion at viewport coordinates (x, y).
func (e *Editor) MouseMove(st InteractionState, x, y int) InteractionState {
	if st.Dragging {
		delta := x + e.vp.leftOffset - st.DragStartX
		_ = e.ResizeColumn(st.DragAttribute, max(st.DragStartWidth+delta, MinColumnWidth))
		return e.commit(st)
	}

	cx := x + e.vp.leftOffset
	if y < e.HeaderHeight() {
		st.Hover = Hover{}
		_, st.OverSeparator = e.columns.SeparatorAt(cx)
		if a, ok := e.columns.AttributeAt(cx); ok && a == AttrGanttChart {
			if msg, ok := e.gantt.holidayMessage(cx - e.columns.Left(AttrGanttChart)); ok {
				e.signals.showMessage(msg)
			}
		}
		return e.commit(st)
	}

	st.OverSeparator = false
	index := e.IndexAtPosition(x, y)
	attr, ok := e.columns.AttributeAt(cx)
	if index < 0 || !ok {
		st.Hover = Hover{}
		return e.commit(st)
	}
	row, _ := e.projection.Row(index)
	st.Hover = Hover{
		Ref:       row.Ref(),
		Attribute: attr,
		CellY:     y - e.vp.tops[index-e.vp.paintFirst],
		Active:    true,
	}
	return e.commit(st)
}

func (e *Editor) MouseLeave(st InteractionState) InteractionState {
	st.Hover = Hover{}
	st.OverSeparator = false
	return e.commit(st)
}

// MousePress starts a column resize, triggers a cell action, or selects the row
// under the pointer. additive toggles the row instead of replacing the selection.
func (e *Editor) MousePress(st InteractionState, x, y int, additive bool) (InteractionState, CellAction, bool) {
	cx := x + e.vp.leftOffset
	if y < e.HeaderHeight() {
		if a, ok := e.columns.SeparatorAt(cx); ok {
			st.Dragging = true
			st.DragAttribute = a
			st.DragStartX = cx
			st.DragStartWidth = e.columns.Width(a)
		}
		return e.commit(st), CellAction{}, false
	}

	index := e.IndexAtPosition(x, y)
	if index < 0 {
		return e.commit(st), CellAction{}, false
	}
	row, _ := e.projection.Row(index)
	ref := row.Ref()

	if e.hover.Active && e.hover.Ref == ref {
		if action, ok := e.rows.ActionAt(cx, y-e.vp.tops[index-e.vp.paintFirst]); ok {
			e.executeAction(action)
			return e.commit(st), action, true
		}
	}

	tasks := e.selection.Tasks
	groups := e.selection.Groups
	if !additive {
		tasks, groups = map[int]bool{}, map[int]bool{}
	} else {
		tasks, groups = copySet(tasks), copySet(groups)
	}
	set := tasks
	if ref.Kind == model.KindGroup {
		set = groups
	}
	if additive && set[ref.ID] {
		delete(set, ref.ID)
	} else {
		set[ref.ID] = true
	}
	_ = e.SetSelection(sortedKeys(tasks), sortedKeys(groups))
	return e.commit(st), CellAction{}, false
}

func (e *Editor) MouseRelease(st InteractionState, x, y int) InteractionState {
	st.Dragging = false
	return e.MouseMove(st, x, y)
}

var completionActions = map[ActionKind]string{
	ActionNotStarted: model.StatusNotStarted,
	ActionStarted:    model.StatusStarted,
	ActionCompleted:  model.StatusCompleted,
}

func (e *Editor) executeAction(a CellAction) {
	if status, ok := completionActions[a.Kind]; ok && a.Ref.Kind == model.KindTask {
		if e.writer == nil {
			e.rep.log.Warn("no task writer; completion shortcut ignored", "task", a.Ref.ID)
		} else if err := e.writer.SetTaskInfo(a.Ref.ID, model.InfoCompletionStatus, status); err != nil {
			e.rep.report(&CollaboratorError{Op: "set completion status", Err: err})
		}
	}
	e.signals.actionRequested(a)
}

func copySet(m map[int]bool) map[int]bool {
	out := make(map[int]bool, len(m))
	for k, v := range m {
		if v {
			out[k] = true
		}
	}
	return out
}
