package tui

import "planner-cli/internal/model"

// cursor is the index of the first selected row, or -1.
func (m *appModel) cursor() int {
	tasks, groups := m.s.Editor.Selection()
	if len(tasks)+len(groups) == 0 {
		return -1
	}
	sel := make(map[model.EntityRef]bool, len(tasks)+len(groups))
	for _, id := range tasks {
		sel[model.TaskRef(id)] = true
	}
	for _, id := range groups {
		sel[model.GroupRef(id)] = true
	}
	for i, r := range m.s.Editor.Projection().Rows() {
		if sel[r.Ref()] {
			return i
		}
	}
	return -1
}

func (m *appModel) selected() (model.EntityRef, bool) {
	i := m.cursor()
	if i < 0 {
		return model.EntityRef{}, false
	}
	r, ok := m.s.Editor.Projection().Row(i)
	return r.Ref(), ok
}

func (m *appModel) moveCursor(delta int) {
	i := m.cursor()
	if i < 0 {
		m.selectRow(0)
		return
	}
	m.selectRow(i + delta)
}

// selectRow selects the row at index i, clamped, and scrolls it into view.
func (m *appModel) selectRow(i int) {
	e := m.s.Editor
	n := e.Projection().Len()
	if n == 0 {
		return
	}
	i = min(max(i, 0), n-1)
	r, _ := e.Projection().Row(i)
	var err error
	if r.Kind == model.KindGroup {
		err = e.SetSelection(nil, []int{r.ID})
	} else {
		err = e.SetSelection([]int{r.ID}, nil)
	}
	if err != nil {
		m.fail(err)
		return
	}
	m.reveal(i)
}

// reveal scrolls the least amount that shows all of row i.
func (m *appModel) reveal(i int) {
	e := m.s.Editor
	rows := e.Rows()
	top := 0
	for k := 0; k < i; k++ {
		top += rows.Height(k)
	}
	bottom := top + rows.Height(i)

	_, h := e.ViewportSize()
	avail := h - e.HeaderHeight()
	off := e.TopOffset()
	switch {
	case top < off:
		e.ScrollBy(top - off)
	case bottom > off+avail:
		e.ScrollBy(bottom - off - avail)
	}
}
