package editor

// viewport is the virtualized scroll state. tops and bottoms hold the row
// coordinates of the last Paint, starting at row paintFirst.
type viewport struct {
	width  int
	height int

	topIndex   int
	topOffset  int
	leftOffset int

	paintFirst int
	tops       []int
	bottoms    []int
}

// Resize sets the viewport size in pixels, header included.
func (e *Editor) Resize(width, height int) error {
	if width < 0 || height < 0 {
		return e.rep.report(errInvalidArgument("resize", [2]int{width, height}, "negative viewport size"))
	}
	if e.vp.width == width && e.vp.height == height {
		return nil
	}
	e.vp.width = width
	e.vp.height = height
	e.clampViewport()
	return nil
}

func (e *Editor) ViewportSize() (width, height int) { return e.vp.width, e.vp.height }

func (e *Editor) TopIndex() int { return e.vp.topIndex }

func (e *Editor) LeftOffset() int { return e.vp.leftOffset }

func (e *Editor) totalHeight() int {
	total := 0
	for i := 0; i < e.projection.Len(); i++ {
		total += e.rows.Height(i)
	}
	return total
}

// MaximumTopOffset resolves every row height.
func (e *Editor) MaximumTopOffset() int {
	avail := e.vp.height - e.HeaderHeight()
	return max(0, e.totalHeight()-avail)
}

// TopOffset is the pixel distance from the first row to the top of the viewport.
func (e *Editor) TopOffset() int {
	off := e.vp.topOffset
	for i := 0; i < e.vp.topIndex && i < e.projection.Len(); i++ {
		off += e.rows.Height(i)
	}
	return off
}

func (e *Editor) SetTopOffset(px int) error {
	maxOff := e.MaximumTopOffset()
	if px < 0 || px > maxOff {
		return e.rep.report(errInvalidArgument("set top offset", px, "offset outside [0, maximum]"))
	}
	index, offset := 0, 0
	acc := 0
	n := e.projection.Len()
	for i := 0; i < n; i++ {
		h := e.rows.Height(i)
		if px < acc+h {
			index, offset = i, px-acc
			break
		}
		acc += h
		if i == n-1 {
			index, offset = i, max(0, h-1)
		}
	}
	if index == e.vp.topIndex && offset == e.vp.topOffset {
		return nil
	}
	e.vp.topIndex, e.vp.topOffset = index, offset
	e.signals.topLeftChanged()
	return nil
}

// ScrollBy moves the top offset by dy pixels, clamped to the valid range.
func (e *Editor) ScrollBy(dy int) {
	target := min(max(e.TopOffset()+dy, 0), e.MaximumTopOffset())
	_ = e.SetTopOffset(target)
}

// ScrollToRow brings a row to the top of the viewport, as far as the maximum allows.
func (e *Editor) ScrollToRow(index int) error {
	if index < 0 || index >= e.projection.Len() {
		return e.rep.report(errInvalidArgument("scroll to row", index, "row index out of range"))
	}
	off := 0
	for i := 0; i < index; i++ {
		off += e.rows.Height(i)
	}
	return e.SetTopOffset(min(off, e.MaximumTopOffset()))
}

func (e *Editor) MaximumLeftOffset() int {
	return max(0, e.columns.TotalWidth()-e.vp.width)
}

func (e *Editor) SetLeftOffset(px int) error {
	if px < 0 || px > e.MaximumLeftOffset() {
		return e.rep.report(errInvalidArgument("set left offset", px, "offset outside [0, maximum]"))
	}
	if px == e.vp.leftOffset {
		return nil
	}
	e.vp.leftOffset = px
	e.signals.topLeftChanged()
	return nil
}

func (e *Editor) ScrollLeftBy(dx int) {
	target := min(max(e.vp.leftOffset+dx, 0), e.MaximumLeftOffset())
	_ = e.SetLeftOffset(target)
}

// IndexAtPosition returns the row painted at viewport coordinates (x, y), or -1.
func (e *Editor) IndexAtPosition(x, y int) int {
	if x < 0 || x >= e.vp.width || y < e.HeaderHeight() {
		return -1
	}
	for k, top := range e.vp.tops {
		if y < top {
			break
		}
		if y < e.vp.bottoms[k] {
			return e.vp.paintFirst + k
		}
	}
	return -1
}

// AttributeAtPosition maps a viewport x coordinate to a column.
func (e *Editor) AttributeAtPosition(x int) (Attribute, bool) {
	return e.columns.AttributeAt(x + e.vp.leftOffset)
}

// clampViewport pulls the scroll state back into range after heights, rows or the
// viewport size changed.
func (e *Editor) clampViewport() {
	n := e.projection.Len()
	if e.vp.topIndex >= n {
		e.vp.topIndex, e.vp.topOffset = 0, 0
	}
	if n > 0 && e.vp.topOffset >= e.rows.Height(e.vp.topIndex) {
		e.vp.topOffset = 0
	}
	if maxOff := e.MaximumTopOffset(); e.TopOffset() > maxOff {
		_ = e.SetTopOffset(maxOff)
	}
	if maxLeft := e.MaximumLeftOffset(); e.vp.leftOffset > maxLeft {
		e.vp.leftOffset = maxLeft
	}
}
