package editor

import "math"

const (
	MinColumnWidth      = 50
	SeparatorDragMargin = 4

	DefaultGanttScale = 20.0
	MinGanttScale     = 1.0
	MaxGanttScale     = 50.0
)

// NoAnchor places a newly shown column at the end of the attributes band.
const NoAnchor Attribute = -1

// Column is the user-adjustable state of one attribute.
type Column struct {
	Attribute Attribute
	Title     string
	Align     Align
	Width     int
	Format    Format
}

// Columns tracks the visible attribute order and the horizontal layout. Non-Gantt
// columns form the attributes band starting at x=0; the Gantt band, when visible,
// starts at AttributesWidth.
type Columns struct {
	cols    [numAttributes]Column
	visible []Attribute
	scale   float64

	left            map[Attribute]int
	attributesWidth int
}

func NewColumns() *Columns {
	c := &Columns{scale: DefaultGanttScale}
	for a := Attribute(0); a < numAttributes; a++ {
		c.cols[a] = Column{
			Attribute: a,
			Title:     a.Label(),
			Align:     a.DefaultAlign(),
			Width:     a.DefaultWidth(),
			Format:    a.DefaultFormat(),
		}
	}
	c.visible = DefaultVisibleAttributes()
	c.recompute()
	return c
}

func (c *Columns) recompute() {
	c.left = map[Attribute]int{}
	x := 0
	for _, a := range c.visible {
		if a == AttrGanttChart {
			continue
		}
		c.left[a] = x
		x += c.cols[a].Width
	}
	c.attributesWidth = x
	if c.IsVisible(AttrGanttChart) {
		c.left[AttrGanttChart] = x
	}
}

func (c *Columns) Visible() []Attribute { return append([]Attribute(nil), c.visible...) }

func (c *Columns) IsVisible(a Attribute) bool { return c.Index(a) >= 0 }

// Index returns the position of a in the visible order, or -1.
func (c *Columns) Index(a Attribute) int {
	for i, x := range c.visible {
		if x == a {
			return i
		}
	}
	return -1
}

func (c *Columns) AnyVisible(attrs []Attribute) bool {
	for _, a := range attrs {
		if c.IsVisible(a) {
			return true
		}
	}
	return false
}

func (c *Columns) Column(a Attribute) Column {
	if !a.Valid() {
		return Column{}
	}
	return c.cols[a]
}

func (c *Columns) Format(a Attribute) Format {
	if !a.Valid() {
		return ""
	}
	return c.cols[a].Format
}

func (c *Columns) Width(a Attribute) int {
	if !a.Valid() {
		return 0
	}
	return c.cols[a].Width
}

func (c *Columns) Align(a Attribute) Align {
	if !a.Valid() {
		return AlignLeft
	}
	return c.cols[a].Align
}

func (c *Columns) Title(a Attribute) string {
	if !a.Valid() {
		return ""
	}
	return c.cols[a].Title
}

// Left returns the x coordinate where a starts, or -1 when a is hidden.
func (c *Columns) Left(a Attribute) int {
	if x, ok := c.left[a]; ok {
		return x
	}
	return -1
}

func (c *Columns) Right(a Attribute) int {
	if x, ok := c.left[a]; ok {
		return x + c.cols[a].Width
	}
	return -1
}

func (c *Columns) AttributesWidth() int { return c.attributesWidth }

func (c *Columns) TotalWidth() int {
	if c.IsVisible(AttrGanttChart) {
		return c.attributesWidth + c.cols[AttrGanttChart].Width
	}
	return c.attributesWidth
}

func (c *Columns) GanttScale() float64 { return c.scale }

// AttributeAt maps a content x coordinate to a column.
func (c *Columns) AttributeAt(x int) (Attribute, bool) {
	for _, a := range c.visible {
		l := c.left[a]
		if x >= l && x < l+c.cols[a].Width {
			return a, true
		}
	}
	return 0, false
}

// SeparatorAt returns the non-Gantt column whose right edge lies within the drag
// margin of x.
func (c *Columns) SeparatorAt(x int) (Attribute, bool) {
	for _, a := range c.visible {
		if a == AttrGanttChart {
			continue
		}
		r := c.Right(a)
		if x >= r-SeparatorDragMargin && x <= r+SeparatorDragMargin {
			return a, true
		}
	}
	return 0, false
}

// setWidth clamps to MinColumnWidth and reports whether the width changed.
func (c *Columns) setWidth(a Attribute, w int) bool {
	if w < MinColumnWidth {
		w = MinColumnWidth
	}
	if c.cols[a].Width == w {
		return false
	}
	c.cols[a].Width = w
	c.recompute()
	return true
}

func (c *Columns) setFormat(a Attribute, f Format) bool {
	if c.cols[a].Format == f {
		return false
	}
	c.cols[a].Format = f
	return true
}

func (c *Columns) setScale(s float64) bool {
	if math.Abs(s-c.scale) < 0.01 {
		return false
	}
	c.scale = s
	return true
}

// toggle hides a visible attribute or shows a hidden one. Gantt is always appended;
// others go before anchor when anchor is visible, else at the end of the attributes
// band. It reports whether a became visible.
func (c *Columns) toggle(a, anchor Attribute) bool {
	if i := c.Index(a); i >= 0 {
		c.visible = append(c.visible[:i], c.visible[i+1:]...)
		c.recompute()
		return false
	}
	switch {
	case a == AttrGanttChart:
		c.visible = append(c.visible, a)
	case anchor != a && c.IsVisible(anchor):
		i := c.Index(anchor)
		c.visible = append(c.visible[:i], append([]Attribute{a}, c.visible[i:]...)...)
	default:
		// Keep Gantt last.
		if g := c.Index(AttrGanttChart); g >= 0 {
			c.visible = append(c.visible[:g], append([]Attribute{a}, c.visible[g:]...)...)
		} else {
			c.visible = append(c.visible, a)
		}
	}
	c.recompute()
	return true
}

// restore replaces the whole column state from a decoded document.
func (c *Columns) restore(cols [numAttributes]Column, visible []Attribute, scale float64) {
	c.cols = cols
	c.visible = nil
	gantt := false
	for _, a := range visible {
		if a == AttrGanttChart {
			gantt = true
			continue
		}
		c.visible = append(c.visible, a)
	}
	if gantt {
		c.visible = append(c.visible, AttrGanttChart)
	}
	c.scale = scale
	c.recompute()
}
