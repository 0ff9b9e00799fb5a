// Package render implements the editor's painter on a grid of terminal cells.
//
// Pixel coordinates map to cells through a fixed cell size. Vertically a surface
// is laid out in text lines: the editor's row padding sits above the first line,
// so a row of n text lines occupies exactly n terminal lines.
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"planner-cli/internal/editor"
)

const (
	DefaultCellWidth  = 8
	DefaultLineHeight = 16
)

var (
	DefaultForeground = editor.RGB(20, 20, 20)
	DefaultBackground = editor.RGB(255, 255, 255)
)

type Options struct {
	CellWidth  int
	LineHeight int
	Glyphs     GlyphSet
	// Renderer decides the color profile of String output. Nil uses the default renderer.
	Renderer *lipgloss.Renderer
}

// Painter satisfies editor.Painter.
type Painter struct {
	cw, lh   int
	glyphs   GlyphSet
	renderer *lipgloss.Renderer
}

func NewPainter(opts Options) *Painter {
	if opts.CellWidth <= 0 {
		opts.CellWidth = DefaultCellWidth
	}
	if opts.LineHeight <= 0 {
		opts.LineHeight = DefaultLineHeight
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}
	return &Painter{cw: opts.CellWidth, lh: opts.LineHeight, glyphs: opts.Glyphs, renderer: opts.Renderer}
}

func (p *Painter) CellWidth() int  { return p.cw }
func (p *Painter) LineHeight() int { return p.lh }

func (p *Painter) Renderer() *lipgloss.Renderer { return p.renderer }

// RowHeight is the pixel height of a one-line row.
func (p *Painter) RowHeight() int { return p.lh + 2*editor.RowPadding }

// TextHeight returns the wrapped line count of markup times the line height.
func (p *Painter) TextHeight(markup string, width int) int {
	return len(wrap(parseMarkup(markup), width/p.cw)) * p.lh
}

func (p *Painter) NewSurface(width, height int, bg editor.Color) editor.Surface {
	return p.newSurface(width, height, bg)
}

func (p *Painter) newSurface(width, height int, bg editor.Color) *Surface {
	width, height = max(width, 0), max(height, 0)
	cols := ceilDiv(width, p.cw)
	lines := max(ceilDiv(height-2*editor.RowPadding, p.lh), 1)
	s := &Surface{p: p, width: width, height: height, cols: cols, cells: make([][]Cell, lines)}
	for i := range s.cells {
		row := make([]Cell, cols)
		for j := range row {
			row[j] = Cell{R: ' ', W: 1, BG: bg, FG: DefaultForeground}
		}
		s.cells[i] = row
	}
	return s
}

type Cell struct {
	R rune
	// W is the display width; zero marks the trailing half of a wide rune.
	W         int
	FG, BG    editor.Color
	Bold      bool
	Italic    bool
	Underline bool
}

// Surface satisfies editor.Surface.
type Surface struct {
	p             *Painter
	width, height int
	cols          int
	cells         [][]Cell
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

// Lines is the number of terminal lines the surface occupies.
func (s *Surface) Lines() int { return len(s.cells) }
func (s *Surface) Cols() int  { return s.cols }

func (s *Surface) Cell(col, line int) (Cell, bool) {
	if line < 0 || line >= len(s.cells) || col < 0 || col >= s.cols {
		return Cell{}, false
	}
	return s.cells[line][col], true
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int { return -floorDiv(-a, b) }

func roundDiv(a, b int) int { return floorDiv(2*a+b, 2*b) }

// lineAt maps a surface-local y to a text line.
func (s *Surface) lineAt(y int) int {
	return min(max(floorDiv(y-editor.RowPadding, s.p.lh), 0), len(s.cells)-1)
}

func (s *Surface) lineSpan(y, h int) (int, int) {
	if h <= 0 {
		return 0, -1
	}
	return s.lineAt(y), s.lineAt(y + h - 1)
}

func blend(bg, c editor.Color, opacity float64) editor.Color {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return bg
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-opacity) + float64(b)*opacity + 0.5)
	}
	return editor.RGB(mix(bg.R, c.R), mix(bg.G, c.G), mix(bg.B, c.B))
}

func (s *Surface) Fill(r editor.Rect, c editor.Color, opacity float64) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	c0 := max(roundDiv(r.X, s.p.cw), 0)
	c1 := min(max(roundDiv(r.X+r.W, s.p.cw), c0+1), s.cols)
	l0, l1 := s.lineSpan(r.Y, r.H)
	for l := l0; l <= l1; l++ {
		for col := c0; col < c1; col++ {
			cell := &s.cells[l][col]
			cell.BG = blend(cell.BG, c, opacity)
		}
	}
}

// Text draws markup wrapped to r.W. Lines that do not fit in r.H are dropped.
func (s *Surface) Text(r editor.Rect, markup string) {
	cols := r.W / s.p.cw
	if cols <= 0 || r.H <= 0 {
		return
	}
	x0 := ceilDiv(r.X, s.p.cw)
	maxLines := max(r.H/s.p.lh, 1)
	line := s.lineAt(r.Y)
	for i, wl := range wrap(parseMarkup(markup), cols) {
		if i >= maxLines || line+i >= len(s.cells) {
			break
		}
		w := lineWidth(wl.glyphs)
		x := x0
		switch wl.align {
		case editor.AlignCenter:
			x += (cols - w) / 2
		case editor.AlignRight:
			x += cols - w
		}
		s.put(line+i, x, x0+cols, wl.glyphs)
	}
}

// put writes glyphs on one line from col x, stopping before limit.
func (s *Surface) put(line, x, limit int, gs []glyph) {
	limit = min(limit, s.cols)
	for _, g := range gs {
		r := s.p.glyphs.rune(g.r)
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			return
		}
		if x >= 0 {
			cell := &s.cells[line][x]
			cell.R, cell.W = r, w
			cell.Bold, cell.Italic, cell.Underline = g.st.bold, g.st.italic, g.st.underline
			cell.FG = DefaultForeground
			if g.st.hasFG {
				cell.FG = g.st.fg
			}
			if w == 2 {
				next := &s.cells[line][x+1]
				next.R, next.W = 0, 0
			}
		}
		x += w
	}
}

// VLine draws a rule at full opacity and a tint column otherwise.
func (s *Surface) VLine(x, y0, y1 int, c editor.Color, opacity float64) {
	col := floorDiv(x, s.p.cw)
	if col < 0 || col >= s.cols || y1 <= y0 {
		return
	}
	l0, l1 := s.lineSpan(y0, y1-y0)
	for l := l0; l <= l1; l++ {
		cell := &s.cells[l][col]
		if opacity < 1 {
			cell.BG = blend(cell.BG, c, opacity)
			continue
		}
		s.clearWide(l, col)
		cell.R, cell.W, cell.FG = s.p.glyphs.vrule(), 1, c
	}
}

// HLine underlines the cells of the line containing y.
func (s *Surface) HLine(x0, x1, y int, c editor.Color, opacity float64) {
	if x1 <= x0 {
		return
	}
	l := s.lineAt(y)
	c0 := max(floorDiv(x0, s.p.cw), 0)
	c1 := min(ceilDiv(x1, s.p.cw), s.cols)
	for col := c0; col < c1; col++ {
		s.cells[l][col].Underline = true
	}
}

// clearWide blanks the wide rune that overlaps col.
func (s *Surface) clearWide(line, col int) {
	row := s.cells[line]
	if row[col].W == 2 && col+1 < len(row) {
		row[col+1].R, row[col+1].W = ' ', 1
	}
	if row[col].W == 0 && col > 0 {
		row[col-1].R, row[col-1].W = ' ', 1
	}
}

// Draw copies src with its top-left corner at (x, y). Rows land on whole lines.
func (s *Surface) Draw(src editor.Surface, x, y int) {
	from, ok := src.(*Surface)
	if !ok {
		return
	}
	s.blit(from, roundDiv(x, s.p.cw), roundDiv(y, s.p.lh), 0)
}

// blit copies src lines from skip onward to (col, line).
func (s *Surface) blit(src *Surface, col, line, skip int) {
	c0 := max(col, 0)
	c1 := min(col+src.cols, s.cols)
	if c0 >= c1 {
		return
	}
	for i := skip; i < len(src.cells); i++ {
		l := line + i - skip
		if l < 0 || l >= len(s.cells) {
			continue
		}
		row := s.cells[l]
		// Wide runes cut by the copied span become blanks.
		if row[c0].W == 0 && c0 > 0 {
			row[c0-1].R, row[c0-1].W = ' ', 1
		}
		if c1 < len(row) && row[c1].W == 0 {
			row[c1].R, row[c1].W = ' ', 1
		}
		copy(row[c0:c1], src.cells[i][c0-col:c1-col])
		if row[c0].W == 0 {
			row[c0].R, row[c0].W = ' ', 1
		}
		if row[c1-1].W == 2 {
			row[c1-1].R, row[c1-1].W = ' ', 1
		}
	}
}
