package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"planner-cli/internal/editor"
)

type placement struct {
	src  *Surface
	x, y int
	seq  int
}

// Frame is the paint target for one screen. Surfaces drawn into it are stacked by
// their y coordinate, each taking as many terminal lines as it has text lines;
// a surface partly covered by the one above loses its covered lines.
type Frame struct {
	p      *Painter
	cols   int
	lines  int
	base   *Surface
	placed []placement

	composed bool
	out      [][]Cell
	origins  []int
}

// NewFrame makes a frame of cols by lines terminal cells.
func (p *Painter) NewFrame(cols, lines int) *Frame {
	cols, lines = max(cols, 0), max(lines, 0)
	base := p.newSurface(cols*p.cw, lines*p.lh+2*editor.RowPadding, DefaultBackground)
	return &Frame{p: p, cols: cols, lines: lines, base: base}
}

// Width is in pixels.
func (f *Frame) Width() int { return f.cols * f.p.cw }

// Height is the pixel height that fills the frame with one-line rows.
func (f *Frame) Height() int { return f.lines * f.p.RowHeight() }

func (f *Frame) Fill(r editor.Rect, c editor.Color, opacity float64) {
	f.composed = false
	f.base.Fill(r, c, opacity)
}

func (f *Frame) Text(r editor.Rect, markup string) {
	f.composed = false
	f.base.Text(r, markup)
}

func (f *Frame) VLine(x, y0, y1 int, c editor.Color, opacity float64) {
	f.composed = false
	f.base.VLine(x, y0, y1, c, opacity)
}

func (f *Frame) HLine(x0, x1, y int, c editor.Color, opacity float64) {
	f.composed = false
	f.base.HLine(x0, x1, y, c, opacity)
}

func (f *Frame) Draw(src editor.Surface, x, y int) {
	s, ok := src.(*Surface)
	if !ok {
		return
	}
	f.composed = false
	f.placed = append(f.placed, placement{src: s, x: x, y: y, seq: len(f.placed)})
}

func (f *Frame) compose() {
	if f.composed {
		return
	}
	f.composed = true
	canvas := f.p.newSurface(f.cols*f.p.cw, f.lines*f.p.lh+2*editor.RowPadding, DefaultBackground)
	canvas.blit(f.base, 0, 0, 0)
	canvas.cells = canvas.cells[:min(len(canvas.cells), f.lines)]
	f.origins = f.origins[:0]

	placed := append([]placement(nil), f.placed...)
	sort.SliceStable(placed, func(i, j int) bool { return placed[i].y < placed[j].y })

	cursor := 0
	covered := 0
	for i := 0; i < len(placed); {
		y := placed[i].y
		j, lines, height := i, 0, 0
		for ; j < len(placed) && placed[j].y == y; j++ {
			lines = max(lines, placed[j].src.Lines())
			height = max(height, placed[j].src.Height())
		}
		skip := 0
		if i > 0 && covered > y {
			skip = min(max(ceilDiv(covered-y-editor.RowPadding, f.p.lh), 0), lines)
		}
		take := min(lines-skip, f.lines-cursor)
		if take > 0 {
			for _, pl := range placed[i:j] {
				canvas.blit(pl.src, roundDiv(pl.x, f.p.cw), cursor, skip)
			}
			for k := 0; k < take; k++ {
				f.origins = append(f.origins, y+editor.RowPadding+(skip+k)*f.p.lh+f.p.lh/2)
			}
			cursor += take
		}
		covered = max(covered, y+height)
		i = j
	}
	f.out = canvas.cells
}

// PixelAt maps a terminal cell to the pixel the editor painted there. It fails
// below the last painted line.
func (f *Frame) PixelAt(col, line int) (x, y int, ok bool) {
	f.compose()
	if line < 0 || line >= len(f.origins) || col < 0 || col >= f.cols {
		return 0, 0, false
	}
	return col*f.p.cw + f.p.cw/2, f.origins[line], true
}

// Cell returns the composed cell at (col, line).
func (f *Frame) Cell(col, line int) (Cell, bool) {
	f.compose()
	if line < 0 || line >= len(f.out) || col < 0 || col >= f.cols {
		return Cell{}, false
	}
	return f.out[line][col], true
}

// PlainLines returns the frame text without styling.
func (f *Frame) PlainLines() []string {
	f.compose()
	out := make([]string, len(f.out))
	for i, row := range f.out {
		var b strings.Builder
		for _, c := range row {
			if c.W > 0 {
				b.WriteRune(c.R)
			}
		}
		out[i] = b.String()
	}
	return out
}

// Lines returns the styled frame lines for the painter's renderer.
func (f *Frame) Lines() []string {
	f.compose()
	out := make([]string, len(f.out))
	for i, row := range f.out {
		out[i] = f.p.renderLine(row)
	}
	return out
}

func (f *Frame) String() string {
	return strings.Join(f.Lines(), "\n")
}

func hexColor(c editor.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// renderLine groups runs of equally styled cells into lipgloss styles.
func (p *Painter) renderLine(row []Cell) string {
	var (
		b     strings.Builder
		run   strings.Builder
		first Cell
		open  bool
	)
	same := func(a, c Cell) bool {
		return a.FG == c.FG && a.BG == c.BG && a.Bold == c.Bold && a.Italic == c.Italic && a.Underline == c.Underline
	}
	flush := func() {
		if !open {
			return
		}
		st := p.renderer.NewStyle().
			Foreground(hexColor(first.FG)).
			Background(hexColor(first.BG)).
			Bold(first.Bold).
			Italic(first.Italic).
			Underline(first.Underline)
		b.WriteString(st.Render(run.String()))
		run.Reset()
		open = false
	}
	for _, c := range row {
		if c.W == 0 {
			continue
		}
		if open && !same(first, c) {
			flush()
		}
		if !open {
			first, open = c, true
		}
		run.WriteRune(c.R)
	}
	flush()
	return b.String()
}
