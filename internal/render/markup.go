package render

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"

	"planner-cli/internal/editor"
)

type style struct {
	fg        editor.Color
	hasFG     bool
	bold      bool
	italic    bool
	underline bool
}

type tint struct {
	c  editor.Color
	ok bool
}

type glyph struct {
	r  rune
	st style
}

type paragraph struct {
	align editor.Align
	// breaks separates forced lines inside the paragraph.
	lines [][]glyph
}

// parseMarkup reads the small HTML subset the editor produces: p with align,
// b, i, u, font with color, br and character entities.
func parseMarkup(markup string) []paragraph {
	var (
		paras  []paragraph
		cur    *paragraph
		bold   int
		italic int
		under  int
		colors []tint
	)
	open := func(align editor.Align) {
		paras = append(paras, paragraph{align: align, lines: [][]glyph{nil}})
		cur = &paras[len(paras)-1]
	}
	current := func() style {
		st := style{bold: bold > 0, italic: italic > 0, underline: under > 0}
		if n := len(colors); n > 0 {
			st.fg, st.hasFG = colors[n-1].c, colors[n-1].ok
		}
		return st
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or malformed input; keep what was read.
			break
		}
		tok := z.Token()
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			switch tok.Data {
			case "p":
				open(alignOf(attr(tok, "align")))
			case "br":
				if cur == nil {
					open("")
				}
				cur.lines = append(cur.lines, nil)
			case "b", "strong":
				bold++
			case "i", "em":
				italic++
			case "u":
				under++
			case "font":
				t := tint{}
				if n := len(colors); n > 0 {
					t = colors[n-1]
				}
				if c, ok := ParseColor(attr(tok, "color")); ok {
					t = tint{c: c, ok: true}
				}
				colors = append(colors, t)
			}
		case html.EndTagToken:
			switch tok.Data {
			case "p":
				cur = nil
			case "b", "strong":
				bold = max(bold-1, 0)
			case "i", "em":
				italic = max(italic-1, 0)
			case "u":
				under = max(under-1, 0)
			case "font":
				if n := len(colors); n > 0 {
					colors = colors[:n-1]
				}
			}
		case html.TextToken:
			if cur == nil {
				open("")
			}
			st := current()
			last := len(cur.lines) - 1
			for _, r := range tok.Data {
				if r == '\n' || r == '\t' || r == '\r' {
					r = ' '
				}
				cur.lines[last] = append(cur.lines[last], glyph{r: r, st: st})
			}
		}
	}
	return paras
}

// PlainText strips markup, keeping paragraph and line breaks as newlines.
func PlainText(markup string) string {
	var lines []string
	for _, p := range parseMarkup(markup) {
		for _, gs := range p.lines {
			var b strings.Builder
			for _, g := range trimSpace(gs) {
				b.WriteRune(g.r)
			}
			lines = append(lines, b.String())
		}
	}
	return strings.Join(lines, "\n")
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func alignOf(s string) editor.Align {
	switch strings.ToLower(s) {
	case "center":
		return editor.AlignCenter
	case "right":
		return editor.AlignRight
	default:
		return editor.AlignLeft
	}
}

var namedColors = map[string]editor.Color{
	"black":  editor.RGB(0, 0, 0),
	"white":  editor.RGB(255, 255, 255),
	"red":    editor.RGB(200, 0, 0),
	"green":  editor.RGB(0, 140, 0),
	"blue":   editor.RGB(0, 0, 200),
	"yellow": editor.RGB(200, 160, 0),
	"orange": editor.RGB(230, 120, 0),
	"gray":   editor.RGB(128, 128, 128),
	"grey":   editor.RGB(128, 128, 128),
}

// ParseColor accepts #rgb, #rrggbb and a few color names.
func ParseColor(s string) (editor.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if !strings.HasPrefix(s, "#") {
		return editor.Color{}, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return editor.Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return editor.Color{}, false
	}
	return editor.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), true
}

type wrappedLine struct {
	align  editor.Align
	glyphs []glyph
}

func lineWidth(gs []glyph) int {
	w := 0
	for _, g := range gs {
		w += runewidth.RuneWidth(g.r)
	}
	return w
}

// wrap breaks paragraphs into lines of at most cols cells, at spaces when it can.
// Empty paragraphs produce no lines.
func wrap(paras []paragraph, cols int) []wrappedLine {
	cols = max(cols, 1)
	var out []wrappedLine
	for _, p := range paras {
		for _, forced := range p.lines {
			for _, l := range wrapLine(forced, cols) {
				out = append(out, wrappedLine{align: p.align, glyphs: l})
			}
		}
	}
	return out
}

func wrapLine(gs []glyph, cols int) [][]glyph {
	if len(gs) == 0 {
		return nil
	}
	var (
		lines [][]glyph
		line  []glyph
		width int
	)
	flush := func() {
		lines = append(lines, trimSpace(line))
		line, width = nil, 0
	}
	for len(gs) > 0 {
		// Next word, with the spaces that precede it.
		n := 0
		for n < len(gs) && gs[n].r == ' ' {
			n++
		}
		for n < len(gs) && gs[n].r != ' ' {
			n++
		}
		word := gs[:n]
		gs = gs[n:]
		ww := lineWidth(word)
		if width+ww <= cols {
			line = append(line, word...)
			width += ww
			continue
		}
		if width > 0 {
			flush()
			word = trimSpace(word)
			ww = lineWidth(word)
		}
		for ww > cols {
			// Break words longer than a line.
			cut, cw := 0, 0
			for cut < len(word) && cw+runewidth.RuneWidth(word[cut].r) <= cols {
				cw += runewidth.RuneWidth(word[cut].r)
				cut++
			}
			cut = max(cut, 1)
			line = append(line, word[:cut]...)
			flush()
			word = word[cut:]
			ww = lineWidth(word)
		}
		line = append(line, word...)
		width += ww
	}
	if len(line) > 0 {
		flush()
	}
	return lines
}

func trimSpace(gs []glyph) []glyph {
	for len(gs) > 0 && gs[0].r == ' ' {
		gs = gs[1:]
	}
	for len(gs) > 0 && gs[len(gs)-1].r == ' ' {
		gs = gs[:len(gs)-1]
	}
	return gs
}
