package render

import (
	"fmt"
	"strings"
)

// Terminals can't change the user's font. Some fonts lack the symbols the table
// uses, so an ASCII set replaces them at paint time.

type GlyphSet int

const (
	GlyphsUnicode GlyphSet = iota
	GlyphsASCII
)

func ParseGlyphSet(s string) (GlyphSet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unicode", "utf8":
		return GlyphsUnicode, nil
	case "ascii":
		return GlyphsASCII, nil
	default:
		return GlyphsUnicode, fmt.Errorf("unknown glyph set %q (want unicode or ascii)", s)
	}
}

func (g GlyphSet) String() string {
	if g == GlyphsASCII {
		return "ascii"
	}
	return "unicode"
}

var asciiGlyphs = map[rune]rune{
	'▸': '>',
	'▾': 'v',
	'✓': 'x',
	'◼': '#',
	'■': '#',
	'✎': '*',
	'−': '-',
	'│': '|',
	'─': '-',
	'•': '*',
	'→': '>',
}

func (g GlyphSet) rune(r rune) rune {
	if g != GlyphsASCII {
		return r
	}
	if a, ok := asciiGlyphs[r]; ok {
		return a
	}
	return r
}

func (g GlyphSet) vrule() rune { return g.rune('│') }
