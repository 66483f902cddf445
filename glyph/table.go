package glyph

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Table is a fixed bitmap font. Lookups that miss fall back to the upper
// case form of the rune, so tables that only define capitals accept any case.
type Table struct {
	advance int
	glyphs  map[rune]Bitmap
}

// NewTable builds a table from glyph rows in ParseBitmap syntax.
func NewTable(advance int, glyphs map[rune][]string) (*Table, error) {
	t := &Table{advance: advance, glyphs: make(map[rune]Bitmap, len(glyphs))}
	for r, rows := range glyphs {
		b, err := ParseBitmap(rows...)
		if err != nil {
			return nil, err
		}
		t.glyphs[r] = b
	}
	return t, nil
}

// Advance implements Font.
func (t *Table) Advance() int {
	return t.advance
}

// Glyph implements Font.
func (t *Table) Glyph(r rune) (Bitmap, bool) {
	if b, ok := t.glyphs[r]; ok {
		return b, true
	}
	upper := cases.Upper(language.Und).String(string(r))
	if u, size := utf8.DecodeRuneInString(upper); size == len(upper) && u != r {
		b, ok := t.glyphs[u]
		return b, ok
	}
	return Bitmap{}, false
}

var tiny *Table

// Tiny returns the built-in 3×5 font with a 4 cell advance. It covers A–Z,
// 0–9, space and common punctuation.
func Tiny() *Table {
	return tiny
}

func init() {
	t, err := NewTable(4, tinyRows)
	if err != nil {
		panic(err)
	}
	tiny = t
}

var tinyRows = map[rune][]string{
	'A': {".#.", "#.#", "###", "#.#", "#.#"},
	'B': {"##.", "#.#", "##.", "#.#", "##."},
	'C': {".##", "#..", "#..", "#..", ".##"},
	'D': {"##.", "#.#", "#.#", "#.#", "##."},
	'E': {"###", "#..", "##.", "#..", "###"},
	'F': {"###", "#..", "##.", "#..", "#.."},
	'G': {".##", "#..", "#.#", "#.#", ".##"},
	'H': {"#.#", "#.#", "###", "#.#", "#.#"},
	'I': {"###", ".#.", ".#.", ".#.", "###"},
	'J': {"..#", "..#", "..#", "#.#", ".#."},
	'K': {"#.#", "#.#", "##.", "#.#", "#.#"},
	'L': {"#..", "#..", "#..", "#..", "###"},
	'M': {"#.#", "###", "###", "#.#", "#.#"},
	'N': {"##.", "#.#", "#.#", "#.#", "#.#"},
	'O': {".#.", "#.#", "#.#", "#.#", ".#."},
	'P': {"##.", "#.#", "##.", "#..", "#.."},
	'Q': {".#.", "#.#", "#.#", "##.", ".##"},
	'R': {"##.", "#.#", "##.", "#.#", "#.#"},
	'S': {".##", "#..", ".#.", "..#", "##."},
	'T': {"###", ".#.", ".#.", ".#.", ".#."},
	'U': {"#.#", "#.#", "#.#", "#.#", "###"},
	'V': {"#.#", "#.#", "#.#", "#.#", ".#."},
	'W': {"#.#", "#.#", "###", "###", "#.#"},
	'X': {"#.#", "#.#", ".#.", "#.#", "#.#"},
	'Y': {"#.#", "#.#", ".#.", ".#.", ".#."},
	'Z': {"###", "..#", ".#.", "#..", "###"},
	'0': {"###", "#.#", "#.#", "#.#", "###"},
	'1': {".#.", "##.", ".#.", ".#.", "###"},
	'2': {"##.", "..#", ".#.", "#..", "###"},
	'3': {"##.", "..#", ".#.", "..#", "##."},
	'4': {"#.#", "#.#", "###", "..#", "..#"},
	'5': {"###", "#..", "##.", "..#", "##."},
	'6': {".##", "#..", "###", "#.#", "###"},
	'7': {"###", "..#", ".#.", ".#.", ".#."},
	'8': {"###", "#.#", "###", "#.#", "###"},
	'9': {"###", "#.#", "###", "..#", "##."},
	' ': {"...", "...", "...", "...", "..."},
	'.': {"...", "...", "...", "...", ".#."},
	',': {"...", "...", "...", ".#.", "#.."},
	':': {"...", ".#.", "...", ".#.", "..."},
	'!': {".#.", ".#.", ".#.", "...", ".#."},
	'?': {"##.", "..#", ".#.", "...", ".#."},
	'-': {"...", "...", "###", "...", "..."},
	'+': {"...", ".#.", "###", ".#.", "..."},
	'=': {"...", "###", "...", "###", "..."},
	'/': {"..#", "..#", ".#.", "#..", "#.."},
	'%': {"#.#", "..#", ".#.", "#..", "#.#"},
	'*': {"#.#", ".#.", "#.#", "...", "..."},
	'(': {"..#", ".#.", ".#.", ".#.", "..#"},
	')': {"#..", ".#.", ".#.", ".#.", "#.."},
	'\'': {".#.", ".#.", "...", "...", "..."},
}
