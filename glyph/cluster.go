package glyph

import "github.com/go-text/typesetting/segmenter"

// Clusters splits s into grapheme clusters and returns the leading rune of
// each, so a base letter followed by combining marks occupies one cell.
func Clusters(s string) []rune {
	if s == "" {
		return nil
	}
	var seg segmenter.Segmenter
	seg.Init([]rune(s))

	var out []rune
	iter := seg.GraphemeIterator()
	for iter.Next() {
		g := iter.Grapheme()
		if len(g.Text) > 0 {
			out = append(out, g.Text[0])
		}
	}
	return out
}
