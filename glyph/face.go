package glyph

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/flipdisc/internal/cache"
)

// coverageThreshold is the alpha at or above which a rasterized face pixel
// becomes a set bit.
const coverageThreshold = 0x80

// faceCacheSize bounds the number of rasterized glyphs kept per face.
const faceCacheSize = 512

// FaceFont rasterizes glyphs from a font.Face and caches the most recently
// used thresholded bitmaps. It is safe for concurrent use.
type FaceFont struct {
	face    font.Face
	advance int
	ascent  int
	height  int

	cache *cache.LRU[rune, faceGlyph]
}

type faceGlyph struct {
	bitmap Bitmap
	ok     bool
}

// FromFace wraps face as a Font. The advance is the width of "M", so
// proportional faces are drawn monospaced.
//
//	canvas, _ := flipdisc.New(cfg, flipdisc.WithFont(glyph.FromFace(basicfont.Face7x13)))
func FromFace(face font.Face) *FaceFont {
	m := face.Metrics()
	return &FaceFont{
		face:    face,
		advance: font.MeasureString(face, "M").Ceil(),
		ascent:  m.Ascent.Ceil(),
		height:  m.Height.Ceil(),
		cache:   cache.New[rune, faceGlyph](faceCacheSize),
	}
}

// Advance implements Font.
func (f *FaceFont) Advance() int {
	return f.advance
}

// Glyph implements Font.
func (f *FaceFont) Glyph(r rune) (Bitmap, bool) {
	g := f.cache.GetOrCreate(r, func() faceGlyph { return f.render(r) })
	return g.bitmap, g.ok
}

func (f *FaceFont) render(r rune) faceGlyph {
	if _, _, _, _, ok := f.face.Glyph(fixed.Point26_6{}, r); !ok {
		return faceGlyph{}
	}
	adv, ok := f.face.GlyphAdvance(r)
	if !ok {
		return faceGlyph{}
	}
	w := max(adv.Ceil(), 1)
	h := max(f.height, 1)

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.P(0, f.ascent),
	}
	d.DrawString(string(r))

	b := NewBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if dst.AlphaAt(x, y).A >= coverageThreshold {
				b.set(x, y)
			}
		}
	}
	return faceGlyph{bitmap: b, ok: true}
}
