package source

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/gogpu/flipdisc"
)

// gifDelayUnit is the unit of GIF frame delays.
const gifDelayUnit = 10 * time.Millisecond

// decodeGIF decodes every frame of a GIF onto a full logical-screen canvas,
// honouring each frame's disposal method, so frames that only patch part of
// the screen still yield complete images.
func decodeGIF(r io.Reader) (*flipdisc.Decoded, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode GIF: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, ErrEmptyData
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	if len(g.Image) == 1 {
		canvas := image.NewNRGBA(bounds)
		draw.Draw(canvas, g.Image[0].Bounds(), g.Image[0], g.Image[0].Bounds().Min, draw.Over)
		return &flipdisc.Decoded{Still: flipdisc.RasterFromImage(canvas)}, nil
	}

	canvas := image.NewNRGBA(bounds)
	anim := &flipdisc.Animation{Frames: make([]flipdisc.Frame, 0, len(g.Image))}
	for i, frame := range g.Image {
		var previous *image.NRGBA
		disposal := disposalAt(g, i)
		if disposal == gif.DisposalPrevious {
			previous = cloneNRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		anim.Frames = append(anim.Frames, flipdisc.Frame{
			Raster: flipdisc.RasterFromImage(canvas),
			Delay:  time.Duration(delayAt(g, i)) * gifDelayUnit,
		})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	flipdisc.Logger().Debug("source: decoded GIF", "frames", len(anim.Frames),
		"width", bounds.Dx(), "height", bounds.Dy())
	return &flipdisc.Decoded{Animation: anim}, nil
}

func disposalAt(g *gif.GIF, i int) byte {
	if i < len(g.Disposal) {
		return g.Disposal[i]
	}
	return 0
}

func delayAt(g *gif.GIF, i int) int {
	if i < len(g.Delay) {
		return g.Delay[i]
	}
	return 0
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
