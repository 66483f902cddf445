// Package dither converts color images to binary bitmaps: bilinear
// resampling, grayscale conversion, error-diffusion or ordered dithering and
// thresholding.
package dither

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// maxSide bounds every computed content dimension.
const maxSide = 1 << 14

// Method names.
const (
	FloydSteinberg = "floyd-steinberg"
	Bayer          = "bayer"
)

// Field is a row-major grayscale buffer with values nominally in [0, 1].
type Field struct {
	Width  int
	Height int
	V      []float64
}

// Bitmap is a row-major binary buffer; every value is 0 or 1.
type Bitmap struct {
	Width  int
	Height int
	Bits   []uint8
}

// At returns the bit at (x, y), or 0 outside the bitmap.
func (b *Bitmap) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.Bits[y*b.Width+x]
}

// Grayscale converts img to a field of (R+G+B)/(3·255) values computed on
// non-premultiplied 8-bit channels. Alpha is ignored.
func Grayscale(img image.Image) *Field {
	b := img.Bounds()
	f := &Field{Width: b.Dx(), Height: b.Dy(), V: make([]float64, b.Dx()*b.Dy())}
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < f.Height; y++ {
			row := nrgba.Pix[nrgba.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < f.Width; x++ {
				p := row[x*4 : x*4+3 : x*4+3]
				f.V[y*f.Width+x] = float64(int(p[0])+int(p[1])+int(p[2])) / (3 * 255)
			}
		}
		return f
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			f.V[y*f.Width+x] = float64(int(c.R)+int(c.G)+int(c.B)) / (3 * 255)
		}
	}
	return f
}

// DiffuseFloydSteinberg dithers f in place with Floyd–Steinberg error
// diffusion in raster order, leaving every value 0 or 1.
func DiffuseFloydSteinberg(f *Field) {
	w, h := f.Width, f.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			old := f.V[i]
			var v float64
			if old > 0.5 {
				v = 1
			}
			f.V[i] = v
			e := old - v
			if x+1 < w {
				f.V[i+1] += e * 7 / 16
			}
			if y+1 < h {
				if x > 0 {
					f.V[i+w-1] += e * 3 / 16
				}
				f.V[i+w] += e * 5 / 16
				if x+1 < w {
					f.V[i+w+1] += e * 1 / 16
				}
			}
		}
	}
}

var bayer4 = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// OrderedBayer dithers f in place against a 4×4 Bayer threshold matrix.
func OrderedBayer(f *Field) {
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			i := y*f.Width + x
			if f.V[i] > bayer4[y%4][x%4]/16 {
				f.V[i] = 1
			} else {
				f.V[i] = 0
			}
		}
	}
}

// Apply dithers f in place with the named method. Unknown names leave f
// unchanged. It reports whether the name was recognised.
func Apply(method string, f *Field) bool {
	switch method {
	case FloydSteinberg:
		DiffuseFloydSteinberg(f)
	case Bayer:
		OrderedBayer(f)
	default:
		return false
	}
	return true
}

// Threshold maps values strictly above one half to 1.
func Threshold(f *Field) *Bitmap {
	b := &Bitmap{Width: f.Width, Height: f.Height, Bits: make([]uint8, len(f.V))}
	for i, v := range f.V {
		if v > 0.5 {
			b.Bits[i] = 1
		}
	}
	return b
}

// Resize scales src to exactly w×h with bilinear interpolation.
func Resize(src image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, max(1, w), max(1, h)))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Process resizes img to w×h, converts it to grayscale, dithers it with the
// named method and thresholds the result.
func Process(img image.Image, w, h int, method string) *Bitmap {
	f := Grayscale(Resize(img, w, h))
	Apply(method, f)
	return Threshold(f)
}

// Fit returns the size of an imgW×imgH image scaled to fit a canvasW×canvasH
// box, multiplied by scale. Each dimension is at least 1. landscape reports
// imgW >= imgH.
func Fit(imgW, imgH, canvasW, canvasH int, scale float64) (w, h int, landscape bool) {
	iw, ih := float64(imgW), float64(imgH)
	var fit float64
	if iw/ih > float64(canvasW)/float64(canvasH) {
		fit = float64(canvasW) / iw
	} else {
		fit = float64(canvasH) / ih
	}
	s := fit * scale
	return atLeastOne(iw * s), atLeastOne(ih * s), imgW >= imgH
}

// TargetSize returns the content size for a gridW×gridH grid. A landscape
// image spans the grid width and a portrait image the grid height; the
// other side follows the image ratio times the aspect correction a.
func TargetSize(gridW, gridH, imgW, imgH int, landscape bool, a float64) (w, h int) {
	if landscape {
		gw := float64(gridW)
		return atLeastOne(gw), atLeastOne(gw * float64(imgH) / float64(imgW) * a)
	}
	gh := float64(gridH)
	return atLeastOne(gh * float64(imgW) / float64(imgH) * a), atLeastOne(gh)
}

// Offset returns the top-left position that centres content of the given
// size in a frame, floor((frame−content)/2) per axis. Offsets are negative
// when the content is larger than the frame.
func Offset(frameW, frameH, contentW, contentH int) (x, y int) {
	return floorHalf(frameW - contentW), floorHalf(frameH - contentH)
}

func floorHalf(v int) int {
	return int(math.Floor(float64(v) / 2))
}

func atLeastOne(v float64) int {
	r := math.Floor(v + 0.5)
	if math.IsNaN(r) || r < 1 {
		return 1
	}
	if r > maxSide {
		return maxSide
	}
	return int(r)
}
