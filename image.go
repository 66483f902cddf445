package flipdisc

import (
	"context"
	"fmt"
	"image"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/flipdisc/internal/dither"
)

// Dither method names accepted by DitherOptions.Method.
const (
	DitherFloydSteinberg = dither.FloydSteinberg
	DitherBayer          = dither.Bayer
	// DitherThreshold is not a dithering method; any unrecognised name
	// thresholds the grayscale image at one half.
	DitherThreshold = "threshold"
)

// Raster is a decoded still image: Width×Height pixels of non-premultiplied
// RGBA, four bytes per pixel, row-major.
type Raster struct {
	Width  int
	Height int
	Pix    []byte
}

// RasterFromImage copies img into a Raster.
func RasterFromImage(img image.Image) *Raster {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return &Raster{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix}
}

// Image returns the raster as an image sharing its pixels.
func (r *Raster) Image() (image.Image, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil raster", ErrInvalidRaster)
	}
	if r.Width <= 0 || r.Height <= 0 || len(r.Pix) != 4*r.Width*r.Height {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrInvalidRaster, r.Width, r.Height, len(r.Pix))
	}
	return &image.NRGBA{
		Pix:    r.Pix,
		Stride: 4 * r.Width,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}, nil
}

// Frame is one image of an animated sequence and how long it is shown.
type Frame struct {
	Raster *Raster
	Delay  time.Duration
}

// Animation is an ordered sequence of frames.
type Animation struct {
	Frames []Frame
}

// Decoded is the result of loading a resource: exactly one of Still and
// Animation is set.
type Decoded struct {
	Still     *Raster
	Animation *Animation
}

// Source retrieves and decodes images. Load blocks until the resource is
// decoded or fails; errors are returned to the caller unchanged.
type Source interface {
	Load(ctx context.Context, resource string) (*Decoded, error)
}

// AspectCorrection holds the factors applied to the secondary axis of
// fitted images, per grid and image orientation, compensating for the
// different cell shapes of the two panels.
type AspectCorrection struct {
	HorizontalLandscape float64
	HorizontalPortrait  float64
	VerticalLandscape   float64
	VerticalPortrait    float64
}

// DefaultAspectCorrection returns the factors for the reference panel
// geometry.
func DefaultAspectCorrection() AspectCorrection {
	return AspectCorrection{
		HorizontalLandscape: 12.0 / 7,
		HorizontalPortrait:  7.0 / 12,
		VerticalLandscape:   8.0 / 14,
		VerticalPortrait:    14.0 / 8,
	}
}

func (a AspectCorrection) horizontal(landscape bool) float64 {
	if landscape {
		return a.HorizontalLandscape
	}
	return a.HorizontalPortrait
}

func (a AspectCorrection) vertical(landscape bool) float64 {
	if landscape {
		return a.VerticalLandscape
	}
	return a.VerticalPortrait
}

// DitherOptions selects how images are converted to binary cells.
type DitherOptions struct {
	// Method is DitherFloydSteinberg (the default when empty), DitherBayer,
	// or any other name for a plain threshold.
	Method string

	// Scale multiplies the size the image is resampled to when fitted to
	// the canvas, before it is resized to each grid. Values below 1 sample
	// the image more coarsely; 0 and negative values reduce it to a single
	// pixel. The grid target sizes do not depend on Scale.
	Scale float64
}

// DefaultDitherOptions returns Floyd–Steinberg dithering at scale 1.
func DefaultDitherOptions() DitherOptions {
	return DitherOptions{Method: DitherFloydSteinberg, Scale: 1}
}

func (o DitherOptions) method() string {
	if o.Method == "" {
		return DitherFloydSteinberg
	}
	return o.Method
}

func (o DitherOptions) scale() float64 {
	if !(o.Scale > 0) {
		return 0
	}
	return o.Scale
}

// ditherRaster converts r to one centred bitmap per grid.
func (c *Canvas) ditherRaster(r *Raster, opts DitherOptions) (v, h placed, err error) {
	img, err := r.Image()
	if err != nil {
		return placed{}, placed{}, err
	}
	s := opts.scale()
	fw, fh, landscape := dither.Fit(r.Width, r.Height, c.width, c.height, s)
	fitted := dither.Resize(img, fw, fh)

	hw, hh := dither.TargetSize(c.hsize.Width, c.hsize.Height, r.Width, r.Height, landscape, c.aspect.horizontal(landscape))
	vw, vh := dither.TargetSize(c.vsize.Width, c.vsize.Height, r.Width, r.Height, landscape, c.aspect.vertical(landscape))
	Logger().Debug("flipdisc: dithering image",
		"source", fmt.Sprintf("%dx%d", r.Width, r.Height),
		"fit", fmt.Sprintf("%dx%d", fw, fh),
		"horizontal", fmt.Sprintf("%dx%d", hw, hh),
		"vertical", fmt.Sprintf("%dx%d", vw, vh),
		"method", opts.method())

	h = place(dither.Process(fitted, hw, hh, opts.method()), c.hsize)
	v = place(dither.Process(fitted, vw, vh, opts.method()), c.vsize)
	return v, h, nil
}

// placed is a bitmap positioned in a grid.
type placed struct {
	bits   *dither.Bitmap
	dx, dy int
}

func place(b *dither.Bitmap, grid Size) placed {
	dx, dy := dither.Offset(grid.Width, grid.Height, b.Width, b.Height)
	return placed{bits: b, dx: dx, dy: dy}
}

// blit writes every bit of p, set or not, into g. Content outside g is
// clipped.
func (p placed) blit(g *Grid) {
	for y := 0; y < p.bits.Height; y++ {
		for x := 0; x < p.bits.Width; x++ {
			g.Put(x+p.dx, y+p.dy, p.bits.At(x, y))
		}
	}
}

// DrawImage dithers r onto both grids. The image is fitted to the logical
// canvas, resampled per grid with the aspect correction, dithered, and
// centred; the covered area of each grid is overwritten.
func (c *Canvas) DrawImage(r *Raster, opts DitherOptions) error {
	v, h, err := c.ditherRaster(r, opts)
	if err != nil {
		return err
	}
	v.blit(c.vertical)
	h.blit(c.horizontal)
	return nil
}

// LoadImage loads resource from src and draws it with DrawImage. For an
// animated resource the first frame is drawn.
func (c *Canvas) LoadImage(ctx context.Context, src Source, resource string, opts DitherOptions) error {
	d, err := src.Load(ctx, resource)
	if err != nil {
		return err
	}
	r := d.Still
	if r == nil && d.Animation != nil && len(d.Animation.Frames) > 0 {
		r = d.Animation.Frames[0].Raster
	}
	return c.DrawImage(r, opts)
}

// LoadAnimation loads resource from src and plays it with PlayAnimation. A
// still image plays as a single frame shown for one frame interval.
func (c *Canvas) LoadAnimation(ctx context.Context, src Source, resource string, opts DitherOptions, playback PlaybackOptions) error {
	d, err := src.Load(ctx, resource)
	if err != nil {
		return err
	}
	anim := d.Animation
	if anim == nil {
		anim = &Animation{Frames: []Frame{{Raster: d.Still, Delay: c.frameInterval}}}
	}
	return c.PlayAnimation(anim, opts, playback)
}

// PlaybackOptions controls PlayAnimation.
type PlaybackOptions struct {
	// Loop restarts from the first frame after the last one. Without it
	// playback stops after showing the last frame.
	Loop bool

	// Interval is the delay between frames. Zero means the canvas frame
	// interval.
	Interval time.Duration

	// UseFrameDelays shows each frame for its own Delay instead of Interval.
	UseFrameDelays bool
}

// framePair is one dithered animation frame for both grids.
type framePair struct {
	vertical   *Grid
	horizontal *Grid
	delay      time.Duration
}

// DitherAnimation dithers every frame with a positive delay onto fresh
// grids. Frames are processed in parallel. It returns ErrEmptyAnimation
// when no frame remains.
func (c *Canvas) DitherAnimation(anim *Animation, opts DitherOptions) (vertical, horizontal []*Grid, err error) {
	pairs, err := c.ditherFrames(anim, opts)
	if err != nil {
		return nil, nil, err
	}
	vertical = make([]*Grid, len(pairs))
	horizontal = make([]*Grid, len(pairs))
	for i, p := range pairs {
		vertical[i], horizontal[i] = p.vertical, p.horizontal
	}
	return vertical, horizontal, nil
}

func (c *Canvas) ditherFrames(anim *Animation, opts DitherOptions) ([]framePair, error) {
	var frames []Frame
	if anim != nil {
		for _, f := range anim.Frames {
			if f.Delay > 0 {
				frames = append(frames, f)
			}
		}
	}
	if len(frames) == 0 {
		return nil, ErrEmptyAnimation
	}

	pairs := make([]framePair, len(frames))
	var g errgroup.Group
	for i, f := range frames {
		g.Go(func() error {
			v, h, err := c.ditherRaster(f.Raster, opts)
			if err != nil {
				return fmt.Errorf("flipdisc: frame %d: %w", i, err)
			}
			p := framePair{
				vertical:   NewGrid(c.vsize.Width, c.vsize.Height),
				horizontal: NewGrid(c.hsize.Width, c.hsize.Height),
				delay:      f.Delay,
			}
			v.blit(p.vertical)
			h.blit(p.horizontal)
			pairs[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// PlayAnimation dithers anim and plays it, rendering one frame pair per
// tick through the normal render pass, so effects still apply. Frames with
// a zero delay are dropped. Playback replaces any running animation and is
// stopped with StopAnimation.
func (c *Canvas) PlayAnimation(anim *Animation, opts DitherOptions, playback PlaybackOptions) error {
	pairs, err := c.ditherFrames(anim, opts)
	if err != nil {
		return err
	}
	interval := playback.Interval
	if interval <= 0 {
		interval = c.frameInterval
	}

	gen := c.anim.begin()
	Logger().Info("flipdisc: playback started", "frames", len(pairs), "loop", playback.Loop)
	c.anim.schedule(gen, 0, func() { c.playTick(gen, pairs, 0, interval, playback) })
	return nil
}

func (c *Canvas) playTick(gen uint64, pairs []framePair, i int, interval time.Duration, playback PlaybackOptions) {
	c.mu.Lock()
	if !c.anim.valid(gen) {
		c.mu.Unlock()
		return
	}
	c.renderFrom(pairs[i].vertical, pairs[i].horizontal)
	c.mu.Unlock()

	next := i + 1
	if next == len(pairs) {
		if !playback.Loop {
			c.anim.finish(gen)
			Logger().Info("flipdisc: playback finished", "frames", len(pairs))
			return
		}
		next = 0
	}
	delay := interval
	if playback.UseFrameDelays {
		delay = pairs[i].delay
	}
	c.anim.schedule(gen, delay, func() { c.playTick(gen, pairs, next, interval, playback) })
}
