package flipdisc

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gogpu/flipdisc/effect"
	"github.com/gogpu/flipdisc/glyph"
)

// Config describes the logical drawing surface and the two target grids.
// All dimensions must be positive and are fixed for the life of a Canvas.
type Config struct {
	// Width and Height are the logical canvas dimensions.
	Width, Height int

	// Vertical is the size of the grid that receives vertical-dominant steps.
	Vertical Size

	// Horizontal is the size of the grid that receives horizontal-dominant
	// steps, text and raw bitmaps.
	Horizontal Size
}

// FillTarget selects which grids a fill writes to.
type FillTarget uint8

const (
	// FillNone draws outlines only.
	FillNone FillTarget = iota
	// FillBoth fills on both grids.
	FillBoth
	// FillHorizontal fills on the horizontal grid only.
	FillHorizontal
	// FillVertical fills on the vertical grid only.
	FillVertical
)

// String returns the fill target name.
func (f FillTarget) String() string {
	switch f {
	case FillNone:
		return "None"
	case FillBoth:
		return "Both"
	case FillHorizontal:
		return "Horizontal"
	case FillVertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

func (f FillTarget) horizontal() bool { return f == FillBoth || f == FillHorizontal }
func (f FillTarget) vertical() bool   { return f == FillBoth || f == FillVertical }

// Canvas is a logical drawing surface rasterized onto two binary grids.
//
// Drawing methods are not synchronized. While Animate, StartRenderLoop or
// PlayAnimation is running, draw from inside the tick callback or wrap the
// calls in Do so they never overlap a tick.
type Canvas struct {
	TransformStack

	width  int
	height int
	vsize  Size
	hsize  Size

	vertical       *Grid
	horizontal     *Grid
	prevVertical   *Grid
	prevHorizontal *Grid

	path     Path
	rotation Rotation
	font     glyph.Font
	aspect   AspectCorrection

	effects    *effect.Pipeline
	compositor *effect.Compositor
	rng        *rand.Rand
	now        func() time.Time
	epoch      time.Time

	transport     Transport
	frameInterval time.Duration
	onError       func(error)

	// mu serializes ticks and Do.
	mu   sync.Mutex
	anim task
	loop task
}

// New creates a canvas for the given configuration.
//
//	canvas, err := flipdisc.New(flipdisc.Config{
//	    Width: 28, Height: 14,
//	    Vertical:   flipdisc.Size{Width: 28, Height: 14},
//	    Horizontal: flipdisc.Size{Width: 28, Height: 14},
//	}, flipdisc.WithTransport(panel))
func New(cfg Config, opts ...Option) (*Canvas, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || !cfg.Vertical.valid() || !cfg.Horizontal.valid() {
		return nil, fmt.Errorf("%w: logical %dx%d, vertical %dx%d, horizontal %dx%d",
			ErrInvalidSize, cfg.Width, cfg.Height,
			cfg.Vertical.Width, cfg.Vertical.Height,
			cfg.Horizontal.Width, cfg.Horizontal.Height)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	seed := options.seed
	if !options.seeded {
		seed = rand.Uint64()
	}

	c := &Canvas{
		TransformStack: NewTransformStack(),
		width:          cfg.Width,
		height:         cfg.Height,
		vsize:          cfg.Vertical,
		hsize:          cfg.Horizontal,
		vertical:       NewGrid(cfg.Vertical.Width, cfg.Vertical.Height),
		horizontal:     NewGrid(cfg.Horizontal.Width, cfg.Horizontal.Height),
		prevVertical:   NewGrid(cfg.Vertical.Width, cfg.Vertical.Height),
		prevHorizontal: NewGrid(cfg.Horizontal.Width, cfg.Horizontal.Height),
		rotation:       IdentityRotation(),
		font:           options.font,
		aspect:         options.aspect,
		effects:        effect.NewPipeline(cfg.Width, cfg.Height),
		rng:            rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:            options.now,
		transport:      options.transport,
		frameInterval:  options.frameInterval,
		onError:        options.onError,
	}
	c.epoch = c.now()
	// Grids that differ from the logical size get no compositor; AddEffect
	// reports the mismatch.
	if comp, err := effect.NewCompositor(c.effects.Layer(), c.vertical, c.horizontal); err == nil {
		c.compositor = comp
	}
	if c.onError == nil {
		c.onError = func(err error) {
			Logger().Warn("flipdisc: animation callback failed", "err", err)
		}
	}
	return c, nil
}

// Width returns the logical canvas width.
func (c *Canvas) Width() int { return c.width }

// Height returns the logical canvas height.
func (c *Canvas) Height() int { return c.height }

// VerticalSize returns the vertical grid dimensions.
func (c *Canvas) VerticalSize() Size { return c.vsize }

// HorizontalSize returns the horizontal grid dimensions.
func (c *Canvas) HorizontalSize() Size { return c.hsize }

// Vertical returns the current vertical grid. It is the live drawing buffer,
// not a copy.
func (c *Canvas) Vertical() *Grid { return c.vertical }

// Horizontal returns the current horizontal grid. It is the live drawing
// buffer, not a copy.
func (c *Canvas) Horizontal() *Grid { return c.horizontal }

// Clear reallocates both grids to all-zero cells and resets the transform
// stack to the identity. The effect layer and registered effects are kept.
func (c *Canvas) Clear() {
	c.vertical = NewGrid(c.vsize.Width, c.vsize.Height)
	c.horizontal = NewGrid(c.hsize.Width, c.hsize.Height)
	c.ResetTransform()
}

// Do runs fn serialized with animation and render ticks. Do must not be
// called from inside a tick callback.
func (c *Canvas) Do(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// mapCell maps one logical coordinate onto a grid axis of n cells.
// Values that cannot be represented as a cell index map to -1.
func mapCell(v float64, logical, n int) int {
	f := math.Floor(v / float64(logical) * float64(n))
	if math.IsNaN(f) || f < -1 || f > float64(math.MaxInt32) {
		return -1
	}
	return int(f)
}

// toHorizontal maps a logical point to horizontal grid cell indices.
func (c *Canvas) toHorizontal(x, y float64) (int, int) {
	return mapCell(x, c.width, c.hsize.Width), mapCell(y, c.height, c.hsize.Height)
}

// toVertical maps a logical point to vertical grid cell indices.
func (c *Canvas) toVertical(x, y float64) (int, int) {
	return mapCell(x, c.width, c.vsize.Width), mapCell(y, c.height, c.vsize.Height)
}

// fillPixel turns on the cells that logical point (px, py) maps to on the
// grids selected by fill.
func (c *Canvas) fillPixel(px, py float64, fill FillTarget) {
	if fill.horizontal() {
		hx, hy := c.toHorizontal(px, py)
		c.horizontal.Set(hx, hy)
	}
	if fill.vertical() {
		vx, vy := c.toVertical(px, py)
		c.vertical.Set(vx, vy)
	}
}
