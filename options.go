package flipdisc

import (
	"time"

	"github.com/gogpu/flipdisc/glyph"
)

// DefaultFrameInterval is the tick interval used by Animate and playback
// unless overridden with WithFrameInterval (about 60 Hz).
const DefaultFrameInterval = time.Second / 60

// Option configures a Canvas during creation.
//
// Example:
//
//	canvas, err := flipdisc.New(cfg,
//	    flipdisc.WithTransport(panel),
//	    flipdisc.WithFrameInterval(50*time.Millisecond),
//	)
type Option func(*canvasOptions)

// canvasOptions holds optional configuration for Canvas creation.
type canvasOptions struct {
	transport     Transport
	frameInterval time.Duration
	onError       func(error)
	now           func() time.Time
	seed          uint64
	seeded        bool
	font          glyph.Font
	aspect        AspectCorrection
}

// defaultOptions returns the default canvas options.
func defaultOptions() canvasOptions {
	return canvasOptions{
		transport:     nopTransport{},
		frameInterval: DefaultFrameInterval,
		now:           time.Now,
		font:          glyph.Tiny(),
		aspect:        DefaultAspectCorrection(),
	}
}

// WithTransport sets the collaborator that receives changed frames.
// Without it frames are diffed but dropped.
func WithTransport(t Transport) Option {
	return func(o *canvasOptions) {
		if t != nil {
			o.transport = t
		}
	}
}

// WithFrameInterval sets the delay between animation ticks.
// Non-positive values are ignored.
func WithFrameInterval(d time.Duration) Option {
	return func(o *canvasOptions) {
		if d > 0 {
			o.frameInterval = d
		}
	}
}

// WithErrorHandler sets the function that receives errors returned by
// Animate callbacks. The default logs them at warn level.
func WithErrorHandler(fn func(error)) Option {
	return func(o *canvasOptions) {
		o.onError = fn
	}
}

// WithClock sets the time source whose elapsed time is passed to effects.
func WithClock(now func() time.Time) Option {
	return func(o *canvasOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithSeed makes the random source handed to effects deterministic.
func WithSeed(seed uint64) Option {
	return func(o *canvasOptions) {
		o.seed = seed
		o.seeded = true
	}
}

// WithFont sets the glyph source used by DrawText.
func WithFont(f glyph.Font) Option {
	return func(o *canvasOptions) {
		if f != nil {
			o.font = f
		}
	}
}

// WithAspectCorrection overrides the per-grid aspect ratio constants used
// when fitting images.
func WithAspectCorrection(a AspectCorrection) Option {
	return func(o *canvasOptions) {
		o.aspect = a
	}
}
