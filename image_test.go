package flipdisc

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
	"time"
)

func solidRaster(w, h int, v uint8) *Raster {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 0xff})
		}
	}
	return RasterFromImage(img)
}

func TestDrawImageFitsAndCentres(t *testing.T) {
	c := newTestCanvas(t)
	if err := c.DrawImage(solidRaster(4, 2, 0xff), DefaultDitherOptions()); err != nil {
		t.Fatalf("DrawImage: %v", err)
	}
	// Horizontal: 28 wide, 28·(2/4)·(12/7) = 24 tall, cropped to the grid.
	if n := c.Horizontal().Count(); n != 28*14 {
		t.Errorf("horizontal lit %d cells, want %d", n, 28*14)
	}
	// Vertical: 28 wide, 28·(2/4)·(8/14) = 8 tall, centred at row 3.
	if n := c.Vertical().Count(); n != 28*8 {
		t.Errorf("vertical lit %d cells, want %d", n, 28*8)
	}
	if c.Vertical().Get(0, 2) != 0 || c.Vertical().Get(0, 3) != 1 || c.Vertical().Get(27, 10) != 1 || c.Vertical().Get(0, 11) != 0 {
		t.Error("vertical content not centred on rows 3..10")
	}
}

func TestDrawImageAspectOverride(t *testing.T) {
	c := newTestCanvas(t, WithAspectCorrection(AspectCorrection{1, 1, 1, 1}))
	if err := c.DrawImage(solidRaster(4, 2, 0xff), DitherOptions{Method: DitherBayer}); err != nil {
		t.Fatal(err)
	}
	if n := c.Vertical().Count(); n != 28*14 {
		t.Errorf("vertical lit %d cells, want %d", n, 28*14)
	}
}

func TestDrawImageOverwritesCoveredArea(t *testing.T) {
	c := newTestCanvas(t)
	c.Vertical().Set(5, 5)
	c.Vertical().Set(5, 0)
	if err := c.DrawImage(solidRaster(4, 2, 0), DitherOptions{Method: "none"}); err != nil {
		t.Fatal(err)
	}
	if c.Vertical().Get(5, 5) != 0 {
		t.Error("black image did not clear a covered cell")
	}
	if c.Vertical().Get(5, 0) != 1 {
		t.Error("image cleared a cell outside its area")
	}
}

func TestDrawImageInvalidRaster(t *testing.T) {
	c := newTestCanvas(t)
	tests := []*Raster{
		nil,
		{Width: 2, Height: 2, Pix: make([]byte, 3)},
		{Width: 0, Height: 2},
	}
	for _, r := range tests {
		if err := c.DrawImage(r, DitherOptions{}); !errors.Is(err, ErrInvalidRaster) {
			t.Errorf("DrawImage(%v) error = %v, want ErrInvalidRaster", r, err)
		}
	}
}

func TestDitherOptionsDefaults(t *testing.T) {
	if got := (DitherOptions{}).method(); got != DitherFloydSteinberg {
		t.Errorf("default method = %q", got)
	}
	if d := DefaultDitherOptions(); d.Scale != 1 || d.method() != DitherFloydSteinberg {
		t.Errorf("DefaultDitherOptions() = %+v", d)
	}
	tests := []struct{ in, want float64 }{{0, 0}, {-3, 0}, {math.NaN(), 0}, {2.5, 2.5}}
	for _, tt := range tests {
		if got := (DitherOptions{Scale: tt.in}).scale(); got != tt.want {
			t.Errorf("scale(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// Scale only changes the resolution the image is sampled at; the area it
// covers on each grid comes from the grid size and aspect correction.
func TestDrawImageScaleKeepsTargetSize(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
	}{
		{"one", 1},
		{"half", 0.5},
		{"double", 2},
		{"zero", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCanvas(t, WithAspectCorrection(AspectCorrection{1, 1, 1, 1}))
			opts := DitherOptions{Method: DitherThreshold, Scale: tt.scale}
			if err := c.DrawImage(solidRaster(100, 50, 0xff), opts); err != nil {
				t.Fatal(err)
			}
			if n := c.Horizontal().Count(); n != 28*14 {
				t.Errorf("horizontal lit %d cells, want %d", n, 28*14)
			}
			if n := c.Vertical().Count(); n != 28*14 {
				t.Errorf("vertical lit %d cells, want %d", n, 28*14)
			}
		})
	}
}

func TestDitherAnimationDropsZeroDelay(t *testing.T) {
	c := newTestCanvas(t)
	anim := &Animation{Frames: []Frame{
		{Raster: solidRaster(4, 2, 0xff), Delay: 10 * time.Millisecond},
		{Raster: solidRaster(4, 2, 0xff), Delay: 0},
		{Raster: solidRaster(4, 2, 0), Delay: 10 * time.Millisecond},
	}}
	v, h, err := c.DitherAnimation(anim, DitherOptions{})
	if err != nil {
		t.Fatalf("DitherAnimation: %v", err)
	}
	if len(v) != 2 || len(h) != 2 {
		t.Fatalf("got %d/%d frames, want 2", len(v), len(h))
	}
	if h[0].Count() == 0 || h[1].Count() != 0 {
		t.Error("frames out of order or mis-dithered")
	}

	_, _, err = c.DitherAnimation(&Animation{Frames: []Frame{{Raster: solidRaster(1, 1, 0)}}}, DitherOptions{})
	if !errors.Is(err, ErrEmptyAnimation) {
		t.Errorf("all-zero delays error = %v, want ErrEmptyAnimation", err)
	}
	if err := c.PlayAnimation(nil, DitherOptions{}, PlaybackOptions{}); !errors.Is(err, ErrEmptyAnimation) {
		t.Errorf("nil animation error = %v, want ErrEmptyAnimation", err)
	}
}

func TestPlayAnimationOnce(t *testing.T) {
	rec := &dispatchRecorder{}
	c := newTestCanvas(t, WithTransport(rec))
	anim := &Animation{Frames: []Frame{
		{Raster: solidRaster(4, 2, 0xff), Delay: time.Millisecond},
		{Raster: solidRaster(4, 2, 0), Delay: time.Millisecond},
	}}
	err := c.PlayAnimation(anim, DitherOptions{}, PlaybackOptions{UseFrameDelays: true})
	if err != nil {
		t.Fatalf("PlayAnimation: %v", err)
	}
	waitFor(t, "playback to finish", func() bool { return !c.Animating() })
	if rec.count() != 2 {
		t.Errorf("playback dispatched %d frames, want 2", rec.count())
	}
	if c.Horizontal().Count() != 0 {
		t.Error("playback drew into the canvas grids")
	}
}

func TestPlayAnimationLoops(t *testing.T) {
	rec := &dispatchRecorder{}
	c := newTestCanvas(t, WithTransport(rec))
	anim := &Animation{Frames: []Frame{
		{Raster: solidRaster(4, 2, 0xff), Delay: time.Millisecond},
		{Raster: solidRaster(4, 2, 0), Delay: time.Millisecond},
	}}
	if err := c.PlayAnimation(anim, DitherOptions{}, PlaybackOptions{Loop: true, Interval: time.Millisecond}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "looped frames", func() bool { return rec.count() >= 5 })
	c.StopAnimation()
}

type stubSource struct {
	decoded *Decoded
	err     error
	got     string
}

func (s *stubSource) Load(_ context.Context, resource string) (*Decoded, error) {
	s.got = resource
	return s.decoded, s.err
}

func TestLoadImage(t *testing.T) {
	c := newTestCanvas(t)
	src := &stubSource{decoded: &Decoded{Still: solidRaster(4, 2, 0xff)}}
	if err := c.LoadImage(context.Background(), src, "cat.png", DitherOptions{}); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if src.got != "cat.png" {
		t.Errorf("source asked for %q", src.got)
	}
	if c.Horizontal().Count() == 0 {
		t.Error("loaded image drew nothing")
	}

	c.Clear()
	src.decoded = &Decoded{Animation: &Animation{Frames: []Frame{{Raster: solidRaster(4, 2, 0xff), Delay: time.Second}}}}
	if err := c.LoadImage(context.Background(), src, "cat.gif", DitherOptions{}); err != nil {
		t.Fatalf("LoadImage animated: %v", err)
	}
	if c.Horizontal().Count() == 0 {
		t.Error("first frame of an animation not drawn")
	}
}

func TestLoadErrorsPassThrough(t *testing.T) {
	c := newTestCanvas(t)
	want := errors.New("fetch failed")
	src := &stubSource{err: want}
	if err := c.LoadImage(context.Background(), src, "x", DitherOptions{}); err != want {
		t.Errorf("LoadImage error = %v, want the source error unchanged", err)
	}
	if err := c.LoadAnimation(context.Background(), src, "x", DitherOptions{}, PlaybackOptions{}); err != want {
		t.Errorf("LoadAnimation error = %v, want the source error unchanged", err)
	}
}

func TestLoadAnimationStill(t *testing.T) {
	rec := &dispatchRecorder{}
	c := newTestCanvas(t, WithTransport(rec))
	src := &stubSource{decoded: &Decoded{Still: solidRaster(4, 2, 0xff)}}
	if err := c.LoadAnimation(context.Background(), src, "still.png", DitherOptions{}, PlaybackOptions{}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "single frame playback", func() bool { return !c.Animating() })
	if rec.count() != 1 {
		t.Errorf("dispatched %d frames, want 1", rec.count())
	}
}
