// Package transport provides flipdisc.Transport implementations.
package transport

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/gogpu/flipdisc"
)

// Frame is one dispatched pair of grids.
type Frame struct {
	Vertical   *flipdisc.Grid
	Horizontal *flipdisc.Grid
}

// Recorder is an in-memory transport that keeps every dispatched frame.
// It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	frames []Frame
	limit  int
}

// NewRecorder creates a recorder keeping at most limit frames; older frames
// are dropped first. A non-positive limit keeps every frame.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Dispatch implements flipdisc.Transport.
func (r *Recorder) Dispatch(vertical, horizontal *flipdisc.Grid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, Frame{Vertical: vertical.Clone(), Horizontal: horizontal.Clone()})
	if r.limit > 0 && len(r.frames) > r.limit {
		r.frames = append(r.frames[:0], r.frames[len(r.frames)-r.limit:]...)
	}
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Frames returns a copy of the recorded frames, oldest first.
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

// Last returns the most recent frame.
func (r *Recorder) Last() (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

// Reset drops every recorded frame.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
}

// SavePNGs writes every recorded frame to dir as numbered PNG files, one
// per grid: 0000-vertical.png, 0000-horizontal.png and so on.
func (r *Recorder) SavePNGs(dir string) error {
	for i, f := range r.Frames() {
		if err := f.Vertical.SavePNG(filepath.Join(dir, fmt.Sprintf("%04d-vertical.png", i))); err != nil {
			return fmt.Errorf("transport: save frame %d: %w", i, err)
		}
		if err := f.Horizontal.SavePNG(filepath.Join(dir, fmt.Sprintf("%04d-horizontal.png", i))); err != nil {
			return fmt.Errorf("transport: save frame %d: %w", i, err)
		}
	}
	return nil
}

// Multi returns a transport that dispatches to each of ts in order.
func Multi(ts ...flipdisc.Transport) flipdisc.Transport {
	return flipdisc.TransportFunc(func(v, h *flipdisc.Grid) {
		for _, t := range ts {
			t.Dispatch(v, h)
		}
	})
}
