package effect

import (
	"errors"
	"fmt"
)

// ErrLayerMismatch is returned when a target grid and the effect layer have
// different dimensions.
var ErrLayerMismatch = errors.New("effect: layer and grid dimensions differ")

// Target is a binary cell buffer the layer is composited onto.
type Target interface {
	Width() int
	Height() int
	Get(x, y int) uint8
	Put(x, y int, v uint8)
}

// Compositor adds a layer onto binary targets of the same dimensions.
type Compositor struct {
	layer Layer
}

// NewCompositor checks that every target has the layer's dimensions and
// returns a compositor for layer.
func NewCompositor(layer Layer, targets ...Target) (*Compositor, error) {
	for _, t := range targets {
		if t.Width() != layer.Width() || t.Height() != layer.Height() {
			return nil, fmt.Errorf("%w: layer %dx%d, grid %dx%d",
				ErrLayerMismatch, layer.Width(), layer.Height(), t.Width(), t.Height())
		}
	}
	return &Compositor{layer: layer}, nil
}

// Composite writes min(1, src + layer) into dst cell by cell, quantized so
// that values of at least one half become 1. dst and src may be the same
// target. Both must have the layer's dimensions.
func (c *Compositor) Composite(dst, src Target) {
	for y, row := range c.layer {
		for x, v := range row {
			dst.Put(x, y, Quantize(float64(src.Get(x, y))+v))
		}
	}
}

// Quantize saturates v to at most 1 and maps it to a single bit.
func Quantize(v float64) uint8 {
	if min(1, v) >= 0.5 {
		return 1
	}
	return 0
}
