package effect

import "math/rand/v2"

// Tick carries the inputs an effect may depend on besides the layer.
type Tick struct {
	// T is the elapsed time in seconds.
	T float64

	// Rand is the random source for stochastic effects.
	Rand *rand.Rand
}

// Func is an effect. It mutates the layer in place.
type Func func(l Layer, t Tick)

// Pipeline is an ordered effect registry bound to one layer.
//
// Pipeline is not safe for concurrent use.
type Pipeline struct {
	layer   Layer
	effects []Func
}

// NewPipeline creates an empty pipeline with a zeroed width×height layer.
func NewPipeline(width, height int) *Pipeline {
	return &Pipeline{layer: NewLayer(width, height)}
}

// Add appends f to the registry. Nil effects are ignored.
func (p *Pipeline) Add(f Func) {
	if f == nil {
		return
	}
	p.effects = append(p.effects, f)
}

// Clear drops every registered effect and zeroes the layer.
func (p *Pipeline) Clear() {
	p.effects = nil
	p.layer.Zero()
}

// Len returns the number of registered effects.
func (p *Pipeline) Len() int {
	return len(p.effects)
}

// Layer returns the live layer. Callers may seed it between ticks.
func (p *Pipeline) Layer() Layer {
	return p.layer
}

// Apply runs every registered effect once, in registration order.
func (p *Pipeline) Apply(t Tick) {
	if t.Rand == nil {
		t.Rand = rand.New(rand.NewPCG(0, 0))
	}
	for _, f := range p.effects {
		f(p.layer, t)
	}
}
