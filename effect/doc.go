// Package effect implements the effect layer: a real-valued overlay the
// size of the logical canvas, evolved every tick by an ordered list of
// effects and composited onto binary grids.
//
// Effects are plain functions of the layer and a Tick. They mutate the layer
// in place and read time and randomness only from the Tick, so the same
// layer, time and seed always produce the same result:
//
//	p := effect.NewPipeline(28, 14)
//	p.Add(effect.Rain)
//	p.Add(effect.Decay)
//	p.Apply(effect.Tick{T: 1.5, Rand: rng})
//
// A Compositor then adds the layer onto each target grid, saturating at 1
// and quantizing the result back to a single bit.
package effect
