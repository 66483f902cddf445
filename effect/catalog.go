package effect

import (
	"math"
	"sort"
)

// Catalog constants.
const (
	DecayRate        = 0.9
	RainProbability  = 0.1
	WaveFrequency    = 0.1
	WaveAmplitude    = 0.5
	ExplodeVelocity  = 0.1
	TwinkleRate      = 0.05
	RippleFrequency  = 0.2
	FireSeedRate     = 0.2
	NoiseMean        = 0
	NoiseStdDev      = 0.1
	ZoomAmplitude    = 0.2
	rippleTimeFactor = 2
)

// Decay multiplies every value by DecayRate.
func Decay(l Layer, _ Tick) {
	for _, row := range l {
		for x := range row {
			row[x] *= DecayRate
		}
	}
}

// Rain shifts every row down by one and seeds the top row, lighting each
// column with probability RainProbability.
func Rain(l Layer, t Tick) {
	if len(l) == 0 {
		return
	}
	for y := len(l) - 1; y > 0; y-- {
		copy(l[y], l[y-1])
	}
	for x := range l[0] {
		if t.Rand.Float64() < RainProbability {
			l[0][x] = 1
		} else {
			l[0][x] = 0
		}
	}
}

// Waves sets every value to WaveAmplitude·sin(WaveFrequency·x + t).
func Waves(l Layer, t Tick) {
	for _, row := range l {
		for x := range row {
			row[x] = WaveAmplitude * math.Sin(WaveFrequency*float64(x)+t.T)
		}
	}
}

// Explode pushes every lit value away from the centre by
// round(ExplodeVelocity·distance) cells along the ray from the centre.
// Values pushed off the layer are dropped; collisions keep the larger value.
func Explode(l Layer, _ Tick) {
	w, h := l.Width(), l.Height()
	if w == 0 || h == 0 {
		return
	}
	cx, cy := w/2, h/2
	out := NewLayer(w, h)
	for y, row := range l {
		for x, v := range row {
			if v <= 0 {
				continue
			}
			dx, dy := float64(x-cx), float64(y-cy)
			dist := math.Hypot(dx, dy)
			nx, ny := x, y
			if off := round(ExplodeVelocity * dist); off > 0 {
				nx = x + int(round(off*dx/dist))
				ny = y + int(round(off*dy/dist))
			}
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			out[ny][nx] = max(out[ny][nx], v)
		}
	}
	l.copyFrom(out)
}

// Twinkle replaces each value, with probability TwinkleRate, by a fresh
// uniform random value.
func Twinkle(l Layer, t Tick) {
	for _, row := range l {
		for x := range row {
			if t.Rand.Float64() < TwinkleRate {
				row[x] = t.Rand.Float64()
			}
		}
	}
}

// Scroll rotates every row right by one cell, wrapping the last value to
// the front.
func Scroll(l Layer, _ Tick) {
	for _, row := range l {
		if len(row) < 2 {
			continue
		}
		last := row[len(row)-1]
		copy(row[1:], row[:len(row)-1])
		row[0] = last
	}
}

// Ripple sets every value to 0.5 + 0.5·sin(d·RippleFrequency − 2t), where
// d is the distance from the centre.
func Ripple(l Layer, t Tick) {
	cx, cy := l.Width()/2, l.Height()/2
	phase := rippleTimeFactor * t.T
	for y, row := range l {
		for x := range row {
			d := math.Hypot(float64(x-cx), float64(y-cy))
			row[x] = 0.5 + 0.5*math.Sin(d*RippleFrequency-phase)
		}
	}
}

// Spiral sets a value to 1 where sin(d + θ + t) is positive and 0
// elsewhere, with d and θ the polar coordinates around the centre.
func Spiral(l Layer, t Tick) {
	cx, cy := l.Width()/2, l.Height()/2
	for y, row := range l {
		for x := range row {
			dx, dy := float64(x-cx), float64(y-cy)
			if math.Sin(math.Hypot(dx, dy)+math.Atan2(dy, dx)+t.T) > 0 {
				row[x] = 1
			} else {
				row[x] = 0
			}
		}
	}
}

// Fire averages every row with the row before it, working from the last
// row up, then reseeds row 0 with 1 at probability FireSeedRate per cell.
func Fire(l Layer, t Tick) {
	if len(l) == 0 {
		return
	}
	for y := len(l) - 1; y > 0; y-- {
		for x := range l[y] {
			l[y][x] = (l[y-1][x] + l[y][x]) * 0.5
		}
	}
	for x := range l[0] {
		if t.Rand.Float64() < FireSeedRate {
			l[0][x] = 1
		} else {
			l[0][x] = 0
		}
	}
}

// Noise adds Gaussian noise with NoiseMean and NoiseStdDev to every value
// and clamps the result to [0, 1].
func Noise(l Layer, t Tick) {
	GaussianNoise(NoiseMean, NoiseStdDev)(l, t)
}

// GaussianNoise returns a noise effect with the given mean and standard
// deviation.
func GaussianNoise(mean, stddev float64) Func {
	return func(l Layer, t Tick) {
		for _, row := range l {
			for x := range row {
				row[x] = clamp01(row[x] + gaussian(t, mean, stddev))
			}
		}
	}
}

// gaussian draws one sample with the Box–Muller transform.
func gaussian(t Tick, mean, stddev float64) float64 {
	u1 := 1 - t.Rand.Float64() // (0, 1]
	u2 := t.Rand.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return z*stddev + mean
}

// Zoom resamples the layer around its centre by a factor of
// 1 + ZoomAmplitude·sin(t), nearest neighbour. Samples from outside the
// layer are 0.
func Zoom(l Layer, t Tick) {
	w, h := l.Width(), l.Height()
	cx, cy := float64(w/2), float64(h/2)
	factor := 1 + math.Sin(t.T)*ZoomAmplitude
	src := l.Clone()
	for y, row := range l {
		for x := range row {
			sx := int(round((float64(x)-cx)/factor + cx))
			sy := int(round((float64(y)-cy)/factor + cy))
			row[x] = src.At(sx, sy)
		}
	}
}

// Glow lights the four neighbours of every lit interior value. Edge rows
// and columns do not spread.
func Glow(l Layer, _ Tick) {
	w, h := l.Width(), l.Height()
	glow := l.Clone()
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if l[y][x] > 0 {
				glow[y-1][x] = 1
				glow[y+1][x] = 1
				glow[y][x-1] = 1
				glow[y][x+1] = 1
			}
		}
	}
	for y, row := range l {
		for x := range row {
			row[x] = max(row[x], glow[y][x])
		}
	}
}

var catalog = map[string]Func{
	"decay":   Decay,
	"rain":    Rain,
	"waves":   Waves,
	"explode": Explode,
	"twinkle": Twinkle,
	"scroll":  Scroll,
	"ripple":  Ripple,
	"spiral":  Spiral,
	"fire":    Fire,
	"noise":   Noise,
	"zoom":    Zoom,
	"glow":    Glow,
}

// Lookup returns the catalog effect registered under name.
func Lookup(name string) (Func, bool) {
	f, ok := catalog[name]
	return f, ok
}

// Names returns the catalog effect names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
