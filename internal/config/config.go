// Package config loads the panel layout for the demo binary from a TOML
// file with environment variable overrides.
//
// Example file:
//
//	width = 28
//	height = 14
//	interval_ms = 50
//	dither = "bayer"
//	effects = ["rain", "decay"]
//
//	[vertical]
//	width = 28
//	height = 14
//
//	[horizontal]
//	width = 28
//	height = 14
//
// Every key can be overridden with a FLIPDISC_ variable, for example
// FLIPDISC_WIDTH, FLIPDISC_VERTICAL_HEIGHT or FLIPDISC_EFFECTS=rain,glow.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/flipdisc"
	"github.com/gogpu/flipdisc/effect"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "FLIPDISC_"

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Grid is the size of one panel grid.
type Grid struct {
	Width  int `toml:"width" env:"WIDTH"`
	Height int `toml:"height" env:"HEIGHT"`
}

// Config is the demo panel layout.
type Config struct {
	Width      int      `toml:"width" env:"WIDTH"`
	Height     int      `toml:"height" env:"HEIGHT"`
	Vertical   Grid     `toml:"vertical" envPrefix:"VERTICAL_"`
	Horizontal Grid     `toml:"horizontal" envPrefix:"HORIZONTAL_"`
	IntervalMS int      `toml:"interval_ms" env:"INTERVAL_MS"`
	Dither     string   `toml:"dither" env:"DITHER"`
	Scale      float64  `toml:"scale" env:"SCALE"`
	Seed       uint64   `toml:"seed" env:"SEED"`
	Effects    []string `toml:"effects" env:"EFFECTS" envSeparator:","`
}

// Default returns a single 28×14 panel layout.
func Default() Config {
	return Config{
		Width:      28,
		Height:     14,
		Vertical:   Grid{Width: 28, Height: 14},
		Horizontal: Grid{Width: 28, Height: 14},
		IntervalMS: 50,
		Dither:     flipdisc.DitherFloydSteinberg,
		Scale:      1,
	}
}

// Load reads path over the defaults and applies environment overrides. An
// empty path or a missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	return load(path, env.Options{Prefix: EnvPrefix})
}

func load(path string, opts env.Options) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		default:
			if err := Decode(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: %s: %w", path, err)
			}
		}
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode parses TOML data into cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Validate checks dimensions and effect names.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 ||
		c.Vertical.Width <= 0 || c.Vertical.Height <= 0 ||
		c.Horizontal.Width <= 0 || c.Horizontal.Height <= 0 {
		return fmt.Errorf("%w: all dimensions must be positive", ErrInvalid)
	}
	if c.IntervalMS < 0 {
		return fmt.Errorf("%w: interval_ms %d is negative", ErrInvalid, c.IntervalMS)
	}
	for _, name := range c.Effects {
		if _, ok := effect.Lookup(name); !ok {
			return fmt.Errorf("%w: unknown effect %q", ErrInvalid, name)
		}
	}
	return nil
}

// Canvas returns the canvas configuration.
func (c Config) Canvas() flipdisc.Config {
	return flipdisc.Config{
		Width:      c.Width,
		Height:     c.Height,
		Vertical:   flipdisc.Size{Width: c.Vertical.Width, Height: c.Vertical.Height},
		Horizontal: flipdisc.Size{Width: c.Horizontal.Width, Height: c.Horizontal.Height},
	}
}

// Interval returns the frame interval.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// Options returns the canvas options the configuration implies.
func (c Config) Options() []flipdisc.Option {
	opts := []flipdisc.Option{flipdisc.WithFrameInterval(c.Interval())}
	if c.Seed != 0 {
		opts = append(opts, flipdisc.WithSeed(c.Seed))
	}
	return opts
}

// DitherOptions returns the image conversion options.
func (c Config) DitherOptions() flipdisc.DitherOptions {
	return flipdisc.DitherOptions{Method: c.Dither, Scale: c.Scale}
}

// AddEffects registers the configured effects on canvas in order.
func (c Config) AddEffects(canvas *flipdisc.Canvas) error {
	for _, name := range c.Effects {
		f, ok := effect.Lookup(name)
		if !ok {
			return fmt.Errorf("%w: unknown effect %q", ErrInvalid, name)
		}
		if err := canvas.AddEffect(f); err != nil {
			return err
		}
	}
	return nil
}
