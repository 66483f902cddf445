// Command flipdemo drives a flipdisc canvas with a few demonstrations,
// previewing the panels in the terminal or recording frames to PNG files.
//
// Usage:
//
//	flipdemo -mode circle
//	flipdemo -mode text -text "HELLO WORLD"
//	flipdemo -mode image -src cat.gif
//	flipdemo -mode image -src logo.png -watch
//	flipdemo -mode effects -frames out/ -duration 5s
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/gogpu/flipdisc"
	"github.com/gogpu/flipdisc/effect"
	"github.com/gogpu/flipdisc/internal/config"
	"github.com/gogpu/flipdisc/source"
	"github.com/gogpu/flipdisc/transport"
	"github.com/gogpu/flipdisc/transport/terminal"
)

func main() {
	var (
		configPath = flag.String("config", "flipdisc.toml", "panel layout file")
		mode       = flag.String("mode", "circle", "demo: circle, pyramid, text, image or effects")
		text       = flag.String("text", "HELLO", "text for -mode text")
		src        = flag.String("src", "", "image file or URL for -mode image")
		watch      = flag.Bool("watch", false, "redraw -src when the file changes")
		frames     = flag.String("frames", "", "record frames as PNG files into this directory instead of using the terminal")
		duration   = flag.Duration("duration", 5*time.Second, "how long to run with -frames")
		debug      = flag.Bool("debug", false, "log debug output to stderr")
	)
	flag.Parse()

	if *debug {
		flipdisc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		tr   flipdisc.Transport
		rec  *transport.Recorder
		term *terminal.Terminal
	)
	if *frames != "" {
		if err := os.MkdirAll(*frames, 0o750); err != nil {
			log.Fatalf("Failed to create %s: %v", *frames, err)
		}
		rec = transport.NewRecorder(0)
		tr = rec
	} else {
		term, err = terminal.Open()
		if err != nil {
			log.Fatalf("Failed to open terminal: %v", err)
		}
		tr = term
	}

	canvas, err := flipdisc.New(cfg.Canvas(), append(cfg.Options(), flipdisc.WithTransport(tr))...)
	if err != nil {
		closeTerminal(term)
		log.Fatalf("Failed to create canvas: %v", err)
	}
	if err := cfg.AddEffects(canvas); err != nil {
		closeTerminal(term)
		log.Fatalf("Failed to add effects: %v", err)
	}

	d := &demo{canvas: canvas, cfg: cfg, loader: &source.Loader{}}
	if err := d.run(ctx, *mode, *text, *src, *watch); err != nil {
		closeTerminal(term)
		log.Fatalf("Demo %q failed: %v", *mode, err)
	}

	if term != nil {
		go func() {
			term.PollQuit()
			stop()
		}()
		<-ctx.Done()
	} else {
		select {
		case <-ctx.Done():
		case <-time.After(*duration):
		}
	}
	canvas.Close()
	closeTerminal(term)

	if rec != nil {
		if err := rec.SavePNGs(*frames); err != nil {
			log.Fatalf("Failed to save frames: %v", err)
		}
		log.Printf("Saved %d frames to %s", rec.Len(), *frames)
	}
}

func closeTerminal(t *terminal.Terminal) {
	if t != nil {
		t.Close()
	}
}

type demo struct {
	canvas *flipdisc.Canvas
	cfg    config.Config
	loader *source.Loader
}

func (d *demo) run(ctx context.Context, mode, text, src string, watch bool) error {
	switch mode {
	case "circle":
		d.circle()
	case "pyramid":
		d.pyramid()
	case "text":
		d.text(text)
	case "effects":
		return d.effects()
	case "image":
		if src == "" {
			return errors.New("-src is required")
		}
		if err := d.image(ctx, src); err != nil {
			return err
		}
		if watch {
			return d.watch(ctx, src)
		}
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	return nil
}

// circle sweeps a radius around a circle outline.
func (d *demo) circle() {
	c := d.canvas
	cx, cy := float64(c.Width())/2, float64(c.Height())/2
	r := math.Min(cx, cy) - 1
	angle := 0.0
	c.Animate(func() error {
		c.Clear()
		c.DrawCircle(cx, cy, r, flipdisc.FillNone, 1)
		c.DrawLine(cx, cy, cx+r*math.Cos(angle), cy+r*math.Sin(angle), 1)
		angle += 0.1
		return nil
	})
}

// pyramid spins a square pyramid wireframe.
func (d *demo) pyramid() {
	c := d.canvas
	s := float64(c.Height()) / 3
	base := []flipdisc.Vec3{
		flipdisc.V3(-s, s, -s), flipdisc.V3(s, s, -s),
		flipdisc.V3(s, s, s), flipdisc.V3(-s, s, s),
	}
	apex := flipdisc.V3(0, -s, 0)
	t := 0.0
	c.Animate(func() error {
		c.Clear()
		if _, err := c.SetRotationMatrix(flipdisc.Angles{X: t * 0.5, Y: t}); err != nil {
			return err
		}
		for i, p := range base {
			if err := c.DrawLine3D(p, base[(i+1)%len(base)], flipdisc.Line3DOptions{}); err != nil {
				return err
			}
			if err := c.DrawLine3D(p, apex, flipdisc.Line3DOptions{}); err != nil {
				return err
			}
		}
		t += 0.05
		return nil
	})
}

// text shows s, scrolling it when it is wider than the canvas.
func (d *demo) text(s string) {
	c := d.canvas
	w := c.MeasureText(s, 1)
	y := float64(c.Height()-5) / 2
	if w <= float64(c.Width()) {
		c.Do(func() {
			c.DrawText(s, (float64(c.Width())-w)/2, y, 1)
			c.Render()
		})
		return
	}
	x := float64(c.Width())
	c.Animate(func() error {
		c.Clear()
		c.DrawText(s, x, y, 1)
		x--
		if x < -w {
			x = float64(c.Width())
		}
		return nil
	})
}

// effects seeds the effect layer and lets the configured effects evolve it.
func (d *demo) effects() error {
	c := d.canvas
	if c.EffectCount() == 0 {
		for _, name := range []string{"rain", "glow", "decay"} {
			f, _ := effect.Lookup(name)
			if err := c.AddEffect(f); err != nil {
				return err
			}
		}
	}
	c.Do(func() {
		c.DrawRect(0, 0, float64(c.Width()-1), float64(c.Height()-1), flipdisc.FillNone, 1)
	})
	c.StartRenderLoop(d.cfg.Interval())
	return nil
}

// image draws or plays src.
func (d *demo) image(ctx context.Context, src string) error {
	decoded, err := d.loader.Load(ctx, src)
	if err != nil {
		return err
	}
	c := d.canvas
	opts := d.cfg.DitherOptions()
	if decoded.Animation != nil {
		return c.PlayAnimation(decoded.Animation, opts, flipdisc.PlaybackOptions{
			Loop:           true,
			UseFrameDelays: true,
		})
	}
	c.StopAnimation()
	var drawErr error
	c.Do(func() {
		c.Clear()
		if drawErr = c.DrawImage(decoded.Still, opts); drawErr == nil {
			c.Render()
		}
	})
	return drawErr
}
