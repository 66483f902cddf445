package flipdisc

import (
	"sync"
	"time"
)

// task is a cancellable chain of timer callbacks. Every begin or stop bumps
// the generation, so a callback already queued for an older generation finds
// itself invalid and does nothing.
type task struct {
	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	active bool
}

// begin cancels any running chain and starts a new generation.
func (t *task) begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.active = true
	return t.gen
}

// tryBegin starts a new generation unless one is already active.
func (t *task) tryBegin() (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		return 0, false
	}
	t.gen++
	t.active = true
	return t.gen, true
}

// valid reports whether gen is the active generation.
func (t *task) valid(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active && t.gen == gen
}

// running reports whether a chain is active.
func (t *task) running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// schedule runs fn after d if gen is still the active generation.
func (t *task) schedule(gen uint64, d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active || t.gen != gen {
		return
	}
	t.timer = time.AfterFunc(d, fn)
}

// stop cancels the active chain, if any.
func (t *task) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
}

// finish stops the chain only if gen is still the active generation.
func (t *task) finish(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gen == gen {
		t.cancelLocked()
	}
}

func (t *task) cancelLocked() {
	t.gen++
	t.active = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Animate starts a recurring tick. Each tick runs fn, then a render pass,
// then schedules the next tick one frame interval later. The first tick runs
// as soon as possible on another goroutine; Animate itself does not block.
//
// A running animation, including one started by PlayAnimation, is replaced.
// If fn returns an error the animation stops, that tick's render pass is
// skipped, and the error is passed to the error handler. fn may be nil for a
// render-only animation at the frame rate.
//
// fn runs with the canvas tick lock held; it may draw freely but must not
// call Do.
func (c *Canvas) Animate(fn func() error) {
	gen := c.anim.begin()
	Logger().Info("flipdisc: animation started", "interval", c.frameInterval)
	c.anim.schedule(gen, 0, func() { c.animTick(gen, fn) })
}

func (c *Canvas) animTick(gen uint64, fn func() error) {
	c.mu.Lock()
	if !c.anim.valid(gen) {
		c.mu.Unlock()
		return
	}
	if fn != nil {
		if err := fn(); err != nil {
			c.anim.finish(gen)
			c.mu.Unlock()
			c.onError(err)
			return
		}
	}
	c.Render()
	c.mu.Unlock()
	c.anim.schedule(gen, c.frameInterval, func() { c.animTick(gen, fn) })
}

// StopAnimation cancels the running animation or playback. A tick already
// in progress completes; no further tick runs. Stopping an idle canvas does
// nothing.
func (c *Canvas) StopAnimation() {
	if c.anim.running() {
		Logger().Info("flipdisc: animation stopped")
	}
	c.anim.stop()
}

// Animating reports whether an animation or playback is running.
func (c *Canvas) Animating() bool {
	return c.anim.running()
}

// StartRenderLoop starts a render-only loop that runs a render pass every
// interval, letting effects evolve over otherwise static content. A
// non-positive interval uses the frame interval. Starting a loop that is
// already running does nothing.
func (c *Canvas) StartRenderLoop(interval time.Duration) {
	if interval <= 0 {
		interval = c.frameInterval
	}
	gen, ok := c.loop.tryBegin()
	if !ok {
		return
	}
	Logger().Info("flipdisc: render loop started", "interval", interval)
	c.loop.schedule(gen, interval, func() { c.loopTick(gen, interval) })
}

func (c *Canvas) loopTick(gen uint64, interval time.Duration) {
	c.mu.Lock()
	if !c.loop.valid(gen) {
		c.mu.Unlock()
		return
	}
	c.Render()
	c.mu.Unlock()
	c.loop.schedule(gen, interval, func() { c.loopTick(gen, interval) })
}

// StopRenderLoop stops the render-only loop. Stopping a loop that is not
// running does nothing.
func (c *Canvas) StopRenderLoop() {
	if c.loop.running() {
		Logger().Info("flipdisc: render loop stopped")
	}
	c.loop.stop()
}

// RenderLooping reports whether the render-only loop is running.
func (c *Canvas) RenderLooping() bool {
	return c.loop.running()
}

// Close stops the animation and the render loop.
func (c *Canvas) Close() {
	c.StopAnimation()
	c.StopRenderLoop()
}
