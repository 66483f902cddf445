package flipdisc

import (
	"fmt"

	"github.com/gogpu/flipdisc/effect"
)

// AddEffect registers f to run on the effect layer every render pass, after
// the effects already registered.
//
// Effects need both grids to have the logical canvas size; otherwise
// AddEffect fails with effect.ErrLayerMismatch and registers nothing.
func (c *Canvas) AddEffect(f effect.Func) error {
	if c.compositor == nil {
		_, err := effect.NewCompositor(c.effects.Layer(), c.vertical, c.horizontal)
		return fmt.Errorf("flipdisc: add effect: %w", err)
	}
	c.effects.Add(f)
	return nil
}

// ClearEffects drops every registered effect and zeroes the effect layer.
func (c *Canvas) ClearEffects() {
	c.effects.Clear()
}

// EffectLayer returns the live effect layer, sized to the logical canvas.
// Seeding it directly lets effects such as Explode or Glow act on content.
// The layer is composited on every render pass, with or without registered
// effects, unless the grid sizes differ from the logical canvas.
func (c *Canvas) EffectLayer() effect.Layer {
	return c.effects.Layer()
}

// EffectCount returns the number of registered effects.
func (c *Canvas) EffectCount() int {
	return c.effects.Len()
}
