package systems

import (
	"github.com/envtester/chaos-invaders/components"
	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/systems/factory"
	"github.com/yohamta/donburi"
)

// UpdateInput swaps the input buffers and stores this frame's pressed state.
// Must run before the player update so JustPressed sees the new frame.
func UpdateInput(world donburi.World, current [cfg.ActionCount]bool) *components.InputData {
	entry, ok := components.Input.First(world)
	if !ok {
		entry = factory.CreateInput(world)
	}
	input := components.Input.Get(entry)
	input.Advance(current)
	return input
}

// Actions builds a pressed-state array from a list of held actions.
func Actions(held ...cfg.ActionID) [cfg.ActionCount]bool {
	var a [cfg.ActionCount]bool
	for _, id := range held {
		a[id] = true
	}
	return a
}
