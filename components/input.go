package components

import (
	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/yohamta/donburi"
)

// InputData stores the current and previous frame's pressed state for all actions.
// JustPressed is computed on demand by comparing frames.
type InputData struct {
	Current  [cfg.ActionCount]bool // Current frame's Pressed state
	Previous [cfg.ActionCount]bool // Previous frame's Pressed state
}

var Input = donburi.NewComponentType[InputData]()

// Pressed reports whether the action is held this frame.
func (in *InputData) Pressed(a cfg.ActionID) bool {
	return in.Current[a]
}

// JustPressed reports the rising edge of an action.
func (in *InputData) JustPressed(a cfg.ActionID) bool {
	return in.Current[a] && !in.Previous[a]
}

// Advance swaps buffers: current becomes previous, then current is replaced.
func (in *InputData) Advance(current [cfg.ActionCount]bool) {
	in.Previous = in.Current
	in.Current = current
}
