package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// HUDData holds the animated HUD effects.
type HUDData struct {
	Pulse      *gween.Tween // Loops while finalizing
	PulseValue float32
	Flash      *gween.Tween // Runs once per player hit
	FlashValue float32
	Hits       int
}

var HUD = donburi.NewComponentType[HUDData]()
