package systems

import (
	"github.com/envtester/chaos-invaders/components"
	cfg "github.com/envtester/chaos-invaders/config"
)

// UpdateHUDEffects steps the finalizing pulse and the hit flash. The pulse
// loops for as long as the match is finalizing.
func UpdateHUDEffects(hud *components.HUDData, match *components.MatchData, dt float32) {
	if match.State == cfg.MatchStateFinalizing && hud.Pulse != nil {
		v, done := hud.Pulse.Update(dt)
		hud.PulseValue = v
		if done {
			hud.Pulse.Reset()
		}
	} else {
		hud.PulseValue = 0
	}

	if hud.Flash != nil {
		v, done := hud.Flash.Update(dt)
		hud.FlashValue = v
		if done {
			hud.Flash = nil
			hud.FlashValue = 0
		}
	}
}
