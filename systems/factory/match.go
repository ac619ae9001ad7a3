package factory

import (
	"github.com/envtester/chaos-invaders/archetypes"
	"github.com/envtester/chaos-invaders/components"
	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/shared/netconfig"
	"github.com/yohamta/donburi"
)

// CreateMatch spawns the match singleton in the idle state.
func CreateMatch(world donburi.World) *donburi.Entry {
	match := archetypes.Match.Spawn(world)
	components.Match.SetValue(match, components.MatchData{
		State: cfg.MatchStateIdle,
		HP:    netconfig.StartingHP,
	})
	return match
}

// CreateHUD spawns the HUD effects singleton.
func CreateHUD(world donburi.World) *donburi.Entry {
	hud := archetypes.HUD.Spawn(world)
	components.HUD.SetValue(hud, components.HUDData{})
	return hud
}

// CreateInput spawns the input singleton.
func CreateInput(world donburi.World) *donburi.Entry {
	input := archetypes.Input.Spawn(world)
	components.Input.SetValue(input, components.InputData{})
	return input
}
