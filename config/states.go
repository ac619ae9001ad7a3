package config

import "github.com/envtester/chaos-invaders/shared/netconfig"

// Type alias so client code can keep using config.MatchStateID.
type MatchStateID = netconfig.MatchStateID

// Re-export match state constants.
const (
	MatchStateIdle       = netconfig.MatchStateIdle
	MatchStateRunning    = netconfig.MatchStateRunning
	MatchStateFinalizing = netconfig.MatchStateFinalizing
	MatchStateVictory    = netconfig.MatchStateVictory
	MatchStateDefeat     = netconfig.MatchStateDefeat
)

// Renderer layers, lowest drawn first. Untyped so they convert to ecs.LayerID.
const (
	Default = iota
	Overlay
)
