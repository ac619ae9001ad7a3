package components

import (
	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/yohamta/donburi"
)

// MatchData stores the current match state and last reported HUD values.
// This is a singleton component - only one match exists at a time.
type MatchData struct {
	State             cfg.MatchStateID
	HP                int
	Score             int
	MaxScore          int
	MaxScoreKnown     bool // False until the first running poll lands
	HostileSuppressed bool // Set on finalizing; cleared only by a new match
	Summary           []messages.RecoveryData
}

var Match = donburi.NewComponentType[MatchData]()

// Active reports whether the game loop should keep stepping.
func (m *MatchData) Active() bool {
	return m.State == cfg.MatchStateRunning || m.State == cfg.MatchStateFinalizing
}

// CombatEnabled reports whether hits and hostile fire are resolved.
func (m *MatchData) CombatEnabled() bool {
	return m.State == cfg.MatchStateRunning
}
