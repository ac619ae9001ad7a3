package systems

import (
	"errors"
	"fmt"

	"github.com/envtester/chaos-invaders/components"
	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/yohamta/donburi"
)

// ErrIllegalTransition is returned when a match state change is not allowed.
var ErrIllegalTransition = errors.New("illegal match state transition")

// Victory and Defeat only leave through Idle, which is where a new match starts.
var matchTransitions = map[cfg.MatchStateID][]cfg.MatchStateID{
	cfg.MatchStateIdle:       {cfg.MatchStateRunning},
	cfg.MatchStateRunning:    {cfg.MatchStateFinalizing, cfg.MatchStateVictory, cfg.MatchStateDefeat, cfg.MatchStateIdle},
	cfg.MatchStateFinalizing: {cfg.MatchStateVictory, cfg.MatchStateDefeat, cfg.MatchStateIdle},
	cfg.MatchStateVictory:    {cfg.MatchStateIdle},
	cfg.MatchStateDefeat:     {cfg.MatchStateIdle},
}

// CanTransition reports whether a match may move from one state to another.
func CanTransition(from, to cfg.MatchStateID) bool {
	for _, next := range matchTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionMatch moves the match to a new state. Moving to the current state
// is a no-op.
func TransitionMatch(match *components.MatchData, to cfg.MatchStateID) error {
	if match.State == to {
		return nil
	}
	if !CanTransition(match.State, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, match.State, to)
	}
	match.State = to
	return nil
}

// MatchState returns the current state, or Idle if the world has no match.
func MatchState(world donburi.World) cfg.MatchStateID {
	matchEntry, ok := components.Match.First(world)
	if !ok {
		return cfg.MatchStateIdle
	}
	return components.Match.Get(matchEntry).State
}

// IsMatchActive returns true while the game loop should keep stepping
func IsMatchActive(world donburi.World) bool {
	matchEntry, ok := components.Match.First(world)
	if !ok {
		return false
	}
	return components.Match.Get(matchEntry).Active()
}

// IsMatchOver returns true once the match reached victory or defeat
func IsMatchOver(world donburi.World) bool {
	state := MatchState(world)
	return state == cfg.MatchStateVictory || state == cfg.MatchStateDefeat
}
