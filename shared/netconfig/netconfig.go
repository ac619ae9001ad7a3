// Package netconfig defines lightweight types shared between the client and the
// controller. It must have zero dependencies on ebiten or any graphics library
// so the controller binary stays headless.
package netconfig

import "strings"

// MatchStateID represents the client-side state of a match.
type MatchStateID int

const (
	MatchStateIdle       MatchStateID = iota // No match in progress
	MatchStateRunning                        // Active gameplay
	MatchStateFinalizing                     // Server is concluding bookkeeping, combat frozen
	MatchStateVictory                        // Match won, summary available
	MatchStateDefeat                         // Match lost
)

func (s MatchStateID) String() string {
	switch s {
	case MatchStateIdle:
		return "idle"
	case MatchStateRunning:
		return "running"
	case MatchStateFinalizing:
		return "finalizing"
	case MatchStateVictory:
		return "victory"
	case MatchStateDefeat:
		return "defeat"
	}
	return "unknown"
}

// Status strings as reported by the controller.
const (
	StatusPlaying    = "PLAYING"
	StatusFinalizing = "FINALIZING"
	StatusVictory    = "VICTORY"
	StatusDefeat     = "DEFEAT"
)

// ParseStatus maps a reported status string onto the client state it drives.
// Anything that is not finalizing, victory or defeat counts as running.
func ParseStatus(status string) MatchStateID {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case StatusFinalizing:
		return MatchStateFinalizing
	case StatusVictory:
		return MatchStateVictory
	case StatusDefeat:
		return MatchStateDefeat
	default:
		return MatchStateRunning
	}
}

// KillMethod is the signal the controller uses to take a target down.
type KillMethod string

const (
	KillSIGKILL KillMethod = "SIGKILL"
	KillSIGTERM KillMethod = "SIGTERM"
	KillSIGSEGV KillMethod = "SIGSEGV"
)

// KillMethods lists every accepted method in menu order.
var KillMethods = []KillMethod{KillSIGKILL, KillSIGTERM, KillSIGSEGV}

// ParseKillMethod returns the method named by s and whether it is valid.
func ParseKillMethod(s string) (KillMethod, bool) {
	for _, m := range KillMethods {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Recovery outcome states reported in victory statistics.
const (
	RecoveryRecovered = "RECOVERED"
	RecoveryFailed    = "FAILED"
)

// HTTP API paths served by the controller.
const (
	PathCheckGame = "/api/checkgame"
	PathShoot     = "/api/shoot"
	PathGetShot   = "/api/getshot"
	PathStartGame = "/api/startgame"
)

// StartingHP is the hit points a fresh match begins with.
const StartingHP = 3

// UnknownName is shown for targets with neither a name nor an alias.
const UnknownName = "Unknown"
