// Package messages holds the JSON payloads exchanged between the client and the
// controller.
package messages

import (
	"strings"
	"time"

	"github.com/envtester/chaos-invaders/shared/netconfig"
)

// EntityInfo is one target reported by the controller.
type EntityInfo struct {
	ID    string   `json:"id"`
	Name  string   `json:"name,omitempty"`
	Names []string `json:"Names,omitempty"` // Aliases, as listed by some backends
}

// DisplayName returns the name to render above the target.
func (e EntityInfo) DisplayName() string {
	if e.Name != "" {
		return strings.TrimPrefix(e.Name, "/")
	}
	if len(e.Names) > 0 && e.Names[0] != "" {
		return strings.TrimPrefix(e.Names[0], "/")
	}
	return netconfig.UnknownName
}

// RecoveryData is the measured outcome for one destroyed target.
type RecoveryData struct {
	Container     EntityInfo    `json:"container"`
	KillMethod    string        `json:"kill_method"`
	TimeToRecover time.Duration `json:"ttr"` // nanoseconds on the wire
	State         string        `json:"state"`
}

// Recovered reports whether the target came back healthy.
func (r RecoveryData) Recovered() bool {
	return r.State == netconfig.RecoveryRecovered
}

// MatchState is the payload of GET /api/checkgame.
type MatchState struct {
	Status   string         `json:"status"`
	Enemies  []EntityInfo   `json:"enemies"`
	HP       int            `json:"hp"`
	Score    int            `json:"score"`
	MaxScore int            `json:"max_score"`
	Stats    []RecoveryData `json:"stats,omitempty"`
}

// ShotRequest is the body of POST /api/shoot.
type ShotRequest struct {
	ID string `json:"id"`
}

// StartRequest is the body of POST /api/startgame.
type StartRequest struct {
	Method     string `json:"method"`
	Iterations int    `json:"iterations"`
}
