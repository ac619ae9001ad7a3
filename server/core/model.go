package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/envtester/chaos-invaders/shared/netconfig"
)

var (
	ErrNotPlaying    = errors.New("match is not in play")
	ErrInvalidConfig = errors.New("invalid match config")
)

// GameModel is the authoritative match state.
//
// PLAYING -> FINALIZING -> VICTORY once the score reaches the iteration count
// and every recovery has been measured; PLAYING -> DEFEAT when HP runs out.
type GameModel struct {
	mu      sync.RWMutex
	backend TargetBackend

	status   string
	hp       int
	score    int
	maxScore int
	method   netconfig.KillMethod
	round    uint64 // Bumped on every reset so stale finalizers give up

	ctx    context.Context
	cancel context.CancelFunc
}

func NewGameModel(backend TargetBackend, method netconfig.KillMethod, iterations int) *GameModel {
	m := &GameModel{backend: backend}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.reset(method, iterations)
	return m
}

// Close stops any finalizer still waiting on the backend.
func (m *GameModel) Close() {
	m.cancel()
}

// reset must be called with mu held (or before the model is shared).
func (m *GameModel) reset(method netconfig.KillMethod, iterations int) {
	m.backend.Reset()
	m.status = netconfig.StatusPlaying
	m.hp = netconfig.StartingHP
	m.score = 0
	m.maxScore = iterations
	m.method = method
	m.round++
}

// SetGame validates a new setup and restarts the match with it.
func (m *GameModel) SetGame(method string, iterations int) error {
	km, ok := netconfig.ParseKillMethod(method)
	if !ok {
		return fmt.Errorf("%w: unknown method %q", ErrInvalidConfig, method)
	}
	if iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, iterations)
	}

	m.mu.Lock()
	m.reset(km, iterations)
	m.mu.Unlock()

	log.Printf("[model] new match: %s x%d", km, iterations)
	return nil
}

// Shoot kills a target. Reaching the iteration count starts finalizing.
func (m *GameModel) Shoot(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != netconfig.StatusPlaying {
		return ErrNotPlaying
	}
	if err := m.backend.Kill(id, m.method); err != nil {
		return err
	}

	m.score++
	if m.score >= m.maxScore {
		m.status = netconfig.StatusFinalizing
		log.Printf("[model] score %d reached, waiting for recoveries", m.score)
		go m.finalize(m.round)
	}
	return nil
}

// finalize flips to VICTORY once the backend has no recoveries outstanding.
func (m *GameModel) finalize(round uint64) {
	if err := m.backend.Wait(m.ctx); err != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.round != round || m.status != netconfig.StatusFinalizing {
		return
	}
	m.status = netconfig.StatusVictory
	log.Printf("[model] victory")
}

// GetShot costs the player one HP. Hits only count while the match is in
// play; once the last target is down the result can no longer change.
func (m *GameModel) GetShot() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != netconfig.StatusPlaying {
		return ErrNotPlaying
	}
	m.hp--
	if m.hp <= 0 {
		m.hp = 0
		m.status = netconfig.StatusDefeat
		log.Printf("[model] defeat")
	}
	return nil
}

// CheckGame returns the current snapshot. Targets are only listed while the
// match is in play and stats only once it is won.
func (m *GameModel) CheckGame() messages.MatchState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state := messages.MatchState{
		Status:   m.status,
		Enemies:  []messages.EntityInfo{},
		HP:       m.hp,
		Score:    m.score,
		MaxScore: m.maxScore,
	}
	if m.status == netconfig.StatusPlaying {
		state.Enemies = m.backend.Healthy()
	}
	if m.status == netconfig.StatusVictory {
		state.Stats = m.backend.Stats()
	}
	return state
}

func (m *GameModel) Status() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}
