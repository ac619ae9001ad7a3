package systems

import (
	"context"
	"log"
	"time"

	"github.com/envtester/chaos-invaders/components"
	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/envtester/chaos-invaders/shared/netconfig"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// runSync polls once right away and then on every interval until ctx is done.
// A poll still in flight when the next interval fires is left running; Pump
// applies results in the order they arrive.
func (s *MatchSession) runSync(ctx context.Context, gen uint64) {
	interval := s.tuning.PollInterval
	if interval <= 0 {
		interval = cfg.Sync.PollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.poll(ctx, gen)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx, gen)
		}
	}
}

func (s *MatchSession) poll(ctx context.Context, gen uint64) {
	seq := s.Polls.Begin(time.Now())
	s.Exec(func() {
		state, err := s.server.QueryMatchState(ctx)
		post(ctx, s.results, pollResult{gen: gen, seq: seq, state: state, err: err})
	})
}

// Tick polls the server and applies the result before returning.
func (s *MatchSession) Tick(ctx context.Context) {
	seq := s.Polls.Begin(time.Now())
	state, err := s.server.QueryMatchState(ctx)
	s.Polls.End(seq, time.Now(), err != nil)
	s.applyPoll(state, err)
}

// applyPoll is the only place match status moves forward.
func (s *MatchSession) applyPoll(state *messages.MatchState, err error) {
	if err != nil {
		log.Printf("[sync] poll failed, retrying next interval: %v", err)
		return
	}
	match := s.matchData()
	if state == nil || !match.Active() {
		return
	}

	switch netconfig.ParseStatus(state.Status) {
	case cfg.MatchStateFinalizing:
		if match.State == cfg.MatchStateFinalizing {
			s.updateHUD(state)
			return
		}
		if err := TransitionMatch(match, cfg.MatchStateFinalizing); err != nil {
			log.Printf("[sync] %v", err)
			return
		}
		log.Printf("[sync] match finalizing")
		match.HostileSuppressed = true
		s.clearProjectiles(components.HostileProjectile)
		hud := s.HUDData()
		hud.Pulse = gween.New(0.3, 1, cfg.HUD.PulseDuration, ease.InOutSine)
		s.updateHUD(state)
		if s.hooks.OnFinalizing != nil {
			s.hooks.OnFinalizing()
		}

	case cfg.MatchStateVictory:
		if !s.conclude(cfg.MatchStateVictory) {
			return
		}
		match.Summary = state.Stats
		log.Printf("[sync] victory, %d results", len(state.Stats))
		AppendHistory(SavedVictory{
			Method:     s.lastStart.Method,
			Iterations: s.lastStart.Iterations,
			Results:    state.Stats,
		})
		if s.hooks.OnVictory != nil {
			s.hooks.OnVictory(state.Stats)
		}

	case cfg.MatchStateDefeat:
		if !s.conclude(cfg.MatchStateDefeat) {
			return
		}
		log.Printf("[sync] defeat")
		if s.hooks.OnDefeat != nil {
			s.hooks.OnDefeat()
		}

	default:
		s.updateHUD(state)
		if len(state.Enemies) == 0 {
			s.Registry.Clear()
			if !s.noTargets && s.hooks.OnNoTargets != nil {
				s.hooks.OnNoTargets()
			}
			s.noTargets = true
			return
		}
		s.noTargets = false
		s.Registry.Reconcile(state.Enemies)
	}
}

// conclude ends the match: the poll timer stops and the field is emptied.
func (s *MatchSession) conclude(to cfg.MatchStateID) bool {
	if err := TransitionMatch(s.matchData(), to); err != nil {
		log.Printf("[sync] %v", err)
		return false
	}
	if s.syncCancel != nil {
		s.syncCancel()
		s.syncCancel = nil
	}
	s.Registry.Clear()
	s.clearProjectiles(components.Projectile)
	s.clearProjectiles(components.HostileProjectile)
	return true
}

func (s *MatchSession) updateHUD(state *messages.MatchState) {
	match := s.matchData()
	match.HP = state.HP
	match.Score = state.Score
	match.MaxScore = state.MaxScore
	match.MaxScoreKnown = true
	if s.hooks.OnHUD != nil {
		s.hooks.OnHUD(s.HUD())
	}
}
