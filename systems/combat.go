package systems

import (
	"log"

	"github.com/envtester/chaos-invaders/components"
	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/shared/gamemath"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// resolvePlayerFire tests every live shot against enemies in insertion order.
// The first enemy hit wins. It is marked KillPending and a destroy request is
// sent; the reply comes back through Pump.
func (s *MatchSession) resolvePlayerFire() {
	enemies := s.Registry.Entries()

	components.Projectile.Each(s.World, func(e *donburi.Entry) {
		shot := components.Projectile.Get(e)
		if shot.MarkedForRemoval {
			return
		}
		for _, enemyEntry := range enemies {
			enemy := components.Enemy.Get(enemyEntry)
			if enemy.KillPending {
				continue
			}
			box := components.Object.Get(enemyEntry).Footprint()
			if !gamemath.CircleHitsRect(shot.X, shot.Y, shot.Radius, box) {
				continue
			}
			shot.MarkedForRemoval = true
			enemy.KillPending = true
			s.requestDestroy(enemyEntry.Entity(), enemy.ID, enemy.DisplayName)
			return
		}
	})
}

func (s *MatchSession) requestDestroy(entity donburi.Entity, id, name string) {
	ctx, gen := s.ctx, s.gen
	s.Exec(func() {
		err := s.server.RequestDestroy(ctx, id)
		post(ctx, s.outcomes, destroyOutcome{gen: gen, entity: entity, id: id, name: name, err: err})
	})
}

// applyOutcome rolls back a rejected destroy. The enemy may already be gone,
// in which case nothing happens. Accepted destroys wait for the next poll.
func (s *MatchSession) applyOutcome(o destroyOutcome) {
	if s.hooks.OnDestroyed != nil {
		s.hooks.OnDestroyed(o.name, o.err)
	}
	if o.err == nil {
		return
	}
	log.Printf("[combat] destroy %s rejected: %v", o.id, o.err)
	if !s.World.Valid(o.entity) {
		return
	}
	entry := s.World.Entry(o.entity)
	if !entry.HasComponent(components.Enemy) {
		return
	}
	enemy := components.Enemy.Get(entry)
	if enemy.ID != o.id {
		return
	}
	enemy.KillPending = false
}

// resolveHostileFire checks enemy shots against the player box. The player
// only takes part once its bounds are known.
func (s *MatchSession) resolveHostileFire() {
	if !components.Player.Get(s.player).Ready {
		return
	}
	box := components.Object.Get(s.player).Footprint()

	components.HostileProjectile.Each(s.World, func(e *donburi.Entry) {
		shot := components.HostileProjectile.Get(e)
		if shot.MarkedForRemoval || !box.Contains(shot.X, shot.Y) {
			return
		}
		shot.MarkedForRemoval = true
		s.playerHit()
	})
}

func (s *MatchSession) playerHit() {
	hud := s.HUDData()
	hud.Hits++
	hud.Flash = gween.New(1, 0, cfg.HUD.FlashDuration, ease.OutQuad)
	hud.FlashValue = 1
	if s.hooks.OnPlayerHit != nil {
		s.hooks.OnPlayerHit()
	}

	ctx := s.ctx
	s.Exec(func() {
		if err := s.server.NotifyPlayerHit(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[combat] hit notification failed: %v", err)
		}
	})
}

