package systems

import (
	"github.com/envtester/chaos-invaders/components"
	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/shared/gamemath"
	"github.com/envtester/chaos-invaders/systems/factory"
	"github.com/yohamta/donburi"
)

// Step advances the match by one tick and reports whether it is still active.
// Completions posted since the last tick are applied first, so a tick never
// sees a collection half way through a change.
func (s *MatchSession) Step(actions [cfg.ActionCount]bool) bool {
	s.Pump()

	match := s.matchData()
	if !match.Active() {
		return false
	}

	input := UpdateInput(s.World, actions)
	s.updatePlayer(input)

	if match.CombatEnabled() && !match.HostileSuppressed {
		s.spawnHostileFire()
	}

	s.advance(components.Projectile)
	s.advance(components.HostileProjectile)

	if match.CombatEnabled() {
		s.resolvePlayerFire()
		s.resolveHostileFire()
	}

	s.sweep(components.Projectile)
	s.sweep(components.HostileProjectile)

	UpdateHUDEffects(s.HUDData(), match, 1/float32(cfg.C.TPS))
	return true
}

// updatePlayer applies held keys. Left is checked first, so holding both
// moves left. An inert player does nothing.
func (s *MatchSession) updatePlayer(input *components.InputData) {
	player := components.Player.Get(s.player)
	if !player.Ready {
		return
	}
	obj := components.Object.Get(s.player)

	dir := gamemath.HorizontalIntent(input.Pressed(cfg.ActionMoveLeft), input.Pressed(cfg.ActionMoveRight))
	player.VelX = dir * s.tuning.PlayerSpeed
	player.Rotation = dir * s.tuning.PlayerRotation

	field := s.tuning.PlayField
	obj.X = gamemath.ClampFloat(obj.X+player.VelX, field.X, field.X+field.W-obj.W)

	if input.JustPressed(cfg.ActionFire) && s.matchData().CombatEnabled() {
		factory.CreateProjectile(s.World, obj.X+obj.W/2, obj.Y, 0, -s.tuning.ShotSpeed, s.tuning.ShotRadius)
	}
}

// spawnHostileFire rolls once per enemy that is not awaiting a destroy.
func (s *MatchSession) spawnHostileFire() {
	for _, entry := range s.Registry.Entries() {
		if components.Enemy.Get(entry).KillPending {
			continue
		}
		if s.Rand.Float64() >= s.tuning.HostileFireChance {
			continue
		}
		box := components.Object.Get(entry).Footprint()
		cx, _ := box.Center()
		factory.CreateHostileProjectile(s.World, cx, box.Y+box.H, 0, s.tuning.HostileSpeed, s.tuning.HostileRadius)
	}
}

// advance moves projectiles and marks those that left the play-field.
func (s *MatchSession) advance(comp *donburi.ComponentType[components.ProjectileData]) {
	field := s.tuning.PlayField
	comp.Each(s.World, func(e *donburi.Entry) {
		p := comp.Get(e)
		if p.MarkedForRemoval {
			return
		}
		p.X += p.VelX
		p.Y += p.VelY
		if gamemath.OutsideVertical(p.Y, p.Radius, field.Y, field.Y+field.H) {
			p.MarkedForRemoval = true
		}
	})
}

// sweep removes marked projectiles after iteration is done.
func (s *MatchSession) sweep(comp *donburi.ComponentType[components.ProjectileData]) {
	var toRemove []donburi.Entity
	comp.Each(s.World, func(e *donburi.Entry) {
		if comp.Get(e).MarkedForRemoval {
			toRemove = append(toRemove, e.Entity())
		}
	})
	for _, e := range toRemove {
		s.World.Remove(e)
	}
}

func (s *MatchSession) clearProjectiles(comp *donburi.ComponentType[components.ProjectileData]) {
	var toRemove []donburi.Entity
	comp.Each(s.World, func(e *donburi.Entry) {
		toRemove = append(toRemove, e.Entity())
	})
	for _, e := range toRemove {
		s.World.Remove(e)
	}
}

// ProjectileCount returns the number of live projectiles of one kind.
func (s *MatchSession) ProjectileCount(comp *donburi.ComponentType[components.ProjectileData]) int {
	n := 0
	comp.Each(s.World, func(*donburi.Entry) { n++ })
	return n
}
