package archetypes

import (
	"github.com/envtester/chaos-invaders/components"
	"github.com/envtester/chaos-invaders/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Object,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Enemy,
		components.Object,
	)
	Projectile = newArchetype(
		tags.Projectile,
		components.Projectile,
	)
	HostileProjectile = newArchetype(
		tags.HostileProjectile,
		components.HostileProjectile,
	)
	Space = newArchetype(
		components.Space,
	)
	Match = newArchetype(
		components.Match,
	)
	HUD = newArchetype(
		components.HUD,
	)
	Input = newArchetype(
		components.Input,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity with the archetype's components. It takes a plain
// world so headless code can spawn without an ecs.ECS.
func (a *archetype) Spawn(world donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	e := world.Entry(world.Create(
		append(a.components, cs...)...,
	))
	return e
}
