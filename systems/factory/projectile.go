package factory

import (
	"github.com/envtester/chaos-invaders/archetypes"
	"github.com/envtester/chaos-invaders/components"
	"github.com/yohamta/donburi"
)

// CreateProjectile spawns a player shot.
func CreateProjectile(world donburi.World, x, y, velX, velY, radius float64) *donburi.Entry {
	p := archetypes.Projectile.Spawn(world)
	components.Projectile.SetValue(p, components.ProjectileData{
		X: x, Y: y,
		VelX: velX, VelY: velY,
		Radius: radius,
	})
	return p
}

// CreateHostileProjectile spawns an enemy shot.
func CreateHostileProjectile(world donburi.World, x, y, velX, velY, radius float64) *donburi.Entry {
	p := archetypes.HostileProjectile.Spawn(world)
	components.HostileProjectile.SetValue(p, components.ProjectileData{
		X: x, Y: y,
		VelX: velX, VelY: velY,
		Radius: radius,
	})
	return p
}
