package components

import "github.com/yohamta/donburi"

// ProjectileData is a moving point hazard. Velocity never changes after spawn.
type ProjectileData struct {
	X, Y             float64
	VelX, VelY       float64
	Radius           float64
	MarkedForRemoval bool
}

// Player shots and enemy shots share a layout but are distinct component types
// so each resolver only ever queries its own kind.
var (
	Projectile        = donburi.NewComponentType[ProjectileData]()
	HostileProjectile = donburi.NewComponentType[ProjectileData]()
)
