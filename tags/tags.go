package tags

import "github.com/yohamta/donburi"

var (
	Player            = donburi.NewTag().SetName("Player")
	Enemy             = donburi.NewTag().SetName("Enemy")
	Projectile        = donburi.NewTag().SetName("Projectile")
	HostileProjectile = donburi.NewTag().SetName("HostileProjectile")
)

// Resolv tags for the placement broadphase
const (
	ResolvEnemy = "Enemy"
	ResolvProbe = "probe"
)
