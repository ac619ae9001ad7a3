package factory

import (
	"github.com/envtester/chaos-invaders/archetypes"
	"github.com/envtester/chaos-invaders/components"
	"github.com/envtester/chaos-invaders/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateEnemy spawns a target at a fixed position and registers its footprint
// in the space.
func CreateEnemy(world donburi.World, space *resolv.Space, id, name string, x, y, w, h float64) *donburi.Entry {
	enemy := archetypes.Enemy.Spawn(world)

	obj := resolv.NewObject(x, y, w, h, tags.ResolvEnemy)
	obj.Data = enemy
	components.Object.SetValue(enemy, components.ObjectData{Object: obj})
	components.Enemy.SetValue(enemy, components.EnemyData{
		ID:          id,
		DisplayName: name,
	})

	if space != nil {
		space.Add(obj)
	}

	return enemy
}

// DestroyEnemy removes a target and its footprint.
func DestroyEnemy(world donburi.World, space *resolv.Space, enemy *donburi.Entry) {
	if !enemy.Valid() {
		return
	}
	obj := components.Object.Get(enemy)
	if space != nil && obj != nil && obj.Object != nil {
		space.Remove(obj.Object)
	}
	world.Remove(enemy.Entity())
}
