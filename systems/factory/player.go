package factory

import (
	"github.com/envtester/chaos-invaders/archetypes"
	"github.com/envtester/chaos-invaders/components"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreatePlayer spawns the ship with zero-size bounds. It stays inert until
// its sprite resolves and the bounds are filled in.
func CreatePlayer(world donburi.World, x, y float64) *donburi.Entry {
	player := archetypes.Player.Spawn(world)

	obj := resolv.NewObject(x, y, 0, 0)
	obj.Data = player
	components.Object.SetValue(player, components.ObjectData{Object: obj})
	components.Player.SetValue(player, components.PlayerData{})

	return player
}
