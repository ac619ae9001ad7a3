package components

import (
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	VelX     float64
	Rotation float64 // Radians, drawn around the sprite center
	Ready    bool    // Bounds known; false keeps the player inert
}

var Player = donburi.NewComponentType[PlayerData]()
