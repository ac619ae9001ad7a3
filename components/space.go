package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Space is the singleton broadphase holding every target footprint.
var Space = donburi.NewComponentType[resolv.Space]()
