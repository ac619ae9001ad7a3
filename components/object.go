package components

import (
	"github.com/envtester/chaos-invaders/shared/gamemath"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ObjectData carries an entity's position and bounds.
type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

// Footprint returns the object's axis-aligned box.
func (o *ObjectData) Footprint() gamemath.Rect {
	return gamemath.RectOf(o.Object)
}
