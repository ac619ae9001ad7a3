package components

import "github.com/yohamta/donburi"

// EnemyData mirrors one server-reported target.
type EnemyData struct {
	ID          string // Server ID, registry primary key
	DisplayName string
	KillPending bool // Destroy request in flight; no further hits until it resolves
}

var Enemy = donburi.NewComponentType[EnemyData]()
