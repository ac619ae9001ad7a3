// Package leveldata provides TMX arena parsing shared between client and tools.
// It has no dependencies on ebitengine, donburi or resolv.
package leveldata

// ArenaLayout holds everything the match needs from an arena TMX file.
type ArenaLayout struct {
	Name        string
	MapWidth    int
	MapHeight   int
	PlayField   Area // Player clamp and projectile bounds
	SpawnBand   Area // Region enemy footprints are placed in
	SpawnMargin float64
	PlayerSpawn SpawnPoint
}

// Area is an axis-aligned region in map pixels.
type Area struct {
	X, Y, W, H float64
}

// SpawnPoint is where the ship starts; X is the ship center.
type SpawnPoint struct {
	X, Y float64
}
