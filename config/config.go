package config

import (
	"image/color"
	"time"
)

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	// Movement
	Speed    float64 // Pixels per tick while a direction is held
	Rotation float64 // Radians of tilt while moving

	// Sprite
	SpriteSize  int     // Source ship image is SpriteSize x SpriteSize
	SpriteScale float64 // Draw scale; bounds are SpriteSize * SpriteScale
}

// ProjectileConfig contains player and hostile projectile values
type ProjectileConfig struct {
	Speed         float64 // Player shots travel straight up
	Radius        float64
	HostileSpeed  float64 // Hostile shots travel straight down
	HostileRadius float64
}

// EnemyConfig contains target footprint values
type EnemyConfig struct {
	Width      float64
	Height     float64
	NameOffset float64 // Label baseline above the box
}

// CombatConfig contains hostile fire values
type CombatConfig struct {
	HostileFireChance float64 // Per live enemy per tick
}

// PlacementConfig contains spawn placement values
type PlacementConfig struct {
	MaxAttempts int
	Padding     float64 // Used when the arena does not set a margin
}

// SyncConfig contains poll loop values
type SyncConfig struct {
	PollInterval  time.Duration
	ResultBuffer  int // Poll results waiting for the main loop
	OutcomeBuffer int // Destroy outcomes waiting for the main loop
}

// NetworkConfig contains controller connection values
type NetworkConfig struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// MatchConfig contains match setup defaults
type MatchConfig struct {
	DefaultMethod     string
	DefaultIterations int
	MaxIterations     int
	HistoryLimit      int // Victory summaries kept on disk
}

// HUDConfig contains HUD layout and effect timing
type HUDConfig struct {
	Margin        float64
	FontSize      float64
	PulseDuration float32 // Seconds per finalizing pulse
	FlashDuration float32 // Seconds of red tint after a hit
	GridSpacing   float64
	EventLines    int // Event log lines kept under the HUD
}

// Config holds general game configuration
type Config struct {
	Width  int
	Height int
	Title  string
	TPS    int
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	ShowTelemetry bool  // Draw poll round trip info under the HUD
	Seed          int64 // Fixed RNG seed, 0 = random
}

// Global configuration instances
var C *Config
var Player PlayerConfig
var Projectile ProjectileConfig
var Enemy EnemyConfig
var Combat CombatConfig
var Placement PlacementConfig
var Sync SyncConfig
var Network NetworkConfig
var Match MatchConfig
var HUD HUDConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red         = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	LightRed    = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	Pink        = color.RGBA{R: 255, G: 48, B: 221, A: 255} // Target boxes
	DimPink     = color.RGBA{R: 140, G: 40, B: 120, A: 255} // Target awaiting destroy
	Yellow      = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	BrightGreen = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	GridGray    = color.RGBA{R: 51, G: 51, B: 51, A: 255}
	Background  = color.RGBA{R: 10, G: 10, B: 18, A: 255}
	ShipBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	Orange      = color.RGBA{R: 255, G: 140, B: 0, A: 255}
)

func init() {
	C = &Config{
		Width:  800,
		Height: 600,
		Title:  "Chaos Invaders",
		TPS:    60,
	}

	Player = PlayerConfig{
		Speed:       5,
		Rotation:    0.15,
		SpriteSize:  400,
		SpriteScale: 0.10,
	}

	Projectile = ProjectileConfig{
		Speed:         10,
		Radius:        3,
		HostileSpeed:  4,
		HostileRadius: 3,
	}

	Enemy = EnemyConfig{
		Width:      40,
		Height:     40,
		NameOffset: 10,
	}

	Combat = CombatConfig{
		HostileFireChance: 0.005,
	}

	Placement = PlacementConfig{
		MaxAttempts: 100,
		Padding:     10,
	}

	Sync = SyncConfig{
		PollInterval:  500 * time.Millisecond,
		ResultBuffer:  16,
		OutcomeBuffer: 64,
	}

	Network = NetworkConfig{
		ServerURL:      "http://localhost:8080",
		RequestTimeout: 2 * time.Second,
	}

	Match = MatchConfig{
		DefaultMethod:     "SIGKILL",
		DefaultIterations: 5,
		MaxIterations:     50,
		HistoryLimit:      10,
	}

	HUD = HUDConfig{
		Margin:        12,
		FontSize:      14,
		PulseDuration: 0.8,
		FlashDuration: 0.3,
		GridSpacing:   50,
		EventLines:    5,
	}
}
