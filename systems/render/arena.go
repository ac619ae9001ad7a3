// Package render draws the arena. Everything here only reads the world; the
// match session owns all writes.
package render

import (
	"image/color"

	"github.com/envtester/chaos-invaders/components"
	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/fonts"
	"github.com/envtester/chaos-invaders/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// DrawGrid clears the frame and draws the background grid.
func DrawGrid(e *ecs.ECS, screen *ebiten.Image) {
	width := float32(screen.Bounds().Dx())
	height := float32(screen.Bounds().Dy())
	vector.FillRect(screen, 0, 0, width, height, cfg.Background, false)

	step := float32(cfg.HUD.GridSpacing)
	if step <= 0 {
		return
	}
	for x := float32(0); x <= width; x += step {
		vector.FillRect(screen, x, 0, 1, height, cfg.GridGray, false)
	}
	for y := float32(0); y <= height; y += step {
		vector.FillRect(screen, 0, y, width, 1, cfg.GridGray, false)
	}
}

// DrawEnemies draws every target box with its name above it. Targets with a
// destroy in flight are dimmed.
func DrawEnemies(e *ecs.ECS, screen *ebiten.Image) {
	nameFont := fonts.Small.Get()

	components.Enemy.Each(e.World, func(entry *donburi.Entry) {
		enemy := components.Enemy.Get(entry)
		box := components.Object.Get(entry).Footprint()

		boxColor := cfg.Pink
		if enemy.KillPending {
			boxColor = cfg.DimPink
		}
		vector.FillRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), boxColor, false)

		bounds := text.BoundString(nameFont, enemy.DisplayName)
		nameX := int(box.X + box.W/2 - float64(bounds.Dx())/2)
		nameY := int(box.Y - cfg.Enemy.NameOffset)
		text.Draw(screen, enemy.DisplayName, nameFont, nameX, nameY, cfg.White)
	})
}

// DrawProjectiles draws player shots in yellow and enemy shots in orange.
func DrawProjectiles(e *ecs.ECS, screen *ebiten.Image) {
	drawShots(e.World, screen, components.Projectile, cfg.Yellow)
	drawShots(e.World, screen, components.HostileProjectile, cfg.Orange)
}

func drawShots(world donburi.World, screen *ebiten.Image, comp *donburi.ComponentType[components.ProjectileData], c color.Color) {
	comp.Each(world, func(entry *donburi.Entry) {
		p := comp.Get(entry)
		if p.MarkedForRemoval {
			return
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), c, true)
	})
}

var shipImage *ebiten.Image
var shipDrawOp = &ebiten.DrawImageOptions{}

// ShipSize is the drawn ship's width and height in screen pixels.
func ShipSize() (float64, float64) {
	size := float64(cfg.Player.SpriteSize) * cfg.Player.SpriteScale
	return size, size
}

// NewDrawPlayer returns a renderer for the ship. The ship image is built on
// first draw. Nothing is drawn until the player's bounds are resolved.
func NewDrawPlayer(session *systems.MatchSession) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		entry := session.Player()
		if entry == nil || !entry.Valid() || !components.Player.Get(entry).Ready {
			return
		}
		if shipImage == nil {
			shipImage = buildShip(cfg.Player.SpriteSize)
		}
		obj := components.Object.Get(entry)
		player := components.Player.Get(entry)
		half := float64(cfg.Player.SpriteSize) / 2

		shipDrawOp.GeoM.Reset()
		shipDrawOp.GeoM.Translate(-half, -half)
		shipDrawOp.GeoM.Rotate(player.Rotation)
		shipDrawOp.GeoM.Scale(cfg.Player.SpriteScale, cfg.Player.SpriteScale)
		shipDrawOp.GeoM.Translate(obj.X+obj.W/2, obj.Y+obj.H/2)

		shipDrawOp.ColorScale.Reset()
		if flash := session.HUDData().FlashValue; flash > 0 {
			shipDrawOp.ColorScale.Scale(1, 1-flash, 1-flash, 1)
		}
		screen.DrawImage(shipImage, shipDrawOp)
	}
}

// buildShip draws a simple fighter facing up on a size x size canvas.
func buildShip(size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	s := float32(size)

	// Hull
	vector.FillRect(img, s*0.42, s*0.2, s*0.16, s*0.65, cfg.ShipBlue, true)
	vector.DrawFilledCircle(img, s*0.5, s*0.22, s*0.08, cfg.ShipBlue, true)
	// Wings
	vector.FillRect(img, s*0.1, s*0.55, s*0.8, s*0.14, cfg.ShipBlue, true)
	vector.FillRect(img, s*0.1, s*0.45, s*0.08, s*0.3, cfg.ShipBlue, true)
	vector.FillRect(img, s*0.82, s*0.45, s*0.08, s*0.3, cfg.ShipBlue, true)
	// Cockpit and engine
	vector.DrawFilledCircle(img, s*0.5, s*0.4, s*0.05, cfg.White, true)
	vector.FillRect(img, s*0.44, s*0.85, s*0.12, s*0.08, cfg.Orange, true)
	return img
}
