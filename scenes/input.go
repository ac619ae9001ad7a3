package scenes

import (
	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyBindings maps each action to the keys that trigger it.
var keyBindings = map[cfg.ActionID][]ebiten.Key{
	cfg.ActionMoveLeft:   {ebiten.KeyA, ebiten.KeyArrowLeft},
	cfg.ActionMoveRight:  {ebiten.KeyD, ebiten.KeyArrowRight},
	cfg.ActionFire:       {ebiten.KeySpace},
	cfg.ActionPause:      {ebiten.KeyEscape},
	cfg.ActionMenuSelect: {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
}

// pollActions reads the held state of every bound action.
func pollActions() [cfg.ActionCount]bool {
	var actions [cfg.ActionCount]bool
	for action, keys := range keyBindings {
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				actions[action] = true
				break
			}
		}
	}
	return actions
}

// actionJustPressed reports a key-down edge on any key bound to the action.
func actionJustPressed(action cfg.ActionID) bool {
	for _, key := range keyBindings[action] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}
