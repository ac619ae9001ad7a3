package scenes

import (
	"image/color"
	"log"
	"sync"

	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/envtester/chaos-invaders/systems"
	"github.com/envtester/chaos-invaders/systems/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// ArenaScene runs a match: one session step per tick plus the renderers.
type ArenaScene struct {
	ctx  *Context
	ecs  *ecs.ECS
	once sync.Once

	// Set by session hooks, acted on after the step finishes.
	next interface{}
}

func NewArenaScene(ctx *Context) *ArenaScene {
	return &ArenaScene{ctx: ctx}
}

func (as *ArenaScene) Update() {
	as.once.Do(as.configure)

	if actionJustPressed(cfg.ActionPause) {
		as.ctx.Session.Stop()
		as.ctx.Changer.ChangeScene(NewMenuScene(as.ctx))
		return
	}

	as.ecs.Update()

	if as.next != nil {
		as.ctx.Changer.ChangeScene(as.next)
	}
}

func (as *ArenaScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if as.ecs == nil {
		return
	}
	as.ecs.Draw(screen)
}

func (as *ArenaScene) configure() {
	session := as.ctx.Session

	events := systems.NewEventLog(cfg.HUD.EventLines)
	events.Add(systems.EventInfo, "Connected to %s", cfg.Network.ServerURL)
	if req := session.LastStart(); req.Method != "" {
		events.Add(systems.EventInfo, "Match started: %s x%d", req.Method, req.Iterations)
	}

	session.SetHooks(systems.Hooks{
		OnFinalizing: func() {
			log.Printf("[arena] waiting for the controller to finish measurements")
			events.Add(systems.EventWarning, "All targets down, measuring recovery")
		},
		OnPlayerHit: func() {
			events.Add(systems.EventError, "Hit taken")
		},
		OnDestroyed: func(name string, err error) {
			if err != nil {
				events.Add(systems.EventWarning, "Shot at %s rejected", name)
				return
			}
			events.Add(systems.EventInfo, "Killed %s", name)
		},
		OnNoTargets: func() {
			events.Add(systems.EventError, "WARNING: No targets detected")
		},
		OnVictory: func(summary []messages.RecoveryData) {
			as.next = NewResultsScene(as.ctx, true, summary)
		},
		OnDefeat: func() {
			as.next = NewResultsScene(as.ctx, false, nil)
		},
	})

	session.ResolvePlayerBounds(render.ShipSize())

	as.ecs = ecs.NewECS(session.World)

	as.ecs.AddSystem(func(*ecs.ECS) {
		session.Step(pollActions())
	})

	as.ecs.AddRenderer(cfg.Default, render.DrawGrid)
	as.ecs.AddRenderer(cfg.Default, render.DrawEnemies)
	as.ecs.AddRenderer(cfg.Default, render.DrawProjectiles)
	as.ecs.AddRenderer(cfg.Default, render.NewDrawPlayer(session))
	as.ecs.AddRenderer(cfg.Overlay, render.NewDrawHUD(session))
	as.ecs.AddRenderer(cfg.Overlay, render.NewDrawEventLog(events))
}
