package scenes

import (
	"fmt"
	"image/color"
	"sync"

	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/envtester/chaos-invaders/systems"
	"github.com/envtester/chaos-invaders/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// MenuScene picks the match setup and asks the controller to start it.
type MenuScene struct {
	ctx    *Context
	menuUI *ui.MenuUI
	once   sync.Once
}

// NewMenuScene creates a new menu scene
func NewMenuScene(ctx *Context) *MenuScene {
	return &MenuScene{ctx: ctx}
}

func (ms *MenuScene) Update() {
	ms.once.Do(ms.configure)

	ms.menuUI.Update()
	if actionJustPressed(cfg.ActionMenuSelect) {
		ms.menuUI.Submit()
	}

	// Start replies are applied here, on the main goroutine.
	ms.ctx.Session.Pump()
}

func (ms *MenuScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ms.menuUI == nil {
		return
	}
	ms.menuUI.UI.Draw(screen)
}

func (ms *MenuScene) configure() {
	method, iterations := cfg.Match.DefaultMethod, cfg.Match.DefaultIterations
	if saved := systems.LoadLastMatchConfig(); saved != nil {
		method, iterations = saved.Method, saved.Iterations
	}

	ms.menuUI = ui.NewMenuUI(method, iterations, cfg.Match.MaxIterations, ms.onStart)
	if history := systems.LoadHistory(); len(history) > 0 {
		ms.menuUI.SetHistory(fmt.Sprintf("%d victories on record", len(history)))
	}

	ms.ctx.Session.SetHooks(systems.Hooks{
		OnStarted: func(req messages.StartRequest) {
			ms.ctx.Changer.ChangeScene(NewArenaScene(ms.ctx))
		},
		OnStartFailed: func(err error) {
			ms.menuUI.SetStarting(false)
			ms.menuUI.SetStatus(fmt.Sprintf("Could not start match: %v", err))
		},
	})
}

func (ms *MenuScene) onStart(method string, iterations int) {
	err := ms.ctx.Session.RequestStart(messages.StartRequest{Method: method, Iterations: iterations})
	if err != nil {
		ms.menuUI.SetStatus(err.Error())
		return
	}
	ms.menuUI.SetStarting(true)
	ms.menuUI.SetStatus("Starting...")
}
