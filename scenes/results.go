package scenes

import (
	"image/color"
	"sync"

	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/envtester/chaos-invaders/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ResultsScene shows how the match ended until the player goes back.
type ResultsScene struct {
	ctx       *Context
	victory   bool
	summary   []messages.RecoveryData
	resultsUI *ui.ResultsUI
	once      sync.Once
	goBack    bool
}

func NewResultsScene(ctx *Context, victory bool, summary []messages.RecoveryData) *ResultsScene {
	return &ResultsScene{ctx: ctx, victory: victory, summary: summary}
}

func (rs *ResultsScene) Update() {
	rs.once.Do(rs.configure)

	rs.resultsUI.Update()
	if actionJustPressed(cfg.ActionMenuSelect) || actionJustPressed(cfg.ActionPause) {
		rs.goBack = true
	}

	if rs.goBack {
		// Victory and defeat only leave through Idle.
		rs.ctx.Session.Stop()
		rs.ctx.Changer.ChangeScene(NewMenuScene(rs.ctx))
	}
}

func (rs *ResultsScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if rs.resultsUI == nil {
		return
	}
	rs.resultsUI.UI.Draw(screen)
}

func (rs *ResultsScene) configure() {
	rs.resultsUI = ui.NewResultsUI(rs.victory, rs.summary, func() { rs.goBack = true })
}
