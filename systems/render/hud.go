package render

import (
	"fmt"
	"image/color"
	"time"

	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/fonts"
	"github.com/envtester/chaos-invaders/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// HUDLine formats the status line. The max score reads "?" until the first
// running poll reports it.
func HUDLine(h systems.HUD) string {
	maxText := "?"
	if h.MaxScoreKnown {
		maxText = fmt.Sprintf("%d", h.MaxScore)
	}
	return fmt.Sprintf("HP: %d   Score: %d/%s", h.HP, h.Score, maxText)
}

// TelemetryLine summarizes recent polls for the debug overlay.
func TelemetryLine(session *systems.MatchSession) string {
	rtt := session.Polls.AverageRTT().Round(time.Millisecond)
	return fmt.Sprintf("poll rtt %v  in flight %d  targets %d",
		rtt, session.Polls.InFlight(), session.Registry.Len())
}

// NewDrawHUD returns the overlay renderer: status line, finalizing banner,
// hit flash and optional poll telemetry.
func NewDrawHUD(session *systems.MatchSession) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		width := screen.Bounds().Dx()
		height := screen.Bounds().Dy()
		margin := int(cfg.HUD.Margin)
		hud := session.HUDData()

		if hud.FlashValue > 0 {
			alpha := uint8(90 * hud.FlashValue)
			vector.FillRect(screen, 0, 0, float32(width), float32(height), color.NRGBA{R: 255, A: alpha}, false)
		}

		hudFont := fonts.Regular.Get()
		text.Draw(screen, HUDLine(session.HUD()), hudFont, margin, margin+int(cfg.HUD.FontSize), cfg.White)

		if session.State() == cfg.MatchStateFinalizing {
			banner := "FINALIZING..."
			bannerFont := fonts.Bold.Get()
			bounds := text.BoundString(bannerFont, banner)
			alpha := uint8(255 * clamp01(hud.PulseValue))
			text.Draw(screen, banner, bannerFont, (width-bounds.Dx())/2, height/2,
				color.NRGBA{R: cfg.Yellow.R, G: cfg.Yellow.G, B: cfg.Yellow.B, A: alpha})
		}

		if cfg.Debug.ShowTelemetry {
			text.Draw(screen, TelemetryLine(session), fonts.Small.Get(), margin, height-margin, cfg.BrightGreen)
		}
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func eventColor(kind systems.EventKind) color.Color {
	switch kind {
	case systems.EventWarning:
		return cfg.Yellow
	case systems.EventError:
		return cfg.LightRed
	}
	return cfg.White
}

// NewDrawEventLog returns a renderer for the event log under the HUD line.
func NewDrawEventLog(events *systems.EventLog) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		logFont := fonts.Small.Get()
		margin := int(cfg.HUD.Margin)
		lineHeight := logFont.Metrics().Height.Ceil()
		y := margin + int(cfg.HUD.FontSize) + lineHeight + margin/2

		for _, ev := range events.Events() {
			text.Draw(screen, ev.Line(), logFont, margin, y, eventColor(ev.Kind))
			y += lineHeight
		}
	}
}
