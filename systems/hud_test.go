package systems

import (
	"errors"
	"testing"

	"github.com/envtester/chaos-invaders/components"
	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

func TestPulseOnlyWhileFinalizing(t *testing.T) {
	hud := &components.HUDData{Pulse: gween.New(0, 1, 1, ease.Linear)}
	match := &components.MatchData{State: cfg.MatchStateFinalizing}

	UpdateHUDEffects(hud, match, 0.5)
	if hud.PulseValue <= 0 {
		t.Errorf("Expected pulse to advance, got %v", hud.PulseValue)
	}

	match.State = cfg.MatchStateVictory
	UpdateHUDEffects(hud, match, 0.1)
	if hud.PulseValue != 0 {
		t.Errorf("Expected pulse off outside finalizing, got %v", hud.PulseValue)
	}
}

func TestFlashEnds(t *testing.T) {
	hud := &components.HUDData{Flash: gween.New(1, 0, 0.3, ease.Linear)}
	match := &components.MatchData{State: cfg.MatchStateRunning}

	UpdateHUDEffects(hud, match, 0.1)
	if hud.FlashValue <= 0 {
		t.Errorf("Expected flash running, got %v", hud.FlashValue)
	}
	UpdateHUDEffects(hud, match, 1)
	if hud.Flash != nil || hud.FlashValue != 0 {
		t.Error("Expected flash cleared once finished")
	}
}

func TestValidateStartRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     messages.StartRequest
		wantErr bool
	}{
		{"sigkill", messages.StartRequest{Method: "SIGKILL", Iterations: 1}, false},
		{"sigsegv", messages.StartRequest{Method: "SIGSEGV", Iterations: 10}, false},
		{"lowercase", messages.StartRequest{Method: "sigkill", Iterations: 1}, true},
		{"unknown", messages.StartRequest{Method: "SIGHUP", Iterations: 1}, true},
		{"zero iterations", messages.StartRequest{Method: "SIGTERM", Iterations: 0}, true},
		{"negative iterations", messages.StartRequest{Method: "SIGTERM", Iterations: -2}, true},
		{"too many", messages.StartRequest{Method: "SIGTERM", Iterations: 1000}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStartRequest(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidStart) {
				t.Errorf("Expected ErrInvalidStart, got %v", err)
			}
		})
	}
}
