package render

import (
	"testing"

	"github.com/envtester/chaos-invaders/systems"
)

func TestHUDLine(t *testing.T) {
	tests := []struct {
		hud  systems.HUD
		want string
	}{
		{systems.HUD{HP: 3}, "HP: 3   Score: 0/?"},
		{systems.HUD{HP: 2, Score: 1, MaxScore: 5, MaxScoreKnown: true}, "HP: 2   Score: 1/5"},
		{systems.HUD{HP: 0, Score: 5, MaxScore: 5, MaxScoreKnown: true}, "HP: 0   Score: 5/5"},
	}

	for _, tt := range tests {
		if got := HUDLine(tt.hud); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestClamp01(t *testing.T) {
	if clamp01(-1) != 0 || clamp01(2) != 1 || clamp01(0.5) != 0.5 {
		t.Error("Expected values clamped to [0, 1]")
	}
}
