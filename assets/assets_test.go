package assets

import "testing"

func TestEmbeddedArena(t *testing.T) {
	l := NewLevelLoader()
	layout, err := l.Arena(DefaultArena)
	if err != nil {
		t.Fatalf("Arena: %v", err)
	}
	if layout.PlayField.W != 800 || layout.PlayField.H != 600 {
		t.Errorf("Expected 800x600 play-field, got %vx%v", layout.PlayField.W, layout.PlayField.H)
	}
	if layout.SpawnBand.Y+layout.SpawnBand.H > layout.PlayField.H/2 {
		t.Errorf("Expected spawn band in the upper half, got %+v", layout.SpawnBand)
	}
	if _, err := l.Arena("missing"); err == nil {
		t.Error("Expected error for unknown arena")
	}
}
