package gamemath

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestPlacementNeverOverlapsWhenAccepted(t *testing.T) {
	p := Placement{
		Region:      Rect{X: 50, Y: 50, W: 700, H: 250},
		Padding:     10,
		MaxAttempts: DefaultPlacementAttempts,
	}

	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*7))
		var placed []Rect
		for i := 0; i < 12; i++ {
			x, y, ok := p.Find(rng, 40, 40, func(c Rect) bool {
				return OverlapsAny(c, placed, p.Padding)
			})
			box := Rect{X: x, Y: y, W: 40, H: 40}
			if ok && OverlapsAny(box.Pad(p.Padding), placed, p.Padding) {
				t.Fatalf("seed %d: accepted box %+v overlaps an existing box", seed, box)
			}
			if x < p.Region.X || x+40 > p.Region.X+p.Region.W || y < p.Region.Y || y+40 > p.Region.Y+p.Region.H {
				t.Fatalf("seed %d: box %+v escaped region", seed, box)
			}
			placed = append(placed, box)
		}
	}
}

func TestPlacementCapReturnsLastCandidate(t *testing.T) {
	p := Placement{Region: Rect{X: 0, Y: 0, W: 100, H: 100}, Padding: 5, MaxAttempts: 100}
	rng := rand.New(rand.NewPCG(3, 4))

	calls := 0
	var last Rect
	x, y, ok := p.Find(rng, 10, 10, func(c Rect) bool {
		calls++
		last = c
		return true
	})

	if ok {
		t.Error("Expected ok=false once every attempt is blocked")
	}
	if calls != 100 {
		t.Errorf("Expected 100 attempts, got %d", calls)
	}
	if want := last.Pad(-5); math.Abs(want.X-x) > 1e-9 || math.Abs(want.Y-y) > 1e-9 {
		t.Errorf("Expected last candidate (%v, %v), got (%v, %v)", want.X, want.Y, x, y)
	}
}

func TestPlacementDefaultsAttemptCap(t *testing.T) {
	p := Placement{Region: Rect{W: 50, H: 50}}
	rng := rand.New(rand.NewPCG(1, 1))
	calls := 0
	p.Find(rng, 10, 10, func(Rect) bool { calls++; return true })
	if calls != DefaultPlacementAttempts {
		t.Errorf("Expected %d attempts, got %d", DefaultPlacementAttempts, calls)
	}
}

func TestPlacementFootprintLargerThanRegion(t *testing.T) {
	p := Placement{Region: Rect{X: 10, Y: 20, W: 30, H: 30}}
	rng := rand.New(rand.NewPCG(9, 9))
	x, y, ok := p.Find(rng, 40, 40, nil)
	if !ok || x != 10 || y != 20 {
		t.Errorf("Expected region origin (10, 20, true), got (%v, %v, %v)", x, y, ok)
	}
}
