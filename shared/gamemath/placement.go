package gamemath

import "math/rand/v2"

// DefaultPlacementAttempts caps rejection sampling.
const DefaultPlacementAttempts = 100

// Placement finds spawn positions by rejection sampling inside Region.
// The whole footprint of a placed box stays inside Region.
type Placement struct {
	Region      Rect
	Padding     float64
	MaxAttempts int
}

// Find draws uniform candidates for a w x h footprint and returns the first one
// whose padded box is not blocked. When every attempt is blocked the last
// candidate is returned with ok=false; callers still spawn there.
//
// blocked receives the padded candidate box.
func (p Placement) Find(rng *rand.Rand, w, h float64, blocked func(Rect) bool) (x, y float64, ok bool) {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultPlacementAttempts
	}

	spanX := p.Region.W - w
	if spanX < 0 {
		spanX = 0
	}
	spanY := p.Region.H - h
	if spanY < 0 {
		spanY = 0
	}

	for i := 0; i < attempts; i++ {
		x = p.Region.X + rng.Float64()*spanX
		y = p.Region.Y + rng.Float64()*spanY
		candidate := Rect{X: x, Y: y, W: w, H: h}.Pad(p.Padding)
		if blocked == nil || !blocked(candidate) {
			return x, y, true
		}
	}
	return x, y, false
}

// OverlapsAny reports whether box overlaps any of the others padded by margin.
func OverlapsAny(box Rect, others []Rect, margin float64) bool {
	for _, o := range others {
		if box.Overlaps(o.Pad(margin)) {
			return true
		}
	}
	return false
}
