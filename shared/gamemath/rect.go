package gamemath

import "github.com/solarlune/resolv"

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// RectOf returns the footprint of a resolv object.
func RectOf(obj *resolv.Object) Rect {
	return Rect{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H}
}

// Pad grows the box by margin on every side.
func (r Rect) Pad(margin float64) Rect {
	return Rect{X: r.X - margin, Y: r.Y - margin, W: r.W + 2*margin, H: r.H + 2*margin}
}

// Center returns the box midpoint.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether the point lies inside the box, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Overlaps runs a separating-axis test on two axis-aligned boxes. Boxes that
// only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	// For axis-aligned boxes the only candidate separating axes are X and Y.
	if r.X+r.W <= o.X || o.X+o.W <= r.X {
		return false
	}
	if r.Y+r.H <= o.Y || o.Y+o.H <= r.Y {
		return false
	}
	return true
}

// CircleHitsRect compares the distance between a circle center and the box
// center on each axis against the box half-extent plus the radius.
func CircleHitsRect(cx, cy, radius float64, r Rect) bool {
	bx, by := r.Center()
	dx := cx - bx
	if dx < 0 {
		dx = -dx
	}
	dy := cy - by
	if dy < 0 {
		dy = -dy
	}
	return dx <= r.W/2+radius && dy <= r.H/2+radius
}
