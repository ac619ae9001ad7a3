package gamemath

// ClampFloat clamps v to [lo, hi]. If hi < lo, lo wins.
func ClampFloat(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// HorizontalIntent resolves held left/right keys into a direction.
// Left is tested first, so holding both moves left.
func HorizontalIntent(left, right bool) float64 {
	if left {
		return -1
	}
	if right {
		return 1
	}
	return 0
}

// OutsideVertical reports whether a point with the given radius has fully left
// the band [top, bottom].
func OutsideVertical(y, radius, top, bottom float64) bool {
	return y+radius <= top || y-radius >= bottom
}
