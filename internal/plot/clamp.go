package plot

import "golang.org/x/exp/constraints"

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt16 converts v to a pixel coordinate, saturating at the int16 range.
func ClampInt16(v float64) int16 {
	if v != v {
		return 0
	}
	if v >= 0 {
		v += 0.5
	} else {
		v -= 0.5
	}
	return int16(clamp(v, -32768, 32767))
}
