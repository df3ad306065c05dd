package plot

import "honnef.co/go/curve"

// ClipLine clips l to r using Liang–Barsky. ok is false when nothing of the
// segment lies inside r.
func ClipLine(l curve.Line, r curve.Rect) (curve.Line, bool) {
	x0, y0 := l.P0.Splat()
	dx := l.P1.X - x0
	dy := l.P1.Y - y0
	u1, u2 := 0.0, 1.0

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - r.X0, r.X1 - x0, y0 - r.Y0, r.Y1 - y0}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return curve.Line{}, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > u2 {
				return curve.Line{}, false
			}
			if t > u1 {
				u1 = t
			}
		} else {
			if t < u1 {
				return curve.Line{}, false
			}
			if t < u2 {
				u2 = t
			}
		}
	}

	clampPt := func(pt curve.Point) curve.Point {
		return curve.Pt(clamp(pt.X, r.X0, r.X1), clamp(pt.Y, r.Y0, r.Y1))
	}
	return curve.Line{
		P0: clampPt(curve.Pt(x0+u1*dx, y0+u1*dy)),
		P1: clampPt(curve.Pt(x0+u2*dx, y0+u2*dy)),
	}, true
}
