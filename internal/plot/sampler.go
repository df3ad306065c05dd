package plot

import (
	"iter"
	"math"
	"sort"

	"honnef.co/go/curve"
)

// maxSamples bounds the polyline length for very wide canvases or tiny steps.
const maxSamples = 1 << 16

// boundaryTolerance decides when the last grid point is the upper boundary.
const boundaryTolerance = 1e-9

// Func is a function of one real variable that may be undefined at some x.
type Func interface {
	Eval(x float64) (float64, error)
}

// SamplePoint is one sampled (x, y) pair. Y is meaningful only when Defined is set.
type SamplePoint struct {
	X       float64
	Y       float64
	Defined bool
}

// Polyline is a sampled curve in ascending x.
type Polyline []SamplePoint

// Sample evaluates f across the mapper's visible x range with DefaultStep.
func Sample(f Func, m Mapper) Polyline {
	return SampleStep(f, m, DefaultStep)
}

// MinScale is the smallest scale at which Sample covers a canvas of the given
// width. Below it Sample returns nil.
func MinScale(width float64) float64 {
	return width / (DefaultStep * (maxSamples - 2))
}

// SampleStep evaluates f at xmin + i*step for i = 0, 1, ... and always ends
// exactly at xmax.
//
// Points are computed from the index, not by accumulation. When the span is
// (within tolerance) a whole number of steps the final grid point is snapped to
// xmax; otherwise xmax is appended after the last grid point.
func SampleStep(f Func, m Mapper, step float64) Polyline {
	if f == nil || !(step > 0) {
		return nil
	}
	lo, hi := m.XRange()
	span := hi - lo
	if !(span >= 0) || math.IsInf(span, 0) {
		return nil
	}

	steps := span / step
	n := math.Floor(steps + boundaryTolerance)
	if n+2 > maxSamples {
		return nil
	}
	exact := math.Abs(steps-n) <= boundaryTolerance

	count := int(n) + 1
	if !exact {
		count++
	}
	out := make(Polyline, 0, count)
	for i := 0; i <= int(n); i++ {
		x := lo + float64(i)*step
		if i == int(n) && exact {
			x = hi
		}
		out = append(out, samplePoint(f, x))
	}
	if !exact {
		out = append(out, samplePoint(f, hi))
	}
	return out
}

func samplePoint(f Func, x float64) SamplePoint {
	y, err := f.Eval(x)
	if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
		return SamplePoint{X: x}
	}
	return SamplePoint{X: x, Y: y, Defined: true}
}

// Nearest returns the index of the sample whose x is closest to x.
func (p Polyline) Nearest(x float64) (int, bool) {
	if len(p) == 0 || math.IsNaN(x) {
		return 0, false
	}
	i := sort.Search(len(p), func(i int) bool { return p[i].X >= x })
	switch {
	case i == 0:
		return 0, true
	case i == len(p):
		return len(p) - 1, true
	}
	if x-p[i-1].X <= p[i].X-x {
		return i - 1, true
	}
	return i, true
}

// Segments yields the screen-space line between every pair of consecutive
// defined samples. Undefined samples produce gaps.
func (p Polyline) Segments(m Mapper) iter.Seq[curve.Line] {
	return func(yield func(curve.Line) bool) {
		var pen curve.Point
		for el := range p.Path(m).Elements() {
			switch el.Kind {
			case curve.MoveToKind:
				pen = el.P0
			case curve.LineToKind:
				l := curve.Line{P0: pen, P1: el.P0}
				pen = el.P0
				if !yield(l) {
					return
				}
			}
		}
	}
}

// Path converts the polyline to a screen-space path with one subpath per run of
// defined samples.
func (p Polyline) Path(m Mapper) curve.BezPath {
	var path curve.BezPath
	pen := false
	for _, pt := range p {
		if !pt.Defined {
			pen = false
			continue
		}
		sp := m.ScreenPoint(curve.Pt(pt.X, pt.Y))
		if pen {
			path.LineTo(sp)
		} else {
			path.MoveTo(sp)
			pen = true
		}
	}
	return path
}

// DefinedCount reports how many samples have a value.
func (p Polyline) DefinedCount() int {
	n := 0
	for _, pt := range p {
		if pt.Defined {
			n++
		}
	}
	return n
}
