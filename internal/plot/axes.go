package plot

import (
	"math"
	"strconv"
)

// Tick is one axis graduation. Pos is the pixel coordinate along the axis.
type Tick struct {
	Value float64
	Pos   float64
	Label string
}

// AxisTicks holds the graduations of both axes.
type AxisTicks struct {
	X []Tick
	Y []Tick
}

// Ticks returns a tick at every integer unit visible on each axis.
// The tick at zero carries no label.
func Ticks(m Mapper) AxisTicks {
	xlo, xhi := m.XRange()
	ylo, yhi := m.YRange()
	return AxisTicks{
		X: unitTicks(xlo, xhi, m.ScreenX),
		Y: unitTicks(ylo, yhi, m.ScreenY),
	}
}

func unitTicks(lo, hi float64, pos func(float64) float64) []Tick {
	first := math.Ceil(lo)
	last := math.Floor(hi)
	if !(last >= first) {
		return nil
	}
	out := make([]Tick, 0, int(last-first)+1)
	for v := first; v <= last; v++ {
		t := Tick{Value: v, Pos: pos(v)}
		if v != 0 {
			t.Label = strconv.Itoa(int(v))
		}
		out = append(out, t)
	}
	return out
}
