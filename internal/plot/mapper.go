package plot

import (
	"errors"
	"fmt"
	"math"

	"honnef.co/go/curve"
)

var ErrInvalidConfig = errors.New("invalid plot config")

const (
	// DefaultScale is pixels per mathematical unit.
	DefaultScale = 30
	// DefaultStep is the sampling step in mathematical units.
	DefaultStep = 0.1
	// DefaultPointRadius is the hit-test threshold and marker radius in pixels.
	DefaultPointRadius = 10
	// DefaultLineWidth is the curve stroke width in pixels.
	DefaultLineWidth = 2
)

// Config describes the canvas in pixels and the fixed scale.
type Config struct {
	Width  float64
	Height float64
	Scale  float64
}

func (c Config) validate() error {
	bad := func(v float64) bool { return !(v > 0) || math.IsInf(v, 0) }
	switch {
	case bad(c.Width):
		return fmt.Errorf("%w: width %g", ErrInvalidConfig, c.Width)
	case bad(c.Height):
		return fmt.Errorf("%w: height %g", ErrInvalidConfig, c.Height)
	case bad(c.Scale):
		return fmt.Errorf("%w: scale %g", ErrInvalidConfig, c.Scale)
	}
	return nil
}

// Mapper converts between mathematical and canvas pixel coordinates.
//
// The origin is at the canvas center and the y axis points up in math space.
type Mapper struct {
	cfg      Config
	toScreen curve.Affine
	toMath   curve.Affine
}

// NewMapper builds a Mapper for cfg.
func NewMapper(cfg Config) (Mapper, error) {
	if err := cfg.validate(); err != nil {
		return Mapper{}, err
	}
	aff := curve.Translate(curve.Vec(cfg.Width/2, cfg.Height/2)).
		Mul(curve.Scale(cfg.Scale, -cfg.Scale))
	return Mapper{cfg: cfg, toScreen: aff, toMath: aff.Invert()}, nil
}

func (m Mapper) Config() Config { return m.cfg }

// ToScreen maps (x, y) to canvas pixels: (W/2 + x*scale, H/2 - y*scale).
func (m Mapper) ToScreen(x, y float64) (sx, sy float64) {
	return curve.Pt(x, y).Transform(m.toScreen).Splat()
}

// ToMath is the inverse of ToScreen.
func (m Mapper) ToMath(sx, sy float64) (x, y float64) {
	return curve.Pt(sx, sy).Transform(m.toMath).Splat()
}

func (m Mapper) ScreenPoint(p curve.Point) curve.Point { return p.Transform(m.toScreen) }

func (m Mapper) MathPoint(p curve.Point) curve.Point { return p.Transform(m.toMath) }

// ScreenX maps a mathematical x to a canvas column.
func (m Mapper) ScreenX(x float64) float64 { return m.cfg.Width/2 + x*m.cfg.Scale }

// ScreenY maps a mathematical y to a canvas row.
func (m Mapper) ScreenY(y float64) float64 { return m.cfg.Height/2 - y*m.cfg.Scale }

// MathX maps a canvas column to a mathematical x.
func (m Mapper) MathX(sx float64) float64 { return (sx - m.cfg.Width/2) / m.cfg.Scale }

// XRange returns the visible x interval [-W/(2*scale), W/(2*scale)].
func (m Mapper) XRange() (lo, hi float64) {
	h := m.cfg.Width / (2 * m.cfg.Scale)
	return -h, h
}

// YRange returns the visible y interval [-H/(2*scale), H/(2*scale)].
func (m Mapper) YRange() (lo, hi float64) {
	h := m.cfg.Height / (2 * m.cfg.Scale)
	return -h, h
}

// Bounds returns the canvas rectangle in pixels.
func (m Mapper) Bounds() curve.Rect {
	return curve.Rect{X0: 0, Y0: 0, X1: m.cfg.Width, Y1: m.cfg.Height}
}
