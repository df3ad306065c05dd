package interact

import (
	"fmt"
	"image/color"
	"math"

	"sparkplot/internal/equation"
	"sparkplot/internal/plot"

	"honnef.co/go/curve"
)

// TooltipOffset is added to the pointer's client position to place the tooltip.
const TooltipOffset = 10

type State uint8

const (
	StateIdle State = iota
	StateHovering
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHovering:
		return "hovering"
	case StateDragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// DragState is the only state carried between pointer events.
type DragState struct {
	Active  bool
	AnchorX float64
}

// Session is the current equation and everything derived from it.
type Session struct {
	Equation string
	Expr     *equation.Expr
	Err      error
	Polyline plot.Polyline
	Drag     DragState
	State    State
}

// Tooltip shows the coordinates of the marker.
type Tooltip struct {
	// Pos is the top-left corner in client coordinates.
	Pos  curve.Point
	X, Y float64
}

// Lines returns the two text lines of the tooltip.
func (t Tooltip) Lines() [2]string {
	return [2]string{fmt.Sprintf("x: %.2f", t.X), fmt.Sprintf("y: %.2f", t.Y)}
}

// Frame is the complete output of one event. It never refers to a previous frame.
type Frame struct {
	Polyline plot.Polyline
	Marker   *plot.Marker
	Tooltip  *Tooltip
	State    State
}

// Scene converts the frame for plot.Render.
func (f Frame) Scene(style plot.Style) plot.Scene {
	return plot.Scene{Polyline: f.Polyline, Style: style, Marker: f.Marker}
}

// Pointer is a pointer position. Canvas is relative to the plot canvas and
// Client is the same position in window coordinates.
type Pointer struct {
	Canvas curve.Point
	Client curve.Point
}

// At returns a Pointer whose canvas and client positions coincide.
func At(x, y float64) Pointer {
	p := curve.Pt(x, y)
	return Pointer{Canvas: p, Client: p}
}

// Controller runs the hover and drag state machine over one Session.
//
// It is not safe for concurrent use; the owning task serializes events.
type Controller struct {
	m       plot.Mapper
	radius  float64
	marker  color.RGBA
	session Session
}

type Option func(*Controller)

// WithPointRadius overrides plot.DefaultPointRadius.
func WithPointRadius(r float64) Option {
	return func(c *Controller) {
		if r > 0 {
			c.radius = r
		}
	}
}

func NewController(m plot.Mapper, opts ...Option) *Controller {
	c := &Controller{
		m:      m,
		radius: plot.DefaultPointRadius,
		marker: plot.ColorMarker,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Mapper() plot.Mapper { return c.m }

func (c *Controller) PointRadius() float64 { return c.radius }

// Session returns a copy of the current session.
func (c *Controller) Session() Session { return c.session }

func (c *Controller) State() State { return c.session.State }

// SetEquation translates eq, re-samples it, and returns a frame without a
// marker.
//
// A malformed equation clears the polyline; Session().Err holds the reason.
// An active drag survives the edit and follows the new curve on the next
// move. Hover does not survive.
func (c *Controller) SetEquation(eq string) Frame {
	c.session = Session{
		Equation: eq,
		Drag:     c.session.Drag,
		State:    StateIdle,
	}
	if c.session.Drag.Active {
		c.session.State = StateDragging
	}
	ex, err := equation.Translate(eq)
	if err != nil {
		c.session.Err = err
		return c.frame(nil, nil)
	}
	c.session.Expr = ex
	c.session.Polyline = plot.Sample(ex, c.m)
	return c.frame(nil, nil)
}

// PointerMove handles a move. While dragging the marker follows the pointer's
// x exactly; otherwise a hover test is made against the sampled polyline.
func (c *Controller) PointerMove(p Pointer) Frame {
	x := c.m.MathX(p.Canvas.X)
	if c.session.Drag.Active {
		c.session.Drag.AnchorX = x
		y, ok := c.eval(x)
		if !ok {
			return c.frame(nil, nil)
		}
		return c.frame(c.markerAt(x, y), c.tooltip(p, x, y))
	}

	i, ok := c.session.Polyline.Nearest(x)
	if !ok {
		c.session.State = StateIdle
		return c.frame(nil, nil)
	}
	s := c.session.Polyline[i]
	// Horizontal distance only.
	if !s.Defined || math.Abs(p.Canvas.X-c.m.ScreenX(s.X)) >= c.radius {
		c.session.State = StateIdle
		return c.frame(nil, nil)
	}
	c.session.State = StateHovering
	return c.frame(c.markerAt(s.X, s.Y), c.tooltip(p, s.X, s.Y))
}

// PointerDown starts a drag when the pointer is within the point radius,
// measured vertically, of the curve at the pointer's x. A miss is handled
// like a move.
func (c *Controller) PointerDown(p Pointer) Frame {
	if c.session.Drag.Active {
		return c.PointerMove(p)
	}
	x := c.m.MathPoint(p.Canvas).X
	y, ok := c.eval(x)
	if !ok || math.Abs(p.Canvas.Y-c.m.ScreenY(y)) > c.radius {
		return c.PointerMove(p)
	}
	c.session.Drag = DragState{Active: true, AnchorX: x}
	c.session.State = StateDragging
	return c.frame(c.markerAt(x, y), c.tooltip(p, x, y))
}

// PointerUp ends a drag. Without a drag it is a move to p.
func (c *Controller) PointerUp(p Pointer) Frame {
	if !c.session.Drag.Active {
		return c.PointerMove(p)
	}
	c.session.Drag = DragState{}
	c.session.State = StateIdle
	return c.frame(nil, nil)
}

// PointerLeave cancels hover and drag and hides the tooltip.
func (c *Controller) PointerLeave() Frame {
	c.session.Drag = DragState{}
	c.session.State = StateIdle
	return c.frame(nil, nil)
}

func (c *Controller) eval(x float64) (float64, bool) {
	if c.session.Expr == nil {
		return 0, false
	}
	y, err := c.session.Expr.Eval(x)
	return y, err == nil
}

func (c *Controller) markerAt(x, y float64) *plot.Marker {
	sx, sy := c.m.ToScreen(x, y)
	return &plot.Marker{X: sx, Y: sy, Radius: c.radius, Color: c.marker}
}

func (c *Controller) tooltip(p Pointer, x, y float64) *Tooltip {
	return &Tooltip{
		Pos: p.Client.Translate(curve.Vec(TooltipOffset, TooltipOffset)),
		X:   x,
		Y:   y,
	}
}

func (c *Controller) frame(m *plot.Marker, t *Tooltip) Frame {
	return Frame{
		Polyline: c.session.Polyline,
		Marker:   m,
		Tooltip:  t,
		State:    c.session.State,
	}
}
