package interact

import (
	"errors"
	"math"
	"testing"

	"sparkplot/internal/equation"
	"sparkplot/internal/plot"

	"github.com/google/go-cmp/cmp"
	"honnef.co/go/curve"
)

func newTestController(t *testing.T, eq string) *Controller {
	t.Helper()
	m, err := plot.NewMapper(plot.Config{Width: 600, Height: 400, Scale: plot.DefaultScale})
	if err != nil {
		t.Fatalf("NewMapper: %v", err)
	}
	c := NewController(m)
	c.SetEquation(eq)
	return c
}

// mathAt returns the pointer at math coordinates (x, y).
func mathAt(c *Controller, x, y float64) Pointer {
	sx, sy := c.Mapper().ToScreen(x, y)
	return At(sx, sy)
}

func near(a, b float64) bool { return math.Abs(a-b) <= 1e-9 }

func TestController_DragAlongLine(t *testing.T) {
	c := newTestController(t, "y = x")

	f := c.PointerDown(mathAt(c, 2, 2))
	if f.State != StateDragging || c.State() != StateDragging {
		t.Fatalf("after down state=%s, want dragging", f.State)
	}
	if d := c.Session().Drag; !d.Active || !near(d.AnchorX, 2) {
		t.Fatalf("drag = %+v, want active at 2", d)
	}

	f = c.PointerMove(mathAt(c, 5, -3))
	if f.State != StateDragging {
		t.Fatalf("after move state=%s, want dragging", f.State)
	}
	if f.Marker == nil {
		t.Fatal("no marker while dragging")
	}
	mx, my := c.Mapper().ToMath(f.Marker.X, f.Marker.Y)
	if !near(mx, 5) || !near(my, 5) {
		t.Fatalf("marker at (%g,%g), want (5,5)", mx, my)
	}
	if f.Tooltip == nil {
		t.Fatal("no tooltip while dragging")
	}
	if got := f.Tooltip.Lines(); got != [2]string{"x: 5.00", "y: 5.00"} {
		t.Fatalf("tooltip = %q", got)
	}
	if d := c.Session().Drag; !near(d.AnchorX, 5) {
		t.Fatalf("anchor = %g, want 5", d.AnchorX)
	}

	f = c.PointerUp(mathAt(c, 5, 5))
	if f.State != StateIdle || c.Session().Drag.Active {
		t.Fatalf("after up state=%s drag=%+v, want idle", f.State, c.Session().Drag)
	}
	if f.Marker != nil || f.Tooltip != nil {
		t.Fatal("marker or tooltip left after up")
	}
}

func TestController_DownMissesCurve(t *testing.T) {
	c := newTestController(t, "y = x")

	f := c.PointerDown(mathAt(c, 2, 3))
	if f.State == StateDragging || c.Session().Drag.Active {
		t.Fatal("down 30px off the curve started a drag")
	}

	// Within the radius vertically.
	p := mathAt(c, 2, 2)
	p.Canvas.Y += plot.DefaultPointRadius
	if f = c.PointerDown(p); f.State != StateDragging {
		t.Fatalf("down at radius state=%s, want dragging", f.State)
	}
}

func TestController_Hover(t *testing.T) {
	c := newTestController(t, "y = x^2")

	f := c.PointerMove(At(333, 0))
	if f.State != StateHovering {
		t.Fatalf("state=%s, want hovering", f.State)
	}
	if f.Marker == nil || f.Tooltip == nil {
		t.Fatal("hover without marker or tooltip")
	}
	mx, my := c.Mapper().ToMath(f.Marker.X, f.Marker.Y)
	if !near(mx, 1.1) || math.Abs(my-1.21) > 1e-9 {
		t.Fatalf("marker at (%g,%g), want nearest sample (1.1,1.21)", mx, my)
	}
	if want := curve.Pt(343, 10); f.Tooltip.Pos != want {
		t.Fatalf("tooltip pos = %v, want %v", f.Tooltip.Pos, want)
	}
	if got := f.Tooltip.Lines(); got != [2]string{"x: 1.10", "y: 1.21"} {
		t.Fatalf("tooltip = %q", got)
	}
}

func TestController_HoverUndefinedIsIdle(t *testing.T) {
	c := newTestController(t, "y = log(x)")

	f := c.PointerMove(mathAt(c, -1, 0))
	if f.State != StateIdle || f.Marker != nil || f.Tooltip != nil {
		t.Fatalf("hover at undefined x: %+v", f)
	}
}

func TestController_DragThroughUndefined(t *testing.T) {
	c := newTestController(t, "y = log(x)")

	if f := c.PointerDown(mathAt(c, 1, 0)); f.State != StateDragging {
		t.Fatalf("state=%s, want dragging", f.State)
	}
	f := c.PointerMove(mathAt(c, -1, 0))
	if f.State != StateDragging {
		t.Fatalf("state=%s, want dragging to continue", f.State)
	}
	if f.Marker != nil || f.Tooltip != nil {
		t.Fatal("marker shown at undefined x")
	}
	f = c.PointerMove(mathAt(c, math.E, 0))
	if f.Marker == nil {
		t.Fatal("marker not restored")
	}
	if _, my := c.Mapper().ToMath(f.Marker.X, f.Marker.Y); !near(my, 1) {
		t.Fatalf("marker y = %g, want 1", my)
	}
}

func TestController_Leave(t *testing.T) {
	c := newTestController(t, "y = x")
	c.PointerDown(mathAt(c, 0, 0))

	f := c.PointerLeave()
	if f.State != StateIdle || c.Session().Drag.Active {
		t.Fatalf("after leave state=%s drag=%+v", f.State, c.Session().Drag)
	}
	if f.Marker != nil || f.Tooltip != nil {
		t.Fatal("marker or tooltip after leave")
	}

	// Moving back in does not resume the drag.
	if f = c.PointerMove(mathAt(c, 4, 0)); f.State == StateDragging {
		t.Fatal("drag resumed after leave")
	}
}

func TestController_Malformed(t *testing.T) {
	c := newTestController(t, "2x + 3 = y")

	s := c.Session()
	if !errors.Is(s.Err, equation.ErrMalformedEquation) {
		t.Fatalf("err = %v, want ErrMalformedEquation", s.Err)
	}
	if len(s.Polyline) != 0 {
		t.Fatalf("polyline has %d points, want none", len(s.Polyline))
	}
	f := c.PointerDown(At(300, 200))
	if f.State != StateIdle || f.Marker != nil || len(f.Polyline) != 0 {
		t.Fatalf("malformed equation frame = %+v", f)
	}
}

func TestController_SetEquationKeepsDrag(t *testing.T) {
	c := newTestController(t, "y = x")
	c.PointerDown(mathAt(c, 2, 2))

	f := c.SetEquation("y = x^2")
	if f.State != StateDragging || c.State() != StateDragging {
		t.Fatalf("state=%s after new equation, want dragging", f.State)
	}
	if d := c.Session().Drag; !d.Active || !near(d.AnchorX, 2) {
		t.Fatalf("drag = %+v, want active at 2", d)
	}
	if c.Session().Err != nil {
		t.Fatalf("err = %v", c.Session().Err)
	}

	f = c.PointerMove(mathAt(c, 3, 0))
	if f.State != StateDragging || f.Marker == nil {
		t.Fatalf("after move state=%s marker=%v, want dragging with marker", f.State, f.Marker)
	}
	mx, my := c.Mapper().ToMath(f.Marker.X, f.Marker.Y)
	if !near(mx, 3) || !near(my, 9) {
		t.Fatalf("marker at (%g,%g), want (3,9) on the new curve", mx, my)
	}
}

func TestController_SetEquationDropsHover(t *testing.T) {
	c := newTestController(t, "y = x^2")
	if f := c.PointerMove(At(333, 0)); f.State != StateHovering {
		t.Fatalf("state=%s, want hovering", f.State)
	}
	if f := c.SetEquation("y = x^3"); f.State != StateIdle || f.Marker != nil {
		t.Fatalf("frame after edit = %+v, want idle", f)
	}
}

func TestController_UpWithoutDragHovers(t *testing.T) {
	c := newTestController(t, "y = x^2")
	p := At(333, 0)

	if f := c.PointerDown(p); f.State != StateHovering {
		t.Fatalf("missed down state=%s, want hovering", f.State)
	}
	f := c.PointerUp(p)
	if diff := cmp.Diff(c.PointerMove(p), f); diff != "" {
		t.Fatalf("up frame differs from move frame (-move +up):\n%s", diff)
	}
	if f.State != StateHovering || f.Marker == nil || f.Tooltip == nil {
		t.Fatalf("up frame = %+v, want hover with marker", f)
	}
}

func TestController_Idempotent(t *testing.T) {
	c := newTestController(t, "y = sin(x)")
	a := c.SetEquation("y = sin(x)")
	b := c.SetEquation("y = sin(x)")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("frames differ (-first +second):\n%s", diff)
	}

	p := mathAt(c, 1.5, math.Sin(1.5))
	if diff := cmp.Diff(c.PointerMove(p), c.PointerMove(p)); diff != "" {
		t.Fatalf("hover frames differ (-first +second):\n%s", diff)
	}
}

func TestFrame_Scene(t *testing.T) {
	c := newTestController(t, "y = x")
	f := c.PointerDown(mathAt(c, 0, 0))
	s := f.Scene(plot.DefaultStyle())
	if s.Marker != f.Marker || len(s.Polyline) != len(f.Polyline) {
		t.Fatalf("scene = %+v", s)
	}
}
