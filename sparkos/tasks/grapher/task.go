package grapher

import (
	"errors"
	"fmt"

	"sparkplot/hal"
	"sparkplot/internal/equation"
	"sparkplot/internal/interact"
	"sparkplot/internal/plot"
	"sparkplot/sparkos/client/logger"
	"sparkplot/sparkos/fonts"
	"sparkplot/sparkos/kernel"
	"sparkplot/sparkos/proto"

	"honnef.co/go/curve"
	"tinygo.org/x/tinyfont"
)

const (
	buttonPad = 2
	buttonGap = 2
)

// Config is the startup configuration of the grapher.
type Config struct {
	// Scale is pixels per unit; zero means plot.DefaultScale.
	Scale float64
	// Equation is the initial input. When empty, preset Preset is used.
	Equation string
	Preset   int
	// PointRadius is the hover and drag radius; zero means plot.DefaultPointRadius.
	PointRadius float64
}

type button struct {
	label string
	// token indexes interact.Tokens; -1 is the preset button.
	token int
	rect  curve.Rect
}

// Task is the plotter UI: an equation line editor, a token toolbar and the
// plot canvas, all drawn into the HAL framebuffer.
type Task struct {
	disp   hal.Display
	ep     kernel.Capability
	logCap kernel.Capability
	cfg    Config

	fb hal.Framebuffer
	d  *fbDisplay
	r  *fbRenderer

	font tinyfont.Fonter
	fm   fonts.Metrics
	cols int
	rows int

	toolbar curve.Rect
	canvas  curve.Rect
	buttons []button

	ctrl     *interact.Controller
	frame    interact.Frame
	inCanvas bool

	input  []rune
	cursor int
	preset int

	showHelp bool
}

func New(disp hal.Display, ep, logCap kernel.Capability, cfg Config) *Task {
	return &Task{disp: disp, ep: ep, logCap: logCap, cfg: cfg}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	if err := t.attach(); err != nil {
		_ = logger.LogRetry(ctx, t.logCap, "grapher: "+err.Error())
		return
	}
	logger.Logf(ctx, t.logCap, "grapher: canvas %.0fx%.0f", t.canvas.Width(), t.canvas.Height())

	t.start(ctx)
	t.render()

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgKey:
			code, press, r, ok := proto.DecodeKeyPayload(msg.Payload())
			if !ok || !press {
				continue
			}
			t.handleKey(ctx, hal.KeyCode(code), r)

		case proto.MsgPointer:
			kind, x, y, ok := proto.DecodePointerPayload(msg.Payload())
			if !ok {
				continue
			}
			t.handlePointer(ctx, kind, x, y)

		case proto.MsgEquationSet:
			eq, ok := proto.DecodeEquationSetPayload(msg.Payload())
			if !ok {
				continue
			}
			t.setInput(ctx, eq)

		case proto.MsgPresetSelect:
			i, ok := proto.DecodePresetSelectPayload(msg.Payload())
			if !ok {
				continue
			}
			t.selectPreset(ctx, int(i))

		default:
			continue
		}
		t.render()
	}
}

// attach binds the framebuffer and lays out the screen.
func (t *Task) attach() error {
	if t.disp == nil {
		return errors.New("no display")
	}
	t.fb = t.disp.Framebuffer()
	if t.fb == nil {
		return errors.New("no framebuffer")
	}
	t.d = newFBDisplay(t.fb)

	t.font = fonts.Default()
	fm, err := fonts.Measure(t.font)
	if err != nil {
		return fmt.Errorf("font: %w", err)
	}
	t.fm = fm

	t.cols = t.fb.Width() / int(t.fm.Width)
	t.rows = t.fb.Height() / int(t.fm.Height)
	if t.cols <= 0 || t.rows <= 0 {
		return fmt.Errorf("framebuffer %dx%d too small", t.fb.Width(), t.fb.Height())
	}
	return t.layout()
}

// layout places, top to bottom: header, input line, toolbar, canvas, status.
func (t *Task) layout() error {
	w := float64(t.fb.Width())
	h := float64(t.fb.Height())
	fh := float64(t.fm.Height)

	t.toolbar = curve.Rect{X0: 0, Y0: 2 * fh, X1: w, Y1: 3*fh + 2*buttonPad}
	t.canvas = curve.Rect{X0: 0, Y0: t.toolbar.Y1, X1: w, Y1: h - fh}
	if t.canvas.Height() <= 0 {
		return fmt.Errorf("framebuffer %.0fx%.0f leaves no canvas", w, h)
	}

	scale := t.cfg.Scale
	if scale == 0 {
		scale = plot.DefaultScale
	}
	m, err := plot.NewMapper(plot.Config{Width: t.canvas.Width(), Height: t.canvas.Height(), Scale: scale})
	if err != nil {
		return err
	}
	t.ctrl = interact.NewController(m, interact.WithPointRadius(t.cfg.PointRadius))
	t.r = &fbRenderer{
		cd:   newCanvasDisplay(t.d, t.canvas),
		font: t.font,
		fw:   t.fm.Width,
		fo:   t.fm.Offset,
	}

	t.buttons = t.buttons[:0]
	x := float64(buttonGap)
	add := func(label string, token int) {
		bw := float64(len(label))*float64(t.fm.Width) + 2*buttonPad
		if x+bw > w {
			return
		}
		t.buttons = append(t.buttons, button{
			label: label,
			token: token,
			rect:  curve.Rect{X0: x, Y0: t.toolbar.Y0, X1: x + bw, Y1: t.toolbar.Y1},
		})
		x += bw + buttonGap
	}
	for i, tok := range interact.Tokens {
		add(tok.Label, i)
	}
	add("preset", -1)
	return nil
}

func (t *Task) start(ctx *kernel.Context) {
	if t.cfg.Equation != "" {
		t.preset, _ = interact.Preset(t.cfg.Preset)
		t.setInput(ctx, t.cfg.Equation)
		return
	}
	t.selectPreset(ctx, t.cfg.Preset)
}

func (t *Task) handleKey(ctx *kernel.Context, code hal.KeyCode, r rune) {
	switch code {
	case hal.KeyF1:
		t.showHelp = !t.showHelp
	case hal.KeyEscape:
		t.showHelp = false
	case hal.KeyTab, hal.KeyDown:
		t.selectPreset(ctx, t.preset+1)
	case hal.KeyUp:
		t.selectPreset(ctx, t.preset-1)
	case hal.KeyLeft:
		if t.cursor > 0 {
			t.cursor--
		}
	case hal.KeyRight:
		if t.cursor < len(t.input) {
			t.cursor++
		}
	case hal.KeyHome:
		t.cursor = 0
	case hal.KeyEnd:
		t.cursor = len(t.input)
	case hal.KeyBackspace:
		if t.backspace() {
			t.apply(ctx)
		}
	case hal.KeyDelete:
		if t.deleteForward() {
			t.apply(ctx)
		}
	case hal.KeyUnknown:
		t.handleRune(ctx, r)
	}
}

func (t *Task) handleRune(ctx *kernel.Context, r rune) {
	switch r {
	case 0x01: // Ctrl+A
		t.cursor = 0
	case 0x05: // Ctrl+E
		t.cursor = len(t.input)
	case 0x15: // Ctrl+U
		if len(t.input) > 0 {
			t.input = t.input[:0]
			t.cursor = 0
			t.apply(ctx)
		}
	default:
		if r < 0x20 || r == 0x7f {
			return
		}
		t.insertRune(r)
		t.apply(ctx)
	}
}

func (t *Task) handlePointer(ctx *kernel.Context, kind proto.PointerKind, x, y int16) {
	client := curve.Pt(float64(x), float64(y))
	if kind == proto.PointerLeave {
		t.leaveCanvas()
		return
	}
	if kind == proto.PointerDown && t.toolbar.Contains(client) {
		t.leaveCanvas()
		t.pressButton(ctx, client)
		return
	}
	if !t.canvas.Contains(client) {
		t.leaveCanvas()
		return
	}

	t.inCanvas = true
	p := interact.Pointer{
		Canvas: client.Translate(curve.Vec(-t.canvas.X0, -t.canvas.Y0)),
		Client: client,
	}
	switch kind {
	case proto.PointerMove:
		t.frame = t.ctrl.PointerMove(p)
	case proto.PointerDown:
		t.frame = t.ctrl.PointerDown(p)
	case proto.PointerUp:
		t.frame = t.ctrl.PointerUp(p)
	}
}

func (t *Task) leaveCanvas() {
	if !t.inCanvas {
		return
	}
	t.inCanvas = false
	t.frame = t.ctrl.PointerLeave()
}

func (t *Task) pressButton(ctx *kernel.Context, p curve.Point) {
	for _, b := range t.buttons {
		if !b.rect.Contains(p) {
			continue
		}
		if b.token < 0 {
			t.selectPreset(ctx, t.preset+1)
			return
		}
		t.setInput(ctx, interact.InsertToken(string(t.input), interact.Tokens[b.token]))
		return
	}
}

func (t *Task) selectPreset(ctx *kernel.Context, i int) {
	var eq string
	t.preset, eq = interact.Preset(i)
	t.setInput(ctx, eq)
}

// setInput replaces the input and moves the cursor to its end.
func (t *Task) setInput(ctx *kernel.Context, eq string) {
	t.input = append(t.input[:0], []rune(eq)...)
	t.cursor = len(t.input)
	t.apply(ctx)
}

// apply re-runs the pipeline on the current input and publishes the markup.
func (t *Task) apply(ctx *kernel.Context) {
	eq := string(t.input)
	t.frame = t.ctrl.SetEquation(eq)
	logger.Log(ctx, t.logCap, `typeset: \(`+eq+`\)`)
}

func (t *Task) statusText() string {
	s := t.ctrl.Session()
	if s.Err != nil {
		var me *equation.MalformedEquationError
		if errors.As(s.Err, &me) && me.Reason == equation.ReasonMissingEquals {
			return ""
		}
		return s.Err.Error()
	}
	if s.Expr == nil {
		return ""
	}
	switch {
	case len(s.Polyline) == 0:
		return "scale too small to sample"
	case s.Polyline.DefinedCount() == 0:
		return "f(x) = " + s.Expr.String() + "  undefined on screen"
	}
	return "f(x) = " + s.Expr.String()
}
