package grapher

import (
	"fmt"
	"image/color"
	"strings"

	"sparkplot/hal"
	"sparkplot/internal/interact"
	"sparkplot/internal/plot"

	"honnef.co/go/curve"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
)

var (
	colorBG       = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	colorFG       = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
	colorDim      = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}
	colorErr      = color.RGBA{R: 0xFF, G: 0x7F, B: 0x7F, A: 0xFF}
	colorHeaderBG = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	colorStatusBG = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	colorPanelBG  = color.RGBA{R: 0x08, G: 0x08, B: 0x08, A: 0xFF}
	colorButton   = color.RGBA{R: 0x33, G: 0x33, B: 0x44, A: 0xFF}
	colorCanvas   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorAxis     = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	colorTick     = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
	colorTooltip  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xE0, A: 0xFF}
)

const tickHalfLen = 3

type fbDisplay struct {
	fb hal.Framebuffer
}

func newFBDisplay(fb hal.Framebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	w := d.fb.Width()
	h := d.fb.Height()
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= w || iy < 0 || iy >= h {
		return
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return nil
	}

	w := d.fb.Width()
	h := d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565From888(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// canvasDisplay addresses the plot canvas in its own pixel coordinates and
// discards anything outside it.
type canvasDisplay struct {
	d      *fbDisplay
	x0, y0 int16
	w, h   int16
}

func newCanvasDisplay(d *fbDisplay, r curve.Rect) *canvasDisplay {
	return &canvasDisplay{
		d:  d,
		x0: plot.ClampInt16(r.X0),
		y0: plot.ClampInt16(r.Y0),
		w:  plot.ClampInt16(r.Width()),
		h:  plot.ClampInt16(r.Height()),
	}
}

func (c *canvasDisplay) Size() (x, y int16) { return c.w, c.h }

func (c *canvasDisplay) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.d.SetPixel(c.x0+x, c.y0+y, col)
}

func (c *canvasDisplay) Display() error { return nil }

// fbRenderer implements plot.Renderer on the framebuffer canvas.
type fbRenderer struct {
	cd   *canvasDisplay
	font tinyfont.Fonter
	fw   int16
	fo   int16
}

func (r *fbRenderer) Clear() {
	_ = r.cd.d.FillRectangle(r.cd.x0, r.cd.y0, r.cd.w, r.cd.h, colorCanvas)
}

func (r *fbRenderer) DrawAxes(m plot.Mapper) {
	ox := plot.ClampInt16(m.ScreenX(0))
	oy := plot.ClampInt16(m.ScreenY(0))
	tinydraw.Line(r.cd, 0, oy, r.cd.w-1, oy, colorAxis)
	tinydraw.Line(r.cd, ox, 0, ox, r.cd.h-1, colorAxis)

	ticks := plot.Ticks(m)
	for _, t := range ticks.X {
		px := plot.ClampInt16(t.Pos)
		tinydraw.Line(r.cd, px, oy-tickHalfLen, px, oy+tickHalfLen, colorAxis)
		if t.Label == "" {
			continue
		}
		lw := int16(len(t.Label)) * r.fw
		tinyfont.WriteLine(r.cd, r.font, px-lw/2, oy+tickHalfLen+1+r.fo, t.Label, colorTick)
	}
	for _, t := range ticks.Y {
		py := plot.ClampInt16(t.Pos)
		tinydraw.Line(r.cd, ox-tickHalfLen, py, ox+tickHalfLen, py, colorAxis)
		if t.Label == "" {
			continue
		}
		lw := int16(len(t.Label)) * r.fw
		tinyfont.WriteLine(r.cd, r.font, ox-tickHalfLen-2-lw, py+r.fo/2, t.Label, colorTick)
	}
}

func (r *fbRenderer) DrawPolyline(p plot.Polyline, m plot.Mapper, style plot.Style) {
	clip := m.Bounds()
	clip.X1--
	clip.Y1--
	width := int(style.Width + 0.5)
	if width < 1 {
		width = 1
	}
	for seg := range p.Segments(m) {
		l, ok := plot.ClipLine(seg, clip)
		if !ok {
			continue
		}
		r.thickLine(l, width, style.Color)
	}
}

func (r *fbRenderer) DrawMarker(x, y, radius float64, c color.RGBA) {
	tinydraw.FilledCircle(r.cd, plot.ClampInt16(x), plot.ClampInt16(y), plot.ClampInt16(radius), c)
}

// thickLine strokes l with width parallel lines offset along the minor axis.
func (r *fbRenderer) thickLine(l curve.Line, width int, c color.RGBA) {
	x0, y0 := plot.ClampInt16(l.P0.X), plot.ClampInt16(l.P0.Y)
	x1, y1 := plot.ClampInt16(l.P1.X), plot.ClampInt16(l.P1.Y)
	tinydraw.Line(r.cd, x0, y0, x1, y1, c)
	steep := absInt16(y1-y0) > absInt16(x1-x0)
	for i := 1; i < width; i++ {
		off := int16((i + 1) / 2)
		if i%2 == 0 {
			off = -off
		}
		if steep {
			tinydraw.Line(r.cd, x0+off, y0, x1+off, y1, c)
		} else {
			tinydraw.Line(r.cd, x0, y0+off, x1, y1+off, c)
		}
	}
}

func absInt16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

func (t *Task) render() {
	if t.fb == nil || t.d == nil {
		return
	}
	w := int16(t.fb.Width())
	h := int16(t.fb.Height())
	if w <= 0 || h <= 0 {
		return
	}

	_ = t.d.FillRectangle(0, 0, w, h, colorBG)

	_ = t.d.FillRectangle(0, 0, w, t.fm.Height, colorHeaderBG)
	t.drawStringClipped(0, 0, t.headerText(), colorFG, t.cols)

	t.renderInput(t.fm.Height)
	t.renderToolbar()

	plot.Render(t.r, t.ctrl.Mapper(), t.frame.Scene(plot.DefaultStyle()))
	if t.frame.Tooltip != nil {
		t.renderTooltip(*t.frame.Tooltip)
	}

	statusY := h - t.fm.Height
	_ = t.d.FillRectangle(0, statusY, w, t.fm.Height, colorStatusBG)
	fg := colorFG
	if t.ctrl.Session().Err != nil {
		fg = colorErr
	}
	t.drawStringClipped(0, statusY, t.statusText(), fg, t.cols)

	if t.showHelp {
		t.renderHelp()
	}

	_ = t.fb.Present()
}

func (t *Task) renderInput(y int16) {
	w := int16(t.fb.Width())
	_ = t.d.FillRectangle(0, y, w, t.fm.Height, colorPanelBG)

	const prompt = "> "
	t.drawStringClipped(0, y, prompt, colorDim, t.cols)
	x := int16(len(prompt)) * t.fm.Width
	cols := t.cols - len(prompt)

	cursorCol := displayWidth(t.input[:t.cursor])
	start := 0
	if cursorCol >= cols {
		start = cursorCol - cols + 1
	}
	disp := []rune(displayText(t.input))
	if start > len(disp) {
		start = len(disp)
	}
	t.drawRunesClipped(x, y, disp[start:], colorFG, cols)

	cx := x + int16(cursorCol-start)*t.fm.Width
	_ = t.d.FillRectangle(cx, y+t.fm.Height-2, t.fm.Width, 2, colorFG)
}

func (t *Task) renderToolbar() {
	w := int16(t.fb.Width())
	_ = t.d.FillRectangle(0, plot.ClampInt16(t.toolbar.Y0), w, plot.ClampInt16(t.toolbar.Height()), colorPanelBG)
	for _, b := range t.buttons {
		x := plot.ClampInt16(b.rect.X0)
		y := plot.ClampInt16(b.rect.Y0)
		bw := plot.ClampInt16(b.rect.Width())
		bh := plot.ClampInt16(b.rect.Height())
		_ = tinydraw.FilledRectangle(t.d, x, y, bw, bh, colorButton)
		t.drawStringClipped(x+buttonPad, y+(bh-t.fm.Height)/2, b.label, colorFG, len(b.label))
	}
}

func (t *Task) renderTooltip(tip interact.Tooltip) {
	lines := tip.Lines()
	n := len(lines[0])
	if len(lines[1]) > n {
		n = len(lines[1])
	}
	x := plot.ClampInt16(tip.Pos.X)
	y := plot.ClampInt16(tip.Pos.Y)
	bw := int16(n)*t.fm.Width + 2*buttonPad
	bh := 2*t.fm.Height + 2*buttonPad
	_ = tinydraw.FilledRectangle(t.d, x, y, bw, bh, colorTooltip)
	_ = tinydraw.Rectangle(t.d, x, y, bw, bh, colorTick)
	for i, s := range lines {
		t.drawStringClipped(x+buttonPad, y+buttonPad+int16(i)*t.fm.Height, s, colorAxis, n)
	}
}

func (t *Task) headerText() string {
	s := "sparkplot  " + t.ctrl.State().String()
	if _, eq := interact.Preset(t.preset); eq == string(t.input) {
		s += fmt.Sprintf("  preset %d/%d", t.preset+1, len(interact.Presets))
	}
	return s
}

func (t *Task) renderHelp() {
	lines := []string{
		"sparkplot help",
		"",
		"Equation",
		"  type y = f(x)",
		"  pi, sqrt: typed aliases",
		"  Left/Right/Home/End: move",
		"  Backspace/Delete: erase",
		"  Ctrl+A/E: start/end",
		"  Ctrl+U: clear",
		"",
		"Presets",
		"  Tab/Down: next",
		"  Up: previous",
		"",
		"Plot",
		"  hover: show point",
		"  drag on curve: trace",
		"",
		"F1/Esc: close help",
	}

	boxCols := t.cols - 4
	boxRows := t.rows - 4
	if boxCols < 24 || boxRows < 6 {
		return
	}
	innerCols := boxCols - 2
	contentRows := boxRows - 2
	if contentRows > len(lines) {
		contentRows = len(lines)
	}

	px := int16((t.cols-boxCols)/2) * t.fm.Width
	py := int16((t.rows-boxRows)/2) * t.fm.Height
	pw := int16(boxCols) * t.fm.Width
	ph := int16(boxRows) * t.fm.Height

	_ = t.d.FillRectangle(px, py, pw, ph, colorHeaderBG)
	_ = t.d.FillRectangle(px+t.fm.Width, py+t.fm.Height, pw-2*t.fm.Width, ph-2*t.fm.Height, colorPanelBG)

	for i := 0; i < contentRows; i++ {
		y := py + int16(1+i)*t.fm.Height
		fg := colorFG
		if lines[i] == "" || !strings.HasPrefix(lines[i], " ") {
			fg = colorDim
		}
		t.drawStringClipped(px+t.fm.Width, y, lines[i], fg, innerCols)
	}
}

func (t *Task) drawStringClipped(x, y int16, s string, fg color.RGBA, cols int) {
	t.drawRunesClipped(x, y, []rune(s), fg, cols)
}

func (t *Task) drawRunesClipped(x, y int16, rs []rune, fg color.RGBA, cols int) {
	col := int16(0)
	for _, r := range rs {
		if int(col) >= cols {
			return
		}
		tinyfont.DrawChar(t.d, t.font, x+col*t.fm.Width, y+t.fm.Offset, r, fg)
		col++
	}
}
