package app

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"sparkplot/hal"
	"sparkplot/sparkos/fonts"
	"sparkplot/sparkos/kernel"

	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
)

var (
	panicBG     = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	panicFG     = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	panicBanner = color.RGBA{R: 0xC0, G: 0x00, B: 0x00, A: 0xFF}
)

// installPanicHandler logs the panic, draws it on the framebuffer and parks
// the panicking task so the screen stays up.
func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		logPanic(h.Logger(), info)
		if disp := h.Display(); disp != nil {
			if fb := disp.Framebuffer(); fb != nil {
				drawPanicScreen(fb, info)
			}
		}
		select {}
	})
}

func logPanic(l hal.Logger, info kernel.PanicInfo) {
	if l == nil {
		return
	}
	l.WriteLineString("sparkplot panic: " + info.String())
	for _, line := range info.StackLines() {
		l.WriteLineString(line)
	}
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{"sparkplot panic", info.String()}
	stack := info.StackLines()
	if len(stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	return append(lines, stack...)
}

func drawPanicScreen(fb hal.Framebuffer, info kernel.PanicInfo) {
	defer func() { _ = fb.Present() }()

	fb.ClearRGB(panicBG.R, panicBG.G, panicBG.B)
	font := fonts.Default()
	fm, err := fonts.Measure(font)
	if err != nil {
		return
	}
	cols := fb.Width() / int(fm.Width)
	rows := fb.Height() / int(fm.Height)
	if cols <= 0 || rows <= 0 {
		return
	}

	d := panicDisplay{fb: fb}
	_ = tinydraw.FilledRectangle(d, 0, 0, int16(fb.Width()), fm.Height, panicBanner)

	row := 0
	for i, line := range panicLines(info) {
		fg := panicFG
		if i == 0 {
			fg = panicBG
		}
		for _, chunk := range wrapRunes(line, cols) {
			if row >= rows {
				return
			}
			tinyfont.WriteLine(d, font, 0, int16(row)*fm.Height+fm.Offset, chunk, fg)
			row++
		}
	}
}

// wrapRunes splits s into lines of at most cols runes. Continuation lines
// lose their leading spaces.
func wrapRunes(s string, cols int) []string {
	if cols <= 0 {
		return nil
	}
	var out []string
	for {
		if utf8.RuneCountInString(s) <= cols {
			return append(out, s)
		}
		i, n := 0, 0
		for n < cols {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
			n++
		}
		out = append(out, s[:i])
		s = strings.TrimLeft(s[i:], " ")
		if s == "" {
			return out
		}
	}
}

type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d panicDisplay) Display() error { return d.fb.Present() }
