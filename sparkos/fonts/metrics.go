package fonts

import (
	"errors"
	"fmt"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Default is the UI font: a small ASCII bitmap font.
func Default() tinyfont.Fonter { return &proggy.TinySZ8pt7b }

// Metrics are the cell metrics of a font used as a fixed grid.
type Metrics struct {
	// Width is the advance of "0".
	Width int16
	// Height is the line height.
	Height int16
	// Offset is the baseline offset from the top of the cell.
	Offset int16
}

// Measure derives cell metrics by scanning the printable ASCII glyphs.
//
// The line height is the font's YAdvance, grown if needed to fit the glyph extents.
func Measure(font tinyfont.Fonter) (Metrics, error) {
	if font == nil {
		return Metrics{}, errors.New("nil font")
	}

	minY, maxY := 0, 0
	first := true
	for r := rune(0x21); r < 0x7f; r++ {
		g := font.GetGlyph(r)
		if g == nil {
			continue
		}
		info := g.Info()
		if info.Height == 0 {
			continue
		}
		top := int(info.YOffset)
		bottom := top + int(info.Height)
		if first {
			minY, maxY = top, bottom
			first = false
			continue
		}
		if top < minY {
			minY = top
		}
		if bottom > maxY {
			maxY = bottom
		}
	}
	if first {
		return Metrics{}, errors.New("no glyphs")
	}

	height := maxY - minY
	if ya := int(font.GetYAdvance()); ya > height {
		height = ya
	}
	offset := -minY
	if height <= 0 || offset < 0 || height > 127 {
		return Metrics{}, fmt.Errorf("invalid metrics: height=%d offset=%d", height, offset)
	}

	_, outbox := tinyfont.LineWidth(font, "0")
	if outbox == 0 {
		return Metrics{}, errors.New("zero glyph width")
	}
	return Metrics{Width: int16(outbox), Height: int16(height), Offset: int16(offset)}, nil
}
