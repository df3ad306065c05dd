package plot

import "image/color"

var (
	ColorCurve  = color.RGBA{R: 0x00, G: 0x00, B: 0xFF, A: 0xFF}
	ColorMarker = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}
)

// Style describes how a polyline is stroked.
type Style struct {
	Color color.RGBA
	Width float64
}

// DefaultStyle is a blue stroke of DefaultLineWidth.
func DefaultStyle() Style {
	return Style{Color: ColorCurve, Width: DefaultLineWidth}
}

// Marker is a filled circle in canvas pixels.
type Marker struct {
	X, Y   float64
	Radius float64
	Color  color.RGBA
}

// Renderer is a drawing surface for one plot frame.
type Renderer interface {
	Clear()
	DrawAxes(m Mapper)
	DrawPolyline(p Polyline, m Mapper, style Style)
	DrawMarker(x, y, radius float64, c color.RGBA)
}

// Scene is everything needed to draw one frame.
type Scene struct {
	Polyline Polyline
	Style    Style
	Marker   *Marker
}

// Render draws s in order: clear, axes, polyline, then the marker if any.
func Render(r Renderer, m Mapper, s Scene) {
	if r == nil {
		return
	}
	r.Clear()
	r.DrawAxes(m)
	if len(s.Polyline) > 0 {
		style := s.Style
		if style == (Style{}) {
			style = DefaultStyle()
		}
		r.DrawPolyline(s.Polyline, m, style)
	}
	if s.Marker != nil {
		r.DrawMarker(s.Marker.X, s.Marker.Y, s.Marker.Radius, s.Marker.Color)
	}
}
