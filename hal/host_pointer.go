//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostPointer struct {
	ch chan PointerEvent

	inside bool
	x, y   int
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

// poll converts the ebiten mouse state into events. Cursor positions are in
// layout (framebuffer) pixels.
func (p *hostPointer) poll(w, h int) {
	x, y := ebiten.CursorPosition()
	inside := ebiten.IsFocused() && x >= 0 && y >= 0 && x < w && y < h

	if !inside {
		if p.inside {
			p.inside = false
			p.emit(PointerEvent{Kind: PointerLeave, X: x, Y: y})
		}
		return
	}

	if !p.inside || x != p.x || y != p.y {
		p.inside = true
		p.x, p.y = x, y
		p.emit(PointerEvent{Kind: PointerMove, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.emit(PointerEvent{Kind: PointerDown, X: x, Y: y})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.emit(PointerEvent{Kind: PointerUp, X: x, Y: y})
	}
}
