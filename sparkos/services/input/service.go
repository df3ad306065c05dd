package input

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"sparkplot/hal"
	"sparkplot/sparkos/kernel"
	"sparkplot/sparkos/proto"
)

// sendRetries bounds how many ticks a non-move event waits on a full queue.
const sendRetries = 8

// Service forwards HAL keyboard and pointer events to a consumer endpoint as
// MsgKey and MsgPointer messages. Lines read from an optional script become
// MsgEquationSet, or MsgPresetSelect for "preset N".
type Service struct {
	in     hal.Input
	outCap kernel.Capability
	script io.Reader

	keys     <-chan hal.KeyEvent
	pointers <-chan hal.PointerEvent
	lines    <-chan string
}

type Option func(*Service)

// WithScript feeds r line by line after the HAL devices are attached.
func WithScript(r io.Reader) Option {
	return func(s *Service) { s.script = r }
}

func New(in hal.Input, outCap kernel.Capability, opts ...Option) *Service {
	s := &Service{in: in, outCap: outCap}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Run(ctx *kernel.Context) {
	if ctx == nil {
		return
	}
	if s.in != nil {
		if kbd := s.in.Keyboard(); kbd != nil {
			s.keys = kbd.Events()
		}
		if ptr := s.in.Pointer(); ptr != nil {
			s.pointers = ptr.Events()
		}
	}
	if s.script != nil {
		s.lines = scanLines(s.script)
	}

	for s.keys != nil || s.pointers != nil || s.lines != nil {
		select {
		case line, ok := <-s.lines:
			if !ok {
				s.lines = nil
				continue
			}
			s.forwardLine(ctx, line)
		case ev, ok := <-s.keys:
			if !ok {
				s.keys = nil
				continue
			}
			s.forwardKey(ctx, ev)
		case ev, ok := <-s.pointers:
			if !ok {
				s.pointers = nil
				continue
			}
			s.forwardPointer(ctx, ev)
		}
	}
}

func (s *Service) forwardKey(ctx *kernel.Context, ev hal.KeyEvent) {
	payload := proto.KeyPayload(uint16(ev.Code), ev.Press, ev.Rune)
	_ = ctx.SendToCapRetry(s.outCap, uint16(proto.MsgKey), payload, kernel.Capability{}, sendRetries)
}

func (s *Service) forwardPointer(ctx *kernel.Context, ev hal.PointerEvent) {
	kind, ok := pointerKind(ev.Kind)
	if !ok {
		return
	}
	payload := proto.PointerPayload(kind, clampCoord(ev.X), clampCoord(ev.Y))
	if kind == proto.PointerMove {
		// A newer move supersedes a dropped one.
		_ = ctx.SendToCapResult(s.outCap, uint16(proto.MsgPointer), payload, kernel.Capability{})
		return
	}
	_ = ctx.SendToCapRetry(s.outCap, uint16(proto.MsgPointer), payload, kernel.Capability{}, sendRetries)
}

func (s *Service) forwardLine(ctx *kernel.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	if rest, ok := strings.CutPrefix(line, "preset "); ok {
		i, err := strconv.ParseInt(strings.TrimSpace(rest), 10, 32)
		if err == nil {
			payload := proto.PresetSelectPayload(int32(i))
			_ = ctx.SendToCapRetry(s.outCap, uint16(proto.MsgPresetSelect), payload, kernel.Capability{}, sendRetries)
			return
		}
	}
	payload := proto.EquationSetPayload(line, kernel.MaxMessageBytes)
	_ = ctx.SendToCapRetry(s.outCap, uint16(proto.MsgEquationSet), payload, kernel.Capability{}, sendRetries)
}

// scanLines reads r on its own goroutine and closes the channel at EOF.
func scanLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

func pointerKind(k hal.PointerKind) (proto.PointerKind, bool) {
	switch k {
	case hal.PointerMove:
		return proto.PointerMove, true
	case hal.PointerDown:
		return proto.PointerDown, true
	case hal.PointerUp:
		return proto.PointerUp, true
	case hal.PointerLeave:
		return proto.PointerLeave, true
	default:
		return 0, false
	}
}

func clampCoord(v int) int16 {
	if v < math.MinInt16 {
		return math.MinInt16
	}
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	return int16(v)
}
