package input

import (
	"strings"
	"testing"
	"time"

	"sparkplot/hal"
	"sparkplot/sparkos/kernel"
	"sparkplot/sparkos/proto"
)

type fakeKeyboard struct{ ch chan hal.KeyEvent }

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k.ch }

type fakePointer struct{ ch chan hal.PointerEvent }

func (p fakePointer) Events() <-chan hal.PointerEvent { return p.ch }

type fakeInput struct {
	kbd fakeKeyboard
	ptr fakePointer
}

func (in fakeInput) Keyboard() hal.Keyboard { return in.kbd }
func (in fakeInput) Pointer() hal.Pointer   { return in.ptr }

func recvWithin(t *testing.T, ch <-chan kernel.Message) kernel.Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return kernel.Message{}
	}
}

func TestServiceForwardsEvents(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	in := fakeInput{
		kbd: fakeKeyboard{ch: make(chan hal.KeyEvent, 4)},
		ptr: fakePointer{ch: make(chan hal.PointerEvent, 4)},
	}

	var out <-chan kernel.Message
	got := make(chan struct{})
	k.AddTask(recvTask(func(ctx *kernel.Context) {
		out, _ = ctx.RecvChan(ep.Restrict(kernel.RightRecv))
		close(got)
	}))
	<-got
	if out == nil {
		t.Fatal("RecvChan failed")
	}

	k.AddTask(New(in, ep.Restrict(kernel.RightSend)))

	in.kbd.ch <- hal.KeyEvent{Code: hal.KeyTab, Press: true}
	msg := recvWithin(t, out)
	if proto.Kind(msg.Kind) != proto.MsgKey {
		t.Fatalf("kind = %s, want key", proto.Kind(msg.Kind))
	}
	code, press, r, ok := proto.DecodeKeyPayload(msg.Payload())
	if !ok || hal.KeyCode(code) != hal.KeyTab || !press || r != 0 {
		t.Fatalf("key = %d %v %q %v", code, press, r, ok)
	}

	in.ptr.ch <- hal.PointerEvent{Kind: hal.PointerDown, X: 40, Y: 70000}
	msg = recvWithin(t, out)
	if proto.Kind(msg.Kind) != proto.MsgPointer {
		t.Fatalf("kind = %s, want pointer", proto.Kind(msg.Kind))
	}
	kind, x, y, ok := proto.DecodePointerPayload(msg.Payload())
	if !ok || kind != proto.PointerDown || x != 40 || y != 32767 {
		t.Fatalf("pointer = %s %d %d %v", kind, x, y, ok)
	}

	close(in.kbd.ch)
	close(in.ptr.ch)
	k.Wait()
}

func TestServiceForwardsScript(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	var out <-chan kernel.Message
	got := make(chan struct{})
	k.AddTask(recvTask(func(ctx *kernel.Context) {
		out, _ = ctx.RecvChan(ep.Restrict(kernel.RightRecv))
		close(got)
	}))
	<-got

	script := "# warm-up\n\ny = x^2\n  preset 3\npreset x\n"
	k.AddTask(New(nil, ep.Restrict(kernel.RightSend), WithScript(strings.NewReader(script))))

	msg := recvWithin(t, out)
	eq, ok := proto.DecodeEquationSetPayload(msg.Payload())
	if proto.Kind(msg.Kind) != proto.MsgEquationSet || !ok || eq != "y = x^2" {
		t.Fatalf("first = %s %q", proto.Kind(msg.Kind), eq)
	}

	msg = recvWithin(t, out)
	i, ok := proto.DecodePresetSelectPayload(msg.Payload())
	if proto.Kind(msg.Kind) != proto.MsgPresetSelect || !ok || i != 3 {
		t.Fatalf("second = %s %d", proto.Kind(msg.Kind), i)
	}

	msg = recvWithin(t, out)
	eq, _ = proto.DecodeEquationSetPayload(msg.Payload())
	if proto.Kind(msg.Kind) != proto.MsgEquationSet || eq != "preset x" {
		t.Fatalf("third = %s %q", proto.Kind(msg.Kind), eq)
	}

	// The service returns once the script is drained.
	k.Wait()
}

func TestServiceDropsUnknownPointerKind(t *testing.T) {
	if _, ok := pointerKind(hal.PointerKind(0)); ok {
		t.Fatal("pointerKind(0) ok")
	}
	if k, ok := pointerKind(hal.PointerLeave); !ok || k != proto.PointerLeave {
		t.Fatalf("pointerKind(leave) = %s %v", k, ok)
	}
}

type recvTask func(*kernel.Context)

func (f recvTask) Run(ctx *kernel.Context) { f(ctx) }
