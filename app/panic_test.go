package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"sparkplot/sparkos/kernel"
)

func TestWrapRunes(t *testing.T) {
	tests := []struct {
		s    string
		cols int
		want []string
	}{
		{s: "short", cols: 10, want: []string{"short"}},
		{s: "abcdef", cols: 3, want: []string{"abc", "def"}},
		{s: "abc   def", cols: 3, want: []string{"abc", "def"}},
		{s: "ππππ", cols: 3, want: []string{"πππ", "π"}},
		{s: "x", cols: 0, want: nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, wrapRunes(tt.s, tt.cols)); diff != "" {
			t.Fatalf("wrapRunes(%q, %d) mismatch (-want +got):\n%s", tt.s, tt.cols, diff)
		}
	}
}

func TestPanicLines(t *testing.T) {
	got := panicLines(kernel.PanicInfo{TaskID: 1, Value: "boom"})
	want := []string{"sparkplot panic", "task=1 panic=boom", "stack: unavailable"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("panicLines mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawPanicScreen(t *testing.T) {
	fb := &memFB{w: 160, h: 120, buf: make([]byte, 160*120*2)}
	drawPanicScreen(fb, kernel.PanicInfo{TaskID: 1, Value: "boom", Stack: []byte("main.go:1\n")})

	px := func(x, y int) uint16 {
		off := y*fb.StrideBytes() + x*2
		return uint16(fb.buf[off]) | uint16(fb.buf[off+1])<<8
	}
	if got := px(fb.w-1, 0); got != 0xC000 {
		t.Fatalf("banner pixel = %#04x, want %#04x", got, 0xC000)
	}
	if got := px(fb.w-1, fb.h-1); got != 0xFFFF {
		t.Fatalf("background pixel = %#04x, want white", got)
	}
}
