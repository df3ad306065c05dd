package proto

import (
	"testing"
	"unicode/utf8"
)

func TestKeyPayload(t *testing.T) {
	tests := []struct {
		code  uint16
		press bool
		r     rune
	}{
		{code: 7, press: true},
		{code: 0, press: true, r: 'x'},
		{code: 0, press: false, r: 'π'},
	}
	for _, tt := range tests {
		code, press, r, ok := DecodeKeyPayload(KeyPayload(tt.code, tt.press, tt.r))
		if !ok || code != tt.code || press != tt.press || r != tt.r {
			t.Fatalf("decode(%+v) = %d %v %q %v", tt, code, press, r, ok)
		}
	}
	if _, _, _, ok := DecodeKeyPayload([]byte{1, 2}); ok {
		t.Fatal("short key payload decoded")
	}
}

func TestPointerPayload(t *testing.T) {
	kind, x, y, ok := DecodePointerPayload(PointerPayload(PointerDown, -3, 319))
	if !ok || kind != PointerDown || x != -3 || y != 319 {
		t.Fatalf("decode = %s %d %d %v", kind, x, y, ok)
	}
	if _, _, _, ok := DecodePointerPayload([]byte{9, 0, 0, 0, 0}); ok {
		t.Fatal("unknown pointer kind decoded")
	}
	if _, _, _, ok := DecodePointerPayload([]byte{1}); ok {
		t.Fatal("short pointer payload decoded")
	}
}

func TestEquationSetPayloadCutsAtRuneBoundary(t *testing.T) {
	b := EquationSetPayload("y = ππ", 7)
	if !utf8.Valid(b) {
		t.Fatalf("payload %q is not valid UTF-8", b)
	}
	eq, ok := DecodeEquationSetPayload(b)
	if !ok || eq != "y = π" {
		t.Fatalf("decode = %q %v, want %q", eq, ok, "y = π")
	}
	if _, ok := DecodeEquationSetPayload([]byte{0xff}); ok {
		t.Fatal("invalid UTF-8 decoded")
	}
}

func TestPresetSelectPayload(t *testing.T) {
	for _, i := range []int32{0, 5, -1} {
		got, ok := DecodePresetSelectPayload(PresetSelectPayload(i))
		if !ok || got != i {
			t.Fatalf("decode(%d) = %d %v", i, got, ok)
		}
	}
}

func TestLogLinePayloadClipsAtRuneBoundary(t *testing.T) {
	tests := []struct {
		line string
		max  int
		want string
	}{
		{line: "grapher: ok", max: 64, want: "grapher: ok"},
		{line: "y = π", max: 5, want: "y = "},
		{line: "y = π", max: 6, want: "y = π"},
		{line: "abc", max: -1, want: "abc"},
		{line: "abc", max: 0, want: ""},
	}
	for _, tt := range tests {
		got := LogLinePayload(tt.line, tt.max)
		if string(got) != tt.want || !utf8.Valid(got) {
			t.Fatalf("LogLinePayload(%q, %d) = %q, want %q", tt.line, tt.max, got, tt.want)
		}
	}
}
