package interact

import (
	"testing"

	"sparkplot/internal/equation"
)

func TestInsertToken(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{label: "pi", want: "y = π"},
		{label: "^", want: "y = ^("},
		{label: "sqrt", want: "y = √("},
		{label: "e", want: "y = e"},
		{label: "log", want: "y = log("},
		{label: "sin", want: "y = sin("},
		{label: "cos", want: "y = cos("},
		{label: "tan", want: "y = tan("},
		{label: "|x|", want: "y = |x|"},
	}
	if len(Tokens) != len(tests) {
		t.Fatalf("len(Tokens) = %d, want %d", len(Tokens), len(tests))
	}
	for i, tt := range tests {
		tok := Tokens[i]
		if tok.Label != tt.label {
			t.Fatalf("Tokens[%d].Label = %q, want %q", i, tok.Label, tt.label)
		}
		if got := InsertToken("y = ", tok); got != tt.want {
			t.Fatalf("InsertToken(%q) = %q, want %q", tok.Label, got, tt.want)
		}
	}
}

func TestInsertToken_BuildsEquation(t *testing.T) {
	eq := "y = 2"
	for _, label := range []string{"sin", "pi"} {
		for _, tok := range Tokens {
			if tok.Label == label {
				eq = InsertToken(eq, tok)
			}
		}
	}
	eq += "/2)"
	ex, err := equation.Translate(eq)
	if err != nil {
		t.Fatalf("Translate(%q): %v", eq, err)
	}
	if y, err := ex.Eval(0); err != nil || y != 2 {
		t.Fatalf("%q = %g, %v; want 2", eq, y, err)
	}
}

func TestPresets_Translate(t *testing.T) {
	for _, p := range Presets {
		if _, err := equation.Translate(p); err != nil {
			t.Fatalf("preset %q: %v", p, err)
		}
	}
}

func TestPreset_Wraps(t *testing.T) {
	n := len(Presets)
	tests := []struct {
		in, want int
	}{
		{in: 0, want: 0},
		{in: n, want: 0},
		{in: n + 2, want: 2},
		{in: -1, want: n - 1},
	}
	for _, tt := range tests {
		i, eq := Preset(tt.in)
		if i != tt.want || eq != Presets[tt.want] {
			t.Fatalf("Preset(%d) = %d %q, want %d", tt.in, i, eq, tt.want)
		}
	}
}
