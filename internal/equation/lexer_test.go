package equation

import "testing"

func lexAll(s string) []token {
	l := lexer{s: s}
	var out []token
	for {
		tok := l.next()
		out = append(out, tok)
		if tok.kind == tokEOF || tok.kind == tokInvalid {
			return out
		}
	}
}

func TestLexer_WordsAreTokens(t *testing.T) {
	tests := []struct {
		in   string
		want []tokenKind
	}{
		{in: "sin(x)", want: []tokenKind{tokFunc, tokLParen, tokVar, tokRParen, tokEOF}},
		{in: "e^x", want: []tokenKind{tokConst, tokCaret, tokVar, tokEOF}},
		{in: "xsin x", want: []tokenKind{tokVar, tokFunc, tokVar, tokEOF}},
		{in: "2πx", want: []tokenKind{tokNumber, tokConst, tokVar, tokEOF}},
		{in: "√|x|", want: []tokenKind{tokFunc, tokBar, tokVar, tokBar, tokEOF}},
		{in: "3.25 − 1", want: []tokenKind{tokNumber, tokMinus, tokNumber, tokEOF}},
		{in: "cos e", want: []tokenKind{tokFunc, tokConst, tokEOF}},
		{in: "y", want: []tokenKind{tokInvalid}},
		{in: "#", want: []tokenKind{tokInvalid}},
	}

	for _, tt := range tests {
		got := lexAll(tt.in)
		if len(got) != len(tt.want) {
			t.Fatalf("lex(%q) = %d tokens, want %d", tt.in, len(got), len(tt.want))
		}
		for i := range got {
			if got[i].kind != tt.want[i] {
				t.Fatalf("lex(%q)[%d] = %s, want %s", tt.in, i, got[i].kind, tt.want[i])
			}
		}
	}
}

func TestLexer_FunctionIDs(t *testing.T) {
	tests := []struct {
		in string
		fn funcID
	}{
		{in: "sin", fn: fnSin},
		{in: "cos", fn: fnCos},
		{in: "tan", fn: fnTan},
		{in: "log", fn: fnLn},
		{in: "√", fn: fnSqrt},
		{in: "sqrt", fn: fnSqrt},
	}
	for _, tt := range tests {
		l := lexer{s: tt.in}
		tok := l.next()
		if tok.kind != tokFunc || tok.fn != tt.fn {
			t.Fatalf("lex(%q) = %+v, want func %d", tt.in, tok, tt.fn)
		}
	}
}

func TestLexer_Positions(t *testing.T) {
	toks := lexAll(" x + sin")
	wantPos := []int{1, 3, 5, 8}
	for i, want := range wantPos {
		if toks[i].pos != want {
			t.Fatalf("token %d pos=%d, want %d", i, toks[i].pos, want)
		}
	}
}
