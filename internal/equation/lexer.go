package equation

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokInvalid
	tokNumber
	tokVar
	tokConst
	tokFunc
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokBar
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokInvalid:
		return "invalid"
	case tokNumber:
		return "number"
	case tokVar:
		return "x"
	case tokConst:
		return "constant"
	case tokFunc:
		return "function"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokCaret:
		return "'^'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokBar:
		return "'|'"
	default:
		return "unknown"
	}
}

type funcID uint8

const (
	fnSin funcID = iota + 1
	fnCos
	fnTan
	fnLn
	fnSqrt
	fnAbs
)

type token struct {
	kind tokenKind
	text string
	pos  int
	num  float64
	fn   funcID
}

// Identifier words. Letters are scanned as a maximal run and then split into
// known words, so "sin" is one token and "e" only stands alone.
var words = []struct {
	text string
	kind tokenKind
	fn   funcID
	num  float64
}{
	{text: "sqrt", kind: tokFunc, fn: fnSqrt},
	{text: "sin", kind: tokFunc, fn: fnSin},
	{text: "cos", kind: tokFunc, fn: fnCos},
	{text: "tan", kind: tokFunc, fn: fnTan},
	{text: "log", kind: tokFunc, fn: fnLn},
	{text: "abs", kind: tokFunc, fn: fnAbs},
	{text: "pi", kind: tokConst, num: piValue},
	{text: "x", kind: tokVar},
	{text: "e", kind: tokConst, num: eValue},
}

type lexer struct {
	s string
	i int

	// pending holds words split out of a single letter run (e.g. "xsin").
	pending []token
}

func (l *lexer) next() token {
	if len(l.pending) > 0 {
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t
	}

	for l.i < len(l.s) {
		r, n := utf8.DecodeRuneInString(l.s[l.i:])
		if !unicode.IsSpace(r) {
			break
		}
		l.i += n
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	start := l.i
	r, n := utf8.DecodeRuneInString(l.s[l.i:])
	switch r {
	case '+':
		l.i += n
		return token{kind: tokPlus, text: "+", pos: start}
	case '-', '−':
		l.i += n
		return token{kind: tokMinus, text: "-", pos: start}
	case '*', '×', '·':
		l.i += n
		return token{kind: tokStar, text: "*", pos: start}
	case '/', '÷':
		l.i += n
		return token{kind: tokSlash, text: "/", pos: start}
	case '^':
		l.i += n
		return token{kind: tokCaret, text: "^", pos: start}
	case '(':
		l.i += n
		return token{kind: tokLParen, text: "(", pos: start}
	case ')':
		l.i += n
		return token{kind: tokRParen, text: ")", pos: start}
	case '|':
		l.i += n
		return token{kind: tokBar, text: "|", pos: start}
	case 'π':
		l.i += n
		return token{kind: tokConst, text: "π", pos: start, num: piValue}
	case '√':
		l.i += n
		return token{kind: tokFunc, text: "√", pos: start, fn: fnSqrt}
	}

	if r == '.' || isDigit(r) {
		l.i = scanNumber(l.s, l.i)
		txt := l.s[start:l.i]
		v, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			return token{kind: tokInvalid, text: txt, pos: start}
		}
		return token{kind: tokNumber, text: txt, pos: start, num: v}
	}

	if unicode.IsLetter(r) {
		for l.i < len(l.s) {
			r, n := utf8.DecodeRuneInString(l.s[l.i:])
			if !unicode.IsLetter(r) || r == 'π' {
				break
			}
			l.i += n
		}
		toks, ok := splitWords(l.s[start:l.i], start)
		if !ok {
			return token{kind: tokInvalid, text: l.s[start:l.i], pos: start}
		}
		l.pending = toks[1:]
		return toks[0]
	}

	l.i += n
	return token{kind: tokInvalid, text: string(r), pos: start}
}

// splitWords breaks a run of letters into known words, longest match first.
// A run that cannot be fully consumed is rejected.
func splitWords(run string, base int) ([]token, bool) {
	var out []token
	i := 0
	for i < len(run) {
		matched := false
		for _, w := range words {
			if len(run)-i < len(w.text) || run[i:i+len(w.text)] != w.text {
				continue
			}
			out = append(out, token{kind: w.kind, text: w.text, pos: base + i, num: w.num, fn: w.fn})
			i += len(w.text)
			matched = true
			break
		}
		if !matched {
			return nil, false
		}
	}
	return out, len(out) > 0
}

// scanNumber scans a run of digits and dots. A run with more than one '.'
// is left for strconv.ParseFloat to reject.
// Exponent notation is not accepted, since 'e' is Euler's number.
func scanNumber(s string, i int) int {
	for i < len(s) && (s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	return i
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
