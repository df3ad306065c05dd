package equation

import (
	"strconv"
	"strings"
)

// Expr is a translated right-hand side, ready for evaluation.
//
// It is immutable and safe to evaluate from multiple goroutines.
type Expr struct {
	src  string
	root node
}

// Translate checks that eq has the shape `y = <expr>` and compiles the right side.
//
// All shape and syntax failures are *MalformedEquationError values.
func Translate(eq string) (*Expr, error) {
	i := strings.IndexByte(eq, '=')
	if i < 0 {
		return nil, &MalformedEquationError{Reason: ReasonMissingEquals, Pos: -1}
	}
	if j := strings.IndexByte(eq[i+1:], '='); j >= 0 {
		return nil, &MalformedEquationError{Reason: ReasonExtraEquals, Pos: i + 1 + j}
	}
	if lhs := strings.TrimSpace(eq[:i]); lhs != "y" {
		return nil, &MalformedEquationError{Reason: ReasonLeftSide, Detail: strconv.Quote(lhs), Pos: 0}
	}
	return Compile(eq[i+1:])
}

// Compile parses a bare expression in x.
func Compile(src string) (*Expr, error) {
	root, err := parse(src)
	if err != nil {
		return nil, err
	}
	return &Expr{src: strings.TrimSpace(src), root: root}, nil
}

// Source returns the expression text as typed.
func (e *Expr) Source() string {
	if e == nil {
		return ""
	}
	return e.src
}

// String returns the translated, fully parenthesized form of the expression,
// for example `pow(x, 2)` for `x^2` and `3.141592653589793` for `π`.
func (e *Expr) String() string {
	if e == nil || e.root == nil {
		return ""
	}
	var b strings.Builder
	writeNode(&b, e.root)
	return b.String()
}

func writeNode(b *strings.Builder, n node) {
	switch n := n.(type) {
	case nodeNumber:
		b.WriteString(formatNumber(n.v))
	case nodeConst:
		b.WriteString(formatNumber(n.v))
	case nodeVar:
		b.WriteByte('x')
	case nodeNeg:
		b.WriteString("(-")
		writeNode(b, n.x)
		b.WriteByte(')')
	case nodeCall:
		b.WriteString(funcName(n.fn))
		b.WriteByte('(')
		writeNode(b, n.arg)
		b.WriteByte(')')
	case nodeBinary:
		if n.op == '^' {
			b.WriteString("pow(")
			writeNode(b, n.left)
			b.WriteString(", ")
			writeNode(b, n.right)
			b.WriteByte(')')
			return
		}
		b.WriteByte('(')
		writeNode(b, n.left)
		b.WriteByte(' ')
		b.WriteByte(n.op)
		b.WriteByte(' ')
		writeNode(b, n.right)
		b.WriteByte(')')
	}
}

func funcName(fn funcID) string {
	switch fn {
	case fnSin:
		return "sin"
	case fnCos:
		return "cos"
	case fnTan:
		return "tan"
	case fnLn:
		return "ln"
	case fnSqrt:
		return "sqrt"
	case fnAbs:
		return "abs"
	default:
		return "?"
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
