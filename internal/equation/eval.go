package equation

// This file contains the AST and its evaluator.

import "math"

const (
	piValue = math.Pi
	eValue  = math.E
)

type node interface {
	eval(x float64) float64
}

type nodeNumber struct{ v float64 }

type nodeVar struct{}

type nodeConst struct {
	name string
	v    float64
}

type nodeNeg struct{ x node }

type nodeBinary struct {
	op    byte
	left  node
	right node
}

type nodeCall struct {
	fn  funcID
	arg node
}

func (n nodeNumber) eval(float64) float64 { return n.v }

func (nodeVar) eval(x float64) float64 { return x }

func (n nodeConst) eval(float64) float64 { return n.v }

func (n nodeNeg) eval(x float64) float64 { return -n.x.eval(x) }

func (n nodeCall) eval(x float64) float64 { return callFunc(n.fn, n.arg.eval(x)) }

func (n nodeBinary) eval(x float64) float64 {
	return binaryOp(n.op, n.left.eval(x), n.right.eval(x))
}

func binaryOp(op byte, a, b float64) float64 {
	switch op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	case '/':
		return a / b
	case '^':
		return math.Pow(a, b)
	default:
		return math.NaN()
	}
}

func callFunc(fn funcID, v float64) float64 {
	switch fn {
	case fnSin:
		return math.Sin(v)
	case fnCos:
		return math.Cos(v)
	case fnTan:
		return math.Tan(v)
	case fnLn:
		return math.Log(v)
	case fnSqrt:
		return math.Sqrt(v)
	case fnAbs:
		return math.Abs(v)
	default:
		return math.NaN()
	}
}

// Eval computes the expression at x.
//
// A NaN or infinite result is reported as an *EvaluationError.
func (e *Expr) Eval(x float64) (float64, error) {
	if e == nil || e.root == nil {
		return 0, &EvaluationError{X: x, Value: math.NaN()}
	}
	v := e.root.eval(x)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &EvaluationError{X: x, Value: v}
	}
	return v, nil
}
