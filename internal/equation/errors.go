package equation

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrMalformedEquation = errors.New("malformed equation")
	ErrEvaluation        = errors.New("evaluation error")
)

// Reason classifies a MalformedEquationError.
type Reason uint8

const (
	ReasonMissingEquals Reason = iota + 1
	ReasonExtraEquals
	ReasonLeftSide
	ReasonSyntax
)

func (r Reason) String() string {
	switch r {
	case ReasonMissingEquals:
		return "missing '='"
	case ReasonExtraEquals:
		return "more than one '='"
	case ReasonLeftSide:
		return "left side must be y"
	case ReasonSyntax:
		return "syntax"
	default:
		return "unknown"
	}
}

// MalformedEquationError reports an equation that does not have the shape `y = <expr>`
// or whose right side does not parse.
type MalformedEquationError struct {
	Reason Reason
	Detail string
	Pos    int
}

func (e *MalformedEquationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", ErrMalformedEquation, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedEquation, e.Reason, e.Detail)
}

func (e *MalformedEquationError) Unwrap() error { return ErrMalformedEquation }

// EvaluationError reports that an expression has no finite value at X.
type EvaluationError struct {
	X     float64
	Value float64
}

func (e *EvaluationError) Error() string {
	kind := "nan"
	if math.IsInf(e.Value, 0) {
		kind = "inf"
	}
	return fmt.Sprintf("%s: %s at x=%g", ErrEvaluation, kind, e.X)
}

func (e *EvaluationError) Unwrap() error { return ErrEvaluation }

func syntaxErr(pos int, format string, args ...any) error {
	return &MalformedEquationError{Reason: ReasonSyntax, Detail: fmt.Sprintf(format, args...), Pos: pos}
}
