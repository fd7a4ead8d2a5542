package numeric

import (
	"errors"
	"fmt"
)

// Domain errors for numeric operations.
var (
	// ErrEvaluation indicates the expression could not be evaluated at a point.
	ErrEvaluation = errors.New("numeric: expression evaluation failed")

	// ErrNonFinite indicates a sample produced NaN or Inf.
	ErrNonFinite = errors.New("numeric: non-finite value (NaN or Inf detected)")

	// ErrInterval indicates an interval with non-finite bounds.
	ErrInterval = errors.New("numeric: invalid interval")

	// ErrSubdivisions indicates a non-positive subdivision count.
	ErrSubdivisions = errors.New("numeric: subdivision count must be positive")

	// ErrUnknownRule indicates an unsupported quadrature rule name.
	ErrUnknownRule = errors.New("numeric: unknown quadrature rule")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("numeric: parameter out of valid bounds")

	// ErrNoSymbolic indicates no symbolic derivative is available.
	ErrNoSymbolic = errors.New("numeric: symbolic derivative unavailable")
)

// EvalError wraps an evaluation failure with the point it happened at.
type EvalError struct {
	Expression string
	At         float64
	Err        error
}

func (e *EvalError) Error() string {
	if e.Expression == "" {
		return fmt.Sprintf("evaluate at %g: %v", e.At, e.Err)
	}
	return fmt.Sprintf("evaluate %q at %g: %v", e.Expression, e.At, e.Err)
}

func (e *EvalError) Unwrap() []error {
	return []error{ErrEvaluation, e.Err}
}
