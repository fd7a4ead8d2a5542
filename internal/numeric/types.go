package numeric

import (
	"fmt"
	"math"
)

// Func is a real function of one variable. Implementations return an error
// instead of panicking when the function is undefined at x.
type Func func(x float64) (float64, error)

// Pure adapts a total Go function to a Func.
func Pure(f func(float64) float64) Func {
	return func(x float64) (float64, error) {
		return f(x), nil
	}
}

// Sub returns f - g.
func Sub(f, g Func) Func {
	return func(x float64) (float64, error) {
		fv, err := f(x)
		if err != nil {
			return 0, err
		}
		gv, err := g(x)
		if err != nil {
			return 0, err
		}
		return fv - gv, nil
	}
}

// IsFinite reports whether v is neither NaN nor Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Interval is the closed range [A, B]. A > B is allowed and denotes the
// reversed orientation.
type Interval struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
}

// Validate rejects non-finite bounds.
func (iv Interval) Validate() error {
	if !IsFinite(iv.A) || !IsFinite(iv.B) {
		return fmt.Errorf("%w: [%v, %v]", ErrInterval, iv.A, iv.B)
	}
	return nil
}

// Width is B - A, negative for a reversed interval.
func (iv Interval) Width() float64 { return iv.B - iv.A }

// Ordered returns the bounds as (min, max).
func (iv Interval) Ordered() (lo, hi float64) {
	if iv.A <= iv.B {
		return iv.A, iv.B
	}
	return iv.B, iv.A
}

// Step is the width of one of n equal cells.
func (iv Interval) Step(n int) (float64, error) {
	if err := iv.Validate(); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: n=%d", ErrSubdivisions, n)
	}
	return iv.Width() / float64(n), nil
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%g, %g]", iv.A, iv.B)
}

// Point is one sample of a curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rule selects the sample height of a Riemann cell.
type Rule int

const (
	Left Rule = iota
	Right
	Midpoint
	Trapezoid
)

// Rules lists every rule in display order.
var Rules = []Rule{Left, Right, Midpoint, Trapezoid}

func (r Rule) String() string {
	switch r {
	case Left:
		return "left"
	case Right:
		return "right"
	case Midpoint:
		return "midpoint"
	case Trapezoid:
		return "trapezoid"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Rule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
