package surface

import (
	"fmt"

	"github.com/san-kum/integlab/internal/numeric"
)

// Differentiator estimates f'(t).
type Differentiator interface {
	Derivative(t float64) (float64, error)
}

// DerivativeFunc adapts a plain function to a Differentiator.
type DerivativeFunc func(t float64) (float64, error)

func (f DerivativeFunc) Derivative(t float64) (float64, error) { return f(t) }

// Symbolic evaluates a closed-form derivative.
type Symbolic struct {
	Fn numeric.Func
}

func (s Symbolic) Derivative(t float64) (float64, error) {
	v, err := s.Fn(t)
	if err != nil {
		return 0, err
	}
	if !numeric.IsFinite(v) {
		return 0, &numeric.EvalError{At: t, Err: numeric.ErrNonFinite}
	}
	return v, nil
}

// maxShrinks bounds how often the step is divided by ten.
const maxShrinks = 6

// FiniteDifference estimates f' by one-sided differences at the ends of
// [Lo, Hi] and a central difference inside.
type FiniteDifference struct {
	F      numeric.Func
	Lo, Hi float64
	H      float64
}

// NewFiniteDifference picks the base step h = max(1e-6, |b-a|·1e-6), using a
// unit width for degenerate intervals.
func NewFiniteDifference(f numeric.Func, iv numeric.Interval) *FiniteDifference {
	lo, hi := iv.Ordered()
	width := hi - lo
	if width == 0 {
		width = 1
	}
	return &FiniteDifference{F: f, Lo: lo, Hi: hi, H: max(1e-6, width*1e-6)}
}

func (fd *FiniteDifference) estimate(t, h float64) (float64, error) {
	var lo, hi, span float64
	switch {
	case t-h < fd.Lo:
		lo, hi, span = t, t+h, h
	case t+h > fd.Hi:
		lo, hi, span = t-h, t, h
	default:
		lo, hi, span = t-h, t+h, 2*h
	}
	a, err := fd.F(lo)
	if err != nil {
		return 0, err
	}
	b, err := fd.F(hi)
	if err != nil {
		return 0, err
	}
	v := (b - a) / span
	if !numeric.IsFinite(v) {
		return 0, &numeric.EvalError{At: t, Err: numeric.ErrNonFinite}
	}
	return v, nil
}

// Derivative tries the base step, then up to six steps each ten times
// smaller, and returns the first finite estimate.
func (fd *FiniteDifference) Derivative(t float64) (float64, error) {
	h := fd.H
	v, err := fd.estimate(t, h)
	for i := 0; err != nil && i < maxShrinks; i++ {
		h /= 10
		v, err = fd.estimate(t, h)
	}
	if err != nil {
		return 0, fmt.Errorf("finite difference at t=%g: %w", t, err)
	}
	return v, nil
}

// Zero always reports a flat slope.
type Zero struct{}

func (Zero) Derivative(float64) (float64, error) { return 0, nil }

// Chain returns the first finite estimate among its strategies, in order.
type Chain []Differentiator

func (c Chain) Derivative(t float64) (float64, error) {
	err := error(numeric.ErrNoSymbolic)
	for _, d := range c {
		var v float64
		v, err = d.Derivative(t)
		if err == nil && numeric.IsFinite(v) {
			return v, nil
		}
	}
	return 0, err
}
