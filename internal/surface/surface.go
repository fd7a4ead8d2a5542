// Package surface computes the area of the surface swept by rotating a curve
// about the x axis.
package surface

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/integlab/internal/expr"
	"github.com/san-kum/integlab/internal/numeric"
	"github.com/san-kum/integlab/internal/quadrature"
)

// MinPanels is the smallest Simpson panel count used for the lateral area.
const MinPanels = 1000

// Result holds the surface decomposition.
type Result struct {
	Lateral float64 `json:"lateral"`
	Cap     float64 `json:"cap"`
	Total   float64 `json:"total"`
	// Analytic is the closed-form total, known only for the sqrt(x) example.
	Analytic *float64 `json:"analytic,omitempty"`
	Panels   int      `json:"panels"`
	// Symbolic reports whether a closed-form derivative was available.
	Symbolic bool     `json:"symbolic"`
	Warnings []string `json:"warnings,omitempty"`
}

// RelativeError compares Total with Analytic. ok is false when no analytic
// value is known.
func (r *Result) RelativeError() (rel float64, ok bool) {
	if r.Analytic == nil || *r.Analytic == 0 {
		return 0, false
	}
	return math.Abs(r.Total-*r.Analytic) / math.Abs(*r.Analytic), true
}

// Compute integrates 2π·|f|·sqrt(1+f'²) over iv with composite Simpson and
// adds the disk at iv.B. Failed evaluations of f count as 0 and are listed
// in Result.Warnings; so are derivative failures, which count as a flat slope.
func Compute(f numeric.Func, d Differentiator, iv numeric.Interval, n int) (*Result, error) {
	if err := iv.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d", numeric.ErrSubdivisions, n)
	}

	m := max(MinPanels, n)
	if m%2 == 1 {
		m++
	}

	rec := numeric.NewRecorder()
	safe := numeric.Recover(f, 0, rec)
	slope := numeric.Recover(d.Derivative, 0, rec)

	integrand := func(t float64) (float64, error) {
		y, _ := safe(t)
		dy, _ := slope(t)
		return 2 * math.Pi * math.Abs(y) * math.Sqrt(1+dy*dy), nil
	}
	lateral, err := quadrature.CompositeSimpson(integrand, iv, m)
	if err != nil {
		return nil, err
	}

	fb, _ := safe(iv.B)
	r := max(0, fb)
	res := &Result{
		Lateral:  lateral,
		Cap:      math.Pi * r * r,
		Panels:   m,
		Warnings: rec.Messages(),
	}
	res.Total = res.Lateral + res.Cap
	return res, nil
}

type settings struct {
	eval     expr.Evaluator
	variable string
	symbolic bool
}

// Option configures Revolution.
type Option func(*settings)

// WithEvaluator replaces the default expr-lang engine.
func WithEvaluator(ev expr.Evaluator) Option {
	return func(s *settings) { s.eval = ev }
}

// WithVariable names the free variable of the expression (default "x").
func WithVariable(name string) Option {
	return func(s *settings) { s.variable = name }
}

// WithoutSymbolic skips the closed-form derivative.
func WithoutSymbolic() Option {
	return func(s *settings) { s.symbolic = false }
}

// Revolution compiles expression and computes its surface of revolution over
// iv. The derivative is taken symbolically when possible, then by finite
// differences, then assumed flat.
func Revolution(expression string, iv numeric.Interval, n int, opts ...Option) (*Result, error) {
	s := settings{variable: "x", symbolic: true}
	for _, opt := range opts {
		opt(&s)
	}
	if s.eval == nil {
		s.eval = expr.New()
	}

	f, err := s.eval.Compile(expression, s.variable)
	if err != nil {
		return nil, err
	}

	var chain Chain
	var symbolic bool
	if s.symbolic {
		if df, err := expr.Derive(expression, s.variable); err == nil {
			chain = append(chain, Symbolic{Fn: df})
			symbolic = true
		}
	}
	chain = append(chain, NewFiniteDifference(f, iv), Zero{})

	res, err := Compute(f, chain, iv, n)
	if err != nil {
		return nil, err
	}
	res.Symbolic = symbolic
	if v, ok := Analytic(expression, iv); ok {
		res.Analytic = &v
	}
	return res, nil
}

var sqrtForms = map[string]bool{
	"sqrt(x)":  true,
	"x^(1/2)":  true,
	"x^0.5":    true,
	"x**0.5":   true,
	"x**(1/2)": true,
}

// Analytic returns the closed-form total 80π/3 for sqrt(x) on exactly [0, 6].
func Analytic(expression string, iv numeric.Interval) (float64, bool) {
	compact := strings.Join(strings.Fields(expression), "")
	if sqrtForms[compact] && iv.A == 0 && iv.B == 6 {
		return 80 * math.Pi / 3, true
	}
	return 0, false
}
