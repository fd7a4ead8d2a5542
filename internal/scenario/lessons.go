// Package scenario holds the worked lessons of the app: each pairs a
// resource-usage story with one of the numeric routines.
package scenario

import (
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/integlab/internal/area"
	"github.com/san-kum/integlab/internal/expr"
	"github.com/san-kum/integlab/internal/numeric"
	"github.com/san-kum/integlab/internal/quadrature"
	"github.com/san-kum/integlab/internal/surface"
)

// CPU load lesson: Riemann sums of exp(t) + 1.
const (
	CPULoadExpr = "exp(t) + 1"
	CPULoadN    = 4
	CPULoadRule = numeric.Midpoint
)

var CPULoadInterval = numeric.Interval{A: 0, B: 4}

// CPULoadExact is the closed form e^b - e^a + (b - a).
func CPULoadExact(iv numeric.Interval) float64 {
	return expExact(iv.B) - expExact(iv.A)
}

func expExact(t float64) float64 { return math.Exp(t) + t }

func CPULoad(ev expr.Evaluator, iv numeric.Interval, n int, rule numeric.Rule) (*quadrature.Riemann, error) {
	f, err := ev.Compile(CPULoadExpr, "t")
	if err != nil {
		return nil, err
	}
	return quadrature.RiemannSum(f, iv, n, rule)
}

// Memory against CPU lesson: (t + m)^2 versus -t + c.
const (
	DefaultMemoryShift = 5.0
	DefaultCPUOffset   = 5.0
)

func MemoryExpr(m float64) string { return "(t + " + formatParam(m) + ")^2" }

func CPUExpr(c float64) string { return "-t + " + formatParam(c) }

func formatParam(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if v < 0 {
		return "(" + s + ")"
	}
	return s
}

func MemoryVsCPU(ev expr.Evaluator, m, c float64) (*area.Result, error) {
	mem, err := ev.Compile(MemoryExpr(m), "t")
	if err != nil {
		return nil, err
	}
	cpu, err := ev.Compile(CPUExpr(c), "t")
	if err != nil {
		return nil, err
	}
	return area.Between(mem, cpu)
}

// Definite integral lesson: a left sum of any expression in x.
const (
	DefiniteExpr = "x^2"
	DefiniteN    = 100
)

var DefiniteInterval = numeric.Interval{A: 0, B: 1}

// DefiniteResult is a left sum whose failed samples were counted as 0.
type DefiniteResult struct {
	*quadrature.Riemann
	Warnings []string `json:"warnings,omitempty"`
}

// DefiniteIntegral sums a user expression in x. Points where the expression
// cannot be evaluated contribute 0 and are listed in Warnings; only a compile
// failure or invalid bounds abort the lesson.
func DefiniteIntegral(ev expr.Evaluator, expression string, iv numeric.Interval, n int) (*DefiniteResult, error) {
	f, err := ev.Compile(expression, "x")
	if err != nil {
		return nil, err
	}
	rec := numeric.NewRecorder()
	res, err := quadrature.RiemannSum(numeric.Recover(f, 0, rec), iv, n, numeric.Left)
	if err != nil {
		return nil, fmt.Errorf("integral of %q: %w", expression, err)
	}
	return &DefiniteResult{Riemann: res, Warnings: rec.Messages()}, nil
}

// Surface lesson: sqrt(x) rotated on [0, 6].
const SurfaceExpr = "sqrt(x)"

var SurfaceInterval = numeric.Interval{A: 0, B: 6}

func Surface(ev expr.Evaluator, expression string, iv numeric.Interval, n int) (*surface.Result, error) {
	return surface.Revolution(expression, iv, n, surface.WithEvaluator(ev))
}
