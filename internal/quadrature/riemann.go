package quadrature

import (
	"fmt"
	"strings"

	"github.com/san-kum/integlab/internal/numeric"
)

// Rectangle is one cell of a Riemann partition.
type Rectangle struct {
	X      float64 `json:"x"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Riemann is the outcome of a fixed-step Riemann sum.
type Riemann struct {
	Rule       numeric.Rule     `json:"rule"`
	Interval   numeric.Interval `json:"interval"`
	N          int              `json:"n"`
	Sum        float64          `json:"sum"`
	Dt         float64          `json:"dt"`
	Rectangles []Rectangle      `json:"rectangles"`
	// Samples holds f at every partition node x_0..x_n.
	Samples []numeric.Point `json:"samples"`
}

// RiemannSum approximates the integral of f over iv with n equal cells.
// The first evaluation failure aborts the sum.
func RiemannSum(f numeric.Func, iv numeric.Interval, n int, rule numeric.Rule) (*Riemann, error) {
	dt, err := iv.Step(n)
	if err != nil {
		return nil, err
	}
	height, err := heightFunc(rule)
	if err != nil {
		return nil, err
	}

	nodes, err := sampleNodes(f, iv.A, dt, n)
	if err != nil {
		return nil, err
	}

	res := &Riemann{
		Rule:       rule,
		Interval:   iv,
		N:          n,
		Dt:         dt,
		Rectangles: make([]Rectangle, 0, n),
		Samples:    nodes,
	}

	for i := 0; i < n; i++ {
		x1 := iv.A + float64(i)*dt
		x2 := iv.A + float64(i+1)*dt
		h, err := height(f, x1, x2, nodes[i].Y, nodes[i+1].Y)
		if err != nil {
			return nil, err
		}
		if !numeric.IsFinite(h) {
			return nil, &numeric.EvalError{At: x1, Err: numeric.ErrNonFinite}
		}
		res.Sum += h * dt
		res.Rectangles = append(res.Rectangles, Rectangle{X: x1, Width: dt, Height: h})
	}

	return res, nil
}

func sampleNodes(f numeric.Func, a, dt float64, n int) ([]numeric.Point, error) {
	nodes := make([]numeric.Point, n+1)
	for i := 0; i <= n; i++ {
		x := a + float64(i)*dt
		y, err := f(x)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		nodes[i] = numeric.Point{X: x, Y: y}
	}
	return nodes, nil
}

// cellHeight picks a height for the cell [x1, x2] given f at both edges.
type cellHeight func(f numeric.Func, x1, x2, f1, f2 float64) (float64, error)

func heightFunc(rule numeric.Rule) (cellHeight, error) {
	switch rule {
	case numeric.Left:
		return func(_ numeric.Func, _, _, f1, _ float64) (float64, error) { return f1, nil }, nil
	case numeric.Right:
		return func(_ numeric.Func, _, _, _, f2 float64) (float64, error) { return f2, nil }, nil
	case numeric.Midpoint:
		return func(f numeric.Func, x1, x2, _, _ float64) (float64, error) { return f((x1 + x2) / 2) }, nil
	case numeric.Trapezoid:
		return func(_ numeric.Func, _, _, f1, f2 float64) (float64, error) { return (f1 + f2) / 2, nil }, nil
	default:
		return nil, fmt.Errorf("%w: %s", numeric.ErrUnknownRule, rule)
	}
}

var ruleNames = map[string]numeric.Rule{
	"left":          numeric.Left,
	"right":         numeric.Right,
	"midpoint":      numeric.Midpoint,
	"mid":           numeric.Midpoint,
	"trapezoid":     numeric.Trapezoid,
	"trap":          numeric.Trapezoid,
	"izquierda":     numeric.Left,
	"derecha":       numeric.Right,
	"puntos medios": numeric.Midpoint,
	"trapecios":     numeric.Trapezoid,
}

// ParseRule maps a rule name to its Rule.
func ParseRule(name string) (numeric.Rule, error) {
	r, ok := ruleNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", numeric.ErrUnknownRule, name)
	}
	return r, nil
}
