// Package area measures the region enclosed between two curves.
package area

import (
	"fmt"
	"math"

	"github.com/san-kum/integlab/internal/numeric"
	"github.com/san-kum/integlab/internal/roots"
)

// Steps is the fixed resolution of the area sum.
const Steps = 1000

// Result describes the region between two curves.
type Result struct {
	// Intersections lists every crossing found, interior ones included.
	Intersections []float64 `json:"intersections"`
	Area          float64   `json:"area"`
	A             float64   `json:"a"`
	B             float64   `json:"b"`
	// Bounded is false when fewer than two crossings were found.
	Bounded bool `json:"bounded"`
}

// Between locates the crossings of f and g and integrates |f - g| between
// the outermost pair. Interior crossings do not split the region; the
// absolute value already accounts for the curves swapping order.
func Between(f, g numeric.Func, opts ...roots.Option) (*Result, error) {
	xs, err := roots.FindIntersections(f, g, opts...)
	if err != nil {
		return nil, err
	}
	res := &Result{Intersections: xs}
	if len(xs) < 2 {
		return res, nil
	}

	res.A, res.B = xs[0], xs[len(xs)-1]
	res.Bounded = true
	res.Area, err = Enclosed(f, g, numeric.Interval{A: res.A, B: res.B})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Enclosed is the left-sampled sum of |f - g| over iv using Steps cells.
func Enclosed(f, g numeric.Func, iv numeric.Interval) (float64, error) {
	dt, err := iv.Step(Steps)
	if err != nil {
		return 0, err
	}
	diff := numeric.Sub(f, g)
	var sum float64
	for i := 0; i < Steps; i++ {
		t := iv.A + float64(i)*dt
		d, err := diff(t)
		if err != nil {
			return 0, fmt.Errorf("area at t=%g: %w", t, err)
		}
		sum += math.Abs(d) * dt
	}
	if !numeric.IsFinite(sum) {
		return 0, &numeric.EvalError{At: iv.A, Err: numeric.ErrNonFinite}
	}
	return math.Abs(sum), nil
}
