package quadrature

import (
	"fmt"

	"github.com/san-kum/integlab/internal/numeric"
	"gonum.org/v1/gonum/integrate"
)

// CompositeSimpson integrates f over iv with m panels. An odd m is bumped to
// the next even integer.
func CompositeSimpson(f numeric.Func, iv numeric.Interval, m int) (float64, error) {
	if m%2 == 1 {
		m++
	}
	h, err := iv.Step(m)
	if err != nil {
		return 0, err
	}

	fa, err := f(iv.A)
	if err != nil {
		return 0, err
	}
	fb, err := f(iv.B)
	if err != nil {
		return 0, err
	}

	s := fa + fb
	for i := 1; i < m; i++ {
		v, err := f(iv.A + float64(i)*h)
		if err != nil {
			return 0, err
		}
		if i%2 == 0 {
			s += 2 * v
		} else {
			s += 4 * v
		}
	}
	return h / 3 * s, nil
}

// SampledTrapezoid applies the trapezoidal rule to samples sorted by x.
func SampledTrapezoid(pts []numeric.Point) (float64, error) {
	if len(pts) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 samples, got %d", numeric.ErrParameterBounds, len(pts))
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		if i > 0 && p.X < pts[i-1].X {
			return 0, fmt.Errorf("%w: samples not sorted at index %d", numeric.ErrParameterBounds, i)
		}
		xs[i], ys[i] = p.X, p.Y
	}
	return integrate.Trapezoidal(xs, ys), nil
}

// Sample evaluates f at n+1 equally spaced nodes of iv.
func Sample(f numeric.Func, iv numeric.Interval, n int) ([]numeric.Point, error) {
	dt, err := iv.Step(n)
	if err != nil {
		return nil, err
	}
	return sampleNodes(f, iv.A, dt, n)
}
