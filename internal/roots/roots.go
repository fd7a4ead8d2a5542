// Package roots locates where two curves meet by scanning a fixed grid.
//
// The scan is deliberately coarse: a grid point counts as a crossing when
// |f(t) - g(t)| < tol, and crossings are rounded to one decimal before being
// de-duplicated. Callers that bound an integral only need the outermost
// crossings, which this finds reliably for well-separated roots.
package roots

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/integlab/internal/numeric"
)

const (
	DefaultLo   = -10.0
	DefaultHi   = 10.0
	DefaultStep = 0.1
	DefaultTol  = 0.1
)

type options struct {
	lo, hi    float64
	step, tol float64
	decimals  int
}

// Option configures a scan.
type Option func(*options)

// Domain sets the scanned range.
func Domain(lo, hi float64) Option {
	return func(o *options) { o.lo, o.hi = lo, hi }
}

// Step sets the grid spacing.
func Step(step float64) Option {
	return func(o *options) { o.step = step }
}

// Tolerance sets the acceptance threshold on |f - g|.
func Tolerance(tol float64) Option {
	return func(o *options) { o.tol = tol }
}

func buildOptions(opts []Option) (options, error) {
	o := options{lo: DefaultLo, hi: DefaultHi, step: DefaultStep, tol: DefaultTol, decimals: 1}
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case !numeric.IsFinite(o.lo) || !numeric.IsFinite(o.hi) || o.lo > o.hi:
		return o, fmt.Errorf("%w: domain [%v, %v]", numeric.ErrParameterBounds, o.lo, o.hi)
	case !(o.step > 0) || !numeric.IsFinite(o.step):
		return o, fmt.Errorf("%w: step %v", numeric.ErrParameterBounds, o.step)
	case !(o.tol > 0):
		return o, fmt.Errorf("%w: tolerance %v", numeric.ErrParameterBounds, o.tol)
	}
	return o, nil
}

// ScanResult is the full outcome of a grid scan.
type ScanResult struct {
	Roots []float64 `json:"roots"`
	// Candidates is every grid point within tolerance, before rounding.
	Candidates []float64 `json:"candidates"`
	Samples    int       `json:"samples"`
	// Skipped counts grid points where f or g could not be evaluated.
	Skipped int `json:"skipped"`
}

// Scan walks the grid and collects every crossing of f and g.
func Scan(f, g numeric.Func, opts ...Option) (*ScanResult, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	// Index based grid; the small epsilon keeps hi itself when (hi-lo)/step
	// lands a hair below an integer.
	count := int(math.Floor((o.hi-o.lo)/o.step+1e-9)) + 1
	diff := numeric.Sub(f, g)
	res := &ScanResult{Samples: count}
	scale := math.Pow(10, float64(o.decimals))
	seen := make(map[float64]struct{})

	for i := 0; i < count; i++ {
		t := o.lo + float64(i)*o.step
		d, err := diff(t)
		if err != nil || !numeric.IsFinite(d) {
			res.Skipped++
			continue
		}
		if math.Abs(d) >= o.tol {
			continue
		}
		res.Candidates = append(res.Candidates, t)
		r := math.Round(t*scale) / scale
		if r == 0 {
			r = 0 // fold -0 into 0
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		res.Roots = append(res.Roots, r)
	}

	sort.Float64s(res.Roots)
	return res, nil
}

// FindIntersections returns the sorted, de-duplicated crossings of f and g.
// An empty or single-element result means the curves do not bound a region
// on the scanned domain.
func FindIntersections(f, g numeric.Func, opts ...Option) ([]float64, error) {
	res, err := Scan(f, g, opts...)
	if err != nil {
		return nil, err
	}
	return res.Roots, nil
}
