package quadrature

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/san-kum/integlab/internal/numeric"
	"gonum.org/v1/gonum/integrate"
)

// polyIntegral is ∫_{-1}^{2} x^degree dx.
func polyIntegral(degree int) (numeric.Func, float64) {
	d := float64(degree)
	f := numeric.Pure(func(x float64) float64 { return math.Pow(x, d) })
	return f, (math.Pow(2, d+1) - math.Pow(-1, d+1)) / (d + 1)
}

func TestCompositeSimpson_ExactForCubics(t *testing.T) {
	iv := numeric.Interval{A: -1, B: 2}
	for degree := 0; degree <= 3; degree++ {
		f, exact := polyIntegral(degree)
		for _, m := range []int{2, 4, 10, 100} {
			t.Run(fmt.Sprintf("x^%d/m=%d", degree, m), func(t *testing.T) {
				got, err := CompositeSimpson(f, iv, m)
				if err != nil {
					t.Fatal(err)
				}
				if math.Abs(got-exact) > 1e-12*math.Max(1, math.Abs(exact)) {
					t.Errorf("got %.15f, expected %.15f", got, exact)
				}
			})
		}
	}
}

func TestCompositeSimpson_OddPanelsBumped(t *testing.T) {
	f := numeric.Pure(math.Exp)
	iv := numeric.Interval{A: 0, B: 1}

	odd, err := CompositeSimpson(f, iv, 7)
	if err != nil {
		t.Fatal(err)
	}
	even, err := CompositeSimpson(f, iv, 8)
	if err != nil {
		t.Fatal(err)
	}
	if odd != even {
		t.Errorf("m=7 should be computed as m=8: %v vs %v", odd, even)
	}
}

func TestCompositeSimpson_MatchesGonum(t *testing.T) {
	f := func(x float64) float64 { return math.Exp(x) / (x*x + 1) }
	const m = 200
	iv := numeric.Interval{A: 0, B: 1}

	xs := make([]float64, m+1)
	ys := make([]float64, m+1)
	for i := range xs {
		xs[i] = float64(i) / m
		ys[i] = f(xs[i])
	}
	want := integrate.Simpsons(xs, ys)

	got, err := CompositeSimpson(numeric.Pure(f), iv, m)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("got %.12f, gonum %.12f", got, want)
	}
	if math.Abs(got-1.270724139833620220138) > 1e-8 {
		t.Errorf("got %.12f, expected 1.270724139834", got)
	}
}

func TestCompositeSimpson_Errors(t *testing.T) {
	if _, err := CompositeSimpson(numeric.Pure(math.Exp), numeric.Interval{A: 0, B: 1}, 0); !errors.Is(err, numeric.ErrSubdivisions) {
		t.Errorf("expected ErrSubdivisions, got %v", err)
	}

	failing := numeric.Func(func(x float64) (float64, error) { return 0, numeric.ErrEvaluation })
	if _, err := CompositeSimpson(failing, numeric.Interval{A: 0, B: 1}, 4); !errors.Is(err, numeric.ErrEvaluation) {
		t.Errorf("expected ErrEvaluation, got %v", err)
	}
}

func TestSampledTrapezoid(t *testing.T) {
	pts, err := Sample(numeric.Pure(func(x float64) float64 { return 3*x + 1 }), numeric.Interval{A: 0, B: 2}, 10)
	if err != nil {
		t.Fatal(err)
	}
	got, err := SampledTrapezoid(pts)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-8) > 1e-12 {
		t.Errorf("trapezoid of a line should be exact: got %v, want 8", got)
	}

	if _, err := SampledTrapezoid(pts[:1]); !errors.Is(err, numeric.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds for one sample, got %v", err)
	}

	unsorted := []numeric.Point{{X: 1, Y: 0}, {X: 0, Y: 0}}
	if _, err := SampledTrapezoid(unsorted); !errors.Is(err, numeric.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds for unsorted samples, got %v", err)
	}
}
