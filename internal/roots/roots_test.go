package roots

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/integlab/internal/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(m, c float64) numeric.Func {
	return numeric.Pure(func(t float64) float64 { return m*t + c })
}

func TestFindIntersections_Lines(t *testing.T) {
	// 2t + 1 = -t + 4 at t = 1.
	got, err := FindIntersections(line(2, 1), line(-1, 4))
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, r := range got {
		assert.InDelta(t, 1.0, r, DefaultTol)
	}
}

func TestFindIntersections_MemoryVsCPU(t *testing.T) {
	// (t+5)^2 = -t + 5 has roots (-11 ± sqrt(41)) / 2.
	memory := numeric.Pure(func(t float64) float64 { return (t + 5) * (t + 5) })
	cpu := line(-1, 5)

	got, err := FindIntersections(memory, cpu)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(got), 2)

	want := []float64{(-11 - math.Sqrt(41)) / 2, (-11 + math.Sqrt(41)) / 2}
	assert.InDelta(t, want[0], got[0], DefaultTol)
	assert.InDelta(t, want[1], got[len(got)-1], DefaultTol)
	assert.IsIncreasing(t, got)
}

func TestFindIntersections_Parabolas(t *testing.T) {
	// t^2 = 8 - t^2 at t = ±2.
	f := numeric.Pure(func(t float64) float64 { return t * t })
	g := numeric.Pure(func(t float64) float64 { return 8 - t*t })

	got, err := FindIntersections(f, g, Tolerance(0.05))
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, 2}, got)
}

func TestFindIntersections_NoCrossing(t *testing.T) {
	f := numeric.Pure(func(t float64) float64 { return t*t + 1 })
	g := line(0, -1)

	got, err := FindIntersections(f, g)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindIntersections_Deduplicates(t *testing.T) {
	// Identical curves match at every grid point; each rounds to a unique decimal.
	f := line(1, 0)
	got, err := FindIntersections(f, f, Domain(0, 1))
	require.NoError(t, err)
	assert.Len(t, got, 11)
	assert.Equal(t, 0.0, got[0])
	assert.Equal(t, 1.0, got[len(got)-1])
}

func TestScan_SkipsUndefinedPoints(t *testing.T) {
	sqrt := numeric.Func(func(t float64) (float64, error) {
		if t < 0 {
			return 0, &numeric.EvalError{Expression: "sqrt(t)", At: t, Err: errors.New("undefined")}
		}
		return math.Sqrt(t), nil
	})

	res, err := Scan(sqrt, line(0, 2))
	require.NoError(t, err)
	assert.Equal(t, 201, res.Samples)
	assert.Equal(t, 100, res.Skipped)
	assert.Contains(t, res.Roots, 4.0)
	assert.InDelta(t, 4.0, res.Roots[0], 0.5)
}

func TestScan_InvalidOptions(t *testing.T) {
	f := line(1, 0)
	for name, opt := range map[string]Option{
		"zero step":     Step(0),
		"negative step": Step(-0.1),
		"zero tol":      Tolerance(0),
		"empty domain":  Domain(1, -1),
		"nan domain":    Domain(math.NaN(), 1),
	} {
		_, err := Scan(f, f, opt)
		assert.ErrorIs(t, err, numeric.ErrParameterBounds, name)
	}
}
