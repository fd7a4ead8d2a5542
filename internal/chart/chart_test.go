package chart

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/integlab/internal/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() Curve {
	return Curve{Name: "f", F: numeric.Pure(func(x float64) float64 { return x * x })}
}

func TestSample(t *testing.T) {
	s, err := Sample(numeric.Interval{A: 0, B: 2}, DefaultPoints, square())
	require.NoError(t, err)
	require.Len(t, s.Records, DefaultPoints+1)
	assert.Equal(t, []string{"f"}, s.Names)
	assert.Equal(t, 0.0, s.Records[0].X)
	assert.InDelta(t, 2.0, s.Records[DefaultPoints].X, 1e-12)
	assert.InDelta(t, 4.0, s.Records[DefaultPoints].Values["f"], 1e-12)
	assert.IsNonDecreasing(t, s.Xs())
	assert.Empty(t, s.Warnings)
}

func TestSample_RepeatedNames(t *testing.T) {
	line := Curve{Name: "f", F: numeric.Pure(func(x float64) float64 { return x })}
	s, err := Sample(numeric.Interval{A: 0, B: 2}, 2, square(), line, square())
	require.NoError(t, err)
	assert.Equal(t, []string{"f", "f (2)", "f (3)"}, s.Names)

	last := s.Records[2].Values
	assert.Equal(t, 4.0, last["f"])
	assert.Equal(t, 2.0, last["f (2)"])
	assert.Equal(t, 4.0, last["f (3)"])

	s.Derive("f", func(v map[string]float64) float64 { return v["f"] - v["f (2)"] })
	assert.Equal(t, "f (4)", s.Names[3])
	assert.Equal(t, 2.0, s.Records[2].Values["f (4)"])
	assert.Equal(t, 4.0, s.Records[2].Values["f"])
}

func TestSample_ReversedIntervalStaysOrdered(t *testing.T) {
	s, err := Sample(numeric.Interval{A: 3, B: -1}, 8, square())
	require.NoError(t, err)
	assert.Equal(t, -1.0, s.Records[0].X)
	assert.IsNonDecreasing(t, s.Xs())
}

func TestSample_RecoversFailures(t *testing.T) {
	bad := Curve{Name: "sqrt", F: func(x float64) (float64, error) {
		if x < 0 {
			return 0, &numeric.EvalError{Expression: "sqrt(x)", At: x, Err: errors.New("negative")}
		}
		return math.Sqrt(x), nil
	}}
	s, err := Sample(numeric.Interval{A: -1, B: 1}, 4, bad, square())
	require.NoError(t, err)
	assert.NotEmpty(t, s.Warnings)
	assert.Equal(t, []float64{0, 0, 0, math.Sqrt(0.5), 1}, s.Column("sqrt"))
	assert.Equal(t, []float64{1, 0.25, 0, 0.25, 1}, s.Column("f"))
}

func TestSample_Errors(t *testing.T) {
	_, err := Sample(numeric.Interval{A: 0, B: 1}, 0, square())
	assert.ErrorIs(t, err, numeric.ErrSubdivisions)
	_, err = Sample(numeric.Interval{A: math.NaN(), B: 1}, 10, square())
	assert.ErrorIs(t, err, numeric.ErrInterval)
	_, err = Sample(numeric.Interval{A: 0, B: 1}, 10)
	assert.ErrorIs(t, err, numeric.ErrParameterBounds)
}

func TestSeries_Derive(t *testing.T) {
	g := Curve{Name: "g", F: numeric.Pure(func(x float64) float64 { return 1 })}
	s, err := Sample(numeric.Interval{A: 0, B: 2}, 2, square(), g)
	require.NoError(t, err)
	s.Derive("difference", func(v map[string]float64) float64 { return math.Abs(v["f"] - v["g"]) })
	assert.Equal(t, []string{"f", "g", "difference"}, s.Names)
	assert.Equal(t, []float64{1, 0, 3}, s.Column("difference"))
}

func TestFromPoints(t *testing.T) {
	s := FromPoints("y", []numeric.Point{{X: 0, Y: 1}, {X: 1, Y: 2}})
	assert.Equal(t, []float64{0, 1}, s.Xs())
	assert.Equal(t, []float64{1, 2}, s.Column("y"))
}

func TestRender(t *testing.T) {
	s, err := Sample(numeric.Interval{A: 0, B: 1}, 20, square())
	require.NoError(t, err)
	out := Render(s, Options{Width: 40, Height: 5, Caption: "square"})
	assert.Contains(t, out, "square")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 5)

	assert.Empty(t, Render(&Series{}, Options{}))
}

func TestBars(t *testing.T) {
	out := Bars([]float64{1, 2, 3, 4}, Options{Width: 40, Height: 4, Caption: "heights"})
	assert.Contains(t, out, "heights")
	assert.Empty(t, Bars(nil, Options{}))
}

func TestSavePNG(t *testing.T) {
	s, err := Sample(numeric.Interval{A: 0, B: 1}, 20, square())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "curve.png")
	require.NoError(t, SavePNG(s, "square", "x", path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, SavePNG(&Series{}, "", "", path))
}
