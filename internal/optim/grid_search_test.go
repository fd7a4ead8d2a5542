package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridSearch_Invalid(t *testing.T) {
	_, err := NewGridSearch(nil, nil)
	assert.Error(t, err)

	_, err = NewGridSearch([]string{"m", "c"}, [][]float64{{1}})
	assert.Error(t, err)

	_, err = NewGridSearch([]string{"m"}, [][]float64{{}})
	assert.Error(t, err)
}

func TestPoints_Order(t *testing.T) {
	g, err := NewGridSearch([]string{"m", "c"}, [][]float64{{1, 2}, {10, 20, 30}})
	require.NoError(t, err)

	pts := g.Points()
	require.Len(t, pts, 6)
	assert.Equal(t, map[string]float64{"m": 1, "c": 10}, pts[0])
	assert.Equal(t, map[string]float64{"m": 1, "c": 30}, pts[2])
	assert.Equal(t, map[string]float64{"m": 2, "c": 10}, pts[3])
}

func TestSearch_MinAndMax(t *testing.T) {
	g, err := NewGridSearch([]string{"x", "y"}, [][]float64{{-1, 0, 1, 2}, {0, 3}})
	require.NoError(t, err)

	bowl := func(_ context.Context, p map[string]float64) (float64, error) {
		dx, dy := p["x"]-1, p["y"]
		return dx*dx + dy*dy, nil
	}

	best, samples, err := g.Search(context.Background(), bowl, false)
	require.NoError(t, err)
	assert.Len(t, samples, 8)
	assert.Equal(t, map[string]float64{"x": 1, "y": 0}, best.Params)
	assert.Equal(t, 0.0, best.Value)

	worst, _, err := g.Search(context.Background(), bowl, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"x": -1, "y": 3}, worst.Params)
	assert.Equal(t, 13.0, worst.Value)
}

func TestSearch_SkipsFailures(t *testing.T) {
	g, err := NewGridSearch([]string{"x"}, [][]float64{{1, 2, 3}})
	require.NoError(t, err)

	boom := errors.New("boom")
	fn := func(_ context.Context, p map[string]float64) (float64, error) {
		if p["x"] == 1 {
			return 0, boom
		}
		return p["x"], nil
	}
	best, samples, err := g.Search(context.Background(), fn, false)
	require.NoError(t, err)
	assert.Equal(t, 2.0, best.Value)
	assert.ErrorIs(t, samples[0].Err, boom)

	_, _, err = g.Search(context.Background(), func(context.Context, map[string]float64) (float64, error) {
		return 0, boom
	}, false)
	assert.Error(t, err)
}

func TestSearch_SkipsUnranked(t *testing.T) {
	g, err := NewGridSearch([]string{"x"}, [][]float64{{0, 1, 2}})
	require.NoError(t, err)

	fn := func(_ context.Context, p map[string]float64) (float64, error) {
		if p["x"] == 0 {
			return 0, ErrUnranked
		}
		return p["x"], nil
	}
	best, samples, err := g.Search(context.Background(), fn, false)
	require.NoError(t, err)
	assert.Equal(t, 1.0, best.Value)
	assert.True(t, samples[0].Unranked)
	assert.NoError(t, samples[0].Err)
	assert.False(t, samples[1].Unranked)

	only := func(context.Context, map[string]float64) (float64, error) { return 0, ErrUnranked }
	_, _, err = g.Search(context.Background(), only, true)
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	g, err := NewGridSearch([]string{"x"}, [][]float64{{1, 2, 3}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Run(ctx, func(context.Context, map[string]float64) (float64, error) { return 0, nil })
	assert.ErrorIs(t, err, context.Canceled)
}
