package automation

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/integlab/internal/expr"
	"github.com/san-kum/integlab/internal/scenario"
)

func writePlan(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadPlan(t *testing.T) {
	path := writePlan(t, "name: week one\ndescription: sums\nsteps:\n  - lesson: cpu\n  - lesson: integral\n")
	plan, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, "week one", plan.Name)
	require.Len(t, plan.Steps, 2)
	assert.Equal(t, "integral", plan.Steps[1].Lesson)

	_, err = LoadPlan(writePlan(t, "name: empty\n"))
	assert.Error(t, err)

	_, err = LoadPlan(writePlan(t, "steps: [\n"))
	assert.Error(t, err)

	_, err = LoadPlan(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestRunPlan(t *testing.T) {
	plan := &Plan{Steps: []Step{{Lesson: "integral"}, {Lesson: "area"}}}
	results, err := RunPlan(context.Background(), plan, scenario.NewRegistry(), expr.New())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "integral", results[0].Lesson.Name)
	assert.Equal(t, "area", results[1].Outcome.Lesson)
}

func TestRunPlan_StopsAtUnknownLesson(t *testing.T) {
	plan := &Plan{Steps: []Step{{Lesson: "integral"}, {Lesson: "nope"}, {Lesson: "area"}}}
	results, err := RunPlan(context.Background(), plan, scenario.NewRegistry(), expr.New())
	assert.ErrorContains(t, err, "step 2")
	assert.Len(t, results, 1)
}

func TestRunPlan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := RunPlan(ctx, &Plan{Steps: []Step{{Lesson: "cpu"}}}, scenario.NewRegistry(), expr.New())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestRunMonteCarlo(t *testing.T) {
	cfg := MonteCarloConfig{Trials: 5, Ticks: 50, Seed: 10}
	trials, err := RunMonteCarlo(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, trials, 5)
	assert.Equal(t, int64(14), trials[4].Seed)

	again, err := RunMonteCarlo(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, trials, again)

	// memory + cpu stays within [45, 130] with noise
	for _, tr := range trials {
		assert.Greater(t, tr.Integral, 50*0.1*45.0)
		assert.Less(t, tr.Integral, 50*0.1*130.0)
	}

	_, err = RunMonteCarlo(context.Background(), MonteCarloConfig{Trials: 0, Ticks: 1})
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Trial{{Integral: 1}, {Integral: 3}})
	assert.Equal(t, 2, s.Trials)
	assert.InDelta(t, 2, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt2, s.StdDev, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Max)

	one := Summarize([]Trial{{Integral: 4}})
	assert.Equal(t, 0.0, one.StdDev)
	assert.Equal(t, 4.0, one.Mean)

	assert.Equal(t, Summary{}, Summarize(nil))
}
