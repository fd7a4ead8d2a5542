// Package automation runs scripted lesson plans and Monte Carlo trials of
// the noisy stream.
package automation

import (
	"context"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/integlab/internal/expr"
	"github.com/san-kum/integlab/internal/scenario"
	"github.com/san-kum/integlab/internal/stream"
)

// Plan is a scripted sequence of lessons.
type Plan struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

type Step struct {
	Lesson string `yaml:"lesson"`
}

// LoadPlan reads a plan from a YAML file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	if len(plan.Steps) == 0 {
		return nil, fmt.Errorf("plan %q has no steps", plan.Name)
	}
	return &plan, nil
}

// StepResult pairs a lesson with its outcome.
type StepResult struct {
	Lesson  scenario.Lesson
	Outcome *scenario.Outcome
}

// RunPlan runs every step in order, stopping at the first failure or when
// ctx is cancelled. Results of the steps that finished are returned.
func RunPlan(ctx context.Context, plan *Plan, reg *scenario.Registry, ev expr.Evaluator) ([]StepResult, error) {
	results := make([]StepResult, 0, len(plan.Steps))

	for i, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		lesson, err := reg.Get(step.Lesson)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		out, err := lesson.Run(ev)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, StepResult{Lesson: lesson, Outcome: out})
	}

	return results, nil
}

// MonteCarloConfig sets up repeated noisy stream runs.
type MonteCarloConfig struct {
	Trials      int
	Ticks       int
	Seed        int64
	Window      int
	SampleWidth float64
}

// Trial is the final state of one stream run.
type Trial struct {
	ID       int     `json:"id"`
	Seed     int64   `json:"seed"`
	Integral float64 `json:"integral"`
}

// RunMonteCarlo ticks one session per trial, seeded Seed, Seed+1, ...
// Sessions are ticked directly, independent of wall time.
func RunMonteCarlo(ctx context.Context, cfg MonteCarloConfig) ([]Trial, error) {
	if cfg.Trials <= 0 || cfg.Ticks <= 0 {
		return nil, fmt.Errorf("trials and ticks must be positive, got %d and %d", cfg.Trials, cfg.Ticks)
	}

	opts := []stream.Option{}
	if cfg.Window > 0 {
		opts = append(opts, stream.WithWindow(cfg.Window))
	}
	if cfg.SampleWidth > 0 {
		opts = append(opts, stream.WithSampleWidth(cfg.SampleWidth))
	}

	trials := make([]Trial, 0, cfg.Trials)
	for i := 0; i < cfg.Trials; i++ {
		if err := ctx.Err(); err != nil {
			return trials, err
		}

		seed := cfg.Seed + int64(i)
		s := stream.NewSession(stream.NewGenerator(seed), opts...)
		s.Start()
		for j := 0; j < cfg.Ticks; j++ {
			s.Tick()
		}
		trials = append(trials, Trial{ID: i, Seed: seed, Integral: s.Integral()})
	}
	return trials, nil
}

// Summary describes the spread of trial integrals.
type Summary struct {
	Trials int     `json:"trials"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

func Summarize(trials []Trial) Summary {
	if len(trials) == 0 {
		return Summary{}
	}
	xs := make([]float64, len(trials))
	for i, t := range trials {
		xs[i] = t.Integral
	}

	s := Summary{Trials: len(xs), Min: math.Inf(1), Max: math.Inf(-1)}
	s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
	if len(xs) == 1 {
		s.StdDev = 0
	}
	for _, x := range xs {
		s.Min = math.Min(s.Min, x)
		s.Max = math.Max(s.Max, x)
	}
	return s
}
