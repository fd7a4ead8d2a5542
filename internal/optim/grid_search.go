// Package optim sweeps lesson parameters over a grid and ranks the results.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// ErrUnranked is returned by an Objective for a point that evaluated
// cleanly but has no value worth ranking.
var ErrUnranked = errors.New("optim: point not ranked")

// Objective scores one parameter combination.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("grid needs one range per parameter, got %d names and %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("empty range for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges, workers: 4}, nil
}

// Names returns the parameter names in grid order.
func (g *GridSearch) Names() []string { return g.paramNames }

// Sample is one evaluated grid point. Err holds the objective's failure;
// Unranked marks a point whose objective returned ErrUnranked.
type Sample struct {
	Params   map[string]float64 `json:"params"`
	Value    float64            `json:"value"`
	Unranked bool               `json:"unranked,omitempty"`
	Err      error              `json:"-"`
}

func (s Sample) ranked() bool {
	return s.Err == nil && !s.Unranked && !math.IsNaN(s.Value)
}

// Points enumerates the grid with the last parameter varying fastest.
func (g *GridSearch) Points() []map[string]float64 {
	var out []map[string]float64
	g.enumerate(0, map[string]float64{}, &out)
	return out
}

func (g *GridSearch) enumerate(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		p := make(map[string]float64, len(current))
		for k, v := range current {
			p[k] = v
		}
		*out = append(*out, p)
		return
	}
	name := g.paramNames[depth]
	for _, v := range g.ranges[depth] {
		current[name] = v
		g.enumerate(depth+1, current, out)
	}
	delete(current, name)
}

// Run evaluates every grid point on a small worker pool and returns the
// samples in grid order. It stops early when ctx is cancelled.
func (g *GridSearch) Run(ctx context.Context, fn Objective) ([]Sample, error) {
	points := g.Points()
	samples := make([]Sample, len(points))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(g.workers, len(points)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				v, err := fn(ctx, points[i])
				if errors.Is(err, ErrUnranked) {
					samples[i] = Sample{Params: points[i], Value: v, Unranked: true}
					continue
				}
				samples[i] = Sample{Params: points[i], Value: v, Err: err}
			}
		}()
	}

feed:
	for i := range points {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// Search returns the sample with the smallest value, or the largest when
// maximize is set. Failed and unranked samples never win.
func (g *GridSearch) Search(ctx context.Context, fn Objective, maximize bool) (Sample, []Sample, error) {
	samples, err := g.Run(ctx, fn)
	if err != nil {
		return Sample{}, nil, err
	}

	ranked := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if s.ranked() {
			ranked = append(ranked, s)
		}
	}
	if len(ranked) == 0 {
		return Sample{}, samples, fmt.Errorf("none of the %d grid points can be ranked", len(samples))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if maximize {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Value < ranked[j].Value
	})
	return ranked[0], samples, nil
}
