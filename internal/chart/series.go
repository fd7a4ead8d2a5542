// Package chart turns functions into plottable records and draws them in the
// terminal or to an image file.
package chart

import (
	"fmt"

	"github.com/san-kum/integlab/internal/numeric"
)

// DefaultPoints is the number of cells sampled for a curve chart.
const DefaultPoints = 200

// Record is one x position with a value per curve.
type Record struct {
	X      float64            `json:"x"`
	Values map[string]float64 `json:"values"`
}

// Series is a set of records with non-decreasing X. Names are unique; a
// repeated curve name gets a " (2)", " (3)", ... suffix.
type Series struct {
	Names    []string `json:"names"`
	Records  []Record `json:"records"`
	Warnings []string `json:"warnings,omitempty"`
}

// Curve names a function for sampling.
type Curve struct {
	Name string
	F    numeric.Func
}

// Sample evaluates every curve at points+1 evenly spaced positions of iv,
// from its lower to its upper bound. Evaluation failures are plotted as 0 and
// listed in Series.Warnings.
func Sample(iv numeric.Interval, points int, curves ...Curve) (*Series, error) {
	if err := iv.Validate(); err != nil {
		return nil, err
	}
	if points <= 0 {
		return nil, fmt.Errorf("%w: points=%d", numeric.ErrSubdivisions, points)
	}
	if len(curves) == 0 {
		return nil, fmt.Errorf("%w: no curves", numeric.ErrParameterBounds)
	}

	lo, hi := iv.Ordered()
	h := (hi - lo) / float64(points)
	rec := numeric.NewRecorder()

	fs := make([]numeric.Func, len(curves))
	s := &Series{Names: make([]string, len(curves))}
	for i, c := range curves {
		s.Names[i] = uniqueName(c.Name, s.Names[:i])
		fs[i] = numeric.Recover(c.F, 0, rec)
	}

	s.Records = make([]Record, 0, points+1)
	for i := 0; i <= points; i++ {
		x := lo + float64(i)*h
		r := Record{X: x, Values: make(map[string]float64, len(curves))}
		for j, f := range fs {
			r.Values[s.Names[j]], _ = f(x)
		}
		s.Records = append(s.Records, r)
	}
	s.Warnings = rec.Messages()
	return s, nil
}

// FromPoints wraps pre-computed samples as a single-curve series.
func FromPoints(name string, pts []numeric.Point) *Series {
	s := &Series{Names: []string{name}, Records: make([]Record, len(pts))}
	for i, p := range pts {
		s.Records[i] = Record{X: p.X, Values: map[string]float64{name: p.Y}}
	}
	return s
}

// Column returns the values of one curve in record order.
func (s *Series) Column(name string) []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.Values[name]
	}
	return out
}

// Xs returns the x positions in record order.
func (s *Series) Xs() []float64 {
	out := make([]float64, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.X
	}
	return out
}

// Derive adds a curve computed from the existing values of each record.
func (s *Series) Derive(name string, fn func(values map[string]float64) float64) {
	name = uniqueName(name, s.Names)
	s.Names = append(s.Names, name)
	for i := range s.Records {
		s.Records[i].Values[name] = fn(s.Records[i].Values)
	}
}

func uniqueName(name string, taken []string) string {
	used := func(n string) bool {
		for _, t := range taken {
			if t == n {
				return true
			}
		}
		return false
	}
	if !used(name) {
		return name
	}
	for k := 2; ; k++ {
		if n := fmt.Sprintf("%s (%d)", name, k); !used(n) {
			return n
		}
	}
}
