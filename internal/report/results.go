package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/integlab/internal/area"
	"github.com/san-kum/integlab/internal/automation"
	"github.com/san-kum/integlab/internal/chart"
	"github.com/san-kum/integlab/internal/optim"
	"github.com/san-kum/integlab/internal/quadrature"
	"github.com/san-kum/integlab/internal/scenario"
	"github.com/san-kum/integlab/internal/storage"
	"github.com/san-kum/integlab/internal/stream"
	"github.com/san-kum/integlab/internal/surface"
)

type Riemann struct {
	Expression string `json:"expression"`
	*quadrature.Riemann
	Warnings []string `json:"warnings,omitempty"`
}

func (r Riemann) Table() *Table {
	t := &Table{
		Title: fmt.Sprintf("%s sum of %s on %s, n=%d: %s",
			r.Rule, r.Expression, r.Interval, r.N, num(r.Sum)),
		Header: []string{"i", "x", "width", "height"},
	}
	for i, rect := range r.Rectangles {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i), num(rect.X), num(rect.Width), num(rect.Height)})
	}
	for _, w := range r.Warnings {
		t.Notes = append(t.Notes, "warning: "+w+" (counted as 0)")
	}
	return t
}

// Value is a single labelled result such as a Simpson estimate.
type Value struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

func (v Value) Table() *Table {
	return &Table{Header: []string{"quantity", "value"}, Rows: [][]string{{v.Label, num(v.Value)}}}
}

type Convergence struct {
	Expression string                `json:"expression"`
	Exact      float64               `json:"exact"`
	Rows       []quadrature.ErrorRow `json:"rows"`
}

func (c Convergence) Table() *Table {
	t := &Table{
		Title:  fmt.Sprintf("convergence of %s (exact %s)", c.Expression, num(c.Exact)),
		Header: []string{"rule", "n", "sum", "error"},
	}
	for _, r := range c.Rows {
		t.Rows = append(t.Rows, []string{r.Rule.String(), strconv.Itoa(r.N), num(r.Sum), num(r.Error)})
	}
	return t
}

type Intersections struct {
	F       string    `json:"f"`
	G       string    `json:"g"`
	Roots   []float64 `json:"roots"`
	Skipped int       `json:"skipped"`
}

func (x Intersections) Table() *Table {
	t := &Table{
		Title:  fmt.Sprintf("intersections of %s and %s: %d", x.F, x.G, len(x.Roots)),
		Header: []string{"t"},
	}
	for _, r := range x.Roots {
		t.Rows = append(t.Rows, []string{num(r)})
	}
	if x.Skipped > 0 {
		t.Notes = append(t.Notes, fmt.Sprintf("%d grid points could not be evaluated", x.Skipped))
	}
	return t
}

type Area struct {
	F string `json:"f"`
	G string `json:"g"`
	*area.Result
}

func (a Area) Table() *Table {
	t := &Table{
		Title:  fmt.Sprintf("area between %s and %s", a.F, a.G),
		Header: []string{"quantity", "value"},
	}
	if !a.Bounded {
		t.Rows = [][]string{{"area", num(0)}}
		t.Notes = []string{fmt.Sprintf("fewer than two intersections (%d found): no bounded region", len(a.Intersections))}
		return t
	}
	t.Rows = [][]string{
		{"a", num(a.A)},
		{"b", num(a.B)},
		{"area", num(a.Area)},
	}
	if len(a.Intersections) > 2 {
		t.Notes = append(t.Notes, fmt.Sprintf("%d interior intersections ignored", len(a.Intersections)-2))
	}
	return t
}

type Surface struct {
	Expression string `json:"expression"`
	*surface.Result
}

func (s Surface) Table() *Table {
	t := &Table{
		Title:  fmt.Sprintf("surface of revolution of %s (%d panels)", s.Expression, s.Panels),
		Header: []string{"quantity", "value"},
		Rows: [][]string{
			{"lateral", num(s.Lateral)},
			{"cap", num(s.Cap)},
			{"total", num(s.Total)},
		},
	}
	if s.Analytic != nil {
		t.Rows = append(t.Rows, []string{"analytic", num(*s.Analytic)})
		if rel, ok := s.RelativeError(); ok {
			t.Rows = append(t.Rows, []string{"relative error", num(rel)})
		}
	}
	for _, w := range s.Warnings {
		t.Notes = append(t.Notes, "warning: "+w)
	}
	return t
}

type Traffic struct {
	*scenario.TrafficReport
}

func (tr Traffic) Table() *Table {
	bd := tr.Analytic
	pct := func(v float64) string { return fmt.Sprintf("%.1f%%", 100*bd.Share(v)) }
	return &Table{
		Title:  fmt.Sprintf("server traffic on %s", tr.Interval),
		Header: []string{"component", "requests", "share"},
		Rows: [][]string{
			{"base", num(bd.Base), pct(bd.Base)},
			{"cyclic", num(bd.Cyclic), pct(bd.Cyclic)},
			{"growth", num(bd.Growth), pct(bd.Growth)},
			{"total", num(bd.Total), pct(bd.Total)},
		},
		Notes: []string{
			fmt.Sprintf("trapezoid (%d steps): %.2f, relative error %.2g", tr.Steps, tr.Numeric, tr.RelError),
			fmt.Sprintf("average: %.2f per hour, %.2f per minute", tr.PerHour, tr.PerMinute),
		},
	}
}

type Outcome struct {
	Title string `json:"title"`
	*scenario.Outcome
}

func (o Outcome) Table() *Table {
	t := &Table{Title: o.Title, Header: []string{"quantity", "value"}}
	for _, v := range o.Values {
		t.Rows = append(t.Rows, []string{v.Name, num(v.Value)})
	}
	return t
}

type Stream struct {
	Ticks    int            `json:"ticks"`
	Integral float64        `json:"integral"`
	Points   []stream.Point `json:"points"`
}

func (s Stream) Table() *Table {
	t := &Table{Header: []string{"time", "memory", "cpu", "integral"}}
	for _, p := range s.Points {
		t.Rows = append(t.Rows, []string{num(p.Time), num(p.Memory), num(p.CPU), num(p.Integral)})
	}
	t.Notes = []string{fmt.Sprintf("%d ticks, integral %s", s.Ticks, num(s.Integral))}
	return t
}

type Lessons struct {
	Lessons []scenario.Lesson `json:"-"`
}

func (l Lessons) MarshalJSON() ([]byte, error) {
	out := make([]map[string]string, len(l.Lessons))
	for i, ls := range l.Lessons {
		out[i] = map[string]string{"name": ls.Name, "title": ls.Title, "summary": ls.Summary}
	}
	return json.Marshal(out)
}

func (l Lessons) Table() *Table {
	t := &Table{Header: []string{"name", "title", "summary"}}
	for _, ls := range l.Lessons {
		t.Rows = append(t.Rows, []string{ls.Name, ls.Title, ls.Summary})
	}
	return t
}

// Chart is a sampled series; the table has one column per curve.
type Chart struct {
	*chart.Series
}

func (c Chart) Table() *Table {
	t := &Table{Header: append([]string{"x"}, c.Names...)}
	for _, r := range c.Records {
		row := make([]string, 0, len(c.Names)+1)
		row = append(row, num(r.X))
		for _, name := range c.Names {
			row = append(row, num(r.Values[name]))
		}
		t.Rows = append(t.Rows, row)
	}
	for _, w := range c.Warnings {
		t.Notes = append(t.Notes, "warning: "+w)
	}
	return t
}

type Runs struct {
	Runs []storage.RunMetadata `json:"runs"`
}

func (r Runs) Table() *Table {
	t := &Table{Header: []string{"id", "timestamp", "seed", "ticks", "integral"}}
	for _, m := range r.Runs {
		t.Rows = append(t.Rows, []string{
			m.ID, m.Timestamp.Format(time.RFC3339), strconv.FormatInt(m.Seed, 10), strconv.Itoa(m.Ticks), num(m.Integral),
		})
	}
	if len(r.Runs) == 0 {
		t.Notes = []string{"no recorded runs"}
	}
	return t
}

type Sweep struct {
	Names   []string       `json:"names"`
	Samples []optim.Sample `json:"samples"`
	Best    optim.Sample   `json:"best"`
}

func (s Sweep) Table() *Table {
	t := &Table{Header: append(append([]string{}, s.Names...), "area")}
	for _, sm := range s.Samples {
		row := make([]string, 0, len(s.Names)+1)
		for _, name := range s.Names {
			row = append(row, num(sm.Params[name]))
		}
		switch {
		case sm.Err != nil:
			row = append(row, "error")
		case sm.Unranked:
			row = append(row, "no region")
		default:
			row = append(row, num(sm.Value))
		}
		t.Rows = append(t.Rows, row)
	}
	best := make([]string, 0, len(s.Names))
	for _, name := range s.Names {
		best = append(best, fmt.Sprintf("%s=%s", name, num(s.Best.Params[name])))
	}
	t.Notes = []string{fmt.Sprintf("best: %s, area %s", strings.Join(best, " "), num(s.Best.Value))}
	return t
}

type MonteCarlo struct {
	automation.Summary
	Runs []automation.Trial `json:"runs"`
}

func (m MonteCarlo) Table() *Table {
	t := &Table{
		Title:  fmt.Sprintf("stream integral over %d seeds", m.Trials),
		Header: []string{"seed", "integral"},
	}
	for _, tr := range m.Runs {
		t.Rows = append(t.Rows, []string{strconv.FormatInt(tr.Seed, 10), num(tr.Integral)})
	}
	t.Notes = []string{fmt.Sprintf("mean %s, stddev %s, range [%s, %s]",
		num(m.Mean), num(m.StdDev), num(m.Min), num(m.Max))}
	return t
}
