package scenario

import (
	"fmt"
	"sort"

	"github.com/san-kum/integlab/internal/expr"
	"github.com/san-kum/integlab/internal/numeric"
)

// Value is one labelled number of a lesson outcome.
type Value struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type Outcome struct {
	Lesson string  `json:"lesson"`
	Values []Value `json:"values"`
}

func (o *Outcome) add(name string, v float64) {
	o.Values = append(o.Values, Value{Name: name, Value: v})
}

// Get returns the value named name.
func (o *Outcome) Get(name string) (float64, bool) {
	for _, v := range o.Values {
		if v.Name == name {
			return v.Value, true
		}
	}
	return 0, false
}

type Lesson struct {
	Name    string
	Title   string
	Summary string
	Run     func(ev expr.Evaluator) (*Outcome, error)
}

type Registry struct {
	lessons map[string]Lesson
}

func NewRegistry() *Registry {
	r := &Registry{lessons: make(map[string]Lesson)}

	r.add(Lesson{
		Name:    "cpu",
		Title:   "CPU load",
		Summary: "Riemann sums of exp(t) + 1 on [0, 4] with 4 rectangles",
		Run: func(ev expr.Evaluator) (*Outcome, error) {
			out := &Outcome{Lesson: "cpu"}
			iv := CPULoadInterval
			for _, rule := range numeric.Rules {
				res, err := CPULoad(ev, iv, CPULoadN, rule)
				if err != nil {
					return nil, err
				}
				out.add(rule.String(), res.Sum)
			}
			out.add("exact", CPULoadExact(iv))
			return out, nil
		},
	})

	r.add(Lesson{
		Name:    "area",
		Title:   "Memory against CPU",
		Summary: "area between (t + 5)^2 and -t + 5",
		Run: func(ev expr.Evaluator) (*Outcome, error) {
			res, err := MemoryVsCPU(ev, DefaultMemoryShift, DefaultCPUOffset)
			if err != nil {
				return nil, err
			}
			out := &Outcome{Lesson: "area"}
			out.add("a", res.A)
			out.add("b", res.B)
			out.add("area", res.Area)
			return out, nil
		},
	})

	r.add(Lesson{
		Name:    "integral",
		Title:   "Definite integral",
		Summary: "left sum of x^2 on [0, 1] with 100 rectangles",
		Run: func(ev expr.Evaluator) (*Outcome, error) {
			res, err := DefiniteIntegral(ev, DefiniteExpr, DefiniteInterval, DefiniteN)
			if err != nil {
				return nil, err
			}
			out := &Outcome{Lesson: "integral"}
			out.add("sum", res.Sum)
			out.add("exact", 1.0/3)
			return out, nil
		},
	})

	r.add(Lesson{
		Name:    "surface",
		Title:   "Surface of revolution",
		Summary: "sqrt(x) rotated about the x axis on [0, 6]",
		Run: func(ev expr.Evaluator) (*Outcome, error) {
			res, err := Surface(ev, SurfaceExpr, SurfaceInterval, DefiniteN)
			if err != nil {
				return nil, err
			}
			out := &Outcome{Lesson: "surface"}
			out.add("lateral", res.Lateral)
			out.add("cap", res.Cap)
			out.add("total", res.Total)
			if res.Analytic != nil {
				out.add("analytic", *res.Analytic)
			}
			return out, nil
		},
	})

	r.add(Lesson{
		Name:    "traffic",
		Title:   "Server traffic",
		Summary: "requests served during a 12 hour campaign",
		Run: func(ev expr.Evaluator) (*Outcome, error) {
			rep, err := Traffic(ev, TrafficSteps)
			if err != nil {
				return nil, err
			}
			out := &Outcome{Lesson: "traffic"}
			out.add("numeric", rep.Numeric)
			out.add("analytic", rep.Analytic.Total)
			out.add("per_hour", rep.PerHour)
			return out, nil
		},
	})

	return r
}

func (r *Registry) add(l Lesson) { r.lessons[l.Name] = l }

func (r *Registry) Get(name string) (Lesson, error) {
	l, ok := r.lessons[name]
	if !ok {
		return Lesson{}, fmt.Errorf("unknown lesson: %s", name)
	}
	return l, nil
}

// List returns the lesson names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.lessons))
	for name := range r.lessons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
