package scenario

import (
	"math"

	"github.com/san-kum/integlab/internal/expr"
	"github.com/san-kum/integlab/internal/numeric"
	"github.com/san-kum/integlab/internal/quadrature"
)

// Server traffic lesson: requests per hour over a 12 hour campaign.
const (
	TrafficExpr  = "100 + 50*sin(pi*t/6) + 20*t"
	TrafficSteps = 120

	trafficBase   = 100.0
	trafficSwing  = 50.0
	trafficGrowth = 20.0
)

var TrafficInterval = numeric.Interval{A: 0, B: 12}

// Breakdown splits the exact integral into its three terms.
type Breakdown struct {
	Base   float64 `json:"base"`
	Cyclic float64 `json:"cyclic"`
	Growth float64 `json:"growth"`
	Total  float64 `json:"total"`
}

// TrafficBreakdown integrates each term of the traffic model over iv.
func TrafficBreakdown(iv numeric.Interval) Breakdown {
	a, b := iv.A, iv.B
	w := math.Pi / 6
	bd := Breakdown{
		Base:   trafficBase * (b - a),
		Cyclic: trafficSwing / w * (math.Cos(w*a) - math.Cos(w*b)),
		Growth: trafficGrowth * (b*b - a*a) / 2,
	}
	// A whole number of periods integrates to zero; drop the rounding noise.
	if math.Abs(bd.Cyclic) < 1e-9 {
		bd.Cyclic = 0
	}
	bd.Total = bd.Base + bd.Cyclic + bd.Growth
	return bd
}

// Share is the fraction of the total contributed by v.
func (b Breakdown) Share(v float64) float64 {
	if b.Total == 0 {
		return 0
	}
	return v / b.Total
}

type TrafficReport struct {
	Interval  numeric.Interval `json:"interval"`
	Steps     int              `json:"steps"`
	Analytic  Breakdown        `json:"analytic"`
	Numeric   float64          `json:"numeric"`
	RelError  float64          `json:"relative_error"`
	PerHour   float64          `json:"per_hour"`
	PerMinute float64          `json:"per_minute"`
	Initial   float64          `json:"initial"`
	Final     float64          `json:"final"`
	Peak      float64          `json:"peak"`
}

// Traffic compares the trapezoid estimate of the traffic model with its
// exact integral.
func Traffic(ev expr.Evaluator, steps int) (*TrafficReport, error) {
	f, err := ev.Compile(TrafficExpr, "t")
	if err != nil {
		return nil, err
	}
	iv := TrafficInterval
	est, err := quadrature.RiemannSum(f, iv, steps, numeric.Trapezoid)
	if err != nil {
		return nil, err
	}

	bd := TrafficBreakdown(iv)
	hours := iv.Width()
	rep := &TrafficReport{
		Interval:  iv,
		Steps:     steps,
		Analytic:  bd,
		Numeric:   est.Sum,
		RelError:  math.Abs(est.Sum-bd.Total) / math.Abs(bd.Total),
		PerHour:   bd.Total / hours,
		PerMinute: bd.Total / hours / 60,
		Initial:   est.Samples[0].Y,
		Final:     est.Samples[len(est.Samples)-1].Y,
	}
	for _, p := range est.Samples {
		rep.Peak = max(rep.Peak, p.Y)
	}
	return rep, nil
}
