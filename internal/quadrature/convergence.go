package quadrature

import (
	"math"

	"github.com/san-kum/integlab/internal/numeric"
)

// ErrorRow is the result of one rule at one subdivision count.
type ErrorRow struct {
	Rule  numeric.Rule `json:"rule"`
	N     int          `json:"n"`
	Sum   float64      `json:"sum"`
	Error float64      `json:"error"`
}

// Convergence runs every rule at every n and reports |sum - exact|.
func Convergence(f numeric.Func, iv numeric.Interval, rules []numeric.Rule, ns []int, exact float64) ([]ErrorRow, error) {
	rows := make([]ErrorRow, 0, len(rules)*len(ns))
	for _, rule := range rules {
		for _, n := range ns {
			res, err := RiemannSum(f, iv, n, rule)
			if err != nil {
				return nil, err
			}
			rows = append(rows, ErrorRow{
				Rule:  rule,
				N:     n,
				Sum:   res.Sum,
				Error: math.Abs(res.Sum - exact),
			})
		}
	}
	return rows, nil
}
