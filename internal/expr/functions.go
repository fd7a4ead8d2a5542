package expr

import (
	"errors"
	"fmt"
	"math"

	"github.com/expr-lang/expr"
)

var (
	errDomain = errors.New("value outside function domain")
	errArgs   = errors.New("wrong number of arguments")
)

// constants are bound in every environment.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

type unary func(float64) float64

// unaries are the one-argument functions the evaluator exposes. abs, floor
// and ceil are expr-lang builtins and are not registered here.
var unaries = map[string]unary{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"exp":   math.Exp,
	"log":   math.Log,
	"ln":    math.Log,
	"log10": math.Log10,
	"log2":  math.Log2,
	"sqrt":  math.Sqrt,
	"cbrt":  math.Cbrt,
}

// domains rejects arguments for which a function is undefined on the reals.
var domains = map[string]func(float64) bool{
	"sqrt":  func(v float64) bool { return v >= 0 },
	"log":   func(v float64) bool { return v > 0 },
	"ln":    func(v float64) bool { return v > 0 },
	"log10": func(v float64) bool { return v > 0 },
	"log2":  func(v float64) bool { return v > 0 },
	"asin":  func(v float64) bool { return v >= -1 && v <= 1 },
	"acos":  func(v float64) bool { return v >= -1 && v <= 1 },
}

func functionOptions() []expr.Option {
	opts := make([]expr.Option, 0, len(unaries)+1)
	for name, fn := range unaries {
		name, fn := name, fn
		opts = append(opts, expr.Function(name, func(params ...any) (any, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("%s: %w", name, errArgs)
			}
			v, err := toFloat(params[0])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			if ok := domains[name]; ok != nil && !ok(v) {
				return nil, fmt.Errorf("%s(%g): %w", name, v, errDomain)
			}
			return fn(v), nil
		}))
	}
	opts = append(opts, expr.Function("pow", func(params ...any) (any, error) {
		if len(params) != 2 {
			return nil, fmt.Errorf("pow: %w", errArgs)
		}
		base, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}
		exp, err := toFloat(params[1])
		if err != nil {
			return nil, err
		}
		return math.Pow(base, exp), nil
	}))
	return opts
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}
