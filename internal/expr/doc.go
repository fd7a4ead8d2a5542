// Package expr evaluates user-typed formulas of one variable.
//
// It is the only package that knows about expression text. Everything it
// hands to the calculators is a [numeric.Func]:
//
//	ev := expr.New()
//	f, err := ev.Compile("exp(t) + 1", "t")
//	res, err := quadrature.RiemannSum(f, numeric.Interval{A: 0, B: 4}, 4, numeric.Midpoint)
//
// Parsing and evaluation are done by github.com/expr-lang/expr. [Derive]
// walks the same syntax tree to build a symbolic derivative for the subset of
// functions it understands and reports [numeric.ErrNoSymbolic] otherwise.
package expr
