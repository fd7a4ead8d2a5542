// Package numeric provides the shared primitives of the integration lab.
//
// The package defines the value types every calculator works with:
//
//   - [Func]: a real function of one variable that may fail to evaluate
//   - [Interval]: the bounds [a, b] of an integral
//   - [Rule]: the sampling rule of a Riemann sum
//   - [Point]: an (x, y) sample handed to the chart layer
//
// Calculators never see expression text. They receive a [Func], usually
// compiled by the expr package, which keeps the core independent of the
// expression language.
//
// # Errors
//
// Evaluation failures are reported as [*EvalError] wrapping [ErrEvaluation].
// [Recover] turns a failing [Func] into one that substitutes a default value
// and records what went wrong, which is how chart sampling and the surface
// calculator keep going past undefined points.
package numeric
