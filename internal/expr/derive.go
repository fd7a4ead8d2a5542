package expr

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/san-kum/integlab/internal/numeric"
)

type fn func(x float64) float64

func constant(c float64) fn { return func(float64) float64 { return c } }

// derivatives maps f to f' for the chain rule.
var derivatives = map[string]unary{
	"sin":   math.Cos,
	"cos":   func(u float64) float64 { return -math.Sin(u) },
	"tan":   func(u float64) float64 { c := math.Cos(u); return 1 / (c * c) },
	"asin":  func(u float64) float64 { return 1 / math.Sqrt(1-u*u) },
	"acos":  func(u float64) float64 { return -1 / math.Sqrt(1-u*u) },
	"atan":  func(u float64) float64 { return 1 / (1 + u*u) },
	"sinh":  math.Cosh,
	"cosh":  math.Sinh,
	"tanh":  func(u float64) float64 { t := math.Tanh(u); return 1 - t*t },
	"exp":   math.Exp,
	"log":   func(u float64) float64 { return 1 / u },
	"ln":    func(u float64) float64 { return 1 / u },
	"log10": func(u float64) float64 { return 1 / (u * math.Ln10) },
	"log2":  func(u float64) float64 { return 1 / (u * math.Ln2) },
	"sqrt":  func(u float64) float64 { return 1 / (2 * math.Sqrt(u)) },
	"cbrt":  func(u float64) float64 { c := math.Cbrt(u); return 1 / (3 * c * c) },
	"abs":   sign,
	"floor": unary(constant(0)),
	"ceil":  unary(constant(0)),
}

var builtins = map[string]unary{
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
}

// sign is undefined at 0 so the caller falls back to a numeric estimate.
func sign(u float64) float64 {
	switch {
	case u > 0:
		return 1
	case u < 0:
		return -1
	default:
		return math.NaN()
	}
}

// Derive returns the derivative of expression with respect to variable.
// Undefined points evaluate to NaN or Inf rather than failing.
func Derive(expression, variable string) (numeric.Func, error) {
	tree, err := parser.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", numeric.ErrNoSymbolic, err)
	}
	d := deriver{variable: variable}
	df, err := d.diff(tree.Node)
	if err != nil {
		return nil, err
	}
	return numeric.Pure(df), nil
}

type deriver struct {
	variable string
}

func unsupported(node ast.Node) error {
	return fmt.Errorf("%w: unsupported term %T", numeric.ErrNoSymbolic, node)
}

// depends reports whether node mentions the variable.
func (d deriver) depends(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.IdentifierNode:
		return n.Value == d.variable
	case *ast.UnaryNode:
		return d.depends(n.Node)
	case *ast.BinaryNode:
		return d.depends(n.Left) || d.depends(n.Right)
	case *ast.CallNode:
		for _, a := range n.Arguments {
			if d.depends(a) {
				return true
			}
		}
	case *ast.BuiltinNode:
		for _, a := range n.Arguments {
			if d.depends(a) {
				return true
			}
		}
	}
	return false
}

func callName(n *ast.CallNode) (string, bool) {
	id, ok := n.Callee.(*ast.IdentifierNode)
	if !ok {
		return "", false
	}
	return id.Value, true
}

// eval compiles node into a plain float function.
func (d deriver) eval(node ast.Node) (fn, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		return constant(float64(n.Value)), nil
	case *ast.FloatNode:
		return constant(n.Value), nil
	case *ast.IdentifierNode:
		if n.Value == d.variable {
			return func(x float64) float64 { return x }, nil
		}
		if c, ok := constants[n.Value]; ok {
			return constant(c), nil
		}
		return nil, fmt.Errorf("%w: unknown name %q", numeric.ErrNoSymbolic, n.Value)
	case *ast.UnaryNode:
		u, err := d.eval(n.Node)
		if err != nil {
			return nil, err
		}
		switch n.Operator {
		case "-":
			return func(x float64) float64 { return -u(x) }, nil
		case "+":
			return u, nil
		}
	case *ast.BinaryNode:
		l, err := d.eval(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := d.eval(n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Operator {
		case "+":
			return func(x float64) float64 { return l(x) + r(x) }, nil
		case "-":
			return func(x float64) float64 { return l(x) - r(x) }, nil
		case "*":
			return func(x float64) float64 { return l(x) * r(x) }, nil
		case "/":
			return func(x float64) float64 { return l(x) / r(x) }, nil
		case "^", "**":
			return func(x float64) float64 { return math.Pow(l(x), r(x)) }, nil
		}
	case *ast.CallNode:
		name, ok := callName(n)
		if !ok {
			break
		}
		if name == "pow" && len(n.Arguments) == 2 {
			return d.eval(&ast.BinaryNode{Operator: "**", Left: n.Arguments[0], Right: n.Arguments[1]})
		}
		f, ok := unaries[name]
		if !ok || len(n.Arguments) != 1 {
			break
		}
		u, err := d.eval(n.Arguments[0])
		if err != nil {
			return nil, err
		}
		return func(x float64) float64 { return f(u(x)) }, nil
	case *ast.BuiltinNode:
		f, ok := builtins[n.Name]
		if !ok || len(n.Arguments) != 1 {
			break
		}
		u, err := d.eval(n.Arguments[0])
		if err != nil {
			return nil, err
		}
		return func(x float64) float64 { return f(u(x)) }, nil
	}
	return nil, unsupported(node)
}

// diff builds the derivative of node.
func (d deriver) diff(node ast.Node) (fn, error) {
	if !d.depends(node) {
		if _, err := d.eval(node); err != nil {
			return nil, err
		}
		return constant(0), nil
	}

	switch n := node.(type) {
	case *ast.IdentifierNode:
		return constant(1), nil
	case *ast.UnaryNode:
		du, err := d.diff(n.Node)
		if err != nil {
			return nil, err
		}
		switch n.Operator {
		case "-":
			return func(x float64) float64 { return -du(x) }, nil
		case "+":
			return du, nil
		}
	case *ast.BinaryNode:
		return d.diffBinary(n)
	case *ast.CallNode:
		name, ok := callName(n)
		if !ok {
			break
		}
		if name == "pow" && len(n.Arguments) == 2 {
			return d.diff(&ast.BinaryNode{Operator: "**", Left: n.Arguments[0], Right: n.Arguments[1]})
		}
		if len(n.Arguments) == 1 {
			return d.chain(name, n.Arguments[0])
		}
	case *ast.BuiltinNode:
		if len(n.Arguments) == 1 {
			return d.chain(n.Name, n.Arguments[0])
		}
	}
	return nil, unsupported(node)
}

func (d deriver) chain(name string, arg ast.Node) (fn, error) {
	outer, ok := derivatives[name]
	if !ok {
		return nil, fmt.Errorf("%w: no rule for %s", numeric.ErrNoSymbolic, name)
	}
	u, err := d.eval(arg)
	if err != nil {
		return nil, err
	}
	du, err := d.diff(arg)
	if err != nil {
		return nil, err
	}
	return func(x float64) float64 { return outer(u(x)) * du(x) }, nil
}

func (d deriver) diffBinary(n *ast.BinaryNode) (fn, error) {
	u, err := d.eval(n.Left)
	if err != nil {
		return nil, err
	}
	v, err := d.eval(n.Right)
	if err != nil {
		return nil, err
	}
	du, err := d.diff(n.Left)
	if err != nil {
		return nil, err
	}
	dv, err := d.diff(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "+":
		return func(x float64) float64 { return du(x) + dv(x) }, nil
	case "-":
		return func(x float64) float64 { return du(x) - dv(x) }, nil
	case "*":
		return func(x float64) float64 { return du(x)*v(x) + u(x)*dv(x) }, nil
	case "/":
		return func(x float64) float64 {
			vx := v(x)
			return (du(x)*vx - u(x)*dv(x)) / (vx * vx)
		}, nil
	case "^", "**":
		if !d.depends(n.Right) {
			return func(x float64) float64 {
				c := v(x)
				return c * math.Pow(u(x), c-1) * du(x)
			}, nil
		}
		return func(x float64) float64 {
			ux, vx := u(x), v(x)
			return math.Pow(ux, vx) * (dv(x)*math.Log(ux) + vx*du(x)/ux)
		}, nil
	}
	return nil, unsupported(n)
}
