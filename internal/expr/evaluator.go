package expr

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/san-kum/integlab/internal/numeric"
)

// Evaluator evaluates a textual function against variable bindings.
type Evaluator interface {
	Evaluate(expression string, bindings map[string]float64) (float64, error)
	Compile(expression, variable string) (numeric.Func, error)
}

// Engine is the expr-lang backed Evaluator. Compiled programs are cached by
// expression and variable set, so repeated evaluation is cheap.
type Engine struct {
	mu    sync.Mutex
	cache map[string]*vm.Program
	opts  []expr.Option
}

// New creates an Engine with the standard function library.
func New() *Engine {
	return &Engine{
		cache: make(map[string]*vm.Program),
		opts:  functionOptions(),
	}
}

func (e *Engine) program(expression string, vars []string) (*vm.Program, error) {
	sort.Strings(vars)
	key := expression + "\x00" + strings.Join(vars, ",")

	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.cache[key]; ok {
		return p, nil
	}

	env := make(map[string]any, len(vars)+len(constants))
	for k, v := range constants {
		env[k] = v
	}
	for _, v := range vars {
		env[v] = 0.0
	}

	opts := append([]expr.Option{expr.Env(env)}, e.opts...)
	p, err := expr.Compile(expression, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: compile %q: %v", numeric.ErrEvaluation, expression, err)
	}
	e.cache[key] = p
	return p, nil
}

func run(p *vm.Program, bindings map[string]float64) (float64, error) {
	env := make(map[string]any, len(bindings)+len(constants))
	for k, v := range constants {
		env[k] = v
	}
	for k, v := range bindings {
		env[k] = v
	}
	out, err := expr.Run(p, env)
	if err != nil {
		return 0, err
	}
	return toFloat(out)
}

// Evaluate compiles (or reuses) expression and evaluates it once.
func (e *Engine) Evaluate(expression string, bindings map[string]float64) (float64, error) {
	vars := make([]string, 0, len(bindings))
	for k := range bindings {
		vars = append(vars, k)
	}
	p, err := e.program(expression, vars)
	if err != nil {
		return 0, err
	}
	v, err := run(p, bindings)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", numeric.ErrEvaluation, expression, err)
	}
	return v, nil
}

// Compile returns expression as a function of variable. Syntax errors and
// unknown names are reported here, domain errors when the Func is called.
func (e *Engine) Compile(expression, variable string) (numeric.Func, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("%w: empty expression", numeric.ErrEvaluation)
	}
	p, err := e.program(expression, []string{variable})
	if err != nil {
		return nil, err
	}
	return func(x float64) (float64, error) {
		v, err := run(p, map[string]float64{variable: x})
		if err != nil {
			return 0, &numeric.EvalError{Expression: expression, At: x, Err: err}
		}
		return v, nil
	}, nil
}
