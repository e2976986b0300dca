package expr

import (
	"fmt"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/goliatone/go-formschema/pkg/visibility"
)

// Evaluator compiles predicate rules with expr-lang and caches the programs.
//
// Rules see the data values as top-level identifiers (`status == "draft"`,
// `len(items) > 2`), nested maps via member access (`address.country`), the
// bound entity as `record` and caller extras under `extras`. Flattened dotted
// keys such as "cta.headline" are expanded into nested maps before
// evaluation. Unknown identifiers evaluate to nil.
type Evaluator struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

func New() *Evaluator {
	return &Evaluator{programs: make(map[string]*vm.Program)}
}

func (e *Evaluator) Eval(nodePath, rule string, ctx visibility.Context) (bool, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}

	program, err := e.compile(trimmed)
	if err != nil {
		return false, fmt.Errorf("visibility/expr: compile %q for %s: %w", trimmed, nodePath, err)
	}

	out, err := expr.Run(program, environment(ctx))
	if err != nil {
		return false, fmt.Errorf("visibility/expr: evaluate %q for %s: %w", trimmed, nodePath, err)
	}
	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("visibility/expr: rule %q returned %T, want bool", trimmed, out)
	}
	return result, nil
}

func (e *Evaluator) compile(rule string) (*vm.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[rule]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := expr.Compile(rule, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.programs[rule] = program
	e.mu.Unlock()
	return program, nil
}

func environment(ctx visibility.Context) map[string]any {
	env := make(map[string]any, len(ctx.Values)+2)
	for key, value := range ctx.Values {
		if !strings.Contains(key, ".") {
			env[key] = value
		}
	}
	for key, value := range ctx.Values {
		if strings.Contains(key, ".") {
			assignPath(env, strings.Split(key, "."), value)
		}
	}
	if _, exists := env["record"]; !exists {
		env["record"] = ctx.Record
	}
	extras := ctx.Extras
	if extras == nil {
		extras = map[string]any{}
	}
	env["extras"] = extras
	return env
}

func assignPath(target map[string]any, segments []string, value any) {
	current := target
	for i, segment := range segments {
		if i == len(segments)-1 {
			if _, exists := current[segment]; !exists {
				current[segment] = value
			}
			return
		}
		var next map[string]any
		switch existing := current[segment].(type) {
		case map[string]any:
			next = make(map[string]any, len(existing)+1)
			for k, v := range existing {
				next[k] = v
			}
		case nil:
			next = make(map[string]any)
		default:
			return
		}
		current[segment] = next
		current = next
	}
}
