package visibility

// Evaluator decides a boolean predicate (hidden/disabled/visible rules) for
// the node at nodePath given the current form data.
type Evaluator interface {
	Eval(nodePath, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values usually holds the schema
// data map, Record the bound entity, and Extras arbitrary caller context such
// as user roles or feature flags.
type Context struct {
	Values map[string]any
	Record any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(nodePath, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(nodePath, rule string, ctx Context) (bool, error) {
	return fn(nodePath, rule, ctx)
}
