package schema

// Value holds either a static value or a function of the evaluation context.
// The zero Value is unset and resolves to the zero value of T.
type Value[T any] struct {
	static T
	fn     func(*EvaluationContext) T
	set    bool
}

// Static wraps a constant.
func Static[T any](v T) Value[T] {
	return Value[T]{static: v, set: true}
}

// Computed wraps a function evaluated against the context at resolve time.
func Computed[T any](fn func(*EvaluationContext) T) Value[T] {
	if fn == nil {
		return Value[T]{}
	}
	return Value[T]{fn: fn, set: true}
}

// IsSet reports whether a static value or function was configured.
func (v Value[T]) IsSet() bool {
	return v.set
}

// Resolve returns the static value or calls the function with ctx. A nil
// ctx is replaced by an empty context so functions never see nil.
func (v Value[T]) Resolve(ctx *EvaluationContext) T {
	if v.fn != nil {
		if ctx == nil {
			ctx = &EvaluationContext{}
		}
		return v.fn(ctx)
	}
	return v.static
}

// predicate backs hidden/disabled: a bool, a function or an expression rule.
type predicate struct {
	value Value[bool]
	rule  string
}

func (p predicate) resolve(c *Component, attr string) bool {
	if p.rule != "" {
		return c.evalRule(attr, p.rule)
	}
	return p.value.Resolve(c.ctx)
}
