package schema

import (
	"strings"

	"github.com/goliatone/go-formschema/pkg/observability"
)

// Props is the plain, JSON-ready representation of a node.
type Props = map[string]any

// Node is implemented by every element of a schema tree.
type Node interface {
	Name() string
	Kind() string
	Base() *Component
	Props() Props
}

// Container is implemented by nodes holding an ordered list of children.
type Container interface {
	Node
	Children() []Node
}

// TabContainer is implemented by nodes grouping children into tabs.
type TabContainer interface {
	Node
	Tabs() []*Tab
}

// Fillable nodes receive their state from the data map during Fill.
type Fillable interface {
	Node
	Fill(value any, present bool)
}

// Validatable nodes contribute validation rules.
type Validatable interface {
	Node
	ValidationRules() FieldValidation
}

// Reactive nodes may declare an after-change callback.
type Reactive interface {
	Node
	AfterStateUpdatedCallback() Callback
}

// ContextAware nodes accept the shared evaluation context.
type ContextAware interface {
	SetEvaluationContext(ctx *EvaluationContext)
}

// Hideable nodes can be excluded from serialization.
type Hideable interface {
	IsHidden() bool
}

// Component carries the state shared by every node: identity, label,
// visibility predicates and the evaluation context.
type Component struct {
	kind       string
	name       string
	id         string
	label      Value[string]
	labelKey   string
	helperText Value[string]
	hidden     predicate
	disabled   predicate
	columnSpan any
	extra      map[string]any
	ctx        *EvaluationContext
}

func (c *Component) Name() string { return c.name }

func (c *Component) Kind() string { return c.kind }

func (c *Component) Base() *Component { return c }

// GetID returns the configured id.
func (c *Component) GetID() string { return c.id }

// GetLabel resolves the label, translating the label key when one is set.
func (c *Component) GetLabel() string {
	label := c.label.Resolve(c.ctx)
	if c.labelKey != "" {
		return c.ctx.Translate(c.labelKey, label)
	}
	return label
}

// GetHelperText resolves the helper text.
func (c *Component) GetHelperText() string {
	return c.helperText.Resolve(c.ctx)
}

// IsHidden evaluates the hidden predicate against the current context.
func (c *Component) IsHidden() bool {
	return c.hidden.resolve(c, "hidden")
}

// IsDisabled evaluates the disabled predicate against the current context.
func (c *Component) IsDisabled() bool {
	return c.disabled.resolve(c, "disabled")
}

// SetEvaluationContext stores the shared context.
func (c *Component) SetEvaluationContext(ctx *EvaluationContext) {
	c.ctx = ctx
}

// EvaluationContext returns the context pushed by the last ToProps call.
func (c *Component) EvaluationContext() *EvaluationContext {
	return c.ctx
}

// Props returns the props every node shares.
func (c *Component) Props() Props {
	props := Props{
		"component": c.kind,
		"name":      c.name,
		"id":        c.id,
		"label":     c.GetLabel(),
		"hidden":    c.IsHidden(),
		"disabled":  c.IsDisabled(),
	}
	if helper := c.GetHelperText(); helper != "" {
		props["helperText"] = helper
	}
	if c.columnSpan != nil {
		props["columnSpan"] = c.columnSpan
	}
	if len(c.extra) > 0 {
		props["extraAttributes"] = cloneMap(c.extra)
	}
	return props
}

func (c *Component) evalRule(attr, rule string) bool {
	ok, err := c.ctx.evaluator().Eval(c.name, rule, c.ctx.visibility())
	if err != nil {
		c.ctx.sink().Record(observability.Event{
			Kind:    observability.EventPredicateFailed,
			Schema:  schemaName(c.ctx),
			Field:   c.name,
			Message: "formschema: " + attr + " predicate failed",
			Err:     err,
			Attrs:   map[string]any{"rule": rule},
		})
		return false
	}
	return ok
}

// Builder embeds Component and returns the concrete node from every setter
// so calls chain: NewSection("Profile").Label("x").Hidden(false).
type Builder[T any] struct {
	Component
	self T
}

// Init wires the concrete node into the builder. Custom nodes call it from
// their constructor.
func (b *Builder[T]) Init(self T, kind, name string) {
	b.self = self
	b.kind = kind
	b.name = name
}

// ID sets the element id.
func (b *Builder[T]) ID(id string) T {
	b.id = id
	return b.self
}

// Label sets a static label.
func (b *Builder[T]) Label(label string) T {
	b.label = Static(label)
	return b.self
}

// LabelFunc computes the label from the evaluation context.
func (b *Builder[T]) LabelFunc(fn func(*EvaluationContext) string) T {
	b.label = Computed(fn)
	return b.self
}

// LabelKey translates the label through the context translator, using the
// static label as fallback.
func (b *Builder[T]) LabelKey(key string) T {
	b.labelKey = key
	return b.self
}

// HelperText sets a static helper text.
func (b *Builder[T]) HelperText(text string) T {
	b.helperText = Static(text)
	return b.self
}

// HelperTextFunc computes the helper text from the evaluation context.
func (b *Builder[T]) HelperTextFunc(fn func(*EvaluationContext) string) T {
	b.helperText = Computed(fn)
	return b.self
}

// Hidden hides the node.
func (b *Builder[T]) Hidden(hidden bool) T {
	b.hidden = predicate{value: Static(hidden)}
	return b.self
}

// HiddenFunc hides the node when fn returns true.
func (b *Builder[T]) HiddenFunc(fn func(*EvaluationContext) bool) T {
	b.hidden = predicate{value: Computed(fn)}
	return b.self
}

// HiddenWhen hides the node when the expression rule evaluates to true.
func (b *Builder[T]) HiddenWhen(rule string) T {
	b.hidden = predicate{rule: rule}
	return b.self
}

// VisibleWhen shows the node only when the expression rule is true.
func (b *Builder[T]) VisibleWhen(rule string) T {
	if strings.TrimSpace(rule) == "" {
		b.hidden = predicate{}
		return b.self
	}
	b.hidden = predicate{rule: "!(" + rule + ")"}
	return b.self
}

// Disabled disables the node.
func (b *Builder[T]) Disabled(disabled bool) T {
	b.disabled = predicate{value: Static(disabled)}
	return b.self
}

// DisabledFunc disables the node when fn returns true.
func (b *Builder[T]) DisabledFunc(fn func(*EvaluationContext) bool) T {
	b.disabled = predicate{value: Computed(fn)}
	return b.self
}

// DisabledWhen disables the node when the expression rule evaluates to true.
func (b *Builder[T]) DisabledWhen(rule string) T {
	b.disabled = predicate{rule: rule}
	return b.self
}

// ColumnSpan sets the grid span (an int, "full", or a per-breakpoint map).
func (b *Builder[T]) ColumnSpan(span any) T {
	b.columnSpan = span
	return b.self
}

// ExtraAttributes merges attributes passed through to the renderer.
func (b *Builder[T]) ExtraAttributes(attrs map[string]any) T {
	if len(attrs) == 0 {
		return b.self
	}
	if b.extra == nil {
		b.extra = make(map[string]any, len(attrs))
	}
	for key, value := range attrs {
		b.extra[key] = value
	}
	return b.self
}

func schemaName(ctx *EvaluationContext) string {
	if ctx == nil {
		return ""
	}
	return ctx.Schema
}

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
