package schema

import (
	"strconv"

	"github.com/goliatone/go-formschema/pkg/i18n"
	"github.com/goliatone/go-formschema/pkg/observability"
	"github.com/goliatone/go-formschema/pkg/visibility"
)

// KindSchema identifies the root node.
const KindSchema = "schema"

// Option configures a Schema.
type Option func(*Schema)

// WithSink routes fill/dispatch/serialize events to sink.
func WithSink(sink observability.Sink) Option {
	return func(s *Schema) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithEvaluator replaces the expression evaluator used by string predicates.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(s *Schema) {
		if evaluator != nil {
			s.evaluator = evaluator
		}
	}
}

// WithTranslator enables label keys and translated UI strings.
func WithTranslator(translator i18n.Translator) Option {
	return func(s *Schema) {
		s.translator = translator
	}
}

// WithLocale sets the locale passed to the translator.
func WithLocale(locale string) Option {
	return func(s *Schema) {
		s.locale = locale
	}
}

// WithExtras exposes host values to predicates as `extras`.
func WithExtras(extras map[string]any) Option {
	return func(s *Schema) {
		s.extras = extras
	}
}

// Schema is the root of a tree. It fills fields from a data map, runs
// after-change callbacks, pushes the shared context into every node and
// serializes the visible tree.
type Schema struct {
	Builder[*Schema]

	children   []Node
	data       map[string]any
	record     any
	model      string
	resource   string
	locale     string
	extras     map[string]any
	evaluator  visibility.Evaluator
	translator i18n.Translator
	sink       observability.Sink
}

// New creates an empty schema.
func New(name string, opts ...Option) *Schema {
	s := &Schema{sink: observability.NopSink{}}
	s.Init(s, KindSchema, name)
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Schema replaces the root children.
func (s *Schema) Schema(nodes ...Node) *Schema {
	s.children = append([]Node(nil), nodes...)
	return s
}

// Model names the bound model class or table.
func (s *Schema) Model(model string) *Schema {
	s.model = model
	return s
}

// Resource names the resource the schema belongs to.
func (s *Schema) Resource(resource string) *Schema {
	s.resource = resource
	return s
}

// Record binds the entity being edited.
func (s *Schema) Record(record any) *Schema {
	s.record = record
	return s
}

func (s *Schema) Children() []Node     { return s.children }
func (s *Schema) GetModel() string     { return s.model }
func (s *Schema) GetResource() string  { return s.resource }
func (s *Schema) GetRecord() any       { return s.record }
func (s *Schema) Data() map[string]any { return s.data }

// Sink returns the configured event sink.
func (s *Schema) Sink() observability.Sink { return s.sink }

// VisibleComponents returns the root children that are not hidden.
func (s *Schema) VisibleComponents() []Node {
	return visibleNodes(s.children)
}

// Fill sets every fillable node's state from data. Keys may be dotted paths
// into nested maps. Nodes without a key fall back to their default.
// Repeater templates are not filled; the repeater holds the item list.
func (s *Schema) Fill(data map[string]any) *Schema {
	if data == nil {
		data = map[string]any{}
	}
	s.data = data
	filled := fill(s.children, data)
	s.emit(observability.Event{
		Kind:    observability.EventFill,
		Message: "formschema: filled",
		Attrs:   map[string]any{"fields": filled},
	})
	return s
}

func fill(nodes []Node, data map[string]any) int {
	count := 0
	_ = Walk(nodes, func(node Node, _ []Node) error {
		fillable, ok := node.(Fillable)
		if !ok {
			return nil
		}
		value, present := lookupPath(data, node.Name())
		fillable.Fill(value, present)
		count++
		if _, container := node.(Container); container {
			return SkipChildren
		}
		return nil
	})
	return count
}

// RepeaterChange locates a field inside one repeater item.
type RepeaterChange struct {
	Repeater string `json:"repeater"`
	Index    int    `json:"index"`
	Field    string `json:"field"`
}

// PropsRequest is the input of ToProps. A nil Data falls back to the map
// given to Fill. Callbacks write into Data.
type PropsRequest struct {
	Data         map[string]any
	Record       any
	ChangedField string
	Repeater     *RepeaterChange
}

// ToProps runs the after-change callback for the reported change, pushes
// the evaluation context into every node and serializes the tree, in that
// order.
func (s *Schema) ToProps(req PropsRequest) Props {
	data := req.Data
	if data == nil {
		data = s.data
	}
	if data == nil {
		data = map[string]any{}
	}
	record := req.Record
	if record == nil {
		record = s.record
	}

	switch {
	case req.Repeater != nil:
		s.DispatchRepeaterCallback(req.Repeater.Repeater, req.Repeater.Index, req.Repeater.Field, data, record)
	case req.ChangedField != "":
		s.dispatchChanged(req.ChangedField, data, record)
	}

	s.prepare(data, record)

	props := s.Component.Props()
	props["schema"] = serializeNodes(s.children)
	if s.model != "" {
		props["model"] = s.model
	}
	if s.resource != "" {
		props["resource"] = s.resource
	}
	s.emit(observability.Event{
		Kind:    observability.EventSerialize,
		Field:   req.ChangedField,
		Message: "formschema: serialized",
	})
	return props
}

// prepare fills the tree from data and pushes a fresh evaluation context
// into every node.
func (s *Schema) prepare(data map[string]any, record any) {
	s.data = data
	s.record = record
	fill(s.children, data)

	ctx := &EvaluationContext{
		Schema:     s.name,
		Data:       data,
		Record:     record,
		Model:      s.model,
		Resource:   s.resource,
		Locale:     s.locale,
		Extras:     s.extras,
		Evaluator:  s.evaluator,
		Translator: s.translator,
		Sink:       s.sink,
	}
	s.SetEvaluationContext(ctx)
	_ = Walk(s.children, func(node Node, _ []Node) error {
		if aware, ok := node.(ContextAware); ok {
			aware.SetEvaluationContext(ctx)
		}
		return nil
	})
}

// DispatchCallback runs the after-change callbacks of the fields named
// field outside repeater templates. It reports whether any ran.
func (s *Schema) DispatchCallback(field string, data map[string]any, record any) bool {
	return s.dispatchChanged(field, data, record)
}

func (s *Schema) dispatchChanged(field string, data map[string]any, record any) bool {
	value, present := lookupPath(data, field)
	if !present {
		s.emit(observability.Event{
			Kind:    observability.EventFieldNotFound,
			Field:   field,
			Message: "formschema: changed field missing from data",
		})
		return false
	}

	root := NewState(data).Root()
	matched, invoked := 0, 0
	_ = Walk(s.children, func(node Node, _ []Node) error {
		if node.Name() == field {
			if reactive, ok := node.(Reactive); ok {
				matched++
				if cb := reactive.AfterStateUpdatedCallback(); cb != nil {
					cb(&StateUpdate{
						Field:  field,
						Value:  value,
						Get:    root.Get,
						Set:    root.Set,
						Data:   data,
						Record: record,
						Scope:  root,
					})
					invoked++
					s.emit(observability.Event{
						Kind:    observability.EventCallbackInvoked,
						Field:   field,
						Message: "formschema: after-change callback invoked",
					})
				}
			}
		}
		if _, repeater := node.(*Repeater); repeater {
			return SkipChildren
		}
		return nil
	})

	switch {
	case matched == 0:
		s.emit(observability.Event{
			Kind:    observability.EventFieldNotFound,
			Field:   field,
			Message: "formschema: no field named after the change",
		})
	case invoked == 0:
		s.emit(observability.Event{
			Kind:    observability.EventCallbackMissing,
			Field:   field,
			Message: "formschema: field declares no after-change callback",
		})
	}
	return invoked > 0
}

// DispatchRepeaterCallback runs the after-change callback of the template
// field named field for item index of the repeater. Get and Set are scoped
// to data[repeater][index]; "../" reaches the root. It reports whether a
// callback ran. Missing repeaters, items or fields are recorded on the
// sink and ignored.
func (s *Schema) DispatchRepeaterCallback(repeater string, index int, field string, data map[string]any, record any) bool {
	event := observability.Event{Repeater: repeater, Index: index, Field: field}

	container := s.findRepeater(repeater)
	if container == nil {
		event.Kind = observability.EventRepeaterNotFound
		event.Message = "formschema: repeater not found"
		s.emit(event)
		return false
	}

	segments := append(splitPath(repeater), strconv.Itoa(index))
	raw, ok := walkPath(data, segments)
	item, isMap := raw.(map[string]any)
	if !ok || !isMap {
		event.Kind = observability.EventRepeaterItemEmpty
		event.Message = "formschema: repeater item not found"
		s.emit(event)
		return false
	}

	target := Find(container.Children(), func(node Node) bool {
		_, reactive := node.(Reactive)
		return reactive && node.Name() == field
	})
	if target == nil {
		event.Kind = observability.EventFieldNotFound
		event.Message = "formschema: repeater field not found"
		s.emit(event)
		return false
	}
	cb := target.(Reactive).AfterStateUpdatedCallback()
	if cb == nil {
		event.Kind = observability.EventCallbackMissing
		event.Message = "formschema: repeater field declares no after-change callback"
		s.emit(event)
		return false
	}

	value, _ := lookupPath(item, field)
	scope := NewState(data).Root().Child(segments...)
	cb(&StateUpdate{
		Field:    field,
		Value:    value,
		Get:      scope.Get,
		Set:      scope.Set,
		Data:     data,
		Record:   record,
		Scope:    scope,
		Repeater: repeater,
		Index:    index,
	})
	event.Kind = observability.EventCallbackInvoked
	event.Message = "formschema: repeater callback invoked"
	s.emit(event)
	return true
}

// findRepeater prefers a Repeater node over any other container sharing
// the name.
func (s *Schema) findRepeater(name string) Container {
	if node := Find(s.children, func(node Node) bool {
		_, ok := node.(*Repeater)
		return ok && node.Name() == name
	}); node != nil {
		return node.(Container)
	}
	if node := Find(s.children, func(node Node) bool {
		_, ok := node.(Container)
		return ok && node.Name() == name
	}); node != nil {
		return node.(Container)
	}
	return nil
}

// CollectValidation gathers rules, messages, attributes and prefixes from
// every field in the tree.
func (s *Schema) CollectValidation() Validation {
	return CollectValidation(s.children)
}

// ValidationFor evaluates the tree against data and collects the rules of
// visible nodes only. Hidden containers drop their whole subtree.
func (s *Schema) ValidationFor(data map[string]any, record any) Validation {
	if data == nil {
		data = map[string]any{}
	}
	s.prepare(data, record)
	return collectValidation(s.children, true)
}

// Fields returns every fillable node in declaration order, without
// descending into repeater templates.
func (s *Schema) Fields() []Fillable {
	var out []Fillable
	_ = Walk(s.children, func(node Node, _ []Node) error {
		fillable, ok := node.(Fillable)
		if !ok {
			return nil
		}
		out = append(out, fillable)
		if _, container := node.(Container); container {
			return SkipChildren
		}
		return nil
	})
	return out
}

// FindField returns the first Field named name, or nil.
func (s *Schema) FindField(name string) *Field {
	node := Find(s.children, func(node Node) bool {
		_, ok := node.(*Field)
		return ok && node.Name() == name
	})
	if node == nil {
		return nil
	}
	return node.(*Field)
}

func (s *Schema) emit(event observability.Event) {
	if event.Schema == "" {
		event.Schema = s.name
	}
	s.sink.Record(event)
}
