package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/goliatone/go-formschema/pkg/loader"
	"github.com/goliatone/go-formschema/pkg/observability"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithStore sets the definition store schemas are built from.
func WithStore(store *loader.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithValidator replaces the default rule validator.
func WithValidator(v *validation.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = v
	}
}

// WithSchemaTransformer registers a Transformer that runs on every freshly
// built schema before it is filled.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// WithSchemaOptions appends options passed to every schema build, after the
// store's own options.
func WithSchemaOptions(opts ...schema.Option) Option {
	return func(o *Orchestrator) {
		o.schemaOpts = append(o.schemaOpts, opts...)
	}
}

// WithSink receives the events of every built schema.
func WithSink(sink observability.Sink) Option {
	return func(o *Orchestrator) {
		o.sink = sink
	}
}

// Orchestrator coordinates store lookups, schema building and the
// serialize/validate pipelines. It is safe for concurrent use: each request
// builds its own tree.
type Orchestrator struct {
	store        *loader.Store
	validator    *validation.Validator
	transformers []Transformer
	schemaOpts   []schema.Option
	sink         observability.Sink
}

// New constructs an Orchestrator. Missing dependencies default to an empty
// store and the built-in validator.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.store == nil {
		o.store = loader.NewStore()
	}
	if o.validator == nil {
		o.validator = validation.New()
	}
	return o
}

// Store exposes the definition store.
func (o *Orchestrator) Store() *loader.Store { return o.store }

// Schemas lists the registered schema names.
func (o *Orchestrator) Schemas() []string { return o.store.Names() }

// RenderRequest describes one serialization round trip.
type RenderRequest struct {
	Schema       string
	Data         map[string]any
	Record       any
	ChangedField string
	Repeater     *schema.RepeaterChange
	Locale       string
}

// RenderResult carries the serialized tree, the data after callbacks ran and
// an RFC 7386 merge patch describing what the callbacks changed. Patch is nil
// when nothing changed.
type RenderResult struct {
	Props schema.Props    `json:"props"`
	Data  map[string]any  `json:"data"`
	Patch json.RawMessage `json:"patch,omitempty"`
}

// Render builds the named schema and serializes it. req.Data is mutated in
// place by callbacks.
func (o *Orchestrator) Render(ctx context.Context, req RenderRequest) (RenderResult, error) {
	s, err := o.build(ctx, req.Schema, req.Locale)
	if err != nil {
		return RenderResult{}, err
	}

	data := req.Data
	if data == nil {
		data = map[string]any{}
	}
	before, err := json.Marshal(data)
	if err != nil {
		return RenderResult{}, fmt.Errorf("orchestrator: encode data: %w", err)
	}

	props := s.ToProps(schema.PropsRequest{
		Data:         data,
		Record:       req.Record,
		ChangedField: req.ChangedField,
		Repeater:     req.Repeater,
	})

	after, err := json.Marshal(data)
	if err != nil {
		return RenderResult{}, fmt.Errorf("orchestrator: encode data: %w", err)
	}
	result := RenderResult{Props: props, Data: data}
	if !bytes.Equal(before, after) {
		patch, err := jsonpatch.CreateMergePatch(before, after)
		if err != nil {
			return RenderResult{}, fmt.Errorf("orchestrator: diff data: %w", err)
		}
		result.Patch = patch
	}
	return result, nil
}

// ValidateRequest carries submitted data to check against a schema.
type ValidateRequest struct {
	Schema string
	Data   map[string]any
	Record any
	Locale string
}

// Validate checks data against the rules of the nodes visible for that data.
func (o *Orchestrator) Validate(ctx context.Context, req ValidateRequest) (validation.Result, error) {
	s, err := o.build(ctx, req.Schema, req.Locale)
	if err != nil {
		return validation.Result{}, err
	}
	data := req.Data
	if data == nil {
		data = map[string]any{}
	}
	rules := s.ValidationFor(data, req.Record)
	result, err := o.validator.Validate(rules, data)
	if err != nil {
		return validation.Result{}, fmt.Errorf("orchestrator: validate %s: %w", req.Schema, err)
	}
	return result, nil
}

// Rules returns every rule declared by the named schema, regardless of
// visibility.
func (o *Orchestrator) Rules(ctx context.Context, name string) (schema.Validation, error) {
	s, err := o.build(ctx, name, "")
	if err != nil {
		return schema.Validation{}, err
	}
	return s.CollectValidation(), nil
}

// MapErrors attaches an error payload from another system, such as a backend
// API, to the fields of the named schema.
func (o *Orchestrator) MapErrors(ctx context.Context, name string, payload map[string][]string) (validation.ErrorMapping, error) {
	rules, err := o.Rules(ctx, name)
	if err != nil {
		return validation.ErrorMapping{}, err
	}
	return validation.MapErrors(rules, payload), nil
}

// Schema builds a fresh tree for name with the transformers applied.
func (o *Orchestrator) Schema(ctx context.Context, name, locale string) (*schema.Schema, error) {
	return o.build(ctx, name, locale)
}

func (o *Orchestrator) build(ctx context.Context, name, locale string) (*schema.Schema, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errors.New("orchestrator: schema name is required")
	}

	opts := append([]schema.Option(nil), o.schemaOpts...)
	if o.sink != nil {
		opts = append(opts, schema.WithSink(o.sink))
	}
	if locale != "" {
		opts = append(opts, schema.WithLocale(locale))
	}
	s, err := o.store.Build(name, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build %s: %w", name, err)
	}
	for _, t := range o.transformers {
		if err := t.Transform(ctx, s); err != nil {
			return nil, fmt.Errorf("orchestrator: transform %s: %w", name, err)
		}
	}
	return s, nil
}
