// Package formschema builds declarative form layouts: a tree of sections,
// grids, tabs and fields that fills from data, serializes to props and
// yields validation rules for the fields a user can see.
//
// The root package wires the common path. Callers needing more control use
// pkg/schema, pkg/loader and pkg/orchestrator directly.
package formschema

import (
	"github.com/goliatone/go-formschema/pkg/loader"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// Schema aliases the root of a form tree.
type Schema = schema.Schema

// Props is the serialized form of a tree.
type Props = schema.Props

// PropsRequest carries the data and the changed field for ToProps.
type PropsRequest = schema.PropsRequest

// Validation is the rule set extracted from a tree.
type Validation = schema.Validation

// Callbacks names the functions definitions refer to in afterStateUpdated.
type Callbacks = loader.CallbackRegistry

// NewCallbacks returns an empty callback registry.
func NewCallbacks() *Callbacks {
	return loader.NewCallbackRegistry()
}

// New builds a schema in code.
func New(name string, opts ...schema.Option) *Schema {
	return schema.New(name, opts...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Open loads every definition under dir and returns an orchestrator serving
// them. callbacks may be nil when no definition names one.
func Open(dir string, callbacks *Callbacks, options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	var storeOpts []loader.StoreOption
	if callbacks != nil {
		storeOpts = append(storeOpts, loader.WithCallbacks(callbacks))
	}
	store, err := loader.LoadDir(dir, storeOpts...)
	if err != nil {
		return nil, err
	}
	opts := append([]orchestrator.Option{
		orchestrator.WithStore(store),
		orchestrator.WithValidator(validation.New()),
	}, options...)
	return orchestrator.New(opts...), nil
}
