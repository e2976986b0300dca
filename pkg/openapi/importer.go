package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formschema/pkg/loader"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// ErrNoForms is returned when no operation carries an object request body.
var ErrNoForms = errors.New("openapi: no operation with an object request body")

// Options configures Import.
type Options struct {
	// ResolveReferences allows external $refs and validates the document.
	ResolveReferences bool
	// Operations limits the import to these operation names.
	Operations []string
}

// Option mutates Options.
type Option func(*Options)

func WithReferenceResolution(enabled bool) Option {
	return func(o *Options) {
		o.ResolveReferences = enabled
	}
}

func WithOperations(names ...string) Option {
	return func(o *Options) {
		o.Operations = append(o.Operations, names...)
	}
}

// Import converts every operation with an object request body into a
// definition keyed by operation name: the operationId, or the method and
// path in snake case ("post_users_id") when the id is missing.
func Import(ctx context.Context, raw []byte, opts ...Option) (map[string]loader.Definition, error) {
	var options Options
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	docLoader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: options.ResolveReferences,
	}
	spec, err := docLoader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	wanted := map[string]bool{}
	for _, name := range options.Operations {
		wanted[name] = true
	}

	out := make(map[string]loader.Definition)
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				if op == nil {
					continue
				}
				name := operationName(method, path, op)
				if len(wanted) > 0 && !wanted[name] {
					continue
				}
				body := requestSchema(op.RequestBody)
				if body == nil || !isType(body, openapi3.TypeObject) {
					continue
				}
				label := op.Summary
				if label == "" {
					label = body.Title
				}
				out[name] = loader.Definition{
					Name:       name,
					Label:      label,
					Resource:   strings.Trim(path, "/"),
					Components: properties(body, ""),
					Source:     strings.ToUpper(method) + " " + path,
				}
			}
		}
	}

	if len(out) == 0 {
		return nil, ErrNoForms
	}
	return out, nil
}

func operationName(method, path string, op *openapi3.Operation) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	return schema.IDFromName(strings.ToLower(method) + " " + path)
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}
