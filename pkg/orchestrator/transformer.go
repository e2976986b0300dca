package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// Transformer mutates a freshly built schema before it is filled. It can
// relabel fields, tighten rules or hide nodes per deployment.
type Transformer interface {
	Transform(ctx context.Context, s *schema.Schema) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, s *schema.Schema) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, s *schema.Schema) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, s)
}

// JSONPresetTransformer applies declarative field patches loaded from JSON,
// keyed by schema name and then field name:
//
//	{
//	  "schemas": {
//	    "order": {
//	      "label": "Checkout",
//	      "fields": {"notes": {"label": "Comments", "rules": ["max:500"]}}
//	    }
//	  }
//	}
//
// Schemas the document does not mention pass through untouched.
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Schemas map[string]jsonSchemaPatch `json:"schemas"`
}

type jsonSchemaPatch struct {
	Label  string                    `json:"label"`
	Fields map[string]jsonFieldPatch `json:"fields"`
}

type jsonFieldPatch struct {
	Label       string   `json:"label"`
	HelperText  string   `json:"helperText"`
	Placeholder string   `json:"placeholder"`
	Required    *bool    `json:"required"`
	Hidden      *bool    `json:"hidden"`
	Rules       []string `json:"rules"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the patches registered for s.
func (t *JSONPresetTransformer) Transform(ctx context.Context, s *schema.Schema) error {
	if s == nil {
		return errors.New("json preset transformer: schema is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	patch, ok := t.document.Schemas[s.Name()]
	if !ok {
		return nil
	}
	if patch.Label != "" {
		s.Label(patch.Label)
	}
	for name, fieldPatch := range patch.Fields {
		field := s.FindField(name)
		if field == nil {
			return fmt.Errorf("json preset transformer: field %q not found in %s", name, s.Name())
		}
		applyFieldPatch(field, fieldPatch)
	}
	return nil
}

func applyFieldPatch(field *schema.Field, patch jsonFieldPatch) {
	if patch.Label != "" {
		field.Label(patch.Label)
	}
	if patch.HelperText != "" {
		field.HelperText(patch.HelperText)
	}
	if patch.Placeholder != "" {
		field.Placeholder(patch.Placeholder)
	}
	if patch.Required != nil {
		field.Required(*patch.Required)
	}
	if patch.Hidden != nil {
		field.Hidden(*patch.Hidden)
	}
	if len(patch.Rules) > 0 {
		field.Rules(patch.Rules...)
	}
}
