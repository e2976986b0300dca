package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formschema/pkg/loader"
	"github.com/goliatone/go-formschema/pkg/openapi"
)

var (
	// ErrNotObject is returned when the root schema does not describe an object.
	ErrNotObject = errors.New("jsonschema: root schema must be an object")
	// ErrExternalRef is returned for $ref values outside the document.
	ErrExternalRef = errors.New("jsonschema: external $ref is not supported")
)

// Options configures Import.
type Options struct {
	MaxRefDepth int
	// Source is recorded on the definition, e.g. the file it came from.
	Source string
}

type Option func(*Options)

func WithMaxRefDepth(depth int) Option {
	return func(o *Options) { o.MaxRefDepth = depth }
}

func WithSource(source string) Option {
	return func(o *Options) { o.Source = source }
}

// Import converts a JSON or YAML encoded JSON Schema into a definition named
// name. The root title becomes the label.
func Import(raw []byte, name string, opts ...Option) (loader.Definition, error) {
	options := Options{MaxRefDepth: defaultMaxRefDepth}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.MaxRefDepth <= 0 {
		options.MaxRefDepth = defaultMaxRefDepth
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return loader.Definition{}, errors.New("jsonschema: definition name is required")
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return loader.Definition{}, errors.New("jsonschema: document payload is empty")
	}

	var root map[string]any
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return loader.Definition{}, fmt.Errorf("jsonschema: decode document: %w", err)
	}

	r := &resolver{root: root, maxDepth: options.MaxRefDepth}
	resolved, err := r.resolve(root)
	if err != nil {
		return loader.Definition{}, err
	}

	normalized, err := json.Marshal(mergeAllOf(resolved))
	if err != nil {
		return loader.Definition{}, fmt.Errorf("jsonschema: normalize document: %w", err)
	}
	var s openapi3.Schema
	if err := json.Unmarshal(normalized, &s); err != nil {
		return loader.Definition{}, fmt.Errorf("jsonschema: convert document: %w", err)
	}
	isObject := s.Type != nil && s.Type.Is(openapi3.TypeObject)
	if !isObject && len(s.Properties) == 0 {
		return loader.Definition{}, ErrNotObject
	}

	return loader.Definition{
		Name:       name,
		Label:      s.Title,
		Components: openapi.Components(&s),
		Source:     options.Source,
	}, nil
}
