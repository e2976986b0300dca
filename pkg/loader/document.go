package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document wraps a raw definition payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument validates the inputs and copies raw.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("loader: source is required")
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Document{}, fmt.Errorf("loader: document %s is empty", src.Location())
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the origin identifier.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// decode parses the payload as JSON, then YAML, into a generic map.
func (d Document) decode() (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(d.raw, &out); err == nil {
		return out, nil
	}
	if err := yaml.Unmarshal(d.raw, &out); err != nil {
		return nil, fmt.Errorf("loader: parse %s: invalid JSON or YAML: %w", d.Location(), err)
	}
	if out == nil {
		return nil, fmt.Errorf("loader: parse %s: document is not a mapping", d.Location())
	}
	return out, nil
}
