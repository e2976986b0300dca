package loader

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML renders definitions as a document LoadFS accepts. Keys follow
// the json tags, which match the decoder's names; Name and Source are
// implied by the document and dropped.
func MarshalYAML(defs map[string]Definition) ([]byte, error) {
	schemas := make(map[string]any, len(defs))
	for name, def := range defs {
		raw, err := json.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("loader: encode %s: %w", name, err)
		}
		var generic map[string]any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, fmt.Errorf("loader: encode %s: %w", name, err)
		}
		delete(generic, "name")
		delete(generic, "source")
		schemas[name] = generic
	}
	out, err := yaml.Marshal(map[string]any{"schemas": schemas})
	if err != nil {
		return nil, fmt.Errorf("loader: marshal yaml: %w", err)
	}
	return out, nil
}
