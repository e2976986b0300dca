package jsonschema

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const defaultMaxRefDepth = 64

type resolver struct {
	root     map[string]any
	maxDepth int
	stack    []string
}

// resolve returns a copy of node with every local $ref replaced by its
// target. Sibling keys of a $ref override the target, except for a nested
// $ref.
func (r *resolver) resolve(node any) (any, error) {
	switch typed := node.(type) {
	case map[string]any:
		if ref, ok := typed["$ref"].(string); ok && strings.TrimSpace(ref) != "" {
			return r.follow(strings.TrimSpace(ref), typed)
		}
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			if key == "$defs" || key == "definitions" {
				continue
			}
			resolved, err := r.resolve(value)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for i, entry := range typed {
			resolved, err := r.resolve(entry)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return node, nil
	}
}

func (r *resolver) follow(ref string, refObj map[string]any) (any, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, fmt.Errorf("%w: %s", ErrExternalRef, ref)
	}
	if len(r.stack) >= r.maxDepth {
		return nil, fmt.Errorf("jsonschema: ref depth exceeds %d", r.maxDepth)
	}
	for _, seen := range r.stack {
		if seen == ref {
			return nil, fmt.Errorf("jsonschema: ref cycle detected at %s", ref)
		}
	}

	target, err := pointer(r.root, strings.TrimPrefix(ref, "#"))
	if err != nil {
		return nil, err
	}
	targetMap, ok := target.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("jsonschema: $ref %s does not point to a schema", ref)
	}
	merged := make(map[string]any, len(targetMap)+len(refObj))
	for key, value := range targetMap {
		merged[key] = value
	}
	for key, value := range refObj {
		if key != "$ref" {
			merged[key] = value
		}
	}

	r.stack = append(r.stack, ref)
	resolved, err := r.resolve(merged)
	r.stack = r.stack[:len(r.stack)-1]
	return resolved, err
}

// pointer walks an RFC 6901 JSON pointer.
func pointer(root any, ptr string) (any, error) {
	if ptr == "" {
		return root, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, fmt.Errorf("jsonschema: invalid json pointer %q", ptr)
	}

	current := root
	for _, part := range strings.Split(ptr, "/")[1:] {
		decoded, err := url.PathUnescape(part)
		if err != nil {
			return nil, fmt.Errorf("jsonschema: invalid json pointer %q: %w", ptr, err)
		}
		decoded = strings.ReplaceAll(decoded, "~1", "/")
		decoded = strings.ReplaceAll(decoded, "~0", "~")

		switch typed := current.(type) {
		case map[string]any:
			value, ok := typed[decoded]
			if !ok {
				return nil, fmt.Errorf("jsonschema: pointer %q not found", ptr)
			}
			current = value
		case []any:
			idx, err := strconv.Atoi(decoded)
			if err != nil || idx < 0 || idx >= len(typed) {
				return nil, fmt.Errorf("jsonschema: pointer %q out of range", ptr)
			}
			current = typed[idx]
		default:
			return nil, fmt.Errorf("jsonschema: pointer %q invalid", ptr)
		}
	}
	return current, nil
}

// mergeAllOf folds allOf branches into their parent: properties are united
// and required lists concatenated. Other branch keywords only fill keys the
// parent lacks.
func mergeAllOf(node any) any {
	switch typed := node.(type) {
	case map[string]any:
		for key, value := range typed {
			typed[key] = mergeAllOf(value)
		}
		branches, ok := typed["allOf"].([]any)
		if !ok {
			return typed
		}
		delete(typed, "allOf")
		for _, branch := range branches {
			branchMap, ok := branch.(map[string]any)
			if !ok {
				continue
			}
			for key, value := range branchMap {
				switch key {
				case "properties":
					props, _ := typed["properties"].(map[string]any)
					if props == nil {
						props = map[string]any{}
					}
					if more, ok := value.(map[string]any); ok {
						for name, prop := range more {
							props[name] = prop
						}
					}
					typed["properties"] = props
				case "required":
					existing, _ := typed["required"].([]any)
					if more, ok := value.([]any); ok {
						typed["required"] = append(existing, more...)
					}
				default:
					if _, exists := typed[key]; !exists {
						typed[key] = value
					}
				}
			}
		}
		return typed
	case []any:
		for i, entry := range typed {
			typed[i] = mergeAllOf(entry)
		}
		return typed
	default:
		return node
	}
}
