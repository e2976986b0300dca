package validation

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// ErrorMapping splits a server error payload into field-level messages keyed
// by concrete data paths ("items.0.qty") and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while keeping order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrors attaches error payload keys from another system to the fields
// of rules. Keys may be dotted, slash or JSON pointer paths, may index with
// brackets and may be wrapped in body, request, payload, data or attributes.
// The longest prefix naming a field wins; "*" in a rule key matches any list
// index. Unmatched keys become form-level errors so no message is lost.
func MapErrors(rules schema.Validation, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: map[string][]string{}}

	patterns := make([][]string, 0, len(rules.Rules))
	for key := range rules.Rules {
		patterns = append(patterns, strings.Split(key, "."))
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, raw := range keys {
		messages := normalizeMessages(payload[raw])
		if len(messages) == 0 {
			continue
		}
		path := ""
		if !isFormLevelKey(raw) {
			path = matchPath(dropWrapperSegments(parsePathSegments(raw)), patterns)
		}
		if path == "" {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[path] = append(mapping.Fields[path], messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// matchPath returns the longest prefix of segments that matches a pattern,
// joined with dots.
func matchPath(segments []string, patterns [][]string) string {
	for end := len(segments); end > 0; end-- {
		for _, pattern := range patterns {
			if segmentsMatch(pattern, segments[:end]) {
				return strings.Join(segments[:end], ".")
			}
		}
	}
	return ""
}

func segmentsMatch(pattern, segments []string) bool {
	if len(pattern) != len(segments) {
		return false
	}
	for i, part := range pattern {
		if part == "*" {
			if _, err := strconv.Atoi(segments[i]); err != nil {
				return false
			}
			continue
		}
		if part != segments[i] {
			return false
		}
	}
	return true
}

func normalizeMessages(messages []string) []string {
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 {
		switch strings.ToLower(segments[0]) {
		case "body", "request", "payload", "data", "attributes":
			segments = segments[1:]
			continue
		}
		break
	}
	return segments
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
