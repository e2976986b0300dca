package schema

import "strings"

// FieldValidation is what a single node contributes to a Validation.
// Messages are keyed by rule name.
type FieldValidation struct {
	Rules     []string
	Messages  map[string]string
	Attribute string
	Prefix    string
}

// Validation holds the rules of a whole tree, keyed by field path. Messages
// are keyed "field.rule". Repeater item fields are keyed
// "repeater.*.field".
type Validation struct {
	Rules      map[string][]string `json:"rules"`
	Messages   map[string]string   `json:"messages"`
	Attributes map[string]string   `json:"attributes"`
	Prefixes   map[string]string   `json:"prefixes"`
}

// NewValidation returns an empty Validation with initialized maps.
func NewValidation() Validation {
	return Validation{
		Rules:      map[string][]string{},
		Messages:   map[string]string{},
		Attributes: map[string]string{},
		Prefixes:   map[string]string{},
	}
}

// Add merges fv under key. Later calls overwrite earlier ones.
func (v Validation) Add(key string, fv FieldValidation) {
	if len(fv.Rules) > 0 {
		v.Rules[key] = append([]string(nil), fv.Rules...)
	}
	for rule, message := range fv.Messages {
		v.Messages[key+"."+rule] = message
	}
	if fv.Attribute != "" {
		v.Attributes[key] = fv.Attribute
	}
	if fv.Prefix != "" {
		v.Prefixes[key] = fv.Prefix
	}
}

// CollectValidation gathers the rules of every Validatable node in nodes.
func CollectValidation(nodes []Node) Validation {
	return collectValidation(nodes, false)
}

func collectValidation(nodes []Node, skipHidden bool) Validation {
	out, _ := Fold(nodes, NewValidation(), func(acc Validation, node Node, ancestors []Node) (Validation, error) {
		if node.Kind() == KindAction {
			return acc, SkipChildren
		}
		if h, ok := node.(Hideable); ok && skipHidden && h.IsHidden() {
			return acc, SkipChildren
		}
		if v, ok := node.(Validatable); ok {
			acc.Add(validationKey(node, ancestors), v.ValidationRules())
		}
		return acc, nil
	})
	return out
}

func validationKey(node Node, ancestors []Node) string {
	var b strings.Builder
	for _, ancestor := range ancestors {
		if _, ok := ancestor.(*Repeater); ok {
			b.WriteString(ancestor.Name())
			b.WriteString(".*.")
		}
	}
	b.WriteString(node.Name())
	return b.String()
}
