package schema

import (
	"sort"
	"strings"
)

// Field kinds.
const (
	KindTextInput  = "text_input"
	KindTextarea   = "textarea"
	KindSelect     = "select"
	KindToggle     = "toggle"
	KindCheckbox   = "checkbox"
	KindDatePicker = "date_picker"
	KindHidden     = "hidden"
)

// Choice is a select option.
type Choice struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

// Field is a leaf input.
type Field struct {
	Builder[*Field]

	inputType    string
	state        any
	defaultValue any
	placeholder  Value[string]
	required     bool
	rules        []string
	messages     map[string]string
	prefix       string
	suffix       string
	options      []Choice
	multiple     bool
	live         bool
	afterUpdate  Callback
}

// NewField creates a field of the given kind.
func NewField(kind, name string) *Field {
	f := &Field{inputType: "text"}
	f.Init(f, kind, name)
	f.label = Static(LabelFromName(name))
	return f
}

func NewTextInput(name string) *Field  { return NewField(KindTextInput, name) }
func NewTextarea(name string) *Field   { return NewField(KindTextarea, name) }
func NewSelect(name string) *Field     { return NewField(KindSelect, name) }
func NewToggle(name string) *Field     { return NewField(KindToggle, name).Default(false) }
func NewCheckbox(name string) *Field   { return NewField(KindCheckbox, name).Default(false) }
func NewHidden(name string) *Field     { return NewField(KindHidden, name) }
func NewDatePicker(name string) *Field { return NewField(KindDatePicker, name).Type("date") }

// Type sets the HTML input type.
func (f *Field) Type(inputType string) *Field {
	f.inputType = strings.TrimSpace(inputType)
	return f
}

// Email sets the input type and adds the email rule.
func (f *Field) Email() *Field { return f.Type("email").addRule("email") }

// URL sets the input type and adds the url rule.
func (f *Field) URL() *Field { return f.Type("url").addRule("url") }

// Numeric sets the input type and adds the numeric rule.
func (f *Field) Numeric() *Field { return f.Type("number").addRule("numeric") }

// Password sets the input type.
func (f *Field) Password() *Field { return f.Type("password") }

// Tel sets the input type.
func (f *Field) Tel() *Field { return f.Type("tel") }

// Default sets the state used when the data map has no entry.
func (f *Field) Default(value any) *Field {
	f.defaultValue = value
	return f
}

// Placeholder sets a static placeholder.
func (f *Field) Placeholder(text string) *Field {
	f.placeholder = Static(text)
	return f
}

// PlaceholderFunc computes the placeholder from the evaluation context.
func (f *Field) PlaceholderFunc(fn func(*EvaluationContext) string) *Field {
	f.placeholder = Computed(fn)
	return f
}

// Required marks the field required.
func (f *Field) Required(required bool) *Field {
	f.required = required
	return f
}

// Rules appends validation rules. Pipe-separated strings are split, except
// regex rules, whose pattern may contain "|".
func (f *Field) Rules(rules ...string) *Field {
	for _, rule := range rules {
		if RuleName(rule) == "regex" {
			f.addRule(rule)
			continue
		}
		for _, part := range strings.Split(rule, "|") {
			f.addRule(part)
		}
	}
	return f
}

func (f *Field) addRule(rule string) *Field {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return f
	}
	for _, existing := range f.rules {
		if existing == rule {
			return f
		}
	}
	f.rules = append(f.rules, rule)
	return f
}

// ValidationMessage sets the custom message for rule (the rule name without
// parameters, e.g. "min").
func (f *Field) ValidationMessage(rule, message string) *Field {
	if f.messages == nil {
		f.messages = make(map[string]string)
	}
	f.messages[rule] = message
	return f
}

// ValidationMessages merges custom messages keyed by rule name.
func (f *Field) ValidationMessages(messages map[string]string) *Field {
	for rule, message := range messages {
		f.ValidationMessage(rule, message)
	}
	return f
}

// Prefix sets a literal prefix rendered before the input. For url fields
// the prefix is also prepended to the value before validation.
func (f *Field) Prefix(prefix string) *Field {
	f.prefix = prefix
	return f
}

// Suffix sets a literal suffix rendered after the input.
func (f *Field) Suffix(suffix string) *Field {
	f.suffix = suffix
	return f
}

// Options sets the select choices.
func (f *Field) Options(options ...Choice) *Field {
	f.options = append([]Choice(nil), options...)
	return f
}

// OptionsMap sets the select choices from a value→label map, sorted by value.
func (f *Field) OptionsMap(options map[string]string) *Field {
	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]Choice, 0, len(keys))
	for _, key := range keys {
		out = append(out, Choice{Value: key, Label: options[key]})
	}
	f.options = out
	return f
}

// Multiple allows several select choices.
func (f *Field) Multiple(multiple bool) *Field {
	f.multiple = multiple
	return f
}

// Live asks the renderer to post every change back to the server.
func (f *Field) Live(live bool) *Field {
	f.live = live
	return f
}

// AfterStateUpdated registers the callback run when this field changes. The
// field becomes live.
func (f *Field) AfterStateUpdated(cb Callback) *Field {
	f.afterUpdate = cb
	if cb != nil {
		f.live = true
	}
	return f
}

// AfterStateUpdatedCallback implements Reactive.
func (f *Field) AfterStateUpdatedCallback() Callback {
	return f.afterUpdate
}

// Fill implements Fillable.
func (f *Field) Fill(value any, present bool) {
	if present {
		f.state = value
		return
	}
	f.state = f.defaultValue
}

// State returns the current state.
func (f *Field) State() any { return f.state }

// GetDefault returns the configured default.
func (f *Field) GetDefault() any { return f.defaultValue }

// IsRequired reports whether the field is required.
func (f *Field) IsRequired() bool { return f.required }

// GetRules returns the declared rules.
func (f *Field) GetRules() []string { return append([]string(nil), f.rules...) }

// GetPrefix returns the literal prefix.
func (f *Field) GetPrefix() string { return f.prefix }

// GetType returns the HTML input type.
func (f *Field) GetType() string { return f.inputType }

// GetOptions returns the select choices.
func (f *Field) GetOptions() []Choice { return append([]Choice(nil), f.options...) }

// IsMultiple reports whether several choices are allowed.
func (f *Field) IsMultiple() bool { return f.multiple }

// GetPlaceholder resolves the placeholder against the current context.
func (f *Field) GetPlaceholder() string { return f.placeholder.Resolve(f.ctx) }

// ValidationRules implements Validatable.
func (f *Field) ValidationRules() FieldValidation {
	out := FieldValidation{
		Rules:     effectiveRules(f.required, f.rules),
		Messages:  cloneStrings(f.messages),
		Attribute: f.GetLabel(),
	}
	if f.prefix != "" && (f.inputType == "url" || hasRule(f.rules, "url")) {
		out.Prefix = f.prefix
	}
	return out
}

func (f *Field) Props() Props {
	props := f.Component.Props()
	props["type"] = f.inputType
	props["state"] = f.state
	props["default"] = f.defaultValue
	props["placeholder"] = f.placeholder.Resolve(f.ctx)
	props["required"] = f.required
	props["rules"] = effectiveRules(f.required, f.rules)
	props["live"] = f.live
	if f.prefix != "" {
		props["prefix"] = f.prefix
	}
	if f.suffix != "" {
		props["suffix"] = f.suffix
	}
	if f.kind == KindSelect {
		options := f.options
		if options == nil {
			options = []Choice{}
		}
		props["options"] = options
		props["multiple"] = f.multiple
	}
	return props
}

func effectiveRules(required bool, rules []string) []string {
	out := make([]string, 0, len(rules)+1)
	if !required {
		return append(out, rules...)
	}
	out = append(out, "required")
	for _, rule := range rules {
		if RuleName(rule) != "required" {
			out = append(out, rule)
		}
	}
	return out
}

func hasRule(rules []string, name string) bool {
	for _, rule := range rules {
		if RuleName(rule) == name {
			return true
		}
	}
	return false
}

// RuleName strips parameters from a rule: "min:3" becomes "min".
func RuleName(rule string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(rule), ":")
	return name
}

func cloneStrings(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
