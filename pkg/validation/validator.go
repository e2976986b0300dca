package validation

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formschema/pkg/i18n"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// ErrUnknownRule reports a rule name no checker is registered for.
var ErrUnknownRule = errors.New("validation: unknown rule")

// Issue is a single failed rule.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result captures the outcome of Validate. Errors maps concrete field paths
// ("items.2.qty") to their messages in rule order.
type Result struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors,omitempty"`
	Issues []Issue             `json:"issues,omitempty"`
}

// Input is what a Checker sees for one field.
type Input struct {
	Field   string
	Value   any
	Present bool
	Param   string
	// Numeric is set when the field also carries a numeric or integer rule,
	// switching min/max from length to value comparison.
	Numeric bool
	Data    map[string]any
}

// Checker reports whether in satisfies a rule.
type Checker func(in Input) bool

// Option configures a Validator.
type Option func(*Validator)

// WithTranslator resolves default messages through t ("validation.<rule>").
func WithTranslator(t i18n.Translator, locale string) Option {
	return func(v *Validator) {
		v.translator = t
		v.locale = locale
	}
}

// WithRule registers or replaces a checker. message is the fallback text and
// may use :attribute and :param.
func WithRule(name string, check Checker, message string) Option {
	return func(v *Validator) {
		if name == "" || check == nil {
			return
		}
		v.checkers[name] = check
		if message != "" {
			v.messages[name] = message
		}
	}
}

// Validator applies schema.Validation rule sets.
type Validator struct {
	checkers   map[string]Checker
	messages   map[string]string
	translator i18n.Translator
	locale     string
}

// New returns a Validator with the built-in rules.
func New(opts ...Option) *Validator {
	v := &Validator{
		checkers: builtinCheckers(),
		messages: make(map[string]string, len(defaultMessages)),
	}
	for rule, msg := range defaultMessages {
		v.messages[rule] = msg
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate checks data against rules. Blank values (nil or whitespace) only
// face the required rule, which also rejects empty lists. Unknown rule names
// are collected into a single error wrapping ErrUnknownRule; every known rule
// is still applied.
func (v *Validator) Validate(rules schema.Validation, data map[string]any) (Result, error) {
	result := Result{Valid: true, Errors: map[string][]string{}}
	unknown := map[string]struct{}{}

	keys := make([]string, 0, len(rules.Rules))
	for key := range rules.Rules {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fieldRules := rules.Rules[key]
		numeric := containsRule(fieldRules, "numeric") || containsRule(fieldRules, "integer")

		for _, target := range expand(data, key) {
			value := applyPrefix(target.value, rules.Prefixes[key])
			blank := isBlank(value)

			for _, rule := range fieldRules {
				name, param, _ := strings.Cut(strings.TrimSpace(rule), ":")
				if name == "nullable" {
					continue
				}
				check, ok := v.checkers[name]
				if !ok {
					unknown[name] = struct{}{}
					continue
				}
				if blank && name != "required" {
					continue
				}
				in := Input{
					Field:   target.path,
					Value:   value,
					Present: target.present,
					Param:   param,
					Numeric: numeric,
					Data:    data,
				}
				if check(in) {
					continue
				}
				msg := v.message(rules, key, name, param)
				result.Valid = false
				result.Errors[target.path] = append(result.Errors[target.path], msg)
				result.Issues = append(result.Issues, Issue{Field: target.path, Rule: name, Message: msg})
			}
		}
	}

	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	if len(unknown) > 0 {
		names := make([]string, 0, len(unknown))
		for name := range unknown {
			names = append(names, name)
		}
		sort.Strings(names)
		return result, fmt.Errorf("%w: %s", ErrUnknownRule, strings.Join(names, ", "))
	}
	return result, nil
}

func (v *Validator) message(rules schema.Validation, key, rule, param string) string {
	attribute := rules.Attributes[key]
	if attribute == "" {
		attribute = schema.LabelFromName(key)
	}
	params := map[string]any{
		"attribute": attribute,
		"param":     param,
		rule:        param,
		"values":    strings.ReplaceAll(param, ",", ", "),
	}
	if custom, ok := rules.Messages[key+"."+rule]; ok {
		return i18n.Format(custom, params)
	}
	fallback := v.messages[rule]
	if fallback == "" {
		fallback = "The :attribute field is invalid."
	}
	if v.translator != nil {
		if msg, err := v.translator.Translate(v.locale, "validation."+rule, params); err == nil && msg != "" {
			return msg
		}
	}
	return i18n.Format(fallback, params)
}

type target struct {
	path    string
	value   any
	present bool
}

// expand resolves a rule key against data. Each "*" segment fans out over
// the list (or map) at that position; an empty list yields no targets.
func expand(data map[string]any, key string) []target {
	segments := strings.Split(key, ".")
	out := []target{}
	var walk func(current any, present bool, idx int, path []string)
	walk = func(current any, present bool, idx int, path []string) {
		if idx == len(segments) {
			out = append(out, target{path: strings.Join(path, "."), value: current, present: present})
			return
		}
		segment := segments[idx]
		if segment == "*" {
			for _, child := range children(current) {
				walk(child.value, true, idx+1, append(append([]string(nil), path...), child.key))
			}
			return
		}
		next, ok := stepInto(current, segment)
		walk(next, present && ok, idx+1, append(append([]string(nil), path...), segment))
	}
	if value, ok := data[key]; ok && !strings.Contains(key, "*") {
		return []target{{path: key, value: value, present: true}}
	}
	walk(data, true, 0, nil)
	return out
}

type child struct {
	key   string
	value any
}

func children(current any) []child {
	switch typed := current.(type) {
	case []any:
		out := make([]child, len(typed))
		for i, item := range typed {
			out[i] = child{key: strconv.Itoa(i), value: item}
		}
		return out
	case []map[string]any:
		out := make([]child, len(typed))
		for i, item := range typed {
			out[i] = child{key: strconv.Itoa(i), value: item}
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := make([]child, len(keys))
		for i, key := range keys {
			out[i] = child{key: key, value: typed[key]}
		}
		return out
	}
	return nil
}

func stepInto(current any, segment string) (any, bool) {
	switch typed := current.(type) {
	case map[string]any:
		value, ok := typed[segment]
		return value, ok
	case []any:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= len(typed) {
			return nil, false
		}
		return typed[idx], true
	case []map[string]any:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= len(typed) {
			return nil, false
		}
		return typed[idx], true
	}
	return nil, false
}

func applyPrefix(value any, prefix string) any {
	str, ok := value.(string)
	if !ok || prefix == "" || strings.TrimSpace(str) == "" || strings.HasPrefix(str, prefix) {
		return value
	}
	return prefix + str
}

func containsRule(rules []string, name string) bool {
	for _, rule := range rules {
		if schema.RuleName(rule) == name {
			return true
		}
	}
	return false
}
