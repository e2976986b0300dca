package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// Option configures a Filler.
type Option func(*Filler)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithValidator overrides the validator used on every answer.
func WithValidator(v *validation.Validator) Option {
	return func(f *Filler) {
		if v != nil {
			f.validator = v
		}
	}
}

// Filler walks a schema and prompts for every visible field.
type Filler struct {
	driver    Driver
	validator *validation.Validator
}

// New constructs a Filler with the survey driver writing to stdout.
func New(options ...Option) *Filler {
	f := &Filler{
		driver:    NewSurveyDriver(os.Stdout),
		validator: validation.New(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Fill prompts for the fields of s, starting from data (which may be nil),
// and returns the collected data. Values already present become prompt
// defaults.
func (f *Filler) Fill(ctx context.Context, s *schema.Schema, data map[string]any) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	if s == nil {
		return nil, errors.New("prompt: schema is nil")
	}
	if data == nil {
		data = make(map[string]any)
	}
	session := &session{filler: f, schema: s, data: data}
	if err := session.nodes(ctx, s.Children(), nil); err != nil {
		return nil, err
	}
	return data, nil
}

// item identifies the repeater item a template field belongs to.
type item struct {
	repeater string
	index    int
	values   map[string]any
}

type session struct {
	filler *Filler
	schema *schema.Schema
	data   map[string]any
}

// refresh re-evaluates predicates against the current data so nodes hidden
// by earlier answers are skipped.
func (s *session) refresh() {
	s.schema.ValidationFor(s.data, nil)
}

func (s *session) nodes(ctx context.Context, nodes []schema.Node, in *item) error {
	for _, node := range nodes {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.refresh()
		if h, ok := node.(schema.Hideable); ok && h.IsHidden() {
			continue
		}
		if err := s.node(ctx, node, in); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) node(ctx context.Context, node schema.Node, in *item) error {
	switch n := node.(type) {
	case *schema.Field:
		if n.Kind() == schema.KindHidden || n.IsDisabled() {
			return nil
		}
		return s.field(ctx, n, in)
	case *schema.Repeater:
		if in != nil {
			return fmt.Errorf("prompt: nested repeater %q is not supported", n.Name())
		}
		return s.repeater(ctx, n)
	}
	if node.Kind() == schema.KindAction {
		return nil
	}
	return s.nodes(ctx, schema.ChildrenOf(node), in)
}

func (s *session) field(ctx context.Context, field *schema.Field, in *item) error {
	scope := schema.NewState(s.data).Root()
	key := field.Name()
	if in != nil {
		scope = schema.NewState(in.values).Root()
		key = fmt.Sprintf("%s.%d.%s", in.repeater, in.index, field.Name())
	}

	rules := schema.NewValidation()
	rules.Add(key, field.ValidationRules())

	for {
		value, err := s.ask(ctx, field, scope.Get(field.Name()))
		if err != nil {
			return err
		}
		scope.Set(field.Name(), value)

		result, err := s.filler.validator.Validate(rules, s.data)
		if err != nil {
			return fmt.Errorf("prompt: validate %s: %w", key, err)
		}
		if !result.Valid {
			for _, msg := range result.Errors[key] {
				if err := s.filler.driver.Info(ctx, msg); err != nil {
					return err
				}
			}
			continue
		}
		break
	}

	if field.AfterStateUpdatedCallback() == nil {
		return nil
	}
	if in != nil {
		s.schema.DispatchRepeaterCallback(in.repeater, in.index, field.Name(), s.data, nil)
		return nil
	}
	s.schema.DispatchCallback(field.Name(), s.data, nil)
	return nil
}

func (s *session) ask(ctx context.Context, field *schema.Field, current any) (any, error) {
	driver := s.filler.driver
	label := field.GetLabel()
	help := field.GetHelperText()
	if current == nil {
		current = field.GetDefault()
	}

	switch field.Kind() {
	case schema.KindToggle, schema.KindCheckbox:
		def, _ := current.(bool)
		return driver.Confirm(ctx, ConfirmConfig{Message: label, Default: def, Help: help})

	case schema.KindSelect:
		return s.choose(ctx, field, current)

	case schema.KindTextarea:
		return driver.TextArea(ctx, TextAreaConfig{Message: label, Default: stringValue(current), Help: help})
	}

	if help == "" {
		help = field.GetPlaceholder()
	}
	cfg := InputConfig{Message: label, Default: stringValue(current), Help: help}
	if field.GetType() == "password" {
		return driver.Password(ctx, cfg)
	}
	answer, err := driver.Input(ctx, cfg)
	if err != nil {
		return nil, err
	}
	answer = strings.TrimSpace(answer)
	if field.GetType() != "number" {
		return answer, nil
	}
	if answer == "" {
		return nil, nil
	}
	if i, err := strconv.ParseInt(answer, 10, 64); err == nil {
		return i, nil
	}
	if n, err := strconv.ParseFloat(answer, 64); err == nil {
		return n, nil
	}
	// left as text so the numeric rule reports it
	return answer, nil
}

func (s *session) choose(ctx context.Context, field *schema.Field, current any) (any, error) {
	options := field.GetOptions()
	labels := make([]string, len(options))
	for i, option := range options {
		labels[i] = option.Label
		if labels[i] == "" {
			labels[i] = fmt.Sprint(option.Value)
		}
	}
	cfg := SelectConfig{Message: field.GetLabel(), Options: labels, DefaultIndex: -1, Help: field.GetHelperText()}

	if field.IsMultiple() {
		selected := map[string]bool{}
		if list, ok := current.([]any); ok {
			for _, v := range list {
				selected[fmt.Sprint(v)] = true
			}
		}
		for i, option := range options {
			if selected[fmt.Sprint(option.Value)] {
				cfg.Defaults = append(cfg.Defaults, i)
			}
		}
		indices, err := s.filler.driver.MultiSelect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		sort.Ints(indices)
		out := make([]any, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(options) {
				out = append(out, options[idx].Value)
			}
		}
		return out, nil
	}

	for i, option := range options {
		if current != nil && fmt.Sprint(option.Value) == fmt.Sprint(current) {
			cfg.DefaultIndex = i
		}
	}
	idx, err := s.filler.driver.Select(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(options) {
		return nil, nil
	}
	return options[idx].Value, nil
}

func (s *session) repeater(ctx context.Context, rep *schema.Repeater) error {
	scope := schema.NewState(s.data).Root()
	var items []any
	if existing, ok := scope.Get(rep.Name()).([]any); ok {
		items = existing
	}
	if items == nil {
		items = []any{}
	}
	scope.Set(rep.Name(), items)

	for index := 0; ; index++ {
		if limit := rep.GetMaxItems(); limit > 0 && index >= limit {
			break
		}
		if index >= len(items) {
			if index >= rep.GetMinItems() {
				more, err := s.filler.driver.Confirm(ctx, ConfirmConfig{
					Message: fmt.Sprintf("Add %s item %d?", rep.GetLabel(), index+1),
				})
				if err != nil {
					return err
				}
				if !more {
					break
				}
			}
			items = append(items, map[string]any{})
			scope.Set(rep.Name(), items)
		}

		values, ok := items[index].(map[string]any)
		if !ok {
			values = map[string]any{}
			items[index] = values
		}
		if err := s.nodes(ctx, rep.Children(), &item{repeater: rep.Name(), index: index, values: values}); err != nil {
			return err
		}
	}
	return nil
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
