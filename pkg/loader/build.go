package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formschema/pkg/schema"
)

type builder struct {
	schema    string
	callbacks *CallbackRegistry
}

func (b builder) nodes(defs []NodeDef, path string) ([]schema.Node, error) {
	out := make([]schema.Node, 0, len(defs))
	for i, def := range defs {
		node, err := b.node(def, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

func (b builder) node(def NodeDef, path string) (schema.Node, error) {
	kind := strings.TrimSpace(def.Type)
	switch kind {
	case schema.KindSection:
		children, err := b.nodes(def.Schema, path+".schema")
		if err != nil {
			return nil, err
		}
		section := schema.NewSection(def.Name).
			Collapsible(def.Collapsible).
			Collapsed(def.Collapsed).
			Schema(children...)
		if def.Heading != "" {
			section.Heading(def.Heading)
		}
		if def.Description != "" {
			section.Description(def.Description)
		}
		if def.Icon != "" {
			section.Icon(def.Icon)
		}
		return common(section, def), nil

	case schema.KindGrid:
		children, err := b.nodes(def.Schema, path+".schema")
		if err != nil {
			return nil, err
		}
		grid := schema.NewGrid(def.Name).Schema(children...)
		if def.Columns != nil {
			layout, err := columnLayout(def.Columns)
			if err != nil {
				return nil, fmt.Errorf("loader: %s %s: %w", b.schema, path, err)
			}
			grid.Layout(layout)
		}
		return common(grid, def), nil

	case schema.KindSplit:
		start, err := b.nodes(def.Start, path+".start")
		if err != nil {
			return nil, err
		}
		end, err := b.nodes(def.End, path+".end")
		if err != nil {
			return nil, err
		}
		split := schema.NewSplit(def.Name).StartSchema(start...).EndSchema(end...)
		if def.Breakpoint != "" {
			split.FromBreakpoint(def.Breakpoint)
		}
		if def.StartSpan != nil {
			split.StartColumnSpan(def.StartSpan)
		}
		if def.EndSpan != nil {
			split.EndColumnSpan(def.EndSpan)
		}
		return common(split, def), nil

	case schema.KindFieldset:
		children, err := b.nodes(def.Schema, path+".schema")
		if err != nil {
			return nil, err
		}
		return common(schema.NewFieldset(def.Name).Schema(children...), def), nil

	case schema.KindColumns:
		children, err := b.nodes(def.Schema, path+".schema")
		if err != nil {
			return nil, err
		}
		return common(schema.NewColumns(def.Name).Schema(children...), def), nil

	case schema.KindTabs:
		tabs := schema.NewTabs(def.Name)
		for i, tabDef := range def.Tabs {
			tab, err := b.tab(tabDef, fmt.Sprintf("%s.tabs[%d]", path, i))
			if err != nil {
				return nil, err
			}
			tabs.Tab(tab)
		}
		if def.ActiveTab > 0 {
			tabs.ActiveTab(def.ActiveTab)
		}
		return common(tabs, def), nil

	case schema.KindTab:
		return b.tab(def, path)

	case schema.KindRepeater:
		children, err := b.nodes(def.Schema, path+".schema")
		if err != nil {
			return nil, err
		}
		repeater := schema.NewRepeater(def.Name).
			Required(def.Required).
			MinItems(def.MinItems).
			MaxItems(def.MaxItems).
			Schema(children...)
		if def.Reorderable != nil {
			repeater.Reorderable(*def.Reorderable)
		}
		if def.AddActionLabel != "" {
			repeater.AddActionLabel(def.AddActionLabel)
		}
		if items, ok := def.Default.([]any); ok {
			repeater.Default(items)
		}
		return common(repeater, def), nil

	case schema.KindAction:
		action := schema.NewAction(def.Name).OpenInNewTab(def.OpenInNewTab)
		if def.Color != "" {
			action.Color(def.Color)
		}
		if def.Icon != "" {
			action.Icon(def.Icon)
		}
		if def.URL != "" {
			action.URL(def.URL)
		}
		return common(action, def), nil

	case schema.KindTextInput, schema.KindTextarea, schema.KindSelect, schema.KindToggle,
		schema.KindCheckbox, schema.KindDatePicker, schema.KindHidden:
		return b.field(kind, def, path)

	case "":
		return nil, fmt.Errorf("loader: %s %s: node type is required", b.schema, path)
	}
	return nil, fmt.Errorf("loader: %s %s: unknown node type %q", b.schema, path, kind)
}

func (b builder) tab(def NodeDef, path string) (*schema.Tab, error) {
	children, err := b.nodes(def.Schema, path+".schema")
	if err != nil {
		return nil, err
	}
	tab := schema.NewTab(def.Name).Schema(children...)
	if def.Icon != "" {
		tab.Icon(def.Icon)
	}
	if def.Badge != "" {
		tab.Badge(def.Badge)
	}
	return common(tab, def), nil
}

func (b builder) field(kind string, def NodeDef, path string) (*schema.Field, error) {
	var field *schema.Field
	switch kind {
	case schema.KindTextInput:
		field = schema.NewTextInput(def.Name)
	case schema.KindTextarea:
		field = schema.NewTextarea(def.Name)
	case schema.KindSelect:
		field = schema.NewSelect(def.Name)
	case schema.KindToggle:
		field = schema.NewToggle(def.Name)
	case schema.KindCheckbox:
		field = schema.NewCheckbox(def.Name)
	case schema.KindDatePicker:
		field = schema.NewDatePicker(def.Name)
	default:
		field = schema.NewHidden(def.Name)
	}

	switch def.InputType {
	case "":
	case "email":
		field.Email()
	case "url":
		field.URL()
	case "number":
		field.Numeric()
	default:
		field.Type(def.InputType)
	}

	field.Required(def.Required).
		Rules(def.Rules...).
		ValidationMessages(def.Messages).
		Multiple(def.Multiple).
		Live(def.Live)
	if def.Default != nil {
		field.Default(def.Default)
	}
	if def.Placeholder != "" {
		field.Placeholder(def.Placeholder)
	}
	if def.Prefix != "" {
		field.Prefix(def.Prefix)
	}
	if def.Suffix != "" {
		field.Suffix(def.Suffix)
	}
	if def.Options != nil {
		options, err := selectOptions(def.Options)
		if err != nil {
			return nil, fmt.Errorf("loader: %s %s: %w", b.schema, path, err)
		}
		field.Options(options...)
	}
	if def.AfterUpdate != "" {
		cb, ok := b.callbacks.Lookup(def.AfterUpdate)
		if !ok {
			return nil, fmt.Errorf("%w %q in %s %s", ErrUnknownCallback, def.AfterUpdate, b.schema, path)
		}
		field.AfterStateUpdated(cb)
	}
	return common(field, def), nil
}

// builderNode is the subset of schema.Builder every node exposes.
type builderNode[T any] interface {
	ID(string) T
	Label(string) T
	LabelKey(string) T
	HelperText(string) T
	Hidden(bool) T
	HiddenWhen(string) T
	VisibleWhen(string) T
	Disabled(bool) T
	DisabledWhen(string) T
	ColumnSpan(any) T
	ExtraAttributes(map[string]any) T
}

func common[T builderNode[T]](node T, def NodeDef) T {
	if def.ID != "" {
		node.ID(def.ID)
	}
	if def.Label != "" {
		node.Label(def.Label)
	}
	if def.LabelKey != "" {
		node.LabelKey(def.LabelKey)
	}
	if def.HelperText != "" {
		node.HelperText(def.HelperText)
	}
	switch {
	case def.HiddenWhen != "":
		node.HiddenWhen(def.HiddenWhen)
	case def.Visible != "":
		node.VisibleWhen(def.Visible)
	case def.Hidden:
		node.Hidden(true)
	}
	switch {
	case def.DisabledIf != "":
		node.DisabledWhen(def.DisabledIf)
	case def.Disabled:
		node.Disabled(true)
	}
	if def.ColumnSpan != nil {
		node.ColumnSpan(def.ColumnSpan)
	}
	if len(def.Extra) > 0 {
		node.ExtraAttributes(def.Extra)
	}
	return node
}

func columnLayout(raw any) (schema.ColumnLayout, error) {
	switch typed := raw.(type) {
	case int:
		return schema.FixedColumns(typed), nil
	case float64:
		return schema.FixedColumns(int(typed)), nil
	case map[string]any:
		breakpoints := make(map[string]int, len(typed))
		for bp, value := range typed {
			switch n := value.(type) {
			case int:
				breakpoints[bp] = n
			case float64:
				breakpoints[bp] = int(n)
			default:
				return schema.ColumnLayout{}, fmt.Errorf("columns.%s: want a number, got %T", bp, value)
			}
		}
		return schema.ResponsiveColumns(breakpoints), nil
	}
	return schema.ColumnLayout{}, fmt.Errorf("columns: want a number or a breakpoint map, got %T", raw)
}

func selectOptions(raw any) ([]schema.Choice, error) {
	switch typed := raw.(type) {
	case []any:
		out := make([]schema.Choice, 0, len(typed))
		for i, entry := range typed {
			switch option := entry.(type) {
			case map[string]any:
				label := fmt.Sprint(option["label"])
				if option["label"] == nil {
					label = fmt.Sprint(option["value"])
				}
				out = append(out, schema.Choice{Value: option["value"], Label: label})
			case string:
				out = append(out, schema.Choice{Value: option, Label: option})
			default:
				return nil, fmt.Errorf("options[%d]: unsupported %T", i, entry)
			}
		}
		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := make([]schema.Choice, 0, len(keys))
		for _, key := range keys {
			out = append(out, schema.Choice{Value: key, Label: fmt.Sprint(typed[key])})
		}
		return out, nil
	}
	return nil, fmt.Errorf("options: want a list or a map, got %T", raw)
}
