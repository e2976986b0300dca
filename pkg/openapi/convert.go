package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formschema/pkg/loader"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// extensionKey carries per-property overrides, e.g.
//
//	x-formschema: {type: textarea, placeholder: "...", order: 2}
const extensionKey = "x-formschema"

const textareaThreshold = 255

// Components converts the properties of an object schema into node
// definitions, the same way request bodies are converted by Import.
func Components(s *openapi3.Schema) []loader.NodeDef {
	if s == nil {
		return nil
	}
	return properties(s, "")
}

func properties(s *openapi3.Schema, prefix string) []loader.NodeDef {
	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, oj := order(s.Properties[names[i]]), order(s.Properties[names[j]])
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})

	out := make([]loader.NodeDef, 0, len(names))
	for _, name := range names {
		if def, ok := property(name, prefix, s.Properties[name], required[name]); ok {
			out = append(out, def)
		}
	}
	return out
}

func property(name, prefix string, ref *openapi3.SchemaRef, required bool) (loader.NodeDef, bool) {
	if ref == nil || ref.Value == nil || ref.Value.ReadOnly {
		return loader.NodeDef{}, false
	}
	s := ref.Value
	full := prefix + name

	def := loader.NodeDef{
		Type:       schema.KindTextInput,
		Name:       full,
		Label:      s.Title,
		HelperText: s.Description,
		Default:    s.Default,
		Required:   required,
	}

	switch {
	case isType(s, openapi3.TypeObject) && len(s.Properties) > 0:
		heading := s.Title
		if heading == "" {
			heading = schema.LabelFromName(name)
		}
		return loader.NodeDef{
			Type:        schema.KindSection,
			Name:        heading,
			Description: s.Description,
			Schema:      properties(s, full+"."),
		}, true

	case isType(s, openapi3.TypeArray):
		items := s.Items
		if items == nil || items.Value == nil {
			return loader.NodeDef{}, false
		}
		switch {
		case isType(items.Value, openapi3.TypeObject):
			def.Type = schema.KindRepeater
			def.HelperText = s.Description
			def.MinItems = int(s.MinItems)
			if s.MaxItems != nil {
				def.MaxItems = int(*s.MaxItems)
			}
			def.Schema = properties(items.Value, "")
		case len(items.Value.Enum) > 0:
			def.Type = schema.KindSelect
			def.Multiple = true
			def.Options = enumOptions(items.Value.Enum)
			def.Rules = append(def.Rules, "array")
		default:
			return loader.NodeDef{}, false
		}

	case isType(s, openapi3.TypeBoolean):
		def.Type = schema.KindToggle

	case isType(s, openapi3.TypeInteger), isType(s, openapi3.TypeNumber):
		def.InputType = "number"
		if isType(s, openapi3.TypeInteger) {
			def.Rules = append(def.Rules, "integer")
		}
		if s.Min != nil {
			def.Rules = append(def.Rules, "min:"+formatNumber(*s.Min))
		}
		if s.Max != nil {
			def.Rules = append(def.Rules, "max:"+formatNumber(*s.Max))
		}

	default:
		stringField(&def, s)
	}

	applyExtension(&def, s.Extensions)
	return def, true
}

func stringField(def *loader.NodeDef, s *openapi3.Schema) {
	if len(s.Enum) > 0 {
		def.Type = schema.KindSelect
		def.Options = enumOptions(s.Enum)
		values := make([]string, 0, len(s.Enum))
		for _, value := range s.Enum {
			values = append(values, fmt.Sprint(value))
		}
		def.Rules = append(def.Rules, "in:"+strings.Join(values, ","))
		return
	}

	switch s.Format {
	case "email":
		def.InputType = "email"
	case "uri", "url":
		def.InputType = "url"
	case "date", "date-time":
		def.Type = schema.KindDatePicker
	case "password":
		def.InputType = "password"
	}
	if s.MaxLength != nil && *s.MaxLength > textareaThreshold {
		def.Type = schema.KindTextarea
	}
	if isType(s, openapi3.TypeString) && def.Type != schema.KindDatePicker {
		def.Rules = append(def.Rules, "string")
	}
	if s.MinLength > 0 {
		def.Rules = append(def.Rules, fmt.Sprintf("min:%d", s.MinLength))
	}
	if s.MaxLength != nil {
		def.Rules = append(def.Rules, fmt.Sprintf("max:%d", *s.MaxLength))
	}
	if s.Pattern != "" {
		def.Rules = append(def.Rules, "regex:/"+s.Pattern+"/")
	}
}

func applyExtension(def *loader.NodeDef, extensions map[string]any) {
	ext, ok := extensions[extensionKey].(map[string]any)
	if !ok {
		return
	}
	str := func(key string) string {
		value, _ := ext[key].(string)
		return value
	}
	if v := str("type"); v != "" {
		def.Type = v
	}
	if v := str("label"); v != "" {
		def.Label = v
	}
	if v := str("placeholder"); v != "" {
		def.Placeholder = v
	}
	if v := str("helperText"); v != "" {
		def.HelperText = v
	}
	if v := str("prefix"); v != "" {
		def.Prefix = v
	}
	if v := str("suffix"); v != "" {
		def.Suffix = v
	}
	if v := str("afterStateUpdated"); v != "" {
		def.AfterUpdate = v
	}
	if v := str("visibleWhen"); v != "" {
		def.Visible = v
	}
	if v, ok := ext["columnSpan"]; ok {
		def.ColumnSpan = v
	}
}

func order(ref *openapi3.SchemaRef) float64 {
	if ref == nil || ref.Value == nil {
		return 0
	}
	ext, ok := ref.Value.Extensions[extensionKey].(map[string]any)
	if !ok {
		return 0
	}
	switch n := ext["order"].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func enumOptions(values []any) []any {
	out := make([]any, 0, len(values))
	for _, value := range values {
		out = append(out, map[string]any{"value": value, "label": schema.LabelFromName(fmt.Sprint(value))})
	}
	return out
}

func isType(s *openapi3.Schema, typ string) bool {
	return s != nil && s.Type != nil && s.Type.Is(typ)
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
