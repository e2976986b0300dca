package loader

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Definition is one named schema from a document.
type Definition struct {
	Name       string    `mapstructure:"-" json:"name"`
	Label      string    `mapstructure:"label" json:"label,omitempty"`
	Model      string    `mapstructure:"model" json:"model,omitempty"`
	Resource   string    `mapstructure:"resource" json:"resource,omitempty"`
	Components []NodeDef `mapstructure:"components" json:"components"`
	Source     string    `mapstructure:"-" json:"source,omitempty"`
}

// NodeDef describes one node. Type selects the constructor; keys that do not
// apply to the type are ignored when building.
type NodeDef struct {
	Type       string         `mapstructure:"type" json:"type"`
	Name       string         `mapstructure:"name" json:"name,omitempty"`
	ID         string         `mapstructure:"id" json:"id,omitempty"`
	Label      string         `mapstructure:"label" json:"label,omitempty"`
	LabelKey   string         `mapstructure:"labelKey" json:"labelKey,omitempty"`
	HelperText string         `mapstructure:"helperText" json:"helperText,omitempty"`
	Hidden     bool           `mapstructure:"hidden" json:"hidden,omitempty"`
	HiddenWhen string         `mapstructure:"hiddenWhen" json:"hiddenWhen,omitempty"`
	Visible    string         `mapstructure:"visibleWhen" json:"visibleWhen,omitempty"`
	Disabled   bool           `mapstructure:"disabled" json:"disabled,omitempty"`
	DisabledIf string         `mapstructure:"disabledWhen" json:"disabledWhen,omitempty"`
	ColumnSpan any            `mapstructure:"columnSpan" json:"columnSpan,omitempty"`
	Extra      map[string]any `mapstructure:"extraAttributes" json:"extraAttributes,omitempty"`

	// Field
	InputType   string            `mapstructure:"inputType" json:"inputType,omitempty"`
	Default     any               `mapstructure:"default" json:"default,omitempty"`
	Placeholder string            `mapstructure:"placeholder" json:"placeholder,omitempty"`
	Required    bool              `mapstructure:"required" json:"required,omitempty"`
	Rules       []string          `mapstructure:"rules" json:"rules,omitempty"`
	Messages    map[string]string `mapstructure:"messages" json:"messages,omitempty"`
	Prefix      string            `mapstructure:"prefix" json:"prefix,omitempty"`
	Suffix      string            `mapstructure:"suffix" json:"suffix,omitempty"`
	Options     any               `mapstructure:"options" json:"options,omitempty"`
	Multiple    bool              `mapstructure:"multiple" json:"multiple,omitempty"`
	Live        bool              `mapstructure:"live" json:"live,omitempty"`
	AfterUpdate string            `mapstructure:"afterStateUpdated" json:"afterStateUpdated,omitempty"`

	// Containers
	Schema      []NodeDef `mapstructure:"schema" json:"schema,omitempty"`
	Heading     string    `mapstructure:"heading" json:"heading,omitempty"`
	Description string    `mapstructure:"description" json:"description,omitempty"`
	Icon        string    `mapstructure:"icon" json:"icon,omitempty"`
	Collapsible bool      `mapstructure:"collapsible" json:"collapsible,omitempty"`
	Collapsed   bool      `mapstructure:"collapsed" json:"collapsed,omitempty"`
	Columns     any       `mapstructure:"columns" json:"columns,omitempty"`
	Start       []NodeDef `mapstructure:"start" json:"start,omitempty"`
	End         []NodeDef `mapstructure:"end" json:"end,omitempty"`
	Breakpoint  string    `mapstructure:"fromBreakpoint" json:"fromBreakpoint,omitempty"`
	StartSpan   any       `mapstructure:"startColumnSpan" json:"startColumnSpan,omitempty"`
	EndSpan     any       `mapstructure:"endColumnSpan" json:"endColumnSpan,omitempty"`
	Tabs        []NodeDef `mapstructure:"tabs" json:"tabs,omitempty"`
	ActiveTab   int       `mapstructure:"activeTab" json:"activeTab,omitempty"`
	Badge       string    `mapstructure:"badge" json:"badge,omitempty"`

	// Repeater
	MinItems       int    `mapstructure:"minItems" json:"minItems,omitempty"`
	MaxItems       int    `mapstructure:"maxItems" json:"maxItems,omitempty"`
	Reorderable    *bool  `mapstructure:"reorderable" json:"reorderable,omitempty"`
	AddActionLabel string `mapstructure:"addActionLabel" json:"addActionLabel,omitempty"`

	// Action
	Color        string `mapstructure:"color" json:"color,omitempty"`
	URL          string `mapstructure:"url" json:"url,omitempty"`
	OpenInNewTab bool   `mapstructure:"openInNewTab" json:"openInNewTab,omitempty"`
}

type documentFile struct {
	Schemas map[string]Definition `mapstructure:"schemas"`
}

// decodeDefinitions maps a parsed document onto definitions. Unknown keys
// are rejected so typos surface at load time.
func decodeDefinitions(raw map[string]any, location string) (map[string]Definition, error) {
	var doc documentFile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("loader: decoder for %s: %w", location, err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("loader: decode %s: %w", location, err)
	}
	return doc.Schemas, nil
}
