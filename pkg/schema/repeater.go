package schema

import "strconv"

// KindRepeater identifies Repeater nodes.
const KindRepeater = "repeater"

// Repeater is a list of items sharing one template. Its state is the list
// stored under its name; template fields are addressed relative to an item.
type Repeater struct {
	Builder[*Repeater]

	template       []Node
	state          any
	defaultValue   any
	required       bool
	minItems       int
	maxItems       int
	reorderable    bool
	addActionLabel Value[string]
}

// NewRepeater creates a repeater whose default state is an empty list.
func NewRepeater(name string) *Repeater {
	r := &Repeater{defaultValue: []any{}, reorderable: true}
	r.Init(r, KindRepeater, name)
	r.label = Static(LabelFromName(name))
	return r
}

// Schema replaces the item template.
func (r *Repeater) Schema(nodes ...Node) *Repeater {
	r.template = append([]Node(nil), nodes...)
	return r
}

func (r *Repeater) Default(items []any) *Repeater {
	r.defaultValue = items
	return r
}

func (r *Repeater) Required(required bool) *Repeater {
	r.required = required
	return r
}

// MinItems sets the minimum item count. Zero disables the bound.
func (r *Repeater) MinItems(n int) *Repeater {
	r.minItems = n
	return r
}

// MaxItems sets the maximum item count. Zero disables the bound.
func (r *Repeater) MaxItems(n int) *Repeater {
	r.maxItems = n
	return r
}

func (r *Repeater) Reorderable(reorderable bool) *Repeater {
	r.reorderable = reorderable
	return r
}

func (r *Repeater) AddActionLabel(label string) *Repeater {
	r.addActionLabel = Static(label)
	return r
}

// Children returns the item template.
func (r *Repeater) Children() []Node { return r.template }

// Fill implements Fillable.
func (r *Repeater) Fill(value any, present bool) {
	if present {
		r.state = value
		return
	}
	r.state = r.defaultValue
}

func (r *Repeater) State() any { return r.state }

// GetMinItems returns the minimum item count, zero when unbounded.
func (r *Repeater) GetMinItems() int { return r.minItems }

// GetMaxItems returns the maximum item count, zero when unbounded.
func (r *Repeater) GetMaxItems() int { return r.maxItems }

// Items returns the state as a list of item maps. Entries that are not maps
// are returned as nil.
func (r *Repeater) Items() []map[string]any {
	switch items := r.state.(type) {
	case []map[string]any:
		return items
	case []any:
		out := make([]map[string]any, len(items))
		for i, item := range items {
			out[i], _ = item.(map[string]any)
		}
		return out
	}
	return nil
}

func (r *Repeater) rules() []string {
	rules := []string{"array"}
	if r.minItems > 0 {
		rules = append(rules, "min:"+strconv.Itoa(r.minItems))
	}
	if r.maxItems > 0 {
		rules = append(rules, "max:"+strconv.Itoa(r.maxItems))
	}
	return effectiveRules(r.required, rules)
}

// ValidationRules implements Validatable.
func (r *Repeater) ValidationRules() FieldValidation {
	return FieldValidation{Rules: r.rules(), Attribute: r.GetLabel()}
}

func (r *Repeater) Props() Props {
	props := r.Component.Props()
	props["state"] = r.state
	props["default"] = r.defaultValue
	props["required"] = r.required
	props["rules"] = r.rules()
	props["schema"] = serializeNodes(r.template)
	props["minItems"] = r.minItems
	props["maxItems"] = r.maxItems
	props["reorderable"] = r.reorderable
	props["addActionLabel"] = r.addActionLabel.Resolve(r.ctx)
	if !r.addActionLabel.IsSet() {
		props["addActionLabel"] = r.ctx.Translate("repeater.add_item", "Add item")
	}
	return props
}
