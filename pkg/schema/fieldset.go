package schema

// KindFieldset identifies Fieldset nodes.
const KindFieldset = "fieldset"

// Fieldset draws a bordered group with a legend. The legend is the label.
type Fieldset struct {
	Builder[*Fieldset]

	children []Node
}

func NewFieldset(name string) *Fieldset {
	f := &Fieldset{}
	f.Init(f, KindFieldset, name)
	return f
}

// Legend is an alias for Label.
func (f *Fieldset) Legend(legend string) *Fieldset { return f.Label(legend) }

// LegendFunc is an alias for LabelFunc.
func (f *Fieldset) LegendFunc(fn func(*EvaluationContext) string) *Fieldset {
	return f.LabelFunc(fn)
}

// GetLegend returns the resolved label.
func (f *Fieldset) GetLegend() string { return f.GetLabel() }

func (f *Fieldset) Schema(nodes ...Node) *Fieldset {
	f.children = append([]Node(nil), nodes...)
	return f
}

func (f *Fieldset) Children() []Node { return f.children }

func (f *Fieldset) Props() Props {
	props := f.Component.Props()
	props["legend"] = props["label"]
	props["schema"] = serializeNodes(f.children)
	return props
}
