package schema

// KindSection identifies Section nodes.
const KindSection = "section"

// Section groups children under a heading and can be collapsed.
type Section struct {
	Builder[*Section]

	heading     Value[string]
	description Value[string]
	icon        Value[string]
	collapsible bool
	collapsed   bool
	children    []Node
}

// NewSection creates a section. The heading defaults to name and the id is
// derived from it.
func NewSection(name string) *Section {
	s := &Section{heading: Static(name)}
	s.Init(s, KindSection, name)
	s.id = IDFromName(name)
	return s
}

// Heading sets a static heading.
func (s *Section) Heading(heading string) *Section {
	s.heading = Static(heading)
	return s
}

// HeadingFunc computes the heading from the evaluation context.
func (s *Section) HeadingFunc(fn func(*EvaluationContext) string) *Section {
	s.heading = Computed(fn)
	return s
}

// Description sets a static description.
func (s *Section) Description(description string) *Section {
	s.description = Static(description)
	return s
}

// DescriptionFunc computes the description from the evaluation context.
func (s *Section) DescriptionFunc(fn func(*EvaluationContext) string) *Section {
	s.description = Computed(fn)
	return s
}

// Icon sets an icon name or inline SVG markup.
func (s *Section) Icon(icon string) *Section {
	s.icon = Static(icon)
	return s
}

// Collapsible lets the user fold the section.
func (s *Section) Collapsible(collapsible bool) *Section {
	s.collapsible = collapsible
	if !collapsible {
		s.collapsed = false
	}
	return s
}

// Collapsed renders the section folded. It implies Collapsible.
func (s *Section) Collapsed(collapsed bool) *Section {
	s.collapsed = collapsed
	if collapsed {
		s.collapsible = true
	}
	return s
}

// Schema replaces the children.
func (s *Section) Schema(nodes ...Node) *Section {
	s.children = append([]Node(nil), nodes...)
	return s
}

func (s *Section) Children() []Node { return s.children }

func (s *Section) GetHeading() string     { return s.heading.Resolve(s.ctx) }
func (s *Section) GetDescription() string { return s.description.Resolve(s.ctx) }
func (s *Section) GetIcon() string        { return sanitizeIcon(s.icon.Resolve(s.ctx)) }
func (s *Section) IsCollapsible() bool    { return s.collapsible }
func (s *Section) IsCollapsed() bool      { return s.collapsed }

func (s *Section) Props() Props {
	props := s.Component.Props()
	props["heading"] = s.GetHeading()
	props["description"] = s.GetDescription()
	props["icon"] = s.GetIcon()
	props["collapsible"] = s.collapsible
	props["collapsed"] = s.collapsed
	props["schema"] = serializeNodes(s.children)
	if s.ctx != nil && s.ctx.Translator != nil {
		props["expandLabel"] = s.ctx.Translate("section.expand", "Expand")
		props["collapseLabel"] = s.ctx.Translate("section.collapse", "Collapse")
	}
	return props
}
