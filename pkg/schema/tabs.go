package schema

const (
	KindTabs = "tabs"
	KindTab  = "tab"
)

// Tabs groups children into tabs. ActiveTab is 1-based.
type Tabs struct {
	Builder[*Tabs]

	tabs      []*Tab
	activeTab int
}

func NewTabs(name string) *Tabs {
	t := &Tabs{activeTab: 1}
	t.Init(t, KindTabs, name)
	return t
}

// Tab appends tabs.
func (t *Tabs) Tab(tabs ...*Tab) *Tabs {
	t.tabs = append(t.tabs, tabs...)
	return t
}

// ActiveTab selects the initially open tab (1-based). Values below 1 are
// clamped to 1.
func (t *Tabs) ActiveTab(index int) *Tabs {
	if index < 1 {
		index = 1
	}
	t.activeTab = index
	return t
}

func (t *Tabs) GetActiveTab() int { return t.activeTab }

func (t *Tabs) Tabs() []*Tab { return t.tabs }

func (t *Tabs) Props() Props {
	props := t.Component.Props()
	tabs := make([]Props, 0, len(t.tabs))
	for _, tab := range t.tabs {
		if tab == nil || tab.IsHidden() {
			continue
		}
		tabs = append(tabs, tab.Props())
	}
	props["tabs"] = tabs
	props["activeTab"] = t.activeTab
	return props
}

// Tab is one page of a Tabs node. The label defaults to the name.
type Tab struct {
	Builder[*Tab]

	icon     Value[string]
	badge    Value[string]
	children []Node
}

func NewTab(name string) *Tab {
	t := &Tab{}
	t.Init(t, KindTab, name)
	t.label = Static(name)
	t.id = IDFromName(name)
	return t
}

func (t *Tab) Icon(icon string) *Tab {
	t.icon = Static(icon)
	return t
}

func (t *Tab) Badge(badge string) *Tab {
	t.badge = Static(badge)
	return t
}

// BadgeFunc computes the badge, typically a count, from the context.
func (t *Tab) BadgeFunc(fn func(*EvaluationContext) string) *Tab {
	t.badge = Computed(fn)
	return t
}

func (t *Tab) Schema(nodes ...Node) *Tab {
	t.children = append([]Node(nil), nodes...)
	return t
}

func (t *Tab) GetIcon() string  { return sanitizeIcon(t.icon.Resolve(t.ctx)) }
func (t *Tab) GetBadge() string { return t.badge.Resolve(t.ctx) }

func (t *Tab) Children() []Node { return t.children }

func (t *Tab) Props() Props {
	props := t.Component.Props()
	props["icon"] = t.GetIcon()
	props["badge"] = t.GetBadge()
	props["schema"] = serializeNodes(t.children)
	return props
}
