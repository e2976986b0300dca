package schema

// KindAction identifies Action nodes.
const KindAction = "action"

// Action is a button or link. It carries no state and no rules.
type Action struct {
	Builder[*Action]

	color        string
	icon         string
	url          Value[string]
	openInNewTab bool
}

func NewAction(name string) *Action {
	a := &Action{color: "primary"}
	a.Init(a, KindAction, name)
	a.label = Static(LabelFromName(name))
	return a
}

func (a *Action) Color(color string) *Action {
	a.color = color
	return a
}

func (a *Action) Icon(icon string) *Action {
	a.icon = icon
	return a
}

func (a *Action) URL(url string) *Action {
	a.url = Static(url)
	return a
}

// URLFunc computes the target, e.g. from the bound record.
func (a *Action) URLFunc(fn func(*EvaluationContext) string) *Action {
	a.url = Computed(fn)
	return a
}

func (a *Action) OpenInNewTab(open bool) *Action {
	a.openInNewTab = open
	return a
}

func (a *Action) Props() Props {
	props := a.Component.Props()
	props["color"] = a.color
	props["icon"] = sanitizeIcon(a.icon)
	props["url"] = a.url.Resolve(a.ctx)
	props["openInNewTab"] = a.openInNewTab
	return props
}
