package schema

// KindGrid identifies Grid nodes.
const KindGrid = "grid"

// ColumnLayout is either a fixed column count or a per-breakpoint map such
// as {"default": 1, "md": 3}.
type ColumnLayout struct {
	count       int
	breakpoints map[string]int
}

// FixedColumns returns a layout with n columns at every breakpoint.
func FixedColumns(n int) ColumnLayout {
	return ColumnLayout{count: n}
}

// ResponsiveColumns returns a per-breakpoint layout.
func ResponsiveColumns(breakpoints map[string]int) ColumnLayout {
	copied := make(map[string]int, len(breakpoints))
	for bp, n := range breakpoints {
		copied[bp] = n
	}
	return ColumnLayout{breakpoints: copied}
}

// IsResponsive reports whether the layout varies per breakpoint.
func (l ColumnLayout) IsResponsive() bool { return l.breakpoints != nil }

// Value returns the serialized layout: an int or a map[string]int.
func (l ColumnLayout) Value() any {
	if l.breakpoints == nil {
		return l.count
	}
	out := make(map[string]int, len(l.breakpoints))
	for bp, n := range l.breakpoints {
		out[bp] = n
	}
	return out
}

// Grid lays its children out in columns.
type Grid struct {
	Builder[*Grid]

	columns  ColumnLayout
	children []Node
}

// NewGrid creates a single-column grid. An empty name becomes "grid".
func NewGrid(name string) *Grid {
	if name == "" {
		name = KindGrid
	}
	g := &Grid{columns: FixedColumns(1)}
	g.Init(g, KindGrid, name)
	return g
}

// Columns sets a fixed column count.
func (g *Grid) Columns(n int) *Grid {
	g.columns = FixedColumns(n)
	return g
}

// ResponsiveColumns sets per-breakpoint column counts.
func (g *Grid) ResponsiveColumns(breakpoints map[string]int) *Grid {
	g.columns = ResponsiveColumns(breakpoints)
	return g
}

// Layout sets the column layout.
func (g *Grid) Layout(layout ColumnLayout) *Grid {
	g.columns = layout
	return g
}

// Schema replaces the children.
func (g *Grid) Schema(nodes ...Node) *Grid {
	g.children = append([]Node(nil), nodes...)
	return g
}

// GetColumns returns the column layout.
func (g *Grid) GetColumns() ColumnLayout { return g.columns }

func (g *Grid) Children() []Node { return g.children }

func (g *Grid) Props() Props {
	props := g.Component.Props()
	props["columns"] = g.columns.Value()
	props["schema"] = serializeNodes(g.children)
	return props
}
