package schema

// KindColumns identifies Columns nodes.
const KindColumns = "columns"

// Columns places each child in its own column.
type Columns struct {
	Builder[*Columns]

	children []Node
}

func NewColumns(name string) *Columns {
	c := &Columns{}
	c.Init(c, KindColumns, name)
	return c
}

func (c *Columns) Schema(nodes ...Node) *Columns {
	c.children = append([]Node(nil), nodes...)
	return c
}

func (c *Columns) Children() []Node { return c.children }

func (c *Columns) Props() Props {
	props := c.Component.Props()
	props["schema"] = serializeNodes(c.children)
	return props
}
