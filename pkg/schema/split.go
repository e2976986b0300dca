package schema

const (
	// KindSplit identifies Split nodes.
	KindSplit = "split"

	DefaultSplitBreakpoint = "md"
	DefaultSplitColumnSpan = "md:col-span-6"
)

// Split shows two child lists side by side from a breakpoint up.
type Split struct {
	Builder[*Split]

	start          []Node
	end            []Node
	fromBreakpoint string
	startSpan      any
	endSpan        any
}

// NewSplit creates a split with the default breakpoint and spans.
func NewSplit(name string) *Split {
	s := &Split{
		fromBreakpoint: DefaultSplitBreakpoint,
		startSpan:      DefaultSplitColumnSpan,
		endSpan:        DefaultSplitColumnSpan,
	}
	s.Init(s, KindSplit, name)
	return s
}

// StartSchema replaces the start (left) children.
func (s *Split) StartSchema(nodes ...Node) *Split {
	s.start = append([]Node(nil), nodes...)
	return s
}

// EndSchema replaces the end (right) children.
func (s *Split) EndSchema(nodes ...Node) *Split {
	s.end = append([]Node(nil), nodes...)
	return s
}

// LeftSchema is an alias for StartSchema.
func (s *Split) LeftSchema(nodes ...Node) *Split { return s.StartSchema(nodes...) }

// RightSchema is an alias for EndSchema.
func (s *Split) RightSchema(nodes ...Node) *Split { return s.EndSchema(nodes...) }

// FromBreakpoint sets the breakpoint from which the halves sit side by side.
func (s *Split) FromBreakpoint(bp string) *Split {
	s.fromBreakpoint = bp
	return s
}

// StartColumnSpan sets the start span (an int or a class such as
// "md:col-span-4").
func (s *Split) StartColumnSpan(span any) *Split {
	s.startSpan = span
	return s
}

// EndColumnSpan sets the end span.
func (s *Split) EndColumnSpan(span any) *Split {
	s.endSpan = span
	return s
}

func (s *Split) GetStartSchema() []Node    { return s.start }
func (s *Split) GetEndSchema() []Node      { return s.end }
func (s *Split) GetLeftSchema() []Node     { return s.start }
func (s *Split) GetRightSchema() []Node    { return s.end }
func (s *Split) GetFromBreakpoint() string { return s.fromBreakpoint }

// Children returns the start children followed by the end children.
func (s *Split) Children() []Node {
	out := make([]Node, 0, len(s.start)+len(s.end))
	out = append(out, s.start...)
	return append(out, s.end...)
}

func (s *Split) Props() Props {
	props := s.Component.Props()
	start := serializeNodes(s.start)
	end := serializeNodes(s.end)
	props["startSchema"] = start
	props["endSchema"] = end
	props["leftSchema"] = start
	props["rightSchema"] = end
	props["fromBreakpoint"] = s.fromBreakpoint
	props["startColumnSpan"] = s.startSpan
	props["endColumnSpan"] = s.endSpan
	return props
}
