package schema

import "errors"

// SkipChildren, returned from a WalkFunc, skips the children of the node
// being visited. It is never returned by Walk.
var SkipChildren = errors.New("schema: skip children")

// WalkFunc visits node; ancestors lists the nodes above it, outermost first.
type WalkFunc func(node Node, ancestors []Node) error

// Walk visits nodes depth-first in declaration order, descending into
// container children and tabs. The first error other than SkipChildren
// stops the walk and is returned.
func Walk(nodes []Node, fn WalkFunc) error {
	return walk(nodes, nil, fn)
}

func walk(nodes []Node, ancestors []Node, fn WalkFunc) error {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		err := fn(node, ancestors)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		children := ChildrenOf(node)
		if len(children) == 0 {
			continue
		}
		path := make([]Node, len(ancestors)+1)
		copy(path, ancestors)
		path[len(ancestors)] = node
		if err := walk(children, path, fn); err != nil {
			return err
		}
	}
	return nil
}

// ChildrenOf returns the direct children of node: container children
// followed by tabs.
func ChildrenOf(node Node) []Node {
	var out []Node
	if container, ok := node.(Container); ok {
		out = append(out, container.Children()...)
	}
	if tabbed, ok := node.(TabContainer); ok {
		for _, tab := range tabbed.Tabs() {
			if tab != nil {
				out = append(out, tab)
			}
		}
	}
	return out
}

// Fold walks nodes threading an accumulator through fn. Returning
// SkipChildren from fn keeps the accumulator and skips the subtree.
func Fold[A any](nodes []Node, acc A, fn func(acc A, node Node, ancestors []Node) (A, error)) (A, error) {
	err := Walk(nodes, func(node Node, ancestors []Node) error {
		next, err := fn(acc, node, ancestors)
		acc = next
		return err
	})
	return acc, err
}

// Find returns the first node, depth-first, for which match returns true.
func Find(nodes []Node, match func(Node) bool) Node {
	var found Node
	_ = Walk(nodes, func(node Node, _ []Node) error {
		if found != nil {
			return SkipChildren
		}
		if match(node) {
			found = node
			return errStop
		}
		return nil
	})
	return found
}

var errStop = errors.New("schema: stop walk")

func serializeNodes(nodes []Node) []Props {
	out := make([]Props, 0, len(nodes))
	for _, node := range nodes {
		if node == nil || isHidden(node) {
			continue
		}
		out = append(out, node.Props())
	}
	return out
}

func visibleNodes(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, node := range nodes {
		if node == nil || isHidden(node) {
			continue
		}
		out = append(out, node)
	}
	return out
}

func isHidden(node Node) bool {
	hideable, ok := node.(Hideable)
	return ok && hideable.IsHidden()
}
