package render

import "github.com/71/ricochet/pkg/dom"

// PositionRef is a single-slot mutable marker holding a reference to one
// document node, or nothing. Render calls use a (prev, next) pair of these
// to bracket the span of content they own; the renderer that created a ref
// is the only writer.
//
// No validation is performed: callers maintain the invariant that the
// referenced node, if present, is attached and precedes whatever is
// logically next.
type PositionRef struct {
	node *dom.Node
}

// NewPositionRef creates a position reference holding the given node, which
// may be nil.
func NewPositionRef(node *dom.Node) *PositionRef {
	return &PositionRef{node: node}
}

// Node returns the referenced node, or nil.
func (r *PositionRef) Node() *dom.Node { return r.node }

// Set replaces the referenced node.
func (r *PositionRef) Set(node *dom.Node) { r.node = node }
