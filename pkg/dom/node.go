// Package dom provides the headless document tree that the renderer drives.
//
// A Node is either a text node or an element node. Nodes form an ordered
// tree with parent, sibling, and child links, mirroring the navigation a
// renderer needs: insert before a reference node, remove, and walk spans of
// siblings in either direction.
//
// Nodes additionally own resources: subscriptions created while rendering
// content are attached to a node via OwnSubscription, and Destroy releases
// them exactly once. Destroying an already-destroyed node is a no-op, which
// lets overlapping teardown ranges coexist during reordering.
//
// The tree is not safe for concurrent use. It must only be touched from a
// single logical thread of execution.
package dom

import "strings"

// Kind identifies whether a node is a text node or an element node.
type Kind int

const (
	// Text is a leaf node carrying a text payload.
	Text Kind = iota
	// Element is a named node that may have children.
	Element
)

// Node is a single node of the document tree.
//
// The zero value is not useful; use NewText or NewElement.
type Node struct {
	kind Kind
	tag  string
	text string

	parent     *Node
	prevSib    *Node
	nextSib    *Node
	firstChild *Node
	lastChild  *Node

	releases   []func()
	destroyFns []func()
	destroyed  bool
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	return &Node{kind: Text, text: text}
}

// NewElement creates a detached element node with the given tag.
func NewElement(tag string) *Node {
	return &Node{kind: Element, tag: tag}
}

// Kind reports whether the node is a text or element node.
func (n *Node) Kind() Kind { return n.kind }

// Tag returns the element tag, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// Parent returns the node's parent, or nil if detached.
func (n *Node) Parent() *Node { return n.parent }

// PrevSibling returns the previous sibling, or nil.
func (n *Node) PrevSibling() *Node { return n.prevSib }

// NextSibling returns the next sibling, or nil.
func (n *Node) NextSibling() *Node { return n.nextSib }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.firstChild; c != nil; c = c.nextSib {
		count++
	}
	return count
}

// Children returns the direct children in document order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.firstChild; c != nil; c = c.nextSib {
		out = append(out, c)
	}
	return out
}

// SetText replaces the text payload of a text node. No-op for elements.
func (n *Node) SetText(text string) {
	if n.kind == Text {
		n.text = text
	}
}

// Text returns the node's text content: the payload for text nodes, or the
// concatenated text of all descendants for element nodes.
func (n *Node) Text() string {
	if n.kind == Text {
		return n.text
	}
	var sb strings.Builder
	for c := n.firstChild; c != nil; c = c.nextSib {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

// String renders the subtree in an HTML-like debug form.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n.kind == Text {
		sb.WriteString(n.text)
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.tag)
	sb.WriteByte('>')
	for c := n.firstChild; c != nil; c = c.nextSib {
		c.write(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.tag)
	sb.WriteByte('>')
}

// AppendChild detaches child from its current position, if any, and appends
// it as the last child of n.
func (n *Node) AppendChild(child *Node) {
	n.InsertBefore(child, nil)
}

// InsertBefore detaches child from its current position, if any, and inserts
// it into n's children immediately before ref. A nil ref appends at the end,
// as does a ref that is not currently a child of n (a transient state the
// renderer tolerates rather than reports).
func (n *Node) InsertBefore(child, ref *Node) {
	if child == nil || child == n {
		return
	}
	child.Remove()
	if ref != nil && ref.parent != n {
		ref = nil
	}
	child.parent = n
	if ref == nil {
		child.prevSib = n.lastChild
		if n.lastChild != nil {
			n.lastChild.nextSib = child
		} else {
			n.firstChild = child
		}
		n.lastChild = child
		return
	}
	child.nextSib = ref
	child.prevSib = ref.prevSib
	if ref.prevSib != nil {
		ref.prevSib.nextSib = child
	} else {
		n.firstChild = child
	}
	ref.prevSib = child
}

// Remove detaches n from its parent. No-op if already detached.
func (n *Node) Remove() {
	parent := n.parent
	if parent == nil {
		return
	}
	if n.prevSib != nil {
		n.prevSib.nextSib = n.nextSib
	} else {
		parent.firstChild = n.nextSib
	}
	if n.nextSib != nil {
		n.nextSib.prevSib = n.prevSib
	} else {
		parent.lastChild = n.prevSib
	}
	n.parent = nil
	n.prevSib = nil
	n.nextSib = nil
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// OwnSubscription attaches a release function to the node. All attached
// releases run once when the node is destroyed. The returned function
// detaches the release without running it, for callers that move ownership
// elsewhere before the node dies.
func (n *Node) OwnSubscription(release func()) func() {
	if release == nil {
		return func() {}
	}
	if n.destroyed {
		release()
		return func() {}
	}
	index := len(n.releases)
	n.releases = append(n.releases, release)
	return func() {
		if index < len(n.releases) {
			n.releases[index] = nil
		}
	}
}

// OnDestroy registers a callback fired once when the node is destroyed.
func (n *Node) OnDestroy(fn func()) {
	if fn == nil {
		return
	}
	if n.destroyed {
		fn()
		return
	}
	n.destroyFns = append(n.destroyFns, fn)
}

// Destroyed reports whether Destroy has run on this node.
func (n *Node) Destroyed() bool { return n.destroyed }

// Destroy releases the subscriptions the node owns, fires its destroyed
// callbacks, and recurses into children. It does not detach the node from
// its parent. Destroying a node twice is a no-op.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	n.destroyed = true

	// Releases run in reverse registration order.
	for i := len(n.releases) - 1; i >= 0; i-- {
		if n.releases[i] != nil {
			n.releases[i]()
		}
	}
	n.releases = nil

	for _, fn := range n.destroyFns {
		fn()
	}
	n.destroyFns = nil

	for c := n.firstChild; c != nil; c = c.nextSib {
		c.Destroy()
	}
}
