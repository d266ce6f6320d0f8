package render

import "github.com/71/ricochet/pkg/dom"

// DestroyRange removes from the document, and runs teardown on, every node
// from first up to but not including firstExcluded, in document order.
//
// A nil first is a no-op, as is an empty range (first == firstExcluded).
// A nil firstExcluded means "to the end of the parent's children"; in that
// case removal walks backward from the parent's last child until first is
// reached, or, if first is already detached, forward over whatever sibling
// links remain. Nodes already torn down are skipped by construction:
// dom.Node.Destroy is idempotent, so overlapping ranges during reordering
// are safe.
func DestroyRange(first, firstExcluded *dom.Node) {
	if first == nil || first == firstExcluded {
		return
	}
	if firstExcluded == nil {
		if parent := first.Parent(); parent != nil {
			for {
				last := parent.LastChild()
				if last == nil {
					return
				}
				destroyNode(last)
				if last == first {
					return
				}
			}
		}
		// first was already detached by an enclosing teardown; walk forward
		// over the remaining sibling links.
		for n := first; n != nil; {
			next := n.NextSibling()
			destroyNode(n)
			n = next
		}
		return
	}
	for n := firstExcluded.PrevSibling(); n != nil; {
		prev := n.PrevSibling()
		destroyNode(n)
		if n == first {
			return
		}
		n = prev
	}
}

func destroyNode(n *dom.Node) {
	n.Destroy()
	n.Remove()
}
