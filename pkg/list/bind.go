package list

import (
	"github.com/71/ricochet/pkg/dom"
	"github.com/71/ricochet/pkg/observe"
	"github.com/71/ricochet/pkg/render"
)

// Bind adapts a list to the renderer's custom-renderable contract. Rendering
// the result materializes every element as its own span of content and keeps
// the spans synchronized with the list's mutations: an index assignment
// re-renders only that element's span, a splice touches only the affected
// sub-range, and reverse and swap physically relocate materialized nodes
// instead of rebuilding them.
//
// Element values pass through the renderer's usual dispatch, so a list of
// *dom.Node, of primitives, or of further nested values all work.
func Bind[T any](l *List[T]) render.Renderable {
	return &binding[T]{list: l}
}

type binding[T any] struct {
	list *List[T]
}

func (b *binding[T]) Render(ctx render.Context, prev, next *render.PositionRef) {
	st := &binder[T]{ctx: ctx, prev: prev, next: next}
	stop := b.list.Observe(Observer[T]{
		Init:    st.init,
		Set:     st.set,
		Resize:  st.resize,
		Splice:  st.splice,
		Reverse: st.reverse,
		Swap:    st.swap,
	}, true)
	sub := observe.NewSubscription(stop)
	if ctx.Registry != nil {
		ctx.Registry.Push(sub)
	}
	if ctx.Parent != nil {
		ctx.Parent.OwnSubscription(sub.Unsubscribe)
	}
}

// binder tracks one span of materialized content per list index. refs[i]
// holds the first node of span i; an empty span collapses onto the first
// node of the following span (or the outer next marker), so duplicate
// references arise transiently during structural operations and are repaired
// afterwards.
type binder[T any] struct {
	ctx  render.Context
	prev *render.PositionRef
	next *render.PositionRef
	refs []*render.PositionRef
}

// refAt returns the position reference marking the start of span i, or the
// outer next marker past the last span.
func (st *binder[T]) refAt(i int) *render.PositionRef {
	if i < len(st.refs) {
		return st.refs[i]
	}
	return st.next
}

// stale reports whether the bound region was already torn down by an
// enclosing teardown. Mutations arriving on a stale binder are ignored.
func (st *binder[T]) stale() bool {
	if nx := st.next.Node(); nx != nil && nx.Parent() == nil {
		return true
	}
	if len(st.refs) > 0 {
		if n := st.refs[0].Node(); n != nil && n.Destroyed() {
			return true
		}
	}
	return false
}

// syncPrev keeps the outer prev marker pointing at the first span node, or
// collapsed onto next when the list renders nothing.
func (st *binder[T]) syncPrev() {
	if len(st.refs) > 0 && st.refs[0].Node() != nil {
		st.prev.Set(st.refs[0].Node())
	} else {
		st.prev.Set(st.next.Node())
	}
}

// repair walks position references from index from down to zero and repoints
// any that reference a node destroyed by the operation that just ran.
// Only refs of empty spans collapsed onto a destroyed neighbor need this.
func (st *binder[T]) repair(from int) {
	for j := from; j >= 0 && j < len(st.refs); j-- {
		n := st.refs[j].Node()
		if n != nil && (n.Destroyed() || n.Parent() == nil) {
			st.refs[j].Set(st.refAt(j + 1).Node())
		}
	}
}

// renderSpan materializes value into a fresh position reference placed
// before nextRef, collapsing the reference onto the boundary when nothing
// was inserted.
func (st *binder[T]) renderSpan(value T, nextRef *render.PositionRef) *render.PositionRef {
	r := render.NewPositionRef(nil)
	st.ctx.Render(any(value), r, nextRef, true)
	if r.Node() == nil {
		r.Set(nextRef.Node())
	}
	return r
}

// spanNodes collects the nodes currently materialized for span i.
func (st *binder[T]) spanNodes(i int) []*dom.Node {
	start := st.refs[i].Node()
	stop := st.refAt(i + 1).Node()
	var out []*dom.Node
	for n := start; n != nil && n != stop; n = n.NextSibling() {
		out = append(out, n)
	}
	return out
}

func (st *binder[T]) init(values []T) {
	st.refs = make([]*render.PositionRef, len(values))
	cur := st.next
	for i := len(values) - 1; i >= 0; i-- {
		st.refs[i] = st.renderSpan(values[i], cur)
		cur = st.refs[i]
	}
	st.syncPrev()
}

func (st *binder[T]) set(index int, value T) {
	if st.stale() {
		return
	}
	if index >= len(st.refs) {
		// Appending: nothing existed at this index before.
		st.refs = append(st.refs, st.renderSpan(value, st.next))
		st.syncPrev()
		return
	}
	nextRef := st.refAt(index + 1)
	first, stop := st.refs[index].Node(), nextRef.Node()
	if first != nil && first != stop {
		render.DestroyRange(first, stop)
	}
	st.refs[index] = st.renderSpan(value, nextRef)
	st.repair(index - 1)
	st.syncPrev()
}

func (st *binder[T]) resize(length int) {
	if st.stale() || length >= len(st.refs) {
		return
	}
	first := st.refs[length].Node()
	render.DestroyRange(first, st.next.Node())
	st.refs = st.refs[:length]
	st.repair(length - 1)
	st.syncPrev()
}

func (st *binder[T]) splice(start, deleteCount int, values ...T) {
	if st.stale() {
		return
	}
	if start > len(st.refs) {
		start = len(st.refs)
	}
	if deleteCount > len(st.refs)-start {
		deleteCount = len(st.refs) - start
	}
	boundary := st.refAt(start + deleteCount)
	if deleteCount > 0 {
		first, stop := st.refs[start].Node(), boundary.Node()
		if first != nil && first != stop {
			render.DestroyRange(first, stop)
		}
	}
	newRefs := make([]*render.PositionRef, len(values))
	cur := boundary
	for k := len(values) - 1; k >= 0; k-- {
		newRefs[k] = st.renderSpan(values[k], cur)
		cur = newRefs[k]
	}
	tail := st.refs[start+deleteCount:]
	st.refs = append(append(append([]*render.PositionRef(nil), st.refs[:start]...), newRefs...), tail...)
	st.repair(start - 1)
	st.syncPrev()
}

// reverse physically reverses the content in a single pass over the
// materialized nodes: spans are re-inserted before the region's end boundary
// in reversed order, moving each node exactly once. No span is destroyed or
// re-rendered.
func (st *binder[T]) reverse() {
	if st.stale() {
		return
	}
	n := len(st.refs)
	if n < 2 {
		return
	}
	spans := make([][]*dom.Node, n)
	for i := range spans {
		spans[i] = st.spanNodes(i)
	}
	parent := st.ctx.Parent
	anchor := st.next.Node()
	for i := n - 1; i >= 0; i-- {
		for _, node := range spans[i] {
			parent.InsertBefore(node, anchor)
		}
	}
	// Position references travel with their spans.
	for l, r := 0, n-1; l < r; l, r = l+1, r-1 {
		st.refs[l], st.refs[r] = st.refs[r], st.refs[l]
	}
	for i := n - 1; i >= 0; i-- {
		if len(spans[n-1-i]) == 0 {
			st.refs[i].Set(st.refAt(i + 1).Node())
		}
	}
	st.syncPrev()
}

// swap physically interchanges two spans by relocating each around the
// other's boundary. Empty spans collapse onto references that may belong to
// the other span, so emptiness is decided before anything moves and every
// reference in the swapped range is re-collapsed afterwards.
func (st *binder[T]) swap(i, j int) {
	if st.stale() || i == j {
		return
	}
	if i > j {
		i, j = j, i
	}
	if j >= len(st.refs) {
		return
	}
	nodesI := st.spanNodes(i)
	nodesJ := st.spanNodes(j)
	empty := make([]bool, j-i+1)
	empty[0] = len(nodesJ) == 0
	empty[j-i] = len(nodesI) == 0
	for k := i + 1; k < j; k++ {
		empty[k-i] = st.refs[k].Node() == st.refAt(k+1).Node()
	}
	parent := st.ctx.Parent

	anchor := st.refs[i].Node()
	if len(nodesI) == 0 {
		anchor = st.refAt(i + 1).Node()
	}
	boundJ := st.refAt(j + 1).Node()
	// When every span in [i, j) is empty, the collapsed anchor is span j's
	// own first node: span j already sits where span i's content would go,
	// and only the references move.
	if len(nodesJ) > 0 && anchor != nodesJ[0] {
		for _, node := range nodesJ {
			parent.InsertBefore(node, anchor)
		}
	}
	for _, node := range nodesI {
		parent.InsertBefore(node, boundJ)
	}

	st.refs[i], st.refs[j] = st.refs[j], st.refs[i]
	for k := j; k >= i; k-- {
		if empty[k-i] {
			st.refs[k].Set(st.refAt(k + 1).Node())
		}
	}
	st.syncPrev()
}
