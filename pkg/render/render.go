package render

import (
	"fmt"

	"github.com/71/ricochet/pkg/dom"
	"github.com/71/ricochet/pkg/errors"
	"github.com/71/ricochet/pkg/observe"
)

// NodeValue is the nested node value accepted anywhere content is rendered.
// See the package documentation for the accepted shapes and their dispatch
// order.
type NodeValue = any

// Renderable is implemented by values that provide their own rendering
// contract, extending the renderer's dispatch without core changes. The
// context carries the ambient registry and the recursion capability
// (Context.Render).
type Renderable interface {
	Render(ctx Context, prev, next *PositionRef)
}

// Context carries the target container and the ambient subscription registry
// through a render call chain.
type Context struct {
	// Parent is the container content is inserted into.
	Parent *dom.Node
	// Registry collects every subscription the render pass creates.
	Registry *observe.Registry
}

// WithParent returns a copy of the context targeting a different container.
func (c Context) WithParent(parent *dom.Node) Context {
	c.Parent = parent
	return c
}

// Render re-enters the renderer with the same ambient registry. Custom
// renderables use it to recurse for their nested values.
func (c Context) Render(value NodeValue, prev, next *PositionRef, observeValue bool) {
	Render(c, value, prev, next, observeValue)
}

// Render materializes value into ctx.Parent immediately before next's node
// and updates prev to the first node it inserted. A call that inserts
// nothing leaves prev untouched (or collapses it onto next, for observable
// values that may insert later).
//
// When observeValue is false and value is an observable, the renderer does
// not install a subscription: it renders the stream's current value once.
// The emission handler of an enclosing subscription uses this only when a
// stream emits itself, so the same stream is never subscribed twice; any
// other observable payload dispatches normally and installs its own
// subscription.
func Render(ctx Context, value NodeValue, prev, next *PositionRef, observeValue bool) {
	if value == nil {
		return
	}
	if b, ok := value.(bool); ok && !b {
		return
	}
	// The observable test must precede the slice test; a value that is both
	// is ambiguous and not supported.
	if stream, ok := observe.Unify(value); ok {
		if ctx.Registry == nil {
			ctx.Registry = observe.NewRegistry()
		}
		if observeValue {
			renderObservable(ctx, stream, prev, next)
		} else {
			renderSnapshot(ctx, stream, prev, next)
		}
		return
	}
	if r, ok := value.(Renderable); ok {
		r.Render(ctx, prev, next)
		return
	}
	switch items := value.(type) {
	case []NodeValue:
		renderSlice(ctx, items, prev, next)
		return
	case []*dom.Node:
		values := make([]NodeValue, len(items))
		for i, n := range items {
			values[i] = n
		}
		renderSlice(ctx, values, prev, next)
		return
	case []string:
		values := make([]NodeValue, len(items))
		for i, s := range items {
			values[i] = s
		}
		renderSlice(ctx, values, prev, next)
		return
	}
	renderLiteral(ctx, value, prev, next)
}

// renderSlice renders members in reverse index order. Insertion is always
// "before next", so reverse iteration lets each member learn its own next
// boundary from the member to its right without a second pass. Members that
// insert nothing leave the boundary unchanged.
func renderSlice(ctx Context, items []NodeValue, prev, next *PositionRef) {
	if len(items) == 0 {
		return
	}
	cur := next
	for i := len(items) - 1; i >= 1; i-- {
		p := &PositionRef{}
		Render(ctx, items[i], p, cur, true)
		if p.Node() != nil && p.Node() != cur.Node() {
			cur = p
		}
	}
	Render(ctx, items[0], prev, cur, true)
}

// renderLiteral performs the only physical insertion for non-observable,
// non-slice, non-renderable values. Nodes are inserted as-is and stay stable
// across re-renders; any other value becomes a single text node.
func renderLiteral(ctx Context, value NodeValue, prev, next *PositionRef) {
	n, ok := value.(*dom.Node)
	if !ok {
		n = dom.NewText(fmt.Sprint(value))
	}
	ctx.Parent.InsertBefore(n, next.Node())
	prev.Set(n)
}

// renderObservable subscribes to the stream and re-renders the bracketed
// range on each emission.
func renderObservable(ctx Context, stream observe.Stream[any], prev, next *PositionRef) {
	var (
		sub       *observe.Subscription
		detachOwn func()
		rendered  bool
		completed bool
	)
	handler := func(value any) {
		// Emissions on a released subscription are ignored: the scope that
		// owned this range has already been torn down.
		if sub != nil && (sub.Closed() || !ctx.Registry.Contains(sub)) {
			return
		}
		// The next marker may reference a node an enclosing teardown already
		// detached; re-rendering there would resurrect content, so the
		// subscription retires itself instead.
		if nx := next.Node(); nx != nil && (nx.Parent() == nil || nx.Destroyed()) {
			errors.Report(errors.New("render.renderObservable", errors.KindRender,
				"emission after the bracketed range was torn down"))
			if sub != nil {
				sub.Unsubscribe()
			}
			return
		}
		// Destroying the old range must not release this very subscription,
		// so ownership is detached from the old first node first.
		if detachOwn != nil {
			detachOwn()
			detachOwn = nil
		}
		if rendered {
			DestroyRange(prev.Node(), next.Node())
			// prev still references a destroyed node; collapse before
			// rendering so the insertion point and the rendered test below
			// are computed against live nodes only.
			prev.Set(next.Node())
		}
		// An observable payload re-enters dispatch and installs its own
		// subscription; only re-wrapping this very stream is suppressed.
		nested, nestedObservable := observe.Unify(value)
		if nestedObservable && nested == stream {
			Render(ctx, value, prev, next, false)
		} else {
			Render(ctx, value, prev, next, true)
		}
		rendered = prev.Node() != nil && prev.Node() != next.Node()
		if rendered && !nestedObservable {
			detachOwn = prev.Node().OwnSubscription(func() {
				if sub != nil {
					sub.Unsubscribe()
				}
			})
		} else if !rendered {
			// Collapse so a later emission inserts at the correct point.
			prev.Set(next.Node())
		}
		// A nested payload subscription owns the shared first node and may
		// destroy it when re-rendering, so this subscription keeps no node
		// attachment of its own there; the registry and the staleness check
		// above retire it instead.
	}
	sub = stream.Subscribe(observe.Observer[any]{
		Next: handler,
		Complete: func() {
			if sub == nil {
				completed = true
				return
			}
			// Completed streams never emit again; detaching here keeps the
			// registry from redundantly releasing the subscription later.
			ctx.Registry.Remove(sub)
		},
	})
	if sub.Closed() {
		completed = true
	}
	if !completed {
		ctx.Registry.Push(sub)
	}
}

// renderSnapshot renders the stream's current value once, without
// subscribing. Streams that cannot report a value synchronously are a
// contract violation: the enclosing subscription needs something to render
// now, and there is no default.
func renderSnapshot(ctx Context, stream observe.Stream[any], prev, next *PositionRef) {
	if snap, ok := stream.(observe.Snapshot); ok {
		if value, have := snap.Latest(); have {
			Render(ctx, value, prev, next, false)
			return
		}
	}
	var first any
	got := false
	probe := stream.Subscribe(observe.Observer[any]{Next: func(value any) {
		if !got {
			got = true
			first = value
		}
	}})
	probe.Unsubscribe()
	if !got {
		panic(errors.New("render.Render", errors.KindContract,
			"observable provided no synchronous value and exposes no current value"))
	}
	Render(ctx, first, prev, next, false)
}

// Mount renders value into parent and returns the position pair bracketing
// the whole render. The registry accumulates every subscription the pass
// creates; pass the same registry to Unmount to release them.
func Mount(parent *dom.Node, value NodeValue, registry *observe.Registry) (prev, next *PositionRef) {
	prev, next = &PositionRef{}, &PositionRef{}
	Render(Context{Parent: parent, Registry: registry}, value, prev, next, true)
	return prev, next
}

// Unmount destroys the bracketed range and releases everything the registry
// accumulated.
func Unmount(prev, next *PositionRef, registry *observe.Registry) {
	DestroyRange(prev.Node(), next.Node())
	if registry != nil {
		registry.ReleaseAll()
	}
}

// H builds an element node and renders children into it. Subscriptions
// created while rendering the children are owned by the element: destroying
// it releases them.
func H(tag string, children ...NodeValue) *dom.Node {
	el := dom.NewElement(tag)
	if len(children) > 0 {
		reg := observe.NewRegistry()
		prev, next := &PositionRef{}, &PositionRef{}
		Render(Context{Parent: el, Registry: reg}, children, prev, next, true)
		el.OwnSubscription(reg.ReleaseAll)
	}
	return el
}
