// Package observe defines the observable contract the renderer consumes and
// the concrete push sources the runtime ships.
//
// The contract is deliberately small so third-party reactive libraries can
// interoperate through a thin adapter: an Observable exposes a single
// subscribable view, and the view's Subscribe takes an Observer and returns
// a Subscription.
//
// All types in this package follow the runtime's single-threaded model: they
// are not safe for concurrent use, and every emission is delivered
// synchronously on the caller's stack.
package observe

// Observer receives emissions from a stream. Next is invoked once per
// emission; Complete, if set, is invoked once when the stream ends.
type Observer[T any] struct {
	Next     func(value T)
	Complete func()
}

// Stream is the subscribable view of an observable value.
type Stream[T any] interface {
	// Subscribe registers an observer. Depending on the source, the observer
	// may receive an emission synchronously during the call.
	Subscribe(o Observer[T]) *Subscription
}

// Observable is the capability interface for values that can produce a
// subscribable view of themselves. Concrete producers implement it directly;
// external reactive libraries are adapted to it at the boundary.
type Observable[T any] interface {
	Observe() Stream[T]
}

// Snapshot is implemented by streams that can report their latest value
// without a subscription, such as Value.
type Snapshot interface {
	Latest() (any, bool)
}

// Subscription is a handle to an active observer registration.
//
// A subscription may be pushed onto a Registry; when it closes, it removes
// itself from that registry so the registry never releases it a second time.
type Subscription struct {
	closed   bool
	detach   func()
	registry *Registry
}

// NewSubscription wraps an arbitrary teardown function as a subscription, so
// non-stream resources can be owned by a Registry or a node.
func NewSubscription(detach func()) *Subscription {
	return &Subscription{detach: detach}
}

// Closed reports whether the subscription has been released.
func (s *Subscription) Closed() bool {
	return s == nil || s.closed
}

// Unsubscribe releases the subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	if s.detach != nil {
		detach := s.detach
		s.detach = nil
		detach()
	}
	if s.registry != nil {
		reg := s.registry
		s.registry = nil
		reg.Remove(s)
	}
}

// Unify inspects an arbitrary value and, if it exposes the observable
// contract, returns its subscribable view. Values that are already a stream
// are returned as-is. Typed producers reach this shape through Erase.
func Unify(value any) (Stream[any], bool) {
	switch v := value.(type) {
	case Observable[any]:
		return v.Observe(), true
	case Stream[any]:
		return v, true
	default:
		return nil, false
	}
}

// Erase adapts a typed observable to the untyped stream shape the renderer
// dispatches on.
func Erase[T any](src Observable[T]) Stream[any] {
	return erased[T]{inner: src.Observe()}
}

type erased[T any] struct {
	inner Stream[T]
}

func (e erased[T]) Subscribe(o Observer[any]) *Subscription {
	return e.inner.Subscribe(Observer[T]{
		Next: func(v T) {
			if o.Next != nil {
				o.Next(v)
			}
		},
		Complete: o.Complete,
	})
}

// Latest forwards the latest value of the wrapped stream, if it has one.
func (e erased[T]) Latest() (any, bool) {
	if snap, ok := e.inner.(Snapshot); ok {
		return snap.Latest()
	}
	return nil, false
}
