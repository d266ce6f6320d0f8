package observe

// Registry is a scope-bound collection of subscriptions. A render pass pushes
// every subscription it creates onto the registry of the enclosing scope, so
// that tearing the scope down releases everything the subtree accumulated.
//
// The registry is passed explicitly through the render call chain; there is
// no global fallback.
type Registry struct {
	subs []*Subscription
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Push adds a subscription to the registry. Closed and nil subscriptions are
// ignored. The subscription will remove itself from the registry when it
// closes.
func (r *Registry) Push(s *Subscription) {
	if s == nil || s.closed {
		return
	}
	s.registry = r
	r.subs = append(r.subs, s)
}

// Remove detaches a subscription from the registry without releasing it.
func (r *Registry) Remove(s *Subscription) {
	for i, cur := range r.subs {
		if cur == s {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			if s.registry == r {
				s.registry = nil
			}
			return
		}
	}
}

// Contains reports whether the subscription is still a member. The renderer
// checks membership before acting on an emission, so a stream that fires
// after its scope was torn down is ignored rather than an error.
func (r *Registry) Contains(s *Subscription) bool {
	for _, cur := range r.subs {
		if cur == s {
			return true
		}
	}
	return false
}

// Len returns the number of registered subscriptions.
func (r *Registry) Len() int { return len(r.subs) }

// ReleaseAll unsubscribes every registered subscription, most recent first,
// and empties the registry.
func (r *Registry) ReleaseAll() {
	subs := r.subs
	r.subs = nil
	for i := len(subs) - 1; i >= 0; i-- {
		s := subs[i]
		if s.registry == r {
			s.registry = nil
		}
		s.Unsubscribe()
	}
}
