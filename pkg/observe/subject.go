package observe

// Subject is a multicast push source. Observers are notified in subscription
// order, and the observer set is snapshotted before each broadcast so an
// observer may unsubscribe itself (or others) from inside its own callback.
type Subject[T any] struct {
	observers []*subjectEntry[T]
	done      bool
}

type subjectEntry[T any] struct {
	o      Observer[T]
	closed bool
}

// NewSubject creates an empty subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Observe returns the subject's subscribable view: the subject itself.
func (s *Subject[T]) Observe() Stream[T] { return s }

// Subscribe registers an observer. If the subject has already completed, the
// observer's Complete fires synchronously and the returned subscription is
// already closed.
func (s *Subject[T]) Subscribe(o Observer[T]) *Subscription {
	if s.done {
		if o.Complete != nil {
			o.Complete()
		}
		return &Subscription{closed: true}
	}
	entry := &subjectEntry[T]{o: o}
	s.observers = append(s.observers, entry)
	return NewSubscription(func() {
		entry.closed = true
		s.remove(entry)
	})
}

func (s *Subject[T]) remove(entry *subjectEntry[T]) {
	for i, e := range s.observers {
		if e == entry {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// ObserverCount returns the number of active observers.
func (s *Subject[T]) ObserverCount() int { return len(s.observers) }

// Next broadcasts a value to all current observers.
func (s *Subject[T]) Next(value T) {
	if s.done || len(s.observers) == 0 {
		return
	}
	snapshot := append([]*subjectEntry[T](nil), s.observers...)
	for _, e := range snapshot {
		if !e.closed && e.o.Next != nil {
			e.o.Next(value)
		}
	}
}

// Complete ends the stream. All observers' Complete callbacks fire and the
// observer set is dropped; later Next calls are no-ops.
func (s *Subject[T]) Complete() {
	if s.done {
		return
	}
	s.done = true
	snapshot := s.observers
	s.observers = nil
	for _, e := range snapshot {
		if !e.closed && e.o.Complete != nil {
			e.o.Complete()
		}
	}
}

// Done reports whether the subject has completed.
func (s *Subject[T]) Done() bool { return s.done }

// Value is a subject that holds a current value and replays it synchronously
// to every new subscriber.
type Value[T any] struct {
	subject Subject[T]
	current T
}

// NewValue creates a value source with an initial value.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Observe returns the value's subscribable view: the value itself.
func (v *Value[T]) Observe() Stream[T] { return v }

// Subscribe registers an observer and synchronously delivers the current
// value to it.
func (v *Value[T]) Subscribe(o Observer[T]) *Subscription {
	sub := v.subject.Subscribe(o)
	if !sub.Closed() && o.Next != nil {
		o.Next(v.current)
	}
	return sub
}

// Get returns the current value.
func (v *Value[T]) Get() T { return v.current }

// ObserverCount reports how many observers are currently registered.
func (v *Value[T]) ObserverCount() int { return v.subject.ObserverCount() }

// Set stores a new current value and broadcasts it.
func (v *Value[T]) Set(value T) {
	v.current = value
	v.subject.Next(value)
}

// Complete ends the stream. The current value remains readable via Get and
// Latest.
func (v *Value[T]) Complete() { v.subject.Complete() }

// Latest reports the current value without subscribing.
func (v *Value[T]) Latest() (any, bool) { return v.current, true }
