// Package list provides an observable ordered collection that broadcasts
// fine-grained mutation notifications and can render itself incrementally.
//
// A List owns its backing slice and exposes a closed, enumerated set of
// mutating operations. Observers declare a handler per operation they care
// about; operations an observer does not handle are delivered as a
// synthesized sequence of index-set notifications (plus a length
// notification) that reproduce the same net effect, so an observer only ever
// has to implement Set and Resize to stay consistent.
//
// Derived lists are produced with Sync and kept consistent through mirror
// observers guarded by a per-pair reentrancy lock.
//
// Lists follow the runtime's single-threaded model and are not safe for
// concurrent use.
package list

import "github.com/71/ricochet/pkg/errors"

// Observer receives mutation notifications from a List. Set is the only
// required handler; every other field is optional. When a dedicated handler
// for an operation is absent, the list falls back to synthesizing Set calls
// in increasing index order (a Set at the current length is an append),
// followed by Resize when the length changed.
type Observer[T any] struct {
	// Set reports that index now holds value. Required.
	Set func(index int, value T)
	// Resize reports the new length after it changed. Growth is already
	// visible through Set appends by the time Resize fires; shrinking is
	// only reported here.
	Resize func(length int)
	// Init receives the full current contents when observing with replay.
	Init func(values []T)

	// Dedicated operation handlers.
	Push    func(values ...T)
	Pop     func()
	Shift   func()
	Unshift func(values ...T)
	Splice  func(start, deleteCount int, values ...T)
	Reverse func()
	Fill    func(value T, start, end int)
	Swap    func(i, j int)
}

type registration[T any] struct {
	obs    Observer[T]
	closed bool
}

// List is a mutable ordered collection broadcasting change notifications.
type List[T any] struct {
	items     []T
	observers []*registration[T]
}

// New creates a list with the given initial elements.
func New[T any](items ...T) *List[T] {
	l := &List[T]{}
	l.items = append(l.items, items...)
	return l
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return len(l.items) }

// Get returns the element at index. Out-of-range indices are programmer
// errors and panic with *errors.IndexError.
func (l *List[T]) Get(index int) T {
	if index < 0 || index >= len(l.items) {
		panic(&errors.IndexError{Op: "list.Get", Index: index, Length: len(l.items)})
	}
	return l.items[index]
}

// Slice returns a copy of the backing storage.
func (l *List[T]) Slice() []T {
	return append([]T(nil), l.items...)
}

// ForEach calls fn for each element in index order.
func (l *List[T]) ForEach(fn func(index int, value T)) {
	for i, v := range l.items {
		fn(i, v)
	}
}

// Index returns the first index whose element satisfies pred, or -1.
func (l *List[T]) Index(pred func(T) bool) int {
	for i, v := range l.items {
		if pred(v) {
			return i
		}
	}
	return -1
}

// Observed reports whether the list currently has at least one observer.
// An unobserved list runs no notification machinery.
func (l *List[T]) Observed() bool { return len(l.observers) > 0 }

// Observe registers a change observer and returns a disposer. If
// replayExisting is true, the current contents are delivered synchronously
// as if they had just been inserted: through Init when declared, otherwise
// through per-index Set notifications.
func (l *List[T]) Observe(o Observer[T], replayExisting bool) func() {
	reg := &registration[T]{obs: o}
	l.observers = append(l.observers, reg)
	if replayExisting {
		if o.Init != nil {
			o.Init(l.Slice())
		} else if o.Set != nil {
			for i, v := range l.items {
				o.Set(i, v)
			}
		}
	}
	return func() {
		if reg.closed {
			return
		}
		reg.closed = true
		for i, cur := range l.observers {
			if cur == reg {
				l.observers = append(l.observers[:i], l.observers[i+1:]...)
				return
			}
		}
	}
}

// each delivers a notification to every observer. The observer set is
// snapshotted first so an observer may dispose itself mid-broadcast.
func (l *List[T]) each(fn func(Observer[T])) {
	if len(l.observers) == 0 {
		return
	}
	snapshot := append([]*registration[T](nil), l.observers...)
	for _, reg := range snapshot {
		if !reg.closed {
			fn(reg.obs)
		}
	}
}

// fallback synthesizes Set notifications from index from to the end of the
// backing storage, then Resize when the length changed from oldLen.
func (l *List[T]) fallback(o Observer[T], from, oldLen int) {
	if o.Set != nil {
		for i := from; i < len(l.items); i++ {
			o.Set(i, l.items[i])
		}
	}
	if o.Resize != nil && len(l.items) != oldLen {
		o.Resize(len(l.items))
	}
}

// Set assigns value at index. Assignment at exactly Len appends; any other
// out-of-range index is a programmer error and panics with
// *errors.IndexError.
func (l *List[T]) Set(index int, value T) {
	n := len(l.items)
	if index < 0 || index > n {
		panic(&errors.IndexError{Op: "list.Set", Index: index, Length: n})
	}
	grew := index == n
	if grew {
		l.items = append(l.items, value)
	} else {
		l.items[index] = value
	}
	l.each(func(o Observer[T]) {
		if o.Set != nil {
			o.Set(index, value)
		}
		if grew && o.Resize != nil {
			o.Resize(len(l.items))
		}
	})
}

// Push appends values to the end.
func (l *List[T]) Push(values ...T) {
	if len(values) == 0 {
		return
	}
	oldLen := len(l.items)
	l.items = append(l.items, values...)
	l.each(func(o Observer[T]) {
		if o.Push != nil {
			o.Push(values...)
			return
		}
		l.fallback(o, oldLen, oldLen)
	})
}

// Pop removes and returns the last element. The second result is false when
// the list is empty.
func (l *List[T]) Pop() (T, bool) {
	n := len(l.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	value := l.items[n-1]
	var zero T
	l.items[n-1] = zero
	l.items = l.items[:n-1]
	l.each(func(o Observer[T]) {
		if o.Pop != nil {
			o.Pop()
			return
		}
		l.fallback(o, n-1, n)
	})
	return value, true
}

// Shift removes and returns the first element. The second result is false
// when the list is empty.
func (l *List[T]) Shift() (T, bool) {
	n := len(l.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	value := l.items[0]
	copy(l.items, l.items[1:])
	var zero T
	l.items[n-1] = zero
	l.items = l.items[:n-1]
	l.each(func(o Observer[T]) {
		if o.Shift != nil {
			o.Shift()
			return
		}
		l.fallback(o, 0, n)
	})
	return value, true
}

// Unshift inserts values at the front.
func (l *List[T]) Unshift(values ...T) {
	if len(values) == 0 {
		return
	}
	oldLen := len(l.items)
	l.items = append(append([]T(nil), values...), l.items...)
	l.each(func(o Observer[T]) {
		if o.Unshift != nil {
			o.Unshift(values...)
			return
		}
		l.fallback(o, 0, oldLen)
	})
}

// Splice removes deleteCount elements starting at start, inserts values in
// their place, and returns the removed elements. Out-of-range arguments are
// clamped: a negative start counts from the end, and deleteCount is limited
// to the available tail.
func (l *List[T]) Splice(start, deleteCount int, values ...T) []T {
	n := len(l.items)
	if start < 0 {
		start = n + start
		if start < 0 {
			start = 0
		}
	}
	if start > n {
		start = n
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if deleteCount > n-start {
		deleteCount = n - start
	}
	if deleteCount == 0 && len(values) == 0 {
		return nil
	}
	removed := append([]T(nil), l.items[start:start+deleteCount]...)
	tail := append([]T(nil), l.items[start+deleteCount:]...)
	l.items = append(l.items[:start], append(append([]T(nil), values...), tail...)...)
	normStart, normDelete := start, deleteCount
	l.each(func(o Observer[T]) {
		if o.Splice != nil {
			o.Splice(normStart, normDelete, values...)
			return
		}
		l.fallback(o, normStart, n)
	})
	return removed
}

// Reverse reverses the elements in place.
func (l *List[T]) Reverse() {
	n := len(l.items)
	if n < 2 {
		return
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		l.items[i], l.items[j] = l.items[j], l.items[i]
	}
	l.each(func(o Observer[T]) {
		if o.Reverse != nil {
			o.Reverse()
			return
		}
		l.fallback(o, 0, n)
	})
}

// Fill assigns value to every index in [start, end). Negative bounds count
// from the end; out-of-range bounds are clamped.
func (l *List[T]) Fill(value T, start, end int) {
	n := len(l.items)
	if start < 0 {
		start = n + start
	}
	if end < 0 {
		end = n + end
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return
	}
	for i := start; i < end; i++ {
		l.items[i] = value
	}
	l.each(func(o Observer[T]) {
		if o.Fill != nil {
			o.Fill(value, start, end)
			return
		}
		if o.Set != nil {
			for i := start; i < end; i++ {
				o.Set(i, value)
			}
		}
	})
}

// Swap exchanges the elements at i and j. Out-of-range indices panic with
// *errors.IndexError.
func (l *List[T]) Swap(i, j int) {
	n := len(l.items)
	if i < 0 || i >= n {
		panic(&errors.IndexError{Op: "list.Swap", Index: i, Length: n})
	}
	if j < 0 || j >= n {
		panic(&errors.IndexError{Op: "list.Swap", Index: j, Length: n})
	}
	if i == j {
		return
	}
	l.items[i], l.items[j] = l.items[j], l.items[i]
	l.each(func(o Observer[T]) {
		if o.Swap != nil {
			o.Swap(i, j)
			return
		}
		if o.Set != nil {
			o.Set(i, l.items[i])
			o.Set(j, l.items[j])
		}
	})
}
