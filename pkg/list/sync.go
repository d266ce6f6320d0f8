package list

// syncLock is the reentrancy flag shared by the two mirror observers of one
// synced pair. A mutation propagating in one direction holds the lock, so
// the echo arriving from the other side is dropped instead of mirroring
// forever. The drop is intentional idempotence, not an error.
type syncLock struct {
	locked bool
}

func (k *syncLock) acquire() bool {
	if k.locked {
		return false
	}
	k.locked = true
	return true
}

func (k *syncLock) release() {
	k.locked = false
}

// Sync derives a new list whose elements are transform(source[i], i), kept
// consistent with the source through mirror observers. The derived list owns
// independent backing storage; it never aliases the source's.
//
// When inverse is non-nil the mirror is two-way: mutations of the derived
// list propagate back to the source through inverse. When inverse is nil,
// local mutations of the derived list stay local and are silently not
// propagated.
//
// The index passed to transform and inverse is the index at mapping time;
// structural operations (shift, splice, reverse, swap) move already-mapped
// elements positionally rather than re-mapping them at their new indices.
func Sync[T, U any](source *List[T], transform func(value T, index int) U, inverse func(value U, index int) T) *List[U] {
	derived := New[U]()
	derived.items = make([]U, len(source.items))
	for i, v := range source.items {
		derived.items[i] = transform(v, i)
	}

	lock := &syncLock{}
	source.Observe(mirror(derived, transform, lock), false)
	if inverse != nil {
		derived.Observe(mirror(source, inverse, lock), false)
	}
	return derived
}

// mirror builds the observer that replays mutations of one list onto the
// other side of a synced pair, mapping element values through fn. Every
// handler is guarded by the pair's lock.
func mirror[T, U any](target *List[U], fn func(T, int) U, lock *syncLock) Observer[T] {
	return Observer[T]{
		Set: func(index int, value T) {
			if !lock.acquire() {
				return
			}
			defer lock.release()
			target.Set(index, fn(value, index))
		},
		Resize: func(length int) {
			if length >= target.Len() {
				return
			}
			if !lock.acquire() {
				return
			}
			defer lock.release()
			target.Splice(length, target.Len()-length)
		},
		Push: func(values ...T) {
			if !lock.acquire() {
				return
			}
			defer lock.release()
			base := target.Len()
			mapped := make([]U, len(values))
			for k, v := range values {
				mapped[k] = fn(v, base+k)
			}
			target.Push(mapped...)
		},
		Pop: func() {
			if !lock.acquire() {
				return
			}
			defer lock.release()
			target.Pop()
		},
		Shift: func() {
			if !lock.acquire() {
				return
			}
			defer lock.release()
			target.Shift()
		},
		Unshift: func(values ...T) {
			if !lock.acquire() {
				return
			}
			defer lock.release()
			mapped := make([]U, len(values))
			for k, v := range values {
				mapped[k] = fn(v, k)
			}
			target.Unshift(mapped...)
		},
		Splice: func(start, deleteCount int, values ...T) {
			if !lock.acquire() {
				return
			}
			defer lock.release()
			mapped := make([]U, len(values))
			for k, v := range values {
				mapped[k] = fn(v, start+k)
			}
			target.Splice(start, deleteCount, mapped...)
		},
		Reverse: func() {
			if !lock.acquire() {
				return
			}
			defer lock.release()
			target.Reverse()
		},
		Fill: func(value T, start, end int) {
			if !lock.acquire() {
				return
			}
			defer lock.release()
			for i := start; i < end && i < target.Len(); i++ {
				target.Set(i, fn(value, i))
			}
		},
		Swap: func(i, j int) {
			if !lock.acquire() {
				return
			}
			defer lock.release()
			target.Swap(i, j)
		},
	}
}
