package observe

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSubject_DeliversInSubscriptionOrder(t *testing.T) {
	s := NewSubject[int]()
	var order []string
	s.Subscribe(Observer[int]{Next: func(int) { order = append(order, "first") }})
	s.Subscribe(Observer[int]{Next: func(int) { order = append(order, "second") }})

	s.Next(1)

	if diff := cmp.Diff([]string{"first", "second"}, order); diff != "" {
		t.Errorf("delivery order mismatch (-want +got):\n%s", diff)
	}
}

func TestSubject_UnsubscribeStopsDelivery(t *testing.T) {
	s := NewSubject[int]()
	got := 0
	sub := s.Subscribe(Observer[int]{Next: func(v int) { got = v }})

	s.Next(1)
	sub.Unsubscribe()
	s.Next(2)

	if got != 1 {
		t.Errorf("got = %d, want 1", got)
	}
	if s.ObserverCount() != 0 {
		t.Errorf("ObserverCount() = %d, want 0", s.ObserverCount())
	}
}

func TestSubject_SelfUnsubscribeDuringEmission(t *testing.T) {
	s := NewSubject[int]()
	var sub *Subscription
	calls := 0
	sub = s.Subscribe(Observer[int]{Next: func(int) {
		calls++
		sub.Unsubscribe()
	}})
	other := 0
	s.Subscribe(Observer[int]{Next: func(int) { other++ }})

	s.Next(1)
	s.Next(2)

	if calls != 1 {
		t.Errorf("self-unsubscribing observer called %d times, want 1", calls)
	}
	if other != 2 {
		t.Errorf("remaining observer called %d times, want 2", other)
	}
}

func TestSubject_Complete(t *testing.T) {
	s := NewSubject[int]()
	completed := false
	s.Subscribe(Observer[int]{Complete: func() { completed = true }})

	s.Complete()
	if !completed {
		t.Error("Complete was not delivered")
	}
	if !s.Done() {
		t.Error("Done() = false after Complete")
	}

	// Subscribing after completion completes synchronously with a closed
	// subscription.
	lateCompleted := false
	sub := s.Subscribe(Observer[int]{Complete: func() { lateCompleted = true }})
	if !lateCompleted {
		t.Error("late subscriber did not receive Complete")
	}
	if !sub.Closed() {
		t.Error("late subscription should be closed")
	}
}

func TestValue_ReplaysCurrent(t *testing.T) {
	v := NewValue(10)
	var got []int
	v.Subscribe(Observer[int]{Next: func(n int) { got = append(got, n) }})
	v.Set(20)

	if diff := cmp.Diff([]int{10, 20}, got); diff != "" {
		t.Errorf("emissions mismatch (-want +got):\n%s", diff)
	}
	if v.Get() != 20 {
		t.Errorf("Get() = %d, want 20", v.Get())
	}
}

func TestValue_Latest(t *testing.T) {
	v := NewValue("x")
	latest, ok := v.Latest()
	if !ok || latest != "x" {
		t.Errorf("Latest() = %v, %v", latest, ok)
	}
}

func TestUnsubscribe_Idempotent(t *testing.T) {
	s := NewSubject[int]()
	sub := s.Subscribe(Observer[int]{})
	sub.Unsubscribe()
	sub.Unsubscribe()
	if !sub.Closed() {
		t.Error("Closed() = false after Unsubscribe")
	}
}

func TestUnify(t *testing.T) {
	v := NewValue[any]("x")
	if _, ok := Unify(v); !ok {
		t.Error("Unify should accept a Value[any]")
	}
	if _, ok := Unify(Erase[int](NewValue(1))); !ok {
		t.Error("Unify should accept an erased stream")
	}
	if _, ok := Unify("plain"); ok {
		t.Error("Unify should reject a plain string")
	}
	if _, ok := Unify(nil); ok {
		t.Error("Unify should reject nil")
	}
}

func TestErase_ForwardsEmissionsAndLatest(t *testing.T) {
	v := NewValue(1)
	stream := Erase[int](v)

	var got []any
	stream.Subscribe(Observer[any]{Next: func(x any) { got = append(got, x) }})
	v.Set(2)

	if diff := cmp.Diff([]any{1, 2}, got); diff != "" {
		t.Errorf("emissions mismatch (-want +got):\n%s", diff)
	}

	snap, ok := stream.(Snapshot)
	if !ok {
		t.Fatal("erased stream should forward Snapshot")
	}
	if latest, have := snap.Latest(); !have || latest != 2 {
		t.Errorf("Latest() = %v, %v", latest, have)
	}
}

func TestRegistry_ReleaseAll(t *testing.T) {
	s := NewSubject[int]()
	r := NewRegistry()
	var order []string
	a := s.Subscribe(Observer[int]{})
	b := s.Subscribe(Observer[int]{})
	aWrapped := NewSubscription(func() { order = append(order, "a"); a.Unsubscribe() })
	bWrapped := NewSubscription(func() { order = append(order, "b"); b.Unsubscribe() })
	r.Push(aWrapped)
	r.Push(bWrapped)

	r.ReleaseAll()

	// Most recent first.
	if diff := cmp.Diff([]string{"b", "a"}, order); diff != "" {
		t.Errorf("release order mismatch (-want +got):\n%s", diff)
	}
	if s.ObserverCount() != 0 {
		t.Errorf("ObserverCount() = %d, want 0", s.ObserverCount())
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistry_UnsubscribeRemovesMembership(t *testing.T) {
	s := NewSubject[int]()
	r := NewRegistry()
	sub := s.Subscribe(Observer[int]{})
	r.Push(sub)

	if !r.Contains(sub) {
		t.Fatal("registry should contain pushed subscription")
	}
	sub.Unsubscribe()
	if r.Contains(sub) {
		t.Error("closed subscription should have removed itself")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistry_IgnoresClosedSubscriptions(t *testing.T) {
	r := NewRegistry()
	sub := NewSubscription(func() {})
	sub.Unsubscribe()
	r.Push(sub)
	r.Push(nil)
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}
