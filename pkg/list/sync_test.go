package list

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func double(v, _ int) int { return v * 2 }

func itoa(v, _ int) string { return strconv.Itoa(v) }

func atoi(s string, _ int) int {
	n, _ := strconv.Atoi(s)
	return n
}

func TestSync_MapsInitialContents(t *testing.T) {
	a := New(1, 3)
	b := Sync(a, double, nil)
	if diff := cmp.Diff([]int{2, 6}, b.Slice()); diff != "" {
		t.Errorf("derived contents (-want +got):\n%s", diff)
	}
}

func TestSync_OneWayPropagation(t *testing.T) {
	a := New(1, 3)
	b := Sync(a, double, nil)

	a.Push(5)
	if diff := cmp.Diff([]int{2, 6, 10}, b.Slice()); diff != "" {
		t.Errorf("after Push (-want +got):\n%s", diff)
	}

	a.Set(0, 7)
	if diff := cmp.Diff([]int{14, 6, 10}, b.Slice()); diff != "" {
		t.Errorf("after Set (-want +got):\n%s", diff)
	}

	// Without an inverse, local mutations of the derived list stay local.
	b.Set(1, 99)
	if diff := cmp.Diff([]int{7, 3, 5}, a.Slice()); diff != "" {
		t.Errorf("source changed by derived mutation (-want +got):\n%s", diff)
	}
}

func TestSync_TwoWayPropagationAcrossSiblings(t *testing.T) {
	a := New(1, 3)
	b := Sync(a, double, nil)
	c := Sync(a, itoa, atoi)

	a.Push(5)
	if diff := cmp.Diff([]int{2, 6, 10}, b.Slice()); diff != "" {
		t.Fatalf("b after Push (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "3", "5"}, c.Slice()); diff != "" {
		t.Fatalf("c after Push (-want +got):\n%s", diff)
	}

	// A mutation of c flows back to a, and from a on to its other mirror b.
	c.Set(1, "9")
	if diff := cmp.Diff([]int{1, 9, 5}, a.Slice()); diff != "" {
		t.Errorf("a after inverse Set (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 18, 10}, b.Slice()); diff != "" {
		t.Errorf("b after inverse Set (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "9", "5"}, c.Slice()); diff != "" {
		t.Errorf("c after inverse Set (-want +got):\n%s", diff)
	}
}

func TestSync_StructuralOperationsMirrored(t *testing.T) {
	a := New(1, 2, 3, 4)
	b := Sync(a, itoa, atoi)

	a.Reverse()
	if diff := cmp.Diff([]string{"4", "3", "2", "1"}, b.Slice()); diff != "" {
		t.Fatalf("after Reverse (-want +got):\n%s", diff)
	}

	a.Swap(0, 3)
	if diff := cmp.Diff([]string{"1", "3", "2", "4"}, b.Slice()); diff != "" {
		t.Fatalf("after Swap (-want +got):\n%s", diff)
	}

	a.Splice(1, 2, 9)
	if diff := cmp.Diff([]string{"1", "9", "4"}, b.Slice()); diff != "" {
		t.Fatalf("after Splice (-want +got):\n%s", diff)
	}

	a.Shift()
	a.Pop()
	if diff := cmp.Diff([]string{"9"}, b.Slice()); diff != "" {
		t.Fatalf("after Shift/Pop (-want +got):\n%s", diff)
	}

	a.Unshift(7)
	if diff := cmp.Diff([]string{"7", "9"}, b.Slice()); diff != "" {
		t.Fatalf("after Unshift (-want +got):\n%s", diff)
	}

	// And back through the inverse.
	b.Reverse()
	if diff := cmp.Diff([]int{9, 7}, a.Slice()); diff != "" {
		t.Errorf("source after derived Reverse (-want +got):\n%s", diff)
	}
}

func TestSync_TransformNotReappliedOnReorder(t *testing.T) {
	calls := 0
	a := New(1, 2)
	b := Sync(a, func(v, _ int) int {
		calls++
		return v * 2
	}, nil)

	if calls != 2 {
		t.Fatalf("transform called %d times for initial mapping, want 2", calls)
	}

	a.Push(3)
	if calls != 3 {
		t.Errorf("transform called %d times after Push, want 3", calls)
	}

	// Reordering and removal move already-mapped elements.
	a.Reverse()
	a.Swap(0, 1)
	a.Pop()
	a.Shift()
	if calls != 3 {
		t.Errorf("transform called %d times after structural ops, want 3", calls)
	}
	if b.Len() != 1 {
		t.Errorf("derived Len() = %d, want 1", b.Len())
	}
}

func TestSync_ChainedDerivation(t *testing.T) {
	a := New(1, 2)
	b := Sync(a, double, nil)
	c := Sync(b, itoa, nil)

	a.Push(3)
	if diff := cmp.Diff([]string{"2", "4", "6"}, c.Slice()); diff != "" {
		t.Errorf("chained derived contents (-want +got):\n%s", diff)
	}
}
