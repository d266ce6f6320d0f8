// Package rictest provides a testing harness for the ricochet runtime.
//
// Create a tester, mount a value, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := rictest.NewTesterWithT(t)
//	    count := observe.NewValue[any](0)
//	    tester.Mount(count)
//
//	    count.Set(1)
//	    if got := tester.Texts(); !reflect.DeepEqual(got, []string{"1"}) {
//	        t.Errorf("texts = %v", got)
//	    }
//	}
//
// Cross-package scenarios can also be driven from YAML scripts; see Script.
package rictest

import (
	"testing"

	"github.com/71/ricochet/pkg/dom"
	"github.com/71/ricochet/pkg/observe"
	"github.com/71/ricochet/pkg/render"
)

// Tester owns a container node, a subscription registry, and the position
// pair bracketing the mounted content.
type Tester struct {
	// Container is the element content is mounted into.
	Container *dom.Node
	// Registry collects the subscriptions of the mounted content.
	Registry *observe.Registry

	prev *render.PositionRef
	next *render.PositionRef
}

// NewTester creates a tester with an empty container. Call Unmount when
// done, or use NewTesterWithT instead.
func NewTester() *Tester {
	return &Tester{
		Container: dom.NewElement("root"),
		Registry:  observe.NewRegistry(),
	}
}

// NewTesterWithT creates a tester that unmounts automatically via t.Cleanup.
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Unmount)
	return tester
}

// Mount renders value into the container. A tester mounts once; use
// observables or lists for content that changes.
func (t *Tester) Mount(value render.NodeValue) {
	t.prev, t.next = render.Mount(t.Container, value, t.Registry)
}

// Prev returns the position reference marking the first mounted node.
func (t *Tester) Prev() *render.PositionRef { return t.prev }

// Next returns the position reference marking the end of the mounted range.
func (t *Tester) Next() *render.PositionRef { return t.next }

// Unmount destroys the mounted content and releases every subscription the
// registry accumulated. Safe to call more than once.
func (t *Tester) Unmount() {
	if t.prev != nil {
		render.Unmount(t.prev, t.next, t.Registry)
		t.prev, t.next = nil, nil
		return
	}
	t.Registry.ReleaseAll()
}

// Texts returns the text content of each direct child of the container, in
// document order.
func (t *Tester) Texts() []string {
	children := t.Container.Children()
	out := make([]string, len(children))
	for i, c := range children {
		out[i] = c.Text()
	}
	return out
}

// ChildCount returns the number of direct children of the container.
func (t *Tester) ChildCount() int {
	return t.Container.ChildCount()
}

// ChildNodes returns the direct children of the container.
func (t *Tester) ChildNodes() []*dom.Node {
	return t.Container.Children()
}
