// Package render implements the reactive rendering engine.
//
// Render walks a nested node value and materializes it into a document tree
// between two position references. The accepted shapes, tested in this
// order, are:
//
//   - nil or false: renders nothing.
//   - an observable (see package observe): renders its latest emission, and
//     surgically replaces only its own range on each subsequent emission.
//   - a Renderable: delegates entirely to the value's own render contract.
//   - a slice of values: renders each member in order, flattening recursively.
//   - a *dom.Node: inserted as-is, stable across re-renders.
//   - anything else: rendered as a single text node.
//
// The observable test precedes the slice test: a value that could be both is
// ambiguous and not supported.
//
// There is no diffing and no batching. Change is tracked by construction:
// each observable sub-value holds its own subscription and its own pair of
// position references, and an emission destroys and re-renders exactly the
// range those references bracket, synchronously on the emitter's stack.
//
// # Positions
//
// A PositionRef is a single-slot mutable marker. A render call receives a
// (prev, next) pair: content is inserted immediately before next's node, and
// prev is updated to the first node the call inserted. A call that inserts
// nothing collapses prev onto next so a later insertion still lands at the
// right point.
//
// # Ownership
//
// Every subscription a render pass creates is pushed onto the Registry
// carried by the Context, and attached to the first node of the range it
// governs. Destroying that range therefore releases the subscription, and
// tearing down the whole scope releases whatever is left.
package render
