// Package objgraph turns live object graphs into tree-shaped wire values and
// back, preserving shared substructure and reference cycles.
//
// Arbitrary graphs cannot be serialized by plain recursive descent: a shared
// node would be duplicated and a cycle would recurse forever. This package
// breaks both problems with an explicit two-pass protocol on each side.
//
// # Export
//
// A [Writer] assigns each instance a stable per-type id the first time it is
// referenced and defers the actual serialization onto a worklist. Converters
// serialize object-valued fields by calling [Writer.GetObjectReference],
// which may discover new instances and grow the worklist; [Writer.Export]
// drains it to a fixpoint, so everything transitively reachable from a
// requested root ends up serialized exactly once:
//
//	w := objgraph.NewWriter(reg)
//	root, err := w.GetObjectReference(hub)
//	...
//	data, err := w.Export()
//
// The result is a dictionary keyed by fully qualified type name, each bucket
// holding the definition bodies for that type.
//
// # Import
//
// A [Reader] restores a graph in two phases. Phase 1 ([NewReader]) allocates
// a blank instance for every definition in the input before any field is
// populated — this is what makes references to not-yet-restored objects
// safely resolvable. Phase 2 ([Reader.RestoreGraph]) asks each type's
// converter to populate its instances in place; nested references resolve
// through [Reader.GetObjectInstance] into the phase-1 table.
//
// Converters must never substitute a different instance during import:
// earlier or sibling references already point at the allocated one.
//
// # Sessions
//
// Writer and Reader are single-use, single-threaded sessions. Create one per
// export or import call and discard it afterwards; concurrent serializations
// need independent sessions.
package objgraph
