// Package pkg provides the core libraries for refgraph object graph serialization.
//
// # Overview
//
// Refgraph captures live object graphs — cycles, shared substructure and
// all — into a portable wire form, and restores them with the original
// topology intact. The pkg directory is organized into three main areas:
//
//  1. [serial], [objgraph], [registry] - Domain logic (wire values, graph
//     export/import, type registration)
//  2. [encoding], [store], [render] - Persistence and output (JSON files,
//     snapshot backends, Graphviz topology rendering)
//  3. [errors], [observability], [buildinfo] - Cross-cutting support
//
// # Architecture
//
// The typical data flow through refgraph:
//
//	Live objects
//	         ↓
//	    [objgraph] Writer (discover reachable objects, assign ids)
//	         ↓
//	    [serial] wire values (tagged definitions and references)
//	         ↓
//	    [encoding] JSON / [store] snapshots / [render] DOT
//	         ↓
//	    [objgraph] Reader (allocate, then populate in place)
//	         ↓
//	    Restored objects, sharing and cycles preserved
//
// # Quick Start
//
// Export a graph and restore it from its wire form:
//
//	import (
//	    "github.com/refgraph/refgraph/pkg/objgraph"
//	    "github.com/refgraph/refgraph/pkg/registry"
//	)
//
//	// 1. Register the model types once
//	reg := registry.NewRegistry()
//	registry.Register[Node](reg, "app.Node", nodeConverter{})
//
//	// 2. Export: every object reachable from root is serialized
//	writer := objgraph.NewWriter(reg)
//	out := serial.NewDict()
//	if _, err := writer.GetObjectReference(root); err != nil { ... }
//	if err := writer.Export(out); err != nil { ... }
//
//	// 3. Import: allocate everything, then populate in place
//	reader, err := objgraph.NewReader(reg, out)
//	if err != nil { ... }
//	if err := reader.RestoreGraph(); err != nil { ... }
//
// # Main Packages
//
// [serial] - The wire value: a tagged union over null, bool, real, string,
// list, insertion-ordered dictionary, and object reference, with an optional
// definition tag. Pure data, no graph machinery.
//
// [objgraph] - The two-pass graph walkers. Writer deduplicates by object
// identity and drains a worklist until every reachable object is serialized.
// Reader allocates placeholder instances for all definitions first, then
// populates them, so circular references resolve to live objects.
//
// [registry] - Maps fully-qualified type names to models and converter
// chains. Converters translate between live instances and wire values.
//
// [encoding] - JSON file format for wire values, preserving dictionary
// order and reference identity.
//
// [store] - Snapshot persistence with file, redis, mongo, and null backends.
//
// [render] - Graphviz DOT and SVG rendering of a graph's reference topology.
//
// [serial]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/serial
// [objgraph]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/objgraph
// [registry]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/registry
// [encoding]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/encoding
// [store]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/store
// [render]: https://pkg.go.dev/github.com/refgraph/refgraph/pkg/render
package pkg
