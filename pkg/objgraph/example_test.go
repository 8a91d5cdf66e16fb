package objgraph_test

import (
	"fmt"

	"github.com/refgraph/refgraph/pkg/objgraph"
	"github.com/refgraph/refgraph/pkg/registry"
	"github.com/refgraph/refgraph/pkg/serial"
)

// Example exports a graph with shared substructure and restores it,
// demonstrating that the sharing pattern survives the round trip.
func Example() {
	reg := registry.New()
	registry.Register[node](reg, "test.Node", nodeConverter{})

	shared := &node{name: "config"}
	a := &node{name: "serviceA", next: shared}
	b := &node{name: "serviceB", next: shared}

	w := objgraph.NewWriter(reg)
	refA, _ := w.GetObjectReference(a)
	refB, _ := w.GetObjectReference(b)
	data, _ := w.Export()

	r, _ := objgraph.NewReader(reg, data)
	r.RestoreGraph()

	idA, _ := refA.AsRef()
	idB, _ := refB.AsRef()
	instA, _ := r.GetObjectInstance(nil, serial.Reference(idA.Type, idA.ID))
	instB, _ := r.GetObjectInstance(nil, serial.Reference(idB.Type, idB.ID))

	restoredA := instA.(*node)
	restoredB := instB.(*node)
	fmt.Println("sharing preserved:", restoredA.next == restoredB.next)
	fmt.Println("shared name:", restoredA.next.name)
	// Output:
	// sharing preserved: true
	// shared name: config
}
