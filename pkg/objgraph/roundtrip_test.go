package objgraph_test

import (
	"testing"

	"github.com/refgraph/refgraph/pkg/objgraph"
	"github.com/refgraph/refgraph/pkg/serial"
)

// exportGraph serializes the given roots and returns the wire dictionary.
func exportGraph(t *testing.T, roots ...*node) (*serial.Value, []serial.ObjectRef) {
	t.Helper()
	w := objgraph.NewWriter(newTestRegistry(t))

	refs := make([]serial.ObjectRef, len(roots))
	for i, root := range roots {
		refV, err := w.GetObjectReference(root)
		if err != nil {
			t.Fatalf("GetObjectReference(root %d): %v", i, err)
		}
		refs[i], _ = refV.AsRef()
	}

	data, err := w.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	return data, refs
}

// restoreGraph imports data and resolves the given references to instances.
func restoreGraph(t *testing.T, data *serial.Value, refs ...serial.ObjectRef) []*node {
	t.Helper()
	r, err := objgraph.NewReader(newTestRegistry(t), data)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if err := r.RestoreGraph(); err != nil {
		t.Fatalf("RestoreGraph: %v", err)
	}

	out := make([]*node, len(refs))
	for i, ref := range refs {
		inst, err := r.GetObjectInstance(nil, serial.Reference(ref.Type, ref.ID))
		if err != nil {
			t.Fatalf("resolve root %d: %v", i, err)
		}
		out[i] = inst.(*node)
	}
	return out
}

func TestRoundTripSharedSubstructure(t *testing.T) {
	shared := &node{name: "shared"}
	left := &node{name: "left", next: shared}
	right := &node{name: "right", next: shared}
	root := &node{name: "root", peers: []*node{left, right}}

	data, refs := exportGraph(t, root)
	restored := restoreGraph(t, data, refs...)[0]

	if len(restored.peers) != 2 {
		t.Fatalf("peers = %d, want 2", len(restored.peers))
	}
	gotLeft, gotRight := restored.peers[0], restored.peers[1]
	if gotLeft.name != "left" || gotRight.name != "right" {
		t.Fatalf("peer names = %q, %q", gotLeft.name, gotRight.name)
	}

	// Both fields referenced the same instance before export, so the
	// corresponding restored fields must reference the same restored instance.
	if gotLeft.next != gotRight.next {
		t.Error("sharing lost: left.next and right.next are distinct instances")
	}
	if gotLeft.next.name != "shared" {
		t.Errorf("shared node name = %q, want %q", gotLeft.next.name, "shared")
	}
}

func TestRoundTripSelfCycle(t *testing.T) {
	loop := &node{name: "ouroboros"}
	loop.next = loop

	// Export must terminate despite the cycle.
	data, refs := exportGraph(t, loop)
	restored := restoreGraph(t, data, refs...)[0]

	if restored.next != restored {
		t.Error("restored self-reference does not point back to itself")
	}
	if restored.name != "ouroboros" {
		t.Errorf("name = %q, want %q", restored.name, "ouroboros")
	}
}

func TestRoundTripMutualCycle(t *testing.T) {
	// Doubly linked pair: a.next = b, b.next = a.
	a := &node{name: "a"}
	b := &node{name: "b"}
	a.next = b
	b.next = a

	data, refs := exportGraph(t, a)

	defs := definitionsFor(t, data, nodeTypeName)
	if len(defs) != 2 {
		t.Fatalf("definitions = %d, want 2", len(defs))
	}

	restored := restoreGraph(t, data, refs...)[0]
	if restored.next.next != restored {
		t.Error("mutual cycle broken after restore")
	}
	if restored.name != "a" || restored.next.name != "b" {
		t.Errorf("names = %q, %q, want a, b", restored.name, restored.next.name)
	}
}

func TestRoundTripMultipleRoots(t *testing.T) {
	shared := &node{name: "shared"}
	rootA := &node{name: "rootA", next: shared}
	rootB := &node{name: "rootB", next: shared}

	data, refs := exportGraph(t, rootA, rootB)
	restored := restoreGraph(t, data, refs...)

	if restored[0].next != restored[1].next {
		t.Error("sharing across roots lost")
	}

	// Three distinct instances, three definitions.
	if defs := definitionsFor(t, data, nodeTypeName); len(defs) != 3 {
		t.Errorf("definitions = %d, want 3", len(defs))
	}
}

func TestRoundTripLongChain(t *testing.T) {
	// Deep chains must not blow the stack: discovery is worklist-driven,
	// not recursive.
	const depth = 10000
	head := &node{name: "head"}
	cur := head
	for i := 0; i < depth; i++ {
		next := &node{name: "link"}
		cur.next = next
		cur = next
	}
	cur.next = head // close the loop for good measure

	data, refs := exportGraph(t, head)
	if defs := definitionsFor(t, data, nodeTypeName); len(defs) != depth+1 {
		t.Fatalf("definitions = %d, want %d", len(defs), depth+1)
	}

	restored := restoreGraph(t, data, refs...)[0]
	steps := 0
	for n := restored.next; n != restored; n = n.next {
		steps++
		if steps > depth+1 {
			t.Fatal("restored chain does not loop back to head")
		}
	}
	if steps != depth {
		t.Errorf("chain length = %d, want %d", steps, depth)
	}
}
