package objgraph_test

import (
	"testing"

	"github.com/refgraph/refgraph/pkg/errors"
	"github.com/refgraph/refgraph/pkg/objgraph"
)

func TestGetObjectReferenceIdempotent(t *testing.T) {
	w := objgraph.NewWriter(newTestRegistry(t))
	n := &node{name: "only"}

	first, err := w.GetObjectReference(n)
	if err != nil {
		t.Fatalf("GetObjectReference: %v", err)
	}
	second, err := w.GetObjectReference(n)
	if err != nil {
		t.Fatalf("GetObjectReference: %v", err)
	}

	refA, _ := first.AsRef()
	refB, _ := second.AsRef()
	if refA != refB {
		t.Errorf("same instance got two ids: %+v vs %+v", refA, refB)
	}

	// Enqueued only once: exactly one definition in the output.
	data, err := w.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if defs := definitionsFor(t, data, nodeTypeName); len(defs) != 1 {
		t.Errorf("definitions = %d, want 1", len(defs))
	}
}

func TestDistinctInstancesGetDistinctIDs(t *testing.T) {
	w := objgraph.NewWriter(newTestRegistry(t))

	// Identical content, distinct identity.
	a := &node{name: "twin"}
	b := &node{name: "twin"}

	refAV, err := w.GetObjectReference(a)
	if err != nil {
		t.Fatalf("GetObjectReference(a): %v", err)
	}
	refBV, err := w.GetObjectReference(b)
	if err != nil {
		t.Fatalf("GetObjectReference(b): %v", err)
	}

	refA, _ := refAV.AsRef()
	refB, _ := refBV.AsRef()
	if refA.ID == refB.ID {
		t.Errorf("distinct instances share id %d", refA.ID)
	}
}

func TestExportDrainsTransitively(t *testing.T) {
	w := objgraph.NewWriter(newTestRegistry(t))

	// a -> b -> c discovered only while draining.
	c := &node{name: "c"}
	b := &node{name: "b", next: c}
	a := &node{name: "a", next: b}

	if _, err := w.GetObjectReference(a); err != nil {
		t.Fatalf("GetObjectReference: %v", err)
	}
	data, err := w.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	defs := definitionsFor(t, data, nodeTypeName)
	if len(defs) != 3 {
		t.Fatalf("definitions = %d, want 3 (transitive closure)", len(defs))
	}

	// Every definition carries a distinct id.
	seen := make(map[int64]bool)
	for _, def := range defs {
		id, err := def.AsDefinition()
		if err != nil {
			t.Fatalf("AsDefinition: %v", err)
		}
		if seen[id] {
			t.Errorf("id %d appears twice", id)
		}
		seen[id] = true
	}
}

func TestExportUnreferencedRootIsEmpty(t *testing.T) {
	w := objgraph.NewWriter(newTestRegistry(t))

	data, err := w.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	entries, err := data.AsDict()
	if err != nil {
		t.Fatalf("AsDict: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("buckets = %d, want 0", len(entries))
	}
}

func TestGetObjectReferenceUnknownType(t *testing.T) {
	w := objgraph.NewWriter(newTestRegistry(t))

	type stranger struct{ x int }
	if _, err := w.GetObjectReference(&stranger{}); !errors.Is(err, errors.ErrCodeUnknownType) {
		t.Errorf("code = %s, want UNKNOWN_TYPE", errors.GetCode(err))
	}
}

func TestGetObjectReferenceUnhashableType(t *testing.T) {
	w := objgraph.NewWriter(newTestRegistry(t))

	// Unregistered instances with uncomparable dynamic types must fail the
	// same way as any other unknown type, not blow up in the identity map.
	unhashable := []struct {
		name     string
		instance any
	}{
		{name: "Slice", instance: []int{1, 2}},
		{name: "Map", instance: map[string]int{"a": 1}},
		{name: "Func", instance: func() {}},
	}

	for _, tt := range unhashable {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := w.GetObjectReference(tt.instance); !errors.Is(err, errors.ErrCodeUnknownType) {
				t.Errorf("code = %s, want UNKNOWN_TYPE", errors.GetCode(err))
			}
		})
	}
}

func TestGetObjectReferenceNil(t *testing.T) {
	w := objgraph.NewWriter(newTestRegistry(t))

	if _, err := w.GetObjectReference(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil: code = %s, want INVALID_INPUT", errors.GetCode(err))
	}
	if _, err := w.GetObjectReference((*node)(nil)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("typed nil: code = %s, want INVALID_INPUT", errors.GetCode(err))
	}
}

func TestWriterNotReusable(t *testing.T) {
	w := objgraph.NewWriter(newTestRegistry(t))
	if _, err := w.Export(); err != nil {
		t.Fatalf("Export: %v", err)
	}

	if _, err := w.Export(); !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("second Export: code = %s, want INVALID_STATE", errors.GetCode(err))
	}
	if _, err := w.GetObjectReference(&node{}); !errors.Is(err, errors.ErrCodeInvalidState) {
		t.Errorf("reference after Export: code = %s, want INVALID_STATE", errors.GetCode(err))
	}
}

func TestExportBodyIsTaggedDefinition(t *testing.T) {
	w := objgraph.NewWriter(newTestRegistry(t))
	refV, err := w.GetObjectReference(&node{name: "solo"})
	if err != nil {
		t.Fatalf("GetObjectReference: %v", err)
	}
	ref, _ := refV.AsRef()

	data, err := w.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	defs := definitionsFor(t, data, nodeTypeName)
	if len(defs) != 1 {
		t.Fatalf("definitions = %d, want 1", len(defs))
	}
	id, err := defs[0].AsDefinition()
	if err != nil {
		t.Fatalf("body is not tagged as a definition: %v", err)
	}
	if id != ref.ID {
		t.Errorf("definition id = %d, want the referenced id %d", id, ref.ID)
	}

	// The body itself is the converter's dictionary, not a reference.
	if !defs[0].IsDict() {
		t.Errorf("definition body kind = %v, want dictionary", defs[0].Kind())
	}
}

func TestExportReferenceValueShape(t *testing.T) {
	w := objgraph.NewWriter(newTestRegistry(t))

	refV, err := w.GetObjectReference(&node{name: "first"})
	if err != nil {
		t.Fatalf("GetObjectReference: %v", err)
	}
	ref, err := refV.AsRef()
	if err != nil {
		t.Fatalf("AsRef: %v", err)
	}
	if ref.Type != nodeTypeName {
		t.Errorf("ref.Type = %q, want %q", ref.Type, nodeTypeName)
	}
	if ref.ID != 1 {
		t.Errorf("ref.ID = %d, want ids to start at 1", ref.ID)
	}
	if refV.IsDefinition() {
		t.Error("a reference value must never carry a definition id")
	}
}
