package objgraph_test

import (
	"fmt"
	"testing"

	"github.com/refgraph/refgraph/pkg/registry"
	"github.com/refgraph/refgraph/pkg/serial"
)

// node is the test type for graph round-trips: a named object that can point
// at one other node and hold an ordered set of peers. Cycles, sharing, and
// doubly linked structures are all expressible with it.
type node struct {
	name  string
	next  *node
	peers []*node
}

// nodeConverter serializes node fields, turning object-valued fields into
// references through the writer and resolving them back through the reader.
type nodeConverter struct{}

func (nodeConverter) Export(instance any, w registry.ReferenceWriter) (*serial.Value, error) {
	n := instance.(*node)

	body := serial.NewDict()
	body.Set("name", serial.String(n.name))

	if n.next != nil {
		ref, err := w.GetObjectReference(n.next)
		if err != nil {
			return nil, err
		}
		body.Set("next", ref)
	} else {
		body.Set("next", serial.Null())
	}

	peers := serial.NewList()
	for _, p := range n.peers {
		ref, err := w.GetObjectReference(p)
		if err != nil {
			return nil, err
		}
		peers.Append(ref)
	}
	body.Set("peers", peers)

	return body, nil
}

func (nodeConverter) Import(body *serial.Value, r registry.InstanceResolver, instance any) error {
	n := instance.(*node)

	nameV, ok, err := body.Get("name")
	if err != nil || !ok {
		return fmt.Errorf("missing name: %w", err)
	}
	if n.name, err = nameV.AsString(); err != nil {
		return err
	}

	nextV, ok, err := body.Get("next")
	if err != nil || !ok {
		return fmt.Errorf("missing next: %w", err)
	}
	if !nextV.IsNull() {
		inst, err := r.GetObjectInstance(nil, nextV)
		if err != nil {
			return err
		}
		n.next = inst.(*node)
	}

	peersV, ok, err := body.Get("peers")
	if err != nil || !ok {
		return fmt.Errorf("missing peers: %w", err)
	}
	items, err := peersV.AsList()
	if err != nil {
		return err
	}
	for _, item := range items {
		inst, err := r.GetObjectInstance(nil, item)
		if err != nil {
			return err
		}
		n.peers = append(n.peers, inst.(*node))
	}

	return nil
}

const nodeTypeName = "test.Node"

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	if _, err := registry.Register[node](reg, nodeTypeName, nodeConverter{}); err != nil {
		t.Fatalf("register node type: %v", err)
	}
	return reg
}

// definitionsFor returns the definition bodies in the bucket for typeName.
func definitionsFor(t *testing.T, data *serial.Value, typeName string) []*serial.Value {
	t.Helper()
	bucket, ok, err := data.Get(typeName)
	if err != nil {
		t.Fatalf("read bucket %s: %v", typeName, err)
	}
	if !ok {
		return nil
	}
	items, err := bucket.AsList()
	if err != nil {
		t.Fatalf("bucket %s is not a list: %v", typeName, err)
	}
	return items
}
