package objgraph

import (
	"fmt"
	"reflect"
	"time"

	"github.com/refgraph/refgraph/pkg/errors"
	"github.com/refgraph/refgraph/pkg/observability"
	"github.com/refgraph/refgraph/pkg/registry"
	"github.com/refgraph/refgraph/pkg/serial"
)

// instanceKey addresses one serialized instance by type name and per-type id.
type instanceKey struct {
	typeName string
	id       int64
}

// Writer is a single-use export session.
//
// Identity is reference identity, not structural equality: two distinct
// instances with identical field content receive two distinct ids, and the
// same instance requested twice receives the same id. Instances are
// deduplicated through an interface-keyed map, which compares pointers by
// identity — the reason registered models must allocate pointer instances.
//
// A Writer is not safe for concurrent use and cannot be reused after
// [Writer.Export] returns.
type Writer struct {
	reg       *registry.Registry
	nextID    map[string]int64
	ids       map[any]serial.ObjectRef
	instances map[instanceKey]any
	worklist  []instanceKey
	done      bool
}

// NewWriter creates an export session over the given registry.
func NewWriter(reg *registry.Registry) *Writer {
	return &Writer{
		reg:       reg,
		nextID:    make(map[string]int64),
		ids:       make(map[any]serial.ObjectRef),
		instances: make(map[instanceKey]any),
	}
}

// GetObjectReference returns a reference value identifying the instance
// within this session, allocating the next id for its type and scheduling
// the instance for export the first time it is seen. Converters call this
// for every object-valued field, which is how the worklist grows.
//
// Returns UNKNOWN_TYPE if the instance's type is not registered,
// INVALID_INPUT for nil instances, and INVALID_STATE once the session has
// finished exporting.
func (w *Writer) GetObjectReference(instance any) (*serial.Value, error) {
	if w.done {
		return nil, errors.New(errors.ErrCodeInvalidState,
			"writer session is spent: create a new writer per export")
	}
	if instance == nil || isNilPointer(instance) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"cannot reference a nil instance: serialize absent fields as null")
	}

	// Resolve the type before touching the identity map: registered models
	// are always comparable pointers, but an unregistered instance may carry
	// an unhashable dynamic type (slice, map, func) that would panic as a
	// map key.
	typ, err := w.reg.TypeOf(instance)
	if err != nil {
		return nil, err
	}

	if ref, seen := w.ids[instance]; seen {
		return serial.Reference(ref.Type, ref.ID), nil
	}

	w.nextID[typ.Name()]++
	ref := serial.ObjectRef{Type: typ.Name(), ID: w.nextID[typ.Name()]}
	key := instanceKey{typeName: ref.Type, id: ref.ID}

	w.ids[instance] = ref
	w.instances[key] = instance
	w.worklist = append(w.worklist, key)
	observability.Graph().OnInstanceDiscovered(ref.Type, ref.ID)

	return serial.Reference(ref.Type, ref.ID), nil
}

// Export drains the worklist to a fixpoint and returns the accumulated
// definitions as a dictionary keyed by fully qualified type name, each value
// a list of definition bodies.
//
// Each popped instance is serialized by its type's converter; the converter
// may request references to further instances, which keeps the loop running
// until everything transitively reachable has been exported exactly once.
// Worklist order is an implementation detail (LIFO); callers must only rely
// on every referenced instance appearing once.
//
// Export fails fast on the first converter or protocol error and renders the
// session unusable either way.
func (w *Writer) Export() (*serial.Value, error) {
	if w.done {
		return nil, errors.New(errors.ErrCodeInvalidState,
			"writer session is spent: create a new writer per export")
	}

	observability.Graph().OnExportStart()
	start := time.Now()

	out := serial.NewDict()
	definitions := 0
	err := w.drain(out, &definitions)

	w.done = true
	observability.Graph().OnExportComplete(definitions, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (w *Writer) drain(out *serial.Value, definitions *int) error {
	for len(w.worklist) > 0 {
		key := w.worklist[len(w.worklist)-1]
		w.worklist = w.worklist[:len(w.worklist)-1]

		typ, err := w.reg.TypeByName(key.typeName)
		if err != nil {
			return err
		}
		conv, err := typ.Converter()
		if err != nil {
			return err
		}

		body, err := conv.Export(w.instances[key], w)
		if err != nil {
			return fmt.Errorf("export %s id %d: %w", key.typeName, key.id, err)
		}
		def, err := body.Define(key.id)
		if err != nil {
			return err
		}

		bucket, ok, err := out.Get(key.typeName)
		if err != nil {
			return err
		}
		if !ok {
			bucket = serial.NewList()
			if err := out.Set(key.typeName, bucket); err != nil {
				return err
			}
		}
		if err := bucket.Append(def); err != nil {
			return err
		}
		*definitions++
	}
	return nil
}

// isNilPointer reports whether instance is a typed nil (e.g. (*Node)(nil)).
func isNilPointer(instance any) bool {
	v := reflect.ValueOf(instance)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
