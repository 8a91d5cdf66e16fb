package registry

import (
	"github.com/refgraph/refgraph/pkg/serial"
)

// ReferenceWriter turns a live instance into an object-reference value,
// assigning the instance a stable identity for the current export session.
// It is implemented by objgraph.Writer.
type ReferenceWriter interface {
	// GetObjectReference returns a reference value for the instance,
	// allocating a new per-type id the first time the instance is seen.
	GetObjectReference(instance any) (*serial.Value, error)
}

// InstanceResolver resolves serialized values back to live instances during
// import. It is implemented by objgraph.Reader.
type InstanceResolver interface {
	// GetObjectInstance resolves data to a live instance. Reference values
	// resolve through the reader's placeholder table; inline values allocate
	// a fresh instance via the model. Definition bodies are rejected.
	GetObjectInstance(model Model, data *serial.Value) (any, error)
}

// Converter translates between a live instance and its serialized body.
//
// Export receives the instance and the writer so nested object fields can be
// turned into references. Import receives the raw body, the resolver for
// nested reference lookups, and the already-allocated instance; it must
// populate that instance in place and never substitute a different one,
// since other restored objects may already hold references to it.
type Converter interface {
	Export(instance any, w ReferenceWriter) (*serial.Value, error)
	Import(body *serial.Value, r InstanceResolver, instance any) error
}

// Model constructs blank instances of a registered type. Instances start
// with zero field values; the import phase populates them afterwards.
type Model interface {
	New() any
}

// ModelFunc adapts a function to the Model interface.
type ModelFunc func() any

// New calls f.
func (f ModelFunc) New() any { return f() }
