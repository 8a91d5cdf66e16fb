package registry

import (
	"reflect"

	"github.com/refgraph/refgraph/pkg/errors"
)

// Type is the runtime handle for a registered type: its fully qualified wire
// name, the model that allocates blank instances, and the ordered converter
// chain responsible for instances of exactly this type.
//
// Type handles are created by [Registry.Register] and shared; they are
// immutable after registration.
type Type struct {
	name   string
	goType reflect.Type
	model  Model
	chain  []Converter
}

// Name returns the fully qualified wire name of the type.
func (t *Type) Name() string { return t.name }

// Model returns the blank-instance factory for the type.
func (t *Type) Model() Model { return t.model }

// GoType returns the dynamic Go type of instances created by the model.
func (t *Type) GoType() reflect.Type { return t.goType }

// Converter returns the first converter in the chain.
// Returns an UNSUPPORTED error if no converter was registered.
func (t *Type) Converter() (Converter, error) {
	if len(t.chain) == 0 {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"type %q has no converter registered", t.name)
	}
	return t.chain[0], nil
}

// ConverterAfter returns the converter following prev in the chain, allowing
// a wrapping converter to resume dispatch past itself.
//
// Returns INVALID_STATE if prev is not part of the chain, and UNSUPPORTED if
// prev is the last link.
func (t *Type) ConverterAfter(prev Converter) (Converter, error) {
	for i, c := range t.chain {
		if c != prev {
			continue
		}
		if i+1 >= len(t.chain) {
			return nil, errors.New(errors.ErrCodeUnsupported,
				"type %q has no converter after position %d", t.name, i)
		}
		return t.chain[i+1], nil
	}
	return nil, errors.New(errors.ErrCodeInvalidState,
		"converter is not part of the chain for type %q", t.name)
}

// Registry maps fully qualified type names and Go runtime types to their
// registered handles. The zero value is not usable; use [New].
//
// Registration is expected to happen once at startup; Registry is not safe
// for concurrent mutation.
type Registry struct {
	byName   map[string]*Type
	byGoType map[reflect.Type]*Type
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byName:   make(map[string]*Type),
		byGoType: make(map[reflect.Type]*Type),
	}
}

// Register adds a type under its fully qualified wire name with the given
// model and converter chain, in dispatch order.
//
// The model must allocate pointer instances — the writer deduplicates by
// instance identity, which only pointers provide. Returns INVALID_INPUT for
// an empty name, nil model, non-pointer model output, or a name or Go type
// that is already registered.
func (r *Registry) Register(name string, model Model, convs ...Converter) (*Type, error) {
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "type name must not be empty")
	}
	if model == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "type %q needs a model", name)
	}
	if _, exists := r.byName[name]; exists {
		return nil, errors.New(errors.ErrCodeInvalidInput, "type %q is already registered", name)
	}

	probe := model.New()
	goType := reflect.TypeOf(probe)
	if goType == nil || goType.Kind() != reflect.Pointer {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"model for type %q must allocate pointer instances, got %T", name, probe)
	}
	if prev, exists := r.byGoType[goType]; exists {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"Go type %s is already registered as %q", goType, prev.name)
	}

	t := &Type{name: name, goType: goType, model: model, chain: convs}
	r.byName[name] = t
	r.byGoType[goType] = t
	return t, nil
}

// TypeByName resolves a fully qualified type name to its handle.
// Returns UNKNOWN_TYPE if the name was never registered.
func (r *Registry) TypeByName(name string) (*Type, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownType, "type %q is not registered", name)
	}
	return t, nil
}

// TypeOf resolves a live instance to the handle registered for its dynamic
// Go type. Returns UNKNOWN_TYPE if the instance's type was never registered.
func (r *Registry) TypeOf(instance any) (*Type, error) {
	goType := reflect.TypeOf(instance)
	t, ok := r.byGoType[goType]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownType,
			"no type registered for instances of %s", goType)
	}
	return t, nil
}

// Register is a convenience wrapper that registers T with a model allocating
// new(T) and the given converter chain.
func Register[T any](r *Registry, name string, convs ...Converter) (*Type, error) {
	return r.Register(name, ModelFunc(func() any { return new(T) }), convs...)
}
