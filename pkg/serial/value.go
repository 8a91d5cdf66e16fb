package serial

import (
	"github.com/refgraph/refgraph/pkg/errors"
)

// Kind identifies the variant stored in a Value.
type Kind int

// Value variants.
const (
	KindNull Kind = iota
	KindBool
	KindReal
	KindString
	KindList
	KindDict
	KindRef
)

// String returns the lowercase variant name, e.g. "dictionary" for KindDict.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dictionary"
	case KindRef:
		return "object reference"
	}
	return "unknown"
}

// ObjectRef identifies a serialized object instance by its fully qualified
// type name and per-type id. References are resolved through an
// objgraph.Reader; value code never dereferences them directly.
type ObjectRef struct {
	Type string // Fully qualified type name
	ID   int64  // Per-type definition id (ids start at 1)
}

// DictEntry is one key/value pair of a dictionary value, in insertion order.
type DictEntry struct {
	Key   string
	Value *Value
}

// Value is the tagged-union wire representation of a serialized field.
//
// A Value holds exactly one variant plus an optional definition id. Scalar
// values are immutable; list and dictionary values grow through [Value.Append]
// and [Value.Set] while a converter assembles them and should not be modified
// after being handed to the writer.
type Value struct {
	kind Kind

	boolVal bool
	realVal float64
	strVal  string
	items   []*Value
	keys    []string
	entries map[string]*Value
	ref     ObjectRef

	defID  int64
	hasDef bool
}

// =============================================================================
// Constructors
// =============================================================================

// Null creates a null value.
func Null() *Value { return &Value{kind: KindNull} }

// Bool creates a boolean value.
func Bool(b bool) *Value { return &Value{kind: KindBool, boolVal: b} }

// Real creates a real-number value.
func Real(f float64) *Value { return &Value{kind: KindReal, realVal: f} }

// String creates a string value.
func String(s string) *Value { return &Value{kind: KindString, strVal: s} }

// NewList creates a list value holding the given items, in order.
// Call with no arguments for an empty list to grow via [Value.Append].
func NewList(items ...*Value) *Value {
	return &Value{kind: KindList, items: items}
}

// NewDict creates an empty dictionary value. Entries added via [Value.Set]
// keep their insertion order for rendering and encoding.
func NewDict() *Value {
	return &Value{kind: KindDict, entries: make(map[string]*Value)}
}

// Reference creates an object-reference value for the given type name and id.
func Reference(typeName string, id int64) *Value {
	return &Value{kind: KindRef, ref: ObjectRef{Type: typeName, ID: id}}
}

// =============================================================================
// Composite Builders
// =============================================================================

// Append adds an item to the end of a list value.
// Returns a TYPE_MISMATCH error if the value is not a list.
func (v *Value) Append(item *Value) error {
	if v.kind != KindList {
		return v.mismatch(KindList)
	}
	v.items = append(v.items, item)
	return nil
}

// Set stores a key/value pair in a dictionary value. Setting an existing key
// replaces its value but keeps the key's original position.
// Returns a TYPE_MISMATCH error if the value is not a dictionary.
func (v *Value) Set(key string, item *Value) error {
	if v.kind != KindDict {
		return v.mismatch(KindDict)
	}
	if _, exists := v.entries[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.entries[key] = item
	return nil
}

// =============================================================================
// Definition Tag
// =============================================================================

// Define derives a value identical to v but tagged as the object definition
// for the given id. The receiver is left untouched.
//
// References are pointers, not bodies, so tagging a reference value fails
// with INVALID_STATE.
func (v *Value) Define(id int64) (*Value, error) {
	if v.kind == KindRef {
		return nil, errors.New(errors.ErrCodeInvalidState,
			"an object reference cannot be marked as a definition")
	}
	def := *v
	def.defID = id
	def.hasDef = true
	return &def, nil
}

// IsDefinition reports whether the value carries a definition id.
func (v *Value) IsDefinition() bool { return v.hasDef }

// AsDefinition returns the definition id.
// Returns an INVALID_STATE error if the value is not tagged as a definition.
func (v *Value) AsDefinition() (int64, error) {
	if !v.hasDef {
		return 0, errors.New(errors.ErrCodeInvalidState,
			"value is not an object definition: %s", v.String())
	}
	return v.defID, nil
}

// =============================================================================
// Predicates and Accessors
// =============================================================================

// Kind returns the variant stored in the value.
func (v *Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null variant.
func (v *Value) IsNull() bool { return v.kind == KindNull }

// IsBool reports whether the value is a boolean.
func (v *Value) IsBool() bool { return v.kind == KindBool }

// IsReal reports whether the value is a real number.
func (v *Value) IsReal() bool { return v.kind == KindReal }

// IsString reports whether the value is a string.
func (v *Value) IsString() bool { return v.kind == KindString }

// IsList reports whether the value is a list.
func (v *Value) IsList() bool { return v.kind == KindList }

// IsDict reports whether the value is a dictionary.
func (v *Value) IsDict() bool { return v.kind == KindDict }

// IsRef reports whether the value is an object reference.
func (v *Value) IsRef() bool { return v.kind == KindRef }

// AsBool returns the boolean payload.
func (v *Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.boolVal, nil
}

// AsReal returns the real-number payload.
func (v *Value) AsReal() (float64, error) {
	if v.kind != KindReal {
		return 0, v.mismatch(KindReal)
	}
	return v.realVal, nil
}

// AsString returns the string payload.
func (v *Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.strVal, nil
}

// AsList returns the list items in order. The returned slice is a read-only
// view into the value; callers must not modify it.
func (v *Value) AsList() ([]*Value, error) {
	if v.kind != KindList {
		return nil, v.mismatch(KindList)
	}
	return v.items, nil
}

// AsDict returns the dictionary entries in insertion order.
func (v *Value) AsDict() ([]DictEntry, error) {
	if v.kind != KindDict {
		return nil, v.mismatch(KindDict)
	}
	out := make([]DictEntry, len(v.keys))
	for i, k := range v.keys {
		out[i] = DictEntry{Key: k, Value: v.entries[k]}
	}
	return out, nil
}

// Get returns the dictionary value stored under key and whether it exists.
// Returns a TYPE_MISMATCH error if the value is not a dictionary.
func (v *Value) Get(key string) (*Value, bool, error) {
	if v.kind != KindDict {
		return nil, false, v.mismatch(KindDict)
	}
	item, ok := v.entries[key]
	return item, ok, nil
}

// AsRef returns the object-reference payload.
func (v *Value) AsRef() (ObjectRef, error) {
	if v.kind != KindRef {
		return ObjectRef{}, v.mismatch(KindRef)
	}
	return v.ref, nil
}

// mismatch builds the TYPE_MISMATCH error for a wrong-variant accessor,
// naming the attempted cast and rendering the stored value.
func (v *Value) mismatch(want Kind) error {
	return errors.New(errors.ErrCodeTypeMismatch,
		"cannot read %s as %s: %s", v.kind, want, v.String())
}
