// Package serial defines the tagged-union wire value used by the object graph
// serializer.
//
// A [Value] holds exactly one of seven variants: null, boolean, real number,
// string, ordered list, insertion-ordered string-keyed dictionary, or an object
// reference. Orthogonal to its variant, a value may carry a definition id that
// marks it as the canonical serialized body for that identity. A reference is a
// pointer, not a body, so reference values never carry a definition id.
//
// # Construction
//
// Scalar constructors produce immutable values. Composite values are built
// incrementally and should be treated as frozen once handed off:
//
//	body := serial.NewDict()
//	body.Set("name", serial.String("hub"))
//	body.Set("peers", serial.NewList(refA, refB))
//
// [Value.Define] derives a new value tagged with a definition id rather than
// mutating the receiver, so shared subtrees are never retagged behind a
// caller's back.
//
// # Reading
//
// Each variant has a predicate (IsBool, IsList, ...) and an accessor (AsBool,
// AsList, ...). Accessors fail with a TYPE_MISMATCH error naming both the
// attempted cast and the stored value, which keeps converter bugs diagnosable
// from the error message alone.
//
// # Rendering
//
// [Value.String] produces an indented debug rendering. It performs no string
// escaping and is not a parseable or round-trippable format; use package
// encoding for persistence.
package serial
