// Package encoding serializes wire values to JSON bytes and back.
//
// Unlike the debug rendering in package serial, this encoding is fully
// round-trippable and is the persistence format used by snapshot stores and
// the CLI.
//
// # Format
//
// Scalars and lists map to their native JSON forms. The three shapes JSON
// cannot express directly use a small envelope, recognizable by a $-prefixed
// key:
//
//	dictionary   {"$dict": [{"k": "name", "v": "hub"}, ...]}   (order preserved)
//	reference    {"$ref": {"type": "demo.Node", "id": 3}}
//	definition   {"$def": 3, "$value": {...}}
//
// Dictionaries are encoded as a pair list because JSON objects do not
// preserve key order across decoders.
package encoding
