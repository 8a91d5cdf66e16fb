package objgraph

import (
	"fmt"
	"time"

	"github.com/refgraph/refgraph/pkg/errors"
	"github.com/refgraph/refgraph/pkg/observability"
	"github.com/refgraph/refgraph/pkg/registry"
	"github.com/refgraph/refgraph/pkg/serial"
)

// tableEntry pairs a phase-1 placeholder instance with its raw serialized body.
type tableEntry struct {
	instance any
	body     *serial.Value
}

// Reader is a single-use import session over one previously exported
// dictionary.
//
// Construction runs phase 1 (allocate a blank instance per definition);
// [Reader.RestoreGraph] runs phase 2 (populate every instance in place).
// Placeholders handed to converters during phase 2 may not be populated yet;
// converters must only retain such references, never eagerly read fields
// through them.
//
// A Reader is not safe for concurrent use and cannot be reused after
// [Reader.RestoreGraph] returns.
type Reader struct {
	reg      *registry.Registry
	table    map[instanceKey]tableEntry
	order    []instanceKey
	restored bool
}

// NewReader allocates a placeholder instance for every definition in data.
//
// data must be an export-shaped dictionary: type name buckets, each a list
// of definition bodies. The whole input is walked before any field is
// populated, which structurally breaks reference cycles. Returns
// UNKNOWN_TYPE for an unregistered bucket, INVALID_STATE for a bucket item
// without a definition id, and CORRUPT_DATA for duplicate definitions.
func NewReader(reg *registry.Registry, data *serial.Value) (*Reader, error) {
	r := &Reader{
		reg:   reg,
		table: make(map[instanceKey]tableEntry),
	}

	err := r.allocate(data)
	observability.Graph().OnAllocateComplete(len(r.order), err)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reader) allocate(data *serial.Value) error {
	buckets, err := data.AsDict()
	if err != nil {
		return err
	}

	for _, bucket := range buckets {
		typ, err := r.reg.TypeByName(bucket.Key)
		if err != nil {
			return err
		}
		items, err := bucket.Value.AsList()
		if err != nil {
			return fmt.Errorf("bucket %s: %w", bucket.Key, err)
		}

		for _, item := range items {
			id, err := item.AsDefinition()
			if err != nil {
				return fmt.Errorf("bucket %s: %w", bucket.Key, err)
			}
			key := instanceKey{typeName: typ.Name(), id: id}
			if _, exists := r.table[key]; exists {
				return errors.New(errors.ErrCodeCorruptData,
					"duplicate definition for %s id %d", key.typeName, key.id)
			}
			r.table[key] = tableEntry{instance: typ.Model().New(), body: item}
			r.order = append(r.order, key)
		}
	}
	return nil
}

// RestoreGraph populates every phase-1 instance in place via its type's
// converter and finishes the session.
//
// Fails fast on the first converter error: a half-restored graph is never
// handed back. Returns INVALID_STATE if the session was already restored.
func (r *Reader) RestoreGraph() error {
	if r.restored {
		return errors.New(errors.ErrCodeInvalidState,
			"reader session is spent: create a new reader per import")
	}
	r.restored = true

	start := time.Now()
	err := r.populate()
	observability.Graph().OnRestoreComplete(time.Since(start), err)
	return err
}

func (r *Reader) populate() error {
	for _, key := range r.order {
		typ, err := r.reg.TypeByName(key.typeName)
		if err != nil {
			return err
		}
		conv, err := typ.Converter()
		if err != nil {
			return err
		}

		entry := r.table[key]
		if err := conv.Import(entry.body, r, entry.instance); err != nil {
			return fmt.Errorf("restore %s id %d: %w", key.typeName, key.id, err)
		}
	}
	return nil
}

// GetObjectInstance resolves a serialized value to a live instance during
// phase 2.
//
// For a reference value, it returns the placeholder allocated in phase 1 —
// possibly not yet populated, so callers must only store the returned
// handle. For an inline embedded value, it allocates a brand-new instance
// via model; no identity tracking applies to embedded values.
//
// Returns INVALID_STATE for a definition body (references resolve through
// the table, never through bodies — passing one indicates misuse of the
// export/import protocol) and CORRUPT_DATA for a reference to a (type, id)
// pair the input never defined.
func (r *Reader) GetObjectInstance(model registry.Model, data *serial.Value) (any, error) {
	if data.IsDefinition() {
		return nil, errors.New(errors.ErrCodeInvalidState,
			"cannot resolve a live reference from a definition body: %s", data.String())
	}

	if data.IsRef() {
		ref, err := data.AsRef()
		if err != nil {
			return nil, err
		}
		entry, ok := r.table[instanceKey{typeName: ref.Type, id: ref.ID}]
		if !ok {
			return nil, errors.New(errors.ErrCodeCorruptData,
				"dangling reference to %s id %d", ref.Type, ref.ID)
		}
		return entry.instance, nil
	}

	// Inline embedded value: allocate fresh, outside identity tracking.
	if model == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"inline value needs a type model to allocate an instance")
	}
	return model.New(), nil
}
