package store

import (
	"context"

	"github.com/refgraph/refgraph/pkg/errors"
)

// NullStore is a no-op store that never persists anything.
// Useful for testing or when persistence should be disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Put does nothing.
func (s *NullStore) Put(ctx context.Context, snap Snapshot) error { return nil }

// Get always reports the snapshot as missing.
func (s *NullStore) Get(ctx context.Context, id string) (Snapshot, error) {
	return Snapshot{}, errors.New(errors.ErrCodeNotFound, "snapshot %s not found", id)
}

// List always returns no ids.
func (s *NullStore) List(ctx context.Context) ([]string, error) { return nil, nil }

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, id string) error { return nil }

// Close does nothing.
func (s *NullStore) Close() error { return nil }

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
