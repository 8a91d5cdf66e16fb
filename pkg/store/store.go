package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Backend names, used for configuration and observability hooks.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNull  = "null"
)

// Snapshot is one persisted graph export: the encoded wire value plus
// identifying metadata.
type Snapshot struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Graph     []byte    `json:"graph" bson:"graph"`
}

// NewSnapshot wraps an encoded graph in a snapshot with a fresh UUID and the
// current UTC time.
func NewSnapshot(graph []byte) Snapshot {
	return Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Graph:     graph,
	}
}

// Store persists snapshots. Implementations must be safe for use by a single
// caller at a time; Get returns a NOT_FOUND error for unknown ids.
type Store interface {
	// Put stores a snapshot, replacing any snapshot with the same id.
	Put(ctx context.Context, snap Snapshot) error

	// Get retrieves a snapshot by id.
	Get(ctx context.Context, id string) (Snapshot, error)

	// List returns the ids of all stored snapshots. Order is not guaranteed.
	List(ctx context.Context) ([]string, error)

	// Delete removes a snapshot. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
