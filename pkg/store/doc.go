// Package store persists encoded graph snapshots.
//
// A [Snapshot] wraps one encoded wire value (see package encoding) with a
// generated id and creation timestamp. The [Store] interface supports
// Put/Get/List/Delete over snapshots, with implementations for different
// backends:
//   - file: JSON files in a directory, for CLI usage
//   - redis: Redis-backed storage with optional TTL, for shared deployments
//   - mongo: MongoDB collection, for durable multi-instance deployments
//   - null: discards everything, for testing and disabled persistence
//
// # Usage
//
// Create a store:
//
//	// CLI
//	st, err := store.NewFileStore("")  // Uses ~/.local/share/refgraph/snapshots/
//
//	// Shared deployments
//	st, err := store.NewRedisStore(store.RedisConfig{Addr: "localhost:6379"})
//
// Persist a snapshot:
//
//	snap := store.NewSnapshot(encodedGraph)
//	if err := st.Put(ctx, snap); err != nil {
//	    return err
//	}
//
// Missing snapshots surface as NOT_FOUND errors:
//
//	snap, err := st.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // Snapshot does not exist
//	}
package store
