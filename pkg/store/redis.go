package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/refgraph/refgraph/pkg/errors"
	"github.com/refgraph/refgraph/pkg/observability"
)

// RedisConfig configures a Redis-backed store.
type RedisConfig struct {
	Addr     string        // host:port, e.g. "localhost:6379"
	Password string        // optional
	DB       int           // logical database
	Prefix   string        // key prefix, defaults to "refgraph:snapshot:"
	TTL      time.Duration // 0 means snapshots never expire
}

// RedisStore persists snapshots in Redis, one key per snapshot.
// Suitable for shared deployments where snapshots are ephemeral.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store and verifies connectivity.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "refgraph:snapshot:"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: cfg.TTL}, nil
}

// Put stores a snapshot under its prefixed id.
func (s *RedisStore) Put(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot %s", snap.ID)
	}
	if err := s.client.Set(ctx, s.prefix+snap.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", snap.ID, err)
	}
	observability.Store().OnPut(ctx, BackendRedis, len(data))
	return nil
}

// Get retrieves a snapshot by id.
func (s *RedisStore) Get(ctx context.Context, id string) (Snapshot, error) {
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if stderrors.Is(err, redis.Nil) {
		observability.Store().OnGet(ctx, BackendRedis, false)
		return Snapshot{}, errors.New(errors.ErrCodeNotFound, "snapshot %s not found", id)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("redis get %s: %w", id, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeCorruptData, err, "decode snapshot %s", id)
	}
	observability.Store().OnGet(ctx, BackendRedis, true)
	return snap, nil
}

// List returns the ids of all stored snapshots, scanning the key prefix.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return ids, nil
}

// Delete removes a snapshot. Unknown ids are ignored.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", id, err)
	}
	observability.Store().OnDelete(ctx, BackendRedis)
	return nil
}

// Close releases the client connection pool.
func (s *RedisStore) Close() error { return s.client.Close() }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
