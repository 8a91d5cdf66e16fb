package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/refgraph/refgraph/pkg/errors"
	"github.com/refgraph/refgraph/pkg/observability"
)

// FileStore persists snapshots as JSON files in a directory, one file per
// snapshot. Intended for CLI usage.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory, creating
// it if needed. An empty dir defaults to ~/.local/share/refgraph/snapshots.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "refgraph", "snapshots")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory snapshots are stored in.
func (s *FileStore) Dir() string { return s.dir }

// Put stores a snapshot, replacing any existing file with the same id.
func (s *FileStore) Put(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot %s", snap.ID)
	}
	if err := os.WriteFile(s.path(snap.ID), data, 0644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", snap.ID, err)
	}
	observability.Store().OnPut(ctx, BackendFile, len(data))
	return nil
}

// Get retrieves a snapshot by id.
func (s *FileStore) Get(ctx context.Context, id string) (Snapshot, error) {
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		observability.Store().OnGet(ctx, BackendFile, false)
		return Snapshot{}, errors.New(errors.ErrCodeNotFound, "snapshot %s not found", id)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot %s: %w", id, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeCorruptData, err, "decode snapshot %s", id)
	}
	observability.Store().OnGet(ctx, BackendFile, true)
	return snap, nil
}

// List returns the ids of all stored snapshots.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	return ids, nil
}

// Delete removes a snapshot. Unknown ids are ignored.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	observability.Store().OnDelete(ctx, BackendFile)
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// path maps a snapshot id to its file. Base strips any path separators so
// ids cannot escape the store directory.
func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, filepath.Base(id)+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
