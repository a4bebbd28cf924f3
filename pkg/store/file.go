package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	lcerrors "github.com/matzehuels/layercanvas/pkg/errors"
	"github.com/matzehuels/layercanvas/pkg/graph"
	"github.com/matzehuels/layercanvas/pkg/observability"
)

// FileStore stores each snapshot as a JSON file for CLI usage.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store in the given directory.
// The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := lcerrors.ValidatePath(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

// Load reads a snapshot from disk.
func (s *FileStore) Load(ctx context.Context, id string) (*graph.Snapshot, error) {
	snap, err := graph.ReadSnapshotFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		observability.Store().OnStoreMiss(ctx, BackendFile)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	observability.Store().OnStoreHit(ctx, BackendFile)
	return snap, nil
}

// Save writes a snapshot to disk. The file is replaced atomically, so a
// crash mid-write leaves the previous snapshot in place.
func (s *FileStore) Save(ctx context.Context, snap *graph.Snapshot) error {
	data, err := graph.MarshalSnapshot(snap)
	if err != nil {
		return err
	}
	path := s.path(snap.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return err
	}
	observability.Store().OnStoreSave(ctx, BackendFile, len(data))
	return nil
}

// Delete removes a snapshot file.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// List reads the ID of every stored snapshot.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		snap, err := graph.ReadSnapshotFile(path)
		if err != nil {
			// Not a snapshot - skip
			return nil
		}
		ids = append(ids, snap.ID)
		return nil
	})
	return ids, err
}

// Close does nothing for file store.
func (s *FileStore) Close() error {
	return nil
}

// path converts a canvas ID to a file path.
// Uses a hash-based directory structure so arbitrary IDs map to safe names.
func (s *FileStore) path(id string) string {
	hash := Hash([]byte(id))
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
