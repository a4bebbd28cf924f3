package store

import (
	"context"

	"github.com/matzehuels/layercanvas/pkg/graph"
)

// NullStore is a no-op store that never keeps anything.
// Useful for testing or for one-shot CLI runs.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// Load always returns ErrNotFound.
func (s *NullStore) Load(ctx context.Context, id string) (*graph.Snapshot, error) {
	return nil, ErrNotFound
}

// Save does nothing.
func (s *NullStore) Save(ctx context.Context, snap *graph.Snapshot) error {
	return nil
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, id string) error {
	return nil
}

// List always returns no IDs.
func (s *NullStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
