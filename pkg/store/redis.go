package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/layercanvas/pkg/graph"
	"github.com/matzehuels/layercanvas/pkg/observability"
)

// RedisStore keeps snapshots as JSON strings and tracks their keys in an
// index set.
type RedisStore struct {
	client *redis.Client
	keys   Keyer
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, keys Keyer) *RedisStore {
	return &RedisStore{client: client, keys: keys}
}

// NewRedisStoreFromOptions connects to a Redis server.
func NewRedisStoreFromOptions(addr, password string, db int, keys Keyer) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStore(client, keys)
}

// Load fetches a snapshot.
func (s *RedisStore) Load(ctx context.Context, id string) (*graph.Snapshot, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.keys.CanvasKey(id)).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return Retryable(err)
		}
		return err
	})
	if errors.Is(err, redis.Nil) {
		observability.Store().OnStoreMiss(ctx, BackendRedis)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}
	observability.Store().OnStoreHit(ctx, BackendRedis)
	return graph.UnmarshalSnapshot(data)
}

// Save stores a snapshot and records its key in the index set.
func (s *RedisStore) Save(ctx context.Context, snap *graph.Snapshot) error {
	data, err := graph.MarshalSnapshot(snap)
	if err != nil {
		return err
	}
	key := s.keys.CanvasKey(snap.ID)
	err = RetryWithBackoff(ctx, func() error {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.SAdd(ctx, s.keys.IndexKey(), snap.ID)
			return nil
		})
		return Retryable(err)
	})
	if err != nil {
		return fmt.Errorf("redis save %s: %w", snap.ID, err)
	}
	observability.Store().OnStoreSave(ctx, BackendRedis, len(data))
	return nil
}

// Delete removes a snapshot and its index entry.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.keys.CanvasKey(id))
		pipe.SRem(ctx, s.keys.IndexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis delete %s: %w", id, err)
	}
	return nil
}

// List returns the IDs in the index set.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.keys.IndexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list: %w", err)
	}
	return ids, nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
