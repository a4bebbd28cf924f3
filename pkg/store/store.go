package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	lcerrors "github.com/matzehuels/layercanvas/pkg/errors"
	"github.com/matzehuels/layercanvas/pkg/graph"
)

// ErrNotFound is returned when a requested canvas does not exist.
var ErrNotFound = errors.New("canvas not found")

// Store loads and saves canvas snapshots.
type Store interface {
	// Load returns the snapshot with the given ID or ErrNotFound.
	Load(ctx context.Context, id string) (*graph.Snapshot, error)

	// Save stores a snapshot under its ID, replacing any previous version.
	Save(ctx context.Context, snap *graph.Snapshot) error

	// Delete removes a snapshot. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored snapshots.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by Config.Backend.
const (
	BackendFile  = "file"
	BackendNone  = "none"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend   string `toml:"backend"`
	Namespace string `toml:"namespace"`

	// Dir is the FileStore directory. Empty means DefaultDir.
	Dir string `toml:"dir"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// DefaultConfig returns a file store configuration in DefaultDir.
func DefaultConfig() Config {
	return Config{Backend: BackendFile, Namespace: DefaultNamespace}
}

// DefaultDir returns the directory used by the file backend when none is
// configured: $XDG_DATA_HOME/layercanvas/canvases, falling back to
// ~/.local/share.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "layercanvas", "canvases"), nil
}

// Open builds the backend selected by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	keyer := NewKeyer(cfg.Namespace)
	switch cfg.Backend {
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return NewFileStore(dir)
	case BackendNone:
		return NewNullStore(), nil
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, lcerrors.New(lcerrors.ErrCodeInvalidConfig, "store.redis_addr is required for the redis backend")
		}
		return NewRedisStoreFromOptions(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, keyer), nil
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, lcerrors.New(lcerrors.ErrCodeInvalidConfig, "store.mongo_uri is required for the mongo backend")
		}
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	default:
		return nil, lcerrors.New(lcerrors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
	}
}
