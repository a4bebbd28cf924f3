package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/layercanvas/pkg/graph"
	"github.com/matzehuels/layercanvas/pkg/observability"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "layercanvas"
	DefaultMongoCollection = "canvases"
)

// MongoStore keeps one document per canvas, with the canvas ID as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB. Empty database and collection names
// select the defaults.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Load fetches a snapshot document.
func (s *MongoStore) Load(ctx context.Context, id string) (*graph.Snapshot, error) {
	var snap graph.Snapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		observability.Store().OnStoreMiss(ctx, BackendMongo)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", id, err)
	}
	if snap.Nodes == nil {
		snap.Nodes = []graph.NodeRecord{}
	}
	if snap.Edges == nil {
		snap.Edges = []graph.EdgeRecord{}
	}
	observability.Store().OnStoreHit(ctx, BackendMongo)
	return &snap, nil
}

// Save upserts a snapshot document.
func (s *MongoStore) Save(ctx context.Context, snap *graph.Snapshot) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": snap.ID}, snap, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo save %s: %w", snap.ID, err)
	}
	observability.Store().OnStoreSave(ctx, BackendMongo, len(snap.Nodes)+len(snap.Edges))
	return nil
}

// Delete removes a snapshot document.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", id, err)
	}
	return nil
}

// List returns every stored canvas ID.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	raw, err := s.coll.Distinct(ctx, "_id", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
