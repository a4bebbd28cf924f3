// Package store persists canvas snapshots between insertions.
//
// # Backends
//
//   - [FileStore]: one JSON file per canvas under a directory (CLI default)
//   - [RedisStore]: one JSON value per canvas plus an index set
//   - [MongoStore]: one BSON document per canvas, keyed by canvas ID
//   - [NullStore]: stores nothing; every load misses
//
// All backends implement [Store]. [Open] builds the backend selected by a
// [Config].
//
// # Keys
//
// Canvas IDs are namespaced with a [Keyer] so that several deployments can
// share one Redis database or store directory.
package store
