// Package canvas merges graph fragments into a growing, positioned canvas.
//
// # Overview
//
// A [Canvas] owns one [graph.Snapshot]. Each call to [Canvas.Insert] takes a
// [graph.Fragment], rewrites its IDs with a per-fragment prefix, ranks the
// merged graph, lays out new containers, places every new top-level element
// in free space and appends the resulting node and edge records. Elements
// that already have a position are never moved.
//
// # ID Policies
//
// Fragments use local IDs. Before merging, IDs are rewritten according to an
// [IDPolicy]:
//
//   - [PolicyIsolate]: node and container IDs both get the prefix, so every
//     insertion with a new prefix adds a disjoint copy.
//   - [PolicyShare]: only container IDs get the prefix. Node IDs are global,
//     so a later fragment can attach new nodes to nodes placed earlier.
//
// Prefixes default to "f1-", "f2-", ... from a counter stored in the
// snapshot. Inserting the same fragment again with the same explicit prefix
// changes nothing.
//
// # Failure Modes
//
// A fragment whose top-level elements all have incoming edges is rejected
// with a MISSING_ROOT error and the canvas stays untouched. Dangling edges,
// duplicate container claims and similar element-level problems are skipped
// and reported as warnings in the [InsertResult].
//
// # Concurrency
//
// Insertions are serialized. Each successful insertion swaps in a new
// snapshot; snapshots returned by [Canvas.Snapshot] are never modified.
package canvas
