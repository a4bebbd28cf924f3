// Package graph provides the wire types exchanged with layercanvas callers.
//
// Two directions cross this boundary:
//
//   - [Fragment]: an input batch of nodes, edges and containers using
//     fragment-local IDs, read from JSON or TOML.
//   - [Snapshot]: the positioned canvas handed to rendering consumers, made of
//     [NodeRecord] and [EdgeRecord] values.
//
// # Fragment Format
//
//	{
//	  "nodes": [{"id": "A"}, {"id": "C", "width": 200}],
//	  "edges": [{"source": "A", "target": "C"}],
//	  "containers": [{"id": "success", "children": ["C"]}]
//	}
//
// The same structure is accepted as TOML:
//
//	[[nodes]]
//	id = "A"
//
//	[[containers]]
//	id = "success"
//	children = ["C"]
//
// # Record Format
//
// Node and edge records follow the shape node-based canvas widgets expect:
// camelCase keys, a nested position, a data object carrying the label, and
// parentId/extent on container children so they stay inside their parent
// while dragged.
//
// # Coordinates
//
// Top-level records carry absolute canvas coordinates. Children of a
// container carry coordinates relative to the container's top-left corner.
// The two tiers are never mixed.
//
// # Concurrency
//
// Snapshots are treated as immutable once published by a canvas. Use
// [Snapshot.Clone] before modifying one.
package graph
