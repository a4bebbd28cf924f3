// Package transform provides the graph passes that turn a merged canvas
// graph into ranks.
//
// # Rank Assignment
//
// [AssignRanks] walks the graph breadth-first from every source (node with
// no incoming edge) in insertion order. The first rank a node receives is the
// one it keeps. Nodes that no traversal reaches, such as members of a cycle
// with no entry point, fall back to rank 0 and are returned to the caller so
// they can be logged.
//
// # Cycle Detection
//
// [BackEdges] reports the edges that close cycles without touching the graph.
// Insertion uses it to explain why a fragment has no root.
//
// # Usage
//
//	unreached := transform.AssignRanks(g)
//	for _, row := range g.RowIDs() {
//	    for _, n := range g.NodesInRow(row) {
//	        // n.Row == row
//	    }
//	}
package transform
