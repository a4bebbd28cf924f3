// Package dag provides the directed graph used to rank canvas elements.
//
// # Overview
//
// Layercanvas lays out graph fragments in horizontal ranks, top to bottom.
// Ranking runs over a graph whose vertices are the top-level elements of the
// canvas: free nodes plus containers, each container standing in for all of
// its children. This package holds that graph and its row (rank) index.
//
// # Basic Usage
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "A"})
//	g.AddNode(dag.Node{ID: "success", Kind: dag.NodeKindContainer})
//	g.AddEdge(dag.Edge{From: "A", To: "success"})
//
// Query the structure with [DAG.Children], [DAG.Parents], [DAG.Sources] and
// [DAG.NodesInRow].
//
// # Ordering
//
// Every listing follows insertion order. Rank assignment seeds its
// breadth-first traversal from [DAG.Sources] in that order, so two runs over
// the same input always produce the same ranks, and existing canvas elements
// (inserted first) are visited before newly merged ones.
//
// # Cycles
//
// Caller-supplied fragments may contain cycles. The graph accepts them;
// [transform.AssignRanks] terminates on them through its visited set, and
// [transform.BackEdges] names the edges that close them.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Each insertion builds its
// own graph, so no sharing occurs in practice.
//
// [transform]: github.com/matzehuels/layercanvas/pkg/dag/transform
package dag
