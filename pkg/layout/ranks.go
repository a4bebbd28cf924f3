package layout

import (
	"github.com/matzehuels/layercanvas/pkg/dag"
	"github.com/matzehuels/layercanvas/pkg/dag/transform"
)

// Edge is a directed edge between two element or child IDs.
type Edge struct {
	From, To string
}

// RankIndex maps top-level elements to their rank and their order within
// the rank. It is derived per insertion and never persisted.
type RankIndex struct {
	// Ranks maps element ID to rank.
	Ranks map[string]int
	// Orders maps element ID to its position within its rank.
	Orders map[string]int
	// Rows lists element IDs per rank, in order.
	Rows [][]string
	// Unreached lists elements no root reaches. They sit in rank 0.
	Unreached []string
	// Graph is the collapsed element graph the ranks were computed on.
	Graph *dag.DAG
}

// Collapse rewrites edge endpoints that are container children to their
// owning container. owner maps child ID to container ID.
func Collapse(e Edge, owner map[string]string) Edge {
	if c, ok := owner[e.From]; ok {
		e.From = c
	}
	if c, ok := owner[e.To]; ok {
		e.To = c
	}
	return e
}

// Rank assigns ranks to the given top-level elements.
//
// Edges are collapsed onto containers with owner before ranking. Self-loops
// (including edges between two children of one container), duplicate
// collapsed edges and edges touching an ID outside elements are ignored.
// Roots are processed in the order elements are listed, and elements keep
// that order within their rank.
func Rank(elements []string, edges []Edge, owner map[string]string) *RankIndex {
	g := dag.New(nil)
	for _, id := range elements {
		// A repeated ID keeps its first position.
		_ = g.AddNode(dag.Node{ID: id, Kind: dag.NodeKindElement})
	}
	for _, e := range edges {
		e = Collapse(e, owner)
		if e.From == e.To {
			continue
		}
		// Unknown endpoints and repeated pairs are rejected by the graph.
		_ = g.AddEdge(dag.Edge{From: e.From, To: e.To})
	}

	idx := &RankIndex{
		Ranks:  make(map[string]int, g.NodeCount()),
		Orders: make(map[string]int, g.NodeCount()),
		Graph:  g,
	}
	if g.NodeCount() == 0 {
		return idx
	}

	idx.Unreached = transform.AssignRanks(g)
	idx.Rows = make([][]string, g.MaxRow()+1)
	for r := range idx.Rows {
		for i, n := range g.NodesInRow(r) {
			idx.Ranks[n.ID] = r
			idx.Orders[n.ID] = i
			idx.Rows[r] = append(idx.Rows[r], n.ID)
		}
	}
	return idx
}
