package transform

import "github.com/matzehuels/layercanvas/pkg/dag"

// BackEdges returns the edges that close a directed cycle, found by a
// depth-first search with white/gray/black coloring. Traversal starts from
// sources and then from any node still unvisited, both in insertion order, so
// the result is deterministic. The graph is not modified.
//
// Self-loops are reported as back edges.
func BackEdges(g *dag.DAG) [][2]string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var backEdges [][2]string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, [2]string{node, child})
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	return backEdges
}
