package transform

import "github.com/matzehuels/layercanvas/pkg/dag"

// AssignRanks assigns every node to a row (rank) by breadth-first traversal
// from the graph's sources and returns the IDs of nodes no traversal reached.
//
// Sources are processed in insertion order. Each traversal gives its source
// rank 0 and every newly discovered successor its parent's rank plus one.
// A node keeps the first rank it receives: this is a heuristic for nodes
// reachable along several paths, not a longest-path or shortest-path
// guarantee, so a node reached early through a short path may sit above a
// parent discovered later.
//
// # Cycles
//
// Nodes that no source reaches (isolated members of a pure cycle, or nodes
// whose only incoming edge is a self-loop) are assigned rank 0 and returned.
// Self-loops and back edges never loop forever because their target is
// already visited.
//
// # Performance
//
// Time complexity is O(V + E). Existing row assignments are overwritten.
func AssignRanks(g *dag.DAG) []string {
	nodes := g.Nodes()
	rows := make(map[string]int, len(nodes))
	visited := make(map[string]bool, len(nodes))

	for _, src := range g.Sources() {
		if visited[src.ID] {
			continue
		}
		visited[src.ID] = true
		rows[src.ID] = 0
		queue := []string{src.ID}

		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]

			for _, child := range g.Children(curr) {
				if visited[child] {
					continue
				}
				visited[child] = true
				rows[child] = rows[curr] + 1
				queue = append(queue, child)
			}
		}
	}

	var unreached []string
	for _, n := range nodes {
		if !visited[n.ID] {
			rows[n.ID] = 0
			unreached = append(unreached, n.ID)
		}
	}

	g.SetRows(rows)
	return unreached
}
