package layout

import "github.com/matzehuels/layercanvas/pkg/dag"

// Interior is the computed layout of one container.
type Interior struct {
	// Size is the container box size.
	Size
	// Order lists child IDs top to bottom.
	Order []string
	// Positions maps child ID to its container-relative top-left corner.
	Positions map[string]Point
}

// LayoutContainer stacks children in a single column and sizes the box
// around them.
//
// Column order is a breadth-first traversal over edges, seeded from the
// children that have no incoming edge from a sibling, in list order.
// Children the traversal does not reach keep list order at the end. Edges
// with an endpoint outside children are ignored, as are self-loops.
//
// Every child is inset by cfg.ContainerPadding on the left and consecutive
// children are separated by cfg.InteriorGap. The box is the widest child
// plus twice the padding wide, and the column extent plus twice the padding
// tall. A container without children gets the default node size.
func LayoutContainer(children []Box, edges []Edge, cfg Config) Interior {
	in := Interior{Positions: make(map[string]Point, len(children))}
	if len(children) == 0 {
		in.Size = Size{Width: cfg.NodeWidth, Height: cfg.NodeHeight}
		return in
	}

	g := dag.New(nil)
	sizes := make(map[string]Size, len(children))
	for _, c := range children {
		if err := g.AddNode(dag.Node{ID: c.ID}); err == nil {
			sizes[c.ID] = c.Size
		}
	}
	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		_ = g.AddEdge(dag.Edge{From: e.From, To: e.To})
	}

	in.Order = columnOrder(g)

	y := cfg.ContainerPadding
	minTop, maxBottom, maxWidth := y, y, 0.0
	for i, id := range in.Order {
		if i > 0 {
			y += cfg.InteriorGap
		}
		sz := sizes[id]
		in.Positions[id] = Point{X: cfg.ContainerPadding, Y: y}
		y += sz.Height
		maxBottom = max(maxBottom, y)
		maxWidth = max(maxWidth, sz.Width)
	}

	in.Width = maxWidth + 2*cfg.ContainerPadding
	in.Height = (maxBottom - minTop) + 2*cfg.ContainerPadding
	return in
}

func columnOrder(g *dag.DAG) []string {
	order := make([]string, 0, g.NodeCount())
	visited := make(map[string]bool, g.NodeCount())

	for _, src := range g.Sources() {
		if visited[src.ID] {
			continue
		}
		visited[src.ID] = true
		queue := []string{src.ID}
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			order = append(order, curr)
			for _, child := range g.Children(curr) {
				if !visited[child] {
					visited[child] = true
					queue = append(queue, child)
				}
			}
		}
	}

	for _, n := range g.Nodes() {
		if !visited[n.ID] {
			order = append(order, n.ID)
		}
	}
	return order
}
