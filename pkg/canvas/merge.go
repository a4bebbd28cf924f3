package canvas

import (
	"strings"

	"github.com/matzehuels/layercanvas/pkg/dag/transform"
	lcerrors "github.com/matzehuels/layercanvas/pkg/errors"
	"github.com/matzehuels/layercanvas/pkg/graph"
	"github.com/matzehuels/layercanvas/pkg/layout"
)

// merger computes the snapshot that results from adding one fragment to cur.
// It never modifies cur.
type merger struct {
	cfg            layout.Config
	anchor         layout.Anchor
	renderInternal bool
	ns             namespace
	cur            *graph.Snapshot
	res            *InsertResult

	existing map[string]*graph.NodeRecord
	edgeIDs  map[string]bool
}

type newNode struct {
	id        string
	label     string
	size      layout.Size
	container string
}

type newContainer struct {
	id       string
	label    string
	children []string
	interior layout.Interior
}

// plan holds the rewritten fragment, split into what is new and what
// already exists.
type plan struct {
	nodes map[string]*newNode
	// containers is keyed by local ID, byID by canvas ID.
	containers map[string]*newContainer
	byID       map[string]*newContainer
	// order lists new top-level element IDs in fragment order.
	order []string
	edges []layout.Edge
}

func newMerger(cur *graph.Snapshot, ns namespace, opts Options, res *InsertResult) *merger {
	m := &merger{
		cfg:            opts.Layout,
		anchor:         opts.Anchor,
		renderInternal: opts.RenderInternalEdges,
		ns:             ns,
		cur:            cur,
		res:            res,
		existing:       make(map[string]*graph.NodeRecord, len(cur.Nodes)),
		edgeIDs:        make(map[string]bool, len(cur.Edges)+len(cur.Internal)),
	}
	for i := range cur.Nodes {
		m.existing[cur.Nodes[i].ID] = &cur.Nodes[i]
	}
	for _, e := range cur.Edges {
		m.edgeIDs[e.ID] = true
	}
	for _, e := range cur.Internal {
		m.edgeIDs[e.ID] = true
	}
	return m
}

// merge runs the full insertion and returns the next snapshot. A MISSING_ROOT
// error leaves nothing half-applied because cur is never written.
func (m *merger) merge(frag graph.Fragment) (*graph.Snapshot, error) {
	owner := m.claimChildren(frag)
	if err := checkRoot(frag, owner); err != nil {
		return nil, err
	}

	p := m.plan(frag, owner)
	m.layoutContainers(p)
	placed := m.place(p)

	next := m.cur.Clone()
	m.appendNodes(next, p, placed)
	m.appendEdges(next, p)
	return next, nil
}

// claimChildren assigns each fragment-local child to the first container
// listing it.
func (m *merger) claimChildren(frag graph.Fragment) map[string]string {
	owner := make(map[string]string)
	for _, c := range frag.Containers {
		for _, child := range c.Children {
			switch prev, ok := owner[child]; {
			case m.ns.containers[child]:
				m.res.warn(lcerrors.ErrCodeChildConflict, child, "container %q cannot contain container %q", c.ID, child)
			case ok && prev != c.ID:
				m.res.warn(lcerrors.ErrCodeChildConflict, child, "already a child of %q, ignored in %q", prev, c.ID)
			case !ok:
				owner[child] = c.ID
			}
		}
	}
	return owner
}

// checkRoot rejects fragments whose own top-level elements all have an
// incoming edge. Edges to elements outside the fragment are not considered.
func checkRoot(frag graph.Fragment, owner map[string]string) error {
	var elements []string
	for _, n := range frag.Nodes {
		if _, ok := owner[n.ID]; !ok {
			elements = append(elements, n.ID)
		}
	}
	for _, c := range frag.Containers {
		elements = append(elements, c.ID)
	}

	edges := make([]layout.Edge, len(frag.Edges))
	for i, e := range frag.Edges {
		edges[i] = layout.Edge{From: e.Source, To: e.Target}
	}
	idx := layout.Rank(elements, edges, owner)
	if idx.Graph.NodeCount() == 0 || len(idx.Graph.Sources()) > 0 {
		return nil
	}

	var cycle []string
	for _, be := range transform.BackEdges(idx.Graph) {
		cycle = append(cycle, be[0]+"->"+be[1])
	}
	return lcerrors.New(lcerrors.ErrCodeMissingRoot,
		"every top-level element has an incoming edge (cycle closed by %s)", strings.Join(cycle, ", "))
}

func (m *merger) plan(frag graph.Fragment, owner map[string]string) *plan {
	p := &plan{
		nodes:      make(map[string]*newNode),
		containers: make(map[string]*newContainer),
		byID:       make(map[string]*newContainer),
	}

	// Undeclared children are declared implicitly with the default size.
	nodes := append([]graph.FragmentNode(nil), frag.Nodes...)
	declared := make(map[string]bool, len(frag.Nodes))
	for _, n := range frag.Nodes {
		declared[n.ID] = true
	}
	for _, c := range frag.Containers {
		for _, child := range c.Children {
			if owner[child] == c.ID && !declared[child] {
				declared[child] = true
				nodes = append(nodes, graph.FragmentNode{ID: child})
			}
		}
	}

	for _, c := range frag.Containers {
		id := m.ns.container(c.ID)
		if _, ok := m.existing[id]; ok {
			m.res.Skipped++
			continue
		}
		label := c.Label
		if label == "" {
			label = c.ID
		}
		nc := &newContainer{id: id, label: label}
		p.containers[c.ID] = nc
		p.byID[id] = nc
	}

	var localOrder []string
	for _, n := range nodes {
		id := m.ns.node(n.ID)
		if _, ok := m.existing[id]; ok {
			m.res.Skipped++
			if c, ok := p.containers[owner[n.ID]]; ok {
				m.res.warn(lcerrors.ErrCodeChildConflict, id, "already on the canvas, not moved into %q", c.id)
			}
			continue
		}
		label := n.Label
		if label == "" {
			label = n.ID
		}
		nn := &newNode{id: id, label: label, size: m.cfg.SizeOrDefault(n.Width, n.Height)}
		if local, ok := owner[n.ID]; ok {
			if c, ok := p.containers[local]; ok {
				nn.container = c.id
				c.children = append(c.children, id)
			} else {
				m.res.warn(lcerrors.ErrCodeChildConflict, id, "container %q is already placed, added as top-level node", m.ns.container(local))
			}
		}
		p.nodes[id] = nn
		localOrder = append(localOrder, n.ID)
	}

	// Containers take the position of their first child in node order.
	seen := make(map[string]bool)
	for _, local := range localOrder {
		nn := p.nodes[m.ns.node(local)]
		if nn.container == "" {
			p.order = append(p.order, nn.id)
			continue
		}
		if !seen[nn.container] {
			seen[nn.container] = true
			p.order = append(p.order, nn.container)
		}
	}
	for _, c := range frag.Containers {
		if nc, ok := p.containers[c.ID]; ok && !seen[nc.id] {
			seen[nc.id] = true
			p.order = append(p.order, nc.id)
		}
	}

	p.edges = make([]layout.Edge, len(frag.Edges))
	for i, e := range frag.Edges {
		p.edges[i] = layout.Edge{From: m.ns.ref(e.Source), To: m.ns.ref(e.Target)}
	}
	return p
}

func (m *merger) layoutContainers(p *plan) {
	for _, c := range p.byID {
		kids := make([]layout.Box, len(c.children))
		member := make(map[string]bool, len(c.children))
		for i, id := range c.children {
			kids[i] = layout.Box{ID: id, Size: p.nodes[id].size}
			member[id] = true
		}
		var internal []layout.Edge
		for _, e := range p.edges {
			if member[e.From] && member[e.To] {
				internal = append(internal, e)
			}
		}
		c.interior = layout.LayoutContainer(kids, internal, m.cfg)
	}
}

// owners maps every container child on the merged canvas to its container.
func (m *merger) owners(p *plan) map[string]string {
	owner := make(map[string]string)
	for _, n := range m.cur.Nodes {
		if n.IsChild() {
			owner[n.ID] = n.ParentID
		}
	}
	for id, n := range p.nodes {
		if n.container != "" {
			owner[id] = n.container
		}
	}
	return owner
}

func (m *merger) place(p *plan) map[string]layout.Point {
	var elements []string
	sizes := make(map[string]layout.Size)
	frozen := make(map[string]layout.Point)
	for _, n := range m.cur.Nodes {
		if n.IsChild() {
			continue
		}
		elements = append(elements, n.ID)
		sizes[n.ID] = layout.Size{Width: n.Width, Height: n.Height}
		frozen[n.ID] = layout.Point{X: n.Position.X, Y: n.Position.Y}
	}
	for _, id := range p.order {
		elements = append(elements, id)
		if c, ok := p.byID[id]; ok {
			sizes[id] = c.interior.Size
		} else {
			sizes[id] = p.nodes[id].size
		}
	}

	var edges []layout.Edge
	for _, e := range m.cur.Edges {
		edges = append(edges, layout.Edge{From: e.Source, To: e.Target})
	}
	for _, e := range m.cur.Internal {
		edges = append(edges, layout.Edge{From: e.Source, To: e.Target})
	}
	edges = append(edges, p.edges...)

	idx := layout.Rank(elements, edges, m.owners(p))
	return layout.Place(idx, sizes, frozen, m.cfg, m.anchor)
}

func (m *merger) appendNodes(next *graph.Snapshot, p *plan, placed map[string]layout.Point) {
	for _, id := range p.order {
		pos := placed[id]
		c, ok := p.byID[id]
		if !ok {
			n := p.nodes[id]
			next.Nodes = append(next.Nodes, m.nodeRecord(n, graph.Position{X: pos.X, Y: pos.Y}))
			m.res.Nodes++
			continue
		}

		next.Nodes = append(next.Nodes, graph.NodeRecord{
			ID:        c.id,
			Type:      graph.NodeTypeGroup,
			Position:  graph.Position{X: pos.X, Y: pos.Y},
			Width:     c.interior.Width,
			Height:    c.interior.Height,
			Data:      graph.NodeData{Label: c.label},
			Draggable: true,
			Style:     graph.DefaultContainerStyle(),
			Children:  c.interior.Order,
			Fragment:  m.ns.prefix,
		})
		m.res.Containers++

		for _, childID := range c.interior.Order {
			rel := c.interior.Positions[childID]
			rec := m.nodeRecord(p.nodes[childID], graph.Position{X: rel.X, Y: rel.Y})
			rec.ParentID = c.id
			rec.Extent = graph.ExtentParent
			next.Nodes = append(next.Nodes, rec)
			m.res.Nodes++
		}
	}
}

func (m *merger) nodeRecord(n *newNode, pos graph.Position) graph.NodeRecord {
	return graph.NodeRecord{
		ID:        n.id,
		Position:  pos,
		Width:     n.size.Width,
		Height:    n.size.Height,
		Data:      graph.NodeData{Label: n.label},
		Draggable: true,
		Fragment:  m.ns.prefix,
	}
}

// appendEdges emits records for the fragment's edges. Edges between two
// children of one container go to the internal list when the container was
// declared by this fragment and are not stored otherwise.
func (m *merger) appendEdges(next *graph.Snapshot, p *plan) {
	owner := m.owners(p)
	for _, e := range p.edges {
		rec := graph.NewEdgeRecord(e.From, e.To)
		if m.edgeIDs[rec.ID] {
			m.res.Skipped++
			continue
		}
		if missing := m.missingEndpoint(p, e); missing != "" {
			m.res.Dropped++
			m.res.warn(lcerrors.ErrCodeDanglingEdge, rec.ID, "endpoint %q does not exist", missing)
			continue
		}
		m.edgeIDs[rec.ID] = true

		c, inside := owner[e.From]
		if !inside || owner[e.To] != c {
			next.Edges = append(next.Edges, rec)
			m.res.Edges++
			continue
		}
		if _, ok := p.byID[c]; !ok {
			m.res.Suppressed++
			continue
		}
		if m.renderInternal {
			next.Edges = append(next.Edges, rec)
		} else {
			next.Internal = append(next.Internal, rec)
		}
		m.res.InternalEdges++
	}
}

func (m *merger) missingEndpoint(p *plan, e layout.Edge) string {
	for _, id := range []string{e.From, e.To} {
		if _, ok := m.existing[id]; ok {
			continue
		}
		if _, ok := p.nodes[id]; ok {
			continue
		}
		if _, ok := p.byID[id]; ok {
			continue
		}
		return id
	}
	return ""
}
