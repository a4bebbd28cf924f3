package transform

import (
	"slices"
	"testing"

	"github.com/matzehuels/layercanvas/pkg/dag"
)

func TestBackEdges_NoCycles(t *testing.T) {
	g := dag.New(nil)
	g.AddNode(dag.Node{ID: "a"})
	g.AddNode(dag.Node{ID: "b"})
	g.AddNode(dag.Node{ID: "c"})
	g.AddEdge(dag.Edge{From: "a", To: "b"})
	g.AddEdge(dag.Edge{From: "b", To: "c"})

	if got := BackEdges(g); len(got) != 0 {
		t.Errorf("BackEdges() = %v, want none", got)
	}
}

func TestBackEdges_SimpleCycle(t *testing.T) {
	g := dag.New(nil)
	g.AddNode(dag.Node{ID: "a"})
	g.AddNode(dag.Node{ID: "b"})
	g.AddEdge(dag.Edge{From: "a", To: "b"})
	g.AddEdge(dag.Edge{From: "b", To: "a"})

	got := BackEdges(g)
	if len(got) != 1 || got[0] != [2]string{"b", "a"} {
		t.Errorf("BackEdges() = %v, want [[b a]]", got)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("BackEdges must not modify the graph, EdgeCount() = %d", g.EdgeCount())
	}
}

func TestBackEdges_TriangleBehindRoot(t *testing.T) {
	// root → a → b → c → a
	g := dag.New(nil)
	for _, id := range []string{"root", "a", "b", "c"} {
		g.AddNode(dag.Node{ID: id})
	}
	g.AddEdge(dag.Edge{From: "root", To: "a"})
	g.AddEdge(dag.Edge{From: "a", To: "b"})
	g.AddEdge(dag.Edge{From: "b", To: "c"})
	g.AddEdge(dag.Edge{From: "c", To: "a"})

	got := BackEdges(g)
	if !slices.Equal(got, [][2]string{{"c", "a"}}) {
		t.Errorf("BackEdges() = %v, want [[c a]]", got)
	}
}

func TestBackEdges_SelfLoop(t *testing.T) {
	g := dag.New(nil)
	g.AddNode(dag.Node{ID: "a"})
	g.AddEdge(dag.Edge{From: "a", To: "a"})

	got := BackEdges(g)
	if len(got) != 1 || got[0] != [2]string{"a", "a"} {
		t.Errorf("BackEdges() = %v, want [[a a]]", got)
	}
}

func TestBackEdges_DiamondNoCycle(t *testing.T) {
	//   a
	//  / \
	// b   c
	//  \ /
	//   d
	g := dag.New(nil)
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddNode(dag.Node{ID: id})
	}
	g.AddEdge(dag.Edge{From: "a", To: "b"})
	g.AddEdge(dag.Edge{From: "a", To: "c"})
	g.AddEdge(dag.Edge{From: "b", To: "d"})
	g.AddEdge(dag.Edge{From: "c", To: "d"})

	if got := BackEdges(g); len(got) != 0 {
		t.Errorf("BackEdges() = %v, want none", got)
	}
}

func TestBackEdges_EmptyGraph(t *testing.T) {
	if got := BackEdges(dag.New(nil)); len(got) != 0 {
		t.Errorf("BackEdges() = %v, want none", got)
	}
}
