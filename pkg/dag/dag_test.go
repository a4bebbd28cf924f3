package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New(nil)

	if err := g.AddNode(Node{ID: ""}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want %v", err, ErrInvalidNodeID)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a): %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(a) twice = %v, want %v", err, ErrDuplicateNodeID)
	}

	n, ok := g.Node("a")
	if !ok {
		t.Fatal("node a not found")
	}
	if n.Meta == nil {
		t.Error("Meta should be initialized")
	}
}

func TestAddEdge(t *testing.T) {
	g := New(nil)
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})

	tests := []struct {
		name string
		edge Edge
		want error
	}{
		{"valid", Edge{From: "a", To: "b"}, nil},
		{"duplicate", Edge{From: "a", To: "b"}, ErrDuplicateEdge},
		{"unknown source", Edge{From: "x", To: "b"}, ErrUnknownSourceNode},
		{"unknown target", Edge{From: "a", To: "x"}, ErrUnknownTargetNode},
		{"self loop", Edge{From: "b", To: "b"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge(%v) = %v, want %v", tt.edge, err, tt.want)
			}
		})
	}

	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestInsertionOrder(t *testing.T) {
	g := New(nil)
	ids := []string{"z", "a", "m", "b"}
	for _, id := range ids {
		g.AddNode(Node{ID: id})
	}
	g.AddEdge(Edge{From: "z", To: "b"})

	if got := NodeIDs(g.Nodes()); !slices.Equal(got, ids) {
		t.Errorf("Nodes() = %v, want %v", got, ids)
	}
	if got := NodeIDs(g.Sources()); !slices.Equal(got, []string{"z", "a", "m"}) {
		t.Errorf("Sources() = %v, want [z a m]", got)
	}
	if got := NodeIDs(g.Sinks()); !slices.Equal(got, []string{"a", "m", "b"}) {
		t.Errorf("Sinks() = %v, want [a m b]", got)
	}
}

func TestSetRows(t *testing.T) {
	g := New(nil)
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddNode(Node{ID: "c"})

	g.SetRows(map[string]int{"b": 1, "c": 1})

	if got := NodeIDs(g.NodesInRow(1)); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("NodesInRow(1) = %v, want [b c]", got)
	}
	if got := g.RowIDs(); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("RowIDs() = %v, want [0 1]", got)
	}
	if g.MaxRow() != 1 {
		t.Errorf("MaxRow() = %d, want 1", g.MaxRow())
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New(nil)
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddEdge(Edge{From: "a", To: "b"})

	g.RemoveEdge("a", "b")

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	if g.InDegree("b") != 0 || g.OutDegree("a") != 0 {
		t.Error("adjacency not updated after RemoveEdge")
	}
}

func TestClone(t *testing.T) {
	g := New(nil)
	g.AddNode(Node{ID: "a", Kind: NodeKindContainer})
	g.AddNode(Node{ID: "b"})
	g.AddEdge(Edge{From: "a", To: "b"})

	c := g.Clone()
	c.RemoveEdge("a", "b")
	c.AddNode(Node{ID: "c"})

	if g.EdgeCount() != 1 || g.NodeCount() != 2 {
		t.Error("Clone should not share structure with the original")
	}
	n, _ := c.Node("a")
	if !n.IsContainer() {
		t.Error("Clone should preserve node kind")
	}
}
