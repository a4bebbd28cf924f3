package dag_test

import (
	"fmt"

	"github.com/matzehuels/layercanvas/pkg/dag"
)

func ExampleDAG_basic() {
	// A root feeding a container and a free node
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "A"})
	_ = g.AddNode(dag.Node{ID: "B"})
	_ = g.AddNode(dag.Node{ID: "success", Kind: dag.NodeKindContainer})
	_ = g.AddEdge(dag.Edge{From: "A", To: "B"})
	_ = g.AddEdge(dag.Edge{From: "A", To: "success"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Children of A:", g.Children("A"))
	// Output:
	// Nodes: 3
	// Edges: 2
	// Children of A: [B success]
}

func ExampleDAG_Sources() {
	// Sources come back in insertion order
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "second"})
	_ = g.AddNode(dag.Node{ID: "first"})
	_ = g.AddNode(dag.Node{ID: "shared"})
	_ = g.AddEdge(dag.Edge{From: "second", To: "shared"})
	_ = g.AddEdge(dag.Edge{From: "first", To: "shared"})

	fmt.Println("Sources:", dag.NodeIDs(g.Sources()))
	// Output:
	// Sources: [second first]
}
