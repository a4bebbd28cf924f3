package layout_test

import (
	"fmt"

	"github.com/matzehuels/layercanvas/pkg/layout"
)

func ExampleRank() {
	idx := layout.Rank(
		[]string{"start", "checks", "done"},
		[]layout.Edge{{From: "start", To: "lint"}, {From: "test", To: "done"}},
		map[string]string{"lint": "checks", "test": "checks"},
	)

	for rank, row := range idx.Rows {
		fmt.Println(rank, row)
	}
	// Output:
	// 0 [start]
	// 1 [checks]
	// 2 [done]
}

func ExampleLayoutContainer() {
	cfg := layout.DefaultConfig()
	kids := []layout.Box{
		{ID: "lint", Size: layout.Size{Width: 172, Height: 36}},
		{ID: "test", Size: layout.Size{Width: 172, Height: 36}},
	}

	in := layout.LayoutContainer(kids, []layout.Edge{{From: "lint", To: "test"}}, cfg)

	fmt.Println("Size:", in.Width, "x", in.Height)
	fmt.Println("Order:", in.Order)
	fmt.Println("test at:", in.Positions["test"])
	// Output:
	// Size: 212 x 132
	// Order: [lint test]
	// test at: {20 76}
}

func ExamplePlace() {
	cfg := layout.DefaultConfig()
	idx := layout.Rank([]string{"a", "b", "c"}, []layout.Edge{{From: "a", To: "b"}, {From: "a", To: "c"}}, nil)
	sizes := map[string]layout.Size{
		"a": {Width: 172, Height: 36},
		"b": {Width: 172, Height: 36},
		"c": {Width: 172, Height: 36},
	}

	placed := layout.Place(idx, sizes, nil, cfg, layout.AnchorBelow)

	for _, id := range []string{"a", "b", "c"} {
		fmt.Println(id, placed[id])
	}
	// Output:
	// a {0 0}
	// b {0 116}
	// c {222 116}
}
