// Package pkg provides the core libraries for layercanvas incremental graph
// layout.
//
// # Overview
//
// Layercanvas places graph fragments (nodes, edges and containers) on a
// shared canvas. Each insertion is laid out in free space while everything
// already on the canvas keeps its position. The pkg directory is organized
// as:
//
//  1. [dag] - Directed graph structure and rank transformations
//  2. [layout] - Rank assignment, container interiors and rank placement
//  3. [canvas] - Incremental merge of fragments into a canvas
//  4. [graph] - Fragment input and snapshot output records
//  5. [store] - Snapshot persistence (file, Redis, MongoDB)
//  6. [pipeline] - Orchestration (load → insert → save → render)
//  7. [render] - Static previews via Graphviz
//
// # Architecture
//
// The typical data flow through layercanvas:
//
//	Fragment (JSON/TOML)
//	         ↓
//	    [canvas] package (prefix IDs, merge, detect missing roots)
//	         ↓
//	    [layout] package (ranks, container columns, placement)
//	         ↓
//	    [graph] snapshot (node and edge records)
//	         ↓
//	    [store] / [render] (persist, preview)
//
// # Quick Start
//
//	c, _ := canvas.New(canvas.Options{})
//	frag, _ := graph.ReadFragmentFile("fragment.json")
//	res, err := c.Insert(ctx, frag, canvas.InsertOptions{})
//	snap := c.Snapshot()
//
// [dag]: github.com/matzehuels/layercanvas/pkg/dag
// [layout]: github.com/matzehuels/layercanvas/pkg/layout
// [canvas]: github.com/matzehuels/layercanvas/pkg/canvas
// [graph]: github.com/matzehuels/layercanvas/pkg/graph
// [store]: github.com/matzehuels/layercanvas/pkg/store
// [pipeline]: github.com/matzehuels/layercanvas/pkg/pipeline
// [render]: github.com/matzehuels/layercanvas/pkg/render
package pkg
