// Package dot renders canvas snapshots as Graphviz diagrams with every node
// pinned at its computed position.
//
// # Usage
//
//	src := dot.ToDOT(snap, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//
// # Coordinates
//
// Canvas coordinates have Y growing downward and name top-left corners.
// Graphviz positions name node centers with Y growing upward, so [ToDOT]
// converts every box and flips the Y axis. Container children are converted
// from container-relative to absolute coordinates. The neato engine keeps
// pinned positions as given, so the preview shows the layout unchanged.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package dot
