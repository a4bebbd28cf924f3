// Package render produces static previews of canvas snapshots.
//
// The interactive canvas is drawn by an external consumer from the node and
// edge records; this package only exists so positions can be inspected
// without one.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG to other formats with the external
// rsvg-convert tool (from librsvg):
//
//	svg, err := dot.RenderSVG(ctx, dot.ToDOT(snap, dot.Options{}))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// # Subpackages
//
//   - [dot]: Graphviz DOT output with pinned positions, rendered to SVG
//
// [dot]: github.com/matzehuels/layercanvas/pkg/render/dot
package render
