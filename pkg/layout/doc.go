// Package layout computes positions for an incrementally growing canvas of
// nodes and containers.
//
// # Overview
//
// Layout happens in three steps, each a pure function over plain values:
//
//  1. [Rank] collapses container children onto their container, assigns
//     every top-level element a rank by breadth-first traversal and orders
//     elements within each rank.
//  2. [LayoutContainer] stacks a container's children in one vertical column
//     and sizes the container box around them.
//  3. [Place] positions the elements that have no position yet, leaving
//     frozen positions untouched and never overlapping an occupied box.
//
// The canvas package drives these steps once per inserted fragment.
//
// # Coordinates
//
// Positions are top-left corners with Y growing downward. Top-level elements
// use absolute canvas coordinates; container children use coordinates
// relative to their container's top-left corner.
//
// # Ranking Heuristic
//
// Ranks come from [transform.AssignRanks]: the first rank an element receives
// wins. Elements reachable along several paths may therefore sit closer to a
// root than their longest path suggests, and elements only reachable through
// a cycle fall back to rank 0.
//
// # Anchoring
//
// New elements that are connected to already placed elements are appended to
// the right of those elements in the same row. Everything else starts a fresh
// row below the existing content ([AnchorBelow]) or a fresh column to the
// right of it ([AnchorRight]).
//
// [transform.AssignRanks]: github.com/matzehuels/layercanvas/pkg/dag/transform
package layout
