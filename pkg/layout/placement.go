package layout

import (
	"fmt"
	"maps"
	"slices"
)

// Anchor selects where rows of unconnected new elements start.
type Anchor string

const (
	// AnchorBelow starts new rows at x=0 below all existing content.
	AnchorBelow Anchor = "below"
	// AnchorRight starts new rows at y=0 to the right of all existing content.
	AnchorRight Anchor = "right"
)

// ParseAnchor converts a config or flag value to an Anchor. The empty
// string selects AnchorBelow.
func ParseAnchor(s string) (Anchor, error) {
	switch Anchor(s) {
	case "", AnchorBelow:
		return AnchorBelow, nil
	case AnchorRight:
		return AnchorRight, nil
	default:
		return "", fmt.Errorf("unknown anchor %q (want %q or %q)", s, AnchorBelow, AnchorRight)
	}
}

// Place computes positions for every element of idx that has no frozen
// position and returns them. Frozen positions are never changed and are not
// part of the result.
//
// Ranks are processed top to bottom. A rank that holds frozen elements
// weakly connected to new elements is anchored: its new elements share the
// anchors' top Y and are appended right of the anchors. Other ranks become
// a fresh row at the vertical cursor, starting at the policy's baseline. Each
// placed element advances the horizontal cursor by its width plus
// cfg.NodeGap, and a candidate box that would overlap any occupied box is
// pushed right past it. Fresh rows advance the vertical cursor by their
// tallest element plus cfg.RankGap.
//
// sizes must contain every element of idx.
func Place(idx *RankIndex, sizes map[string]Size, frozen map[string]Point, cfg Config, anchor Anchor) map[string]Point {
	placed := make(map[string]Point)

	var occupied []Box
	for _, id := range slices.Sorted(maps.Keys(frozen)) {
		occupied = append(occupied, Box{ID: id, Point: frozen[id], Size: sizes[id]})
	}

	cursorY, baseline := 0.0, 0.0
	if len(occupied) > 0 {
		maxRight, maxBottom := occupied[0].Right(), occupied[0].Bottom()
		for _, b := range occupied[1:] {
			maxRight = max(maxRight, b.Right())
			maxBottom = max(maxBottom, b.Bottom())
		}
		switch anchor {
		case AnchorRight:
			baseline = maxRight + cfg.NodeGap
		default:
			cursorY = maxBottom + cfg.RankGap
		}
	}

	anchored := anchoredElements(idx, frozen)

	for _, row := range idx.Rows {
		var fresh, anchors []string
		for _, id := range row {
			if _, ok := frozen[id]; ok {
				if anchored[id] {
					anchors = append(anchors, id)
				}
				continue
			}
			fresh = append(fresh, id)
		}
		if len(fresh) == 0 {
			continue
		}

		x, y := baseline, cursorY
		if len(anchors) > 0 {
			y = frozen[anchors[0]].Y
			right := frozen[anchors[0]].X + sizes[anchors[0]].Width
			for _, id := range anchors[1:] {
				y = min(y, frozen[id].Y)
				right = max(right, frozen[id].X+sizes[id].Width)
			}
			x = right + cfg.NodeGap
		}

		tallest := 0.0
		for _, id := range fresh {
			b := Box{ID: id, Point: Point{X: x, Y: y}, Size: sizes[id]}
			b.X = pushClear(b, occupied, cfg.NodeGap)
			placed[id] = b.Point
			occupied = append(occupied, b)
			x = b.Right() + cfg.NodeGap
			tallest = max(tallest, b.Height)
		}

		if len(anchors) == 0 {
			cursorY += tallest + cfg.RankGap
		}
	}
	return placed
}

// pushClear moves b right until it overlaps no occupied box and returns the
// resulting X. Each overlap moves b past the overlapping box plus gap, so the
// loop ends after at most len(occupied) moves per box.
func pushClear(b Box, occupied []Box, gap float64) float64 {
	for moved := true; moved; {
		moved = false
		for _, o := range occupied {
			if b.Overlaps(o) {
				b.X = o.Right() + gap
				moved = true
			}
		}
	}
	return b.X
}

// anchoredElements returns the frozen elements that share a weakly
// connected component with at least one new element.
func anchoredElements(idx *RankIndex, frozen map[string]Point) map[string]bool {
	anchored := make(map[string]bool)
	if idx.Graph == nil || len(frozen) == 0 {
		return anchored
	}

	parent := make(map[string]string, idx.Graph.NodeCount())
	var find func(string) string
	find = func(id string) string {
		p, ok := parent[id]
		if !ok || p == id {
			return id
		}
		root := find(p)
		parent[id] = root
		return root
	}
	for _, e := range idx.Graph.Edges() {
		a, b := find(e.From), find(e.To)
		if a != b {
			parent[a] = b
		}
	}

	hasNew := make(map[string]bool)
	for _, n := range idx.Graph.Nodes() {
		if _, ok := frozen[n.ID]; !ok {
			hasNew[find(n.ID)] = true
		}
	}
	for id := range frozen {
		if _, ok := idx.Graph.Node(id); ok && hasNew[find(id)] {
			anchored[id] = true
		}
	}
	return anchored
}
