package layout

// Point is a top-left corner.
type Point struct {
	X, Y float64
}

// Size is a box extent.
type Size struct {
	Width, Height float64
}

// Box is an axis-aligned rectangle placed at a point.
type Box struct {
	ID string
	Point
	Size
}

// Right returns the box's right edge.
func (b Box) Right() float64 { return b.X + b.Width }

// Bottom returns the box's bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.Height }

// Overlaps reports whether two boxes share interior area. Boxes that only
// touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.Right() && o.X < b.Right() &&
		b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Contains reports whether o lies fully inside b.
func (b Box) Contains(o Box) bool {
	return o.X >= b.X && o.Y >= b.Y && o.Right() <= b.Right() && o.Bottom() <= b.Bottom()
}
