package sprite

// Rect is an axis-aligned rectangle. It serves both as a destination
// region in pixels and, via unit coordinates, as a source region of a
// texture.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// RectXYWH creates a rectangle from an origin and a size.
func RectXYWH(x, y, w, h float32) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// UnitRect is the full unit square, covering an entire texture when
// used as a source region.
var UnitRect = Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}

// Width returns the rectangle width.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the rectangle height.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// Empty returns true if the rectangle encloses no area.
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Canon returns the canonical form of the rectangle, with min
// coordinates less than or equal to max coordinates.
func (r Rect) Canon() Rect {
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = r.MaxY, r.MinY
	}
	return r
}

// Intersect returns the largest rectangle contained by both r and s.
// If the rectangles do not overlap, the result is empty.
func (r Rect) Intersect(s Rect) Rect {
	if s.MinX > r.MinX {
		r.MinX = s.MinX
	}
	if s.MinY > r.MinY {
		r.MinY = s.MinY
	}
	if s.MaxX < r.MaxX {
		r.MaxX = s.MaxX
	}
	if s.MaxY < r.MaxY {
		r.MaxY = s.MaxY
	}
	if r.Empty() {
		return Rect{}
	}
	return r
}

// Contains returns true if the point lies inside the rectangle.
// Points on the min edges are inside; points on the max edges are not.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Translated returns the rectangle moved by (dx, dy).
func (r Rect) Translated(dx, dy float32) Rect {
	return Rect{
		MinX: r.MinX + dx,
		MinY: r.MinY + dy,
		MaxX: r.MaxX + dx,
		MaxY: r.MaxY + dy,
	}
}
