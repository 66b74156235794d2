package physics

// Rect is an axis-aligned rectangle in screen space.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Center returns the rectangle's center point.
func (r Rect) Center() Vec {
	return Vec{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

// BottomCenter returns the midpoint of the rectangle's bottom edge.
func (r Rect) BottomCenter() Vec {
	return Vec{(r.Left + r.Right) / 2, r.Bottom}
}

// Translate returns the rectangle shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.Left + dx, r.Top + dy, r.Right + dx, r.Bottom + dy}
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// CircleRectOverlap checks if a circle intersects an axis-aligned rectangle.
// Works by clamping the circle center onto the rectangle and comparing the
// distance to the nearest rect point against the radius.
func CircleRectOverlap(cx, cy, radius float64, r Rect) bool {
	nx := Clamp(cx, r.Left, r.Right)
	ny := Clamp(cy, r.Top, r.Bottom)
	return DistanceSquared(cx, cy, nx, ny) <= radius*radius
}
