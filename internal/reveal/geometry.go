package reveal

// Rect is an axis-aligned rectangle in device-independent pixels, y growing downward.
type Rect struct {
	X, Y, W, H float64
}

// Area returns the rectangle's area, or 0 for degenerate rectangles.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Intersect returns the overlap of r and o. The result has zero area when they do not overlap.
//
// Parameters:
//   - o: the other rectangle
//
// Returns:
//   - Rect: the intersection
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Contains reports whether the point (x, y) lies within r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// InsetBottom shrinks the rectangle's bottom edge by m pixels.
//
// Parameters:
//   - m: the inset in pixels; the height never drops below zero
//
// Returns:
//   - Rect: the inset rectangle
func (r Rect) InsetBottom(m float64) Rect {
	r.H = max(r.H-m, 0)
	return r
}

// VisibleRatio returns the fraction of block's area that lies inside root.
// A zero-area block counts as fully visible when its origin lies inside root.
//
// Parameters:
//   - block: the observed block
//   - root: the effective viewport
//
// Returns:
//   - float64: the visible fraction in [0, 1]
func VisibleRatio(block, root Rect) float64 {
	area := block.Area()
	if area == 0 {
		if root.Contains(block.X, block.Y) {
			return 1
		}
		return 0
	}
	return block.Intersect(root).Area() / area
}
