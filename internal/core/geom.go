// Package core provides fundamental types shared by the simulation and the
// platform layer. It has no external dependencies (especially no Bubble Tea)
// so the game logic stays pure and testable.
package core

// Rect is an axis-aligned box in integer viewport pixels.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Overlap reports on which axes two boxes strictly overlap.
type Overlap struct {
	X bool
	Y bool
}

// Hit returns true when both axes overlap, i.e. the boxes intersect.
func (o Overlap) Hit() bool {
	return o.X && o.Y
}

// Collide tests two boxes with the separating axis rule.
// Projections that only touch (right_a == left_b) do not overlap.
func Collide(a, b Rect) Overlap {
	return Overlap{
		X: !(a.Right() <= b.X || b.Right() <= a.X),
		Y: !(a.Bottom() <= b.Y || b.Bottom() <= a.Y),
	}
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	return Collide(r, other).Hit()
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
