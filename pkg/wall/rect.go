package wall

import "math"

// Rect is the axis-aligned bounding box of a rotated word, stored by center.
type Rect struct {
	X, Y     float64
	W, H     float64
	Rotation float64
}

// Left returns the minimum x coordinate of the box.
func (r Rect) Left() float64 { return r.X - r.W/2 }

// Right returns the maximum x coordinate of the box.
func (r Rect) Right() float64 { return r.X + r.W/2 }

// Top returns the minimum y coordinate of the box (y grows downward).
func (r Rect) Top() float64 { return r.Y - r.H/2 }

// Bottom returns the maximum y coordinate of the box.
func (r Rect) Bottom() float64 { return r.Y + r.H/2 }

// Overlaps reports whether two boxes intersect after both are scaled by
// factor around their centers. A factor below 1 lets words pack more
// tightly; boxes that only touch do not overlap.
func (r Rect) Overlaps(o Rect, factor float64) bool {
	dx := math.Abs(r.X - o.X)
	dy := math.Abs(r.Y - o.Y)
	return dx < (r.W+o.W)/2*factor && dy < (r.H+o.H)/2*factor
}

// Within reports whether the box lies inside the canvas.
func (r Rect) Within(c Canvas) bool {
	return r.Left() >= 0 && r.Top() >= 0 && r.Right() <= c.Width && r.Bottom() <= c.Height
}

// RotatedBounds returns the size of the axis-aligned box that encloses a
// w×h rectangle rotated by deg degrees.
func RotatedBounds(w, h, deg float64) (float64, float64) {
	theta := deg * math.Pi / 180
	cos, sin := math.Abs(math.Cos(theta)), math.Abs(math.Sin(theta))
	return w*cos + h*sin, w*sin + h*cos
}
