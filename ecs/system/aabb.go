package system

// AABB is an axis-aligned box in world units. X, Y is the bottom-left corner.
type AABB struct {
	X float64
	Y float64
	W float64
	H float64
}

func centeredAABB(cx, cy, w, h float64) AABB {
	return AABB{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Overlaps treats touching edges as not overlapping.
func (a AABB) Overlaps(b AABB) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

func (a AABB) MaxX() float64 { return a.X + a.W }
func (a AABB) MaxY() float64 { return a.Y + a.H }
