package geom

// Rect is an axis-aligned rectangle on the XZ ground plane. Rects are built
// once during scene setup and never mutated afterwards.
type Rect struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// containsEpsilon tolerates float error at shared walls so a point sitting
// exactly on a boundary between two rooms is inside both.
const containsEpsilon = 1e-4

// Contains reports whether (x, z) falls within the rectangle.
func (r Rect) Contains(x, z float64) bool {
	return x >= r.MinX-containsEpsilon && x <= r.MaxX+containsEpsilon &&
		z >= r.MinZ-containsEpsilon && z <= r.MaxZ+containsEpsilon
}

// CircleIntersectsRect reports whether the circle at (x, z) overlaps r.
// The center is clamped to the rect to find the closest point; the circle
// collides iff that point is strictly closer than the radius.
func CircleIntersectsRect(x, z, radius float64, r Rect) bool {
	cx := Clamp(x, r.MinX, r.MaxX)
	cz := Clamp(z, r.MinZ, r.MaxZ)
	dx := x - cx
	dz := z - cz
	return dx*dx+dz*dz < radius*radius
}
