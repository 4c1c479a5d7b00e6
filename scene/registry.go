package scene

import "github.com/milk9111/openhouse/geom"

// Room is a named axis-aligned area the player may occupy.
type Room struct {
	ID     string
	Floor  Floor
	Bounds geom.Rect
}

// ColliderSet is a named group of static rectangles.
type ColliderSet []geom.Rect

// Registry holds the per-floor collider sets and room bounds. It is
// populated once when the scene is built and read-only afterwards; there is
// no insertion or removal at runtime.
type Registry struct {
	groundStatic     ColliderSet
	groundStructures ColliderSet
	upperStatic      ColliderSet

	groundRooms []Room
	upperRooms  []Room
}

// AnyCollision reports whether the circle at (x, z) overlaps any rect in the
// set, short-circuiting on the first hit.
func AnyCollision(x, z, radius float64, set ColliderSet) bool {
	for _, r := range set {
		if geom.CircleIntersectsRect(x, z, radius, r) {
			return true
		}
	}
	return false
}

// Blocked reports whether the circle at (x, z) overlaps any collider active
// on the given floor. The structures set only applies on the ground floor;
// the upper floor carries no free-standing showpieces.
func (reg *Registry) Blocked(x, z, radius float64, f Floor) bool {
	if f == FloorUpper {
		return AnyCollision(x, z, radius, reg.upperStatic)
	}
	return AnyCollision(x, z, radius, reg.groundStatic) ||
		AnyCollision(x, z, radius, reg.groundStructures)
}

// Rooms returns the room set for a floor.
func (reg *Registry) Rooms(f Floor) []Room {
	if f == FloorUpper {
		return reg.upperRooms
	}
	return reg.groundRooms
}

// InsideAnyRoom reports whether (x, z) falls inside at least one room of the
// given floor.
func (reg *Registry) InsideAnyRoom(x, z float64, f Floor) bool {
	for _, room := range reg.Rooms(f) {
		if room.Bounds.Contains(x, z) {
			return true
		}
	}
	return false
}

// RoomAt returns the first room of the floor containing (x, z).
func (reg *Registry) RoomAt(x, z float64, f Floor) (Room, bool) {
	for _, room := range reg.Rooms(f) {
		if room.Bounds.Contains(x, z) {
			return room, true
		}
	}
	return Room{}, false
}

// Footprint returns the bounding rect of every room on both floors, used to
// size the camera's base half-extent.
func (reg *Registry) Footprint() geom.Rect {
	first := true
	var fp geom.Rect
	for _, rooms := range [][]Room{reg.groundRooms, reg.upperRooms} {
		for _, room := range rooms {
			b := room.Bounds
			if first {
				fp = b
				first = false
				continue
			}
			if b.MinX < fp.MinX {
				fp.MinX = b.MinX
			}
			if b.MaxX > fp.MaxX {
				fp.MaxX = b.MaxX
			}
			if b.MinZ < fp.MinZ {
				fp.MinZ = b.MinZ
			}
			if b.MaxZ > fp.MaxZ {
				fp.MaxZ = b.MaxZ
			}
		}
	}
	return fp
}

// StaticSet returns a collider set by name. Unknown names return nil.
func (reg *Registry) StaticSet(name string) ColliderSet {
	switch name {
	case "ground_static":
		return reg.groundStatic
	case "ground_structures":
		return reg.groundStructures
	case "upper_static":
		return reg.upperStatic
	}
	return nil
}
