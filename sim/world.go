package sim

import (
	"math"

	"github.com/milk9111/openhouse/geom"
	"github.com/milk9111/openhouse/scene"
)

// World bundles the immutable scene data the resolver consults every frame.
type World struct {
	Registry       *scene.Registry
	Stair          geom.Stair
	Behavior       geom.StairBehavior
	UpperElevation float64
}

// NewWorld builds a World from a loaded scene.
func NewWorld(s *scene.Scene) *World {
	return &World{
		Registry:       s.Registry,
		Stair:          s.Stair,
		Behavior:       s.StairBehavior,
		UpperElevation: s.UpperElevation,
	}
}

// CanOccupy reports whether a player circle may stand at (x, z) on the
// given floor: inside at least one of that floor's rooms and clear of its
// colliders. It is a pure predicate; it never transitions anything.
func (w *World) CanOccupy(x, z, radius float64, f scene.Floor) bool {
	if !w.Registry.InsideAnyRoom(x, z, f) {
		return false
	}
	return !w.Registry.Blocked(x, z, radius, f)
}

// PredictFloor applies the floor transition predicate with this world's
// stair geometry.
func (w *World) PredictFloor(x, z float64, current scene.Floor) scene.Floor {
	return PredictFloor(w.Stair, w.Behavior, x, z, current)
}

// SurfaceY returns the player's vertical placement at (x, z). The y value
// is always derived from floor membership and ramp height, never driven
// independently: on the upper floor it is the fixed elevation, on the
// ground floor it follows the ramp so walking the stair rises smoothly
// without per-step collision.
func (w *World) SurfaceY(x, z, radius float64, f scene.Floor) float64 {
	if f == scene.FloorUpper {
		return radius + w.UpperElevation
	}
	h := geom.RampHeight(w.Stair, w.Behavior, x, z)
	return radius + math.Min(h, w.UpperElevation)
}
