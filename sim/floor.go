// Package sim is the spatial simulation core: floor membership, collision
// constrained movement and the player state it owns.
package sim

import (
	"github.com/milk9111/openhouse/geom"
	"github.com/milk9111/openhouse/scene"
)

// PredictFloor decides floor membership from a position and the current
// floor. The upward and downward crossings use thresholds at opposite ends
// of the run, so a player straddling either edge keeps their current floor
// instead of toggling every frame.
//
// Climbing happens on the ground floor: the ramp height carries the player
// up smoothly, and membership flips to upper only within a quarter step of
// the full rise (or once clear of the top tread onto the landing). A
// descending player stays at the upper elevation across the stairwell and
// flips back to ground within half a step of the bottom tread. The run
// between the two thresholds is the band where the current floor is kept.
func PredictFloor(s geom.Stair, b geom.StairBehavior, x, z float64, current scene.Floor) scene.Floor {
	if s.Run() == 0 {
		return current
	}
	if !s.InWidth(x, b.TransitionMargin) {
		return current
	}

	h := geom.RampHeight(s, b, x, z)
	climb := s.Climb(z)

	switch current {
	case scene.FloorUpper:
		// Within half a step of the ground, and not behind the bottom
		// tread by more than half the run.
		if h <= b.StepRise/2 && climb >= -s.Run()/2 {
			return scene.FloorGround
		}
		return scene.FloorUpper
	default:
		// Ramp height within a quarter step of the full rise, or clear of
		// the top tread by the landing margin.
		if h >= s.TotalRise-b.StepRise/4 || climb >= s.Run()+b.LandingMargin {
			return scene.FloorUpper
		}
		return scene.FloorGround
	}
}
