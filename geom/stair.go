package geom

import "math"

// Stair describes the single staircase connecting the two floors. The stair
// runs along the z axis: treads span BottomZ (height 0) to TopZ (height
// TotalRise), and the landing sits past the top tread. Immutable after load.
type Stair struct {
	CenterX   float64
	HalfWidth float64
	BottomZ   float64
	TopZ      float64

	// Landing z-range on the upper floor, just past the top tread.
	LandingMinZ float64
	LandingMaxZ float64

	TotalRise float64
}

// Run returns the length of the stair along z.
func (s Stair) Run() float64 { return math.Abs(s.TopZ - s.BottomZ) }

// InWidth reports whether x falls within the stair column plus margin.
func (s Stair) InWidth(x, margin float64) bool {
	return math.Abs(x-s.CenterX) <= s.HalfWidth+margin
}

// Climb returns the distance ascended from the bottom tread at z. Negative
// before the bottom tread, greater than Run past the top.
func (s Stair) Climb(z float64) float64 {
	run := s.TopZ - s.BottomZ
	if run == 0 {
		return 0
	}
	return (z - s.BottomZ) / run * math.Abs(run)
}

// StairBehavior tunes how generously the stair volume is treated. The margin
// values are configuration, hand-tuned rather than derived.
type StairBehavior struct {
	// TransitionMargin widens the stair column for height and floor checks.
	TransitionMargin float64
	// LandingMargin is how far past the top tread still counts as the
	// landing for the upward floor crossing.
	LandingMargin float64
	// StepRise is the height of a single tread.
	StepRise float64
}

// RampHeight returns the vertical offset of standing at (x, z) with the
// staircase treated as a smooth ramp: 0 at the bottom tread rising linearly
// to the total rise at the top, clamped at both ends. Outside the stair
// column (plus the transition margin) it is 0, and a zero-length run yields
// 0 instead of dividing by zero.
func RampHeight(s Stair, b StairBehavior, x, z float64) float64 {
	if !s.InWidth(x, b.TransitionMargin) {
		return 0
	}
	run := s.TopZ - s.BottomZ
	if run == 0 {
		return 0
	}
	t := Clamp((z-s.BottomZ)/run, 0, 1)
	return t * s.TotalRise
}
