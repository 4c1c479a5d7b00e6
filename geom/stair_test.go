package geom

import (
	"math"
	"testing"
)

func testStair() (Stair, StairBehavior) {
	// 9 steps of 0.42 rise, ascending toward negative z.
	s := Stair{
		CenterX:     0,
		HalfWidth:   1.8,
		BottomZ:     2,
		TopZ:        -2,
		LandingMinZ: -3.6,
		LandingMaxZ: -2,
		TotalRise:   9 * 0.42,
	}
	b := StairBehavior{
		TransitionMargin: 0.5,
		LandingMargin:    0.6,
		StepRise:         0.42,
	}
	return s, b
}

func TestRampHeightEnds(t *testing.T) {
	s, b := testStair()
	if h := RampHeight(s, b, s.CenterX, s.BottomZ); h != 0 {
		t.Fatalf("height at bottom tread = %v, want 0", h)
	}
	if h := RampHeight(s, b, s.CenterX, s.TopZ); math.Abs(h-3.78) > 1e-9 {
		t.Fatalf("height at top tread = %v, want 3.78", h)
	}
}

func TestRampHeightMonotonic(t *testing.T) {
	s, b := testStair()
	prev := -1.0
	for z := s.BottomZ; z >= s.TopZ; z -= 0.05 {
		h := RampHeight(s, b, s.CenterX, z)
		if h < prev {
			t.Fatalf("ramp height decreased while climbing: %v at z=%v (prev %v)", h, z, prev)
		}
		if h < 0 || h > s.TotalRise {
			t.Fatalf("ramp height %v out of [0, %v]", h, s.TotalRise)
		}
		prev = h
	}
}

func TestRampHeightClampsPastEnds(t *testing.T) {
	s, b := testStair()
	if h := RampHeight(s, b, 0, s.BottomZ+3); h != 0 {
		t.Fatalf("before bottom tread = %v, want 0", h)
	}
	if h := RampHeight(s, b, 0, s.TopZ-3); math.Abs(h-s.TotalRise) > 1e-9 {
		t.Fatalf("past top tread = %v, want %v", h, s.TotalRise)
	}
}

func TestRampHeightOutsideColumn(t *testing.T) {
	s, b := testStair()
	edge := s.HalfWidth + b.TransitionMargin
	if h := RampHeight(s, b, edge+0.01, 0); h != 0 {
		t.Fatalf("outside stair column = %v, want 0", h)
	}
	if h := RampHeight(s, b, edge-0.01, 0); h == 0 {
		t.Fatalf("inside the margin should still be on the ramp")
	}
}

func TestRampHeightDegenerateRun(t *testing.T) {
	s, b := testStair()
	s.TopZ = s.BottomZ
	if h := RampHeight(s, b, 0, s.BottomZ); h != 0 {
		t.Fatalf("zero-length run must yield 0, got %v", h)
	}
}

func TestClimb(t *testing.T) {
	s, _ := testStair()
	if c := s.Climb(s.BottomZ); c != 0 {
		t.Fatalf("climb at bottom = %v", c)
	}
	if c := s.Climb(s.TopZ); math.Abs(c-4) > 1e-9 {
		t.Fatalf("climb at top = %v, want 4", c)
	}
	if c := s.Climb(s.BottomZ + 1); c >= 0 {
		t.Fatalf("climb before the bottom tread should be negative, got %v", c)
	}
}
