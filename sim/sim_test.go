package sim

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/openhouse/scene"
)

// testScene builds a small two-floor plan: a hall covering the stair run, a
// loft spanning the landing and the open stairwell, and one showpiece
// collider for slide tests. The stair rises 3.78 over a run of 4 toward -z.
func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.Build(scene.Spec{
		Scale: 1,
		Player: scene.PlayerSpec{
			Radius: 0.3, Speed: 5, Accel: 10, TurnRate: 12,
			SpawnX: 0, SpawnZ: 3,
		},
		Stair: scene.StairSpec{
			CenterX: 0, HalfWidth: 1,
			BottomZ: 2, TopZ: -2,
			LandingMinZ: -3.6, LandingMaxZ: -2,
			Steps: 9, StepRise: 0.42,
			TransitionMargin: 0.5, LandingMargin: 0.6,
		},
		Rooms: map[string][]scene.RoomSpec{
			"ground": {{ID: "hall", MinX: -6, MaxX: 6, MinZ: -4, MaxZ: 6}},
			"upper":  {{ID: "loft", MinX: -6, MaxX: 6, MinZ: -4, MaxZ: 3}},
		},
		Colliders: map[string][]scene.RectSpec{
			"ground_structures": {{MinX: 2, MaxX: 3, MinZ: -4, MaxZ: 6}},
		},
	})
	if err != nil {
		t.Fatalf("build test scene: %v", err)
	}
	return s
}

func newTestPlayer(t *testing.T, w *World) *Player {
	t.Helper()
	return NewPlayer(w, scene.PlayerSpec{
		Radius: 0.3, Speed: 5, Accel: 10, TurnRate: 12,
		SpawnX: 0, SpawnZ: 3,
	})
}

var lookDownZ = mgl64.Vec3{0, 0, -1}

func TestPredictFloorThresholds(t *testing.T) {
	w := NewWorld(testScene(t))

	tests := []struct {
		name    string
		x, z    float64
		current scene.Floor
		want    scene.Floor
	}{
		{"ground low on ramp", 0, 1.0, scene.FloorGround, scene.FloorGround},
		{"ground below up threshold", 0, -1.7, scene.FloorGround, scene.FloorGround},
		{"ground past up threshold", 0, -1.95, scene.FloorGround, scene.FloorUpper},
		{"ground on landing", 0, -3.0, scene.FloorGround, scene.FloorUpper},
		{"ground behind bottom tread", 0, 3.0, scene.FloorGround, scene.FloorGround},
		{"upper on landing", 0, -3.0, scene.FloorUpper, scene.FloorUpper},
		{"upper mid ramp", 0, 1.0, scene.FloorUpper, scene.FloorUpper},
		{"upper just above down threshold", 0, 1.7, scene.FloorUpper, scene.FloorUpper},
		{"upper past down threshold", 0, 1.9, scene.FloorUpper, scene.FloorGround},
		{"upper behind bottom tread", 0, 3.0, scene.FloorUpper, scene.FloorGround},
		{"upper far behind bottom tread", 0, 4.5, scene.FloorUpper, scene.FloorUpper},
		{"ground in dead band", 0, -1.83, scene.FloorGround, scene.FloorGround},
		{"upper in dead band", 0, -1.83, scene.FloorUpper, scene.FloorUpper},
		{"ground outside stair column", 5, -1.95, scene.FloorGround, scene.FloorGround},
		{"upper outside stair column", 5, -1.7, scene.FloorUpper, scene.FloorUpper},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.PredictFloor(tt.x, tt.z, tt.current); got != tt.want {
				t.Fatalf("PredictFloor(%v, %v, %v) = %v, want %v", tt.x, tt.z, tt.current, got, tt.want)
			}
		})
	}
}

// TestPredictFloorFixedPoint checks that the predicate settles in one
// application: feeding its own result back never changes the answer again,
// so a stationary player can't toggle floors between frames.
func TestPredictFloorFixedPoint(t *testing.T) {
	w := NewWorld(testScene(t))

	for z := -4.0; z <= 5.0; z += 0.01 {
		for _, start := range []scene.Floor{scene.FloorGround, scene.FloorUpper} {
			once := w.PredictFloor(0, z, start)
			twice := w.PredictFloor(0, z, once)
			if once != twice {
				t.Fatalf("z=%v start=%v: predicate oscillates %v -> %v", z, start, once, twice)
			}
		}
	}
}

func TestStepWallSlide(t *testing.T) {
	w := NewWorld(testScene(t))
	p := newTestPlayer(t, w)
	p.X, p.Z = 1.6, 1

	// Push diagonally into the showpiece at x 2..3: the x axis is blocked
	// by the collider but z keeps advancing.
	for i := 0; i < 120; i++ {
		p.Step(w, MoveInput{Right: 1, Forward: 1}, lookDownZ, 1.0/60.0)
	}

	if p.X > 1.7+1e-9 {
		t.Fatalf("player penetrated the collider: x = %v", p.X)
	}
	if p.Z > 0 {
		t.Fatalf("blocked x axis should not stop z movement, z = %v", p.Z)
	}
}

func TestStepCameraRelative(t *testing.T) {
	w := NewWorld(testScene(t))
	p := newTestPlayer(t, w)

	// Camera looking along +x: forward input must move the player toward
	// +x, not -z.
	for i := 0; i < 60; i++ {
		p.Step(w, MoveInput{Forward: 1}, mgl64.Vec3{1, 0, 0}, 1.0/60.0)
	}
	if p.X < 1 {
		t.Fatalf("forward with +x camera should move +x, x = %v", p.X)
	}
	if math.Abs(p.Z-3) > 1e-6 {
		t.Fatalf("forward with +x camera should not move z, z = %v", p.Z)
	}
	if p.Speed() < 4 {
		t.Fatalf("speed after a second of input = %v, want near max", p.Speed())
	}

	// Facing settles toward the movement direction.
	if want := math.Pi / 2; math.Abs(p.Yaw-want) > 0.05 {
		t.Fatalf("yaw = %v, want ~%v", p.Yaw, want)
	}
}

func TestStepDegenerateForwardFallsBack(t *testing.T) {
	w := NewWorld(testScene(t))
	p := newTestPlayer(t, w)

	// A straight-down camera forward has no planar component; movement
	// falls back to -z.
	for i := 0; i < 60; i++ {
		p.Step(w, MoveInput{Forward: 1}, mgl64.Vec3{0, -1, 0}, 1.0/60.0)
	}
	if p.Z >= 3 {
		t.Fatalf("fallback forward should move -z, z = %v", p.Z)
	}
}

func TestStepDiagonalNotFaster(t *testing.T) {
	w := NewWorld(testScene(t))

	straight := newTestPlayer(t, w)
	straight.Z = 5
	diagonal := newTestPlayer(t, w)
	diagonal.X, diagonal.Z = -5, 5

	for i := 0; i < 60; i++ {
		straight.Step(w, MoveInput{Forward: 1}, lookDownZ, 1.0/60.0)
		diagonal.Step(w, MoveInput{Right: 1, Forward: 1}, lookDownZ, 1.0/60.0)
	}

	sd := math.Hypot(straight.X-0, straight.Z-5)
	dd := math.Hypot(diagonal.X+5, diagonal.Z-5)
	if dd > sd+1e-6 {
		t.Fatalf("diagonal traveled %v, straight %v", dd, sd)
	}
}

// TestWalkUpAndDownStairs drives the player over the full stair round trip
// and counts floor transitions: exactly one per leg, with y following the
// ramp on the way and landing on the right surface at each end.
func TestWalkUpAndDownStairs(t *testing.T) {
	s := testScene(t)
	w := NewWorld(s)
	p := newTestPlayer(t, w)

	flips := 0
	prev := p.Floor
	for i := 0; i < 600; i++ {
		p.Step(w, MoveInput{Forward: 1}, lookDownZ, 1.0/60.0)
		if p.Floor != prev {
			flips++
			prev = p.Floor
		}
		want := w.SurfaceY(p.X, p.Z, p.Radius, p.Floor)
		if math.Abs(p.Y-want) > 1e-9 {
			t.Fatalf("frame %d: y = %v, want %v", i, p.Y, want)
		}
	}
	if p.Floor != scene.FloorUpper {
		t.Fatalf("player should reach the upper floor, at z=%v floor=%v", p.Z, p.Floor)
	}
	if p.Y != p.Radius+s.UpperElevation {
		t.Fatalf("upper y = %v, want %v", p.Y, p.Radius+s.UpperElevation)
	}
	if flips != 1 {
		t.Fatalf("ascent flipped floors %d times, want 1", flips)
	}

	flips = 0
	for i := 0; i < 600; i++ {
		p.Step(w, MoveInput{Forward: -1}, lookDownZ, 1.0/60.0)
		if p.Floor != prev {
			flips++
			prev = p.Floor
		}
		// Descending carries the player at the upper elevation across the
		// stairwell; the drop happens at the floor flip near the bottom.
		if p.Floor == scene.FloorUpper && p.Y != p.Radius+s.UpperElevation {
			t.Fatalf("frame %d: descending y = %v, want %v", i, p.Y, p.Radius+s.UpperElevation)
		}
	}
	if p.Floor != scene.FloorGround {
		t.Fatalf("player should return to the ground floor, at z=%v floor=%v", p.Z, p.Floor)
	}
	if p.Y != p.Radius {
		t.Fatalf("ground y = %v, want %v", p.Y, p.Radius)
	}
	if flips != 1 {
		t.Fatalf("descent flipped floors %d times, want 1", flips)
	}
}

func TestStepInvalidDtIsNoOp(t *testing.T) {
	w := NewWorld(testScene(t))
	p := newTestPlayer(t, w)
	p.Step(w, MoveInput{Forward: 1}, lookDownZ, 1.0/60.0)
	before := *p

	p.Step(w, MoveInput{Forward: 1}, lookDownZ, math.NaN())
	p.Step(w, MoveInput{Forward: 1}, lookDownZ, 0)
	p.Step(w, MoveInput{Forward: 1}, lookDownZ, -1)

	if *p != before {
		t.Fatalf("state changed on invalid dt: %+v != %+v", *p, before)
	}
}

func TestTeleport(t *testing.T) {
	w := NewWorld(testScene(t))
	p := newTestPlayer(t, w)

	if err := p.Teleport(w, 0, -3, scene.FloorUpper); err != nil {
		t.Fatalf("teleport to loft: %v", err)
	}
	if p.Floor != scene.FloorUpper || p.Y != p.Radius+w.UpperElevation {
		t.Fatalf("teleport left player at floor=%v y=%v", p.Floor, p.Y)
	}
	if p.VelX != 0 || p.VelZ != 0 {
		t.Fatalf("teleport should zero velocity")
	}

	if err := p.Teleport(w, 100, 0, scene.FloorGround); err == nil {
		t.Fatalf("teleport outside every room should fail")
	}
	if p.X == 100 {
		t.Fatalf("failed teleport moved the player")
	}

	if err := p.Teleport(w, 2.5, 1, scene.FloorGround); err == nil {
		t.Fatalf("teleport into a collider should fail")
	}
}

func TestMetrics(t *testing.T) {
	w := NewWorld(testScene(t))
	p := newTestPlayer(t, w)
	p.X, p.Z = 0, 0

	m := w.Metrics(p)
	if !m.InWidth {
		t.Fatalf("player at stair center should be in width")
	}
	if math.Abs(m.Climb-2) > 1e-9 {
		t.Fatalf("climb = %v, want 2", m.Climb)
	}
	if math.Abs(m.RampHeight-1.89) > 1e-9 {
		t.Fatalf("ramp height = %v, want 1.89", m.RampHeight)
	}
	if m.Room != "hall" {
		t.Fatalf("room = %q, want hall", m.Room)
	}
}
