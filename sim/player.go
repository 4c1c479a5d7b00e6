package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/openhouse/geom"
	"github.com/milk9111/openhouse/scene"
)

// maxStepSeconds caps a single movement step so a stalled tab or debugger
// pause doesn't launch the player through a wall.
const maxStepSeconds = 0.1

// stopSpeed is the planar speed below which the facing stops tracking the
// decaying velocity.
const stopSpeed = 0.05

var fallbackForward = mgl64.Vec3{0, 0, -1}

// MoveInput is the raw directional input for one frame: the keyboard and
// stick contributions summed per axis, not pre-normalized.
type MoveInput struct {
	Right   float64
	Forward float64
}

// Player is the mutable avatar state owned by the movement resolver. The
// floor field changes only through the transition predicate (or the debug
// override), and Y is always derived from floor and ramp height.
type Player struct {
	X, Y, Z float64

	VelX, VelZ             float64
	TargetVelX, TargetVelZ float64

	Floor scene.Floor

	Yaw       float64
	YawTarget float64

	Radius   float64
	MaxSpeed float64
	// Accel is the velocity damp response rate, per second.
	Accel float64
	// TurnRate is the yaw damp response rate, per second.
	TurnRate float64
}

// NewPlayer places a player at the scene spawn point.
func NewPlayer(w *World, spec scene.PlayerSpec) *Player {
	p := &Player{
		X:        spec.SpawnX,
		Z:        spec.SpawnZ,
		Floor:    scene.FloorGround,
		Radius:   spec.Radius,
		MaxSpeed: spec.Speed,
		Accel:    spec.Accel,
		TurnRate: spec.TurnRate,
	}
	p.Y = w.SurfaceY(p.X, p.Z, p.Radius, p.Floor)
	return p
}

// Step advances the player by one frame: camera-relative input mapping,
// damped velocity, per-axis collision resolution, and facing. Invalid
// deltas leave the state untouched.
func (p *Player) Step(w *World, in MoveInput, camForward mgl64.Vec3, dt float64) {
	if math.IsNaN(dt) || dt <= 0 {
		return
	}
	if dt > maxStepSeconds {
		dt = maxStepSeconds
	}

	right := clampAxis(in.Right)
	forward := clampAxis(in.Forward)

	fwd := flatForward(camForward)
	rightVec := fwd.Cross(mgl64.Vec3{0, 1, 0})

	move := rightVec.Mul(right).Add(fwd.Mul(forward))
	if l := move.Len(); l > 1 {
		// Rescale to unit length so diagonals aren't faster.
		move = move.Mul(1 / l)
	}
	hasInput := move.Len() > 1e-6

	p.TargetVelX = move.X() * p.MaxSpeed
	p.TargetVelZ = move.Z() * p.MaxSpeed

	smoothing := geom.Smoothing(p.Accel, dt)
	p.VelX = geom.Lerp(p.VelX, p.TargetVelX, smoothing)
	p.VelZ = geom.Lerp(p.VelZ, p.TargetVelZ, smoothing)

	// Resolve the axes independently: a blocked axis zeroes only its own
	// velocity, so the player slides along walls instead of stopping dead.
	if nx := p.X + p.VelX*dt; p.VelX != 0 {
		f := w.PredictFloor(nx, p.Z, p.Floor)
		if w.CanOccupy(nx, p.Z, p.Radius, f) {
			p.X = nx
			p.Floor = f
		} else {
			p.VelX = 0
			p.TargetVelX = 0
		}
	}
	if nz := p.Z + p.VelZ*dt; p.VelZ != 0 {
		f := w.PredictFloor(p.X, nz, p.Floor)
		if w.CanOccupy(p.X, nz, p.Radius, f) {
			p.Z = nz
			p.Floor = f
		} else {
			p.VelZ = 0
			p.TargetVelZ = 0
		}
	}

	p.Y = w.SurfaceY(p.X, p.Z, p.Radius, p.Floor)

	if hasInput {
		p.YawTarget = math.Atan2(move.X(), move.Z())
	} else if math.Hypot(p.VelX, p.VelZ) > stopSpeed {
		p.YawTarget = math.Atan2(p.VelX, p.VelZ)
	}
	p.Yaw = geom.DampAngle(p.Yaw, p.YawTarget, p.TurnRate, dt)
}

// Speed returns the current planar speed.
func (p *Player) Speed() float64 {
	return math.Hypot(p.VelX, p.VelZ)
}

// Position returns the player's world position.
func (p *Player) Position() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

func clampAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return geom.Clamp(v, -1, 1)
}

// flatForward projects the camera forward vector onto the XZ plane and
// normalizes it, falling back to a fixed forward when degenerate.
func flatForward(camForward mgl64.Vec3) mgl64.Vec3 {
	f := mgl64.Vec3{camForward.X(), 0, camForward.Z()}
	l := f.Len()
	if l < 1e-9 || math.IsNaN(l) {
		return fallbackForward
	}
	return f.Mul(1 / l)
}
