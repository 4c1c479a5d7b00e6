package sim

import (
	"fmt"

	"github.com/milk9111/openhouse/geom"
	"github.com/milk9111/openhouse/scene"
)

// Teleport moves the player directly to (x, z) on the given floor. The
// destination is validated the same way normal movement is; an invalid
// destination leaves the player where they were.
func (p *Player) Teleport(w *World, x, z float64, f scene.Floor) error {
	if !w.Registry.InsideAnyRoom(x, z, f) {
		return fmt.Errorf("sim: teleport (%.2f, %.2f): outside every %s room", x, z, f)
	}
	if w.Registry.Blocked(x, z, p.Radius, f) {
		return fmt.Errorf("sim: teleport (%.2f, %.2f): inside a %s collider", x, z, f)
	}
	p.X = x
	p.Z = z
	p.Floor = f
	p.Y = w.SurfaceY(x, z, p.Radius, f)
	p.VelX, p.VelZ = 0, 0
	p.TargetVelX, p.TargetVelZ = 0, 0
	return nil
}

// SetFloor forces floor membership without validation, for debug overlays
// and tests. Y is re-derived.
func (p *Player) SetFloor(w *World, f scene.Floor) {
	p.Floor = f
	p.Y = w.SurfaceY(p.X, p.Z, p.Radius, f)
}

// StairMetrics is a read-only snapshot of the player's relation to the
// stair, for the debug overlay.
type StairMetrics struct {
	InWidth    bool
	Climb      float64
	RampHeight float64
	Floor      scene.Floor
	// Room is the id of the room under the player, empty when outside
	// every room of the current floor.
	Room string
}

// Metrics samples the stair state at the player's position.
func (w *World) Metrics(p *Player) StairMetrics {
	m := StairMetrics{
		InWidth:    w.Stair.InWidth(p.X, w.Behavior.TransitionMargin),
		Climb:      w.Stair.Climb(p.Z),
		RampHeight: geom.RampHeight(w.Stair, w.Behavior, p.X, p.Z),
		Floor:      p.Floor,
	}
	if room, ok := w.Registry.RoomAt(p.X, p.Z, p.Floor); ok {
		m.Room = room.ID
	}
	return m
}
