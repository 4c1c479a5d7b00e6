// Package poi holds the runtime state of the points of interest: the
// per-frame proximity activation engine and the discrete hover/focus/select
// interaction machine layered on top of it.
package poi

import (
	"math"

	"github.com/milk9111/openhouse/geom"
)

// Definition is an immutable point of interest: a fixed exhibit with an
// interaction radius and a clickable footprint on the ground plane.
type Definition struct {
	ID     string
	X, Z   float64
	Radius float64
	Room   string
	// Footprint is the clickable proxy used by the pointer hit-test.
	Footprint geom.Rect
}

// State is the continuously updated runtime state of one POI. Created once
// per definition at load; mutated every frame by the engine.
type State struct {
	// Activation is the smoothed proximity signal in [0, 1].
	Activation float64
	// Focus follows FocusTarget, which is 1 while the POI is hovered or
	// keyboard-focused and 0 otherwise.
	Focus       float64
	FocusTarget float64
	// Visited flips once on selection and stays set until an explicit
	// reset. VisitedStrength trails it smoothly for rendering.
	Visited         bool
	VisitedStrength float64
}

// Emphasis is the single intensity signal exposed to rendering and audio.
func (s State) Emphasis() float64 {
	return math.Max(s.Activation, s.Focus)
}

// VisitedStore is the persistence boundary for the visited set. The engine
// is agnostic to how (or whether) the set is actually persisted.
type VisitedStore interface {
	MarkVisited(id string)
	IsVisited(id string) bool
	Reset()
}

// NopStore discards everything; useful for tests and for running without a
// database.
type NopStore struct{}

func (NopStore) MarkVisited(string) {}

func (NopStore) IsVisited(string) bool { return false }

func (NopStore) Reset() {}
