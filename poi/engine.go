package poi

import (
	"math"

	"github.com/milk9111/openhouse/geom"
)

const (
	// DefaultResponseRate drives the exponential smoothing of activation,
	// focus and visited strength, per second.
	DefaultResponseRate = 5.5
	// DefaultCommitThreshold is the activation a POI needs before it can
	// become the current interactable.
	DefaultCommitThreshold = 0.6
)

// Engine updates every POI's continuous state from the player position each
// frame and elects at most one "current interactable". It is independent of
// the input device; discrete interaction lives in Manager.
type Engine struct {
	defs   []Definition
	states []State

	responseRate    float64
	commitThreshold float64

	current int
}

// NewEngine builds the runtime states for the given definitions. Zero rate
// or threshold values fall back to the defaults.
func NewEngine(defs []Definition, responseRate, commitThreshold float64) *Engine {
	if responseRate <= 0 {
		responseRate = DefaultResponseRate
	}
	if commitThreshold <= 0 {
		commitThreshold = DefaultCommitThreshold
	}
	return &Engine{
		defs:            defs,
		states:          make([]State, len(defs)),
		responseRate:    responseRate,
		commitThreshold: commitThreshold,
		current:         -1,
	}
}

// Len returns the number of POIs.
func (e *Engine) Len() int { return len(e.defs) }

// Definition returns the immutable definition at index i.
func (e *Engine) Definition(i int) Definition { return e.defs[i] }

// StateAt returns a copy of the runtime state at index i.
func (e *Engine) StateAt(i int) State { return e.states[i] }

// IndexOf returns the index of the POI with the given id, or -1.
func (e *Engine) IndexOf(id string) int {
	for i := range e.defs {
		if e.defs[i].ID == id {
			return i
		}
	}
	return -1
}

// Update advances every POI's smoothed signals toward their targets and
// re-elects the current interactable. Invalid deltas leave state unchanged.
func (e *Engine) Update(px, pz, dt float64) {
	if math.IsNaN(dt) || dt <= 0 || math.IsNaN(px) || math.IsNaN(pz) {
		return
	}
	smoothing := geom.Smoothing(e.responseRate, dt)

	best := -1
	bestDist := math.Inf(1)
	for i := range e.defs {
		d := &e.defs[i]
		st := &e.states[i]

		dist := math.Hypot(px-d.X, pz-d.Z)
		target := 0.0
		if d.Radius > 0 {
			target = geom.Clamp(1-dist/d.Radius, 0, 1)
		}
		st.Activation = geom.Lerp(st.Activation, target, smoothing)
		st.Focus = geom.Lerp(st.Focus, st.FocusTarget, smoothing)
		visited := 0.0
		if st.Visited {
			visited = 1
		}
		st.VisitedStrength = geom.Lerp(st.VisitedStrength, visited, smoothing)

		if st.Activation < e.commitThreshold {
			continue
		}
		// Highest activation wins; ties go to the nearer POI, then the
		// lower index (ids are unique and load in a fixed order).
		if best < 0 || st.Activation > e.states[best].Activation ||
			(st.Activation == e.states[best].Activation && dist < bestDist) {
			best = i
			bestDist = dist
		}
	}
	e.current = best
}

// Current returns the index of the current interactable, if any.
func (e *Engine) Current() (int, bool) {
	if e.current < 0 || e.current >= len(e.defs) {
		return -1, false
	}
	return e.current, true
}

// SetFocusTarget sets the focus target to 1 for index i and 0 for every
// other POI. Pass a negative index to clear focus entirely.
func (e *Engine) SetFocusTarget(i int) {
	for j := range e.states {
		if j == i {
			e.states[j].FocusTarget = 1
		} else {
			e.states[j].FocusTarget = 0
		}
	}
}

// MarkVisited sets the visited flag at index i. Visited is monotonic: it
// only clears through ResetVisited.
func (e *Engine) MarkVisited(i int) {
	if i < 0 || i >= len(e.states) {
		return
	}
	e.states[i].Visited = true
}

// SeedVisited restores visited flags from the store, snapping strength so a
// restored POI doesn't animate from zero on the first frame.
func (e *Engine) SeedVisited(store VisitedStore) {
	if store == nil {
		return
	}
	for i := range e.defs {
		if store.IsVisited(e.defs[i].ID) {
			e.states[i].Visited = true
			e.states[i].VisitedStrength = 1
		}
	}
}

// ResetVisited clears every visited flag. Strengths decay smoothly.
func (e *Engine) ResetVisited() {
	for i := range e.states {
		e.states[i].Visited = false
	}
}
