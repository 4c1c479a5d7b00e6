package poi

// Input carries the discrete per-frame input the interaction manager
// consumes. Pointer coordinates are on the ground plane in world units; the
// caller unprojects screen positions before handing them over.
type Input struct {
	PointerX, PointerZ float64
	PointerValid       bool
	// ClickPressed is true on the frame the pointer button was pressed.
	ClickPressed bool

	// InteractHeld is the level state of the bound interact key; the
	// manager edge-detects it so holding the key selects exactly once.
	InteractHeld bool

	// FocusNext/FocusPrev advance the keyboard focus index (just-pressed).
	FocusNext bool
	FocusPrev bool
	// ActivateFocused selects the keyboard-focused POI (just-pressed).
	ActivateFocused bool
}

// Manager is the discrete state machine over hover, keyboard focus and
// selection. Hover and keyboard focus are independent; whichever changed
// most recently drives the focus highlight.
type Manager struct {
	engine *Engine
	store  VisitedStore

	hovered     int
	focusIdx    int
	hoverRecent bool

	prevInteract bool

	// Collaborator callbacks; any of them may be nil.
	OnHoverStart func(Definition)
	OnHoverEnd   func(Definition)
	OnSelect     func(Definition, State)
}

func NewManager(engine *Engine, store VisitedStore) *Manager {
	if store == nil {
		store = NopStore{}
	}
	return &Manager{
		engine:   engine,
		store:    store,
		hovered:  -1,
		focusIdx: -1,
	}
}

// Hovered returns the index of the hovered POI, or -1.
func (m *Manager) Hovered() int { return m.hovered }

// FocusIndex returns the keyboard focus index, or -1 before first use.
func (m *Manager) FocusIndex() int { return m.focusIdx }

// Update runs one frame of the interaction machine. It must run after the
// engine update so hover tests the freshly elected interactable.
func (m *Manager) Update(in Input) {
	m.updateHover(in)
	m.updateFocus(in)

	// The more recent of hover and keyboard focus drives the highlight.
	target := -1
	switch {
	case m.hoverRecent && m.hovered >= 0:
		target = m.hovered
	case m.focusIdx >= 0:
		target = m.focusIdx
	case m.hovered >= 0:
		target = m.hovered
	}
	m.engine.SetFocusTarget(target)

	if in.ActivateFocused && m.focusIdx >= 0 {
		m.selectIndex(m.focusIdx)
	}
	if in.ClickPressed && m.hovered >= 0 {
		m.selectIndex(m.hovered)
	}
	// Rising edge only: holding the key across frames fires once.
	if in.InteractHeld && !m.prevInteract {
		if i, ok := m.engine.Current(); ok {
			m.selectIndex(i)
		}
	}
	m.prevInteract = in.InteractHeld
}

func (m *Manager) updateHover(in Input) {
	hovered := -1
	if in.PointerValid {
		if i, ok := m.engine.Current(); ok {
			d := m.engine.Definition(i)
			if d.Footprint.Contains(in.PointerX, in.PointerZ) {
				hovered = i
			}
		}
	}
	if hovered == m.hovered {
		return
	}
	if m.hovered >= 0 && m.OnHoverEnd != nil {
		m.OnHoverEnd(m.engine.Definition(m.hovered))
	}
	if hovered >= 0 {
		m.hoverRecent = true
		if m.OnHoverStart != nil {
			m.OnHoverStart(m.engine.Definition(hovered))
		}
	}
	m.hovered = hovered
}

func (m *Manager) updateFocus(in Input) {
	n := m.engine.Len()
	if n == 0 {
		return
	}
	if in.FocusNext {
		m.focusIdx = (m.focusIdx + 1) % n
		m.hoverRecent = false
	}
	if in.FocusPrev {
		if m.focusIdx < 0 {
			m.focusIdx = n - 1
		} else {
			m.focusIdx = (m.focusIdx - 1 + n) % n
		}
		m.hoverRecent = false
	}
}

func (m *Manager) selectIndex(i int) {
	if i < 0 || i >= m.engine.Len() {
		return
	}
	// State is captured before marking so collaborators can tell a first
	// visit from a return visit.
	st := m.engine.StateAt(i)
	m.engine.MarkVisited(i)
	d := m.engine.Definition(i)
	m.store.MarkVisited(d.ID)
	if m.OnSelect != nil {
		m.OnSelect(d, st)
	}
}

// ResetVisited clears the visited set in both the engine and the store.
func (m *Manager) ResetVisited() {
	m.engine.ResetVisited()
	m.store.Reset()
}
