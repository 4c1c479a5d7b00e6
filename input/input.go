// Package input adapts ebiten's keyboard, mouse, touch, and gamepad state
// into one Snapshot per frame. Everything downstream consumes the snapshot;
// nothing else reads devices directly.
package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const stickDeadzone = 0.2

// Snapshot is the fused device state for one frame. Movement axes are the
// raw keyboard+stick sums, not normalized.
type Snapshot struct {
	MoveRight   float64
	MoveForward float64

	CamAxisX float64
	CamAxisZ float64

	WheelTicks float64

	DragActive     bool
	DragDX, DragDY float64

	// PinchDist is the distance in pixels between the first two touches, or
	// 0 when fewer than two touches are down.
	PinchDist float64

	CursorX, CursorY float64
	ClickPressed     bool

	InteractHeld    bool
	FocusNext       bool
	FocusPrev       bool
	ActivateFocused bool

	PausePressed    bool
	CopyPosePressed bool
}

// Poller reads devices once per frame. It keeps the previous cursor
// position so drags report deltas.
type Poller struct {
	dragging           bool
	prevCurX, prevCurY int
	touchIDs           []ebiten.TouchID
}

func NewPoller() *Poller {
	return &Poller{}
}

// Poll reads every device and returns this frame's snapshot.
func (p *Poller) Poll() Snapshot {
	var s Snapshot

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		s.MoveRight -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		s.MoveRight += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		s.MoveForward += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		s.MoveForward -= 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			s.MoveRight += lx
			s.MoveForward -= ly
		}

		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			s.CamAxisX = rx
			s.CamAxisZ = ry
		}

		s.InteractHeld = s.InteractHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		s.ActivateFocused = s.ActivateFocused || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
		s.PausePressed = s.PausePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	_, wy := ebiten.Wheel()
	s.WheelTicks = wy

	cx, cy := ebiten.CursorPosition()
	s.CursorX, s.CursorY = float64(cx), float64(cy)
	s.ClickPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if p.dragging {
			s.DragActive = true
			s.DragDX = float64(cx - p.prevCurX)
			s.DragDY = float64(cy - p.prevCurY)
		}
		p.dragging = true
	} else {
		p.dragging = false
	}
	p.prevCurX, p.prevCurY = cx, cy

	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) >= 2 {
		x0, y0 := ebiten.TouchPosition(p.touchIDs[0])
		x1, y1 := ebiten.TouchPosition(p.touchIDs[1])
		s.PinchDist = math.Hypot(float64(x1-x0), float64(y1-y0))
	}

	s.InteractHeld = s.InteractHeld || ebiten.IsKeyPressed(ebiten.KeyE)

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if shift {
			s.FocusPrev = true
		} else {
			s.FocusNext = true
		}
	}
	s.ActivateFocused = s.ActivateFocused ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace)

	s.PausePressed = s.PausePressed || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	s.CopyPosePressed = inpututil.IsKeyJustPressed(ebiten.KeyF8)

	return s
}
