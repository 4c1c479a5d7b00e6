// Package cam is the orthographic follow camera: damped zoom and pan with
// per-axis limits, input fusion for wheel, pinch, drag, and joystick, and
// the world/screen projections the rest of the game uses.
package cam

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/openhouse/geom"
	"github.com/milk9111/openhouse/scene"
)

// zoomEpsilon is the zoom change below which the projection matrix is not
// re-derived.
const zoomEpsilon = 1e-3

// PanSource tags which input drives the pan target this frame. An active
// drag pointer wins over the joystick axis; both beat none.
type PanSource int

const (
	PanNone PanSource = iota
	PanDrag
	PanAxis
)

// PanInput is the fused pan input for one frame. For PanDrag X and Z are
// pointer deltas in pixels; for PanAxis they are -1..1 axis values.
type PanInput struct {
	Source PanSource
	X, Z   float64
}

// Camera owns zoom and pan state and derives the view and projection
// matrices from the player position each frame.
type Camera struct {
	cfg          scene.CameraSpec
	playerRadius float64

	zoom, zoomTarget       float64
	panX, panZ             float64
	panTargetX, panTargetZ float64

	pinchActive    bool
	pinchStartDist float64
	pinchStartZoom float64

	width, height float64

	eye, look mgl64.Vec3

	view     mgl64.Mat4
	proj     mgl64.Mat4
	projZoom float64
}

// New builds a camera from the scene config. Zero config values fall back
// to usable defaults so a sparse scene file still produces a working camera.
func New(cfg scene.CameraSpec, playerRadius float64) *Camera {
	if cfg.ZoomMin <= 0 {
		cfg.ZoomMin = 0.5
	}
	if cfg.ZoomMax < cfg.ZoomMin {
		cfg.ZoomMax = cfg.ZoomMin * 4
	}
	if cfg.Zoom <= 0 {
		cfg.Zoom = cfg.ZoomMin
	}
	if cfg.BaseHalfExtent <= 0 {
		cfg.BaseHalfExtent = 10
	}
	if cfg.Distance <= 0 {
		cfg.Distance = 40
	}
	if cfg.OffsetDir == [3]float64{} {
		cfg.OffsetDir = [3]float64{1, 1.35, 1}
	}

	zoom := geom.Clamp(cfg.Zoom, cfg.ZoomMin, cfg.ZoomMax)
	return &Camera{
		cfg:          cfg,
		playerRadius: playerRadius,
		zoom:         zoom,
		zoomTarget:   zoom,
	}
}

// ApplyWheel nudges the zoom target additively by wheel ticks.
func (c *Camera) ApplyWheel(ticks float64) {
	if math.IsNaN(ticks) {
		return
	}
	c.zoomTarget = geom.Clamp(c.zoomTarget+ticks*c.cfg.WheelStep, c.cfg.ZoomMin, c.cfg.ZoomMax)
}

// ApplyPinch feeds the current two-touch distance in pixels. The first call
// of a gesture captures the starting distance and zoom target; later calls
// scale that zoom target by the distance ratio. A non-positive distance ends
// the gesture.
func (c *Camera) ApplyPinch(dist float64) {
	if dist <= 0 || math.IsNaN(dist) {
		c.pinchActive = false
		return
	}
	if !c.pinchActive {
		c.pinchActive = true
		c.pinchStartDist = dist
		c.pinchStartZoom = c.zoomTarget
		return
	}
	c.zoomTarget = geom.Clamp(c.pinchStartZoom*dist/c.pinchStartDist, c.cfg.ZoomMin, c.cfg.ZoomMax)
}

// ApplyPan feeds the fused pan input for this frame. Drag deltas convert
// from pixels to world units at the current zoom and move the target against
// the drag, so the world follows the pointer. The axis source integrates at
// the configured pan speed.
func (c *Camera) ApplyPan(in PanInput, dt float64) {
	if math.IsNaN(dt) || dt <= 0 {
		return
	}
	switch in.Source {
	case PanDrag:
		if math.IsNaN(in.X) || math.IsNaN(in.Z) {
			return
		}
		wpp := c.worldPerPixel()
		c.panTargetX -= in.X * wpp
		c.panTargetZ -= in.Z * wpp
	case PanAxis:
		x := geom.Clamp(in.X, -1, 1)
		z := geom.Clamp(in.Z, -1, 1)
		c.panTargetX += x * c.cfg.PanSpeed * dt
		c.panTargetZ += z * c.cfg.PanSpeed * dt
	}
	limX, limZ := c.panLimits()
	c.panTargetX = geom.Clamp(c.panTargetX, -limX, limX)
	c.panTargetZ = geom.Clamp(c.panTargetZ, -limZ, limZ)
}

// SetZoomTarget restores a persisted zoom preference.
func (c *Camera) SetZoomTarget(z float64) {
	if math.IsNaN(z) {
		return
	}
	c.zoomTarget = geom.Clamp(z, c.cfg.ZoomMin, c.cfg.ZoomMax)
}

// Zoom returns the current damped zoom.
func (c *Camera) Zoom() float64 { return c.zoom }

// ZoomTarget returns the zoom target, for persistence.
func (c *Camera) ZoomTarget() float64 { return c.zoomTarget }

// Pan returns the current damped pan offset.
func (c *Camera) Pan() (x, z float64) { return c.panX, c.panZ }

// PanLimits returns the per-axis pan limits at the current zoom and aspect.
func (c *Camera) PanLimits() (x, z float64) { return c.panLimits() }

// Update damps zoom and pan toward their targets, re-clamps against the
// limits at the new zoom, and rebuilds the matrices around the player. The
// projection is only re-derived when zoom moved past an epsilon or the
// viewport changed.
func (c *Camera) Update(player mgl64.Vec3, width, height, dt float64) {
	if math.IsNaN(dt) || dt <= 0 {
		return
	}
	resized := width != c.width || height != c.height
	if width > 0 && height > 0 {
		c.width, c.height = width, height
	}

	c.zoom = geom.Clamp(geom.Damp(c.zoom, c.zoomTarget, c.cfg.ZoomRate, dt), c.cfg.ZoomMin, c.cfg.ZoomMax)

	limX, limZ := c.panLimits()
	c.panTargetX = geom.Clamp(c.panTargetX, -limX, limX)
	c.panTargetZ = geom.Clamp(c.panTargetZ, -limZ, limZ)
	c.panX = geom.Clamp(geom.Damp(c.panX, c.panTargetX, c.cfg.PanRate, dt), -limX, limX)
	c.panZ = geom.Clamp(geom.Damp(c.panZ, c.panTargetZ, c.cfg.PanRate, dt), -limZ, limZ)

	c.look = mgl64.Vec3{player.X() + c.panX, player.Y(), player.Z() + c.panZ}
	offset := mgl64.Vec3{c.cfg.OffsetDir[0], c.cfg.OffsetDir[1], c.cfg.OffsetDir[2]}.Normalize().Mul(c.cfg.Distance)
	c.eye = c.look.Add(offset)
	c.view = mgl64.LookAtV(c.eye, c.look, mgl64.Vec3{0, 1, 0})

	if resized || math.Abs(c.zoom-c.projZoom) > zoomEpsilon || c.projZoom == 0 {
		he := c.cfg.BaseHalfExtent / c.zoom
		aspect := c.aspect()
		c.proj = mgl64.Ortho(-he*aspect, he*aspect, -he, he, 0.1, c.cfg.Distance*4)
		c.projZoom = c.zoom
	}
}

// Eye returns the camera world position.
func (c *Camera) Eye() mgl64.Vec3 { return c.eye }

// Look returns the look-at target (the pan center).
func (c *Camera) Look() mgl64.Vec3 { return c.look }

// Forward returns the view direction, for camera-relative movement.
func (c *Camera) Forward() mgl64.Vec3 {
	d := mgl64.Vec3{c.cfg.OffsetDir[0], c.cfg.OffsetDir[1], c.cfg.OffsetDir[2]}
	return d.Normalize().Mul(-1)
}

// View returns the current view matrix.
func (c *Camera) View() mgl64.Mat4 { return c.view }

// Projection returns the current projection matrix.
func (c *Camera) Projection() mgl64.Mat4 { return c.proj }

// WorldToScreen projects a world point to pixel coordinates with y down.
func (c *Camera) WorldToScreen(p mgl64.Vec3) (x, y float64) {
	win := mgl64.Project(p, c.view, c.proj, 0, 0, int(c.width), int(c.height))
	return win.X(), c.height - win.Y()
}

// ScreenToGround unprojects a pixel position onto the horizontal plane at
// the given elevation. ok is false when the view is degenerate or the ray
// runs parallel to the plane.
func (c *Camera) ScreenToGround(sx, sy, planeY float64) (x, z float64, ok bool) {
	if c.width <= 0 || c.height <= 0 {
		return 0, 0, false
	}
	origin, err := mgl64.UnProject(mgl64.Vec3{sx, c.height - sy, 0}, c.view, c.proj, 0, 0, int(c.width), int(c.height))
	if err != nil {
		return 0, 0, false
	}
	dir := c.Forward()
	if math.Abs(dir.Y()) < 1e-9 {
		return 0, 0, false
	}
	t := (planeY - origin.Y()) / dir.Y()
	hit := origin.Add(dir.Mul(t))
	return hit.X(), hit.Z(), true
}

func (c *Camera) aspect() float64 {
	if c.height <= 0 {
		return 1
	}
	return c.width / c.height
}

// worldPerPixel is the vertical world-units-per-pixel at the current zoom.
func (c *Camera) worldPerPixel() float64 {
	if c.height <= 0 {
		return 0
	}
	return 2 * c.cfg.BaseHalfExtent / c.zoom / c.height
}

func (c *Camera) panLimits() (x, z float64) {
	he := c.cfg.BaseHalfExtent / c.zoom
	x = math.Max(0, he*c.aspect()-c.playerRadius)
	z = math.Max(0, he-c.playerRadius)
	return x, z
}
