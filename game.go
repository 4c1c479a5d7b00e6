package main

import (
	"fmt"
	"log"
	"math"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/openhouse/cam"
	"github.com/milk9111/openhouse/input"
	"github.com/milk9111/openhouse/narrate"
	"github.com/milk9111/openhouse/poi"
	"github.com/milk9111/openhouse/scene"
	"github.com/milk9111/openhouse/sim"
	"github.com/milk9111/openhouse/store"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// captionFrames is how long a narration caption stays on screen.
const captionFrames = 240

type Game struct {
	frames int

	poller    *input.Poller
	scenePath string

	scn     *scene.Scene
	world   *sim.World
	player  *sim.Player
	camera  *cam.Camera
	engine  *poi.Engine
	manager *poi.Manager

	narrator *narrate.Narrator
	st       *store.Store
	watcher  *scene.Watcher

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool

	debug bool

	caption    narrate.Line
	captionTTL int

	savedZoom float64
}

func NewGame(scenePath string, st *store.Store, narrator *narrate.Narrator, debug bool) (*Game, error) {
	scn, err := scene.Load(scenePath)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		poller:    input.NewPoller(),
		scenePath: scenePath,
		narrator:  narrator,
		st:        st,
		debug:     debug,
	}
	g.applyScene(scn, true)

	if zoom, ok := st.Zoom(); ok {
		g.camera.SetZoomTarget(zoom)
		g.savedZoom = zoom
	}

	if scenePath != "" {
		w, err := scene.WatchScene(scenePath)
		if err != nil {
			log.Printf("game: scene watcher: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// applyScene swaps in a freshly built scene. On a hot reload the player
// keeps their position when it is still occupiable in the new plan, and
// respawns otherwise.
func (g *Game) applyScene(scn *scene.Scene, fresh bool) {
	g.scn = scn
	g.world = sim.NewWorld(scn)

	if fresh || g.player == nil {
		g.player = sim.NewPlayer(g.world, scn.Player)
	} else {
		prev := g.player
		g.player = sim.NewPlayer(g.world, scn.Player)
		if err := g.player.Teleport(g.world, prev.X, prev.Z, prev.Floor); err != nil {
			log.Printf("game: reload respawned player: %v", err)
		} else {
			g.player.Yaw, g.player.YawTarget = prev.Yaw, prev.YawTarget
		}
	}

	g.camera = cam.New(scn.Camera, scn.Player.Radius)
	if g.savedZoom > 0 {
		g.camera.SetZoomTarget(g.savedZoom)
	}
	g.engine = poi.NewEngine(scn.Pois, scn.Tuning.ResponseRate, scn.Tuning.CommitThreshold)
	g.engine.SeedVisited(g.st)

	g.manager = poi.NewManager(g.engine, g.st)
	g.manager.OnSelect = func(d poi.Definition, st poi.State) {
		g.narrator.Announce(d.ID, st.Visited)
	}
}

func (g *Game) Update() error {
	g.frames++
	if g.quit {
		return ebiten.Termination
	}

	snap := g.poller.Poll()
	dt := 1.0 / float64(ebiten.TPS())
	if err := g.step(snap, dt); err != nil {
		return err
	}
	if g.paused {
		g.pauseUI.Update()
	}
	return nil
}

// step is one frame of simulation, separated from device polling so tests
// can drive it with synthetic snapshots.
func (g *Game) step(snap input.Snapshot, dt float64) error {
	if snap.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	g.drainWatcher()

	g.player.Step(g.world, sim.MoveInput{Right: snap.MoveRight, Forward: snap.MoveForward}, g.camera.Forward(), dt)

	g.camera.ApplyWheel(snap.WheelTicks)
	g.camera.ApplyPinch(snap.PinchDist)
	g.camera.ApplyPan(cam.FusePan(snap.DragActive, snap.DragDX, snap.DragDY, snap.CamAxisX, snap.CamAxisZ), dt)
	g.camera.Update(g.player.Position(), baseWidth, baseHeight, dt)

	g.engine.Update(g.player.X, g.player.Z, dt)

	px, pz, pok := g.camera.ScreenToGround(snap.CursorX, snap.CursorY, g.floorPlaneY())
	g.manager.Update(poi.Input{
		PointerX:        px,
		PointerZ:        pz,
		PointerValid:    pok,
		ClickPressed:    snap.ClickPressed,
		InteractHeld:    snap.InteractHeld,
		FocusNext:       snap.FocusNext,
		FocusPrev:       snap.FocusPrev,
		ActivateFocused: snap.ActivateFocused,
	})

	if line, ok := g.narrator.Poll(); ok {
		g.caption = line
		g.captionTTL = captionFrames
	}
	if g.captionTTL > 0 {
		g.captionTTL--
	}

	if zt := g.camera.ZoomTarget(); math.Abs(zt-g.savedZoom) > 1e-9 {
		g.st.SetZoom(zt)
		g.savedZoom = zt
	}

	if snap.CopyPosePressed {
		g.copyPose()
	}
	return nil
}

// floorPlaneY is the elevation the pointer ray intersects: POIs live on the
// player's current floor plane.
func (g *Game) floorPlaneY() float64 {
	if g.player.Floor == scene.FloorUpper {
		return g.world.UpperElevation
	}
	return 0
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case <-g.watcher.Changed:
		log.Printf("game: scene file changed: %s", g.scenePath)
		g.reloadScene()
	case err := <-g.watcher.Errors:
		log.Printf("game: scene watcher: %v", err)
	default:
	}
}

func (g *Game) reloadScene() {
	scn, err := scene.Load(g.scenePath)
	if err != nil {
		log.Printf("game: reload scene: %v", err)
		return
	}
	g.applyScene(scn, false)
	log.Printf("game: scene reloaded")
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
