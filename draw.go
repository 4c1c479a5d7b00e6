package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/openhouse/geom"
	"github.com/milk9111/openhouse/poi"
	"github.com/milk9111/openhouse/scene"
)

var (
	roomColor     = color.RGBA{R: 70, G: 80, B: 95, A: 255}
	upperColor    = color.RGBA{R: 95, G: 85, B: 70, A: 255}
	colliderColor = color.RGBA{R: 180, G: 70, B: 70, A: 255}
	stairColor    = color.RGBA{R: 120, G: 160, B: 200, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 18, G: 18, B: 24, A: 255})

	for _, room := range g.scn.Registry.Rooms(scene.FloorGround) {
		g.strokeRect(screen, room.Bounds, 0, roomColor)
	}
	for _, room := range g.scn.Registry.Rooms(scene.FloorUpper) {
		g.strokeRect(screen, room.Bounds, g.world.UpperElevation, upperColor)
	}
	for _, name := range []string{"ground_static", "ground_structures"} {
		for _, r := range g.scn.Registry.StaticSet(name) {
			g.strokeRect(screen, r, 0, colliderColor)
		}
	}
	for _, r := range g.scn.Registry.StaticSet("upper_static") {
		g.strokeRect(screen, r, g.world.UpperElevation, colliderColor)
	}

	g.drawStair(screen)
	g.drawPois(screen)
	g.drawPlayer(screen)
	g.drawHUD(screen)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

// strokeRect draws a world-space rect at the given elevation as the
// projected quad, not a screen-space rectangle; under the diagonal ortho
// view it renders as a parallelogram.
func (g *Game) strokeRect(screen *ebiten.Image, r geom.Rect, y float64, clr color.Color) {
	corners := [4]mgl64.Vec3{
		{r.MinX, y, r.MinZ},
		{r.MaxX, y, r.MinZ},
		{r.MaxX, y, r.MaxZ},
		{r.MinX, y, r.MaxZ},
	}
	for i := range corners {
		x0, y0 := g.camera.WorldToScreen(corners[i])
		x1, y1 := g.camera.WorldToScreen(corners[(i+1)%4])
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, true)
	}
}

func (g *Game) drawStair(screen *ebiten.Image) {
	s := g.world.Stair
	b := g.world.Behavior
	if s.Run() == 0 || b.StepRise <= 0 {
		return
	}
	steps := int(s.TotalRise/b.StepRise + 0.5)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		z := s.BottomZ + (s.TopZ-s.BottomZ)*t
		y := s.TotalRise * t
		x0, y0 := g.camera.WorldToScreen(mgl64.Vec3{s.CenterX - s.HalfWidth, y, z})
		x1, y1 := g.camera.WorldToScreen(mgl64.Vec3{s.CenterX + s.HalfWidth, y, z})
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, stairColor, true)
	}
}

func (g *Game) drawPois(screen *ebiten.Image) {
	current, hasCurrent := g.engine.Current()
	for i := 0; i < g.engine.Len(); i++ {
		d := g.engine.Definition(i)
		st := g.engine.StateAt(i)

		y := g.poiElevation(d)
		sx, sy := g.camera.WorldToScreen(mgl64.Vec3{d.X, y, d.Z})
		ex, _ := g.camera.WorldToScreen(mgl64.Vec3{d.X + d.Radius, y, d.Z})
		pr := float32(ex - sx)
		if pr < 0 {
			pr = -pr
		}

		// Emphasis drives the ring alpha; visited POIs render warm.
		alpha := uint8(40 + 215*geom.Clamp(st.Emphasis(), 0, 1))
		ring := color.RGBA{R: 120, G: 200, B: 160, A: alpha}
		if st.VisitedStrength > 0.5 {
			ring = color.RGBA{R: 220, G: 180, B: 90, A: alpha}
		}
		vector.StrokeCircle(screen, float32(sx), float32(sy), pr, 1, ring, true)
		vector.FillRect(screen, float32(sx)-2, float32(sy)-2, 4, 4, ring, false)

		if hasCurrent && i == current {
			vector.StrokeCircle(screen, float32(sx), float32(sy), 6, 2, colornames.White, true)
		}
		g.strokeRect(screen, d.Footprint, y, color.RGBA{R: 90, G: 110, B: 100, A: 255})
	}
}

// poiElevation places a POI marker on the elevation of the floor its room
// belongs to.
func (g *Game) poiElevation(d poi.Definition) float64 {
	for _, room := range g.scn.Registry.Rooms(scene.FloorUpper) {
		if room.ID == d.Room {
			return g.world.UpperElevation
		}
	}
	return 0
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.player
	sx, sy := g.camera.WorldToScreen(p.Position())
	ex, _ := g.camera.WorldToScreen(mgl64.Vec3{p.X + p.Radius, p.Y, p.Z})
	pr := float32(ex - sx)
	if pr < 0 {
		pr = -pr
	}
	if pr < 2 {
		pr = 2
	}
	vector.FillCircle(screen, float32(sx), float32(sy), pr, colornames.Crimson, true)

	// Facing tick. Yaw is atan2(x, z), so the facing direction is
	// (sin yaw, cos yaw) on the XZ plane.
	fx, fy := g.camera.WorldToScreen(mgl64.Vec3{
		p.X + 2*p.Radius*math.Sin(p.Yaw),
		p.Y,
		p.Z + 2*p.Radius*math.Cos(p.Yaw),
	})
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(fx), float32(fy), 2, colornames.White, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	if g.captionTTL > 0 && g.caption.Text != "" {
		ebitenutil.DebugPrintAt(screen, g.caption.Text, baseWidth/2-4*len(g.caption.Text), baseHeight-60)
	}
	if cur, ok := g.engine.Current(); ok {
		d := g.engine.Definition(cur)
		msg := fmt.Sprintf("[E] %s", d.ID)
		ebitenutil.DebugPrintAt(screen, msg, baseWidth/2-4*len(msg), baseHeight-40)
	}

	if g.debug {
		m := g.world.Metrics(g.player)
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.1f\npos: (%.2f, %.2f, %.2f) %s %s\nspeed: %.2f climb: %.2f ramp: %.2f in_width: %v\nzoom: %.2f",
			ebiten.ActualFPS(), g.player.X, g.player.Y, g.player.Z, g.player.Floor, m.Room,
			g.player.Speed(), m.Climb, m.RampHeight, m.InWidth, g.camera.Zoom(),
		))
	}
}
