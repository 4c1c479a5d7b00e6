package main

import (
	"log"

	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

// clipboardOK is set by main once clipboard.Init succeeds; on headless
// systems it stays false and pose copy is a no-op.
var clipboardOK bool

type pose struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Floor string  `yaml:"floor"`
	Yaw   float64 `yaml:"yaw"`
	Zoom  float64 `yaml:"zoom"`
}

// copyPose puts the current player pose on the clipboard as yaml, handy for
// authoring POI positions in the scene file.
func (g *Game) copyPose() {
	if !clipboardOK {
		log.Printf("game: clipboard unavailable, pose not copied")
		return
	}
	b, err := yaml.Marshal(pose{
		X:     g.player.X,
		Y:     g.player.Y,
		Z:     g.player.Z,
		Floor: g.player.Floor.String(),
		Yaw:   g.player.Yaw,
		Zoom:  g.camera.Zoom(),
	})
	if err != nil {
		log.Printf("game: marshal pose: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, b)
	log.Printf("game: pose copied to clipboard")
}
