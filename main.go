package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.design/x/clipboard"

	"github.com/milk9111/openhouse/narrate"
	"github.com/milk9111/openhouse/store"
)

func main() {
	scenePath := flag.String("scene", "", "scene yaml path (empty uses the embedded scene)")
	dbPath := flag.String("db", "", "sqlite path for visited/preferences (empty uses the user config dir)")
	scriptPath := flag.String("script", "", "tengo narration script path")
	debug := flag.Bool("debug", false, "enable debug overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("openhouse")

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		clipboardOK = true
	}

	st := openStore(*dbPath)
	defer st.Close()

	var narrator *narrate.Narrator
	if *scriptPath != "" {
		src, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read narration script: %v", err)
		}
		narrator, err = narrate.New(src)
		if err != nil {
			log.Fatal(err)
		}
	}

	game, err := NewGame(*scenePath, st, narrator, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// openStore opens the preference database, defaulting to the user config
// dir. Persistence is optional: any failure logs and returns a nil store,
// which every caller tolerates.
func openStore(path string) *store.Store {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			log.Printf("store disabled: %v", err)
			return nil
		}
		path = filepath.Join(dir, "openhouse", "openhouse.db")
	}
	st, err := store.Open(path)
	if err != nil {
		log.Printf("store disabled: %v", err)
		return nil
	}
	return st
}
