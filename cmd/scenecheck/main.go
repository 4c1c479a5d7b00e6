// scenecheck validates a scene file and prints a plan summary, for catching
// authoring mistakes without launching the game.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/milk9111/openhouse/poi"
	"github.com/milk9111/openhouse/scene"
)

func main() {
	scenePath := flag.String("scene", "", "scene yaml path (empty checks the embedded scene)")
	flag.Parse()

	scn, err := scene.Load(*scenePath)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("stair: rise %.2f over run %.2f (%d rooms ground, %d upper)\n",
		scn.Stair.TotalRise, math.Abs(scn.Stair.Run()),
		len(scn.Registry.Rooms(scene.FloorGround)), len(scn.Registry.Rooms(scene.FloorUpper)))

	warnings := 0
	for _, d := range scn.Pois {
		fmt.Printf("poi %-16s (%.2f, %.2f) radius %.2f room %s\n", d.ID, d.X, d.Z, d.Radius, d.Room)
		warnings += checkPoi(scn, d)
	}
	if warnings > 0 {
		log.Fatalf("%d warning(s)", warnings)
	}
	fmt.Println("ok")
}

// checkPoi verifies a player can actually activate the POI: some occupiable
// position within 40% of its radius must exist on either floor. POIs buried
// inside colliders pass the scene build but can never commit.
func checkPoi(scn *scene.Scene, d poi.Definition) int {
	radius := scn.Player.Radius
	reach := 0.4 * d.Radius
	for _, f := range []scene.Floor{scene.FloorGround, scene.FloorUpper} {
		for dist := 0.0; dist <= reach; dist += 0.05 {
			for a := 0.0; a < 2*math.Pi; a += math.Pi / 32 {
				x := d.X + dist*math.Cos(a)
				z := d.Z + dist*math.Sin(a)
				if scn.Registry.InsideAnyRoom(x, z, f) && !scn.Registry.Blocked(x, z, radius, f) {
					return 0
				}
			}
		}
	}
	fmt.Printf("  warning: no occupiable position within %.2f of %s\n", reach, d.ID)
	return 1
}
