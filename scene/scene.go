package scene

import (
	"fmt"
	"math"

	"github.com/milk9111/openhouse/geom"
	"github.com/milk9111/openhouse/poi"
)

// Scene is the built, world-unit form of a Spec: the collider registry, the
// stair geometry, POI definitions, and tuning. Everything here is immutable
// once built; a hot reload builds a fresh Scene.
type Scene struct {
	Registry *Registry

	Stair          geom.Stair
	StairBehavior  geom.StairBehavior
	UpperElevation float64

	Pois []poi.Definition

	Player PlayerSpec
	Camera CameraSpec
	Tuning PoiTuningSpec
}

// Build converts a raw spec into a Scene, applying the floor-plan scale to
// all geometry. Tuning values (speeds, rates, thresholds) stay in world
// units and are not scaled.
func Build(spec Spec) (*Scene, error) {
	scale := spec.Scale
	if scale <= 0 {
		scale = 1
	}

	reg := &Registry{}
	for floorName, rooms := range spec.Rooms {
		f, err := parseFloor(floorName)
		if err != nil {
			return nil, err
		}
		for _, r := range rooms {
			room := Room{ID: r.ID, Floor: f, Bounds: scaleRect(RectSpec{r.MinX, r.MaxX, r.MinZ, r.MaxZ}, scale)}
			if room.Bounds.MinX >= room.Bounds.MaxX || room.Bounds.MinZ >= room.Bounds.MaxZ {
				return nil, fmt.Errorf("scene: room %q has empty bounds", r.ID)
			}
			if f == FloorUpper {
				reg.upperRooms = append(reg.upperRooms, room)
			} else {
				reg.groundRooms = append(reg.groundRooms, room)
			}
		}
	}
	if len(reg.groundRooms) == 0 {
		return nil, fmt.Errorf("scene: no ground rooms defined")
	}

	for name, rects := range spec.Colliders {
		set := make(ColliderSet, 0, len(rects))
		for _, r := range rects {
			set = append(set, scaleRect(r, scale))
		}
		switch name {
		case "ground_static":
			reg.groundStatic = set
		case "ground_structures":
			reg.groundStructures = set
		case "upper_static":
			reg.upperStatic = set
		default:
			return nil, fmt.Errorf("scene: unknown collider set %q", name)
		}
	}

	// The camera frames the whole building at zoom 1: unless the scene
	// pins it, size the base half-extent to half the larger footprint side.
	camera := spec.Camera
	if camera.BaseHalfExtent <= 0 {
		fp := reg.Footprint()
		camera.BaseHalfExtent = math.Max(fp.MaxX-fp.MinX, fp.MaxZ-fp.MinZ) / 2
	}

	rise := float64(spec.Stair.Steps) * spec.Stair.StepRise * scale
	stair := geom.Stair{
		CenterX:     spec.Stair.CenterX * scale,
		HalfWidth:   spec.Stair.HalfWidth * scale,
		BottomZ:     spec.Stair.BottomZ * scale,
		TopZ:        spec.Stair.TopZ * scale,
		LandingMinZ: spec.Stair.LandingMinZ * scale,
		LandingMaxZ: spec.Stair.LandingMaxZ * scale,
		TotalRise:   rise,
	}
	behavior := geom.StairBehavior{
		TransitionMargin: spec.Stair.TransitionMargin * scale,
		LandingMargin:    spec.Stair.LandingMargin * scale,
		StepRise:         spec.Stair.StepRise * scale,
	}

	pois := make([]poi.Definition, 0, len(spec.Pois))
	seen := make(map[string]bool, len(spec.Pois))
	for _, p := range spec.Pois {
		if p.ID == "" {
			return nil, fmt.Errorf("scene: poi with empty id")
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("scene: duplicate poi id %q", p.ID)
		}
		seen[p.ID] = true
		pois = append(pois, poi.Definition{
			ID:        p.ID,
			X:         p.X * scale,
			Z:         p.Z * scale,
			Radius:    p.Radius * scale,
			Room:      p.Room,
			Footprint: scaleRect(p.Print, scale),
		})
	}

	player := spec.Player
	player.Radius *= scale
	player.SpawnX *= scale
	player.SpawnZ *= scale

	return &Scene{
		Registry:       reg,
		Stair:          stair,
		StairBehavior:  behavior,
		UpperElevation: rise,
		Pois:           pois,
		Player:         player,
		Camera:         camera,
		Tuning:         spec.PoiTuning,
	}, nil
}

// Load reads, decodes, and builds the scene at path (or the embedded
// default when path is empty).
func Load(path string) (*Scene, error) {
	spec, err := LoadSpecFile(path)
	if err != nil {
		return nil, err
	}
	return Build(spec)
}

func parseFloor(name string) (Floor, error) {
	switch name {
	case "ground":
		return FloorGround, nil
	case "upper":
		return FloorUpper, nil
	}
	return FloorGround, fmt.Errorf("scene: unknown floor %q", name)
}

func scaleRect(r RectSpec, scale float64) geom.Rect {
	return geom.Rect{
		MinX: r.MinX * scale,
		MaxX: r.MaxX * scale,
		MinZ: r.MinZ * scale,
		MaxZ: r.MaxZ * scale,
	}
}
