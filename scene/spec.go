package scene

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed scene.yaml
var defaultScene []byte

// Spec is the raw scene definition as authored in YAML. All geometry fields
// are in floor-plan-native units; Scale converts them to world units when
// the Scene is built.
type Spec struct {
	Scale  float64    `yaml:"scale"`
	Player PlayerSpec `yaml:"player"`
	Camera CameraSpec `yaml:"camera"`
	Stair  StairSpec  `yaml:"stair"`

	// Rooms keyed by floor name ("ground", "upper").
	Rooms map[string][]RoomSpec `yaml:"rooms"`

	// Colliders keyed by set name: ground_static, ground_structures,
	// upper_static.
	Colliders map[string][]RectSpec `yaml:"colliders"`

	Pois      []PoiSpec     `yaml:"pois"`
	PoiTuning PoiTuningSpec `yaml:"poi_tuning"`
}

type RectSpec struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinZ float64 `yaml:"min_z"`
	MaxZ float64 `yaml:"max_z"`
}

type RoomSpec struct {
	ID   string  `yaml:"id"`
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinZ float64 `yaml:"min_z"`
	MaxZ float64 `yaml:"max_z"`
}

type PlayerSpec struct {
	Radius   float64 `yaml:"radius"`
	Speed    float64 `yaml:"speed"`
	Accel    float64 `yaml:"accel"`
	TurnRate float64 `yaml:"turn_rate"`
	SpawnX   float64 `yaml:"spawn_x"`
	SpawnZ   float64 `yaml:"spawn_z"`
}

type CameraSpec struct {
	ZoomMin        float64    `yaml:"zoom_min"`
	ZoomMax        float64    `yaml:"zoom_max"`
	Zoom           float64    `yaml:"zoom"`
	ZoomRate       float64    `yaml:"zoom_rate"`
	PanRate        float64    `yaml:"pan_rate"`
	PanSpeed       float64    `yaml:"pan_speed"`
	WheelStep      float64    `yaml:"wheel_step"`
	BaseHalfExtent float64    `yaml:"base_half_extent"`
	OffsetDir      [3]float64 `yaml:"offset_dir"`
	Distance       float64    `yaml:"distance"`
}

type StairSpec struct {
	CenterX          float64 `yaml:"center_x"`
	HalfWidth        float64 `yaml:"half_width"`
	BottomZ          float64 `yaml:"bottom_z"`
	TopZ             float64 `yaml:"top_z"`
	LandingMinZ      float64 `yaml:"landing_min_z"`
	LandingMaxZ      float64 `yaml:"landing_max_z"`
	Steps            int     `yaml:"steps"`
	StepRise         float64 `yaml:"step_rise"`
	TransitionMargin float64 `yaml:"transition_margin"`
	LandingMargin    float64 `yaml:"landing_margin"`
}

type PoiSpec struct {
	ID     string   `yaml:"id"`
	X      float64  `yaml:"x"`
	Z      float64  `yaml:"z"`
	Radius float64  `yaml:"radius"`
	Room   string   `yaml:"room"`
	Print  RectSpec `yaml:"footprint"`
}

type PoiTuningSpec struct {
	ResponseRate    float64 `yaml:"response_rate"`
	CommitThreshold float64 `yaml:"commit_threshold"`
}

// LoadSpec decodes a YAML document into the given spec type.
func LoadSpec[T any](data []byte) (T, error) {
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		var zero T
		return zero, fmt.Errorf("scene: unmarshal: %w", err)
	}
	return spec, nil
}

// LoadSpecFile reads and decodes the scene file at path. An empty path loads
// the embedded default scene.
func LoadSpecFile(path string) (Spec, error) {
	data := defaultScene
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Spec{}, fmt.Errorf("scene: read %s: %w", path, err)
		}
		data = b
	}
	return LoadSpec[Spec](data)
}
