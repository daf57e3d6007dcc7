package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	PlayerFile = "player.yaml"
	CameraFile = "camera.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

type ProbeSpec struct {
	GroundLayer  string     `yaml:"ground_layer"`
	GroundOffset VectorSpec `yaml:"ground_offset"`
	GroundRadius float64    `yaml:"ground_radius"`
	WallSize     VectorSpec `yaml:"wall_size"`
	WallOffset   VectorSpec `yaml:"wall_offset"`
	WallDistance float64    `yaml:"wall_distance"`
}

type AnimationSpec struct {
	Frames int       `yaml:"frames"`
	FPS    float64   `yaml:"fps"`
	Loop   bool      `yaml:"loop"`
	Color  YAMLColor `yaml:"color"`
}

type PlayerSpec struct {
	Name          string                   `yaml:"name"`
	MoveSpeed     float64                  `yaml:"move_speed"`
	JumpForce     float64                  `yaml:"jump_force"`
	WallJumpForce float64                  `yaml:"wall_jump_force"`
	JumpCooldown  float64                  `yaml:"jump_cooldown"`
	DashSpeed     float64                  `yaml:"dash_speed"`
	DashDuration  float64                  `yaml:"dash_duration"`
	DashCooldown  float64                  `yaml:"dash_cooldown"`
	FacingLeft    bool                     `yaml:"facing_left"`
	Collider      ColliderSpec             `yaml:"collider"`
	Probe         ProbeSpec                `yaml:"probe"`
	Color         YAMLColor                `yaml:"color"`
	Animations    map[string]AnimationSpec `yaml:"animations"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type CameraSpec struct {
	Name       string     `yaml:"name"`
	Offset     VectorSpec `yaml:"offset"`
	Smoothness float64    `yaml:"smoothness"`
	Depth      float64    `yaml:"depth"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](CameraFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// YAMLColor accepts "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	Color color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa"; the leading # is optional.
func ParseColor(value string) (color.NRGBA, error) {
	s := strings.TrimPrefix(value, "#")

	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return color.NRGBA{}, err
	}
	g, err := parse(2)
	if err != nil {
		return color.NRGBA{}, err
	}
	b, err := parse(4)
	if err != nil {
		return color.NRGBA{}, err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.NRGBA{}, err
		}
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
