package prefabs

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
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

// TuningSpec holds the physics, archery and pacing constants.
type TuningSpec struct {
	World    WorldSpec    `yaml:"world"`
	Player   PlayerSpec   `yaml:"player"`
	Archery  ArcherySpec  `yaml:"archery"`
	Sun      SunSpec      `yaml:"sun"`
	Timing   TimingSpec   `yaml:"timing"`
	Platform PlatformSpec `yaml:"platform"`
}

type WorldSpec struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Gravity      float64 `yaml:"gravity"`
	Friction     float64 `yaml:"friction"`
	GroundHeight float64 `yaml:"ground_height"`
}

type PlayerSpec struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	MoveSpeed        float64 `yaml:"move_speed"`
	JumpSpeed        float64 `yaml:"jump_speed"`
	DoubleJumpFactor float64 `yaml:"double_jump_factor"`
	SpawnX           float64 `yaml:"spawn_x"`
	SpawnOffsetY     float64 `yaml:"spawn_offset_y"`
}

type ArcherySpec struct {
	BowX           float64 `yaml:"bow_x"`
	BowMargin      float64 `yaml:"bow_margin"`
	ArrowSpeed     float64 `yaml:"arrow_speed"`
	MaxDraw        float64 `yaml:"max_draw"`
	DrawRate       float64 `yaml:"draw_rate"`
	ArrowOffset    float64 `yaml:"arrow_offset"`
	TimeSlowFactor float64 `yaml:"time_slow_factor"`
	TimeSlowMS     float64 `yaml:"time_slow_ms"`
}

type SunSpec struct {
	Size           float64 `yaml:"size"`
	TwinSize       float64 `yaml:"twin_size"`
	BobAmount      float64 `yaml:"bob_amount"`
	BobSpeed       float64 `yaml:"bob_speed"`
	OrbitSpeed     float64 `yaml:"orbit_speed"`
	OrbitRadius    float64 `yaml:"orbit_radius"`
	RotationSpeed  float64 `yaml:"rotation_speed"`
	RaySpeed       float64 `yaml:"ray_speed"`
	RayCount       int     `yaml:"ray_count"`
	ErraticMS      float64 `yaml:"erratic_ms"`
	ErraticEase    float64 `yaml:"erratic_ease"`
	TeleportMS     float64 `yaml:"teleport_ms"`
	IllusionMS     float64 `yaml:"illusion_ms"`
	MaxIllusions   int     `yaml:"max_illusions"`
	HideMS         float64 `yaml:"hide_ms"`
	MinVisibility  float64 `yaml:"min_visibility"`
	RegionInsetX   float64 `yaml:"region_inset_x"`
	RegionWidth    float64 `yaml:"region_width"`
	RegionTop      float64 `yaml:"region_top"`
	RegionHeight   float64 `yaml:"region_height"`
	ArcheryInsetX  float64 `yaml:"archery_inset_x"`
	TwinSeparation float64 `yaml:"twin_separation"`
	BackdropInsetX float64 `yaml:"backdrop_inset_x"`
	BackdropY      float64 `yaml:"backdrop_y"`
}

type TimingSpec struct {
	IntroLineMS float64 `yaml:"intro_line_ms"`
	TextCharMS  float64 `yaml:"text_char_ms"`
	FadeSeconds float64 `yaml:"fade_seconds"`
}

type PlatformSpec struct {
	CollectibleWidth  float64 `yaml:"collectible_width"`
	CollectibleHeight float64 `yaml:"collectible_height"`
	CollectibleLift   float64 `yaml:"collectible_lift"`
	CorrectionLift    float64 `yaml:"correction_lift"`
}

// LoadTuning reads tuning from customPath when set, otherwise from
// prefabs/tuning.yaml on disk or the embedded copy.
func LoadTuning(customPath string) (TuningSpec, error) {
	if customPath == "" {
		return LoadSpec[TuningSpec]("tuning.yaml")
	}

	var spec TuningSpec
	data, err := os.ReadFile(customPath)
	if err != nil {
		return spec, fmt.Errorf("prefabs: read %s: %w", customPath, err)
	}
	// Start from the embedded values so partial files only override what they name.
	base, err := LoadSpec[TuningSpec]("tuning.yaml")
	if err != nil {
		return spec, err
	}
	spec = base
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("prefabs: unmarshal %s: %w", customPath, err)
	}
	return spec, nil
}

// StageSpec is one entry of stages.yaml.
type StageSpec struct {
	Number           int        `yaml:"number"`
	Name             string     `yaml:"name"`
	Personality      string     `yaml:"personality"`
	Environment      string     `yaml:"environment"`
	Dialogues        []string   `yaml:"dialogues"`
	ArrowName        string     `yaml:"arrow_name"`
	PlatformStyle    string     `yaml:"platform_style"`
	SpecialChallenge string     `yaml:"special_challenge"`
	RewardAbility    string     `yaml:"reward_ability"`
	Twin             bool       `yaml:"twin"`
	Sprites          []string   `yaml:"sprites"`
	Background       string     `yaml:"background"`
	Color            *YAMLColor `yaml:"color"`
}

type StagesSpec struct {
	Stages []StageSpec `yaml:"stages"`
}

// StorySpec holds the fixed narrative outside of per-stage dialogue.
type StorySpec struct {
	Intro           []string    `yaml:"intro"`
	FallbackLine    string      `yaml:"fallback_line"`
	Choice          ChoiceSpec  `yaml:"choice"`
	Endings         EndingsSpec `yaml:"endings"`
	Credits         []string    `yaml:"credits"`
	ContinuePrompt  string      `yaml:"continue_prompt"`
	FallbackSprite  string      `yaml:"fallback_sprite"`
	DefaultBackdrop string      `yaml:"default_backdrop"`
}

type ChoiceSpec struct {
	Title   string `yaml:"title"`
	Context string `yaml:"context"`
	Destroy string `yaml:"destroy"`
	Spare   string `yaml:"spare"`
}

type EndingsSpec struct {
	Harsh    []string `yaml:"harsh"`
	Balanced []string `yaml:"balanced"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
