package flowfield

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the host-owned property bag of rendering options. The widget
// reads it every frame and never keeps copies that could drift; change a
// value through the matching Widget setter so the side effects (particle
// reset, trail clear, image reload) run.
type Config struct {
	// Width and Height are the widget surface size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// ParticleCount is the size of the particle pool.
	ParticleCount int `yaml:"particle_count"`
	// ParticleSize is the particle disc radius in on-screen pixels.
	ParticleSize float64 `yaml:"particle_size"`
	// ParticleLife is the particle lifetime in simulation ticks.
	ParticleLife int `yaml:"particle_life"`
	// ParticleTrail enables the fading motion-trail effect.
	ParticleTrail bool `yaml:"particle_trail"`
	// FlowStrength multiplies the sampled flow vector into velocity.
	FlowStrength float64 `yaml:"flow_strength"`

	// Animate starts or stops the simulation.
	Animate bool `yaml:"animate"`
	// AnimationSpeed is the ticks-per-frame multiplier; its integer part
	// is the substep count per frame (minimum 1).
	AnimationSpeed float64 `yaml:"animation_speed"`

	// ShowVectors draws one arrow per field sample.
	ShowVectors bool    `yaml:"show_vectors"`
	VectorColor string  `yaml:"vector_color"`
	VectorWidth float64 `yaml:"vector_width"`
	VectorAlpha float64 `yaml:"vector_alpha"`
	// VectorScale multiplies the flow vector into arrow length.
	VectorScale float64 `yaml:"vector_scale"`

	// BackgroundColor is a hex color or "transparent".
	BackgroundColor string `yaml:"background_color"`
	// BackgroundImage is a file path, URL, or base64 data URI. Loading is
	// asynchronous; frames drawn before it resolves omit the image.
	BackgroundImage string  `yaml:"background_image"`
	BackgroundAlpha float64 `yaml:"background_alpha"`

	// ColorScheme names the magnitude palette. Unknown names fall back to
	// DefaultScheme.
	ColorScheme string `yaml:"color_scheme"`

	// ShowStats overlays FPS/TPS and particle counts.
	ShowStats bool `yaml:"show_stats"`
}

// DefaultConfig returns the standard configuration: 3000 particles of size
// 2 and life 100 ticks, flow strength 2.5, trails on, animation running at
// speed 1, vectors hidden, viridis palette, 800x600 surface.
func DefaultConfig() Config {
	return Config{
		Width:           800,
		Height:          600,
		ParticleCount:   3000,
		ParticleSize:    2,
		ParticleLife:    100,
		ParticleTrail:   true,
		FlowStrength:    2.5,
		Animate:         true,
		AnimationSpeed:  1.0,
		ShowVectors:     false,
		VectorColor:     "#ffffff",
		VectorWidth:     1.0,
		VectorAlpha:     0.3,
		VectorScale:     20.0,
		BackgroundColor: "transparent",
		BackgroundAlpha: 1.0,
		ColorScheme:     DefaultScheme,
	}
}

// LoadConfig reads a YAML config file over the embedded defaults. Keys the
// file omits keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg, err := parseConfig(defaultsYAML)
	if err != nil {
		return Config{}, fmt.Errorf("flowfield: parse embedded defaults: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("flowfield: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("flowfield: parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

func parseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize clamps out-of-range values back to usable ones. Invalid counts
// and sizes revert to defaults rather than erroring; a config is never a
// reason to stop rendering.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.ParticleCount <= 0 {
		c.ParticleCount = def.ParticleCount
	}
	if c.ParticleSize <= 0 {
		c.ParticleSize = def.ParticleSize
	}
	if c.ParticleLife <= 0 {
		c.ParticleLife = def.ParticleLife
	}
	if c.AnimationSpeed <= 0 {
		c.AnimationSpeed = def.AnimationSpeed
	}
	if c.VectorWidth <= 0 {
		c.VectorWidth = def.VectorWidth
	}
	if c.VectorScale <= 0 {
		c.VectorScale = def.VectorScale
	}
	c.VectorAlpha = clamp01(c.VectorAlpha)
	c.BackgroundAlpha = clamp01(c.BackgroundAlpha)
	if c.ColorScheme == "" {
		c.ColorScheme = def.ColorScheme
	}
}
