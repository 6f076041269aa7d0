package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/circles/internal/field"
	"github.com/san-kum/circles/internal/particles"
	"github.com/san-kum/circles/internal/world"
)

var ErrInvalidConfig = errors.New("config: invalid")

const (
	DefaultCount      = 512
	DefaultDecay      = 0.125
	DefaultParticleV  = 15.0
	DefaultDustV      = 5.0
	DefaultWidth      = 1280
	DefaultHeight     = 720
	DefaultTitle      = "Circles"
	DefaultTheme      = "night"
	DefaultFPSLogSecs = 5.0
)

type Config struct {
	ParticleCount    int     `yaml:"particle_count"`
	DustCount        int     `yaml:"dust_count"`
	ParticleDecay    float32 `yaml:"particle_decay"`
	DustDecay        float32 `yaml:"dust_decay"`
	ParticleSpeed    float32 `yaml:"particle_speed"`
	DustSpeed        float32 `yaml:"dust_speed"`
	CursorFalloff    float32 `yaml:"cursor_falloff"`
	CharacterFalloff float32 `yaml:"character_falloff"`
	ClickBias        float32 `yaml:"click_bias"`
	ClickDecay       float32 `yaml:"click_decay"`
	Jitter           float32 `yaml:"jitter"`

	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Title       string  `yaml:"title"`
	Seed        uint64  `yaml:"seed"`
	StrokeWidth float32 `yaml:"stroke_width"`
	Theme       string  `yaml:"theme"`
	VSync       bool    `yaml:"vsync"`
	// FPSLogInterval is in seconds; zero disables frame rate logging.
	FPSLogInterval float64 `yaml:"fps_log_interval"`
}

func DefaultConfig() *Config {
	return &Config{
		ParticleCount:    DefaultCount,
		DustCount:        DefaultCount,
		ParticleDecay:    DefaultDecay,
		DustDecay:        DefaultDecay,
		ParticleSpeed:    DefaultParticleV,
		DustSpeed:        DefaultDustV,
		CursorFalloff:    1.5,
		CharacterFalloff: 0.75,
		ClickBias:        0.05,
		ClickDecay:       5,
		Jitter:           particles.DefaultJitter,
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		Title:            DefaultTitle,
		StrokeWidth:      1.5,
		Theme:            DefaultTheme,
		VSync:            true,
		FPSLogInterval:   DefaultFPSLogSecs,
	}
}

// Load reads path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.ParticleCount < 0 || c.DustCount < 0:
		return fmt.Errorf("%w: counts must not be negative (%d, %d)", ErrInvalidConfig, c.ParticleCount, c.DustCount)
	case c.ParticleDecay <= 0 || c.DustDecay <= 0:
		return fmt.Errorf("%w: decay must be positive (%v, %v)", ErrInvalidConfig, c.ParticleDecay, c.DustDecay)
	case c.ParticleSpeed < 0 || c.DustSpeed < 0:
		return fmt.Errorf("%w: speed must not be negative (%v, %v)", ErrInvalidConfig, c.ParticleSpeed, c.DustSpeed)
	case c.CursorFalloff < 0 || c.CharacterFalloff < 0:
		return fmt.Errorf("%w: falloff must not be negative", ErrInvalidConfig)
	case c.ClickBias < 0 || c.ClickBias >= 1:
		return fmt.Errorf("%w: click_bias %v must be in [0,1)", ErrInvalidConfig, c.ClickBias)
	case c.ClickDecay < 0:
		return fmt.Errorf("%w: click_decay %v", ErrInvalidConfig, c.ClickDecay)
	case c.Jitter < 0:
		return fmt.Errorf("%w: jitter %v", ErrInvalidConfig, c.Jitter)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.StrokeWidth <= 0:
		return fmt.Errorf("%w: stroke_width %v", ErrInvalidConfig, c.StrokeWidth)
	case c.FPSLogInterval < 0:
		return fmt.Errorf("%w: fps_log_interval %v", ErrInvalidConfig, c.FPSLogInterval)
	}
	if _, ok := GetTheme(c.Theme); !ok {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidConfig, c.Theme)
	}
	return nil
}

// ResolveSeed returns Seed, or a time based seed when Seed is zero.
func (c *Config) ResolveSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// World converts the config into simulation parameters. The seed must
// already be resolved.
func (c *Config) World(seed uint64) world.Params {
	p := world.DefaultParams()
	p.Seed = seed
	p.ClickDecay = c.ClickDecay

	p.Particles = c.pool(p.Particles, c.ParticleCount, c.ParticleDecay, c.ParticleSpeed)
	p.Dust = c.pool(p.Dust, c.DustCount, c.DustDecay, c.DustSpeed)
	return p
}

func (c *Config) pool(base particles.Params, count int, decay, speed float32) particles.Params {
	base.Count = count
	base.Decay = decay
	base.Jitter = c.Jitter
	base.Field = field.Params{
		Speed:            speed,
		CursorFalloff:    c.CursorFalloff,
		CharacterFalloff: c.CharacterFalloff,
		ClickBias:        c.ClickBias,
	}
	return base
}

func (c *Config) FPSLogEvery() time.Duration {
	return time.Duration(c.FPSLogInterval * float64(time.Second))
}
