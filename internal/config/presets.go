package config

import (
	"sort"

	"github.com/san-kum/circles/internal/particles"
)

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"calm": preset(func(c *Config) {
		c.ParticleCount, c.DustCount = 256, 768
		c.ParticleSpeed, c.DustSpeed = 8, 3
		c.ParticleDecay, c.DustDecay = 0.06, 0.08
		c.Jitter = particles.DefaultJitter / 2
		c.Theme = "ocean"
	}),
	"storm": preset(func(c *Config) {
		c.ParticleCount, c.DustCount = 2048, 4096
		c.ParticleSpeed, c.DustSpeed = 40, 15
		c.ParticleDecay, c.DustDecay = 0.3, 0.4
		c.Jitter = particles.DefaultJitter * 3
		c.ClickDecay = 2
		c.Theme = "ember"
	}),
	"sparse": preset(func(c *Config) {
		c.ParticleCount, c.DustCount = 64, 128
		c.StrokeWidth = 2.5
		c.Theme = "mono"
	}),
}

func preset(fn func(*Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
