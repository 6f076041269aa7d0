package particles

import (
	"math/rand/v2"

	"github.com/san-kum/circles/internal/field"
	"github.com/san-kum/circles/internal/geom"
	"github.com/san-kum/circles/internal/sim"
)

const (
	// ParticleRadius and GrainRadius are fractions of the smaller viewport
	// dimension reached when life hits zero.
	ParticleRadius = 0.025
	GrainRadius    = 0.005
)

// Reference is the resolution at which Params.Jitter is expressed in pixels.
var Reference = geom.V(1920, 1080)

// DefaultJitter is 0.00005 of the shorter side of Reference, in pixels.
const DefaultJitter = 0.00005 * 1080

// Particle is a stroked ring that grows as it decays.
type Particle struct {
	Position geom.Vec2
	Life     float32
	Scale    float32
	Opacity  uint8
}

// Grain is a filled dot.
type Grain struct {
	Position geom.Vec2
	Life     float32
	Opacity  uint8
}

func (p *Particle) Radius(vp geom.Viewport) float32 {
	return vp.MinDim() * ParticleRadius * (1 - p.Life) * p.Scale
}

func (p *Particle) Alpha() uint8 { return fade(p.Opacity, p.Life) }

func (g *Grain) Radius(vp geom.Viewport) float32 {
	return vp.MinDim() * GrainRadius * (1 - g.Life)
}

func (g *Grain) Alpha() uint8 { return fade(g.Opacity, g.Life) }

func stepParticle(p *Particle, c *sim.Context, prm *Params, rng *rand.Rand) {
	if !decay(&p.Life, prm.Decay*c.Delta) {
		p.Position = spawnPosition(c, rng)
		p.Scale = rng.Float32()
		p.Opacity = prm.opacity(rng, prm.OpacityMax)
		return
	}
	p.Position = p.Position.Add(displacement(p.Position, c, prm, rng))
}

func stepGrain(g *Grain, c *sim.Context, prm *Params, rng *rand.Rand) {
	if !decay(&g.Life, prm.Decay*c.Delta) {
		g.Position = spawnPosition(c, rng)
		g.Opacity = prm.opacity(rng, prm.OpacityMax)
		return
	}
	g.Position = g.Position.Add(displacement(g.Position, c, prm, rng))
}

func initParticle(p *Particle, c *sim.Context, prm *Params, rng *rand.Rand) {
	p.Position = spawnPosition(c, rng)
	p.Life = rng.Float32()
	p.Scale = rng.Float32()
	p.Opacity = prm.opacity(rng, prm.InitialOpacityMax)
}

func initGrain(g *Grain, c *sim.Context, prm *Params, rng *rand.Rand) {
	g.Position = spawnPosition(c, rng)
	g.Life = rng.Float32()
	g.Opacity = prm.opacity(rng, prm.InitialOpacityMax)
}

// decay lowers life by sub and reports whether the element is still alive.
// On false life has been reset to 1 and the caller must respawn.
func decay(life *float32, sub float32) bool {
	if *life > sub {
		*life -= sub
		return true
	}
	*life = 1
	return false
}

// spawnPosition samples a point in the currently visible window, in world
// space.
func spawnPosition(c *sim.Context, rng *rand.Rand) geom.Vec2 {
	u := geom.V(rng.Float32(), rng.Float32())
	return u.Mul(c.Size()).Sub(c.Offset)
}

func displacement(pos geom.Vec2, c *sim.Context, prm *Params, rng *rand.Rand) geom.Vec2 {
	size := c.Size()
	jitter := geom.V(rng.Float32()*2-1, rng.Float32()*2-1).Mul(size.Div(Reference)).Scale(prm.Jitter)

	pull := field.Velocity(field.Input{
		Position:  pos,
		Cursor:    c.WorldCursor(),
		Character: c.Character,
		Size:      size,
		Click:     c.Click,
		Delta:     c.Delta,
	}, prm.Field)

	return jitter.Add(pull)
}

func fade(opacity uint8, life float32) uint8 {
	return uint8(float32(opacity) * life)
}
