// Package world composes the particle pools, the scene graph and the camera
// into the per-tick update driven by the frame loop.
package world

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/san-kum/circles/internal/camera"
	"github.com/san-kum/circles/internal/geom"
	"github.com/san-kum/circles/internal/parallel"
	"github.com/san-kum/circles/internal/particles"
	"github.com/san-kum/circles/internal/scene"
	"github.com/san-kum/circles/internal/sim"
)

var ErrInvalidParams = errors.New("world: invalid params")

// dustSalt separates the dust stream from the particle stream under one seed.
const dustSalt = 0xd1b54a32d192ed03

type Params struct {
	Particles particles.Params
	Dust      particles.Params
	// ClickDecay is the rate at which click intensity relaxes to zero.
	ClickDecay float32
	// Follow is the base rate at which the character chases the cursor;
	// click intensity is added on top.
	Follow float32
	Seed   uint64
}

func DefaultParams() Params {
	return Params{
		Particles:  particles.DefaultParticleParams(),
		Dust:       particles.DefaultDustParams(),
		ClickDecay: 5,
		Follow:     0.1,
		Seed:       1,
	}
}

func (p Params) Validate() error {
	if err := p.Particles.Validate(); err != nil {
		return fmt.Errorf("particles: %w", err)
	}
	if err := p.Dust.Validate(); err != nil {
		return fmt.Errorf("dust: %w", err)
	}
	if p.ClickDecay < 0 {
		return fmt.Errorf("%w: click decay %v", ErrInvalidParams, p.ClickDecay)
	}
	if p.Follow < 0 {
		return fmt.Errorf("%w: follow %v", ErrInvalidParams, p.Follow)
	}
	return nil
}

// World owns all mutable simulation state. It is not safe for concurrent
// use; the pools fan out internally during Step.
type World struct {
	params Params

	viewport geom.Viewport
	cursor   geom.Vec2
	pressed  bool
	edge     bool
	click    float32
	seq      uint64

	camera    camera.Camera
	graph     *scene.Graph
	character scene.Entity
	entities  []scene.Entity

	particles *particles.Particles
	dust      *particles.Dust
}

// New builds a world for vp with the cursor and the character at its center.
func New(p Params, vp geom.Viewport) (*World, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if vp.Empty() {
		return nil, fmt.Errorf("%w: viewport %dx%d", ErrInvalidParams, vp.Width, vp.Height)
	}

	w := &World{
		params:   p,
		viewport: vp,
		cursor:   vp.Mid(),
		graph:    scene.New(),
	}
	w.character = w.graph.Spawn(vp.Mid())
	w.entities = []scene.Entity{w.character}

	c := w.Context()
	w.particles = particles.NewParticles(p.Particles, p.Seed, c)
	w.dust = particles.NewDust(p.Dust, p.Seed^dustSalt, c)
	return w, nil
}

func (w *World) Params() Params { return w.params }

// Press registers a button press edge. Click intensity jumps to exactly 1
// and the next Step keeps it there instead of decaying.
func (w *World) Press() {
	w.pressed = true
	w.edge = true
	w.click = 1
}

func (w *World) Release() { w.pressed = false }

func (w *World) Pressed() bool { return w.pressed }

// MoveCursor records the pointer position in screen space.
func (w *World) MoveCursor(x, y float32) {
	w.cursor = geom.V(x, y)
}

// Resize changes the viewport. Zero-area sizes are ignored and reported as
// false.
func (w *World) Resize(width, height int) bool {
	vp := geom.Viewport{Width: width, Height: height}
	if vp.Empty() {
		return false
	}
	w.viewport = vp
	return true
}

// Step runs one tick: click edge or decay, character follow, camera, then both
// pools in parallel. Negative or non-finite deltas are treated as zero.
func (w *World) Step(delta float32) sim.Context {
	if !(delta > 0) || math32.IsInf(delta, 1) {
		delta = 0
	}

	if w.edge {
		w.click = 1
		w.edge = false
	} else {
		w.click = geom.Lerp(w.click, 0, math32.Min(delta*w.params.ClickDecay, 1))
	}

	root := w.graph.Node(w.character.Root)
	target := w.cursor.Sub(w.camera.Offset)
	w.graph.Move(w.character.Root, root.Position.Lerp(target, math32.Min((w.click+w.params.Follow)*delta, 1)))

	w.camera.Update(w.cursor, w.graph.Node(w.character.Root).Position, w.viewport, delta)

	w.seq++
	c := w.Context()
	c.Delta = delta
	parallel.Do(
		func() { w.particles.Update(c) },
		func() { w.dust.Update(c) },
	)
	return c
}

// Context snapshots the current frame state. Delta is zero outside Step.
func (w *World) Context() sim.Context {
	return sim.Context{
		Seq:       w.seq,
		Click:     w.click,
		Cursor:    w.cursor,
		Offset:    w.camera.Offset,
		Character: w.graph.Node(w.character.Root).Position,
		Viewport:  w.viewport,
	}
}

func (w *World) Viewport() geom.Viewport         { return w.viewport }
func (w *World) Cursor() geom.Vec2               { return w.cursor }
func (w *World) Click() float32                  { return w.click }
func (w *World) Offset() geom.Vec2               { return w.camera.Offset }
func (w *World) Seq() uint64                     { return w.seq }
func (w *World) Graph() *scene.Graph             { return w.graph }
func (w *World) Entities() []scene.Entity        { return w.entities }
func (w *World) Particles() *particles.Particles { return w.particles }
func (w *World) Dust() *particles.Dust           { return w.dust }

func (w *World) Character() geom.Vec2 {
	return w.graph.Node(w.character.Root).Position
}

// Validate checks the invariants every tick must preserve.
func (w *World) Validate() error {
	if w.click < 0 || w.click > 1 {
		return fmt.Errorf("%w: click %v", sim.ErrInvalidState, w.click)
	}
	if !w.camera.Offset.IsValid() {
		return fmt.Errorf("%w: offset %v", sim.ErrInvalidState, w.camera.Offset)
	}
	if !w.Character().IsValid() {
		return fmt.Errorf("%w: character %v", sim.ErrInvalidState, w.Character())
	}
	for i, p := range w.particles.Items {
		if p.Life < 0 || p.Life > 1 || !p.Position.IsValid() {
			return fmt.Errorf("%w: particle %d life %v at %v", sim.ErrInvalidState, i, p.Life, p.Position)
		}
	}
	for i, g := range w.dust.Items {
		if g.Life < 0 || g.Life > 1 || !g.Position.IsValid() {
			return fmt.Errorf("%w: grain %d life %v at %v", sim.ErrInvalidState, i, g.Life, g.Position)
		}
	}
	return nil
}
