package particles

import (
	"math/rand/v2"

	"github.com/san-kum/circles/internal/parallel"
	"github.com/san-kum/circles/internal/sim"
)

// BlockSize is the number of elements one worker owns per fan-out task.
const BlockSize = 128

type stepFunc[T any] func(*T, *sim.Context, *Params, *rand.Rand)

// Pool is a fixed-size population. Items is never resized after creation;
// during Update each element is written only by the worker owning its block.
type Pool[T any] struct {
	Items  []T
	params Params
	seed   uint64
	step   stepFunc[T]
}

type (
	Particles = Pool[Particle]
	Dust      = Pool[Grain]
)

// NewParticles allocates and randomizes a particle pool inside the window
// visible under c.
func NewParticles(prm Params, seed uint64, c sim.Context) *Particles {
	return newPool(prm, seed, c, initParticle, stepParticle)
}

func NewDust(prm Params, seed uint64, c sim.Context) *Dust {
	return newPool(prm, seed, c, initGrain, stepGrain)
}

func newPool[T any](prm Params, seed uint64, c sim.Context, init, step stepFunc[T]) *Pool[T] {
	p := &Pool[T]{
		Items:  make([]T, prm.Count),
		params: prm,
		seed:   seed,
		step:   step,
	}
	p.each(&c, init)
	return p
}

func (p *Pool[T]) Params() Params { return p.params }

func (p *Pool[T]) Len() int { return len(p.Items) }

// Update advances every element by one tick. It blocks until all workers
// have finished.
func (p *Pool[T]) Update(c sim.Context) {
	p.each(&c, p.step)
}

func (p *Pool[T]) each(c *sim.Context, fn stepFunc[T]) {
	prm := p.params
	parallel.For(len(p.Items), BlockSize, func(start, end int) {
		rng := rand.New(rand.NewPCG(p.seed^mix(c.Seq), uint64(start)))
		for i := start; i < end; i++ {
			fn(&p.Items[i], c, &prm, rng)
		}
	})
}

// mix spreads tick numbers so consecutive ticks seed unrelated streams.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
