package metrics

import (
	"github.com/san-kum/circles/internal/sim"
	"github.com/san-kum/circles/internal/world"
)

// Alive averages the mean life across both pools over all observed ticks.
type Alive struct {
	w       *world.World
	sum     float64
	samples int
}

func NewAlive(w *world.World) *Alive {
	return &Alive{w: w}
}

func (a *Alive) Name() string {
	return "mean_life"
}

func (a *Alive) Observe(sim.Sample) {
	var total float64
	n := 0
	for _, p := range a.w.Particles().Items {
		total += float64(p.Life)
		n++
	}
	for _, g := range a.w.Dust().Items {
		total += float64(g.Life)
		n++
	}
	if n == 0 {
		return
	}
	a.sum += total / float64(n)
	a.samples++
}

func (a *Alive) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *Alive) Reset() {
	a.sum = 0
	a.samples = 0
}
