package metrics

import (
	"github.com/san-kum/circles/internal/geom"
	"github.com/san-kum/circles/internal/sim"
)

// Pan is the total distance the camera offset traveled, in pixels.
type Pan struct {
	last    geom.Vec2
	started bool
	total   float64
}

func NewPan() *Pan { return &Pan{} }

func (p *Pan) Name() string { return "camera_pan_px" }

func (p *Pan) Observe(s sim.Sample) {
	off := s.Context.Offset
	if p.started {
		p.total += float64(off.Distance(p.last))
	}
	p.last = off
	p.started = true
}

func (p *Pan) Value() float64 { return p.total }

func (p *Pan) Reset() {
	p.total = 0
	p.started = false
}
