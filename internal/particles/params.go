package particles

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/circles/internal/field"
)

var ErrInvalidParams = errors.New("particles: invalid params")

// Params configures one pool.
type Params struct {
	Count int
	// Decay is the life lost per second.
	Decay float32
	// Jitter is the per-axis random step amplitude, in pixels at Reference.
	Jitter float32
	Field  field.Params

	// OpacityMin and OpacityMax bound the opacity drawn at respawn, as
	// fractions of 255. InitialOpacityMax replaces OpacityMax for the
	// population created at startup only.
	OpacityMin        float32
	OpacityMax        float32
	InitialOpacityMax float32
}

func DefaultParticleParams() Params {
	return Params{
		Count:  512,
		Decay:  0.125,
		Jitter: DefaultJitter,
		Field: field.Params{
			Speed:            15,
			CursorFalloff:    1.5,
			CharacterFalloff: 0.75,
			ClickBias:        0.05,
		},
		OpacityMin:        0.15,
		OpacityMax:        0.8,
		InitialOpacityMax: 0.8,
	}
}

func DefaultDustParams() Params {
	p := DefaultParticleParams()
	p.Field.Speed = 5
	p.InitialOpacityMax = 0.4
	return p
}

func (p Params) Validate() error {
	switch {
	case p.Count < 0:
		return fmt.Errorf("%w: count %d", ErrInvalidParams, p.Count)
	case p.Decay <= 0 || p.Decay > 1e3:
		return fmt.Errorf("%w: decay %v", ErrInvalidParams, p.Decay)
	case p.Jitter < 0:
		return fmt.Errorf("%w: jitter %v", ErrInvalidParams, p.Jitter)
	case p.Field.Speed < 0:
		return fmt.Errorf("%w: speed %v", ErrInvalidParams, p.Field.Speed)
	case p.Field.ClickBias < 0 || p.Field.ClickBias >= 1:
		return fmt.Errorf("%w: click bias %v must be in [0,1)", ErrInvalidParams, p.Field.ClickBias)
	case p.OpacityMin < 0 || p.OpacityMin > p.OpacityMax || p.OpacityMax > 1:
		return fmt.Errorf("%w: opacity range [%v,%v]", ErrInvalidParams, p.OpacityMin, p.OpacityMax)
	case p.InitialOpacityMax < p.OpacityMin || p.InitialOpacityMax > 1:
		return fmt.Errorf("%w: initial opacity max %v", ErrInvalidParams, p.InitialOpacityMax)
	}
	return nil
}

func (p *Params) opacity(rng *rand.Rand, hi float32) uint8 {
	return uint8((p.OpacityMin + rng.Float32()*(hi-p.OpacityMin)) * 255)
}
