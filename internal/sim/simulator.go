package sim

import (
	"context"
	"fmt"
	"time"
)

// Simulator drives a Stepper with a fixed delta, outside any event loop.
// It backs the headless commands and the end-to-end tests.
type Simulator struct {
	world     Stepper
	metrics   []Metric
	observers []Observer
}

func New(world Stepper) *Simulator {
	return &Simulator{
		world:     world,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}
	start := time.Now()

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, start)
			return result, ctx.Err()
		default:
		}

		t0 := time.Now()
		c := s.world.Step(cfg.Delta)
		sample := Sample{Context: c, Took: time.Since(t0)}

		result.Ticks++
		result.Last = c

		if cfg.Validate {
			if v, ok := s.world.(Validator); ok {
				if err := v.Validate(); err != nil {
					s.finish(result, start)
					return result, &TickError{Tick: i, Err: err}
				}
			}
		}

		for _, m := range s.metrics {
			m.Observe(sample)
		}
		for _, o := range s.observers {
			if err := o.OnTick(sample); err != nil {
				s.finish(result, start)
				return result, &TickError{Tick: i, Err: err}
			}
		}
	}

	s.finish(result, start)
	return result, nil
}

func (s *Simulator) finish(result *Result, start time.Time) {
	result.Elapsed = time.Since(start)
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Delta <= 0 {
		return fmt.Errorf("%w: delta must be positive, got %f", ErrInvalidConfig, cfg.Delta)
	}
	if cfg.Ticks < 0 {
		return fmt.Errorf("%w: ticks must not be negative, got %d", ErrInvalidConfig, cfg.Ticks)
	}
	return nil
}
