package sim

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidState indicates an element left its documented bounds.
	ErrInvalidState = errors.New("sim: invalid state")

	// ErrInvalidConfig indicates a run configuration that cannot be executed.
	ErrInvalidConfig = errors.New("sim: invalid run config")
)

// Stepper advances a world by one tick and returns the context it used.
type Stepper interface {
	Step(delta float32) Context
}

// Validator is implemented by steppers that can check their own invariants.
type Validator interface {
	Validate() error
}

// Sample is one observed tick.
type Sample struct {
	Context Context
	Took    time.Duration
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(s Sample) error
}

type ObserverFunc func(s Sample) error

func (f ObserverFunc) OnTick(s Sample) error { return f(s) }

type Config struct {
	Delta    float32
	Ticks    int
	Validate bool
}

func DefaultConfig() Config {
	return Config{
		Delta:    1.0 / 60,
		Ticks:    600,
		Validate: true,
	}
}

type Result struct {
	Ticks   int
	Elapsed time.Duration
	Last    Context
	Metrics map[string]float64
}

// TickError reports the tick at which a run stopped.
type TickError struct {
	Tick int
	Err  error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Err)
}

func (e *TickError) Unwrap() error { return e.Err }
