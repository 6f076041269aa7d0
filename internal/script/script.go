// Package script loads scripted input sessions used by the headless
// backend for recordings, benchmarks and tests.
package script

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/circles/internal/display"
)

var ErrInvalidScenario = errors.New("script: invalid scenario")

// Scenario is a fixed-delta session with input events pinned to ticks.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Ticks       int     `yaml:"ticks"`
	Delta       float32 `yaml:"delta"`
	Events      []Step  `yaml:"events"`
}

// Step is a single scripted event. Events at the same tick are delivered in
// file order, before that tick's update.
type Step struct {
	Tick   int     `yaml:"tick"`
	Kind   string  `yaml:"kind"`
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Key    string  `yaml:"key"`
}

// Idle is a scenario with no input.
func Idle(width, height, ticks int) *Scenario {
	return &Scenario{
		Name:   "idle",
		Width:  width,
		Height: height,
		Ticks:  ticks,
		Delta:  1.0 / 60,
	}
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	s := Idle(800, 600, 600)
	s.Name = ""
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scenario) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidScenario, s.Width, s.Height)
	}
	if s.Ticks < 0 {
		return fmt.Errorf("%w: ticks %d", ErrInvalidScenario, s.Ticks)
	}
	if !(s.Delta > 0) {
		return fmt.Errorf("%w: delta %v", ErrInvalidScenario, s.Delta)
	}
	for i, st := range s.Events {
		if st.Tick < 0 {
			return fmt.Errorf("%w: event %d: negative tick", ErrInvalidScenario, i)
		}
		if _, err := st.Event(); err != nil {
			return fmt.Errorf("%w: event %d: %v", ErrInvalidScenario, i, err)
		}
	}
	return nil
}

// Event converts the step into a display event.
func (st Step) Event() (display.Event, error) {
	kind, err := display.ParseKind(st.Kind)
	if err != nil {
		return display.Event{}, err
	}
	return display.Event{
		Kind:   kind,
		X:      st.X,
		Y:      st.Y,
		Width:  st.Width,
		Height: st.Height,
		Key:    st.Key,
	}, nil
}

// Timeline groups the events by tick. The scenario must be valid.
func (s *Scenario) Timeline() map[int][]display.Event {
	steps := append([]Step(nil), s.Events...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Tick < steps[j].Tick })

	out := make(map[int][]display.Event)
	for _, st := range steps {
		ev, err := st.Event()
		if err != nil {
			continue
		}
		out[st.Tick] = append(out[st.Tick], ev)
	}
	return out
}
