// Package headless is an off-screen display that replays a scripted
// scenario at a fixed number of ticks.
package headless

import (
	"context"
	"fmt"

	"github.com/san-kum/circles/internal/display"
	"github.com/san-kum/circles/internal/script"
)

// PresentFunc is called with each presented frame. The frame is reused
// after the call returns.
type PresentFunc func(tick int, f display.Frame) error

type Display struct {
	scenario   *script.Scenario
	timeline   map[int][]display.Event
	format     display.PixelFormat
	frame      display.Frame
	tick       int
	presented  int
	fullscreen bool
	onPresent  PresentFunc
}

func New(s *script.Scenario, format display.PixelFormat, onPresent PresentFunc) (*Display, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Display{
		scenario:  s,
		timeline:  s.Timeline(),
		format:    format,
		frame:     display.NewFrame(s.Width, s.Height, format),
		onPresent: onPresent,
	}, nil
}

// Open adapts New to the backend registry with an idle scenario.
func Open(opts display.Options) (display.Display, error) {
	return New(script.Idle(opts.Width, opts.Height, 600), display.RGBA8, nil)
}

func (d *Display) Size() (int, int) { return d.frame.Width, d.frame.Height }

func (d *Display) Format() display.PixelFormat { return d.format }

func (d *Display) AcquireFrame() (display.Frame, error) { return d.frame, nil }

func (d *Display) Present(f display.Frame) error {
	d.presented++
	if d.onPresent != nil {
		return d.onPresent(d.tick, f)
	}
	return nil
}

func (d *Display) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: resize to %dx%d", display.ErrFrameSize, width, height)
	}
	d.frame = display.NewFrame(width, height, d.format)
	return nil
}

func (d *Display) ToggleFullscreen() { d.fullscreen = !d.fullscreen }

func (d *Display) Fullscreen() bool { return d.fullscreen }

// Presented is the number of frames handed to Present.
func (d *Display) Presented() int { return d.presented }

// Run delivers, for every tick: the scripted events, AboutToTick, then
// RedrawRequested. A final CloseRequested ends the session.
func (d *Display) Run(ctx context.Context, h display.Handler) error {
	for d.tick = 0; d.tick < d.scenario.Ticks; d.tick++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, ev := range d.timeline[d.tick] {
			if err := h.HandleEvent(d, ev); err != nil {
				return display.Finish(err)
			}
		}
		for _, k := range []display.EventKind{display.AboutToTick, display.RedrawRequested} {
			if err := h.HandleEvent(d, display.Event{Kind: k}); err != nil {
				return display.Finish(err)
			}
		}
	}
	return display.Finish(h.HandleEvent(d, display.Event{Kind: display.CloseRequested}))
}
