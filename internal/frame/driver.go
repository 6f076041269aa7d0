// Package frame routes display events into the world and renders each
// redraw into the display's frame buffer.
package frame

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/circles/internal/clock"
	"github.com/san-kum/circles/internal/display"
	"github.com/san-kum/circles/internal/geom"
	"github.com/san-kum/circles/internal/raster"
	"github.com/san-kum/circles/internal/render"
	"github.com/san-kum/circles/internal/world"
)

type Options struct {
	Palette     render.Palette
	StrokeWidth float32
	// FixedDelta replaces the wall clock delta when positive. Scripted and
	// recorded sessions use it to stay reproducible.
	FixedDelta float32
	// LogEvery is the interval between frame rate log lines; zero disables
	// them.
	LogEvery time.Duration
	Logger   *slog.Logger
	Clock    *clock.Clock
}

// Driver implements display.Handler. All methods run on the display's event
// goroutine.
type Driver struct {
	world  *world.World
	canvas *raster.Canvas
	clock  *clock.Clock
	opts   Options
	log    *slog.Logger

	sinceLog time.Duration
	frames   uint64
	last     render.Stats
}

func New(w *world.World, opts Options) *Driver {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	c := raster.New(w.Viewport())
	if opts.StrokeWidth > 0 {
		c.StrokeWidth = opts.StrokeWidth
	}
	return &Driver{
		world:  w,
		canvas: c,
		clock:  opts.Clock,
		opts:   opts,
		log:    opts.Logger,
	}
}

func (d *Driver) World() *world.World     { return d.world }
func (d *Driver) Canvas() *raster.Canvas  { return d.canvas }
func (d *Driver) FPS() float32            { return d.clock.FPS() }
func (d *Driver) Frames() uint64          { return d.frames }
func (d *Driver) LastStats() render.Stats { return d.last }

func (d *Driver) HandleEvent(disp display.Display, ev display.Event) error {
	switch ev.Kind {
	case display.PointerMoved:
		d.world.MoveCursor(ev.X, ev.Y)
	case display.ButtonPressed:
		d.world.Press()
	case display.ButtonReleased:
		d.world.Release()
	case display.KeyPressed:
		if ev.Key == display.KeyF11 {
			if fs, ok := disp.(display.Fullscreener); ok {
				fs.ToggleFullscreen()
			}
		}
	case display.Resized:
		return d.resize(disp, ev.Width, ev.Height)
	case display.CloseRequested:
		return display.ErrClosed
	case display.AboutToTick:
		d.tick()
	case display.RedrawRequested:
		return d.redraw(disp)
	}
	return nil
}

// resize updates the display buffer, the world and the canvas together so
// the next redraw sees one consistent size. A failed display resize leaves
// all three untouched.
func (d *Driver) resize(disp display.Display, width, height int) error {
	if (geom.Viewport{Width: width, Height: height}).Empty() {
		return nil
	}
	if err := disp.Resize(width, height); err != nil {
		return fmt.Errorf("resize display: %w", err)
	}
	d.world.Resize(width, height)
	d.canvas.Resize(d.world.Viewport())
	d.log.Debug("resized", "width", width, "height", height)
	return nil
}

func (d *Driver) tick() {
	var delta float32
	if d.opts.FixedDelta > 0 {
		delta = d.opts.FixedDelta
		d.clock.Observe(delta)
	} else {
		delta = d.clock.Tick()
	}
	d.world.Step(delta)

	if d.opts.LogEvery <= 0 {
		return
	}
	d.sinceLog += time.Duration(float64(delta) * float64(time.Second))
	if d.sinceLog >= d.opts.LogEvery {
		d.sinceLog = 0
		d.log.Debug("frame rate",
			"fps", fmt.Sprintf("%.1f", d.clock.FPS()),
			"tick", d.world.Seq(),
			"drawn", d.last.Drawn,
			"skipped", d.last.Skipped)
	}
}

func (d *Driver) redraw(disp display.Display) error {
	f, err := disp.AcquireFrame()
	if err != nil {
		return nil
	}
	vp := d.canvas.Viewport()
	if f.Width != vp.Width || f.Height != vp.Height {
		// The surface changed size without a Resized event.
		if !d.world.Resize(f.Width, f.Height) {
			return nil
		}
		d.canvas.Resize(d.world.Viewport())
	}

	d.last = render.Frame(d.canvas, d.world, d.opts.Palette)
	if err := d.canvas.Present(f); err != nil {
		return fmt.Errorf("convert frame: %w", err)
	}
	if err := disp.Present(f); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	d.frames++
	return nil
}
