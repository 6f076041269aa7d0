// Package ebitenwin presents frames through an ebiten game loop.
package ebitenwin

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/san-kum/circles/internal/display"
)

type Display struct {
	opts   display.Options
	frame  display.Frame
	fresh  bool
	cursor [2]int

	ctx     context.Context
	handler display.Handler
	layout  [2]int
	err     error
}

func Open(opts display.Options) (display.Display, error) {
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(opts.VSync)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	return &Display{
		opts:  opts,
		frame: display.NewFrame(opts.Width, opts.Height, display.RGBA8),
	}, nil
}

func (d *Display) Size() (int, int) { return d.frame.Width, d.frame.Height }

func (d *Display) Format() display.PixelFormat { return display.RGBA8 }

func (d *Display) AcquireFrame() (display.Frame, error) { return d.frame, nil }

func (d *Display) Present(display.Frame) error {
	d.fresh = true
	return nil
}

func (d *Display) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return display.ErrFrameSize
	}
	d.frame = display.NewFrame(width, height, display.RGBA8)
	d.fresh = false
	return nil
}

func (d *Display) ToggleFullscreen() { ebiten.SetFullscreen(!ebiten.IsFullscreen()) }

func (d *Display) Run(ctx context.Context, h display.Handler) error {
	d.ctx, d.handler = ctx, h
	err := ebiten.RunGame(d)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	return display.Finish(err)
}

func (d *Display) deliver(ev display.Event) error {
	if err := d.handler.HandleEvent(d, ev); err != nil {
		if errors.Is(err, display.ErrClosed) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

// Update implements ebiten.Game.
func (d *Display) Update() error {
	if d.err != nil {
		return d.err
	}
	if err := d.ctx.Err(); err != nil {
		return err
	}

	var evs []display.Event
	if d.layout[0] > 0 && (d.layout[0] != d.frame.Width || d.layout[1] != d.frame.Height) {
		evs = append(evs, display.Event{Kind: display.Resized, Width: d.layout[0], Height: d.layout[1]})
	}
	if ebiten.IsWindowBeingClosed() {
		evs = append(evs, display.Event{Kind: display.CloseRequested})
	}
	if x, y := ebiten.CursorPosition(); x != d.cursor[0] || y != d.cursor[1] {
		d.cursor = [2]int{x, y}
		evs = append(evs, display.Event{Kind: display.PointerMoved, X: float32(x), Y: float32(y)})
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		evs = append(evs, display.Event{Kind: display.ButtonPressed})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		evs = append(evs, display.Event{Kind: display.ButtonReleased})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		evs = append(evs, display.Event{Kind: display.KeyPressed, Key: display.KeyF11})
	}
	evs = append(evs, display.Event{Kind: display.AboutToTick})

	for _, ev := range evs {
		if err := d.deliver(ev); err != nil {
			return err
		}
	}
	return nil
}

// Draw implements ebiten.Game. Handler errors raised here surface on the
// next Update.
func (d *Display) Draw(screen *ebiten.Image) {
	if d.err != nil {
		return
	}
	if err := d.deliver(display.Event{Kind: display.RedrawRequested}); err != nil {
		d.err = err
		return
	}
	b := screen.Bounds()
	if d.fresh && b.Dx() == d.frame.Width && b.Dy() == d.frame.Height {
		screen.WritePixels(d.frame.Pix)
	}
}

// Layout implements ebiten.Game. A size change becomes a Resized event on
// the next Update.
func (d *Display) Layout(outsideWidth, outsideHeight int) (int, int) {
	d.layout = [2]int{outsideWidth, outsideHeight}
	return outsideWidth, outsideHeight
}
