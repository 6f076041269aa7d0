// Package window presents frames in a native window through raylib.
package window

import (
	"context"
	"image/color"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/circles/internal/display"
)

// Window uploads each presented frame into a streaming texture and blits it
// to the back buffer.
type Window struct {
	width, height int
	pixels        []color.RGBA
	tex           rl.Texture2D
	cursor        rl.Vector2
	background    color.RGBA
}

// Open creates the window. It must be called from the main goroutine.
func Open(opts display.Options) (display.Display, error) {
	flags := uint32(rl.FlagWindowResizable)
	if opts.VSync {
		flags |= rl.FlagVsyncHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if !rl.IsWindowReady() {
		return nil, display.ErrSetup
	}
	rl.SetExitKey(0)
	rl.HideCursor()

	bg := opts.Background
	w := &Window{background: color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 255}}
	w.alloc(opts.Width, opts.Height)
	return w, nil
}

func (w *Window) alloc(width, height int) {
	if w.tex.ID != 0 {
		rl.UnloadTexture(w.tex)
	}
	w.width, w.height = width, height
	w.pixels = make([]color.RGBA, width*height)

	img := rl.GenImageColor(width, height, w.background)
	w.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
}

func (w *Window) Size() (int, int) { return w.width, w.height }

func (w *Window) Format() display.PixelFormat { return display.RGBA8 }

// AcquireFrame aliases the texture staging buffer, so conversion writes
// straight into the upload source.
func (w *Window) AcquireFrame() (display.Frame, error) {
	if len(w.pixels) == 0 {
		return display.Frame{}, display.ErrFrameSize
	}
	pix := unsafe.Slice((*byte)(unsafe.Pointer(&w.pixels[0])), len(w.pixels)*4)
	return display.Frame{
		Pix:    pix,
		Width:  w.width,
		Height: w.height,
		Stride: w.width * 4,
		Format: display.RGBA8,
	}, nil
}

func (w *Window) Present(display.Frame) error {
	rl.UpdateTexture(w.tex, w.pixels)
	return nil
}

func (w *Window) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return display.ErrFrameSize
	}
	w.alloc(width, height)
	return nil
}

func (w *Window) ToggleFullscreen() { rl.ToggleFullscreen() }

func (w *Window) Run(ctx context.Context, h display.Handler) error {
	defer w.close()

	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, ev := range w.poll() {
			if err := h.HandleEvent(w, ev); err != nil {
				return display.Finish(err)
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(w.background)
		rl.DrawTexture(w.tex, 0, 0, rl.White)
		rl.EndDrawing()
	}
	return display.Finish(h.HandleEvent(w, display.Event{Kind: display.CloseRequested}))
}

// poll translates this frame's raylib input state into events, ending with
// the tick and redraw pair.
func (w *Window) poll() []display.Event {
	var evs []display.Event

	if rl.IsWindowResized() {
		evs = append(evs, display.Event{
			Kind:   display.Resized,
			Width:  rl.GetScreenWidth(),
			Height: rl.GetScreenHeight(),
		})
	}

	if pos := rl.GetMousePosition(); pos != w.cursor {
		w.cursor = pos
		evs = append(evs, display.Event{Kind: display.PointerMoved, X: pos.X, Y: pos.Y})
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		evs = append(evs, display.Event{Kind: display.ButtonPressed})
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		evs = append(evs, display.Event{Kind: display.ButtonReleased})
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		evs = append(evs, display.Event{Kind: display.KeyPressed, Key: display.KeyF11})
	}

	return append(evs,
		display.Event{Kind: display.AboutToTick},
		display.Event{Kind: display.RedrawRequested},
	)
}

func (w *Window) close() {
	if w.tex.ID != 0 {
		rl.UnloadTexture(w.tex)
	}
	rl.CloseWindow()
}
