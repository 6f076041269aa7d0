// Package display defines the surface the frame driver draws into and the
// event stream it consumes. Concrete backends live in subpackages.
package display

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned from a Handler to end the event loop cleanly.
	ErrClosed = errors.New("display: closed")

	// ErrSetup wraps failures to create a window, surface or terminal.
	ErrSetup = errors.New("display: setup failed")

	ErrFrameSize = errors.New("display: frame size mismatch")
)

// EventKind enumerates the events a backend delivers.
type EventKind int

const (
	PointerMoved EventKind = iota
	ButtonPressed
	ButtonReleased
	KeyPressed
	Resized
	CloseRequested
	RedrawRequested
	AboutToTick
)

var kindNames = [...]string{
	PointerMoved:    "pointer-moved",
	ButtonPressed:   "button-pressed",
	ButtonReleased:  "button-released",
	KeyPressed:      "key-pressed",
	Resized:         "resized",
	CloseRequested:  "close-requested",
	RedrawRequested: "redraw-requested",
	AboutToTick:     "about-to-tick",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("event(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a name produced by String back to its kind.
func ParseKind(s string) (EventKind, error) {
	for k, name := range kindNames {
		if name == s {
			return EventKind(k), nil
		}
	}
	return 0, fmt.Errorf("display: unknown event kind %q", s)
}

// Key names used in KeyPressed events.
const (
	KeyF11    = "F11"
	KeyEscape = "Escape"
)

// Event is one input or lifecycle notification. X and Y are set for
// PointerMoved, Width and Height for Resized, Key for KeyPressed.
type Event struct {
	Kind   EventKind
	X, Y   float32
	Width  int
	Height int
	Key    string
}

// PixelFormat is the byte layout a backend expects in a Frame.
type PixelFormat int

const (
	// RGBA8 stores R, G, B, A bytes per pixel.
	RGBA8 PixelFormat = iota
	// BGRA8 stores B, G, R, A bytes per pixel.
	BGRA8
	// XRGB32 stores one little-endian uint32 0xXXRRGGBB per pixel. The top
	// byte is written as 0xff.
	XRGB32
)

func (f PixelFormat) String() string {
	switch f {
	case RGBA8:
		return "rgba8"
	case BGRA8:
		return "bgra8"
	case XRGB32:
		return "xrgb32"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// BytesPerPixel is 4 for every supported format.
func (f PixelFormat) BytesPerPixel() int { return 4 }

// Frame is a row-major pixel buffer owned by a backend.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
	Format PixelFormat
}

// NewFrame allocates a tightly packed frame.
func NewFrame(width, height int, format PixelFormat) Frame {
	stride := width * format.BytesPerPixel()
	return Frame{
		Pix:    make([]byte, stride*height),
		Width:  width,
		Height: height,
		Stride: stride,
		Format: format,
	}
}

// Handler receives events on the backend's event goroutine. Returning
// ErrClosed stops Run with a nil error; any other error stops Run and is
// returned from it.
type Handler interface {
	HandleEvent(d Display, ev Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(d Display, ev Event) error

func (f HandlerFunc) HandleEvent(d Display, ev Event) error { return f(d, ev) }

// Display is the presentation surface.
type Display interface {
	Size() (width, height int)
	Format() PixelFormat
	// AcquireFrame returns the buffer to fill for the next present. It is
	// valid until Present or Resize.
	AcquireFrame() (Frame, error)
	Present(f Frame) error
	// Resize reallocates the back buffer to the given size.
	Resize(width, height int) error
	// Run delivers events to h until the handler returns an error, ctx is
	// done, or the host closes the surface.
	Run(ctx context.Context, h Handler) error
}

// Fullscreener is implemented by backends that can toggle fullscreen.
type Fullscreener interface {
	ToggleFullscreen()
}

// Finish converts a handler result into a Run result.
func Finish(err error) error {
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}
