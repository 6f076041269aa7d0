package frame_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/circles/internal/display"
	"github.com/san-kum/circles/internal/display/headless"
	"github.com/san-kum/circles/internal/frame"
	"github.com/san-kum/circles/internal/geom"
	"github.com/san-kum/circles/internal/render"
	"github.com/san-kum/circles/internal/script"
	"github.com/san-kum/circles/internal/world"
)

// stubDisplay fails on demand and is driven by hand.
type stubDisplay struct {
	frame      display.Frame
	acquireErr error
	presentErr error
	resizeErr  error
	presents   int
}

func (s *stubDisplay) Size() (int, int)            { return s.frame.Width, s.frame.Height }
func (s *stubDisplay) Format() display.PixelFormat { return s.frame.Format }
func (s *stubDisplay) Run(context.Context, display.Handler) error {
	return nil
}

func (s *stubDisplay) AcquireFrame() (display.Frame, error) {
	if s.acquireErr != nil {
		return display.Frame{}, s.acquireErr
	}
	return s.frame, nil
}

func (s *stubDisplay) Present(display.Frame) error {
	s.presents++
	return s.presentErr
}

func (s *stubDisplay) Resize(w, h int) error {
	if s.resizeErr != nil {
		return s.resizeErr
	}
	s.frame = display.NewFrame(w, h, s.frame.Format)
	return nil
}

func newWorld(w, h int) *world.World {
	wd, err := world.New(world.DefaultParams(), geom.Viewport{Width: w, Height: h})
	Expect(err).NotTo(HaveOccurred())
	return wd
}

var _ = Describe("Driver", func() {
	var (
		w    *world.World
		d    *frame.Driver
		opts frame.Options
	)

	BeforeEach(func() {
		w = newWorld(800, 600)
		opts = frame.Options{
			Palette:    render.DefaultPalette(),
			FixedDelta: 1.0 / 60,
		}
		d = frame.New(w, opts)
	})

	Describe("a headless session", func() {
		It("settles at the origin with the cursor centered", func() {
			s := script.Idle(800, 600, 300)
			s.Events = []script.Step{{Tick: 0, Kind: "pointer-moved", X: 400, Y: 300}}
			disp, err := headless.New(s, display.BGRA8, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(disp.Run(context.Background(), d)).To(Succeed())

			Expect(w.Offset().X).To(BeNumerically("~", 0, 1e-3))
			Expect(w.Offset().Y).To(BeNumerically("~", 0, 1e-3))
			Expect(w.Click()).To(Equal(float32(0)))
			Expect(w.Seq()).To(Equal(uint64(300)))
			Expect(d.Frames()).To(Equal(uint64(300)))
			Expect(disp.Presented()).To(Equal(300))
			Expect(d.FPS()).To(BeNumerically("~", 60, 1e-2))
		})

		It("delivers converted pixels to the display", func() {
			var last display.Frame
			disp, err := headless.New(script.Idle(800, 600, 3), display.BGRA8, func(_ int, f display.Frame) error {
				last = f
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(disp.Run(context.Background(), d)).To(Succeed())

			px := d.Canvas().Image().RGBAAt(0, 0)
			Expect(last.Pix[0:4]).To(Equal([]byte{px.B, px.G, px.R, 255}))
			translucent := 0
			for i := 3; i < len(last.Pix); i += 4 {
				if last.Pix[i] != 255 {
					translucent++
				}
			}
			Expect(translucent).To(BeZero())
		})

		It("applies resizes to the world, canvas and display together", func() {
			s := script.Idle(800, 600, 20)
			s.Events = []script.Step{
				{Tick: 5, Kind: "resized", Width: 1024, Height: 768},
				{Tick: 6, Kind: "resized", Width: 0, Height: 768},
				{Tick: 10, Kind: "resized", Width: 800, Height: 600},
			}
			var sizes []geom.Viewport
			disp, err := headless.New(s, display.RGBA8, func(_ int, f display.Frame) error {
				sizes = append(sizes, geom.Viewport{Width: f.Width, Height: f.Height})
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(disp.Run(context.Background(), d)).To(Succeed())

			Expect(sizes[5]).To(Equal(geom.Viewport{Width: 1024, Height: 768}))
			Expect(sizes[6]).To(Equal(geom.Viewport{Width: 1024, Height: 768}))
			Expect(sizes[10]).To(Equal(geom.Viewport{Width: 800, Height: 600}))
			Expect(w.Viewport()).To(Equal(geom.Viewport{Width: 800, Height: 600}))
			Expect(d.Canvas().Viewport()).To(Equal(w.Viewport()))
		})

		It("toggles fullscreen on F11", func() {
			s := script.Idle(64, 48, 4)
			s.Events = []script.Step{
				{Tick: 1, Kind: "key-pressed", Key: "F11"},
				{Tick: 2, Kind: "key-pressed", Key: "a"},
			}
			disp, err := headless.New(s, display.RGBA8, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(disp.Run(context.Background(), frame.New(newWorld(64, 48), opts))).To(Succeed())
			Expect(disp.Fullscreen()).To(BeTrue())
		})

		It("routes pointer buttons into click intensity", func() {
			s := script.Idle(64, 48, 3)
			s.Events = []script.Step{{Tick: 1, Kind: "button-pressed"}}
			wd := newWorld(64, 48)
			disp, err := headless.New(s, display.RGBA8, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(disp.Run(context.Background(), frame.New(wd, opts))).To(Succeed())

			Expect(wd.Pressed()).To(BeTrue())
			Expect(wd.Click()).To(BeNumerically(">", 0.9))
			Expect(wd.Click()).To(BeNumerically("<", 1))
		})

		It("keeps full click intensity on the tick of the press", func() {
			s := script.Idle(64, 48, 3)
			s.Events = []script.Step{{Tick: 2, Kind: "button-pressed"}}
			wd := newWorld(64, 48)
			disp, err := headless.New(s, display.RGBA8, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(disp.Run(context.Background(), frame.New(wd, opts))).To(Succeed())

			Expect(wd.Click()).To(Equal(float32(1)))
		})
	})

	Describe("event handling", func() {
		var disp *stubDisplay

		BeforeEach(func() {
			disp = &stubDisplay{frame: display.NewFrame(800, 600, display.RGBA8)}
		})

		It("ends the loop on close", func() {
			err := d.HandleEvent(disp, display.Event{Kind: display.CloseRequested})
			Expect(err).To(MatchError(display.ErrClosed))
			Expect(display.Finish(err)).To(Succeed())
		})

		It("skips the frame when the buffer cannot be acquired", func() {
			disp.acquireErr = errors.New("busy")
			Expect(d.HandleEvent(disp, display.Event{Kind: display.RedrawRequested})).To(Succeed())
			Expect(disp.presents).To(BeZero())
			Expect(d.Frames()).To(BeZero())
		})

		It("treats presentation failure as fatal", func() {
			boom := errors.New("swap failed")
			disp.presentErr = boom
			err := d.HandleEvent(disp, display.Event{Kind: display.RedrawRequested})
			Expect(err).To(MatchError(boom))
		})

		It("follows a surface that changed size on its own", func() {
			disp.frame = display.NewFrame(640, 480, display.RGBA8)
			Expect(d.HandleEvent(disp, display.Event{Kind: display.RedrawRequested})).To(Succeed())
			Expect(w.Viewport()).To(Equal(geom.Viewport{Width: 640, Height: 480}))
			Expect(disp.presents).To(Equal(1))
		})

		It("keeps the old size everywhere when the display cannot resize", func() {
			boom := errors.New("no surface")
			disp.resizeErr = boom
			err := d.HandleEvent(disp, display.Event{Kind: display.Resized, Width: 1024, Height: 768})
			Expect(err).To(MatchError(boom))

			old := geom.Viewport{Width: 800, Height: 600}
			Expect(w.Viewport()).To(Equal(old))
			Expect(d.Canvas().Viewport()).To(Equal(old))
			w2, h2 := disp.Size()
			Expect([]int{w2, h2}).To(Equal([]int{800, 600}))
		})

		It("ignores zero-area resizes without touching the display", func() {
			disp.resizeErr = errors.New("must not be called")
			Expect(d.HandleEvent(disp, display.Event{Kind: display.Resized, Width: 0, Height: 600})).To(Succeed())
			Expect(w.Viewport()).To(Equal(geom.Viewport{Width: 800, Height: 600}))
		})

		It("moves the cursor", func() {
			Expect(d.HandleEvent(disp, display.Event{Kind: display.PointerMoved, X: 12, Y: 34})).To(Succeed())
			Expect(w.Cursor()).To(Equal(geom.V(12, 34)))
		})
	})

	It("logs the frame rate at debug level", func() {
		var buf bytes.Buffer
		opts.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts.LogEvery = time.Second
		d = frame.New(w, opts)

		disp := &stubDisplay{frame: display.NewFrame(800, 600, display.RGBA8)}
		for i := 0; i < 125; i++ {
			Expect(d.HandleEvent(disp, display.Event{Kind: display.AboutToTick})).To(Succeed())
		}
		Expect(strings.Count(buf.String(), "frame rate")).To(Equal(2))
	})
})
