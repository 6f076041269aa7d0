package world_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/circles/internal/geom"
	"github.com/san-kum/circles/internal/particles"
	"github.com/san-kum/circles/internal/sim"
	"github.com/san-kum/circles/internal/world"
)

const delta = float32(1.0 / 60)

var _ = Describe("World", func() {
	var w *world.World

	BeforeEach(func() {
		var err error
		w, err = world.New(world.DefaultParams(), geom.Viewport{Width: 800, Height: 600})
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts with the cursor and the character at the center", func() {
		Expect(w.Cursor()).To(Equal(geom.V(400, 300)))
		Expect(w.Character()).To(Equal(geom.V(400, 300)))
		Expect(w.Offset()).To(Equal(geom.Vec2{}))
		Expect(w.Click()).To(BeZero())
		Expect(w.Particles().Len()).To(Equal(512))
		Expect(w.Dust().Len()).To(Equal(512))
	})

	It("rejects invalid params and empty viewports", func() {
		p := world.DefaultParams()
		p.Particles.Decay = 0
		_, err := world.New(p, geom.Viewport{Width: 10, Height: 10})
		Expect(err).To(MatchError(particles.ErrInvalidParams))

		_, err = world.New(world.DefaultParams(), geom.Viewport{})
		Expect(err).To(MatchError(world.ErrInvalidParams))
	})

	Context("with the cursor resting at the center", func() {
		It("settles the camera at the origin and leaves click at zero", func() {
			w.MoveCursor(400, 300)
			for i := 0; i < 300; i++ {
				w.Step(delta)
			}
			Expect(w.Offset().X).To(BeNumerically("~", 0, 1e-3))
			Expect(w.Offset().Y).To(BeNumerically("~", 0, 1e-3))
			Expect(w.Click()).To(Equal(float32(0)))
			Expect(w.Seq()).To(Equal(uint64(300)))
		})
	})

	Context("click intensity", func() {
		It("is exactly one after repeated presses in one tick", func() {
			w.Press()
			w.Press()
			c := w.Step(delta)
			Expect(c.Click).To(Equal(float32(1)))
			Expect(w.Click()).To(Equal(float32(1)))
			Expect(w.Pressed()).To(BeTrue())
		})

		It("drives the press tick with full intensity and decays after", func() {
			w.MoveCursor(700, 500)
			w.Press()
			c := w.Step(delta)
			Expect(c.Click).To(Equal(float32(1)))

			want := geom.V(400, 300).Lerp(geom.V(700, 500), (1+0.1)*delta)
			Expect(w.Character().X).To(BeNumerically("~", want.X, 1e-4))

			c = w.Step(delta)
			Expect(c.Click).To(BeNumerically("~", 1-5*delta, 1e-6))
		})

		It("never increases between presses", func() {
			w.Press()
			w.Release()
			prev := w.Click()
			for i := 0; i < 120; i++ {
				w.Step(delta)
				Expect(w.Click()).To(BeNumerically("<=", prev))
				Expect(w.Click()).To(BeNumerically(">=", 0))
				prev = w.Click()
			}
			Expect(prev).To(BeNumerically("<", 1e-3))
		})

		It("resets to one on the next press edge", func() {
			w.Press()
			w.Step(delta)
			w.Step(delta)
			Expect(w.Click()).To(BeNumerically("<", 1))
			w.Release()
			w.Press()
			Expect(w.Click()).To(Equal(float32(1)))
			Expect(w.Step(delta).Click).To(Equal(float32(1)))
		})
	})

	Context("character", func() {
		It("follows the cursor in world space", func() {
			w.MoveCursor(700, 500)
			w.Step(delta)

			want := geom.V(400, 300).Lerp(geom.V(700, 500), 0.1*delta)
			Expect(w.Character().X).To(BeNumerically("~", want.X, 1e-4))
			Expect(w.Character().Y).To(BeNumerically("~", want.Y, 1e-4))
			Expect(w.Character().X).To(BeNumerically(">", 400))
		})

		It("is drawn as the only entity with a single node", func() {
			Expect(w.Entities()).To(HaveLen(1))
			Expect(w.Graph().Len()).To(Equal(1))
		})
	})

	Context("camera", func() {
		It("pans when the cursor sits in a corner", func() {
			w.MoveCursor(790, 590)
			for i := 0; i < 30; i++ {
				w.Step(delta)
			}
			Expect(w.Offset().X).To(BeNumerically("<", 0))
			Expect(w.Offset().Y).To(BeNumerically("<", 0))
		})
	})

	Context("resize", func() {
		It("ignores zero-area sizes", func() {
			Expect(w.Resize(0, 600)).To(BeFalse())
			Expect(w.Resize(800, 0)).To(BeFalse())
			Expect(w.Viewport()).To(Equal(geom.Viewport{Width: 800, Height: 600}))
		})

		It("round trips without drift in derived sizes", func() {
			before := w.Viewport()
			size, mid, minDim := before.Size(), before.Mid(), before.MinDim()

			Expect(w.Resize(1024, 768)).To(BeTrue())
			w.Step(delta)
			Expect(w.Viewport().Size()).To(Equal(geom.V(1024, 768)))
			Expect(w.Resize(800, 600)).To(BeTrue())

			after := w.Viewport()
			Expect(after).To(Equal(before))
			Expect(after.Size()).To(Equal(size))
			Expect(after.Mid()).To(Equal(mid))
			Expect(after.MinDim()).To(Equal(minDim))
		})
	})

	Context("invariants", func() {
		It("hold across a jittery run with input", func() {
			deltas := []float32{1.0 / 240, 1.0 / 60, 0.25, 3}
			for i := 0; i < 400; i++ {
				switch i % 50 {
				case 0:
					w.Press()
				case 5:
					w.Release()
				}
				w.MoveCursor(float32(i%800), float32((i*7)%600))
				c := w.Step(deltas[i%len(deltas)])
				Expect(c.Seq).To(Equal(uint64(i + 1)))
				Expect(w.Validate()).To(Succeed())
			}
		})

		It("treats bad deltas as a zero step", func() {
			before := w.Particles().Items[0]
			c := w.Step(-1)
			Expect(c.Delta).To(BeZero())
			Expect(w.Particles().Items[0].Life).To(Equal(before.Life))
		})
	})

	It("runs under the headless simulator", func() {
		s := sim.New(w)
		cfg := sim.DefaultConfig()
		cfg.Ticks = 120

		res, err := s.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Ticks).To(Equal(120))
		Expect(res.Last.Seq).To(Equal(uint64(120)))
	})

	It("is reproducible for a fixed seed", func() {
		other, err := world.New(world.DefaultParams(), geom.Viewport{Width: 800, Height: 600})
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 50; i++ {
			w.MoveCursor(100, 100)
			other.MoveCursor(100, 100)
			w.Step(delta)
			other.Step(delta)
		}
		Expect(other.Particles().Items).To(Equal(w.Particles().Items))
		Expect(other.Dust().Items).To(Equal(w.Dust().Items))
	})
})
