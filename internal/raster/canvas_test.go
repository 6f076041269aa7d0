package raster

import (
	"errors"
	"image/color"
	"testing"

	"github.com/san-kum/circles/internal/display"
	"github.com/san-kum/circles/internal/geom"
)

var (
	vp  = geom.Viewport{Width: 100, Height: 80}
	bg  = color.NRGBA{R: 18, G: 18, B: 26, A: 255}
	red = color.NRGBA{R: 255, A: 255}
)

func TestFits_Corners(t *testing.T) {
	const r = 5
	corners := []geom.Vec2{geom.V(0, 0), geom.V(100, 0), geom.V(0, 80), geom.V(100, 80)}

	for _, c := range corners {
		if !Fits(c, r, vp) {
			t.Errorf("circle at corner %v should fit", c)
		}

		out := c.Sub(vp.Mid())
		out = geom.V(sign(out.X), sign(out.Y)).Scale(r)
		if Fits(c.Add(out), r, vp) {
			t.Errorf("circle at %v touching corner %v from outside should not fit", c.Add(out), c)
		}
		if Fits(c.Add(out.Scale(2)), r, vp) {
			t.Errorf("circle at %v is fully outside", c.Add(out.Scale(2)))
		}

		in := out.Scale(-1)
		if !Fits(c.Add(in), r, vp) {
			t.Errorf("circle at %v inside corner %v should fit", c.Add(in), c)
		}
		if !Fits(c.Add(out.Scale(0.9)), r, vp) {
			t.Errorf("circle at %v overlapping corner %v should fit", c.Add(out.Scale(0.9)), c)
		}
	}
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

func TestFits_StableAcrossResize(t *testing.T) {
	before := Fits(geom.V(-3, 40), 4, vp)
	c := New(vp)
	c.Resize(geom.Viewport{Width: 1024, Height: 768})
	c.Resize(vp)
	if after := Fits(geom.V(-3, 40), 4, c.Viewport()); after != before {
		t.Errorf("bounds test changed after resize round trip: %v -> %v", before, after)
	}
}

func TestClear(t *testing.T) {
	c := New(vp)
	c.Clear(bg)
	img := c.Image()
	for _, p := range [][2]int{{0, 0}, {99, 79}, {50, 40}, {13, 77}} {
		got := img.RGBAAt(p[0], p[1])
		if got != (color.RGBA{R: 18, G: 18, B: 26, A: 255}) {
			t.Fatalf("pixel %v = %v", p, got)
		}
	}
}

func TestFillCircle(t *testing.T) {
	c := New(vp)
	c.Clear(bg)

	if !c.FillCircle(geom.V(50, 40), 10, red) {
		t.Fatal("on-screen circle was skipped")
	}
	center := c.Image().RGBAAt(50, 40)
	if center.R < 250 || center.G > 5 {
		t.Errorf("center pixel = %v, want red", center)
	}
	if outside := c.Image().RGBAAt(50, 60); outside.R != 18 {
		t.Errorf("pixel outside the disk changed: %v", outside)
	}
}

func TestStrokeCircle(t *testing.T) {
	c := New(vp)
	c.Clear(bg)

	if !c.StrokeCircle(geom.V(50, 40), 20, red) {
		t.Fatal("on-screen ring was skipped")
	}
	if center := c.Image().RGBAAt(50, 40); center.R != 18 {
		t.Errorf("ring filled its center: %v", center)
	}
	if edge := c.Image().RGBAAt(69, 40); edge.R <= 18 {
		t.Errorf("ring edge not drawn: %v", edge)
	}
}

func TestSkippedCircles(t *testing.T) {
	c := New(vp)
	c.Clear(bg)
	before := append([]byte(nil), c.Image().Pix...)

	tests := []struct {
		name   string
		pos    geom.Vec2
		radius float32
	}{
		{"zero radius", geom.V(50, 40), 0},
		{"negative radius", geom.V(50, 40), -3},
		{"far left", geom.V(-500, 40), 10},
		{"far below", geom.V(50, 900), 10},
		{"nan", geom.V(float32NaN(), 40), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c.FillCircle(tt.pos, tt.radius, red) {
				t.Error("FillCircle drew")
			}
			if c.StrokeCircle(tt.pos, tt.radius, red) {
				t.Error("StrokeCircle drew")
			}
		})
	}

	for i := range before {
		if before[i] != c.Image().Pix[i] {
			t.Fatalf("skipped draws modified pixel byte %d", i)
		}
	}
}

func float32NaN() float32 {
	var zero float32
	return zero / zero
}

func TestConvert(t *testing.T) {
	c := New(geom.Viewport{Width: 3, Height: 2})
	c.Clear(color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	tests := []struct {
		format display.PixelFormat
		want   [4]byte
	}{
		{display.RGBA8, [4]byte{10, 20, 30, 255}},
		{display.BGRA8, [4]byte{30, 20, 10, 255}},
		{display.XRGB32, [4]byte{30, 20, 10, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			f := display.NewFrame(3, 2, tt.format)
			if err := c.Present(f); err != nil {
				t.Fatal(err)
			}
			for i := 0; i < len(f.Pix); i += 4 {
				got := [4]byte{f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3]}
				if got != tt.want {
					t.Fatalf("pixel %d = %v, want %v", i/4, got, tt.want)
				}
			}
		})
	}
}

func TestConvert_PinsAlpha(t *testing.T) {
	c := New(geom.Viewport{Width: 2, Height: 2})
	f := display.NewFrame(2, 2, display.RGBA8)
	if err := c.Present(f); err != nil {
		t.Fatal(err)
	}
	for i := 3; i < len(f.Pix); i += 4 {
		if f.Pix[i] != 255 {
			t.Fatalf("alpha at %d = %d", i, f.Pix[i])
		}
	}
}

func TestConvert_Stride(t *testing.T) {
	c := New(geom.Viewport{Width: 2, Height: 3})
	c.Clear(color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	f := display.Frame{Pix: make([]byte, 12*3), Width: 2, Height: 3, Stride: 12, Format: display.RGBA8}
	if err := c.Present(f); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 3; y++ {
		if pad := f.Pix[y*12+8]; pad != 0 {
			t.Errorf("row %d padding overwritten: %d", y, pad)
		}
		if f.Pix[y*12] != 1 {
			t.Errorf("row %d not converted", y)
		}
	}
}

func TestConvert_SizeMismatch(t *testing.T) {
	c := New(vp)
	err := c.Present(display.NewFrame(10, 10, display.RGBA8))
	if !errors.Is(err, display.ErrFrameSize) {
		t.Errorf("expected ErrFrameSize, got %v", err)
	}
}

func TestResizeIgnoresEmpty(t *testing.T) {
	c := New(vp)
	img := c.Image()
	c.Resize(geom.Viewport{Width: 0, Height: 10})
	c.Resize(vp)
	if c.Image() != img || c.Viewport() != vp {
		t.Error("surface reallocated for an empty or unchanged viewport")
	}
}
