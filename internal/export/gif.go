package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/circles/internal/display"
	"github.com/san-kum/circles/internal/render"
)

// paletteSize leaves room in the 256 entry GIF palette for the cursor tint.
const paletteSize = 240

// GIFRecorder collects every Nth presented frame into an animated GIF.
type GIFRecorder struct {
	palette color.Palette
	every   int
	delay   int
	anim    gif.GIF
}

// NewGIFRecorder keeps one frame out of every and sets the frame delay from
// the tick delta.
func NewGIFRecorder(p render.Palette, every int, delta float32) *GIFRecorder {
	if every < 1 {
		every = 1
	}
	delay := int(float32(every)*delta*100 + 0.5)
	if delay < 2 {
		delay = 2
	}
	return &GIFRecorder{
		palette: Gradient(p),
		every:   every,
		delay:   delay,
	}
}

// Gradient spans the background to the highlight in Lab space, then the
// highlight to the cursor color.
func Gradient(p render.Palette) color.Palette {
	bg := toColorful(p.Background)
	hl := toColorful(p.Highlight)
	cur := toColorful(p.Cursor)

	pal := make(color.Palette, 0, 256)
	for i := 0; i < paletteSize; i++ {
		pal = append(pal, bg.BlendLab(hl, float64(i)/float64(paletteSize-1)).Clamped())
	}
	for i := 1; i <= 256-paletteSize; i++ {
		pal = append(pal, hl.BlendLab(cur, float64(i)/float64(256-paletteSize)).Clamped())
	}
	return pal
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Present matches headless.PresentFunc.
func (r *GIFRecorder) Present(tick int, f display.Frame) error {
	if tick%r.every != 0 {
		return nil
	}
	src, err := FrameImage(f)
	if err != nil {
		return err
	}
	dst := image.NewPaletted(src.Bounds(), r.palette)
	draw.Draw(dst, dst.Rect, src, image.Point{}, draw.Src)
	r.anim.Image = append(r.anim.Image, dst)
	r.anim.Delay = append(r.anim.Delay, r.delay)
	return nil
}

func (r *GIFRecorder) Len() int { return len(r.anim.Image) }

func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.anim.Image) == 0 {
		return fmt.Errorf("export: no frames recorded")
	}
	return gif.EncodeAll(w, &r.anim)
}

func (r *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FrameImage wraps an RGBA8 frame without copying.
func FrameImage(f display.Frame) (*image.RGBA, error) {
	if f.Format != display.RGBA8 {
		return nil, fmt.Errorf("export: frame format %v, want %v", f.Format, display.RGBA8)
	}
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: f.Stride,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}, nil
}
