// Package raster draws antialiased circles into an off-screen RGBA surface
// and converts the result into a backend's pixel layout.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"
	"golang.org/x/image/vector"

	"github.com/san-kum/circles/internal/geom"
)

// kappa places cubic Bézier control points so four arcs approximate a circle.
const kappa = 0.5522847498

// DefaultStrokeWidth is the ring thickness in pixels.
const DefaultStrokeWidth = 1.5

// Canvas is the drawing surface. Drawing is single threaded; later shapes
// are composited over earlier ones.
type Canvas struct {
	img         *image.RGBA
	ras         *vector.Rasterizer
	vp          geom.Viewport
	StrokeWidth float32
}

func New(vp geom.Viewport) *Canvas {
	c := &Canvas{
		ras:         &vector.Rasterizer{},
		StrokeWidth: DefaultStrokeWidth,
	}
	c.Resize(vp)
	return c
}

// Resize reallocates the surface when the size changes. Empty viewports are
// ignored.
func (c *Canvas) Resize(vp geom.Viewport) {
	if vp.Empty() || vp == c.vp {
		return
	}
	c.vp = vp
	c.img = image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
}

func (c *Canvas) Viewport() geom.Viewport { return c.vp }

func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear fills the whole surface with an opaque color.
func (c *Canvas) Clear(col color.NRGBA) {
	pix := c.img.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = col.R, col.G, col.B, 255
	for n := 4; n < len(pix); n *= 2 {
		copy(pix[n:], pix[:n])
	}
}

// Fits reports whether a circle's bounding box overlaps the viewport:
// |mid − pos| < mid + radius on both axes.
func Fits(pos geom.Vec2, radius float32, vp geom.Viewport) bool {
	mid := vp.Mid()
	d := mid.Sub(pos).Abs()
	return d.Less(mid.Add(geom.Splat(radius)))
}

// FillCircle draws a solid disk. It reports false when nothing was drawn
// because the circle is degenerate or off screen.
func (c *Canvas) FillCircle(pos geom.Vec2, radius float32, col color.NRGBA) bool {
	if !drawable(pos, radius) || !Fits(pos, radius, c.vp) {
		return false
	}
	clip, ok := c.clip(pos, radius)
	if !ok {
		return false
	}
	o := origin(pos, clip)
	c.ras.Reset(clip.Dx(), clip.Dy())
	circle(c.ras, o, radius, 1)
	c.draw(clip, col)
	return true
}

// StrokeCircle draws a ring of StrokeWidth centered on radius. It reports
// false when nothing was drawn.
func (c *Canvas) StrokeCircle(pos geom.Vec2, radius float32, col color.NRGBA) bool {
	if !drawable(pos, radius) {
		return false
	}
	half := c.StrokeWidth / 2
	outer := radius + half
	if !Fits(pos, outer, c.vp) {
		return false
	}
	clip, ok := c.clip(pos, outer)
	if !ok {
		return false
	}
	o := origin(pos, clip)
	c.ras.Reset(clip.Dx(), clip.Dy())
	circle(c.ras, o, outer, 1)
	if inner := radius - half; inner > 0 {
		// Opposite winding cancels coverage inside the inner edge.
		circle(c.ras, o, inner, -1)
	}
	c.draw(clip, col)
	return true
}

func (c *Canvas) draw(clip image.Rectangle, col color.NRGBA) {
	c.ras.DrawOp = draw.Over
	c.ras.Draw(c.img, clip, image.NewUniform(col), image.Point{})
}

// clip is the pixel bounding box of the circle intersected with the surface.
func (c *Canvas) clip(pos geom.Vec2, radius float32) (image.Rectangle, bool) {
	r := image.Rect(
		int(math32.Floor(pos.X-radius)),
		int(math32.Floor(pos.Y-radius)),
		int(math32.Ceil(pos.X+radius)),
		int(math32.Ceil(pos.Y+radius)),
	).Intersect(c.img.Bounds())
	return r, !r.Empty()
}

func origin(pos geom.Vec2, clip image.Rectangle) geom.Vec2 {
	return pos.Sub(geom.V(float32(clip.Min.X), float32(clip.Min.Y)))
}

func drawable(pos geom.Vec2, radius float32) bool {
	return radius > 0 && !math32.IsInf(radius, 1) && pos.IsValid()
}

// circle appends a closed four-arc path. dir 1 winds one way, -1 the other.
func circle(z *vector.Rasterizer, center geom.Vec2, r, dir float32) {
	k := r * kappa
	cx, cy := center.X, center.Y
	ry, ky := r*dir, k*dir

	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+ky, cx+k, cy+ry, cx, cy+ry)
	z.CubeTo(cx-k, cy+ry, cx-r, cy+ky, cx-r, cy)
	z.CubeTo(cx-r, cy-ky, cx-k, cy-ry, cx, cy-ry)
	z.CubeTo(cx+k, cy-ry, cx+r, cy-ky, cx+r, cy)
	z.ClosePath()
}
