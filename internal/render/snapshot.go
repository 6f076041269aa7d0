package render

import (
	"image/color"

	"github.com/san-kum/circles/internal/geom"
	"github.com/san-kum/circles/internal/raster"
)

// Circle is one recorded draw call in screen space.
type Circle struct {
	Position geom.Vec2
	Radius   float32
	Color    color.NRGBA
	Filled   bool
}

// Snapshot records draw calls instead of rasterizing them. It applies the
// same skip rules as raster.Canvas.
type Snapshot struct {
	Viewport   geom.Viewport
	Background color.NRGBA
	Circles    []Circle
}

func NewSnapshot(vp geom.Viewport) *Snapshot {
	return &Snapshot{Viewport: vp}
}

func (s *Snapshot) Clear(col color.NRGBA) {
	s.Background = col
	s.Circles = s.Circles[:0]
}

func (s *Snapshot) FillCircle(pos geom.Vec2, radius float32, col color.NRGBA) bool {
	return s.add(Circle{Position: pos, Radius: radius, Color: col, Filled: true})
}

func (s *Snapshot) StrokeCircle(pos geom.Vec2, radius float32, col color.NRGBA) bool {
	return s.add(Circle{Position: pos, Radius: radius, Color: col})
}

func (s *Snapshot) add(c Circle) bool {
	if !(c.Radius > 0) || !c.Position.IsValid() || !raster.Fits(c.Position, c.Radius, s.Viewport) {
		return false
	}
	s.Circles = append(s.Circles, c)
	return true
}
