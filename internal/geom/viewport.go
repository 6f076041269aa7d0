package geom

import "github.com/chewxy/math32"

// Viewport is the drawable area in pixels. Every derived quantity is
// recomputed from Width and Height so a resize round trip never drifts.
type Viewport struct {
	Width, Height int
}

func (v Viewport) Empty() bool { return v.Width <= 0 || v.Height <= 0 }

func (v Viewport) Size() Vec2 { return Vec2{float32(v.Width), float32(v.Height)} }

func (v Viewport) Mid() Vec2 { return v.Size().Scale(0.5) }

func (v Viewport) MinDim() float32 { return math32.Min(float32(v.Width), float32(v.Height)) }

func (v Viewport) Diagonal() float32 { return v.Size().Length() }
