package geom

import "github.com/chewxy/math32"

type Vec2 struct {
	X, Y float32
}

func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func Splat(v float32) Vec2 { return Vec2{X: v, Y: v} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{v.X / o.X, v.Y / o.Y} }

func (v Vec2) Scale(f float32) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Length() float32 { return math32.Hypot(v.X, v.Y) }

func (v Vec2) Distance(o Vec2) float32 { return v.Sub(o).Length() }

// Abs returns the element-wise absolute value.
func (v Vec2) Abs() Vec2 { return Vec2{math32.Abs(v.X), math32.Abs(v.Y)} }

// Clamp limits each component to [lo, hi].
func (v Vec2) Clamp(lo, hi float32) Vec2 {
	return Vec2{clamp(v.X, lo, hi), clamp(v.Y, lo, hi)}
}

// Lerp moves v toward o by t. t is not clamped.
func (v Vec2) Lerp(o Vec2, t float32) Vec2 {
	return Vec2{Lerp(v.X, o.X, t), Lerp(v.Y, o.Y, t)}
}

func (v Vec2) Less(o Vec2) bool { return v.X < o.X && v.Y < o.Y }

func (v Vec2) IsValid() bool {
	return !math32.IsNaN(v.X) && !math32.IsNaN(v.Y) && !math32.IsInf(v.X, 0) && !math32.IsInf(v.Y, 0)
}

func Lerp(a, b, t float32) float32 { return a + (b-a)*t }

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}
