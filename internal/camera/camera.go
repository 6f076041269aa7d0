// Package camera keeps the cursor and the character near the middle of the
// screen by sliding a world-to-screen offset.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/san-kum/circles/internal/geom"
)

// Camera holds the world offset. screen = world + Offset.
type Camera struct {
	Offset geom.Vec2
}

// Intensity is the cursor's distance from the viewport center divided by
// half the diagonal: 0 at the center, 1 in the corners.
func Intensity(cursor geom.Vec2, vp geom.Viewport) float32 {
	half := vp.Diagonal() / 2
	if half <= 0 {
		return 0
	}
	return math32.Min(cursor.Distance(vp.Mid())/half, 1)
}

// Target is the offset at which the midpoint of the cursor and the on-screen
// character sits at the viewport center. character is in world space.
func Target(offset, cursor, character geom.Vec2, vp geom.Viewport) geom.Vec2 {
	balance := cursor.Add(character).Add(offset).Scale(0.5)
	return offset.Add(vp.Mid().Sub(balance))
}

// Update moves the offset toward Target by min(intensity*delta, 1) and
// returns the new offset.
func (c *Camera) Update(cursor, character geom.Vec2, vp geom.Viewport, delta float32) geom.Vec2 {
	if vp.Empty() || delta <= 0 {
		return c.Offset
	}
	t := math32.Min(Intensity(cursor, vp)*delta, 1)
	if t == 0 {
		return c.Offset
	}
	c.Offset = c.Offset.Lerp(Target(c.Offset, cursor, character, vp), t)
	return c.Offset
}
