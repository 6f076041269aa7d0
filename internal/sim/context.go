package sim

import "github.com/san-kum/circles/internal/geom"

// Context is the per-tick frame state. It is built once on the event-loop
// goroutine after the single-writer updates (click, character, camera) and
// then handed by value to every parallel consumer, which treat it as
// read-only.
type Context struct {
	Seq       uint64
	Delta     float32
	Click     float32
	Cursor    geom.Vec2 // screen space
	Offset    geom.Vec2
	Character geom.Vec2 // world space
	Viewport  geom.Viewport
}

// WorldCursor is the cursor translated into world space.
func (c Context) WorldCursor() geom.Vec2 { return c.Cursor.Sub(c.Offset) }

func (c Context) Size() geom.Vec2 { return c.Viewport.Size() }

// ToScreen maps a world position onto the screen.
func (c Context) ToScreen(p geom.Vec2) geom.Vec2 { return p.Add(c.Offset) }
