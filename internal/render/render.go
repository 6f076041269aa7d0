// Package render draws a world frame: background, dust, particles, scene
// nodes, then the cursor glyph.
package render

import (
	"image/color"

	"github.com/chewxy/math32"

	"github.com/san-kum/circles/internal/geom"
	"github.com/san-kum/circles/internal/scene"
	"github.com/san-kum/circles/internal/world"
)

const (
	// NodeRadius and CursorRadius are fractions of the smaller viewport
	// dimension.
	NodeRadius   = 0.05
	CursorRadius = 0.05
	// ClickShrink is how many pixels a full click takes off the cursor.
	ClickShrink = 25
)

// Target is anything circles can be drawn onto. Draw calls report whether
// the shape was drawn or skipped.
type Target interface {
	Clear(col color.NRGBA)
	FillCircle(pos geom.Vec2, radius float32, col color.NRGBA) bool
	StrokeCircle(pos geom.Vec2, radius float32, col color.NRGBA) bool
}

type Palette struct {
	Background color.NRGBA
	Highlight  color.NRGBA
	Node       color.NRGBA
	Cursor     color.NRGBA
}

func DefaultPalette() Palette {
	hl := color.NRGBA{R: 179, G: 217, B: 230, A: 255}
	return Palette{
		Background: color.NRGBA{R: 18, G: 18, B: 26, A: 255},
		Highlight:  hl,
		Node:       withAlpha(hl, 64),
		Cursor:     withAlpha(hl, 204),
	}
}

// Stats counts draw calls for one frame.
type Stats struct {
	Drawn   int
	Skipped int
}

func (s *Stats) count(drawn bool) {
	if drawn {
		s.Drawn++
	} else {
		s.Skipped++
	}
}

// CursorGlyph is the cursor ring radius, never below one pixel.
func CursorGlyph(vp geom.Viewport, click float32) float32 {
	return math32.Max(vp.MinDim()*CursorRadius-click*ClickShrink, 1)
}

// Frame draws w onto t in back-to-front order.
func Frame(t Target, w *world.World, p Palette) Stats {
	var st Stats
	c := w.Context()
	vp := c.Viewport

	t.Clear(p.Background)

	for i := range w.Dust().Items {
		g := &w.Dust().Items[i]
		st.count(t.FillCircle(c.ToScreen(g.Position), g.Radius(vp), withAlpha(p.Highlight, g.Alpha())))
	}

	for i := range w.Particles().Items {
		pt := &w.Particles().Items[i]
		st.count(t.StrokeCircle(c.ToScreen(pt.Position), pt.Radius(vp), withAlpha(p.Highlight, pt.Alpha())))
	}

	nr := vp.MinDim() * NodeRadius
	for _, e := range w.Entities() {
		w.Graph().Visit(e, func(_ scene.NodeID, n *scene.Node) {
			st.count(t.StrokeCircle(c.ToScreen(n.Position), nr, p.Node))
		})
	}

	st.count(t.StrokeCircle(c.Cursor, CursorGlyph(vp, c.Click), p.Cursor))
	return st
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
