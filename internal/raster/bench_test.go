package raster

import (
	"image/color"
	"testing"

	"github.com/san-kum/circles/internal/display"
	"github.com/san-kum/circles/internal/geom"
)

func BenchmarkStrokeCircle(b *testing.B) {
	c := New(geom.Viewport{Width: 1280, Height: 720})
	col := color.NRGBA{R: 179, G: 217, B: 230, A: 200}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.StrokeCircle(geom.Vec2{X: 640, Y: 360}, 12, col)
	}
}

func BenchmarkConvertBGRA(b *testing.B) {
	c := New(geom.Viewport{Width: 1280, Height: 720})
	dst := display.NewFrame(1280, 720, display.BGRA8)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Present(dst); err != nil {
			b.Fatal(err)
		}
	}
}
