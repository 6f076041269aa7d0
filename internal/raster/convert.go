package raster

import (
	"encoding/binary"
	"fmt"
	"image"

	"github.com/san-kum/circles/internal/display"
	"github.com/san-kum/circles/internal/parallel"
)

// rowBlock is the number of rows one conversion task owns.
const rowBlock = 16

// Convert writes src into dst in dst's pixel format with alpha forced to
// opaque. Rows are converted in parallel.
func Convert(dst display.Frame, src *image.RGBA) error {
	b := src.Bounds()
	if dst.Width != b.Dx() || dst.Height != b.Dy() {
		return fmt.Errorf("%w: frame %dx%d, surface %dx%d",
			display.ErrFrameSize, dst.Width, dst.Height, b.Dx(), b.Dy())
	}
	if dst.Stride < dst.Width*4 || len(dst.Pix) < dst.Stride*(dst.Height-1)+dst.Width*4 {
		return fmt.Errorf("%w: short buffer", display.ErrFrameSize)
	}

	row := rowFunc(dst.Format)
	if row == nil {
		return fmt.Errorf("raster: unsupported pixel format %v", dst.Format)
	}

	w := dst.Width * 4
	parallel.For(dst.Height, rowBlock, func(start, end int) {
		for y := start; y < end; y++ {
			s := src.Pix[y*src.Stride : y*src.Stride+w]
			d := dst.Pix[y*dst.Stride : y*dst.Stride+w]
			row(d, s)
		}
	})
	return nil
}

// Present converts the canvas into a frame.
func (c *Canvas) Present(dst display.Frame) error {
	return Convert(dst, c.img)
}

func rowFunc(f display.PixelFormat) func(d, s []byte) {
	switch f {
	case display.RGBA8:
		return rowRGBA
	case display.BGRA8:
		return rowBGRA
	case display.XRGB32:
		return rowXRGB
	}
	return nil
}

func rowRGBA(d, s []byte) {
	for i := 0; i+3 < len(s); i += 4 {
		d[i], d[i+1], d[i+2], d[i+3] = s[i], s[i+1], s[i+2], 0xff
	}
}

func rowBGRA(d, s []byte) {
	for i := 0; i+3 < len(s); i += 4 {
		d[i], d[i+1], d[i+2], d[i+3] = s[i+2], s[i+1], s[i], 0xff
	}
}

func rowXRGB(d, s []byte) {
	for i := 0; i+3 < len(s); i += 4 {
		v := 0xff<<24 | uint32(s[i])<<16 | uint32(s[i+1])<<8 | uint32(s[i+2])
		binary.LittleEndian.PutUint32(d[i:], v)
	}
}
