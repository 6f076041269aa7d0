package terminal

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/circles/internal/display"
)

// Braille cells are 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// threshold is the per-channel distance from the background at which a dot
// lights up.
const threshold = 24

// Canvas is a grid of braille cells, each with the mean color of its lit
// dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]color.RGBA, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.RGBA{}
		}
	}
}

// Set lights the dot at (x, y) in dot coordinates. The canvas is
// Width*2 x Height*4 dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// Load rebuilds the canvas from an RGBA8 frame sized Width*2 x Height*4.
func (c *Canvas) Load(f display.Frame, bg color.NRGBA) error {
	if f.Format != display.RGBA8 {
		return fmt.Errorf("terminal: unsupported format %v", f.Format)
	}
	if f.Width != c.Width*2 || f.Height != c.Height*4 {
		return fmt.Errorf("%w: frame %dx%d for %dx%d cells", display.ErrFrameSize, f.Width, f.Height, c.Width, c.Height)
	}

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			var r, g, b, n int
			cell := rune(blank)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					i := (row*4+dy)*f.Stride + (col*2+dx)*4
					p := f.Pix[i : i+3 : i+3]
					if !lit(p, bg) {
						continue
					}
					cell |= pixelMap[dy][dx]
					r, g, b, n = r+int(p[0]), g+int(p[1]), b+int(p[2]), n+1
				}
			}
			c.Grid[row][col] = cell
			if n > 0 {
				c.Colors[row][col] = color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 255}
			} else {
				c.Colors[row][col] = color.RGBA{}
			}
		}
	}
	return nil
}

func lit(p []byte, bg color.NRGBA) bool {
	return absDiff(p[0], bg.R) > threshold || absDiff(p[1], bg.G) > threshold || absDiff(p[2], bg.B) > threshold
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// String renders the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colors each run of cells sharing a color with one lipgloss style.
func (c *Canvas) Render(bg color.NRGBA) string {
	base := lipgloss.NewStyle().Background(hex(color.RGBA{R: bg.R, G: bg.G, B: bg.B}))
	var b strings.Builder
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.Colors[row][col] == c.Colors[row][start] {
				continue
			}
			run := string(c.Grid[row][start:col])
			if fg := c.Colors[row][start]; fg.A != 0 {
				b.WriteString(base.Foreground(hex(fg)).Render(run))
			} else {
				b.WriteString(base.Render(run))
			}
			start = col
		}
		if row < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
