package export

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/san-kum/circles/internal/render"
)

// SnapshotToSVG renders recorded circles as SVG, in draw order.
func SnapshotToSVG(s *render.Snapshot, strokeWidth float32) string {
	if s == nil {
		return ""
	}
	w, h := s.Viewport.Width, s.Viewport.Height

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, hex(s.Background)))

	for _, c := range s.Circles {
		if c.Color.A == 0 {
			continue
		}
		opacity := float64(c.Color.A) / 255
		if c.Filled {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, c.Position.X, c.Position.Y, c.Radius, hex(c.Color), opacity))
			continue
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="none" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>
`, c.Position.X, c.Position.Y, c.Radius, hex(c.Color), opacity, strokeWidth))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func SaveSVG(path string, s *render.Snapshot, strokeWidth float32) error {
	return os.WriteFile(path, []byte(SnapshotToSVG(s, strokeWidth)), 0644)
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
