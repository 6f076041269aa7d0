package config

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/circles/internal/render"
)

// Theme is a named palette in hex notation.
type Theme struct {
	Name       string
	Background string
	Highlight  string
	// NodeAlpha and CursorAlpha are opacities in [0,1] applied to the
	// highlight for scene nodes and the cursor ring.
	NodeAlpha   float64
	CursorAlpha float64
	// CursorTint lightens the cursor toward white, in [0,1].
	CursorTint float64
}

var Themes = []Theme{
	{Name: "night", Background: "#12121a", Highlight: "#b3d9e6", NodeAlpha: 0.25, CursorAlpha: 0.8},
	{Name: "ember", Background: "#1a0f0a", Highlight: "#ffb070", NodeAlpha: 0.3, CursorAlpha: 0.85, CursorTint: 0.2},
	{Name: "mono", Background: "#0a0a0a", Highlight: "#b4b4b4", NodeAlpha: 0.2, CursorAlpha: 0.9, CursorTint: 0.4},
	{Name: "ocean", Background: "#001a33", Highlight: "#00a8cc", NodeAlpha: 0.3, CursorAlpha: 0.8, CursorTint: 0.3},
}

func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Themes[0], false
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Palette parses the theme colors.
func (t Theme) Palette() (render.Palette, error) {
	bg, err := colorful.Hex(t.Background)
	if err != nil {
		return render.Palette{}, fmt.Errorf("%w: theme %s background: %v", ErrInvalidConfig, t.Name, err)
	}
	hl, err := colorful.Hex(t.Highlight)
	if err != nil {
		return render.Palette{}, fmt.Errorf("%w: theme %s highlight: %v", ErrInvalidConfig, t.Name, err)
	}
	cursor := hl.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t.CursorTint).Clamped()

	return render.Palette{
		Background: nrgba(bg, 1),
		Highlight:  nrgba(hl, 1),
		Node:       nrgba(hl, t.NodeAlpha),
		Cursor:     nrgba(cursor, t.CursorAlpha),
	}, nil
}

// Palette resolves the configured theme.
func (c *Config) Palette() (render.Palette, error) {
	t, ok := GetTheme(c.Theme)
	if !ok {
		return render.Palette{}, fmt.Errorf("%w: unknown theme %q", ErrInvalidConfig, c.Theme)
	}
	return t.Palette()
}

func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}
