package config

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is a parsed theme.
type Palette struct {
	Foreground     colorful.Color
	Background     colorful.Color
	Emphasis       colorful.Color
	Heading        colorful.Color
	Handle         colorful.Color
	MenuForeground colorful.Color
	MenuBackground colorful.Color

	// Selection is derived: the background blended towards the emphasis
	// colour.
	Selection colorful.Color
}

// Palette parses the theme colours.
func (t ThemeConfig) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		path string
		hex  string
		dst  *colorful.Color
	}{
		{"theme.foreground", t.Foreground, &p.Foreground},
		{"theme.background", t.Background, &p.Background},
		{"theme.emphasis", t.Emphasis, &p.Emphasis},
		{"theme.heading", t.Heading, &p.Heading},
		{"theme.handle", t.Handle, &p.Handle},
		{"theme.menu_foreground", t.MenuForeground, &p.MenuForeground},
		{"theme.menu_background", t.MenuBackground, &p.MenuBackground},
	}
	for _, f := range fields {
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, invalid(f.path, "%q is not a #rrggbb colour", f.hex)
		}
		*f.dst = c
	}
	p.Selection = p.Background.BlendLab(p.Emphasis, 0.35).Clamped()
	return p, nil
}
