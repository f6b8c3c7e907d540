package terminal

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/config"
)

// Theme holds the tcell styles the view draws with.
type Theme struct {
	Text       tcell.Style
	Heading    tcell.Style
	Quote      tcell.Style
	Code       tcell.Style
	Emphasis   tcell.Style
	Selection  tcell.Style
	Handle     tcell.Style
	Menu       tcell.Style
	MenuActive tcell.Style
}

// NewTheme builds a theme from a parsed palette.
func NewTheme(p config.Palette) Theme {
	bg := convertColor(p.Background)
	base := tcell.StyleDefault.Foreground(convertColor(p.Foreground)).Background(bg)
	menu := tcell.StyleDefault.Foreground(convertColor(p.MenuForeground)).Background(convertColor(p.MenuBackground))
	return Theme{
		Text:       base,
		Heading:    base.Foreground(convertColor(p.Heading)).Bold(true),
		Quote:      base.Italic(true).Dim(true),
		Code:       base.Background(convertColor(p.MenuBackground)),
		Emphasis:   base.Foreground(convertColor(p.Emphasis)).Underline(true),
		Selection:  base.Background(convertColor(p.Selection)),
		Handle:     base.Foreground(convertColor(p.Handle)),
		Menu:       menu,
		MenuActive: menu.Reverse(true),
	}
}

// DefaultTheme returns the theme of the default configuration.
func DefaultTheme() Theme {
	p, err := config.Default().Theme.Palette()
	if err != nil {
		return Theme{}
	}
	return NewTheme(p)
}

// blockStyle returns the style for a block's text.
func (t Theme) blockStyle(b block.Block) tcell.Style {
	style := t.Text
	switch b.Tag {
	case block.TagHeading1, block.TagHeading2, block.TagHeading3:
		style = t.Heading
	case block.TagQuote:
		style = t.Quote
	case block.TagCode:
		style = t.Code
	}
	if b.Flag {
		fg, _, _ := t.Emphasis.Decompose()
		style = style.Foreground(fg).Underline(true)
	}
	return style
}

func convertColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
