// Package highlight colors document text by element kind.
package highlight

import (
	"sort"
	"strings"

	"github.com/dshills/quickdoc/internal/renderer/core"
	"github.com/dshills/quickdoc/internal/symbols"
)

// Theme defines colors and styles for the viewer.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Text is the style for elements without a kind entry.
	Text core.Style

	// Gutter styles line numbers.
	Gutter core.Style

	// Status styles the status line of the focused view; StatusInactive
	// the others.
	Status         core.Style
	StatusInactive core.Style

	// Kinds maps element kinds to their styles.
	Kinds map[string]core.Style
}

// StyleFor returns the style for an element kind.
func (t *Theme) StyleFor(kind string) core.Style {
	if style, ok := t.Kinds[kind]; ok {
		return style
	}
	return t.Text
}

// DefaultTheme returns a sensible default dark theme.
func DefaultTheme() *Theme {
	comment := core.ColorFromRGB(106, 153, 85)   // Green
	keyword := core.ColorFromRGB(86, 156, 214)   // Blue
	literal := core.ColorFromRGB(206, 145, 120)  // Orange
	ident := core.ColorFromRGB(156, 220, 254)    // Light blue
	external := core.ColorFromRGB(78, 201, 176)  // Teal
	operator := core.ColorFromRGB(212, 212, 212) // White

	return &Theme{
		Name:           "default",
		Text:           fg(operator),
		Gutter:         fg(core.ColorFromRGB(133, 133, 133)),
		Status:         fg(core.ColorFromRGB(255, 255, 255)).WithBackground(core.ColorFromRGB(0, 122, 204)),
		StatusInactive: fg(operator).WithBackground(core.ColorFromRGB(60, 60, 60)),
		Kinds: map[string]core.Style{
			symbols.KindComment:  fg(comment).WithAttributes(core.AttrItalic),
			symbols.KindKeyword:  fg(keyword),
			symbols.KindLiteral:  fg(literal),
			symbols.KindIdent:    fg(ident),
			symbols.KindExternal: fg(external),
			symbols.KindOperator: fg(operator),
			symbols.KindPunct:    fg(operator),
		},
	}
}

// MonokaiTheme returns a Monokai-inspired theme.
func MonokaiTheme() *Theme {
	pink := core.ColorFromRGB(249, 38, 114)
	green := core.ColorFromRGB(166, 226, 46)
	purple := core.ColorFromRGB(174, 129, 255)
	comment := core.ColorFromRGB(117, 113, 94)
	white := core.ColorFromRGB(248, 248, 242)

	return &Theme{
		Name:           "monokai",
		Text:           fg(white),
		Gutter:         fg(comment),
		Status:         fg(core.ColorFromRGB(39, 40, 34)).WithBackground(green),
		StatusInactive: fg(white).WithBackground(core.ColorFromRGB(62, 61, 50)),
		Kinds: map[string]core.Style{
			symbols.KindComment:  fg(comment),
			symbols.KindKeyword:  fg(pink),
			symbols.KindLiteral:  fg(purple),
			symbols.KindIdent:    fg(white),
			symbols.KindExternal: fg(green),
			symbols.KindOperator: fg(pink),
			symbols.KindPunct:    fg(white),
		},
	}
}

// MonochromeTheme uses only the terminal's default colors.
func MonochromeTheme() *Theme {
	base := core.DefaultStyle()
	return &Theme{
		Name:           "mono",
		Text:           base,
		Gutter:         base.WithAttributes(core.AttrDim),
		Status:         base.WithAttributes(core.AttrReverse),
		StatusInactive: base.WithAttributes(core.AttrDim | core.AttrReverse),
		Kinds: map[string]core.Style{
			symbols.KindComment: base.WithAttributes(core.AttrDim),
			symbols.KindKeyword: base.WithAttributes(core.AttrBold),
		},
	}
}

var themes = map[string]func() *Theme{
	"default": DefaultTheme,
	"monokai": MonokaiTheme,
	"mono":    MonochromeTheme,
}

// ByName returns the named theme. Lookup ignores case.
func ByName(name string) (*Theme, bool) {
	ctor, ok := themes[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Names returns the available theme names, sorted.
func Names() []string {
	out := make([]string, 0, len(themes))
	for name := range themes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func fg(c core.Color) core.Style {
	return core.DefaultStyle().WithForeground(c)
}
