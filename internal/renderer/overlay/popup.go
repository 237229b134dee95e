package overlay

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/quickdoc/internal/renderer/core"
)

// Popup is a framed box of text: a title line followed by body lines.
type Popup struct {
	*BaseOverlay

	config Config
	lines  []popupLine
	width  int
}

type popupLine struct {
	text  string
	title bool
}

// NewPopup builds a popup with a fresh ID. Body text is wrapped to fit
// config.MaxWidth. The popup has no bounds until placed.
func NewPopup(kind Kind, title, body string, config Config) *Popup {
	priority := PriorityNormal
	switch kind {
	case KindDoc:
		priority = PriorityHigh
	case KindMessage:
		priority = PriorityLow
	}

	inner := max(config.MaxWidth-4, 1)
	var lines []popupLine
	for _, l := range wrap(title, inner) {
		lines = append(lines, popupLine{text: l, title: true})
	}
	for _, l := range wrap(body, inner) {
		lines = append(lines, popupLine{text: l})
	}
	if config.MaxHeight > 2 && len(lines) > config.MaxHeight-2 {
		lines = lines[:config.MaxHeight-2]
		lines[len(lines)-1].text = truncate(lines[len(lines)-1].text+" …", inner)
	}

	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l.text))
	}

	return &Popup{
		BaseOverlay: NewBaseOverlay(uuid.NewString(), kind, priority, core.ScreenRect{}),
		config:      config,
		lines:       lines,
		width:       width + 4,
	}
}

// Size returns the popup's natural size including the frame.
func (p *Popup) Size() (width, height int) {
	return p.width, len(p.lines) + 2
}

// Lines returns the wrapped text lines, title first.
func (p *Popup) Lines() []string {
	out := make([]string, len(p.lines))
	for i, l := range p.lines {
		out[i] = l.text
	}
	return out
}

// PlaceAt positions the popup next to anchor within screen.
func (p *Popup) PlaceAt(anchor core.ScreenPos, screen core.ScreenRect) core.ScreenRect {
	w, h := p.Size()
	p.SetBounds(Place(anchor, w, h, screen))
	return p.Bounds()
}

// CellAt implements Overlay.
func (p *Popup) CellAt(pos core.ScreenPos) (core.Cell, bool) {
	b := p.Bounds()
	if !b.Contains(pos) {
		return core.Cell{}, false
	}
	row, col := pos.Row-b.Top, pos.Col-b.Left
	last, right := b.Height()-1, b.Width()-1

	border := func(r rune) (core.Cell, bool) {
		return core.NewStyledCell(r, p.config.BorderStyle), true
	}
	switch {
	case row == 0 && col == 0:
		return border('┌')
	case row == 0 && col == right:
		return border('┐')
	case row == last && col == 0:
		return border('└')
	case row == last && col == right:
		return border('┘')
	case row == 0 || row == last:
		return border('─')
	case col == 0 || col == right:
		return border('│')
	}

	style := p.config.BodyStyle
	ch := ' '
	if idx := row - 1; idx < len(p.lines) {
		line := p.lines[idx]
		if line.title {
			style = p.config.TitleStyle
		}
		if i := col - 2; i >= 0 {
			runes := []rune(line.text)
			if i < len(runes) {
				ch = runes[i]
			}
		}
	}
	return core.NewStyledCell(ch, style), true
}

// Place returns a w by h rectangle below anchor's row, flipped above when
// it would run off the bottom of screen, shifted left to stay on screen.
func Place(anchor core.ScreenPos, w, h int, screen core.ScreenRect) core.ScreenRect {
	w = min(w, screen.Width())
	h = min(h, screen.Height())

	top := anchor.Row + 1
	if top+h > screen.Bottom {
		top = anchor.Row - h
	}
	top = max(min(top, screen.Bottom-h), screen.Top)

	left := max(min(anchor.Col, screen.Right-w), screen.Left)
	return core.RectFromSize(top, left, h, w)
}

// wrap breaks text into lines of at most width runes on word boundaries.
// Explicit newlines are kept and blank lines survive.
func wrap(text string, width int) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, w := range words {
			for utf8.RuneCountInString(w) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				r := []rune(w)
				out = append(out, string(r[:width]))
				w = string(r[width:])
			}
			switch {
			case line == "":
				line = w
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) <= width:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
