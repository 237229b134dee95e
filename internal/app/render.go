package app

import (
	"unicode/utf8"

	"github.com/dshills/quickdoc/internal/input/mouse"
	"github.com/dshills/quickdoc/internal/renderer/core"
	"github.com/dshills/quickdoc/internal/renderer/gutter"
	"github.com/dshills/quickdoc/internal/viewport"
)

// Render draws every view and the popups above them, then flushes.
func (a *Application) Render() {
	a.backend.Clear()
	for _, v := range a.registry.Views() {
		a.renderView(v)
	}
	a.overlays.Composite(a.backend)
	a.backend.Show()
}

func (a *Application) renderView(v *viewport.View) {
	layout := v.Layout()
	doc := v.Document()
	s := sessionOf(v)
	top := v.TopLine()

	if !layout.Gutter.IsEmpty() {
		w := layout.Gutter.Width()
		for row := layout.Gutter.Top; row < layout.Gutter.Bottom; row++ {
			text := gutter.Format(top+row-layout.Gutter.Top, doc.LineCount(), w)
			a.putText(row, layout.Gutter.Left, layout.Gutter.Right, text, a.theme.Gutter)
		}
	}

	text := layout.Text
	for row := text.Top; row < text.Bottom; row++ {
		line := top + row - text.Top
		if line >= doc.LineCount() {
			break
		}
		for col := text.Left; col < text.Right; col++ {
			off, ok := v.OffsetAt(mouse.Position{X: col, Y: row})
			if !ok {
				break
			}
			r, _ := utf8.DecodeRuneInString(doc.Text()[off:])
			if r == '\t' || r == utf8.RuneError {
				r = ' '
			}
			style := a.theme.Text
			if s != nil {
				if e, ok := s.index.ElementAt(off); ok {
					style = a.theme.StyleFor(e.Kind)
				}
			}
			a.backend.SetCell(col, row, core.NewStyledCell(r, style))
		}
	}

	if st, ok := a.status[v.ID()]; ok {
		first, last := v.VisibleLines()
		st.SetLines(first, last, doc.LineCount())
		st.SetHover(a.hover.Enabled())
		style := a.theme.StatusInactive
		if v.ID() == a.focus {
			style = a.theme.Status
		}
		st.Render(a.backend, layout.Status, style)
	}
}

func (a *Application) putText(row, left, right int, text string, style core.Style) {
	col := left
	for _, r := range text {
		if col >= right {
			return
		}
		a.backend.SetCell(col, row, core.NewStyledCell(r, style))
		col++
	}
}
