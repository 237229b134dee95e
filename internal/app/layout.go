package app

import (
	"github.com/dshills/quickdoc/internal/hover"
	"github.com/dshills/quickdoc/internal/renderer/core"
)

// screen returns the whole terminal area.
func (a *Application) screen() core.ScreenRect {
	w, h := a.backend.Size()
	return core.RectFromSize(0, 0, h, w)
}

// tile stacks views top to bottom in open order, splitting the height
// evenly and giving the remainder to the last view.
func (a *Application) tile() {
	views := a.registry.Views()
	if len(views) == 0 {
		return
	}
	screen := a.screen()
	each := screen.Height() / len(views)
	top := screen.Top
	for i, v := range views {
		h := each
		if i == len(views)-1 {
			h = screen.Bottom - top
		}
		v.Resize(core.RectFromSize(top, screen.Left, h, screen.Width()))
		top += h
	}
	a.relayoutPopups()
}

// relayoutPopups moves popups after their anchors moved and closes those
// whose anchor scrolled out of sight.
func (a *Application) relayoutPopups() {
	for _, s := range a.sessions {
		s.presenter.Relayout(a.lookup)
	}
}

func (a *Application) lookup(id hover.ViewportID) (hover.Viewport, bool) {
	return a.registry.Lookup(id)
}

// focusNext moves focus to the view after the focused one.
func (a *Application) focusNext() {
	views := a.registry.Views()
	for i, v := range views {
		if v.ID() == a.focus {
			a.focus = views[(i+1)%len(views)].ID()
			return
		}
	}
	if len(views) > 0 {
		a.focus = views[0].ID()
	}
}
