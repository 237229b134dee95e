package app

import (
	"github.com/dshills/quickdoc/internal/docs"
	"github.com/dshills/quickdoc/internal/hover"
	"github.com/dshills/quickdoc/internal/input/mouse"
	"github.com/dshills/quickdoc/internal/renderer/backend"
	"github.com/dshills/quickdoc/internal/renderer/statusline"
	"github.com/dshills/quickdoc/internal/viewport"
)

// HandleEvent processes one terminal event. It returns ErrQuit when the
// application should exit.
func (a *Application) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		a.tile()
		return nil
	case backend.EventKey:
		return a.handleKey(ev)
	case backend.EventMouse:
		a.handleMouse(ev)
		return nil
	default:
		return nil
	}
}

func (a *Application) handleKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyCtrlW:
		return a.CloseView(a.focus)
	case backend.KeyF2:
		a.SetHoverEnabled(!a.hover.Enabled())
	case backend.KeyEscape:
		a.DismissAll()
	case backend.KeyTab:
		a.focusNext()
	case backend.KeyUp:
		a.scrollFocused(-1)
	case backend.KeyDown:
		a.scrollFocused(1)
	case backend.KeyPageUp:
		a.scrollFocused(-a.pageSize())
	case backend.KeyPageDown:
		a.scrollFocused(a.pageSize())
	case backend.KeyHome:
		a.scrollFocusedTo(0)
	case backend.KeyEnd:
		if v, ok := a.Focused(); ok {
			a.scrollFocusedTo(v.Document().LineCount())
		}
	case backend.KeyRune:
		return a.handleRune(ev.Rune)
	}
	return nil
}

func (a *Application) handleRune(r rune) error {
	switch r {
	case 'q':
		return ErrQuit
	case 'K':
		a.ShowDocAtPointer()
	case 'j':
		a.scrollFocused(1)
	case 'k':
		a.scrollFocused(-1)
	}
	return nil
}

func (a *Application) handleMouse(ev backend.Event) {
	intent := a.mouse.Handle(mouse.Event{
		Position: mouse.Position{X: ev.MouseX, Y: ev.MouseY},
		Button:   convertButton(ev.MouseButton),
	})
	switch intent.Kind {
	case mouse.KindMove:
		a.PointerMoved(intent.Position)
	case mouse.KindClick:
		if v := a.viewAt(intent.Position); v != nil {
			a.focus = v.ID()
		}
	case mouse.KindScroll:
		v := a.viewAt(intent.Position)
		if v == nil {
			return
		}
		if v.ScrollBy(intent.Lines) {
			a.relayoutPopups()
			a.PointerMoved(intent.Position)
		}
	}
}

func convertButton(b backend.MouseButton) mouse.Button {
	switch b {
	case backend.MouseLeft:
		return mouse.ButtonLeft
	case backend.MouseMiddle:
		return mouse.ButtonMiddle
	case backend.MouseRight:
		return mouse.ButtonRight
	case backend.MouseWheelUp:
		return mouse.ButtonScrollUp
	case backend.MouseWheelDown:
		return mouse.ButtonScrollDown
	default:
		return mouse.ButtonNone
	}
}

// PointerMoved routes a pointer position to the view under it. The view
// the pointer left hears about it as a move outside.
func (a *Application) PointerMoved(pos mouse.Position) {
	a.pointer = &pos

	target, region := a.routePointer(pos)
	if a.pointed != 0 && (target == nil || target.ID() != a.pointed) {
		if prev, ok := a.registry.View(a.pointed); ok {
			prev.DispatchPointer(mouse.RegionOutside, pos)
		}
	}
	if target == nil {
		a.pointed = 0
		return
	}
	a.pointed = target.ID()
	target.DispatchPointer(region, pos)
}

// routePointer picks the view a pointer position belongs to. A position
// over a documentation popup belongs to the popup's view.
func (a *Application) routePointer(pos mouse.Position) (*viewport.View, mouse.Region) {
	if p := a.popupAt(pos); p != nil {
		if v, ok := a.registry.View(p.Viewport()); ok {
			return v, mouse.RegionText
		}
	}
	v := a.viewAt(pos)
	if v == nil {
		return nil, mouse.RegionOutside
	}
	return v, v.Layout().Classify(pos)
}

func (a *Application) viewAt(pos mouse.Position) *viewport.View {
	for _, v := range a.registry.Views() {
		if v.Bounds().Contains(pos.Screen()) {
			return v
		}
	}
	return nil
}

func (a *Application) popupAt(pos mouse.Position) *docs.Popup {
	o, ok := a.overlays.At(pos.Screen())
	if !ok {
		return nil
	}
	for _, s := range a.sessions {
		if p := s.presenter.Current(); p != nil && p.ID() == o.ID() {
			return p
		}
	}
	return nil
}

// ShowDocAtPointer opens documentation for the element under the pointer
// on request. The popup is independent of hover mode.
func (a *Application) ShowDocAtPointer() {
	if a.pointer == nil {
		a.message("no pointer position", statusline.MessageError)
		return
	}
	pos := *a.pointer
	v := a.viewAt(pos)
	s := sessionOf(v)
	if s == nil {
		a.message("no view under pointer", statusline.MessageError)
		return
	}
	offset, ok := v.OffsetAt(pos)
	if !ok {
		a.message("nothing under pointer", statusline.MessageInfo)
		return
	}
	element, ok := s.index.ElementAt(offset)
	if !ok || element.Whitespace {
		a.message("nothing under pointer", statusline.MessageInfo)
		return
	}
	target, ok := s.index.ResolveTarget(offset, element)
	if !ok || s.presenter.ShowExplicit(v, target, element) == nil {
		a.message("no documentation for "+element.Text, statusline.MessageInfo)
		return
	}
	a.clearMessage()
}

// DismissAll closes every documentation popup.
func (a *Application) DismissAll() {
	for _, s := range a.sessions {
		s.presenter.DismissCurrent()
	}
	a.clearMessage()
}

func (a *Application) scrollFocused(delta int) {
	v, ok := a.Focused()
	if !ok {
		return
	}
	if v.ScrollBy(delta) {
		a.relayoutPopups()
	}
}

func (a *Application) scrollFocusedTo(line int) {
	v, ok := a.Focused()
	if !ok {
		return
	}
	v.ScrollTo(line)
	a.relayoutPopups()
}

func (a *Application) pageSize() int {
	v, ok := a.Focused()
	if !ok {
		return 1
	}
	return max(v.Layout().Text.Height()-1, 1)
}

func (a *Application) message(msg string, kind statusline.MessageType) {
	if st, ok := a.status[a.focus]; ok {
		st.SetMessage(msg, kind)
	}
	a.logger.Debug().Str("message", msg).Msg("status")
}

func (a *Application) clearMessage() {
	if st, ok := a.status[a.focus]; ok {
		st.ClearMessage()
	}
}

// Status returns the status line of view id.
func (a *Application) Status(id hover.ViewportID) (*statusline.StatusLine, bool) {
	st, ok := a.status[id]
	return st, ok
}
