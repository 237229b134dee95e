// Package docs shows documentation popups for program elements.
package docs

import (
	"github.com/rs/zerolog"

	"github.com/dshills/quickdoc/internal/hover"
	"github.com/dshills/quickdoc/internal/renderer/core"
	"github.com/dshills/quickdoc/internal/renderer/overlay"
)

// Source supplies documentation text for a target element.
type Source interface {
	Documentation(target hover.Element) (title, body string, ok bool)
}

// Presenter shows at most one documentation popup at a time for a session.
// It implements hover.Presenter.
//
// Presenter is not safe for concurrent use; it belongs to the UI loop.
type Presenter struct {
	overlays *overlay.Manager
	source   Source
	screen   func() core.ScreenRect
	logger   zerolog.Logger

	current *Popup
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithLogger sets the presenter logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Presenter) {
		p.logger = logger
	}
}

// NewPresenter creates a presenter drawing into overlays. screen reports
// the area popups must stay within.
func NewPresenter(overlays *overlay.Manager, source Source, screen func() core.ScreenRect, opts ...Option) *Presenter {
	p := &Presenter{
		overlays: overlays,
		source:   source,
		screen:   screen,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CurrentPopup implements hover.Presenter.
func (p *Presenter) CurrentPopup() hover.Popup {
	if p.current == nil {
		return nil
	}
	return p.current
}

// Current returns the visible popup, or nil.
func (p *Presenter) Current() *Popup {
	return p.current
}

// Show implements hover.Presenter. The popup is marked as shown
// automatically.
func (p *Presenter) Show(vp hover.Viewport, target, anchor hover.Element, onClose func()) hover.Popup {
	if popup := p.open(overlay.KindHoverDoc, vp, target, anchor, onClose); popup != nil {
		return popup
	}
	return nil
}

// ShowExplicit shows documentation the user asked for.
func (p *Presenter) ShowExplicit(vp hover.Viewport, target, anchor hover.Element) hover.Popup {
	if popup := p.open(overlay.KindDoc, vp, target, anchor, nil); popup != nil {
		return popup
	}
	return nil
}

// DismissCurrent closes the visible popup and reports whether there was one.
func (p *Presenter) DismissCurrent() bool {
	if p.current == nil {
		return false
	}
	p.close(p.current, "dismissed")
	return true
}

// ViewportDestroyed closes the popup anchored in viewport id.
func (p *Presenter) ViewportDestroyed(id hover.ViewportID) {
	if p.current != nil && p.current.viewport == id {
		p.close(p.current, "viewport closed")
	}
}

// Relayout re-places the visible popup after the screen or its view changed.
// A popup whose anchor scrolled out of sight is closed.
func (p *Presenter) Relayout(lookup func(hover.ViewportID) (hover.Viewport, bool)) {
	cur := p.current
	if cur == nil {
		return
	}
	vp, ok := lookup(cur.viewport)
	if !ok {
		p.close(cur, "viewport gone")
		return
	}
	pos, ok := vp.ScreenPosOf(cur.anchor.Start)
	if !ok {
		p.close(cur, "anchor hidden")
		return
	}
	cur.PlaceAt(pos, p.screen())
}

func (p *Presenter) open(kind overlay.Kind, vp hover.Viewport, target, anchor hover.Element, onClose func()) *Popup {
	title, body, ok := p.source.Documentation(target)
	if !ok {
		p.logger.Debug().Str("target", target.ID).Msg("no documentation")
		return nil
	}
	pos, ok := vp.ScreenPosOf(anchor.Start)
	if !ok {
		p.logger.Debug().Str("anchor", anchor.ID).Msg("anchor not on screen")
		return nil
	}

	if p.current != nil {
		p.close(p.current, "replaced")
	}

	popup := &Popup{
		Popup:    overlay.NewPopup(kind, title, body, p.overlays.Config()),
		owner:    p,
		viewport: vp.ID(),
		target:   target,
		anchor:   anchor,
		onClose:  onClose,
	}
	popup.PlaceAt(pos, p.screen())
	p.overlays.Add(popup)
	p.current = popup

	p.logger.Debug().
		Str("popup", popup.ID()).
		Str("kind", kind.String()).
		Str("target", target.ID).
		Msg("popup shown")
	return popup
}

func (p *Presenter) close(popup *Popup, reason string) {
	if popup.closed {
		return
	}
	popup.closed = true
	p.overlays.Remove(popup.ID())
	if p.current == popup {
		p.current = nil
	}
	p.logger.Debug().Str("popup", popup.ID()).Str("reason", reason).Msg("popup closed")

	if popup.onClose != nil {
		cb := popup.onClose
		popup.onClose = nil
		cb()
	}
}

// Popup is a documentation popup. It implements hover.Popup.
type Popup struct {
	*overlay.Popup

	owner    *Presenter
	viewport hover.ViewportID
	target   hover.Element
	anchor   hover.Element
	onClose  func()
	closed   bool
}

// Target returns the element the popup documents.
func (p *Popup) Target() hover.Element { return p.target }

// Viewport returns the viewport the popup is anchored in.
func (p *Popup) Viewport() hover.ViewportID { return p.viewport }

// Closed reports whether the popup has gone away.
func (p *Popup) Closed() bool { return p.closed }

// Dismiss closes the popup. Repeated calls do nothing.
func (p *Popup) Dismiss() {
	p.owner.close(p, "dismissed")
}
