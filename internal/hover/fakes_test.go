package hover

import (
	"fmt"
	"time"

	"github.com/dshills/quickdoc/internal/input/mouse"
	"github.com/dshills/quickdoc/internal/loop"
	"github.com/dshills/quickdoc/internal/renderer/core"
)

type fakeSub struct{ cancel func() }

func (s *fakeSub) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

type fakeSource struct {
	views     []*fakeViewport
	listeners []ViewportListener
}

func (s *fakeSource) Viewports() []Viewport {
	out := make([]Viewport, 0, len(s.views))
	for _, v := range s.views {
		out = append(out, v)
	}
	return out
}

func (s *fakeSource) Lookup(id ViewportID) (Viewport, bool) {
	for _, v := range s.views {
		if v.id == id {
			return v, true
		}
	}
	return nil, false
}

func (s *fakeSource) SubscribeViewports(l ViewportListener) Subscription {
	s.listeners = append(s.listeners, l)
	idx := len(s.listeners) - 1
	return &fakeSub{cancel: func() { s.listeners[idx] = nil }}
}

func (s *fakeSource) open(v *fakeViewport) *fakeViewport {
	s.views = append(s.views, v)
	for _, l := range s.listeners {
		if l != nil {
			l.ViewportCreated(v)
		}
	}
	return v
}

func (s *fakeSource) close(id ViewportID) {
	for i, v := range s.views {
		if v.id == id {
			s.views = append(s.views[:i], s.views[i+1:]...)
			break
		}
	}
	for _, l := range s.listeners {
		if l != nil {
			l.ViewportDestroyed(id)
		}
	}
}

// fakeViewport maps column X on row 0 to offset X.
type fakeViewport struct {
	id        ViewportID
	session   Session
	listeners map[int]PointerListener
	nextSub   int
}

func newFakeViewport(id ViewportID, session Session) *fakeViewport {
	return &fakeViewport{id: id, session: session, listeners: make(map[int]PointerListener)}
}

func (v *fakeViewport) ID() ViewportID { return v.id }

func (v *fakeViewport) Session() Session { return v.session }

func (v *fakeViewport) OffsetAt(pos mouse.Position) (int, bool) {
	if pos.Y != 0 || pos.X < 0 {
		return 0, false
	}
	return pos.X, true
}

func (v *fakeViewport) ScreenPosOf(offset int) (core.ScreenPos, bool) {
	return core.NewScreenPos(0, offset), true
}

func (v *fakeViewport) SubscribePointer(l PointerListener) Subscription {
	v.nextSub++
	key := v.nextSub
	v.listeners[key] = l
	return &fakeSub{cancel: func() { delete(v.listeners, key) }}
}

// move delivers a text-area move at column x to every listener.
func (v *fakeViewport) move(x int) {
	v.moveIn(mouse.RegionText, mouse.Position{X: x, Y: 0})
}

func (v *fakeViewport) moveIn(region mouse.Region, pos mouse.Position) {
	for _, l := range v.listeners {
		l(PointerEvent{Viewport: v, Region: region, Position: pos})
	}
}

type fakeSession struct {
	resolver  ElementResolver
	presenter *fakePresenter
}

func (s *fakeSession) Resolver() ElementResolver { return s.resolver }
func (s *fakeSession) Presenter() Presenter      { return s.presenter }

type span struct {
	start, end int
	element    Element
	target     *Element
}

// fakeResolver serves a fixed document:
//
//	offset 0-4   alpha  (declares itself)
//	offset 5     whitespace
//	offset 6-9   beta   (usage of betaDecl)
//	offset 10-13 beta   (second usage of betaDecl)
//	offset 14    whitespace
//	offset 15-19 gamma  (no documentation target)
//	offset 20-24 delta  (declares itself)
type fakeResolver struct {
	spans []span
}

var (
	elemAlpha  = Element{ID: "alpha", Text: "alpha", Start: 0, End: 5}
	elemBeta1  = Element{ID: "beta@6", Text: "beta", Start: 6, End: 10}
	elemBeta2  = Element{ID: "beta@10", Text: "beta", Start: 10, End: 14}
	elemGamma  = Element{ID: "gamma", Text: "gamma", Start: 15, End: 20}
	elemDelta  = Element{ID: "delta", Text: "delta", Start: 20, End: 25}
	elemBetaDe = Element{ID: "beta-decl", Text: "beta", Start: 100, End: 104}
)

func newFakeResolver() *fakeResolver {
	alpha, delta, beta := elemAlpha, elemDelta, elemBetaDe
	return &fakeResolver{spans: []span{
		{0, 5, elemAlpha, &alpha},
		{5, 6, Element{ID: "ws@5", Whitespace: true}, nil},
		{6, 10, elemBeta1, &beta},
		{10, 14, elemBeta2, &beta},
		{14, 15, Element{ID: "ws@14", Whitespace: true}, nil},
		{15, 20, elemGamma, nil},
		{20, 25, elemDelta, &delta},
	}}
}

func (r *fakeResolver) ElementAt(offset int) (Element, bool) {
	for _, s := range r.spans {
		if offset >= s.start && offset < s.end {
			return s.element, true
		}
	}
	return Element{}, false
}

func (r *fakeResolver) ResolveTarget(offset int, element Element) (Element, bool) {
	for _, s := range r.spans {
		if offset >= s.start && offset < s.end && s.element.Equal(element) {
			if s.target == nil {
				return Element{}, false
			}
			return *s.target, true
		}
	}
	return Element{}, false
}

type showCall struct {
	at       time.Duration
	viewport ViewportID
	target   Element
	anchor   Element
}

type fakePopup struct {
	id        string
	bounds    core.ScreenRect
	owner     *fakePresenter
	onClose   func()
	dismissed bool
}

func (p *fakePopup) ID() string              { return p.id }
func (p *fakePopup) Bounds() core.ScreenRect { return p.bounds }

func (p *fakePopup) Dismiss() {
	if p.dismissed {
		return
	}
	p.dismissed = true
	if p.owner.current == p {
		p.owner.current = nil
	}
	if p.onClose != nil {
		p.onClose()
	}
}

// fakePresenter shows one popup at a time, on rows 5-9 columns 0-29.
type fakePresenter struct {
	clock    *loop.Virtual
	current  *fakePopup
	shows    []showCall
	explicit int
	next     int
	decline  bool
}

func (p *fakePresenter) CurrentPopup() Popup {
	if p.current == nil {
		return nil
	}
	return p.current
}

func (p *fakePresenter) Show(vp Viewport, target, anchor Element, onClose func()) Popup {
	if p.decline {
		return nil
	}
	p.shows = append(p.shows, showCall{at: p.clock.Now(), viewport: vp.ID(), target: target, anchor: anchor})
	return p.open(onClose)
}

// showExplicit opens a popup the way a user-invoked command would.
func (p *fakePresenter) showExplicit() *fakePopup {
	p.explicit++
	return p.open(nil)
}

func (p *fakePresenter) open(onClose func()) *fakePopup {
	if p.current != nil {
		p.current.Dismiss()
	}
	p.next++
	p.current = &fakePopup{
		id:      fmt.Sprintf("popup-%d", p.next),
		bounds:  core.RectFromSize(5, 0, 5, 30),
		owner:   p,
		onClose: onClose,
	}
	return p.current
}

type harness struct {
	clock     *loop.Virtual
	source    *fakeSource
	presenter *fakePresenter
	session   *fakeSession
	view      *fakeViewport
	mgr       *Manager
}

func newHarness(delay time.Duration) *harness {
	clock := loop.NewVirtual()
	presenter := &fakePresenter{clock: clock}
	session := &fakeSession{resolver: newFakeResolver(), presenter: presenter}
	source := &fakeSource{}
	view := source.open(newFakeViewport(1, session))
	mgr := NewManager(source, clock, WithDelay(delay))
	mgr.SetEnabled(true)
	return &harness{
		clock:     clock,
		source:    source,
		presenter: presenter,
		session:   session,
		view:      view,
		mgr:       mgr,
	}
}

func (h *harness) targets() []string {
	out := make([]string, 0, len(h.presenter.shows))
	for _, s := range h.presenter.shows {
		out = append(out, s.target.ID)
	}
	return out
}
