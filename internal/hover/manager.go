package hover

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/quickdoc/internal/input/mouse"
	"github.com/dshills/quickdoc/internal/loop"
)

// Manager shows documentation automatically when the pointer rests on a
// program element.
//
// Manager is not safe for concurrent use. Every method, pointer listener and
// timer callback must run on the UI loop that owns the scheduler.
type Manager struct {
	source    ViewportSource
	scheduler loop.Scheduler
	delay     time.Duration
	logger    zerolog.Logger

	enabled   bool
	listeners map[ViewportID]Subscription
	sourceSub Subscription

	// tracked holds the target last identified under the pointer, per viewport.
	tracked map[ViewportID]Element

	// pending is the single scheduled, not yet fired request.
	pending *request
	timer   loop.Timer

	// auto relates the manager to the popup it showed last. It is resolved
	// through the viewport source on use and never holds the popup itself.
	auto  *autoRef
	shown uint64
}

type request struct {
	viewport ViewportID
	target   Element
	anchor   Element
}

type autoRef struct {
	viewport ViewportID
	popupID  string
	seq      uint64
}

// Option configures a Manager.
type Option func(*Manager)

// WithDelay sets the debounce delay. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.delay = d
		}
	}
}

// WithLogger sets the logger for hover decisions.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a disabled manager watching source for viewports.
func NewManager(source ViewportSource, scheduler loop.Scheduler, opts ...Option) *Manager {
	m := &Manager{
		source:    source,
		scheduler: scheduler,
		delay:     DefaultDelay,
		logger:    zerolog.Nop(),
		listeners: make(map[ViewportID]Subscription),
		tracked:   make(map[ViewportID]Element),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.sourceSub = source.SubscribeViewports(m)
	return m
}

// Close detaches the manager from every viewport and from the source.
func (m *Manager) Close() {
	m.SetEnabled(false)
	if m.sourceSub != nil {
		m.sourceSub.Unsubscribe()
		m.sourceSub = nil
	}
}

// Enabled reports whether hover mode is on.
func (m *Manager) Enabled() bool {
	return m.enabled
}

// Delay returns the debounce delay.
func (m *Manager) Delay() time.Duration {
	return m.delay
}

// Pending reports whether a request is scheduled and has not fired.
func (m *Manager) Pending() bool {
	return m.pending != nil
}

// Tracked returns the element currently tracked for viewport id.
func (m *Manager) Tracked(id ViewportID) (Element, bool) {
	e, ok := m.tracked[id]
	return e, ok
}

// SetEnabled turns hover mode on or off. Turning it off cancels a pending
// request and closes a popup the manager opened. Either way every live
// viewport gets its pointer listener attached or detached to match.
func (m *Manager) SetEnabled(enabled bool) {
	m.enabled = enabled
	if !enabled {
		m.cancelPending()
		m.dismissAuto()
		clear(m.tracked)
	}
	for _, vp := range m.source.Viewports() {
		if enabled {
			m.attach(vp)
		} else {
			m.detach(vp.ID())
		}
	}
	m.logger.Debug().Bool("enabled", enabled).Msg("hover mode changed")
}

// ViewportCreated attaches the pointer listener to a new viewport.
func (m *Manager) ViewportCreated(vp Viewport) {
	if m.enabled {
		m.attach(vp)
	}
}

// ViewportDestroyed drops all state held for viewport id.
func (m *Manager) ViewportDestroyed(id ViewportID) {
	m.detach(id)
	delete(m.tracked, id)
	if m.pending != nil && m.pending.viewport == id {
		m.cancelPending()
	}
	if m.auto != nil && m.auto.viewport == id {
		m.auto = nil
	}
}

func (m *Manager) attach(vp Viewport) {
	id := vp.ID()
	if _, ok := m.listeners[id]; ok {
		return
	}
	m.listeners[id] = vp.SubscribePointer(m.HandlePointerMove)
}

func (m *Manager) detach(id ViewportID) {
	if sub, ok := m.listeners[id]; ok {
		sub.Unsubscribe()
		delete(m.listeners, id)
	}
}

// HandlePointerMove decides whether ev starts a new hover intent.
func (m *Manager) HandlePointerMove(ev PointerEvent) {
	vp := ev.Viewport
	if !m.enabled || vp == nil {
		return
	}
	id := vp.ID()

	if ev.Region != mouse.RegionText {
		m.abandon(id, "outside text area")
		return
	}

	session := vp.Session()
	if session == nil {
		return
	}

	popup := session.Presenter().CurrentPopup()
	if popup != nil {
		if !m.isAuto(popup) {
			// Explicitly requested popups are left alone.
			return
		}
		if popup.Bounds().Contains(ev.Position.Screen()) {
			return
		}
	}

	offset, ok := vp.OffsetAt(ev.Position)
	if !ok {
		m.abandon(id, "no document position")
		return
	}
	resolver := session.Resolver()
	element, ok := resolver.ElementAt(offset)
	if !ok || element.Whitespace {
		m.abandon(id, "no element")
		return
	}
	target, ok := resolver.ResolveTarget(offset, element)
	if !ok {
		m.abandon(id, "no target")
		return
	}

	if current, ok := m.tracked[id]; ok && current.Equal(target) && (m.pending != nil || popup != nil) {
		return
	}

	m.dismissAuto()
	m.cancelPending()
	m.tracked[id] = target
	m.pending = &request{viewport: id, target: target, anchor: element}
	m.timer = m.scheduler.AfterFunc(m.delay, m.fire)

	m.logger.Debug().
		Uint64("viewport", uint64(id)).
		Str("target", target.ID).
		Str("anchor", element.ID).
		Dur("delay", m.delay).
		Msg("hover scheduled")
}

func (m *Manager) fire() {
	req := m.pending
	m.cancelPending()
	if req == nil {
		return
	}

	current, ok := m.tracked[req.viewport]
	if !ok || !current.Equal(req.target) {
		m.logger.Debug().Str("target", req.target.ID).Msg("hover request stale")
		return
	}
	vp, ok := m.source.Lookup(req.viewport)
	if !ok {
		delete(m.tracked, req.viewport)
		return
	}
	session := vp.Session()
	if session == nil {
		return
	}
	if popup := session.Presenter().CurrentPopup(); popup != nil && !m.isAuto(popup) {
		m.logger.Debug().Str("target", req.target.ID).Str("popup", popup.ID()).Msg("hover yields to explicit popup")
		return
	}

	m.shown++
	seq := m.shown
	popup := session.Presenter().Show(vp, req.target, req.anchor, m.closeCallback(seq, req.viewport, req.target))
	if popup == nil {
		return
	}
	m.auto = &autoRef{viewport: req.viewport, popupID: popup.ID(), seq: seq}

	m.logger.Debug().
		Uint64("viewport", uint64(req.viewport)).
		Str("target", req.target.ID).
		Str("popup", popup.ID()).
		Msg("hover shown")
}

// closeCallback returns the hook run when popup seq closes. It runs at most
// once and never clears state belonging to a newer popup or target.
func (m *Manager) closeCallback(seq uint64, id ViewportID, target Element) func() {
	closed := false
	return func() {
		if closed {
			return
		}
		closed = true
		if m.auto != nil && m.auto.seq == seq {
			m.auto = nil
		}
		if current, ok := m.tracked[id]; ok && current.Equal(target) {
			delete(m.tracked, id)
		}
	}
}

func (m *Manager) isAuto(popup Popup) bool {
	return m.auto != nil && m.auto.popupID == popup.ID()
}

func (m *Manager) abandon(id ViewportID, reason string) {
	if m.pending == nil && m.auto == nil {
		delete(m.tracked, id)
		return
	}
	m.cancelPending()
	m.dismissAuto()
	delete(m.tracked, id)
	m.logger.Debug().Uint64("viewport", uint64(id)).Str("reason", reason).Msg("hover abandoned")
}

func (m *Manager) cancelPending() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.pending = nil
}

// dismissAuto closes the popup the manager opened, if it is still visible.
func (m *Manager) dismissAuto() {
	ref := m.auto
	if ref == nil {
		return
	}
	defer func() {
		if m.auto == ref {
			m.auto = nil
		}
	}()

	vp, ok := m.source.Lookup(ref.viewport)
	if !ok {
		return
	}
	session := vp.Session()
	if session == nil {
		return
	}
	popup := session.Presenter().CurrentPopup()
	if popup != nil && popup.ID() == ref.popupID {
		popup.Dismiss()
	}
}
