// Package viewport tracks the open views of documents and reports pointer
// movement over them.
package viewport

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/dshills/quickdoc/internal/hover"
	"github.com/dshills/quickdoc/internal/renderer/core"
)

// Registry owns every live View. It implements hover.ViewportSource.
//
// Registry is not safe for concurrent use; it belongs to the UI loop.
type Registry struct {
	views     []*View
	nextID    hover.ViewportID
	gutter    int
	listeners map[uint64]hover.ViewportListener
	nextSub   uint64
	logger    zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithGutter sets the gutter width given to new views.
func WithGutter(width int) Option {
	return func(r *Registry) {
		r.gutter = width
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		listeners: make(map[uint64]hover.ViewportListener),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open creates a view of doc in bounds and announces it to listeners.
func (r *Registry) Open(doc *Document, session hover.Session, bounds core.ScreenRect) *View {
	r.nextID++
	v := newView(r.nextID, doc, session, bounds, r.gutter)
	r.views = append(r.views, v)

	r.logger.Debug().Uint64("viewport", uint64(v.id)).Str("path", doc.Path()).Msg("view opened")
	for _, l := range r.snapshot() {
		l.ViewportCreated(v)
	}
	return v
}

// Close destroys view id. It reports false if no such view exists.
func (r *Registry) Close(id hover.ViewportID) bool {
	idx := r.index(id)
	if idx < 0 {
		return false
	}
	v := r.views[idx]
	r.views = append(r.views[:idx], r.views[idx+1:]...)

	r.logger.Debug().Uint64("viewport", uint64(id)).Msg("view closed")
	for _, l := range r.snapshot() {
		l.ViewportDestroyed(id)
	}
	v.dropListeners()
	return true
}

// Views returns the live views in the order they were opened.
func (r *Registry) Views() []*View {
	return append([]*View(nil), r.views...)
}

// View returns view id.
func (r *Registry) View(id hover.ViewportID) (*View, bool) {
	if idx := r.index(id); idx >= 0 {
		return r.views[idx], true
	}
	return nil, false
}

// Len returns the number of live views.
func (r *Registry) Len() int { return len(r.views) }

// Viewports implements hover.ViewportSource.
func (r *Registry) Viewports() []hover.Viewport {
	out := make([]hover.Viewport, 0, len(r.views))
	for _, v := range r.views {
		out = append(out, v)
	}
	return out
}

// Lookup implements hover.ViewportSource.
func (r *Registry) Lookup(id hover.ViewportID) (hover.Viewport, bool) {
	v, ok := r.View(id)
	if !ok {
		return nil, false
	}
	return v, true
}

// SubscribeViewports implements hover.ViewportSource.
func (r *Registry) SubscribeViewports(l hover.ViewportListener) hover.Subscription {
	r.nextSub++
	key := r.nextSub
	r.listeners[key] = l
	return subscription(func() { delete(r.listeners, key) })
}

func (r *Registry) index(id hover.ViewportID) int {
	for i, v := range r.views {
		if v.id == id {
			return i
		}
	}
	return -1
}

func (r *Registry) snapshot() []hover.ViewportListener {
	keys := make([]uint64, 0, len(r.listeners))
	for k := range r.listeners {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]hover.ViewportListener, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.listeners[k])
	}
	return out
}
