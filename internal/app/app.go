// Package app wires documents, views, hover documentation and the terminal
// into the quickdoc viewer.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/dshills/quickdoc/internal/config"
	"github.com/dshills/quickdoc/internal/docs"
	"github.com/dshills/quickdoc/internal/hover"
	"github.com/dshills/quickdoc/internal/input/mouse"
	"github.com/dshills/quickdoc/internal/loop"
	"github.com/dshills/quickdoc/internal/renderer/backend"
	"github.com/dshills/quickdoc/internal/renderer/core"
	"github.com/dshills/quickdoc/internal/renderer/gutter"
	"github.com/dshills/quickdoc/internal/renderer/highlight"
	"github.com/dshills/quickdoc/internal/renderer/overlay"
	"github.com/dshills/quickdoc/internal/renderer/statusline"
	"github.com/dshills/quickdoc/internal/symbols"
	"github.com/dshills/quickdoc/internal/viewport"
)

// Application is the viewer. Apart from Post and Run, its methods must be
// called on the UI loop.
type Application struct {
	fs      afero.Fs
	backend backend.Backend
	logger  zerolog.Logger
	config  config.Config

	loop      *loop.Loop
	scheduler loop.Scheduler
	symOpts   []symbols.GoOption

	registry *viewport.Registry
	hover    *hover.Manager
	overlays *overlay.Manager
	theme    *highlight.Theme
	mouse    *mouse.Handler

	sessions map[string]*session
	status   map[hover.ViewportID]*statusline.StatusLine
	focus    hover.ViewportID
	pointer  *mouse.Position
	pointed  hover.ViewportID

	regSub hover.Subscription

	runMu    sync.Mutex
	running  bool
	quitting bool
}

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the application logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Application) {
		a.logger = logger
	}
}

// WithFs sets the filesystem documents are read from.
func WithFs(fs afero.Fs) Option {
	return func(a *Application) {
		a.fs = fs
	}
}

// WithScheduler replaces the loop as the hover timer source. Tests pass a
// loop.Virtual and drive the application synchronously.
func WithScheduler(s loop.Scheduler) Option {
	return func(a *Application) {
		a.scheduler = s
	}
}

// WithSymbolOptions passes options to the Go indexer.
func WithSymbolOptions(opts ...symbols.GoOption) Option {
	return func(a *Application) {
		a.symOpts = append(a.symOpts, opts...)
	}
}

// New creates an application drawing to b. delay is the resolved hover
// debounce delay; it never changes for the life of the application.
func New(b backend.Backend, cfg config.Config, delay time.Duration, opts ...Option) *Application {
	a := &Application{
		fs:       afero.NewOsFs(),
		backend:  b,
		logger:   zerolog.Nop(),
		config:   cfg,
		overlays: overlay.NewManager(overlay.DefaultConfig()),
		theme:    themeFor(cfg),
		mouse:    mouse.NewHandler(mouse.DefaultConfig()),
		sessions: make(map[string]*session),
		status:   make(map[hover.ViewportID]*statusline.StatusLine),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.loop = loop.New(loop.WithIdle(a.Render))
	if a.scheduler == nil {
		a.scheduler = a.loop
	}

	a.registry = viewport.NewRegistry(viewport.WithLogger(a.logger.With().Str("component", "viewport").Logger()))
	a.regSub = a.registry.SubscribeViewports(a)
	a.hover = hover.NewManager(a.registry, a.scheduler,
		hover.WithDelay(delay),
		hover.WithLogger(a.logger.With().Str("component", "hover").Logger()))
	a.hover.SetEnabled(cfg.Hover.Enabled)

	a.logger.Info().
		Dur("delay", a.hover.Delay()).
		Bool("hover", cfg.Hover.Enabled).
		Str("theme", a.theme.Name).
		Msg("application created")
	return a
}

func themeFor(cfg config.Config) *highlight.Theme {
	if t, ok := highlight.ByName(cfg.UI.Theme); ok {
		return t
	}
	return highlight.DefaultTheme()
}

// Hover returns the hover manager.
func (a *Application) Hover() *hover.Manager { return a.hover }

// Registry returns the view registry.
func (a *Application) Registry() *viewport.Registry { return a.registry }

// Overlays returns the overlay manager popups are drawn from.
func (a *Application) Overlays() *overlay.Manager { return a.overlays }

// Focused returns the focused view.
func (a *Application) Focused() (*viewport.View, bool) {
	return a.registry.View(a.focus)
}

// Post runs fn on the UI loop. It is safe to call from any goroutine.
func (a *Application) Post(fn func()) bool {
	return a.loop.Post(fn)
}

// Open loads path and shows it in a new view. Opening a file that is
// already open adds a view sharing the first one's session.
func (a *Application) Open(path string) (*viewport.View, error) {
	s, ok := a.sessions[path]
	if !ok {
		doc, err := viewport.LoadDocument(a.fs, path)
		if err != nil {
			return nil, NewOperationError("open", path, err)
		}
		s = a.newSession(doc)
	}
	return a.openView(s), nil
}

// OpenDocument shows an in-memory document in a new view.
func (a *Application) OpenDocument(doc *viewport.Document) *viewport.View {
	s, ok := a.sessions[doc.Path()]
	if !ok || s.doc != doc {
		s = a.newSession(doc)
	}
	return a.openView(s)
}

func (a *Application) newSession(doc *viewport.Document) *session {
	logger := a.logger.With().Str("path", doc.Path()).Logger()
	s := &session{
		doc:   doc,
		index: symbols.Build(doc.Path(), doc.Text(), logger, a.symOpts...),
	}
	s.presenter = docs.NewPresenter(a.overlays, s.index, a.screen, docs.WithLogger(logger))
	a.sessions[doc.Path()] = s
	return s
}

func (a *Application) openView(s *session) *viewport.View {
	s.views++
	v := a.registry.Open(s.doc, s, core.ScreenRect{})
	if a.config.UI.Gutter {
		v.SetGutter(gutter.Width(s.doc.LineCount()))
	}
	st := statusline.New()
	st.SetFilename(s.doc.Path())
	a.status[v.ID()] = st
	a.focus = v.ID()
	a.tile()
	return v
}

// CloseView closes view id. Closing the last view of a file drops its
// session. It reports ErrQuit when no views remain.
func (a *Application) CloseView(id hover.ViewportID) error {
	v, ok := a.registry.View(id)
	if !ok {
		return ErrNoView
	}
	s := sessionOf(v)
	a.registry.Close(id)
	delete(a.status, id)

	if s != nil {
		s.views--
		if s.views == 0 {
			s.presenter.DismissCurrent()
			if a.sessions[s.doc.Path()] == s {
				delete(a.sessions, s.doc.Path())
			}
		}
	}
	if a.pointed == id {
		a.pointed = 0
	}
	if a.registry.Len() == 0 {
		return ErrQuit
	}
	if a.focus == id {
		a.focus = a.registry.Views()[0].ID()
	}
	a.tile()
	return nil
}

// ViewportCreated implements hover.ViewportListener.
func (a *Application) ViewportCreated(hover.Viewport) {}

// ViewportDestroyed closes popups anchored in a closed view.
func (a *Application) ViewportDestroyed(id hover.ViewportID) {
	for _, s := range a.sessions {
		s.presenter.ViewportDestroyed(id)
	}
}

// SetHoverEnabled turns automatic documentation on or off.
func (a *Application) SetHoverEnabled(enabled bool) {
	if a.hover.Enabled() == enabled {
		return
	}
	a.hover.SetEnabled(enabled)
	a.logger.Info().Bool("hover", enabled).Msg("hover mode")
}

// ApplyConfig applies a reloaded config. Only hover.enabled follows the
// file at runtime.
func (a *Application) ApplyConfig(cfg config.Config) {
	a.SetHoverEnabled(cfg.Hover.Enabled)
}

// Close detaches the hover manager and the registry listener.
func (a *Application) Close() {
	a.hover.Close()
	if a.regSub != nil {
		a.regSub.Unsubscribe()
		a.regSub = nil
	}
	for _, s := range a.sessions {
		s.presenter.DismissCurrent()
	}
}

// Run drives the terminal until the user quits or ctx ends. Events are
// read on a separate goroutine and handled on the loop.
func (a *Application) Run(ctx context.Context) error {
	a.runMu.Lock()
	if a.running {
		a.runMu.Unlock()
		return ErrAlreadyRunning
	}
	if a.registry.Len() == 0 {
		a.runMu.Unlock()
		return ErrNoDocuments
	}
	a.running = true
	a.runMu.Unlock()

	if err := a.backend.Init(); err != nil {
		a.runMu.Lock()
		a.running = false
		a.runMu.Unlock()
		return NewOperationError("init", "terminal", err)
	}
	defer a.backend.Shutdown()
	a.backend.EnableMouse()
	a.backend.HideCursor()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.pollEvents()
	}()

	a.loop.Post(a.tile)
	err := a.loop.Run(ctx)

	a.loop.Stop()
	a.backend.PostEvent(backend.Event{Type: backend.EventWake})
	wg.Wait()
	a.Close()

	if a.quitting && errors.Is(err, loop.ErrStopped) {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *Application) pollEvents() {
	for {
		ev := a.backend.PollEvent()
		select {
		case <-a.loop.Done():
			return
		default:
		}
		if ev.Type == backend.EventWake || ev.Type == backend.EventNone {
			continue
		}
		if !a.loop.Post(func() { a.dispatch(ev) }) {
			return
		}
	}
}

func (a *Application) dispatch(ev backend.Event) {
	if err := a.HandleEvent(ev); errors.Is(err, ErrQuit) {
		a.quitting = true
		a.loop.Stop()
	}
}
