package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
//
// Callbacks run on the watcher goroutine; callers that touch UI state must
// hand the result to their own loop.
type Watcher struct {
	fs       afero.Fs
	path     string
	debounce time.Duration
	logger   zerolog.Logger
	onChange func(Config)
	onError  func(error)

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for events to settle.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the watcher's logger.
func WithWatcherLogger(logger zerolog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithErrorHandler receives reload and watch errors.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// NewWatcher watches path and reloads it through fs. The containing
// directory is watched so that files replaced by rename are still seen.
func NewWatcher(fs afero.Fs, path string, onChange func(Config), opts ...WatcherOption) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("config watcher needs a path")
	}
	w := &Watcher{
		fs:       fs,
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		logger:   zerolog.Nop(),
		onChange: onChange,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Errorf("creating config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return nil, errors.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string { return w.path }

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.report(errors.Errorf("watching %s: %w", w.path, err))

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.fs, w.path)
	if err != nil {
		w.report(err)
		return
	}
	w.logger.Debug().Str("path", w.path).Bool("hover", cfg.Hover.Enabled).Msg("config reloaded")
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

func (w *Watcher) report(err error) {
	w.logger.Warn().Err(err).Str("path", w.path).Msg("config watch error")
	if w.onError != nil {
		w.onError(err)
	}
}
