// Package loop provides the single UI scheduling context.
//
// Every piece of UI state (viewports, popups, the hover manager) is owned by
// the goroutine that calls Run. Other goroutines hand work to it with Post.
// Timers created with AfterFunc deliver their callbacks through the same
// queue, so a callback never races with the code that cancels it.
package loop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"gitlab.com/tozd/go/errors"
)

// ErrStopped is returned by Run after Stop and reported by Post once the loop
// no longer accepts work.
var ErrStopped = errors.Base("loop stopped")

// Timer is a cancellable single-shot callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or the timer was already stopped.
	Stop() bool
}

// Scheduler creates timers whose callbacks run on the UI context.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Loop runs posted functions one at a time on the goroutine calling Run.
type Loop struct {
	queue    chan func()
	done     chan struct{}
	stopOnce sync.Once
	idle     func()
}

// Option configures a Loop.
type Option func(*Loop)

// WithQueueSize sets the capacity of the work queue.
func WithQueueSize(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.queue = make(chan func(), n)
		}
	}
}

// WithIdle sets a hook run after each batch of work drains the queue.
// The application uses it to render once per batch instead of per event.
func WithIdle(fn func()) Option {
	return func(l *Loop) {
		l.idle = fn
	}
}

// New creates a loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		queue: make(chan func(), 256),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post enqueues fn for execution on the loop. It blocks while the queue is
// full and returns false if the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run executes posted work until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return ErrStopped
		case fn := <-l.queue:
			fn()
			l.drain()
			if l.idle != nil {
				l.idle()
			}
		}
	}
}

// drain runs everything already queued without blocking.
func (l *Loop) drain() {
	for {
		select {
		case <-l.done:
			return
		case fn := <-l.queue:
			fn()
		default:
			return
		}
	}
}

// Stop stops the loop. Work still queued is dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// AfterFunc schedules fn to run on the loop after d.
//
// Stop must be called from the loop goroutine. Once it returns true, fn will
// not run even if the runtime timer already expired and its callback is
// waiting in the queue.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.Load() {
				return
			}
			if t.fired.Swap(true) {
				return
			}
			fn()
		})
	})
	return t
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
	fired   atomic.Bool
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	if t.stopped.Swap(true) {
		return false
	}
	return !t.fired.Load()
}
