package loop

import (
	"sort"
	"time"
)

// Virtual is a deterministic Scheduler driven by Advance. Callbacks run on
// the goroutine calling Advance. It is not safe for concurrent use.
type Virtual struct {
	now    time.Duration
	seq    uint64
	timers []*virtualTimer
}

// NewVirtual creates a virtual scheduler at time zero.
func NewVirtual() *Virtual {
	return &Virtual{}
}

// Now returns the elapsed virtual time.
func (v *Virtual) Now() time.Duration {
	return v.now
}

// AfterFunc schedules fn at Now()+d.
func (v *Virtual) AfterFunc(d time.Duration, fn func()) Timer {
	v.seq++
	t := &virtualTimer{owner: v, at: v.now + max(d, 0), seq: v.seq, fn: fn}
	v.timers = append(v.timers, t)
	return t
}

// Pending returns the number of timers that have not fired or been stopped.
func (v *Virtual) Pending() int {
	return len(v.timers)
}

// Advance moves the clock forward by d, firing due timers in deadline order.
// Each callback observes Now() equal to its own deadline.
func (v *Virtual) Advance(d time.Duration) {
	target := v.now + d
	for {
		t := v.next()
		if t == nil || t.at > target {
			break
		}
		v.remove(t)
		v.now = t.at
		t.fn()
	}
	v.now = target
}

func (v *Virtual) next() *virtualTimer {
	if len(v.timers) == 0 {
		return nil
	}
	sort.SliceStable(v.timers, func(i, j int) bool {
		if v.timers[i].at != v.timers[j].at {
			return v.timers[i].at < v.timers[j].at
		}
		return v.timers[i].seq < v.timers[j].seq
	})
	return v.timers[0]
}

func (v *Virtual) remove(t *virtualTimer) bool {
	for i, other := range v.timers {
		if other == t {
			v.timers = append(v.timers[:i], v.timers[i+1:]...)
			return true
		}
	}
	return false
}

type virtualTimer struct {
	owner *Virtual
	at    time.Duration
	seq   uint64
	fn    func()
}

func (t *virtualTimer) Stop() bool {
	return t.owner.remove(t)
}
