package clock

import (
	"sync"
	"time"
)

// Op names a scheduling operation recorded by Fake
type Op string

const (
	OpArm  Op = "arm"
	OpStop Op = "stop"
	OpFire Op = "fire"
)

// Event is one entry of the Fake scheduling log
type Event struct {
	Op     Op
	ID     uint64
	Period bool          // true for Every timers
	Delay  time.Duration // requested delay or period
	Live   int           // pending timers right after the operation
	At     time.Time
}

// Fake is a manually advanced Clock for tests.
// Callbacks run synchronously on the goroutine calling Advance, never while
// the Fake's own lock is held, so they may schedule or stop other timers.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	nextID uint64
	timers []*fakeTimer
	events []Event

	// OnArm, when set, runs before a timer is registered. Tests use it to
	// inject scheduling faults.
	OnArm func(d time.Duration)
}

type fakeTimer struct {
	clock  *Fake
	id     uint64
	when   time.Time
	period time.Duration
	fn     func()
}

// NewFake creates a fake clock starting at start
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the simulated time
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// AfterFunc schedules fn once the clock has advanced by d
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	return f.arm(d, 0, fn)
}

// Every schedules fn every d
func (f *Fake) Every(d time.Duration, fn func()) Timer {
	return f.arm(d, d, fn)
}

func (f *Fake) arm(d, period time.Duration, fn func()) Timer {
	if f.OnArm != nil {
		f.OnArm(d)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	t := &fakeTimer{
		clock:  f,
		id:     f.nextID,
		when:   f.now.Add(d),
		period: period,
		fn:     fn,
	}
	f.timers = append(f.timers, t)
	f.record(OpArm, t, d)
	return t
}

// Advance moves the clock forward by d, firing every timer that comes due in
// deadline order. Timers sharing a deadline fire in the order they were armed.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()
		next := f.earliestLocked(target)
		if next == nil {
			f.now = target
			f.mu.Unlock()
			return
		}

		f.now = next.when
		if next.period > 0 {
			next.when = next.when.Add(next.period)
		} else {
			f.removeLocked(next)
		}
		f.record(OpFire, next, next.period)
		fn := next.fn
		f.mu.Unlock()

		fn()
	}
}

// Live returns the number of pending timers
func (f *Fake) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

// Events returns a copy of the scheduling log
func (f *Fake) Events() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}

// ResetEvents clears the scheduling log
func (f *Fake) ResetEvents() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = nil
}

func (f *Fake) earliestLocked(limit time.Time) *fakeTimer {
	var best *fakeTimer
	for _, t := range f.timers {
		if t.when.After(limit) {
			continue
		}
		if best == nil || t.when.Before(best.when) || (t.when.Equal(best.when) && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (f *Fake) removeLocked(t *fakeTimer) bool {
	for i, cand := range f.timers {
		if cand == t {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return true
		}
	}
	return false
}

func (f *Fake) record(op Op, t *fakeTimer, d time.Duration) {
	f.events = append(f.events, Event{
		Op:     op,
		ID:     t.id,
		Period: t.period > 0,
		Delay:  d,
		Live:   len(f.timers),
		At:     f.now,
	})
}

func (t *fakeTimer) Stop() bool {
	f := t.clock
	f.mu.Lock()
	defer f.mu.Unlock()
	removed := f.removeLocked(t)
	f.record(OpStop, t, t.period)
	return removed
}
