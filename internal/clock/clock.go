// Package clock schedules callbacks against real or simulated time.
package clock

import (
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented a
	// future firing. Calling Stop more than once is safe.
	Stop() bool
}

// Clock provides the current time and callback scheduling
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	Every(d time.Duration, f func()) Timer
}

// Real is a Clock backed by the runtime timers
type Real struct{}

// NewReal creates a wall clock
func NewReal() Real {
	return Real{}
}

// Now returns the current time with monotonic clock reading
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f on its own goroutine once d has elapsed
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Every runs f every d until stopped. The first call happens no earlier than d.
func (Real) Every(d time.Duration, f func()) Timer {
	t := &realTicker{
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.loop(f)
	return t
}

type realTicker struct {
	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

func (t *realTicker) loop(f func()) {
	defer t.ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-t.ticker.C:
			// Stop may race with a pending tick
			select {
			case <-t.stop:
				return
			default:
			}
			f()
		}
	}
}

func (t *realTicker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		close(t.stop)
		stopped = true
	})
	return stopped
}
