package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeAfterFuncFiresOnce(t *testing.T) {
	fc := NewFake(epoch)
	fired := 0
	fc.AfterFunc(100*time.Millisecond, func() { fired++ })

	fc.Advance(99 * time.Millisecond)
	require.Equal(t, 0, fired)

	fc.Advance(1 * time.Millisecond)
	require.Equal(t, 1, fired)

	fc.Advance(time.Second)
	require.Equal(t, 1, fired)
	require.Equal(t, 0, fc.Live())
	require.True(t, fc.Now().Equal(epoch.Add(1100*time.Millisecond)))
}

func TestFakeEveryRepeats(t *testing.T) {
	fc := NewFake(epoch)
	var seen []time.Duration
	fc.Every(50*time.Millisecond, func() {
		seen = append(seen, fc.Now().Sub(epoch))
	})

	fc.Advance(175 * time.Millisecond)
	require.Equal(t, []time.Duration{50 * time.Millisecond, 100 * time.Millisecond, 150 * time.Millisecond}, seen)
	require.Equal(t, 1, fc.Live())
}

func TestFakeStop(t *testing.T) {
	fc := NewFake(epoch)
	fired := false
	tm := fc.AfterFunc(time.Second, func() { fired = true })

	require.True(t, tm.Stop())
	require.False(t, tm.Stop(), "second stop reports nothing pending")

	fc.Advance(2 * time.Second)
	require.False(t, fired)
	require.Equal(t, 0, fc.Live())
}

func TestFakeSameDeadlineFiresInArmOrder(t *testing.T) {
	fc := NewFake(epoch)
	var order []string
	fc.Every(50*time.Millisecond, func() { order = append(order, "tick") })
	fc.AfterFunc(100*time.Millisecond, func() { order = append(order, "once") })

	fc.Advance(100 * time.Millisecond)
	require.Equal(t, []string{"tick", "tick", "once"}, order)
}

func TestFakeCallbackMayRearm(t *testing.T) {
	fc := NewFake(epoch)
	count := 0
	var rearm func()
	rearm = func() {
		count++
		if count < 3 {
			fc.AfterFunc(10*time.Millisecond, rearm)
		}
	}
	fc.AfterFunc(10*time.Millisecond, rearm)

	fc.Advance(time.Second)
	require.Equal(t, 3, count)
}

func TestFakeEventsLog(t *testing.T) {
	fc := NewFake(epoch)
	a := fc.AfterFunc(time.Second, func() {})
	fc.Every(time.Second, func() {})
	a.Stop()

	events := fc.Events()
	require.Len(t, events, 3)
	require.Equal(t, OpArm, events[0].Op)
	require.Equal(t, 1, events[0].Live)
	require.Equal(t, OpArm, events[1].Op)
	require.True(t, events[1].Period)
	require.Equal(t, 2, events[1].Live)
	require.Equal(t, OpStop, events[2].Op)
	require.Equal(t, 1, events[2].Live)

	fc.ResetEvents()
	require.Empty(t, fc.Events())
}

func TestRealAfterFunc(t *testing.T) {
	c := NewReal()
	done := make(chan struct{})
	c.AfterFunc(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestRealEveryStops(t *testing.T) {
	c := NewReal()
	var n atomic.Int32
	tk := c.Every(2*time.Millisecond, func() { n.Add(1) })

	require.Eventually(t, func() bool { return n.Load() >= 2 }, time.Second, time.Millisecond)
	require.True(t, tk.Stop())
	require.False(t, tk.Stop())

	// Allow an in-flight callback to drain, then verify no further calls
	time.Sleep(10 * time.Millisecond)
	after := n.Load()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, after, n.Load())
}
