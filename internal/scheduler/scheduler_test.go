package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestArmFiresOnce(t *testing.T) {
	s := New()
	var fired atomic.Int32
	done := make(chan struct{})
	s.Arm("m1", time.Now().Add(10*time.Millisecond), func() {
		fired.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
	require.Equal(t, int32(1), fired.Load())
	require.False(t, s.Armed("m1"), "fired timer must be forgotten")

	// Disarm after firing is a no-op.
	s.Disarm("m1")
}

func TestRearmReplacesTimer(t *testing.T) {
	s := New()
	var first atomic.Int32
	s.Arm("m1", time.Now().Add(time.Hour), func() { first.Add(1) })

	done := make(chan struct{})
	s.Arm("m1", time.Now().Add(10*time.Millisecond), func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("replacement timer never fired")
	}
	require.Equal(t, int32(0), first.Load(), "replaced timer must not fire")
}

func TestDisarmPreventsFire(t *testing.T) {
	s := New()
	var fired atomic.Int32
	s.Arm("m1", time.Now().Add(50*time.Millisecond), func() { fired.Add(1) })
	s.Disarm("m1")
	require.False(t, s.Armed("m1"))

	time.Sleep(150 * time.Millisecond)
	require.Equal(t, int32(0), fired.Load())

	// Disarming a key that was never armed is fine too.
	s.Disarm("unknown")
}

func TestPastDeadlineFiresImmediately(t *testing.T) {
	s := New()
	done := make(chan struct{})
	s.Arm("m1", time.Now().Add(-time.Minute), func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("past deadline did not fire")
	}
}

func TestRunSweepTicksUntilStopped(t *testing.T) {
	s := New()
	var ticks atomic.Int32
	stop := make(chan struct{})
	go s.RunSweep(20*time.Millisecond, stop, func() { ticks.Add(1) })

	time.Sleep(110 * time.Millisecond)
	close(stop)
	n := ticks.Load()
	require.GreaterOrEqual(t, n, int32(2))

	time.Sleep(60 * time.Millisecond)
	require.Equal(t, n, ticks.Load(), "sweep must stop after stop is closed")
}
