// Package scheduler owns the per-member deadline timers and the periodic
// reconciliation sweep.  Timers are plain in-process time.AfterFunc
// handles and do not survive a restart; the sweep is what guarantees
// forward progress when individual timers are lost.
package scheduler

import (
	"log"
	"sync"
	"time"
)

// DeadlineScheduler arms at most one deadline per key.  Arming a key that
// already has a timer replaces it; disarming a key with no timer, or one
// that has already fired, is a no-op.  Disarm is the only cancellation
// primitive the verification layer uses.
type DeadlineScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New returns a scheduler with no armed timers.
func New() *DeadlineScheduler {
	return &DeadlineScheduler{timers: make(map[string]*time.Timer)}
}

// Arm schedules fn to run at the given time on its own goroutine.  A
// deadline in the past fires immediately.  Any previously armed timer for
// the same key is stopped first, keeping the one-timer-per-key invariant.
func (s *DeadlineScheduler) Arm(key string, at time.Time, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.timers[key]; ok {
		old.Stop()
	}
	d := time.Until(at)
	if d < 0 {
		d = 0
	}
	s.timers[key] = time.AfterFunc(d, func() {
		// Drop the handle before running so a Disarm during fn is a no-op
		// rather than stopping a timer that no longer exists.
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()
		fn()
	})
}

// Disarm stops and forgets the timer for key.  Safe to call on an
// already-fired or never-armed key.
func (s *DeadlineScheduler) Disarm(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

// Armed reports whether a timer is currently armed for key.
func (s *DeadlineScheduler) Armed(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[key]
	return ok
}

// After runs fn once after the delay.  It is used for cleanup work
// (deleting confirmation channels) that needs no key and no cancellation.
func (s *DeadlineScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// RunSweep invokes sweep immediately and then on every tick until stop is
// closed.  It is started once from main and runs for the process lifetime.
func (s *DeadlineScheduler) RunSweep(interval time.Duration, stop <-chan struct{}, sweep func()) {
	log.Printf("sweep: running every %s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sweep()
		case <-stop:
			return
		}
	}
}
