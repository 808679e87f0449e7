// Package debounce provides a single-slot timer: scheduling replaces any
// callback that has not fired yet.
package debounce

import (
	"sync"
	"time"
)

// Timer runs at most one pending callback after a quiet period.
type Timer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// New creates a Timer with the given quiet period.
func New(delay time.Duration) *Timer {
	return &Timer{delay: delay}
}

// Delay returns the quiet period.
func (t *Timer) Delay() time.Duration {
	return t.delay
}

// Schedule cancels any pending callback and arms fn to run after the delay.
// It is a no-op after Stop.
func (t *Timer) Schedule(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.cancelLocked()
	t.gen++
	gen := t.gen
	t.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		// A Cancel or Schedule that raced the firing bumped gen.
		if gen != t.gen || t.stopped {
			t.mu.Unlock()
			return
		}
		t.timer = nil
		t.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending callback, reporting whether one was pending.
func (t *Timer) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelLocked()
}

// Pending reports whether a callback is waiting to fire.
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Stop cancels the pending callback and refuses future schedules.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.stopped = true
}

func (t *Timer) cancelLocked() bool {
	if t.timer == nil {
		return false
	}
	t.timer.Stop()
	t.timer = nil
	t.gen++
	return true
}
