// Package debounce coalesces bursts of events into one trailing call.
package debounce

import (
	"sync"
	"time"
)

// DefaultDuration is the quiescence window used when none is given.
const DefaultDuration = 200 * time.Millisecond

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules fn after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, fn func()) Timer

func realAfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Debouncer runs only the last callback passed to Trigger, once no new
// Trigger has arrived for the configured duration.
type Debouncer struct {
	duration  time.Duration
	afterFunc AfterFunc

	mu    sync.Mutex
	timer Timer
	seq   uint64
}

// New creates a Debouncer. A zero duration means DefaultDuration.
func New(d time.Duration) *Debouncer {
	return NewWithScheduler(d, nil)
}

// NewWithScheduler is New with a custom scheduling primitive, mostly for
// tests that drive time by hand. A nil af uses time.AfterFunc.
func NewWithScheduler(d time.Duration, af AfterFunc) *Debouncer {
	if d <= 0 {
		d = DefaultDuration
	}
	if af == nil {
		af = realAfterFunc
	}
	return &Debouncer{duration: d, afterFunc: af}
}

// Trigger cancels any pending callback and schedules fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.afterFunc(d.duration, func() {
		shouldRun := func() bool {
			d.mu.Lock()
			defer d.mu.Unlock()

			// Stop returns false once the timer has fired, so an older
			// callback can still get here. Only the latest one may run.
			if seq != d.seq {
				return false
			}
			d.timer = nil
			return true
		}()
		if !shouldRun {
			return
		}
		fn()
	})
}

// Cancel drops the pending callback, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a callback is scheduled and has not run yet.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Duration returns the quiescence window.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
