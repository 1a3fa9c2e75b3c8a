// Package debounce coalesces bursts of calls into the last one.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays fn until no Call has arrived for the window. Each Call
// takes a new ticket and re-arms the timer; when the timer fires, fn runs
// only if its ticket is still the latest, so superseded calls never run.
type Debouncer[T any] struct {
	window time.Duration
	fn     func(T)

	mu      sync.Mutex
	ticket  uint64
	timer   *time.Timer
	pending bool
	value   T
	stopped bool
}

// New returns a debouncer calling fn with the most recent value once the
// window has passed without another call.
func New[T any](window time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{window: window, fn: fn}
}

// Call records v as the latest value and restarts the window.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.ticket++
	d.value = v
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	ticket := d.ticket
	d.timer = time.AfterFunc(d.window, func() { d.fire(ticket) })
}

// Flush runs the pending call now, if any. It reports whether one ran.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	v, ok := d.take()
	d.mu.Unlock()

	if ok {
		d.fn(v)
	}
	return ok
}

// Cancel drops the pending call without running it.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.take()
}

// Stop cancels the pending call and makes later Calls no-ops.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	d.Cancel()
}

// Pending reports whether a call is waiting for its window to pass.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer[T]) fire(ticket uint64) {
	d.mu.Lock()
	if ticket != d.ticket {
		d.mu.Unlock()
		return
	}
	v, ok := d.take()
	d.mu.Unlock()

	if ok {
		d.fn(v)
	}
}

// take clears the pending call and invalidates any armed timer's ticket.
// d.mu must be held.
func (d *Debouncer[T]) take() (T, bool) {
	var zero T
	if !d.pending {
		return zero, false
	}
	v := d.value
	d.value = zero
	d.pending = false
	d.ticket++
	return v, true
}
