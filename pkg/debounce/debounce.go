package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid calls into a single invocation after a quiet
// period. Each Call restarts the timer; the last function passed wins.
// Stop cancels any pending invocation and is safe to call more than once.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// New creates a debouncer with the given quiet period.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Call schedules fn to run after the quiet period, cancelling any previously
// scheduled invocation. fn runs on the timer goroutine.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		// A Stop, Cancel or newer Call racing with the timer firing must
		// win. Stopping the timer is not enough once it has fired, so the
		// callback re-checks the generation under lock.
		d.mu.Lock()
		live := !d.stopped && gen == d.gen
		d.mu.Unlock()
		if live {
			fn()
		}
	})
}

// Cancel drops any pending invocation but leaves the debouncer usable. No
// function scheduled before Cancel will run after Cancel returns.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels any pending invocation and retires the debouncer. No function
// scheduled before Stop will run after Stop returns, and later Calls are
// ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
