// Package debounce settles a stream of input values.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period used for search input.
const DefaultDelay = 250 * time.Millisecond

// Debouncer emits the last pushed value once no new value has arrived for
// the configured delay.
type Debouncer struct {
	delay  time.Duration
	emit   func(string)
	submit func(string)

	// emitMu serialises emissions so a timer that already fired can never
	// deliver its value after a later Submit.
	emitMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
	stopped bool
}

// New creates a Debouncer delivering settled and submitted values to emit.
// emit must not call Stop.
func New(delay time.Duration, emit func(string)) *Debouncer {
	return NewWithSubmit(delay, emit, emit)
}

// NewWithSubmit creates a Debouncer that delivers settled values to emit and
// values passed to Submit to submit. Neither callback may call Stop.
func NewWithSubmit(delay time.Duration, emit, submit func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if submit == nil {
		submit = emit
	}
	return &Debouncer{delay: delay, emit: emit, submit: submit}
}

// Push records a raw value and restarts the quiet period. The previously
// pushed value is discarded.
func (d *Debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopTimerLocked()
	d.pending = true
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen, value)
	})
}

// Submit delivers value to the submit callback immediately, dropping any
// pending value.
func (d *Debouncer) Submit(value string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopTimerLocked()
	d.pending = false
	d.mu.Unlock()

	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	// Stop may have run between releasing mu and taking emitMu.
	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()
	if stopped {
		return
	}
	d.submit(value)
}

// Pending reports whether a value is waiting for the quiet period to end.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop drops any pending value. Once Stop returns nothing is emitted again.
func (d *Debouncer) Stop() {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopTimerLocked()
	d.pending = false
	d.stopped = true
}

func (d *Debouncer) fire(gen uint64, value string) {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.pending = false
	d.mu.Unlock()

	d.emit(value)
}

// stopTimerLocked invalidates the current timer, including one that has
// already fired and is waiting for the lock.
func (d *Debouncer) stopTimerLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
