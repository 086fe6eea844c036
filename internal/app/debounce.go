package app

import (
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
)

// Debouncer runs the latest triggered func once no new trigger arrived for delay.
// A func that already started is not interrupted.
type Debouncer struct {
	clock clock.Clock
	delay time.Duration

	mu    sync.Mutex
	gen   uint64
	timer clock.Timer
	stop  chan struct{}
}

// NewDebouncer creates a debouncer. A delay <= 0 runs triggered funcs immediately.
func NewDebouncer(clk clock.Clock, delay time.Duration) *Debouncer {
	if clk == nil {
		clk = clock.NewClock()
	}
	return &Debouncer{clock: clk, delay: delay}
}

// Trigger schedules fn, replacing any pending func
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	d.cancelLocked()

	if d.delay <= 0 {
		d.mu.Unlock()
		fn()
		return
	}

	gen := d.gen
	timer := d.clock.NewTimer(d.delay)
	stop := make(chan struct{})
	d.timer = timer
	d.stop = stop
	d.mu.Unlock()

	go func() {
		select {
		case <-timer.C():
			d.mu.Lock()
			current := d.gen == gen
			if current {
				d.timer = nil
				d.stop = nil
			}
			d.mu.Unlock()

			if current {
				fn()
			}
		case <-stop:
		}
	}()
}

// Cancel drops the pending func, if any
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	d.cancelLocked()
	d.mu.Unlock()
}

func (d *Debouncer) cancelLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
}
