package session

import (
	"sync"
	"time"
)

// DefaultCompressDebounce is the settle time for the compression preview:
// quality slider movement within this window collapses into one re-encode.
const DefaultCompressDebounce = 100 * time.Millisecond

// Debouncer coalesces rapid triggers into one trailing-edge call. Each
// Trigger resets the timer; only the last function fires. Safe for
// concurrent use.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
}

// NewDebouncer returns a debouncer with the given settle interval. A
// non-positive interval falls back to DefaultCompressDebounce.
func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultCompressDebounce
	}
	return &Debouncer{interval: interval}
}

// Trigger schedules fn after the settle interval, cancelling any previously
// scheduled call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
