// Package debounce coalesces rapid repeated triggers into one delayed
// execution. Each debounced concern (search input, filter sliders)
// owns its own Debouncer; sharing one across unrelated triggers would
// let them cancel each other.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recently submitted function once the trigger
// stream has been quiet for the configured wait. Earlier pending
// submissions are dropped (last-write-wins) and cannot be observed.
type Debouncer struct {
	wait time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Debouncer with the given quiet period.
func New(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Do schedules fn to run after the quiet period. A pending earlier
// schedule is cancelled first, so only the last submission within a
// burst executes, exactly once. fn runs on the timer goroutine.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, fn)
}

// Stop cancels any pending execution. The Debouncer stays usable.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
