package session

import (
	"sync"
	"time"
)

// ExpiryScheduler owns at most one pending expiry callback. Scheduling
// again replaces the pending callback, so any number of Schedule calls
// result in a single firing
type ExpiryScheduler struct {
	clock Clock

	mutex      sync.Mutex
	timer      Timer
	generation uint64
}

func NewExpiryScheduler(clock Clock) *ExpiryScheduler {
	if clock == nil {
		clock = SystemClock
	}
	return &ExpiryScheduler{clock: clock}
}

// Schedule arranges for `onExpire` to run at `expiresAt`, immediately
// if that instant has already passed. Any previously scheduled callback
// is cancelled
func (e *ExpiryScheduler) Schedule(expiresAt time.Time, onExpire func()) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.cancelLocked()

	generation := e.generation
	delay := expiresAt.Sub(e.clock.Now())
	if delay < 0 {
		delay = 0
	}
	e.timer = e.clock.AfterFunc(delay, func() {
		e.mutex.Lock()
		if generation != e.generation {
			// superseded after the timer had already fired
			e.mutex.Unlock()
			return
		}
		e.timer = nil
		e.generation++
		e.mutex.Unlock()
		onExpire()
	})
}

// Cancel discards the pending callback if there is one
func (e *ExpiryScheduler) Cancel() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.cancelLocked()
}

// Pending reports whether a callback is waiting to fire
func (e *ExpiryScheduler) Pending() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.timer != nil
}

func (e *ExpiryScheduler) cancelLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.generation++
}
