package signalloop

import (
	"sync"
	"time"
)

// Timer is an Object wrapping single-shot and repeating timers on its home
// EventLoop, emitting a parameterless timeout signal (spec §4.G).
type Timer struct {
	Base
	timeout Signal0

	mu      sync.Mutex
	timerID uint64
	alive   bool
}

// NewTimer constructs a Timer whose home thread is tid. Start and StartFunc
// return ErrLoopTerminated unless a loop is registered for tid.
func NewTimer(tid ThreadID) *Timer {
	t := &Timer{Base: NewBase(tid)}
	t.timeout = *NewSignal0()
	return t
}

// Timeout returns the timer's timeout signal, emitted on every firing.
func (t *Timer) Timeout() *Signal0 { return &t.timeout }

// Start registers a repeating timer whose callback emits Timeout, on the
// loop registered for the timer's home thread; the loop of the goroutine
// calling Start is not consulted. A no-op if the timer is already alive.
func (t *Timer) Start(interval time.Duration) error {
	return t.StartFunc(interval, func() { t.timeout.Emit() })
}

// StartFunc registers a repeating timer whose callback is task directly,
// bypassing Timeout. A no-op if the timer is already alive.
func (t *Timer) StartFunc(interval time.Duration, task func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.alive {
		return nil
	}
	loop := LookupLoop(t.ThreadID())
	if loop == nil {
		return ErrLoopTerminated
	}
	id, err := loop.SetRepeatTimer(interval, task)
	if err != nil {
		return err
	}
	t.timerID = id
	t.alive = true
	return nil
}

// Stop deregisters the timer via EventLoop.KillTimer. Idempotent.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.alive {
		return
	}
	if loop := LookupLoop(t.ThreadID()); loop != nil {
		loop.KillTimer(t.timerID)
	}
	t.alive = false
}

// IsAlive reports whether the timer currently has a live repeating
// registration.
func (t *Timer) IsAlive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.alive
}

// SingleShot schedules task to run once, after interval, on the loop
// registered for tid, not on the calling goroutine's loop. Returns
// ErrLoopTerminated if no loop is registered for tid.
func SingleShot(tid ThreadID, interval time.Duration, task func()) error {
	loop := LookupLoop(tid)
	if loop == nil {
		return ErrLoopTerminated
	}
	return loop.SetSingleShotTimer(interval, task)
}
