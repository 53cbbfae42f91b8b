package signalloop

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by EventLoop and Thread operations.
var (
	// ErrLoopTerminated is returned by Post and the timer operations once
	// Quit has been called and the loop accepts no further work, and by the
	// Base/Timer helpers when no loop is registered for the target thread.
	ErrLoopTerminated = errors.New(`signalloop: event loop terminated`)

	// ErrLoopAlreadyRunning is returned by Run if the loop is already being
	// run by another goroutine.
	ErrLoopAlreadyRunning = errors.New(`signalloop: event loop already running`)

	// ErrReentrantRun is returned by Run if called from within the loop's
	// own goroutine (e.g. from a queued task), which would deadlock.
	ErrReentrantRun = errors.New(`signalloop: reentrant Run call`)

	// ErrSendToTerminatedLoop is returned by Send when the target loop has
	// already been told to Quit, so the task would never execute.
	ErrSendToTerminatedLoop = errors.New(`signalloop: Send target loop terminated before task ran`)
)

func wrapError(message string, cause error) error {
	if cause == nil {
		return errors.New(message)
	}
	return fmt.Errorf(`%s: %w`, message, cause)
}
