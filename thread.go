package signalloop

import (
	"runtime"
	"sync/atomic"
)

var threadIDSeq atomic.Uint64

// Thread spawns a worker goroutine whose body is an EventLoop (spec §4.C):
// runtime.LockOSThread pins the worker to the OS thread it starts on (the
// same primitive the teacher's loop.run() uses), giving the goroutine-
// derived identity checked by EventLoop.isLoopGoroutine stable meaning for
// the Thread's whole lifetime.
type Thread struct {
	id   ThreadID
	loop *EventLoop
	done chan struct{}
}

// NewThread spawns a worker goroutine, constructs an EventLoop for it,
// registers the pairing in the process-wide EventLoopRegistry, and spin-
// yields until that registration is observable — guaranteeing that when
// NewThread returns, the new loop is addressable by Thread.ID().
func NewThread(opts ...LoopOption) *Thread {
	id := ThreadID(threadIDSeq.Add(1))
	t := &Thread{id: id, done: make(chan struct{})}

	started := make(chan struct{})
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		loop := newEventLoop(id, opts...)
		t.loop = loop
		RegisterLoop(id, loop)
		close(started)

		_ = loop.Run()

		UnregisterLoop(id)
		close(t.done)
	}()

	<-started
	for LookupLoop(id) == nil {
		runtime.Gosched()
	}
	return t
}

// ID returns the ThreadID this Thread publishes in the EventLoopRegistry.
func (t *Thread) ID() ThreadID { return t.id }

// Loop returns the EventLoop bound to this Thread.
func (t *Thread) Loop() *EventLoop { return t.loop }

// Wait blocks until the worker goroutine's Run has returned (i.e. after
// Quit).
func (t *Thread) Wait() { <-t.done }
