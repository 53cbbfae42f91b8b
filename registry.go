package signalloop

import "sync"

// ThreadID identifies a Thread's worker goroutine for the lifetime of that
// Thread. Go exposes no portable, comparable OS-thread handle and does not
// pin goroutines to OS threads by default; runtime.LockOSThread (used by
// Thread's worker body) pins the calling goroutine to the OS thread it
// starts on, which is what gives this counter-derived id stable meaning.
type ThreadID uint64

// registry is the process-wide EventLoopRegistry: a mutex-guarded mapping
// from ThreadID to the EventLoop bound to it. Unlike the teacher's
// registry.go (which tracks weak pointers to promises for GC-driven
// cleanup), an EventLoop's lifetime here is explicit — Thread registers on
// startup and unregisters on teardown — so a plain mutex+map suffices.
type registry struct {
	mu sync.RWMutex
	m  map[ThreadID]*EventLoop
}

var globalRegistry = &registry{
	m: make(map[ThreadID]*EventLoop),
}

// Register binds loop to id, replacing any previously registered loop for
// that id (registration is idempotent-by-last-writer per spec §4.A).
func (r *registry) Register(id ThreadID, loop *EventLoop) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[id] = loop
}

// Unregister removes any loop registered for id.
func (r *registry) Unregister(id ThreadID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
}

// Lookup returns the loop registered for id, or nil if none. Safe to call
// from any goroutine.
func (r *registry) Lookup(id ThreadID) *EventLoop {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.m[id]
}

// RegisterLoop binds loop to id in the process-wide EventLoopRegistry.
func RegisterLoop(id ThreadID, loop *EventLoop) {
	globalRegistry.Register(id, loop)
}

// UnregisterLoop removes the loop registered for id, if any.
func UnregisterLoop(id ThreadID) {
	globalRegistry.Unregister(id)
}

// LookupLoop returns the EventLoop registered for id, or nil.
func LookupLoop(id ThreadID) *EventLoop {
	return globalRegistry.Lookup(id)
}

// current returns the ThreadID of whichever registered loop the calling
// goroutine is running, or 0 if the caller isn't any registered loop's own
// goroutine. 0 is never assigned to a real Thread (threadIDSeq starts at 1),
// so it doubles as the no-loop sentinel.
func (r *registry) current() ThreadID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, loop := range r.m {
		if loop.isLoopGoroutine() {
			return id
		}
	}
	return 0
}

// currentThreadID resolves the calling goroutine's own ThreadID the same
// way Base.InvokeMethod resolves Auto dispatch: by finding the registered
// loop whose isLoopGoroutine reports true. This is "the emitting thread" per
// spec — the thread actually executing the call, not any object's home
// thread — so Signal dispatch must use it instead of an owner's affinity.
func currentThreadID() ThreadID {
	return globalRegistry.current()
}

// ResetRegistryForTesting clears the process-wide registry. Exported per
// the design note in spec §9 ("tests must either use a fresh process per
// test or provide a reset hook — prefer the latter"); production code
// should never call this.
func ResetRegistryForTesting() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.m = make(map[ThreadID]*EventLoop)
}
