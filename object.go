package signalloop

import (
	"sync"
	"sync/atomic"
)

// Base is the capability struct spec §9 calls for in languages without
// inheritance ("model this as a capability interface {thread_id(),
// weak_flag(), add_sender(), add_receiver(), …}"). Embed it by value in any
// type that emits or receives signals; it supplies thread affinity and the
// bidirectional sender/receiver bookkeeping that lets destruction revoke
// every connection touching the object (spec §3, §4.F).
type Base struct {
	token    uint64
	threadID atomic.Uint64

	mu        sync.RWMutex
	senders   map[Address]map[uint64]func()
	receivers map[Address]func()
}

// NewBase constructs a Base whose initial home thread is tid.
func NewBase(tid ThreadID) Base {
	b := Base{
		token:     nextObjectToken(),
		senders:   make(map[Address]map[uint64]func()),
		receivers: make(map[Address]func()),
	}
	b.threadID.Store(uint64(tid))
	return b
}

// ThreadID returns the object's current home thread.
func (b *Base) ThreadID() ThreadID { return ThreadID(b.threadID.Load()) }

// MoveToThread atomically sets the object's home thread. Per spec §4.F,
// callers must ensure no emit to this receiver is in flight; the design
// does not interlock against re-entry.
func (b *Base) MoveToThread(tid ThreadID) { b.threadID.Store(uint64(tid)) }

// InvokeMethod runs task on the object's home thread according to kind
// (spec §4.F): Direct runs inline; Auto runs inline if the calling
// goroutine is already the home loop's goroutine, else posts; Queued
// posts; BlockingQueued sends.
func (b *Base) InvokeMethod(task func(), kind ConnectionKind) error {
	tid := b.ThreadID()
	switch kind {
	case Direct:
		task()
		return nil
	case Auto:
		if loop := LookupLoop(tid); loop != nil && loop.isLoopGoroutine() {
			task()
			return nil
		}
		return postToThread(tid, task)
	case BlockingQueued:
		return sendToThread(tid, task)
	default: // Queued
		return postToThread(tid, task)
	}
}

func postToThread(tid ThreadID, task func()) error {
	loop := LookupLoop(tid)
	if loop == nil {
		return ErrLoopTerminated
	}
	return loop.Post(task)
}

func sendToThread(tid ThreadID, task func()) error {
	loop := LookupLoop(tid)
	if loop == nil {
		return ErrLoopTerminated
	}
	return loop.Send(task)
}

func (b *Base) ensureMaps() {
	b.mu.Lock()
	if b.senders == nil {
		b.senders = make(map[Address]map[uint64]func())
	}
	if b.receivers == nil {
		b.receivers = make(map[Address]func())
	}
	b.mu.Unlock()
}

func (b *Base) addSenderEntry(signalAddr Address, slotFn uint64, cleanup func()) {
	b.ensureMaps()
	b.mu.Lock()
	defer b.mu.Unlock()
	m := b.senders[signalAddr]
	if m == nil {
		m = make(map[uint64]func())
		b.senders[signalAddr] = m
	}
	m[slotFn] = cleanup
}

func (b *Base) removeSenderEntry(signalAddr Address, slotFn uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m := b.senders[signalAddr]; m != nil {
		delete(m, slotFn)
		if len(m) == 0 {
			delete(b.senders, signalAddr)
		}
	}
}

func (b *Base) addReceiverEntry(receiverAddr Address, cleanup func()) {
	b.ensureMaps()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.receivers[receiverAddr] = cleanup
}

func (b *Base) removeReceiverEntry(receiverAddr Address) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.receivers, receiverAddr)
}

// DisconnectAll snapshots both inverse indices under a shared lock, then
// invokes every stored cleanup closure outside the lock (spec §4.F): each
// closure removes the matching Handler on the other side plus the
// complementary inverse entry, so a concurrent Emit either observes the
// handler and runs it to completion, or doesn't see it at all — never a
// half-torn-down state (resolving the §9 open question on DisconnectAll
// racing a concurrent Emit).
func (b *Base) DisconnectAll() {
	b.mu.RLock()
	cleanups := make([]func(), 0, len(b.receivers))
	for _, fn := range b.receivers {
		cleanups = append(cleanups, fn)
	}
	for _, m := range b.senders {
		for _, fn := range m {
			cleanups = append(cleanups, fn)
		}
	}
	b.mu.RUnlock()

	for _, fn := range cleanups {
		fn()
	}

	b.mu.Lock()
	b.senders = make(map[Address]map[uint64]func())
	b.receivers = make(map[Address]func())
	b.mu.Unlock()
}

// DeleteLater disconnects every connection touching this object, then
// destroys it: if a loop is registered for the object's home thread,
// destroy is posted there; otherwise it runs synchronously. destroy is the
// caller-supplied teardown (Go has no destructors) — typically it marks
// the object dead and releases any resources it owns.
func (b *Base) DeleteLater(destroy func()) {
	b.DisconnectAll()
	tid := b.ThreadID()
	if loop := LookupLoop(tid); loop != nil {
		_ = loop.Post(destroy)
		return
	}
	destroy()
}
