package signalloop

import (
	"strconv"
	"sync"
	"time"

	"github.com/joeycumines/go-signalloop/internal/ratelimit"
)

var skipLogLimiter = ratelimit.New(time.Second, 5)

// signalCore is the non-generic dispatch machinery shared by Signal0..3.
// Go has no variadic generics, so Signal<Args…> becomes a bounded family
// (spec §9's "type-erased handler with arity adaptation" note) built over
// this single core, mirroring how the teacher's EventTarget centralizes
// dispatch behind one non-generic struct regardless of listener signature.
type signalCore struct {
	mu       sync.RWMutex
	handlers map[Address]*handler
	order    []Address
}

func newSignalCore() *signalCore {
	return &signalCore{handlers: make(map[Address]*handler)}
}

// AddHandler inserts h if its address is not already present (spec §4.D).
// Returns false if addr was already connected (a no-op, per §7 error kind 4
// and §8 property 3).
func (c *signalCore) AddHandler(h *handler) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.handlers[h.addr]; ok {
		return false
	}
	c.handlers[h.addr] = h
	c.order = append(c.order, h.addr)
	return true
}

// RemoveHandler erases the handler at addr, if present. Idempotent.
func (c *signalCore) RemoveHandler(addr Address) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.handlers[addr]; !ok {
		return false
	}
	delete(c.handlers, addr)
	for i, a := range c.order {
		if a == addr {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether addr currently has a handler installed.
func (c *signalCore) Has(addr Address) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.handlers[addr]
	return ok
}

// emit iterates handlers in insertion order under a shared lock and
// dispatches each by kind, per the table in spec §4.D. The lock is held
// across the entire dispatch, including Direct invocation, matching spec
// §5 ("Handler invocation happens under shared lock" — handlers must not
// synchronously mutate this Signal's own subscription set, which is why
// AddHandler/RemoveHandler take the exclusive side of the same RWMutex).
//
// emitterTID is resolved via currentThreadID — the thread actually
// executing this call, per spec §4.D's "emitter's thread" — not any
// sender object's home thread, which may differ from whoever is actually
// calling Emit.
func (c *signalCore) emit(args []any) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	emitterTID := currentThreadID()
	for _, addr := range c.order {
		h := c.handlers[addr]
		if h == nil {
			continue
		}
		dispatch(h, emitterTID, args)
	}
}

func dispatch(h *handler, emitterTID ThreadID, args []any) {
	switch h.kind {
	case Direct:
		h.invoke(args)
	case Queued:
		postToReceiver(h, emitterTID, args)
	case BlockingQueued:
		if h.threadID == emitterTID {
			h.invoke(args)
			return
		}
		sendToReceiver(h, emitterTID, args)
	case Auto:
		if h.threadID == emitterTID {
			h.invoke(args)
			return
		}
		postToReceiver(h, emitterTID, args)
	}
}

func postToReceiver(h *handler, emitterTID ThreadID, args []any) {
	loop := LookupLoop(h.threadID)
	if loop == nil {
		logSkip(h, emitterTID)
		return
	}
	_ = loop.Post(func() { h.invoke(args) })
}

func sendToReceiver(h *handler, emitterTID ThreadID, args []any) {
	loop := LookupLoop(h.threadID)
	if loop == nil {
		logSkip(h, emitterTID)
		return
	}
	_ = loop.Send(func() { h.invoke(args) })
}

// logSkip rate-limits the "no loop registered" diagnostic per emitting
// thread, so one noisy emitter can't starve the log budget for others.
func logSkip(h *handler, emitterTID ThreadID) {
	if !skipLogLimiter.Allow(`no-loop-registered:` + strconv.FormatUint(uint64(emitterTID), 10)) {
		return
	}
	getLogger().Log(LogEntry{
		Level:    LevelWarn,
		Category: `signal`,
		ThreadID: h.threadID,
		Message:  `handler skipped: no loop registered for receiver thread`,
	})
}

// Signal0 is a parameterless typed multicast emission point (spec §3, §4.D).
type Signal0 struct{ core *signalCore }

// NewSignal0 constructs a ready-to-use Signal0. A zero-value Signal0 is
// also valid; this constructor exists for symmetry with the Connect family
// and to let callers avoid the lazy ensure() path on the first Emit/Connect.
func NewSignal0() *Signal0 { return &Signal0{core: newSignalCore()} }

func (s *Signal0) ensure() *signalCore {
	if s.core == nil {
		s.core = newSignalCore()
	}
	return s.core
}

// Emit invokes every connected handler per its connection kind.
func (s *Signal0) Emit() { s.ensure().emit(nil) }

// Signal1 is a single-argument typed multicast emission point.
type Signal1[A any] struct{ core *signalCore }

func NewSignal1[A any]() *Signal1[A] { return &Signal1[A]{core: newSignalCore()} }

func (s *Signal1[A]) ensure() *signalCore {
	if s.core == nil {
		s.core = newSignalCore()
	}
	return s.core
}

func (s *Signal1[A]) Emit(a A) { s.ensure().emit([]any{a}) }

// Signal2 is a two-argument typed multicast emission point.
type Signal2[A, B any] struct{ core *signalCore }

func NewSignal2[A, B any]() *Signal2[A, B] {
	return &Signal2[A, B]{core: newSignalCore()}
}

func (s *Signal2[A, B]) ensure() *signalCore {
	if s.core == nil {
		s.core = newSignalCore()
	}
	return s.core
}

func (s *Signal2[A, B]) Emit(a A, b B) { s.ensure().emit([]any{a, b}) }

// Signal3 is a three-argument typed multicast emission point.
type Signal3[A, B, C any] struct{ core *signalCore }

func NewSignal3[A, B, C any]() *Signal3[A, B, C] {
	return &Signal3[A, B, C]{core: newSignalCore()}
}

func (s *Signal3[A, B, C]) ensure() *signalCore {
	if s.core == nil {
		s.core = newSignalCore()
	}
	return s.core
}

func (s *Signal3[A, B, C]) Emit(a A, b B, c C) { s.ensure().emit([]any{a, b, c}) }
