package signalloop

import (
	"container/heap"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// task is a closure queued for execution on an EventLoop, optionally paired
// with a channel the Send caller blocks on until it has run.
type task struct {
	fn   func()
	done chan struct{}
}

// scheduledTimer is one entry in the loop's timer heap.
type scheduledTimer struct {
	when     time.Time
	id       uint64
	interval time.Duration // zero for single-shot
	task     func()
	index    int // heap.Interface bookkeeping
	killed   bool
}

type timerHeap []*scheduledTimer

func (h timerHeap) Len() int            { return len(h) }
func (h timerHeap) Less(i, j int) bool  { return h[i].when.Before(h[j].when) }
func (h timerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *timerHeap) Push(x any) {
	t := x.(*scheduledTimer)
	t.index = len(*h)
	*h = append(*h, t)
}
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// EventLoop is a FIFO task queue and timer heap bound to exactly one
// goroutine — this package's stand-in for an OS thread (spec §4.B).
// Post and Send are safe to call from any goroutine; Run must only be
// called by the loop's owning goroutine.
type EventLoop struct {
	id ThreadID

	mu    sync.Mutex
	queue []task

	timerMu    sync.Mutex
	timers     timerHeap
	timerIDSeq uint64

	wake  wakeSource
	state *fastState

	logger  Logger
	metrics *loopMetrics

	runnerSet atomic.Bool
	runnerID  atomic.Uint64
}

// newEventLoop constructs an EventLoop for id, applying opts. It does not
// register the loop; callers (normally Thread) do that.
func newEventLoop(id ThreadID, opts ...LoopOption) *EventLoop {
	cfg := resolveLoopOptions(opts)
	l := &EventLoop{
		id:     id,
		wake:   cfg.wake(),
		state:  newFastState(stateCreated),
		logger: cfg.logger,
	}
	if cfg.metricsEnabled {
		l.metrics = newLoopMetrics()
	}
	if cfg.timerQueueHint > 0 {
		l.timers = make(timerHeap, 0, cfg.timerQueueHint)
	}
	return l
}

// ThreadID returns the thread identifier this loop is bound to.
func (l *EventLoop) ThreadID() ThreadID { return l.id }

// Post enqueues task for asynchronous execution on the loop's thread and
// returns immediately. Safe from any goroutine. Returns ErrLoopTerminated
// once Quit has been called.
func (l *EventLoop) Post(fn func()) error {
	return l.enqueue(fn, nil)
}

// Send enqueues task and blocks the calling goroutine until it has run on
// the loop's thread. Calling Send from the loop's own goroutine executes
// fn inline instead, per spec §4.B ("defined as inline execution to avoid
// self-deadlock"). Returns ErrSendToTerminatedLoop if Quit has already been
// called; a task that was enqueued before Quit still runs during the drain.
func (l *EventLoop) Send(fn func()) error {
	if l.isLoopGoroutine() {
		fn()
		return nil
	}
	done := make(chan struct{})
	if err := l.enqueue(fn, done); err != nil {
		return err
	}
	<-done
	return nil
}

func (l *EventLoop) enqueue(fn func(), done chan struct{}) error {
	if l.state.IsTerminal() {
		if done != nil {
			return ErrSendToTerminatedLoop
		}
		return ErrLoopTerminated
	}
	l.mu.Lock()
	if l.state.IsTerminal() {
		l.mu.Unlock()
		if done != nil {
			return ErrSendToTerminatedLoop
		}
		return ErrLoopTerminated
	}
	l.queue = append(l.queue, task{fn: fn, done: done})
	depth := len(l.queue)
	l.mu.Unlock()
	l.metrics.recordQueueDepth(depth)
	l.wake.Wake()
	return nil
}

// SetSingleShotTimer schedules task to run once, on the loop's thread,
// after interval. An interval of zero is equivalent to Post(task).
func (l *EventLoop) SetSingleShotTimer(interval time.Duration, fn func()) error {
	if interval <= 0 {
		return l.Post(fn)
	}
	return l.scheduleTimer(interval, 0, fn)
}

// SetRepeatTimer schedules task to run every interval on the loop's thread
// until KillTimer is called with the returned id.
func (l *EventLoop) SetRepeatTimer(interval time.Duration, fn func()) (uint64, error) {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return l.scheduleTimerID(interval, interval, fn)
}

func (l *EventLoop) scheduleTimer(interval, repeat time.Duration, fn func()) error {
	_, err := l.scheduleTimerID(interval, repeat, fn)
	return err
}

func (l *EventLoop) scheduleTimerID(interval, repeat time.Duration, fn func()) (uint64, error) {
	if l.state.IsTerminal() {
		return 0, ErrLoopTerminated
	}
	l.timerMu.Lock()
	l.timerIDSeq++
	id := l.timerIDSeq
	t := &scheduledTimer{
		when:     time.Now().Add(interval),
		id:       id,
		interval: repeat,
		task:     fn,
	}
	heap.Push(&l.timers, t)
	l.timerMu.Unlock()
	l.wake.Wake()
	return id, nil
}

// KillTimer asynchronously cancels the repeating timer identified by id.
// If a callback for that timer is already in flight, it completes; no
// subsequent callback fires.
func (l *EventLoop) KillTimer(id uint64) {
	l.timerMu.Lock()
	defer l.timerMu.Unlock()
	for _, t := range l.timers {
		if t.id == id {
			t.killed = true
			return
		}
	}
}

// Run blocks the calling goroutine, processing posted tasks and timer
// firings until Quit is observed. Returns ErrLoopAlreadyRunning if another
// goroutine is already running this loop, or ErrReentrantRun if the calling
// goroutine is this loop's own (e.g. a posted task called Run again), which
// would otherwise deadlock the loop against itself.
func (l *EventLoop) Run() error {
	if l.state.Load() == stateTerminated {
		return ErrLoopTerminated
	}
	if !l.state.TryTransition(stateCreated, stateRunning) {
		if l.isLoopGoroutine() {
			return ErrReentrantRun
		}
		return ErrLoopAlreadyRunning
	}
	l.runnerID.Store(goroutineID())
	l.runnerSet.Store(true)
	l.logf(LevelDebug, `loop running`)

	for {
		if l.state.Load() == stateTerminating {
			l.drain()
			l.state.Store(stateTerminated)
			l.logf(LevelDebug, `loop terminated`)
			return nil
		}

		l.runTimers()
		drained := l.drainQueue()
		for _, t := range drained {
			l.safeExecute(t)
		}

		if len(drained) == 0 && !l.hasExpiredTimer() {
			if l.state.Load() == stateTerminating {
				continue
			}
			wait := l.nextTimerDelay()
			if wait > 0 {
				l.waitWithTimeout(wait)
			} else {
				l.wake.Wait()
			}
		}
	}
}

// waitWithTimeout blocks on the wake source for at most d, by arranging a
// synthetic wake if no real one arrives first. This avoids racing a
// goroutine against the loop's own Wait call over the same wakeSource.
func (l *EventLoop) waitWithTimeout(d time.Duration) {
	timer := time.AfterFunc(d, l.wake.Wake)
	l.wake.Wait()
	timer.Stop()
}

func (l *EventLoop) hasExpiredTimer() bool {
	l.timerMu.Lock()
	defer l.timerMu.Unlock()
	return len(l.timers) > 0 && !l.timers[0].when.After(time.Now())
}

func (l *EventLoop) nextTimerDelay() time.Duration {
	l.timerMu.Lock()
	defer l.timerMu.Unlock()
	if len(l.timers) == 0 {
		return 0
	}
	d := time.Until(l.timers[0].when)
	if d < 0 {
		return 0
	}
	return d
}

func (l *EventLoop) runTimers() {
	now := time.Now()
	for {
		l.timerMu.Lock()
		if len(l.timers) == 0 || l.timers[0].when.After(now) {
			l.timerMu.Unlock()
			return
		}
		t := heap.Pop(&l.timers).(*scheduledTimer)
		killed := t.killed
		if !killed && t.interval > 0 {
			t.when = now.Add(t.interval)
			heap.Push(&l.timers, t)
		}
		l.timerMu.Unlock()
		if !killed {
			l.invoke(t.task)
		}
	}
}

func (l *EventLoop) drainQueue() []task {
	l.mu.Lock()
	if len(l.queue) == 0 {
		l.mu.Unlock()
		return nil
	}
	drained := l.queue
	l.queue = nil
	l.mu.Unlock()
	return drained
}

func (l *EventLoop) drain() {
	for {
		drained := l.drainQueue()
		if len(drained) == 0 {
			return
		}
		for _, t := range drained {
			l.safeExecute(t)
		}
	}
}

func (l *EventLoop) safeExecute(t task) {
	defer func() {
		if t.done != nil {
			close(t.done)
		}
	}()
	l.invoke(t.fn)
}

func (l *EventLoop) invoke(fn func()) {
	if fn == nil {
		return
	}
	if l.metrics == nil {
		fn()
		return
	}
	start := time.Now()
	fn()
	l.metrics.recordTask(time.Since(start))
}

func (l *EventLoop) logf(level LogLevel, msg string) {
	if l.logger == nil || !l.logger.IsEnabled(level) {
		return
	}
	l.logger.Log(LogEntry{Level: level, Category: `loop`, ThreadID: l.id, Message: msg})
}

// isLoopGoroutine reports whether the calling goroutine is the one running
// Run for this loop.
func (l *EventLoop) isLoopGoroutine() bool {
	if !l.runnerSet.Load() {
		return false
	}
	return goroutineID() == l.runnerID.Load()
}

// goroutineID extracts the current goroutine's numeric id from the
// "goroutine N [...]" prefix runtime.Stack writes, the same parsing the
// teacher's loop uses to compare the calling goroutine against its own.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len(`goroutine `); i < n; i++ {
		if buf[i] >= '0' && buf[i] <= '9' {
			id = id*10 + uint64(buf[i]-'0')
		} else {
			break
		}
	}
	return id
}

// Quit causes a running Run to return after draining any already-dispatched
// callback. Safe from any goroutine.
func (l *EventLoop) Quit() {
	l.state.TryTransition(stateRunning, stateTerminating)
	l.state.TryTransition(stateCreated, stateTerminated)
	l.wake.Wake()
}
