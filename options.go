package signalloop

// loopOptions holds configuration applied when constructing an EventLoop.
type loopOptions struct {
	logger         Logger
	wake           func() wakeSource
	timerQueueHint int
	metricsEnabled bool
}

// LoopOption configures an EventLoop or Thread at construction time.
type LoopOption interface {
	applyLoop(*loopOptions)
}

type loopOptionFunc func(*loopOptions)

func (f loopOptionFunc) applyLoop(o *loopOptions) { f(o) }

// WithLogger attaches a Logger that receives diagnostics for the loop
// being constructed. The default is a no-op logger.
func WithLogger(l Logger) LoopOption {
	return loopOptionFunc(func(o *loopOptions) {
		if l != nil {
			o.logger = l
		}
	})
}

// withWakeSource overrides the wakeSource constructor used by the loop.
// The default is a portable channel-backed implementation; on Linux,
// WithFDWakeSource uses it to select the eventfd-backed alternative.
func withWakeSource(f func() wakeSource) LoopOption {
	return loopOptionFunc(func(o *loopOptions) {
		if f != nil {
			o.wake = f
		}
	})
}

// WithTimerQueueHint pre-sizes the loop's timer heap, avoiding reallocation
// for callers that know roughly how many timers they'll register.
func WithTimerQueueHint(n int) LoopOption {
	return loopOptionFunc(func(o *loopOptions) {
		if n > 0 {
			o.timerQueueHint = n
		}
	})
}

func resolveLoopOptions(opts []LoopOption) *loopOptions {
	cfg := &loopOptions{
		logger: noopLogger{},
		wake:   func() wakeSource { return newChanWakeSource() },
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyLoop(cfg)
	}
	return cfg
}
