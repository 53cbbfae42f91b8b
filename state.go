package signalloop

import "sync/atomic"

// loopState is the lifecycle of an EventLoop.
type loopState uint32

const (
	stateCreated loopState = iota
	stateRunning
	stateTerminating
	stateTerminated
)

func (s loopState) String() string {
	switch s {
	case stateCreated:
		return `created`
	case stateRunning:
		return `running`
	case stateTerminating:
		return `terminating`
	case stateTerminated:
		return `terminated`
	default:
		return `unknown`
	}
}

// fastState is a small atomic CAS state machine, used instead of a mutex to
// guard the handful of lifecycle transitions an EventLoop makes.
type fastState struct {
	v atomic.Uint32
}

func newFastState(initial loopState) *fastState {
	s := &fastState{}
	s.v.Store(uint32(initial))
	return s
}

func (s *fastState) Load() loopState {
	return loopState(s.v.Load())
}

func (s *fastState) Store(v loopState) {
	s.v.Store(uint32(v))
}

// TryTransition performs a compare-and-swap from `from` to `to`, returning
// whether it succeeded.
func (s *fastState) TryTransition(from, to loopState) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}

func (s *fastState) IsTerminal() bool {
	switch s.Load() {
	case stateTerminating, stateTerminated:
		return true
	default:
		return false
	}
}

func (s *fastState) CanAcceptWork() bool {
	switch s.Load() {
	case stateCreated, stateRunning:
		return true
	default:
		return false
	}
}
