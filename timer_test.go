package signalloop

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimer_RepeatingThenStop(t *testing.T) {
	ResetRegistryForTesting()
	defer ResetRegistryForTesting()

	tid := ThreadID(100)
	loop := newEventLoop(tid)
	RegisterLoop(tid, loop)
	go func() { _ = loop.Run() }()
	defer loop.Quit()

	timer := NewTimer(tid)
	var ticks atomic.Int32
	Connect0(&timer.Base, timer.Timeout(), &timer.Base, func() { ticks.Add(1) }, Direct)

	require.NoError(t, timer.Start(5*time.Millisecond))
	require.True(t, timer.IsAlive())

	pollUntil(t, time.Second, func() bool { return ticks.Load() >= 10 })

	timer.Stop()
	require.False(t, timer.IsAlive())

	observed := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, observed, ticks.Load(), `no ticks after Stop`)
}

func TestTimer_StartTwiceIsNoOp(t *testing.T) {
	ResetRegistryForTesting()
	defer ResetRegistryForTesting()

	tid := ThreadID(101)
	loop := newEventLoop(tid)
	RegisterLoop(tid, loop)
	go func() { _ = loop.Run() }()
	defer loop.Quit()

	timer := NewTimer(tid)
	require.NoError(t, timer.Start(5*time.Millisecond))
	require.NoError(t, timer.Start(time.Hour), `second Start call must be a no-op, not replace the running timer`)
	require.True(t, timer.IsAlive())
}

func TestTimer_StopIdempotent(t *testing.T) {
	tid := ThreadID(102)
	timer := NewTimer(tid)
	require.NotPanics(t, timer.Stop)
	require.NotPanics(t, timer.Stop)
}

func TestSingleShot_NoLoopReturnsErr(t *testing.T) {
	ResetRegistryForTesting()
	defer ResetRegistryForTesting()
	err := SingleShot(ThreadID(999), time.Millisecond, func() {})
	require.ErrorIs(t, err, ErrLoopTerminated)
}

func TestSingleShot_Fires(t *testing.T) {
	ResetRegistryForTesting()
	defer ResetRegistryForTesting()

	tid := ThreadID(103)
	loop := newEventLoop(tid)
	RegisterLoop(tid, loop)
	go func() { _ = loop.Run() }()
	defer loop.Quit()

	var fired atomic.Bool
	require.NoError(t, SingleShot(tid, 5*time.Millisecond, func() { fired.Store(true) }))
	pollUntil(t, time.Second, fired.Load)
}
