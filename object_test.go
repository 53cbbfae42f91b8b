package signalloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBase_ThreadIDAndMoveToThread(t *testing.T) {
	b := NewBase(1)
	require.Equal(t, ThreadID(1), b.ThreadID())
	b.MoveToThread(2)
	require.Equal(t, ThreadID(2), b.ThreadID())
}

func TestBase_InvokeMethod_Direct(t *testing.T) {
	b := NewBase(1)
	var ran bool
	require.NoError(t, b.InvokeMethod(func() { ran = true }, Direct))
	require.True(t, ran)
}

func TestBase_InvokeMethod_QueuedNoLoopReturnsErr(t *testing.T) {
	ResetRegistryForTesting()
	defer ResetRegistryForTesting()

	b := NewBase(99)
	err := b.InvokeMethod(func() {}, Queued)
	require.ErrorIs(t, err, ErrLoopTerminated)
}

func TestBase_InvokeMethod_QueuedWithLoop(t *testing.T) {
	ResetRegistryForTesting()
	defer ResetRegistryForTesting()

	loop := newEventLoop(7)
	RegisterLoop(7, loop)
	go func() { _ = loop.Run() }()
	defer loop.Quit()

	b := NewBase(7)
	done := make(chan struct{})
	require.NoError(t, b.InvokeMethod(func() { close(done) }, Queued))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal(`queued InvokeMethod never ran`)
	}
}

func TestBase_DisconnectAll_RemovesAllConnections(t *testing.T) {
	sender := NewBase(1)
	receiver := NewBase(1)
	var sig Signal0

	called := false
	Connect0(&sender, &sig, &receiver, func() { called = true }, Direct)

	receiver.DisconnectAll()
	sig.Emit()
	require.False(t, called, `DisconnectAll on the receiver must remove its handler from the sender's signal`)
}

func TestBase_DisconnectAll_OnSenderRemovesReceiverEntry(t *testing.T) {
	sender := NewBase(1)
	receiver := NewBase(1)
	var sig Signal0

	called := false
	Connect0(&sender, &sig, &receiver, func() { called = true }, Direct)

	sender.DisconnectAll()
	sig.Emit()
	require.False(t, called)
}

func TestBase_DeleteLater_DisconnectsAndDestroys(t *testing.T) {
	ResetRegistryForTesting()
	defer ResetRegistryForTesting()

	sender := NewBase(1)
	receiver := NewBase(1)
	var sig Signal0
	called := false
	Connect0(&sender, &sig, &receiver, func() { called = true }, Direct)

	destroyed := make(chan struct{})
	receiver.DeleteLater(func() { close(destroyed) })

	select {
	case <-destroyed:
	case <-time.After(time.Second):
		t.Fatal(`destroy never ran (no loop registered should run it synchronously)`)
	}

	sig.Emit()
	require.False(t, called)
}
