package signalloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestThread_NewThreadRegistersAndRuns(t *testing.T) {
	ResetRegistryForTesting()
	defer ResetRegistryForTesting()

	th := NewThread()
	require.NotNil(t, th.Loop())
	require.Same(t, th.Loop(), LookupLoop(th.ID()))

	done := make(chan struct{})
	require.NoError(t, th.Loop().Post(func() { close(done) }))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal(`posted task never ran`)
	}

	th.Loop().Quit()
	th.Wait()
	require.Nil(t, LookupLoop(th.ID()), `loop unregisters itself after Run returns`)
}

func TestThread_DistinctIDs(t *testing.T) {
	ResetRegistryForTesting()
	defer ResetRegistryForTesting()

	t1 := NewThread()
	t2 := NewThread()
	defer t1.Loop().Quit()
	defer t2.Loop().Quit()

	require.NotEqual(t, t1.ID(), t2.ID())
}
