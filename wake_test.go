package signalloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestChanWakeSource_WakeThenWaitReturns(t *testing.T) {
	w := newChanWakeSource()
	w.Wake()

	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal(`Wait never returned after Wake`)
	}
}

func TestChanWakeSource_CoalescesMultipleWakes(t *testing.T) {
	w := newChanWakeSource()
	w.Wake()
	w.Wake()
	w.Wake()

	w.Wait() // consumes the single coalesced pending wakeup

	waited := make(chan struct{})
	go func() {
		w.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal(`second Wait should block: extra Wakes must not queue`)
	case <-time.After(20 * time.Millisecond):
	}

	w.Wake()
	<-waited
}

func TestChanWakeSource_CloseIsIdempotent(t *testing.T) {
	w := newChanWakeSource()
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
