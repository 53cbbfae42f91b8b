//go:build linux

package signalloop

import (
	"encoding/binary"
	"sync"

	"golang.org/x/sys/unix"
)

// fdWakeSource is a Linux eventfd-backed wakeSource: Wake writes an 8-byte
// counter increment, Wait reads (and blocks until nonzero, since the fd is
// created without EFD_NONBLOCK). This is the same primitive the host OS
// would use to implement a self-pipe/eventfd-based wakeable queue; it's
// offered as an opt-in alternative to chanWakeSource for callers that want
// an fd they can also select()/epoll() on alongside other descriptors.
type fdWakeSource struct {
	mu     sync.Mutex
	fd     int
	closed bool
}

func newFDWakeSource() (*fdWakeSource, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC)
	if err != nil {
		return nil, wrapError(`signalloop: creating eventfd`, err)
	}
	return &fdWakeSource{fd: fd}, nil
}

// FD returns the underlying eventfd, for callers wiring it into an
// external poller.
func (w *fdWakeSource) FD() int {
	return w.fd
}

func (w *fdWakeSource) Wake() {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	_, _ = unix.Write(w.fd, buf[:])
}

func (w *fdWakeSource) Wait() {
	var buf [8]byte
	for {
		n, err := unix.Read(w.fd, buf[:])
		if n == 8 || err == nil {
			return
		}
		if err == unix.EINTR {
			continue
		}
		return
	}
}

func (w *fdWakeSource) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return unix.Close(w.fd)
}

// WithFDWakeSource selects the Linux eventfd-backed wakeSource instead of
// the default portable channel, for callers integrating an EventLoop
// alongside other fd-driven I/O. Falls back silently to the default if the
// eventfd cannot be created.
func WithFDWakeSource() LoopOption {
	return withWakeSource(func() wakeSource {
		w, err := newFDWakeSource()
		if err != nil {
			return newChanWakeSource()
		}
		return w
	})
}
