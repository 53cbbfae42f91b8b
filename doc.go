// Package signalloop provides a thread-affinitized signal/slot dispatcher
// with per-thread event loops.
//
// # Architecture
//
// An [EventLoop] is a FIFO task queue plus a timer heap bound to exactly one
// goroutine (this package's stand-in for an OS thread). A [Thread] spawns a
// worker goroutine, constructs an [EventLoop] for it, and publishes the
// pairing through the process-wide [EventLoopRegistry] so other goroutines
// can route work to it by [ThreadID].
//
// [Base] is the base type for anything that emits or receives signals. It
// owns a thread affinity and two inverse indices — who it sends to, who
// sends to it — so that destroying an Object can atomically revoke every
// connection touching it. [Signal0], [Signal1], [Signal2], and [Signal3]
// are the typed multicast emission points (Go has no variadic generics, so
// this package offers a bounded arity family instead of a single
// Signal[Args...]). [Connect0]..[Connect3] wire a signal to a slot with a
// [ConnectionKind] controlling where the slot runs relative to the emitting
// thread.
//
// # Connection kinds
//
//   - [Direct]: the slot runs inline on the emitting thread.
//   - [Queued]: a closure is posted to the receiver's event loop and runs
//     there, asynchronously.
//   - [BlockingQueued]: as Queued, but the emitting thread blocks until the
//     slot has run (collapses to Direct if emitter and receiver share a
//     thread, to avoid self-deadlock).
//   - [Auto]: resolves to Direct if emitter and receiver share a thread,
//     else Queued.
//
// # Usage
//
//	thread := signalloop.NewThread()
//	defer thread.Loop().Quit()
//
//	sender := signalloop.NewBase(0)
//	receiver := signalloop.NewBase(thread.ID())
//
//	var sig signalloop.Signal1[int]
//	signalloop.Connect1(&sender, &sig, &receiver, func(n int) {
//	    fmt.Println("received", n)
//	}, signalloop.Auto)
//
//	sig.Emit(42)
//
// # Thread safety
//
//   - [EventLoop.Post] and [EventLoop.Send] are safe from any goroutine.
//   - [Signal0.Emit] (and its arity siblings) take a shared lock over the
//     handler set; [Base.DisconnectAll] snapshots under the same
//     discipline before invoking cleanup closures, so destruction never
//     races a concurrent Emit into a dangling handler.
//   - The [EventLoopRegistry] is a single process-wide mutex-guarded map;
//     [ResetRegistryForTesting] exists because tests, unlike a real process,
//     don't get a fresh registry per run.
package signalloop
