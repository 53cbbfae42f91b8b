package signalloop

import "reflect"

// signalToken derives a stable per-field identity for a Signal pointer,
// playing the role of "&T::sig" (pointer-to-member) in the source design —
// the emitted signal's half of an Address, distinct from the slot's half.
func signalToken(sig any) uint64 {
	return uint64(reflect.ValueOf(sig).Pointer())
}

// connectObjects builds a handler around invoke (the adapter closure the
// calling arity-specific Connect function built) and installs it on core,
// keyed by the receiver's
// Address, and cross-registers the inverse-index cleanup closures in both
// Objects per spec §4.F's Connect contract. Returns false if the
// (receiver, slot) pair was already connected (a no-op, §7 error kind 4).
func connectObjects(sender *Base, sigTok uint64, core *signalCore, receiver *Base, slotFn uint64, kind ConnectionKind, invoke func(args []any)) bool {
	receiverAddr := Address{Object: receiver.token, Function: slotFn}
	h := &handler{addr: receiverAddr, threadID: receiver.ThreadID(), kind: kind, invoke: invoke}
	if !core.AddHandler(h) {
		return false
	}

	signalAddr := Address{Object: sender.token, Function: sigTok}
	cleanup := func() {
		core.RemoveHandler(receiverAddr)
		receiver.removeSenderEntry(signalAddr, slotFn)
		sender.removeReceiverEntry(receiverAddr)
	}
	receiver.addSenderEntry(signalAddr, slotFn, cleanup)
	sender.addReceiverEntry(receiverAddr, cleanup)
	return true
}

// disconnectObjects removes the (receiver, slot) handler and both inverse
// entries. Idempotent (spec §8 property 4).
func disconnectObjects(sender *Base, sigTok uint64, core *signalCore, receiver *Base, slotFn uint64) {
	receiverAddr := Address{Object: receiver.token, Function: slotFn}
	signalAddr := Address{Object: sender.token, Function: sigTok}
	core.RemoveHandler(receiverAddr)
	receiver.removeSenderEntry(signalAddr, slotFn)
	sender.removeReceiverEntry(receiverAddr)
}

// connectBare installs a handler with no Object bookkeeping — the "both
// endpoints non-Object" branch of spec §4.F's compile-time check. The
// application is responsible for the slot's lifetime.
func connectBare(core *signalCore, slotFn uint64, threadID ThreadID, kind ConnectionKind, invoke func(args []any)) {
	core.AddHandler(&handler{addr: Address{Function: slotFn}, threadID: threadID, kind: kind, invoke: invoke})
}

func disconnectBare(core *signalCore, slotFn uint64) {
	core.RemoveHandler(Address{Function: slotFn})
}

// --- Signal0 --------------------------------------------------------------

func Connect0(sender *Base, sig *Signal0, receiver *Base, slot func(), kind ConnectionKind) bool {
	return connectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot), kind,
		func([]any) { slot() })
}

func Disconnect0(sender *Base, sig *Signal0, receiver *Base, slot func()) {
	disconnectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot))
}

func ConnectFunc0(sig *Signal0, slot func(), kind ConnectionKind, threadID ThreadID) {
	connectBare(sig.ensure(), functionToken(slot), threadID, kind, func([]any) { slot() })
}

func DisconnectFunc0(sig *Signal0, slot func()) {
	disconnectBare(sig.ensure(), functionToken(slot))
}

// --- Signal1 ----------------------------------------------------------------

func Connect1[A any](sender *Base, sig *Signal1[A], receiver *Base, slot func(A), kind ConnectionKind) bool {
	return connectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot), kind,
		func(args []any) { slot(args[0].(A)) })
}

func Disconnect1[A any](sender *Base, sig *Signal1[A], receiver *Base, slot func(A)) {
	disconnectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot))
}

func ConnectFunc1[A any](sig *Signal1[A], slot func(A), kind ConnectionKind, threadID ThreadID) {
	connectBare(sig.ensure(), functionToken(slot), threadID, kind, func(args []any) { slot(args[0].(A)) })
}

func DisconnectFunc1[A any](sig *Signal1[A], slot func(A)) {
	disconnectBare(sig.ensure(), functionToken(slot))
}

// Connect1To0 connects a parameterless slot to a single-argument signal —
// the prefix arity k=0 of spec §4.D's parameter adaptation.
func Connect1To0[A any](sender *Base, sig *Signal1[A], receiver *Base, slot func(), kind ConnectionKind) bool {
	return connectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot), kind,
		func([]any) { slot() })
}

func Disconnect1To0[A any](sender *Base, sig *Signal1[A], receiver *Base, slot func()) {
	disconnectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot))
}

// --- Signal2 ----------------------------------------------------------------

func Connect2[A, B any](sender *Base, sig *Signal2[A, B], receiver *Base, slot func(A, B), kind ConnectionKind) bool {
	return connectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot), kind,
		func(args []any) { slot(args[0].(A), args[1].(B)) })
}

func Disconnect2[A, B any](sender *Base, sig *Signal2[A, B], receiver *Base, slot func(A, B)) {
	disconnectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot))
}

func ConnectFunc2[A, B any](sig *Signal2[A, B], slot func(A, B), kind ConnectionKind, threadID ThreadID) {
	connectBare(sig.ensure(), functionToken(slot), threadID, kind, func(args []any) { slot(args[0].(A), args[1].(B)) })
}

func DisconnectFunc2[A, B any](sig *Signal2[A, B], slot func(A, B)) {
	disconnectBare(sig.ensure(), functionToken(slot))
}

// Connect2To1 connects a one-argument slot (prefix k=1) to a two-argument
// signal.
func Connect2To1[A, B any](sender *Base, sig *Signal2[A, B], receiver *Base, slot func(A), kind ConnectionKind) bool {
	return connectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot), kind,
		func(args []any) { slot(args[0].(A)) })
}

func Disconnect2To1[A, B any](sender *Base, sig *Signal2[A, B], receiver *Base, slot func(A)) {
	disconnectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot))
}

// Connect2To0 connects a parameterless slot (prefix k=0) to a two-argument
// signal.
func Connect2To0[A, B any](sender *Base, sig *Signal2[A, B], receiver *Base, slot func(), kind ConnectionKind) bool {
	return connectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot), kind,
		func([]any) { slot() })
}

func Disconnect2To0[A, B any](sender *Base, sig *Signal2[A, B], receiver *Base, slot func()) {
	disconnectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot))
}

// --- Signal3 ----------------------------------------------------------------

func Connect3[A, B, C any](sender *Base, sig *Signal3[A, B, C], receiver *Base, slot func(A, B, C), kind ConnectionKind) bool {
	return connectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot), kind,
		func(args []any) { slot(args[0].(A), args[1].(B), args[2].(C)) })
}

func Disconnect3[A, B, C any](sender *Base, sig *Signal3[A, B, C], receiver *Base, slot func(A, B, C)) {
	disconnectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot))
}

func ConnectFunc3[A, B, C any](sig *Signal3[A, B, C], slot func(A, B, C), kind ConnectionKind, threadID ThreadID) {
	connectBare(sig.ensure(), functionToken(slot), threadID, kind, func(args []any) {
		slot(args[0].(A), args[1].(B), args[2].(C))
	})
}

func DisconnectFunc3[A, B, C any](sig *Signal3[A, B, C], slot func(A, B, C)) {
	disconnectBare(sig.ensure(), functionToken(slot))
}

// Connect3To2 connects a two-argument slot (prefix k=2) to a three-argument
// signal.
func Connect3To2[A, B, C any](sender *Base, sig *Signal3[A, B, C], receiver *Base, slot func(A, B), kind ConnectionKind) bool {
	return connectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot), kind,
		func(args []any) { slot(args[0].(A), args[1].(B)) })
}

func Disconnect3To2[A, B, C any](sender *Base, sig *Signal3[A, B, C], receiver *Base, slot func(A, B)) {
	disconnectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot))
}

// Connect3To1 connects a one-argument slot (prefix k=1) to a
// three-argument signal — the arity used by spec §8 scenario S4.
func Connect3To1[A, B, C any](sender *Base, sig *Signal3[A, B, C], receiver *Base, slot func(A), kind ConnectionKind) bool {
	return connectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot), kind,
		func(args []any) { slot(args[0].(A)) })
}

func Disconnect3To1[A, B, C any](sender *Base, sig *Signal3[A, B, C], receiver *Base, slot func(A)) {
	disconnectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot))
}

// Connect3To0 connects a parameterless slot (prefix k=0) to a
// three-argument signal.
func Connect3To0[A, B, C any](sender *Base, sig *Signal3[A, B, C], receiver *Base, slot func(), kind ConnectionKind) bool {
	return connectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot), kind,
		func([]any) { slot() })
}

func Disconnect3To0[A, B, C any](sender *Base, sig *Signal3[A, B, C], receiver *Base, slot func()) {
	disconnectObjects(sender, signalToken(sig), sig.ensure(), receiver, functionToken(slot))
}
