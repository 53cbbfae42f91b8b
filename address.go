package signalloop

import (
	"fmt"
	"reflect"
	"sync/atomic"
)

// Address is the stable identity of a signal or slot endpoint (spec §3).
// The source identifies an endpoint by the bit pattern of a member-function
// pointer plus the enclosing object pointer; Go has neither member-function
// pointers nor a portable way to compare closures for equality (the same
// observation the teacher's eventtarget.go makes about listener funcs: "Go
// functions cannot be reliably compared for equality... we generate a
// unique ID"). This package resolves it with two independent tokens:
//
//   - Object is an opaque id minted once, atomically, when a Base is
//     constructed (NewBase) — stable for that Object's lifetime, playing
//     the role of the object pointer half of the source's pair.
//   - Function is the slot's code address, taken via
//     reflect.Value.Pointer() — the closest Go equivalent to "the opaque
//     bit-pattern of a function pointer": stable across repeated takes of
//     the same non-capturing function or method value, which is exactly
//     what spec §8 property 3 ("duplicate Connect... leaves the handler
//     count at 1") requires be recognized as "the same slot."
//
// As with the source's own member-function-pointer approach, two distinct
// closures that happen to close over different captured state but share
// the same underlying function literal are indistinguishable by Address;
// this is a documented limitation inherited from the design this resolves,
// not a defect introduced by the resolution.
type Address struct {
	Object   uint64
	Function uint64
}

func (a Address) String() string {
	return fmt.Sprintf(`Address{Object:%d,Function:%d}`, a.Object, a.Function)
}

var objectTokenSeq atomic.Uint64

// nextObjectToken mints a fresh, process-unique object token.
func nextObjectToken() uint64 {
	return objectTokenSeq.Add(1)
}

// functionToken derives a slot's opaque function-identity token from its
// code address.
func functionToken(fn any) uint64 {
	return uint64(reflect.ValueOf(fn).Pointer())
}
