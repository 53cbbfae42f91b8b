package signalloop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectFunc0_BareSlotNoObjectBookkeeping(t *testing.T) {
	var sig Signal0
	var ran bool
	slot := func() { ran = true }
	ConnectFunc0(&sig, slot, Direct, 0)
	sig.Emit()
	require.True(t, ran)

	DisconnectFunc0(&sig, slot)
	ran = false
	sig.Emit()
	require.False(t, ran)
}

func TestConnect2_TwoArgSignal(t *testing.T) {
	sender := NewBase(1)
	receiver := NewBase(1)
	var sig Signal2[int, string]

	var gotN int
	var gotS string
	Connect2(&sender, &sig, &receiver, func(n int, s string) { gotN, gotS = n, s }, Direct)
	sig.Emit(3, `three`)
	require.Equal(t, 3, gotN)
	require.Equal(t, `three`, gotS)
}

func TestConnect2To1_PrefixAdaptation(t *testing.T) {
	sender := NewBase(1)
	receiver := NewBase(1)
	var sig Signal2[int, string]

	var got int
	Connect2To1(&sender, &sig, &receiver, func(n int) { got = n }, Direct)
	sig.Emit(9, `ignored`)
	require.Equal(t, 9, got)
}

func TestConnect2To0_PrefixAdaptation(t *testing.T) {
	sender := NewBase(1)
	receiver := NewBase(1)
	var sig Signal2[int, string]

	var called bool
	Connect2To0(&sender, &sig, &receiver, func() { called = true }, Direct)
	sig.Emit(1, `x`)
	require.True(t, called)
}

func TestConnect3_ThreeArgSignal(t *testing.T) {
	sender := NewBase(1)
	receiver := NewBase(1)
	var sig Signal3[int, int, int]

	var sum int
	Connect3(&sender, &sig, &receiver, func(a, b, c int) { sum = a + b + c }, Direct)
	sig.Emit(1, 2, 3)
	require.Equal(t, 6, sum)
}

func TestConnect3To2_PrefixAdaptation(t *testing.T) {
	sender := NewBase(1)
	receiver := NewBase(1)
	var sig Signal3[int, int, int]

	var sum int
	Connect3To2(&sender, &sig, &receiver, func(a, b int) { sum = a + b }, Direct)
	sig.Emit(10, 20, 30)
	require.Equal(t, 30, sum)
}

func TestConnect3To0_PrefixAdaptation(t *testing.T) {
	sender := NewBase(1)
	receiver := NewBase(1)
	var sig Signal3[int, int, int]

	var called bool
	Connect3To0(&sender, &sig, &receiver, func() { called = true }, Direct)
	sig.Emit(1, 2, 3)
	require.True(t, called)
}

func TestDisconnect1_RemovesOnlyNamedSlot(t *testing.T) {
	sender := NewBase(1)
	r1, r2 := NewBase(1), NewBase(1)
	var sig Signal1[int]

	var calledA, calledB bool
	slotA := func(int) { calledA = true }
	slotB := func(int) { calledB = true }
	Connect1(&sender, &sig, &r1, slotA, Direct)
	Connect1(&sender, &sig, &r2, slotB, Direct)

	Disconnect1(&sender, &sig, &r1, slotA)
	sig.Emit(1)
	require.False(t, calledA)
	require.True(t, calledB)
}
