package signalloop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextObjectToken_Unique(t *testing.T) {
	a := nextObjectToken()
	b := nextObjectToken()
	require.NotEqual(t, a, b)
}

func TestFunctionToken_StableForSameFunc(t *testing.T) {
	fn := func() {}
	require.Equal(t, functionToken(fn), functionToken(fn))
}

func TestFunctionToken_DiffersAcrossFuncs(t *testing.T) {
	fn1 := func() {}
	fn2 := func() {}
	require.NotEqual(t, functionToken(fn1), functionToken(fn2))
}

func TestAddress_String(t *testing.T) {
	a := Address{Object: 1, Function: 2}
	require.Equal(t, `Address{Object:1,Function:2}`, a.String())
}
