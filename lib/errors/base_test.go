package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorClone(t *testing.T) {
	e0 := ZeroStake
	e1 := e0.Clone().SetData("voter", "GABC")

	require.True(t, e0.Equal(e1))
	require.Empty(t, e0.Data)
	require.Equal(t, "GABC", e1.Data["voter"])
}

func TestErrorEqual(t *testing.T) {
	require.True(t, PhaseClosed.Equal(PhaseClosed.Clone()))
	require.False(t, PhaseClosed.Equal(InvalidTransition))
	require.False(t, PhaseClosed.Equal(nil))
}
