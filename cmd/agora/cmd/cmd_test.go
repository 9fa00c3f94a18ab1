package cmd

import (
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"
)

func TestMakeGenesisAccounts(t *testing.T) {
	kp, _ := keypair.Random()

	flagName, err := MakeGenesisAccounts([]string{kp.Address() + ",1000"}, "500", "memory://")
	require.Empty(t, flagName)
	require.NoError(t, err)

	// balances may carry comma grouping
	flagName, err = MakeGenesisAccounts([]string{kp.Address() + ",1,000"}, "500", "memory://")
	require.Empty(t, flagName)
	require.NoError(t, err)
}

func TestMakeGenesisAccountsBadArgs(t *testing.T) {
	kp, _ := keypair.Random()

	flagName, _ := MakeGenesisAccounts([]string{kp.Address()}, "", "memory://")
	require.Equal(t, "<public key,balance>", flagName)

	flagName, _ = MakeGenesisAccounts([]string{"not-an-address,100"}, "", "memory://")
	require.Equal(t, "<public key,balance>", flagName)

	flagName, _ = MakeGenesisAccounts([]string{kp.Address() + ",100"}, "", "bogus://nowhere")
	require.Equal(t, "--storage", flagName)
}
