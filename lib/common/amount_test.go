package common

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/agora/lib/errors"
)

var (
	maximumBalance    = uint64(MaximumBalance)
	maximumBalanceStr = strconv.FormatUint(maximumBalance, 10)
)

func TestAmount_Invariant(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("exceeds max allowable amount value.")
		}
	}()

	amount := Amount(maximumBalance + 1)
	amount.Invariant()
}

func TestAmount_Add(t *testing.T) {
	val, err := Amount(100).Add(Amount(50))
	require.Nil(t, err)
	require.Equal(t, Amount(150), val)

	_, err = MaximumBalance.Add(Amount(1))
	require.Equal(t, errors.MaximumBalanceReached, err)
}

func TestAmount_Sub(t *testing.T) {
	val, err := Amount(100).Sub(Amount(50))
	require.Nil(t, err)
	require.Equal(t, Amount(50), val)

	_, err = Amount(50).Sub(Amount(100))
	require.Equal(t, errors.AccountBalanceUnderZero, err)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Expected `panic` did not happen")
			}
		}()
		Amount(50).MustSub(Amount(100))
	}()
}

func TestAmount_PercentOf(t *testing.T) {
	require.Equal(t, Amount(10), Amount(100).PercentOf(10))
	require.Equal(t, Amount(0), Amount(9).PercentOf(10))
	require.Equal(t, Amount(900), Amount(1000).PercentOf(90))

	// no overflow on the largest representable stake
	require.Equal(t, MaximumBalance, MaximumBalance.PercentOf(100))
}

func TestAmount_JSON(t *testing.T) {
	b, err := Amount(12345).MarshalJSON()
	require.Nil(t, err)
	require.Equal(t, `"12345"`, string(b))

	var a Amount
	require.Nil(t, a.UnmarshalJSON([]byte(`"12345"`)))
	require.Equal(t, Amount(12345), a)
}
