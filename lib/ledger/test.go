package ledger

import (
	"github.com/stellar/go/keypair"

	"boscoin.io/agora/lib/common"
)

func TestMakeStakeAccount(balance common.Amount) *StakeAccount {
	kp, _ := keypair.Random()

	return NewStakeAccount(kp.Address(), balance)
}
