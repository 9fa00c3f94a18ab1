package referendum

import (
	"github.com/stellar/go/keypair"

	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/ledger"
	"boscoin.io/agora/lib/storage"
)

// TestMakeEngine returns an engine over memory storage plus the ledger it
// reads stake from; `balances` seeds one account per entry, returned in
// order.
func TestMakeEngine(minStake common.Amount, balances ...common.Amount) (*Engine, *storage.LevelDBBackend, []string) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	if err != nil {
		panic(err)
	}

	if minStake > 0 {
		if err := ledger.SetSetting(st, ledger.KeyMinStake, minStake); err != nil {
			panic(err)
		}
	}

	var addresses []string
	for _, balance := range balances {
		kp, _ := keypair.Random()
		account := ledger.NewStakeAccount(kp.Address(), balance)
		if err := account.Save(st); err != nil {
			panic(err)
		}
		addresses = append(addresses, kp.Address())
	}

	l := ledger.NewLevelDBLedger(st)

	return NewEngine(st, l, l, common.NewConfig()), st, addresses
}
