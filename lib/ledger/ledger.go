package ledger

import (
	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/errors"
	"boscoin.io/agora/lib/storage"
)

// StakeLedger reports voting weight. `at` is a microsecond epoch count;
// the LevelDB implementation ignores it and answers from current state,
// which matches the reactive engine model (every read happens at "now").
type StakeLedger interface {
	GetStake(address string, at int64) (common.Amount, error)
	GetTotalEligibleStake(at int64) (common.Amount, error)
}

// SettingsStore reports deployment parameters by name. `SettingDoesNotExist`
// means "not configured"; for the minimum stake the engines treat that as
// zero.
type SettingsStore interface {
	GetAmount(name string) (common.Amount, error)
}

// LevelDBLedger is both `StakeLedger` and `SettingsStore` over a single
// storage backend.
type LevelDBLedger struct {
	st *storage.LevelDBBackend
}

func NewLevelDBLedger(st *storage.LevelDBBackend) *LevelDBLedger {
	return &LevelDBLedger{st: st}
}

// GetStake returns the address' liquid stake. A missing account and a zero
// balance are identical to the engines, so both come back as zero.
func (l *LevelDBLedger) GetStake(address string, at int64) (common.Amount, error) {
	account, err := GetStakeAccount(l.st, address)
	if err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return common.Amount(0), nil
		}
		return common.Amount(0), err
	}

	return account.GetBalance(), nil
}

// GetTotalEligibleStake sums every stake account; it is the quorum
// denominator. Finalization is rare enough that a full scan is acceptable.
func (l *LevelDBLedger) GetTotalEligibleStake(at int64) (total common.Amount, err error) {
	iterFunc, closeFunc := l.st.GetIterator(StakeAccountPrefixAddress, nil)
	defer closeFunc()

	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}

		var account StakeAccount
		if err = common.DecodeJSONValue(item.Value, &account); err != nil {
			return
		}
		if total, err = total.Add(account.Balance); err != nil {
			return
		}
	}

	return
}

func (l *LevelDBLedger) GetAmount(name string) (common.Amount, error) {
	return GetSettingAmount(l.st, name)
}
