package ledger

import (
	"fmt"

	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/common/observer"
	"boscoin.io/agora/lib/storage"
)

// StakeAccount is the balance record voting weight is read from. the
// storage should support,
//  * find by `Address`:
// 	- key: `Address`: value: `StakeAccount`
//  * get list by created order:
//
// models
//  * 'address'
// 	- 'sa-address-<StakeAccount.Address>': `StakeAccount`
//  * 'created'
// 	- 'sa-created-<sequential uuid1>': `StakeAccount.Address`

const StakeAccountPrefixAddress string = "sa-address-"
const StakeAccountPrefixCreated string = "sa-created-"

type StakeAccount struct {
	Address string
	Balance common.Amount
}

func NewStakeAccount(address string, balance common.Amount) *StakeAccount {
	return &StakeAccount{
		Address: address,
		Balance: balance,
	}
}

func (a *StakeAccount) String() string {
	return string(common.MustJSONMarshal(a))
}

func (a *StakeAccount) Save(st *storage.LevelDBBackend) (err error) {
	key := GetStakeAccountKey(a.Address)

	var exists bool
	exists, err = st.Has(key)
	if err != nil {
		return
	}

	if exists {
		err = st.Set(key, a)
	} else {
		err = st.New(key, a)
		if err != nil {
			return
		}
		createdKey := GetStakeAccountCreatedKey(common.GetUniqueIDFromUUID())
		err = st.New(createdKey, a.Address)
	}
	if err == nil {
		event := "saved"
		event += " " + fmt.Sprintf("address-%s", a.Address)
		observer.StakeAccountObserver.Trigger(event, a)
	}

	return
}

func (a *StakeAccount) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(a)
	return
}

func (a *StakeAccount) Deserialize(encoded []byte) (err error) {
	return common.DecodeJSONValue(encoded, a)
}

func GetStakeAccountKey(address string) string {
	return fmt.Sprintf("%s%s", StakeAccountPrefixAddress, address)
}

func GetStakeAccountCreatedKey(created string) string {
	return fmt.Sprintf("%s%s", StakeAccountPrefixCreated, created)
}

func ExistStakeAccount(st *storage.LevelDBBackend, address string) (exists bool, err error) {
	return st.Has(GetStakeAccountKey(address))
}

func GetStakeAccount(st *storage.LevelDBBackend, address string) (a *StakeAccount, err error) {
	if err = st.Get(GetStakeAccountKey(address), &a); err != nil {
		return
	}

	return
}

func GetStakeAccountAddressesByCreated(st *storage.LevelDBBackend, options *storage.IteratorOptions) (func() (string, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(StakeAccountPrefixCreated, options)

	return (func() (string, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return "", false
			}

			var address string
			common.MustUnmarshalJSON(item.Value, &address)
			return address, hasNext
		}), (func() {
			closeFunc()
		})
}

func (a *StakeAccount) GetBalance() common.Amount {
	return a.Balance
}

// Add stake to an account
//
// If the amount would make the account overflow over the full supply of
// coin, an `error` is returned.
func (a *StakeAccount) Deposit(fund common.Amount) error {
	if val, err := a.GetBalance().Add(fund); err != nil {
		return err
	} else {
		a.Balance = val
	}
	return nil
}

// Remove stake from an account
//
// If the amount would make the account go negative, an `error` is returned.
func (a *StakeAccount) Withdraw(fund common.Amount) error {
	if val, err := a.GetBalance().Sub(fund); err != nil {
		return err
	} else {
		a.Balance = val
	}
	return nil
}
