package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/agora/lib/ledger"
)

type Account struct {
	sa *ledger.StakeAccount
}

func NewAccount(sa *ledger.StakeAccount) *Account {
	a := &Account{
		sa: sa,
	}
	return a
}

func (a Account) GetMap() hal.Entry {
	return hal.Entry{
		"id":      a.sa.Address,
		"address": a.sa.Address,
		"balance": a.sa.Balance,
	}
}

func (a Account) Resource() *hal.Resource {
	return hal.NewResource(a, a.LinkSelf())
}

func (a Account) LinkSelf() string {
	return strings.Replace(URLAccounts, "{id}", a.sa.Address, -1)
}
