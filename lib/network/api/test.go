package api

import (
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"
	"github.com/stellar/go/keypair"

	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/ledger"
	"boscoin.io/agora/lib/proposal"
	"boscoin.io/agora/lib/referendum"
	"boscoin.io/agora/lib/storage"
)

// manualClock is settable between requests so a test can walk a proposal
// through day-scale deadlines.
type manualClock struct {
	sync.RWMutex
	now int64
}

func (c *manualClock) Now() int64 {
	c.RLock()
	defer c.RUnlock()
	return c.now
}

func (c *manualClock) Set(now int64) {
	c.Lock()
	defer c.Unlock()
	c.now = now
}

func prepareAPIServer(balances ...common.Amount) (*httptest.Server, *storage.LevelDBBackend, *manualClock, []string) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	if err != nil {
		panic(err)
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
	conf := common.NewConfig()
	clock := &manualClock{}

	apiHandler := NewNetworkHandlerAPI(
		st,
		proposal.NewEngine(st, l, l, conf),
		referendum.NewEngine(st, l, l, conf),
		clock,
		"",
	)

	router := mux.NewRouter()
	apiHandler.AddAPIHandlers(router)
	ts := httptest.NewServer(router)

	return ts, st, clock, addresses
}
