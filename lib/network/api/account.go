package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/agora/lib/errors"
	"boscoin.io/agora/lib/ledger"
	"boscoin.io/agora/lib/network/api/resource"
	"boscoin.io/agora/lib/network/httputils"
)

func (api NetworkHandlerAPI) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["id"]

	readFunc := func() (payload interface{}, err error) {
		found, err := ledger.ExistStakeAccount(api.storage, address)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.AccountDoesNotExist
		}
		sa, err := ledger.GetStakeAccount(api.storage, address)
		if err != nil {
			return nil, err
		}
		payload = resource.NewAccount(sa)
		return payload, nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}
