package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/agora/lib/errors"
	"boscoin.io/agora/lib/network/api/resource"
	"boscoin.io/agora/lib/network/httputils"
	"boscoin.io/agora/lib/referendum"
	"boscoin.io/agora/lib/voting"
)

// ReferendumBody is the POST /referendums request payload; the window is
// in microseconds.
type ReferendumBody struct {
	Proposer    string `json:"proposer"`
	Question    string `json:"question"`
	VotingStart int64  `json:"voting_start"`
	VotingEnd   int64  `json:"voting_end"`
}

// ReferendumVoteBody is the POST /referendums/{id}/votes request payload.
type ReferendumVoteBody struct {
	Voter  string `json:"voter"`
	Choice string `json:"choice"`
}

func (api NetworkHandlerAPI) GetReferendumHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	rf, err := referendum.GetReferendum(api.storage, id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewReferendum(rf))
}

func (api NetworkHandlerAPI) GetReferendumsHandler(w http.ResponseWriter, r *http.Request) {
	pq, err := httputils.NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.Resource
	var cursor []byte

	iterFunc, closeFunc := referendum.GetReferendumIdsByCreated(api.storage, pq.IteratorOptions())
	for {
		id, key, hasNext := iterFunc()
		if !hasNext {
			break
		}
		rf, err := referendum.GetReferendum(api.storage, id)
		if err != nil {
			closeFunc()
			httputils.WriteJSONError(w, err)
			return
		}
		rs = append(rs, resource.NewReferendum(rf))
		cursor = key
	}
	closeFunc()

	httputils.MustWriteJSON(w, 200, pq.ResourceList(rs, cursor))
}

func (api NetworkHandlerAPI) PostReferendumHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rb ReferendumBody
	if err := json.Unmarshal(body, &rb); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	rf, err := api.referendums.Create(rb.Proposer, rb.Question, rb.VotingStart, rb.VotingEnd, api.clock.Now())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewReferendum(rf))
}

func (api NetworkHandlerAPI) PostReferendumStartHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	rf, err := api.referendums.Start(id, api.clock.Now())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewReferendum(rf))
}

func (api NetworkHandlerAPI) PostReferendumHoldHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	rf, err := api.referendums.Hold(id, api.clock.Now())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewReferendum(rf))
}

func (api NetworkHandlerAPI) PostReferendumResumeHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	rf, err := api.referendums.Resume(id, api.clock.Now())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewReferendum(rf))
}

func (api NetworkHandlerAPI) PostReferendumVoteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	defer r.Body.Close()

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var vb ReferendumVoteBody
	if err := json.Unmarshal(body, &vb); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	rf, err := api.referendums.CastVote(id, vb.Voter, voting.Choice(vb.Choice), api.clock.Now())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewReferendum(rf))
}

func (api NetworkHandlerAPI) PostReferendumFinalizeHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	rf, err := api.referendums.Finalize(id, api.clock.Now())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewReferendum(rf))
}
