package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/agora/lib/errors"
	"boscoin.io/agora/lib/network/api/resource"
	"boscoin.io/agora/lib/network/httputils"
	"boscoin.io/agora/lib/proposal"
)

// ProposalBody is the POST /proposals request payload; `durations` left
// empty means the configured defaults.
type ProposalBody struct {
	Type             string `json:"type"`
	Proposer         string `json:"proposer"`
	TargetProposalId string `json:"target_proposal_id,omitempty"`

	Durations *struct {
		Draft  int64 `json:"draft"`
		Dialog int64 `json:"dialog"`
		Voting int64 `json:"voting"`
	} `json:"durations,omitempty"`
}

// ProposalVoteBody is the POST /proposals/{id}/votes request payload.
type ProposalVoteBody struct {
	Voter   string `json:"voter"`
	Support bool   `json:"support"`
}

func (api NetworkHandlerAPI) GetProposalHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	p, err := proposal.GetProposal(api.storage, id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewProposal(p))
}

func (api NetworkHandlerAPI) GetProposalsHandler(w http.ResponseWriter, r *http.Request) {
	pq, err := httputils.NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.Resource
	var cursor []byte

	iterFunc, closeFunc := proposal.GetProposalIdsByCreated(api.storage, pq.IteratorOptions())
	for {
		id, key, hasNext := iterFunc()
		if !hasNext {
			break
		}
		p, err := proposal.GetProposal(api.storage, id)
		if err != nil {
			closeFunc()
			httputils.WriteJSONError(w, err)
			return
		}
		rs = append(rs, resource.NewProposal(p))
		cursor = key
	}
	closeFunc()

	httputils.MustWriteJSON(w, 200, pq.ResourceList(rs, cursor))
}

func (api NetworkHandlerAPI) GetProposalVotesHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	p, err := proposal.GetProposal(api.storage, id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, p.Ballots)
}

func (api NetworkHandlerAPI) PostProposalHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var pb ProposalBody
	if err := json.Unmarshal(body, &pb); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	var durations proposal.PhaseDurations
	if pb.Durations != nil {
		durations = proposal.NewPhaseDurations(pb.Durations.Draft, pb.Durations.Dialog, pb.Durations.Voting)
	}

	p, err := api.proposals.Create(proposal.Type(pb.Type), pb.Proposer, pb.TargetProposalId, durations, api.clock.Now())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewProposal(p))
}

func (api NetworkHandlerAPI) PostProposalAdvanceHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	p, err := api.proposals.Advance(id, api.clock.Now())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewProposal(p))
}

func (api NetworkHandlerAPI) PostProposalForceAdvanceHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	p, err := api.proposals.ForceAdvance(id, api.clock.Now())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewProposal(p))
}

func (api NetworkHandlerAPI) PostProposalVoteHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	defer r.Body.Close()

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var vb ProposalVoteBody
	if err := json.Unmarshal(body, &vb); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	p, err := api.proposals.CastVote(id, vb.Voter, vb.Support, api.clock.Now())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewProposal(p))
}

func (api NetworkHandlerAPI) PostProposalFinalizeHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	p, err := api.proposals.Finalize(id, api.clock.Now())
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewProposal(p))
}
