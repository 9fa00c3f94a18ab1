package api

import (
	"fmt"

	"github.com/gorilla/mux"

	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/proposal"
	"boscoin.io/agora/lib/referendum"
	"boscoin.io/agora/lib/storage"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	GetProposalsHandlerPattern      = "/proposals"
	GetProposalHandlerPattern       = "/proposals/{id}"
	GetProposalVotesHandlerPattern  = "/proposals/{id}/votes"
	PostProposalsHandlerPattern     = "/proposals"
	PostProposalAdvancePattern      = "/proposals/{id}/advance"
	PostProposalForceAdvancePattern = "/proposals/{id}/force-advance"
	PostProposalVotePattern         = "/proposals/{id}/votes"
	PostProposalFinalizePattern     = "/proposals/{id}/finalize"
	GetReferendumsHandlerPattern    = "/referendums"
	GetReferendumHandlerPattern     = "/referendums/{id}"
	PostReferendumsHandlerPattern   = "/referendums"
	PostReferendumStartPattern      = "/referendums/{id}/start"
	PostReferendumHoldPattern       = "/referendums/{id}/hold"
	PostReferendumResumePattern     = "/referendums/{id}/resume"
	PostReferendumVotePattern       = "/referendums/{id}/votes"
	PostReferendumFinalizePattern   = "/referendums/{id}/finalize"
	GetAccountHandlerPattern        = "/accounts/{id}"
)

type NetworkHandlerAPI struct {
	storage     *storage.LevelDBBackend
	proposals   *proposal.Engine
	referendums *referendum.Engine
	clock       common.Clock
	urlPrefix   string
	version     string
}

func NewNetworkHandlerAPI(st *storage.LevelDBBackend, proposals *proposal.Engine, referendums *referendum.Engine, clock common.Clock, urlPrefix string) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		storage:     st,
		proposals:   proposals,
		referendums: referendums,
		clock:       clock,
		urlPrefix:   urlPrefix,
		version:     APIVersionV1,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

// AddAPIHandlers binds every governance route onto the router.
func (api NetworkHandlerAPI) AddAPIHandlers(router *mux.Router) {
	router.HandleFunc(api.HandlerURLPattern(GetProposalsHandlerPattern), api.GetProposalsHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(PostProposalsHandlerPattern), api.PostProposalHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(GetProposalHandlerPattern), api.GetProposalHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetProposalVotesHandlerPattern), api.GetProposalVotesHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(PostProposalAdvancePattern), api.PostProposalAdvanceHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(PostProposalForceAdvancePattern), api.PostProposalForceAdvanceHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(PostProposalVotePattern), api.PostProposalVoteHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(PostProposalFinalizePattern), api.PostProposalFinalizeHandler).Methods("POST")

	router.HandleFunc(api.HandlerURLPattern(GetReferendumsHandlerPattern), api.GetReferendumsHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(PostReferendumsHandlerPattern), api.PostReferendumHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(GetReferendumHandlerPattern), api.GetReferendumHandler).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(PostReferendumStartPattern), api.PostReferendumStartHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(PostReferendumHoldPattern), api.PostReferendumHoldHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(PostReferendumResumePattern), api.PostReferendumResumeHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(PostReferendumVotePattern), api.PostReferendumVoteHandler).Methods("POST")
	router.HandleFunc(api.HandlerURLPattern(PostReferendumFinalizePattern), api.PostReferendumFinalizeHandler).Methods("POST")

	router.HandleFunc(api.HandlerURLPattern(GetAccountHandlerPattern), api.GetAccountHandler).Methods("GET")
}
