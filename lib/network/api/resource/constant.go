package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLProposals      = APIPrefix + APIVersionV1 + "/proposals"
	URLProposalByID   = APIPrefix + APIVersionV1 + "/proposals/{id}"
	URLProposalVotes  = APIPrefix + APIVersionV1 + "/proposals/{id}/votes"
	URLReferendums    = APIPrefix + APIVersionV1 + "/referendums"
	URLReferendumByID = APIPrefix + APIVersionV1 + "/referendums/{id}"
	URLAccounts       = APIPrefix + APIVersionV1 + "/accounts/{id}"
)
