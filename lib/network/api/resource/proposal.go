package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/agora/lib/proposal"
)

type Proposal struct {
	p *proposal.Proposal
}

func NewProposal(p *proposal.Proposal) *Proposal {
	return &Proposal{
		p: p,
	}
}

func (pr Proposal) GetMap() hal.Entry {
	entry := hal.Entry{
		"id":               pr.p.Id,
		"type":             string(pr.p.Type),
		"proposer":         pr.p.Proposer,
		"phase":            pr.p.Phase.String(),
		"status":           string(pr.p.Status),
		"phase_entered_at": pr.p.PhaseEnteredAt,
		"created_at":       pr.p.CreatedAt,
		"ballot_count":     pr.p.Ballots.Len(),
	}
	if len(pr.p.TargetProposalId) > 0 {
		entry["target_proposal_id"] = pr.p.TargetProposalId
	}
	if pr.p.Result != nil {
		entry["result"] = pr.p.Result
		entry["confirmed_hash"] = pr.p.ConfirmedHash
	}

	return entry
}

func (pr Proposal) Resource() *hal.Resource {
	r := hal.NewResource(pr, pr.LinkSelf())
	r.AddLink("votes", hal.NewLink(strings.Replace(URLProposalVotes, "{id}", pr.p.Id, -1)))
	if len(pr.p.TargetProposalId) > 0 {
		r.AddLink("target", hal.NewLink(strings.Replace(URLProposalByID, "{id}", pr.p.TargetProposalId, -1)))
	}
	return r
}

func (pr Proposal) LinkSelf() string {
	return strings.Replace(URLProposalByID, "{id}", pr.p.Id, -1)
}
