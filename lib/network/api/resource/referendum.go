package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/agora/lib/referendum"
)

type Referendum struct {
	r *referendum.Referendum
}

func NewReferendum(r *referendum.Referendum) *Referendum {
	return &Referendum{
		r: r,
	}
}

func (rr Referendum) GetMap() hal.Entry {
	entry := hal.Entry{
		"id":           rr.r.Id,
		"proposer":     rr.r.Proposer,
		"question":     rr.r.Question,
		"status":       rr.r.Status.String(),
		"created_at":   rr.r.CreatedAt,
		"voting_start": rr.r.VotingStart,
		"voting_end":   rr.r.VotingEnd,
		"ballot_count": rr.r.Ballots.Len(),
	}
	if rr.r.Result != nil {
		entry["result"] = rr.r.Result
		entry["confirmed_hash"] = rr.r.ConfirmedHash
	}

	return entry
}

func (rr Referendum) Resource() *hal.Resource {
	return hal.NewResource(rr, rr.LinkSelf())
}

func (rr Referendum) LinkSelf() string {
	return strings.Replace(URLReferendumByID, "{id}", rr.r.Id, -1)
}
