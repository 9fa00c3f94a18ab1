package resource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/agora/lib/proposal"
	"boscoin.io/agora/lib/referendum"
)

func TestProposalResource(t *testing.T) {
	p := proposal.NewProposal(proposal.TypeMain, "GPROPOSER", "", proposal.NewPhaseDurations(1, 1, 1), 0)

	r := NewProposal(p)
	entry := r.GetMap()

	require.Equal(t, p.Id, entry["id"])
	require.Equal(t, "main", entry["type"])
	require.Equal(t, "open", entry["status"])
	require.Equal(t, "discussion", entry["phase"])
	require.Equal(t, 0, entry["ballot_count"])
	require.NotContains(t, entry, "target_proposal_id")
	require.NotContains(t, entry, "result")

	require.Equal(t, strings.Replace(URLProposalByID, "{id}", p.Id, -1), r.LinkSelf())
}

func TestReferendumResource(t *testing.T) {
	rf := referendum.NewReferendum("GPROPOSER", "question", 1, 2, 0)

	r := NewReferendum(rf)
	entry := r.GetMap()

	require.Equal(t, rf.Id, entry["id"])
	require.Equal(t, "question", entry["question"])
	require.Equal(t, "created", entry["status"])
	require.Equal(t, int64(1), entry["voting_start"])
	require.Equal(t, int64(2), entry["voting_end"])
	require.NotContains(t, entry, "result")

	require.Equal(t, strings.Replace(URLReferendumByID, "{id}", rf.Id, -1), r.LinkSelf())
}
