package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/agora/lib/common"
)

func TestAPIReferendumLifecycle(t *testing.T) {
	ts, st, clock, addresses := prepareAPIServer(common.Amount(1000), common.Amount(500))
	defer st.Close()
	defer ts.Close()

	day := common.MicrosecondsPerDay

	status, recv := postJSON(t, ts.URL+"/v1/referendums", ReferendumBody{
		Proposer:    addresses[0],
		Question:    "lower the minimum stake",
		VotingStart: day,
		VotingEnd:   2 * day,
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "created", recv["status"])

	id := recv["id"].(string)

	// too early to start
	status, _ = postJSON(t, fmt.Sprintf("%s/v1/referendums/%s/start", ts.URL, id), nil)
	require.Equal(t, http.StatusBadRequest, status)

	clock.Set(day)
	status, recv = postJSON(t, fmt.Sprintf("%s/v1/referendums/%s/start", ts.URL, id), nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "started", recv["status"])

	// hold blocks ballots until resume
	status, _ = postJSON(t, fmt.Sprintf("%s/v1/referendums/%s/hold", ts.URL, id), nil)
	require.Equal(t, http.StatusOK, status)

	clock.Set(day + 1)
	status, _ = postJSON(t, fmt.Sprintf("%s/v1/referendums/%s/votes", ts.URL, id), ReferendumVoteBody{
		Voter:  addresses[0],
		Choice: "favour",
	})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = postJSON(t, fmt.Sprintf("%s/v1/referendums/%s/resume", ts.URL, id), nil)
	require.Equal(t, http.StatusOK, status)

	status, recv = postJSON(t, fmt.Sprintf("%s/v1/referendums/%s/votes", ts.URL, id), ReferendumVoteBody{
		Voter:  addresses[0],
		Choice: "favour",
	})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1), recv["ballot_count"])

	// an unknown choice is rejected
	status, _ = postJSON(t, fmt.Sprintf("%s/v1/referendums/%s/votes", ts.URL, id), ReferendumVoteBody{
		Voter:  addresses[1],
		Choice: "maybe",
	})
	require.Equal(t, http.StatusBadRequest, status)

	clock.Set(2 * day)
	status, recv = postJSON(t, fmt.Sprintf("%s/v1/referendums/%s/finalize", ts.URL, id), nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "accepted", recv["status"])

	status, recv = getJSON(t, ts.URL+"/v1/referendums/"+id)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "accepted", recv["status"])
	require.NotNil(t, recv["result"])
}

func TestAPIReferendumInvalidWindow(t *testing.T) {
	ts, st, _, addresses := prepareAPIServer(common.Amount(1000))
	defer st.Close()
	defer ts.Close()

	day := common.MicrosecondsPerDay

	status, recv := postJSON(t, ts.URL+"/v1/referendums", ReferendumBody{
		Proposer:    addresses[0],
		Question:    "question",
		VotingStart: 2 * day,
		VotingEnd:   day,
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, float64(http.StatusBadRequest), recv["status"])
}

func TestAPIReferendumNotFound(t *testing.T) {
	ts, st, _, _ := prepareAPIServer(common.Amount(1000))
	defer st.Close()
	defer ts.Close()

	status, _ := getJSON(t, ts.URL+"/v1/referendums/no-such-id")
	require.Equal(t, http.StatusNotFound, status)
}
