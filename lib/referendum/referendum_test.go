package referendum

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/storage"
)

func TestStatusRoundTrip(t *testing.T) {
	for _, status := range []Status{StatusCreated, StatusStarted, StatusHold, StatusAccepted, StatusRejected} {
		b, err := status.MarshalJSON()
		require.Nil(t, err)

		var parsed Status
		require.Nil(t, parsed.UnmarshalJSON(b))
		require.Equal(t, status, parsed)
	}
}

func TestStatusTransitions(t *testing.T) {
	require.True(t, StatusCreated.CanTransit(StatusStarted))
	require.False(t, StatusCreated.CanTransit(StatusHold))
	require.False(t, StatusCreated.CanTransit(StatusAccepted))

	require.True(t, StatusStarted.CanTransit(StatusHold))
	require.True(t, StatusStarted.CanTransit(StatusAccepted))
	require.True(t, StatusStarted.CanTransit(StatusRejected))

	require.True(t, StatusHold.CanTransit(StatusStarted))
	require.False(t, StatusHold.CanTransit(StatusAccepted))

	require.False(t, StatusAccepted.CanTransit(StatusStarted))
	require.False(t, StatusRejected.CanTransit(StatusStarted))
}

func TestReferendumIdsByCreatedOrder(t *testing.T) {
	st, _ := storage.NewTestMemoryLevelDBBackend()
	defer st.Close()

	var createdOrder []string
	for i := 0; i < 10; i++ {
		r := NewReferendum("GPROPOSER", "question", common.MicrosecondsPerDay, 2*common.MicrosecondsPerDay, int64(i))
		require.Nil(t, r.Save(st))
		createdOrder = append(createdOrder, r.Id)
	}

	var saved []string
	iterFunc, closeFunc := GetReferendumIdsByCreated(st, nil)
	for {
		id, _, hasNext := iterFunc()
		if !hasNext {
			break
		}
		saved = append(saved, id)
	}
	closeFunc()

	require.Equal(t, createdOrder, saved)
}
