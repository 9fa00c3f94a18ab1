package proposal

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/errors"
	"boscoin.io/agora/lib/voting"
)

const day = common.MicrosecondsPerDay

func TestEngineCreate(t *testing.T) {
	e, st, addresses := TestMakeEngine(common.Amount(500), common.Amount(1000))
	defer st.Close()

	p, err := e.Create(TypeMain, addresses[0], "", NewPhaseDurations(1, 1, 1), 0)
	require.Nil(t, err)
	require.Equal(t, PhaseDiscussion, p.Phase)
	require.Equal(t, StatusOpen, p.Status)
	require.True(t, p.IsConsistent())

	fetched, err := GetProposal(st, p.Id)
	require.Nil(t, err)
	require.Equal(t, p.Id, fetched.Id)
}

func TestEngineCreateInsufficientStake(t *testing.T) {
	e, st, addresses := TestMakeEngine(common.Amount(500), common.Amount(499))
	defer st.Close()

	_, err := e.Create(TypeMain, addresses[0], "", nil, 0)
	require.True(t, errors.InsufficientStake.Equal(err))
}

func TestEngineCreateNoMinimumConfigured(t *testing.T) {
	// without a configured minimum, a zero-stake proposer may submit
	e, st, addresses := TestMakeEngine(common.Amount(0), common.Amount(0))
	defer st.Close()

	_, err := e.Create(TypeMain, addresses[0], "", nil, 0)
	require.Nil(t, err)
}

func TestEngineCreateInvalidTarget(t *testing.T) {
	e, st, addresses := TestMakeEngine(common.Amount(0), common.Amount(1000))
	defer st.Close()

	// modifier without a target
	_, err := e.Create(TypeAmendment, addresses[0], "", nil, 0)
	require.True(t, errors.InvalidTarget.Equal(err))

	// modifier against a missing target
	_, err = e.Create(TypeAmendment, addresses[0], "no-such-id", nil, 0)
	require.True(t, errors.InvalidTarget.Equal(err))

	// modifier against a target still in discussion
	target, err := e.Create(TypeMain, addresses[0], "", NewPhaseDurations(1, 1, 1), 0)
	require.Nil(t, err)
	_, err = e.Create(TypeAmendment, addresses[0], target.Id, nil, 0)
	require.True(t, errors.InvalidTarget.Equal(err))

	// once the target reaches debate the modifier attaches
	_, err = e.Advance(target.Id, day)
	require.Nil(t, err)
	modifier, err := e.Create(TypeAmendment, addresses[0], target.Id, nil, day)
	require.Nil(t, err)
	require.Equal(t, target.Id, modifier.TargetProposalId)

	// main proposals carry no target
	_, err = e.Create(TypeMain, addresses[0], target.Id, nil, day)
	require.True(t, errors.InvalidTarget.Equal(err))
}

func TestEngineAdvanceSequence(t *testing.T) {
	e, st, addresses := TestMakeEngine(common.Amount(0), common.Amount(1000))
	defer st.Close()

	p, err := e.Create(TypeMain, addresses[0], "", NewPhaseDurations(1, 1, 1), 0)
	require.Nil(t, err)

	// before the deadline nothing moves
	p, err = e.Advance(p.Id, day-1)
	require.Nil(t, err)
	require.Equal(t, PhaseDiscussion, p.Phase)

	p, err = e.Advance(p.Id, day)
	require.Nil(t, err)
	require.Equal(t, PhaseDebate, p.Phase)
	require.Equal(t, day, p.PhaseEnteredAt)

	// repeating right away cannot double-transition
	p, err = e.Advance(p.Id, day)
	require.Nil(t, err)
	require.Equal(t, PhaseDebate, p.Phase)

	p, err = e.Advance(p.Id, 2*day)
	require.Nil(t, err)
	require.Equal(t, PhaseDebateVoting, p.Phase)

	p, err = e.Advance(p.Id, 3*day)
	require.Nil(t, err)
	require.Equal(t, PhaseVoting, p.Phase)
	require.True(t, p.IsConsistent())
}

func TestEngineForceAdvanceGating(t *testing.T) {
	e, st, addresses := TestMakeEngine(common.Amount(0), common.Amount(1000))
	defer st.Close()

	// discussion never expires; debate and voting run on deadlines
	p, err := e.Create(TypeMain, addresses[0], "", NewPhaseDurations(common.UndefinedDurationDays, 1, 1), 0)
	require.Nil(t, err)

	// Advance is a no-op on an open-ended phase, however late
	p, err = e.Advance(p.Id, 100*day)
	require.Nil(t, err)
	require.Equal(t, PhaseDiscussion, p.Phase)

	p, err = e.ForceAdvance(p.Id, 100*day)
	require.Nil(t, err)
	require.Equal(t, PhaseDebate, p.Phase)

	// ForceAdvance is rejected once a deadline governs the phase
	_, err = e.ForceAdvance(p.Id, 100*day)
	require.True(t, errors.InvalidTransition.Equal(err))
}

func TestEngineCastVoteWindow(t *testing.T) {
	e, st, addresses := TestMakeEngine(common.Amount(0), common.Amount(1000), common.Amount(600))
	defer st.Close()
	proposer, voter := addresses[0], addresses[1]

	p, err := e.Create(TypeMain, proposer, "", NewPhaseDurations(1, 1, 1), 0)
	require.Nil(t, err)

	// voting has not opened
	_, err = e.CastVote(p.Id, voter, true, 0)
	require.True(t, errors.PhaseClosed.Equal(err))

	for _, now := range []int64{day, 2 * day, 3 * day} {
		_, err = e.Advance(p.Id, now)
		require.Nil(t, err)
	}

	p, err = e.CastVote(p.Id, voter, true, 3*day+1)
	require.Nil(t, err)
	require.True(t, p.Ballots.IsVotedBy(voter))

	// at the window's end the phase no longer accepts ballots
	_, err = e.CastVote(p.Id, voter, true, 4*day)
	require.True(t, errors.PhaseClosed.Equal(err))
}

func TestEngineCastVoteZeroStake(t *testing.T) {
	e, st, addresses := TestMakeEngine(common.Amount(0), common.Amount(1000), common.Amount(0))
	defer st.Close()
	proposer, broke := addresses[0], addresses[1]

	p, err := e.Create(TypeMain, proposer, "", NewPhaseDurations(1, 1, 1), 0)
	require.Nil(t, err)
	for _, now := range []int64{day, 2 * day, 3 * day} {
		_, err = e.Advance(p.Id, now)
		require.Nil(t, err)
	}

	_, err = e.CastVote(p.Id, broke, true, 3*day+1)
	require.True(t, errors.ZeroStake.Equal(err))

	// unknown voters read as zero stake too
	_, err = e.CastVote(p.Id, "GUNKNOWN", true, 3*day+1)
	require.True(t, errors.ZeroStake.Equal(err))
}

func TestEngineBallotReplacement(t *testing.T) {
	e, st, addresses := TestMakeEngine(common.Amount(0), common.Amount(1000), common.Amount(600))
	defer st.Close()
	proposer, voter := addresses[0], addresses[1]

	p, err := e.Create(TypeMain, proposer, "", NewPhaseDurations(1, 1, 1), 0)
	require.Nil(t, err)
	for _, now := range []int64{day, 2 * day, 3 * day} {
		_, err = e.Advance(p.Id, now)
		require.Nil(t, err)
	}

	_, err = e.CastVote(p.Id, voter, true, 3*day+1)
	require.Nil(t, err)
	p, err = e.CastVote(p.Id, voter, false, 3*day+2)
	require.Nil(t, err)

	require.Equal(t, 1, p.Ballots.Len())
	favour, against, _ := p.Ballots.WeightsByChoice()
	require.Equal(t, common.Amount(0), favour)
	require.Equal(t, common.Amount(600), against)
}

// the scenario: proposer holds 1000 against a 500 minimum; 600 support vs
// 300 oppose accepts at the window close.
func TestEngineFullScenario(t *testing.T) {
	e, st, addresses := TestMakeEngine(
		common.Amount(500),
		common.Amount(1000), common.Amount(600), common.Amount(300),
	)
	defer st.Close()
	proposer, yes, no := addresses[0], addresses[1], addresses[2]

	p, err := e.Create(TypeMain, proposer, "", NewPhaseDurations(1, 1, 1), 0)
	require.Nil(t, err)

	for _, now := range []int64{day, 2 * day, 3 * day} {
		p, err = e.Advance(p.Id, now)
		require.Nil(t, err)
	}
	require.Equal(t, PhaseVoting, p.Phase)

	_, err = e.CastVote(p.Id, yes, true, 3*day+1)
	require.Nil(t, err)
	_, err = e.CastVote(p.Id, no, false, 3*day+2)
	require.Nil(t, err)

	p, err = e.Finalize(p.Id, 4*day)
	require.Nil(t, err)
	require.Equal(t, PhaseAccepted, p.Phase)
	require.Equal(t, StatusAccepted, p.Status)
	require.True(t, p.IsConsistent())

	require.NotNil(t, p.Result)
	require.Equal(t, voting.ACCEPTED, p.Result.Decision)
	require.Equal(t, common.Amount(600), p.Result.Favour)
	require.Equal(t, common.Amount(300), p.Result.Against)
	require.True(t, p.Result.QuorumMet)
	require.NotEmpty(t, p.ConfirmedHash)
}

func TestEngineFinalizeIdempotent(t *testing.T) {
	e, st, addresses := TestMakeEngine(common.Amount(0), common.Amount(1000))
	defer st.Close()

	p, err := e.Create(TypeMain, addresses[0], "", NewPhaseDurations(1, 1, 1), 0)
	require.Nil(t, err)
	for _, now := range []int64{day, 2 * day, 3 * day} {
		_, err = e.Advance(p.Id, now)
		require.Nil(t, err)
	}

	first, err := e.Finalize(p.Id, 4*day)
	require.Nil(t, err)
	require.True(t, first.IsTerminal())

	second, err := e.Finalize(p.Id, 5*day)
	require.Nil(t, err)
	require.Equal(t, first.Phase, second.Phase)
	require.Equal(t, first.Result, second.Result)
	require.Equal(t, first.PhaseEnteredAt, second.PhaseEnteredAt)
}

func TestEngineFinalizeBeforeClose(t *testing.T) {
	e, st, addresses := TestMakeEngine(common.Amount(0), common.Amount(1000))
	defer st.Close()

	p, err := e.Create(TypeMain, addresses[0], "", NewPhaseDurations(1, 1, 1), 0)
	require.Nil(t, err)

	_, err = e.Finalize(p.Id, day)
	require.True(t, errors.PhaseClosed.Equal(err))

	for _, now := range []int64{day, 2 * day, 3 * day} {
		_, err = e.Advance(p.Id, now)
		require.Nil(t, err)
	}

	_, err = e.Finalize(p.Id, 3*day+1)
	require.True(t, errors.PhaseClosed.Equal(err))
}

func TestEngineAdvanceFinalizesVoting(t *testing.T) {
	e, st, addresses := TestMakeEngine(common.Amount(0), common.Amount(1000))
	defer st.Close()

	p, err := e.Create(TypeMain, addresses[0], "", NewPhaseDurations(1, 1, 1), 0)
	require.Nil(t, err)
	for _, now := range []int64{day, 2 * day, 3 * day} {
		_, err = e.Advance(p.Id, now)
		require.Nil(t, err)
	}

	// nobody voted; elapse of the voting phase rejects
	p, err = e.Advance(p.Id, 4*day)
	require.Nil(t, err)
	require.Equal(t, PhaseRejected, p.Phase)
	require.Equal(t, StatusRejected, p.Status)
	require.False(t, p.Result.QuorumMet)
}

func TestEngineConcurrentCastVote(t *testing.T) {
	balances := []common.Amount{common.Amount(1000)}
	for i := 0; i < 20; i++ {
		balances = append(balances, common.Amount(10))
	}
	e, st, addresses := TestMakeEngine(common.Amount(0), balances...)
	defer st.Close()

	p, err := e.Create(TypeMain, addresses[0], "", NewPhaseDurations(1, 1, 1), 0)
	require.Nil(t, err)
	for _, now := range []int64{day, 2 * day, 3 * day} {
		_, err = e.Advance(p.Id, now)
		require.Nil(t, err)
	}

	var wg sync.WaitGroup
	for _, voter := range addresses[1:] {
		wg.Add(1)
		go func(voter string) {
			defer wg.Done()
			_, err := e.CastVote(p.Id, voter, true, 3*day+1)
			require.Nil(t, err)
		}(voter)
	}
	wg.Wait()

	p, err = GetProposal(st, p.Id)
	require.Nil(t, err)
	require.Equal(t, 20, p.Ballots.Len())

	favour, _, _ := p.Ballots.WeightsByChoice()
	require.Equal(t, common.Amount(200), favour)
}

// random operation sequences must never break the phase/status pairing or
// reorder the phase sequence.
func TestEnginePhaseStatusConsistencyProperty(t *testing.T) {
	e, st, addresses := TestMakeEngine(common.Amount(0), common.Amount(1000), common.Amount(500))
	defer st.Close()
	proposer, voter := addresses[0], addresses[1]

	rnd := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		p, err := e.Create(TypeMain, proposer, "", NewPhaseDurations(1, 1, 1), 0)
		require.Nil(t, err)

		lastPhase := p.Phase
		var now int64
		for step := 0; step < 50; step++ {
			now += rnd.Int63n(day)

			switch rnd.Intn(3) {
			case 0:
				p, err = e.Advance(p.Id, now)
				require.Nil(t, err)
			case 1:
				if _, err := e.CastVote(p.Id, voter, rnd.Intn(2) == 0, now); err != nil {
					require.True(t, errors.PhaseClosed.Equal(err))
				}
			case 2:
				if q, err := e.Finalize(p.Id, now); err != nil {
					require.True(t, errors.PhaseClosed.Equal(err))
				} else {
					p = q
				}
			}

			p, err = GetProposal(st, p.Id)
			require.Nil(t, err)
			require.True(t, p.IsConsistent())

			// strictly forward, never skipping
			if p.Phase != lastPhase {
				if !lastPhase.IsTerminal() && !p.Phase.IsTerminal() {
					require.Equal(t, lastPhase.Next(), p.Phase)
				}
				if p.Phase.IsTerminal() {
					require.Equal(t, PhaseVoting, lastPhase)
				}
				lastPhase = p.Phase
			}
		}
	}
}
