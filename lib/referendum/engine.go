package referendum

import (
	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/errors"
	"boscoin.io/agora/lib/ledger"
	"boscoin.io/agora/lib/metrics"
	"boscoin.io/agora/lib/storage"
	"boscoin.io/agora/lib/voting"
)

// Engine owns Referendum entities. Like the proposal engine it is
// reactive: status only changes when a caller invokes an operation with a
// clock reading. Mutating operations on the same referendum id are
// serialized.
type Engine struct {
	st       *storage.LevelDBBackend
	stakes   ledger.StakeLedger
	settings ledger.SettingsStore
	conf     common.Config

	locks *common.EntryLocker
}

func NewEngine(st *storage.LevelDBBackend, stakes ledger.StakeLedger, settings ledger.SettingsStore, conf common.Config) *Engine {
	return &Engine{
		st:       st,
		stakes:   stakes,
		settings: settings,
		conf:     conf,
		locks:    common.NewEntryLocker(),
	}
}

func dependencyError(err error) *errors.Error {
	return errors.DependencyUnavailable.Clone().SetData("error", err.Error())
}

func (e *Engine) policy() voting.ThresholdPolicy {
	policy, err := voting.NewThresholdPolicy(e.conf.ReferendumParticipationPct, e.conf.ReferendumApprovalPct)
	if err != nil {
		// Config percentages are validated at construction; reaching this
		// means the deployment shipped an impossible policy.
		panic(err)
	}

	return policy
}

func (e *Engine) minStake() (common.Amount, error) {
	value, err := e.settings.GetAmount(ledger.KeyMinStake)
	if err != nil {
		if err == errors.SettingDoesNotExist {
			return common.Amount(0), nil
		}
		return common.Amount(0), dependencyError(err)
	}

	return value, nil
}

// Create validates the voting window and the proposer's stake, then
// persists a new referendum in `created`.
func (e *Engine) Create(proposer, question string, votingStart, votingEnd, now int64) (*Referendum, error) {
	if votingEnd <= votingStart {
		return nil, errors.InvalidWindow.Clone().
			SetData("voting_start", votingStart).
			SetData("voting_end", votingEnd)
	}

	minimum, err := e.minStake()
	if err != nil {
		return nil, err
	}

	stake, err := e.stakes.GetStake(proposer, now)
	if err != nil {
		return nil, dependencyError(err)
	}
	if stake < minimum {
		return nil, errors.InsufficientStake.Clone().
			SetData("proposer", proposer).
			SetData("stake", stake).
			SetData("minimum", minimum)
	}

	r := NewReferendum(proposer, question, votingStart, votingEnd, now)

	if err := e.save(r); err != nil {
		return nil, err
	}

	log.Info("referendum created", "id", r.Id, "proposer", proposer, "voting_start", votingStart, "voting_end", votingEnd)
	metrics.Governance.AddReferendumsCreated(1)

	return r, nil
}

// Start opens the referendum for voting. `TooEarly` before the window
// opens; `InvalidTransition` from any status but `created`.
func (e *Engine) Start(id string, now int64) (*Referendum, error) {
	release := e.locks.Acquire(id)
	defer release()

	r, err := GetReferendum(e.st, id)
	if err != nil {
		return nil, err
	}

	// hold→started belongs to Resume
	if r.Status != StatusCreated {
		return nil, errors.InvalidTransition.Clone().
			SetData("id", id).
			SetData("from", r.Status.String()).
			SetData("to", StatusStarted.String())
	}

	if now < r.VotingStart {
		return nil, errors.TooEarly.Clone().
			SetData("id", id).
			SetData("voting_start", r.VotingStart)
	}

	if err := r.transit(StatusStarted); err != nil {
		return nil, err
	}

	if err := e.save(r); err != nil {
		return nil, err
	}

	log.Info("referendum started", "id", r.Id)

	return r, nil
}

// Hold pauses a started referendum; no ballots are accepted until
// `Resume`.
func (e *Engine) Hold(id string, now int64) (*Referendum, error) {
	release := e.locks.Acquire(id)
	defer release()

	r, err := GetReferendum(e.st, id)
	if err != nil {
		return nil, err
	}

	if err := r.transit(StatusHold); err != nil {
		return nil, err
	}

	if err := e.save(r); err != nil {
		return nil, err
	}

	log.Info("referendum held", "id", r.Id)

	return r, nil
}

// Resume reopens a held referendum. The voting window is unchanged; time
// spent on hold is not given back.
func (e *Engine) Resume(id string, now int64) (*Referendum, error) {
	release := e.locks.Acquire(id)
	defer release()

	r, err := GetReferendum(e.st, id)
	if err != nil {
		return nil, err
	}

	if r.Status != StatusHold {
		return nil, errors.InvalidTransition.Clone().
			SetData("id", id).
			SetData("from", r.Status.String()).
			SetData("to", StatusStarted.String())
	}

	if err := r.transit(StatusStarted); err != nil {
		return nil, err
	}

	if err := e.save(r); err != nil {
		return nil, err
	}

	log.Info("referendum resumed", "id", r.Id)

	return r, nil
}

// CastVote records a three-way ballot weighted by the voter's current
// stake. Valid only while the referendum is `started` and `now` falls in
// the voting window; a voter's later ballot replaces the earlier one.
func (e *Engine) CastVote(id, voter string, choice voting.Choice, now int64) (*Referendum, error) {
	release := e.locks.Acquire(id)
	defer release()

	if !choice.IsValid() {
		return nil, errors.InvalidVote.Clone().SetData("choice", string(choice))
	}

	r, err := GetReferendum(e.st, id)
	if err != nil {
		return nil, err
	}

	if r.Status != StatusStarted || !r.InWindow(now) {
		return nil, errors.PhaseClosed.Clone().SetData("status", r.Status.String())
	}

	stake, err := e.stakes.GetStake(voter, now)
	if err != nil {
		return nil, dependencyError(err)
	}
	if stake == 0 {
		return nil, errors.ZeroStake.Clone().SetData("voter", voter)
	}

	replaced := r.Ballots.Cast(voting.Ballot{
		Voter:  voter,
		Choice: choice,
		Weight: stake,
		CastAt: now,
	})

	if err := e.save(r); err != nil {
		return nil, err
	}

	log.Debug("ballot recorded", "id", r.Id, "voter", voter, "choice", string(choice), "weight", stake, "replaced", replaced)
	metrics.Governance.AddBallotsCast(1)

	return r, nil
}

// Finalize tallies a started referendum once its window has closed and
// commits the terminal status. A held referendum is left untouched so a
// paused vote never silently completes; it must be resumed first.
// Repeating the call on a terminal referendum is a no-op.
func (e *Engine) Finalize(id string, now int64) (*Referendum, error) {
	release := e.locks.Acquire(id)
	defer release()

	r, err := GetReferendum(e.st, id)
	if err != nil {
		return nil, err
	}

	if r.IsTerminal() || r.Status == StatusHold {
		return r, nil
	}

	if r.Status != StatusStarted {
		return nil, errors.InvalidTransition.Clone().
			SetData("id", id).
			SetData("from", r.Status.String())
	}

	if now < r.VotingEnd {
		return nil, errors.PhaseClosed.Clone().
			SetData("id", id).
			SetData("voting_end", r.VotingEnd)
	}

	total, err := e.stakes.GetTotalEligibleStake(now)
	if err != nil {
		return nil, dependencyError(err)
	}

	result := voting.Tally(r.Ballots, total, e.policy())

	r.Result = &result
	r.ConfirmedHash = base58.Encode(common.MustMakeObjectHash(result))

	if result.Decision == voting.ACCEPTED {
		r.Status = StatusAccepted
	} else {
		r.Status = StatusRejected
	}

	if err := e.save(r); err != nil {
		return nil, err
	}

	log.Info("referendum finalized",
		"id", r.Id,
		"decision", string(result.Decision),
		"favour", result.Favour,
		"against", result.Against,
		"abstain", result.Abstain,
		"cast", result.Cast,
		"total", result.TotalEligible,
	)
	metrics.Governance.AddReferendumsFinalized(1)

	return r, nil
}

// save commits the referendum inside a storage transaction so a failed
// operation leaves no partial mutation behind.
func (e *Engine) save(r *Referendum) error {
	ts, err := e.st.OpenTransaction()
	if err != nil {
		return err
	}

	if err := r.Save(ts); err != nil {
		ts.Discard()
		return err
	}

	return ts.Commit()
}
