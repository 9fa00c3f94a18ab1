package proposal

import (
	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/errors"
	"boscoin.io/agora/lib/ledger"
	"boscoin.io/agora/lib/metrics"
	"boscoin.io/agora/lib/storage"
	"boscoin.io/agora/lib/voting"
)

// Engine owns Proposal entities and drives their phase transitions. It is
// purely reactive: nothing advances until an external caller invokes
// `Advance`/`Finalize` with a clock reading. Mutating operations on the
// same proposal id are serialized; operations on distinct ids run
// concurrently.
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

// policyFor builds the threshold policy a proposal type votes under.
func (e *Engine) policyFor(kind Type) voting.ThresholdPolicy {
	var participation, approval uint
	switch kind {
	case TypeAmendment:
		participation, approval = e.conf.AmendmentParticipationPct, e.conf.AmendmentApprovalPct
	case TypeExtendDebate, TypeShortenDebate:
		participation, approval = e.conf.DebateChangeParticipationPct, e.conf.DebateChangeApprovalPct
	default:
		participation, approval = e.conf.MainParticipationPct, e.conf.MainApprovalPct
	}

	policy, err := voting.NewThresholdPolicy(participation, approval)
	if err != nil {
		// Config percentages are validated at construction; reaching this
		// means the deployment shipped an impossible policy.
		panic(err)
	}

	return policy
}

// minStake reads the minimum-stake setting; an unconfigured value means no
// minimum.
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

// Create validates the proposer's stake against the minimum-stake setting
// and, for modifier types, the target's phase, then persists a new
// proposal in `discussion`.
func (e *Engine) Create(kind Type, proposer, targetId string, durations PhaseDurations, now int64) (*Proposal, error) {
	if !kind.IsValid() {
		return nil, errors.InvalidProposalType.Clone().SetData("type", string(kind))
	}

	if durations == nil {
		durations = DefaultPhaseDurations(e.conf)
	}
	if err := durations.IsWellFormed(); err != nil {
		return nil, err
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

	if kind.IsModifier() {
		if len(targetId) == 0 {
			return nil, errors.InvalidTarget
		}
		target, err := GetProposal(e.st, targetId)
		if err != nil {
			if err == errors.ProposalNotFound {
				return nil, errors.InvalidTarget.Clone().SetData("target", targetId)
			}
			return nil, err
		}
		// modifier proposals may only attach to a proposal still under
		// active deliberation
		if target.Phase != PhaseDebate && target.Phase != PhaseVoting {
			return nil, errors.InvalidTarget.Clone().
				SetData("target", targetId).
				SetData("phase", target.Phase.String())
		}
	} else if len(targetId) != 0 {
		return nil, errors.InvalidTarget.Clone().SetData("target", targetId)
	}

	p := NewProposal(kind, proposer, targetId, durations, now)

	if err := e.save(p); err != nil {
		return nil, err
	}

	log.Info("proposal created", "id", p.Id, "type", p.Type, "proposer", proposer)
	metrics.Governance.AddProposalsCreated(1)

	return p, nil
}

// Advance moves the proposal one phase forward once the current phase's
// duration has elapsed. From `voting`, elapse finalizes instead of bumping.
// Idempotent: before the deadline nothing happens, and repeating a call
// after it cannot double-transition because `PhaseEnteredAt` resets.
// A phase with the undefined duration never advances here; it waits for
// `ForceAdvance`.
func (e *Engine) Advance(id string, now int64) (*Proposal, error) {
	release := e.locks.Acquire(id)
	defer release()

	p, err := GetProposal(e.st, id)
	if err != nil {
		return nil, err
	}

	if p.IsTerminal() {
		return p, nil
	}

	deadline, ok := p.PhaseDeadline()
	if !ok || now < deadline {
		return p, nil
	}

	if p.Phase == PhaseVoting {
		return e.finalize(p, now)
	}

	from := p.Phase
	p.enterPhase(p.Phase.Next(), now)

	if err := e.save(p); err != nil {
		return nil, err
	}

	log.Info("proposal advanced", "id", p.Id, "from", from, "to", p.Phase)

	return p, nil
}

// ForceAdvance is the explicit counterpart of `Advance` for phases
// configured with the undefined duration. It fails with
// `InvalidTransition` when the current phase has a deadline; those phases
// only progress by elapse.
func (e *Engine) ForceAdvance(id string, now int64) (*Proposal, error) {
	release := e.locks.Acquire(id)
	defer release()

	p, err := GetProposal(e.st, id)
	if err != nil {
		return nil, err
	}

	if p.IsTerminal() {
		return p, nil
	}

	if _, ok := p.PhaseDeadline(); ok {
		return nil, errors.InvalidTransition.Clone().
			SetData("id", id).
			SetData("phase", p.Phase.String())
	}

	if p.Phase == PhaseVoting {
		return e.finalize(p, now)
	}

	from := p.Phase
	p.enterPhase(p.Phase.Next(), now)

	if err := e.save(p); err != nil {
		return nil, err
	}

	log.Info("proposal force-advanced", "id", p.Id, "from", from, "to", p.Phase)

	return p, nil
}

// CastVote records a binary ballot weighted by the voter's current stake.
// Valid only during the `voting` phase and inside its window; a voter's
// later ballot replaces the earlier one.
func (e *Engine) CastVote(id, voter string, support bool, now int64) (*Proposal, error) {
	release := e.locks.Acquire(id)
	defer release()

	p, err := GetProposal(e.st, id)
	if err != nil {
		return nil, err
	}

	if p.Phase != PhaseVoting || now < p.PhaseEnteredAt {
		return nil, errors.PhaseClosed.Clone().SetData("phase", p.Phase.String())
	}
	if deadline, ok := p.PhaseDeadline(); ok && now >= deadline {
		return nil, errors.PhaseClosed.Clone().SetData("phase", p.Phase.String())
	}

	stake, err := e.stakes.GetStake(voter, now)
	if err != nil {
		return nil, dependencyError(err)
	}
	if stake == 0 {
		return nil, errors.ZeroStake.Clone().SetData("voter", voter)
	}

	replaced := p.Ballots.Cast(voting.Ballot{
		Voter:  voter,
		Choice: voting.NewChoiceFromSupport(support),
		Weight: stake,
		CastAt: now,
	})

	if err := e.save(p); err != nil {
		return nil, err
	}

	log.Debug("ballot recorded", "id", p.Id, "voter", voter, "support", support, "weight", stake, "replaced", replaced)
	metrics.Governance.AddBallotsCast(1)

	return p, nil
}

// Finalize tallies the voting phase once its window has elapsed and
// commits the terminal phase/status. Repeating the call on a terminal
// proposal is a no-op and does not re-run the tally.
func (e *Engine) Finalize(id string, now int64) (*Proposal, error) {
	release := e.locks.Acquire(id)
	defer release()

	p, err := GetProposal(e.st, id)
	if err != nil {
		return nil, err
	}

	if p.IsTerminal() {
		return p, nil
	}

	if p.Phase != PhaseVoting {
		return nil, errors.PhaseClosed.Clone().SetData("phase", p.Phase.String())
	}

	deadline, ok := p.PhaseDeadline()
	if !ok || now < deadline {
		// an open-ended voting phase closes only through ForceAdvance
		return nil, errors.PhaseClosed.Clone().SetData("phase", p.Phase.String())
	}

	return e.finalize(p, now)
}

// finalize runs the tally and commits the terminal record; callers hold
// the per-id lock.
func (e *Engine) finalize(p *Proposal, now int64) (*Proposal, error) {
	total, err := e.stakes.GetTotalEligibleStake(now)
	if err != nil {
		return nil, dependencyError(err)
	}

	result := voting.Tally(p.Ballots, total, e.policyFor(p.Type))

	p.Result = &result
	p.ConfirmedHash = base58.Encode(common.MustMakeObjectHash(result))

	if result.Decision == voting.ACCEPTED {
		p.enterPhase(PhaseAccepted, now)
	} else {
		p.enterPhase(PhaseRejected, now)
	}

	if err := e.save(p); err != nil {
		return nil, err
	}

	log.Info("proposal finalized",
		"id", p.Id,
		"decision", string(result.Decision),
		"favour", result.Favour,
		"against", result.Against,
		"cast", result.Cast,
		"total", result.TotalEligible,
	)
	metrics.Governance.AddProposalsFinalized(1)

	return p, nil
}

// save commits the proposal inside a storage transaction so a failed
// operation leaves no partial mutation behind.
func (e *Engine) save(p *Proposal) error {
	ts, err := e.st.OpenTransaction()
	if err != nil {
		return err
	}

	if err := p.Save(ts); err != nil {
		ts.Discard()
		return err
	}

	return ts.Commit()
}
