package proposal

import (
	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/errors"
)

// DurationKind names the three configurable spans of a proposal's life:
// `draft` covers discussion, `dialog` covers debate and debate-voting,
// `voting` covers the final voting window.
type DurationKind string

const (
	DurationDraft  DurationKind = "draft"
	DurationDialog DurationKind = "dialog"
	DurationVoting DurationKind = "voting"
)

// PhaseDurations maps a duration kind to a span in whole days.
// `common.UndefinedDurationDays` (-1) means the phase never auto-expires
// and progresses only through `ForceAdvance`.
type PhaseDurations map[DurationKind]int64

func NewPhaseDurations(draft, dialog, voting int64) PhaseDurations {
	return PhaseDurations{
		DurationDraft:  draft,
		DurationDialog: dialog,
		DurationVoting: voting,
	}
}

func DefaultPhaseDurations(conf common.Config) PhaseDurations {
	return NewPhaseDurations(conf.DraftDurationDays, conf.DialogDurationDays, conf.VotingDurationDays)
}

func (d PhaseDurations) IsWellFormed() error {
	for _, kind := range []DurationKind{DurationDraft, DurationDialog, DurationVoting} {
		days, ok := d[kind]
		if !ok {
			return errors.InvalidPhaseDuration.Clone().SetData("kind", string(kind))
		}
		if days < 1 && days != common.UndefinedDurationDays {
			return errors.InvalidPhaseDuration.Clone().SetData("kind", string(kind))
		}
	}

	return nil
}

// DurationKindOf returns which configured span gates a deliberation phase.
func DurationKindOf(p Phase) DurationKind {
	switch p {
	case PhaseDiscussion:
		return DurationDraft
	case PhaseDebate, PhaseDebateVoting:
		return DurationDialog
	default:
		return DurationVoting
	}
}

// Days returns the configured day count for the span gating `p`.
func (d PhaseDurations) Days(p Phase) int64 {
	return d[DurationKindOf(p)]
}
