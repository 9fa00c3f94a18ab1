package voting

import (
	"boscoin.io/agora/lib/common"
)

// TallyResult is the deterministic outcome of aggregating a ballot box
// against a threshold policy. Produced once at finalization and read-only
// afterwards. All fields are unsigned so the result can be object-hashed
// for audit.
type TallyResult struct {
	Favour  common.Amount `json:"favour"`
	Against common.Amount `json:"against"`
	Abstain common.Amount `json:"abstain"`

	// Cast is the full participating weight, abstentions included.
	Cast common.Amount `json:"cast"`

	// TotalEligible is the ledger-supplied quorum denominator.
	TotalEligible common.Amount `json:"total_eligible"`

	QuorumMet bool     `json:"quorum_met"`
	Decision  Decision `json:"decision"`
}

// Tally aggregates `box` and decides the outcome:
//
//  * quorum: the cast weight (favour+against+abstain) must reach the
//    policy's participation fraction of `totalEligible`, and must be
//    nonzero; an empty vote never accepts.
//  * approval: the favour weight must strictly exceed both the against
//    weight and the policy's approval share of favour+against. Strictness
//    gives ties to the status quo.
//
// Anything else is rejected.
func Tally(box Box, totalEligible common.Amount, policy ThresholdPolicy) TallyResult {
	favour, against, abstain := box.WeightsByChoice()
	cast := favour.MustAdd(against).MustAdd(abstain)

	quorum := totalEligible.PercentOf(policy.ParticipationPct())
	quorumMet := cast > 0 && cast >= quorum

	decision := REJECTED
	if quorumMet && favour > against {
		ratio := favour.MustAdd(against)
		if favour > ratio.PercentOf(policy.ApprovalPct()) {
			decision = ACCEPTED
		}
	}

	return TallyResult{
		Favour:        favour,
		Against:       against,
		Abstain:       abstain,
		Cast:          cast,
		TotalEligible: totalEligible,
		QuorumMet:     quorumMet,
		Decision:      decision,
	}
}
