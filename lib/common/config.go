package common

//
// Config carries the governance policy knobs: default phase durations and
// the participation/approval thresholds per entity kind. Thresholds are
// policy, not mechanism; the tally engine reads them from here so that a
// deployment can tune its rules without touching aggregation logic.
//
// Percentages are whole numbers out of 100. Approval is strict: a vote
// passes only when the favour share exceeds the approval percentage, so a
// tie always fails.
//
const (
	HTTPCacheMemoryAdapterName = "mem"
	HTTPCacheRedisAdapterName  = "redis"

	DefaultHTTPCachePoolSize = 10000
)

type Config struct {
	DraftDurationDays  int64
	DialogDurationDays int64
	VotingDurationDays int64

	HTTPCacheAdapter    string
	HTTPCachePoolSize   int
	HTTPCacheRedisAddrs map[string]string

	MainParticipationPct uint
	MainApprovalPct      uint

	AmendmentParticipationPct uint
	AmendmentApprovalPct      uint

	DebateChangeParticipationPct uint
	DebateChangeApprovalPct      uint

	ReferendumParticipationPct uint
	ReferendumApprovalPct      uint
}

func NewConfig() Config {
	p := Config{}

	p.DraftDurationDays = 7
	p.DialogDurationDays = 7
	p.VotingDurationDays = 7

	p.HTTPCachePoolSize = DefaultHTTPCachePoolSize

	p.MainParticipationPct = 10
	p.MainApprovalPct = 50

	p.AmendmentParticipationPct = 10
	p.AmendmentApprovalPct = 66

	p.DebateChangeParticipationPct = 5
	p.DebateChangeApprovalPct = 50

	p.ReferendumParticipationPct = 10
	p.ReferendumApprovalPct = 50

	return p
}
