package errors

// pre-defined `Errors`
var (
	StorageRecordDoesNotExist  = NewError(100, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(101, "record already exists in storage")
	StorageCoreError           = NewError(102, "storage error")

	MaximumBalanceReached    = NewError(103, "cannot increase stake over the full supply")
	AccountBalanceUnderZero  = NewError(104, "account balance would become negative")
	AccountAlreadyExists     = NewError(105, "stake account already exists")
	AccountDoesNotExist      = NewError(106, "stake account does not exist")
	SettingDoesNotExist      = NewError(107, "setting is not configured")

	InsufficientStake     = NewError(110, "proposer stake is under the minimum stake setting")
	InvalidTarget         = NewError(111, "target proposal is not under active deliberation")
	InvalidWindow         = NewError(112, "voting window end must be after its start")
	TooEarly              = NewError(113, "voting window has not opened yet")
	PhaseClosed           = NewError(114, "entity does not accept ballots in its current phase")
	ZeroStake             = NewError(115, "voter holds no stake")
	InvalidTransition     = NewError(116, "transition is not allowed from the current status")
	DependencyUnavailable = NewError(117, "external dependency is unavailable")
	Conflict              = NewError(118, "concurrent mutation detected; retry")

	ProposalNotFound   = NewError(119, "proposal not found")
	ReferendumNotFound = NewError(120, "referendum not found")

	InvalidVotingThresholdPolicy = NewError(121, "invalid voting threshold policy")
	InvalidPhaseDuration         = NewError(122, "invalid phase duration")
	InvalidVote                  = NewError(123, "invalid vote choice")
	InvalidProposalType          = NewError(124, "invalid proposal type")
	InvalidMessage               = NewError(125, "invalid message")
	BadPublicAddress             = NewError(126, "invalid public address")

	InvalidQueryString      = NewError(127, "found invalid query string")
	BadRequestParameter     = NewError(128, "found invalid request parameter")
	PageQueryLimitMaxExceed = NewError(129, "page query limit is greater than the max limit")
)
