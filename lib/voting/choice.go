package voting

// Choice is a single ballot's position. Referendums accept all three;
// proposal ballots are binary and map their `support` flag onto
// favour/against.
type Choice string

const (
	FAVOUR  Choice = "favour"
	AGAINST Choice = "against"
	ABSTAIN Choice = "abstain"
)

func (c Choice) IsValid() bool {
	switch c {
	case FAVOUR, AGAINST, ABSTAIN:
	default:
		return false
	}

	return true
}

// NewChoiceFromSupport maps a proposal ballot's binary position.
func NewChoiceFromSupport(support bool) Choice {
	if support {
		return FAVOUR
	}
	return AGAINST
}

// Decision is a tally's terminal outcome.
type Decision string

const (
	ACCEPTED Decision = "accepted"
	REJECTED Decision = "rejected"
)
