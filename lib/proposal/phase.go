package proposal

import "fmt"

type Phase uint

const (
	PhaseNONE Phase = iota
	PhaseDiscussion
	PhaseDebate
	PhaseDebateVoting
	PhaseVoting
	PhaseAccepted
	PhaseRejected
)

func (p Phase) String() string {
	switch p {
	case PhaseDiscussion:
		return "discussion"
	case PhaseDebate:
		return "debate"
	case PhaseDebateVoting:
		return "debatevoting"
	case PhaseVoting:
		return "voting"
	case PhaseAccepted:
		return "accepted"
	case PhaseRejected:
		return "rejected"
	default:
		return "nophase"
	}
}

// Next returns the following deliberation phase. Transitions are strictly
// forward; the terminal phases are reached through finalize, not Next.
func (p Phase) Next() Phase {
	switch p {
	case PhaseDiscussion:
		return PhaseDebate
	case PhaseDebate:
		return PhaseDebateVoting
	case PhaseDebateVoting:
		return PhaseVoting
	default:
		return PhaseNONE
	}
}

func (p Phase) IsTerminal() bool {
	switch p {
	case PhaseAccepted, PhaseRejected:
	default:
		return false
	}

	return true
}

// IsOpen reports whether the phase belongs to the `open` status.
func (p Phase) IsOpen() bool {
	switch p {
	case PhaseDiscussion, PhaseDebate, PhaseDebateVoting, PhaseVoting:
	default:
		return false
	}

	return true
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", p.String())), nil
}

func (p *Phase) UnmarshalJSON(b []byte) (err error) {
	switch string(b[1 : len(b)-1]) {
	case "discussion":
		*p = PhaseDiscussion
	case "debate":
		*p = PhaseDebate
	case "debatevoting":
		*p = PhaseDebateVoting
	case "voting":
		*p = PhaseVoting
	case "accepted":
		*p = PhaseAccepted
	case "rejected":
		*p = PhaseRejected
	default:
		*p = PhaseNONE
	}

	return
}
