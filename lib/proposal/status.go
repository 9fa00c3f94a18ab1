package proposal

// Status is the coarse lifecycle position; `open` covers every
// non-terminal phase. Phase and status are kept consistent by the engine
// and checkable through `Proposal.IsConsistent`.
type Status string

const (
	StatusOpen     Status = "open"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// StatusOf derives the status a phase must pair with.
func StatusOf(p Phase) Status {
	switch p {
	case PhaseAccepted:
		return StatusAccepted
	case PhaseRejected:
		return StatusRejected
	default:
		return StatusOpen
	}
}
