package referendum

import (
	"boscoin.io/agora/lib/common"
)

// Status follows the referendum lifecycle,
//
//	created → started → accepted
//	                  → rejected
//	          started ↔ hold
//
// `started ↔ hold` is the only edge that may be walked back; every other
// transition is forward-only.
type Status uint

const (
	StatusNONE Status = iota
	StatusCreated
	StatusStarted
	StatusHold
	StatusAccepted
	StatusRejected
)

var statusString = map[Status]string{
	StatusNONE:     "nostatus",
	StatusCreated:  "created",
	StatusStarted:  "started",
	StatusHold:     "hold",
	StatusAccepted: "accepted",
	StatusRejected: "rejected",
}

func (s Status) String() string {
	if name, found := statusString[s]; found {
		return name
	}
	return "nostatus"
}

func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransit reports whether the lifecycle permits the edge `s → next`.
func (s Status) CanTransit(next Status) bool {
	switch s {
	case StatusCreated:
		return next == StatusStarted
	case StatusStarted:
		return next == StatusHold || next == StatusAccepted || next == StatusRejected
	case StatusHold:
		return next == StatusStarted
	}

	return false
}

func (s Status) MarshalJSON() ([]byte, error) {
	return common.EncodeJSONValue(s.String())
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var name string
	if err := common.DecodeJSONValue(b, &name); err != nil {
		return err
	}

	for status, statusName := range statusString {
		if name == statusName {
			*s = status
			return nil
		}
	}
	*s = StatusNONE

	return nil
}
