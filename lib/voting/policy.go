package voting

import (
	"encoding/json"
	"sync"

	"boscoin.io/agora/lib/errors"
)

// ThresholdPolicy separates governance policy from tally mechanism: the
// participation percentage is the quorum floor over total eligible stake,
// the approval percentage is the share of favour+against the favour side
// must strictly exceed. Both are whole numbers out of 100.
type ThresholdPolicy interface {
	ParticipationPct() uint
	ApprovalPct() uint
}

type DefaultThresholdPolicy struct {
	sync.RWMutex

	participation uint
	approval      uint
}

func (p *DefaultThresholdPolicy) ParticipationPct() uint {
	p.RLock()
	defer p.RUnlock()

	return p.participation
}

func (p *DefaultThresholdPolicy) ApprovalPct() uint {
	p.RLock()
	defer p.RUnlock()

	return p.approval
}

func (p *DefaultThresholdPolicy) SetParticipationPct(n uint) error {
	if n > 100 {
		return errors.InvalidVotingThresholdPolicy
	}

	p.Lock()
	defer p.Unlock()

	p.participation = n

	return nil
}

func (p *DefaultThresholdPolicy) SetApprovalPct(n uint) error {
	if n < 1 || n > 100 {
		return errors.InvalidVotingThresholdPolicy
	}

	p.Lock()
	defer p.Unlock()

	p.approval = n

	return nil
}

func (p *DefaultThresholdPolicy) MarshalJSON() ([]byte, error) {
	p.RLock()
	defer p.RUnlock()

	return json.Marshal(map[string]interface{}{
		"participation": p.participation,
		"approval":      p.approval,
	})
}

func NewThresholdPolicy(participation, approval uint) (p *DefaultThresholdPolicy, err error) {
	if participation > 100 {
		err = errors.InvalidVotingThresholdPolicy
		return
	}
	if approval < 1 || approval > 100 {
		err = errors.InvalidVotingThresholdPolicy
		return
	}

	p = &DefaultThresholdPolicy{
		participation: participation,
		approval:      approval,
	}

	return
}
