package proposal

import (
	"fmt"

	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/common/observer"
	"boscoin.io/agora/lib/errors"
	"boscoin.io/agora/lib/storage"
	"boscoin.io/agora/lib/voting"
)

// Proposal is a governance item progressing through
// discussion → debate → debatevoting → voting to a binary outcome. the
// storage should support,
//  * find by `Id`:
// 	- key: `Id`: value: `Proposal`
//  * get list by created order:
//
// models
//  * 'id'
// 	- 'pp-id-<Proposal.Id>': `Proposal`
//  * 'created'
// 	- 'pp-created-<sequential uuid1>': `Proposal.Id`

const ProposalPrefixId string = "pp-id-"
const ProposalPrefixCreated string = "pp-created-"

type Proposal struct {
	Id               string `json:"id"`
	Type             Type   `json:"type"`
	Proposer         string `json:"proposer"`
	TargetProposalId string `json:"target_proposal_id,omitempty"`

	Phase          Phase  `json:"phase"`
	Status         Status `json:"status"`
	PhaseEnteredAt int64  `json:"phase_entered_at"`
	CreatedAt      int64  `json:"created_at"`

	Durations PhaseDurations `json:"phase_durations"`
	Ballots   voting.Box     `json:"ballots"`

	Result        *voting.TallyResult `json:"result,omitempty"`
	ConfirmedHash string              `json:"confirmed_hash,omitempty"`
}

func NewProposal(kind Type, proposer, targetId string, durations PhaseDurations, now int64) *Proposal {
	return &Proposal{
		Id:               common.GetUniqueIDFromUUID(),
		Type:             kind,
		Proposer:         proposer,
		TargetProposalId: targetId,
		Phase:            PhaseDiscussion,
		Status:           StatusOpen,
		PhaseEnteredAt:   now,
		CreatedAt:        now,
		Durations:        durations,
		Ballots:          voting.NewBox(),
	}
}

func (p *Proposal) String() string {
	return string(common.MustJSONMarshal(p))
}

// IsConsistent checks the phase/status pairing invariant.
func (p *Proposal) IsConsistent() bool {
	return p.Status == StatusOf(p.Phase) && p.Phase != PhaseNONE
}

func (p *Proposal) IsTerminal() bool {
	return p.Phase.IsTerminal()
}

// enterPhase moves to `next` keeping phase and status consistent; the only
// mutation path for the pairing.
func (p *Proposal) enterPhase(next Phase, now int64) {
	p.Phase = next
	p.Status = StatusOf(next)
	p.PhaseEnteredAt = now
}

// PhaseDeadline returns the microsecond instant the current phase expires
// at, or false when the phase's duration is the undefined sentinel.
func (p *Proposal) PhaseDeadline() (int64, bool) {
	days := p.Durations.Days(p.Phase)
	if days == common.UndefinedDurationDays {
		return 0, false
	}

	return p.PhaseEnteredAt + common.DaysToMicroseconds(days), true
}

func (p *Proposal) Save(st *storage.LevelDBBackend) (err error) {
	key := GetProposalKey(p.Id)

	var exists bool
	exists, err = st.Has(key)
	if err != nil {
		return
	}

	if exists {
		err = st.Set(key, p)
	} else {
		err = st.New(key, p)
		if err != nil {
			return
		}
		createdKey := GetProposalCreatedKey(common.GetUniqueIDFromUUID())
		err = st.New(createdKey, p.Id)
	}
	if err == nil {
		event := "saved"
		event += " " + fmt.Sprintf("id-%s", p.Id)
		observer.ProposalObserver.Trigger(event, p)
	}

	return
}

func (p *Proposal) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(p)
	return
}

func GetProposalKey(id string) string {
	return fmt.Sprintf("%s%s", ProposalPrefixId, id)
}

func GetProposalCreatedKey(created string) string {
	return fmt.Sprintf("%s%s", ProposalPrefixCreated, created)
}

func ExistProposal(st *storage.LevelDBBackend, id string) (bool, error) {
	return st.Has(GetProposalKey(id))
}

func GetProposal(st *storage.LevelDBBackend, id string) (p *Proposal, err error) {
	if err = st.Get(GetProposalKey(id), &p); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.ProposalNotFound
		}
		return
	}

	return
}

// GetProposalIdsByCreated walks proposal ids in creation order. The
// returned key is the created-order storage key, usable as a page cursor.
func GetProposalIdsByCreated(st *storage.LevelDBBackend, options *storage.IteratorOptions) (func() (string, []byte, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(ProposalPrefixCreated, options)

	return (func() (string, []byte, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return "", nil, false
			}

			var id string
			common.MustUnmarshalJSON(item.Value, &id)
			return id, item.Clone().Key, hasNext
		}), (func() {
			closeFunc()
		})
}
