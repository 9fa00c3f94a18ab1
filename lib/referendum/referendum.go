package referendum

import (
	"fmt"

	"boscoin.io/agora/lib/common"
	"boscoin.io/agora/lib/common/observer"
	"boscoin.io/agora/lib/errors"
	"boscoin.io/agora/lib/storage"
	"boscoin.io/agora/lib/voting"
)

// Referendum is a standalone vote over a fixed window. Unlike a proposal
// it has no deliberation phases; it only opens, optionally pauses, and
// closes. the storage should support,
//  * find by `Id`:
// 	- key: `Id`: value: `Referendum`
//  * get list by created order:
//
// models
//  * 'id'
// 	- 'rf-id-<Referendum.Id>': `Referendum`
//  * 'created'
// 	- 'rf-created-<sequential uuid1>': `Referendum.Id`

const ReferendumPrefixId string = "rf-id-"
const ReferendumPrefixCreated string = "rf-created-"

type Referendum struct {
	Id       string `json:"id"`
	Proposer string `json:"proposer"`
	Question string `json:"question"`

	Status    Status `json:"status"`
	CreatedAt int64  `json:"created_at"`

	// voting window in microseconds; ballots are accepted in
	// [VotingStart, VotingEnd)
	VotingStart int64 `json:"voting_start"`
	VotingEnd   int64 `json:"voting_end"`

	Ballots voting.Box `json:"ballots"`

	Result        *voting.TallyResult `json:"result,omitempty"`
	ConfirmedHash string              `json:"confirmed_hash,omitempty"`
}

func NewReferendum(proposer, question string, votingStart, votingEnd, now int64) *Referendum {
	return &Referendum{
		Id:          common.GetUniqueIDFromUUID(),
		Proposer:    proposer,
		Question:    question,
		Status:      StatusCreated,
		CreatedAt:   now,
		VotingStart: votingStart,
		VotingEnd:   votingEnd,
		Ballots:     voting.NewBox(),
	}
}

func (r *Referendum) String() string {
	return string(common.MustJSONMarshal(r))
}

func (r *Referendum) IsTerminal() bool {
	return r.Status.IsTerminal()
}

// InWindow reports whether `now` falls inside the voting window.
func (r *Referendum) InWindow(now int64) bool {
	return now >= r.VotingStart && now < r.VotingEnd
}

// transit walks one lifecycle edge; `InvalidTransition` when the edge
// does not exist.
func (r *Referendum) transit(next Status) error {
	if !r.Status.CanTransit(next) {
		return errors.InvalidTransition.Clone().
			SetData("id", r.Id).
			SetData("from", r.Status.String()).
			SetData("to", next.String())
	}
	r.Status = next

	return nil
}

func (r *Referendum) Save(st *storage.LevelDBBackend) (err error) {
	key := GetReferendumKey(r.Id)

	var exists bool
	exists, err = st.Has(key)
	if err != nil {
		return
	}

	if exists {
		err = st.Set(key, r)
	} else {
		err = st.New(key, r)
		if err != nil {
			return
		}
		createdKey := GetReferendumCreatedKey(common.GetUniqueIDFromUUID())
		err = st.New(createdKey, r.Id)
	}
	if err == nil {
		event := "saved"
		event += " " + fmt.Sprintf("id-%s", r.Id)
		observer.ReferendumObserver.Trigger(event, r)
	}

	return
}

func (r *Referendum) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(r)
	return
}

func GetReferendumKey(id string) string {
	return fmt.Sprintf("%s%s", ReferendumPrefixId, id)
}

func GetReferendumCreatedKey(created string) string {
	return fmt.Sprintf("%s%s", ReferendumPrefixCreated, created)
}

func ExistReferendum(st *storage.LevelDBBackend, id string) (bool, error) {
	return st.Has(GetReferendumKey(id))
}

func GetReferendum(st *storage.LevelDBBackend, id string) (r *Referendum, err error) {
	if err = st.Get(GetReferendumKey(id), &r); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.ReferendumNotFound
		}
		return
	}

	return
}

// GetReferendumIdsByCreated walks referendum ids in creation order. The
// returned key is the created-order storage key, usable as a page cursor.
func GetReferendumIdsByCreated(st *storage.LevelDBBackend, options *storage.IteratorOptions) (func() (string, []byte, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(ReferendumPrefixCreated, options)

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
