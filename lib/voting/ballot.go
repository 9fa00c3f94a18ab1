package voting

import (
	"boscoin.io/agora/lib/common"
)

// Ballot is one voter's recorded position: the choice, the stake snapshot
// taken when it was cast and the cast time in microseconds.
type Ballot struct {
	Voter  string        `json:"voter"`
	Choice Choice        `json:"choice"`
	Weight common.Amount `json:"weight"`
	CastAt int64         `json:"cast_at"`
}

// Box holds at most one ballot per voter; a later cast by the same voter
// replaces the earlier one rather than accumulating weight.
type Box map[ /* voter address */ string]Ballot

func NewBox() Box {
	return Box{}
}

func (box Box) Cast(b Ballot) (replaced bool) {
	_, replaced = box[b.Voter]
	box[b.Voter] = b

	return
}

func (box Box) IsVotedBy(voter string) bool {
	_, found := box[voter]
	return found
}

func (box Box) Len() int {
	return len(box)
}

// WeightsByChoice sums each choice's recorded weight.
func (box Box) WeightsByChoice() (favour, against, abstain common.Amount) {
	for _, b := range box {
		switch b.Choice {
		case FAVOUR:
			favour = favour.MustAdd(b.Weight)
		case AGAINST:
			against = against.MustAdd(b.Weight)
		case ABSTAIN:
			abstain = abstain.MustAdd(b.Weight)
		}
	}

	return
}
