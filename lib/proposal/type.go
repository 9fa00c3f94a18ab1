package proposal

// Type distinguishes main proposals from the modifier kinds that attach to
// one. The string values follow the on-chain vocabulary.
type Type string

const (
	TypeMain          Type = "main"
	TypeAmendment     Type = "amendment"
	TypeExtendDebate  Type = "extenddebate"
	TypeShortenDebate Type = "shortndebate"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeMain, TypeAmendment, TypeExtendDebate, TypeShortenDebate:
	default:
		return false
	}

	return true
}

// IsModifier reports whether the type must reference a target proposal.
func (t Type) IsModifier() bool {
	switch t {
	case TypeAmendment, TypeExtendDebate, TypeShortenDebate:
	default:
		return false
	}

	return true
}
