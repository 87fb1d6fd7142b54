package cache

// State classifies a directory of the dependency cache against the known
// dependencies. States are ordered by strength: a directory's state is only
// ever upgraded.
type State int

const (
	Unknown           State = iota // Not related to any known dependency.
	DescendantOfMatch              // Inside a known dependency.
	AncestorOfMatch                // Contains a known dependency.
	Match                          // Is a known dependency.
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case DescendantOfMatch:
		return "descendant-of-match"
	case AncestorOfMatch:
		return "ancestor-of-match"
	case Match:
		return "match"
	default:
		return ""
	}
}
