package dependency

import (
	"errors"
	"strings"
)

// The Kind of a Dependency records where its sources were found, and therefore
// whether it may be handed to a version control system.
type Kind int

// Supported dependency kinds.
const (
	Invalid    Kind = iota // Placeholder
	Source                 // Part of the project's own workspace tree; never fetched.
	Implicit               // Found in a vendor folder, the dependency cache or the workspace.
	System                 // Found under the toolchain's standard library root.
	Unresolved             // Not found anywhere; a candidate for fetching.
)

// AllKinds enumerates all dependency kinds.
var AllKinds = []Kind{
	Source,
	Implicit,
	System,
	Unresolved,
}

// ErrUnknownKind is returned when parsing an unrecognized kind.
var ErrUnknownKind = errors.New("unknown dependency kind")

// ParseKind returns the canonical dependency kind given a string key.
func ParseKind(key string) (Kind, error) {
	switch strings.ToLower(key) {
	case "project":
		fallthrough
	case "source":
		return Source, nil

	case "":
		fallthrough
	case "transitive":
		fallthrough
	case "implicit":
		return Implicit, nil

	case "stdlib":
		fallthrough
	case "goroot":
		fallthrough
	case "system":
		return System, nil

	case "missing":
		fallthrough
	case "unresolved":
		return Unresolved, nil

	default:
		return Invalid, ErrUnknownKind
	}
}

func (k Kind) String() string {
	switch k {
	case Source:
		return "source"
	case Implicit:
		return "implicit"
	case System:
		return "system"
	case Unresolved:
		return "unresolved"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
