package fetch

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/sopak/gopathdeps/dependency"
)

// An Outcome records what fetching did for a dependency.
type Outcome int

const (
	AlreadyPresent Outcome = iota
	Downloaded
)

func (o Outcome) String() string {
	switch o {
	case AlreadyPresent:
		return "already-present"
	case Downloaded:
		return "downloaded"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	s := o.String()
	if s == "" {
		return nil, errors.Errorf("unknown outcome %d", int(o))
	}
	return []byte(s), nil
}

// A Result is the outcome of handling one dependency.
type Result struct {
	Dependency dependency.Dependency
	Outcome    Outcome
}

// Results maps dependency identifiers to their results.
type Results map[string]Result

// Sorted returns the results ordered by identifier.
func (r Results) Sorted() []Result {
	var names []string
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)

	sorted := make([]Result, 0, len(names))
	for _, name := range names {
		sorted = append(sorted, r[name])
	}
	return sorted
}

// Downloaded returns the identifiers of dependencies that were fetched.
func (r Results) Downloaded() []string {
	var names []string
	for _, result := range r.Sorted() {
		if result.Outcome == Downloaded {
			names = append(names, result.Dependency.Name)
		}
	}
	return names
}
