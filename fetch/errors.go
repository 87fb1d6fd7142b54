package fetch

import (
	"fmt"

	"github.com/sopak/gopathdeps/vcs"
)

// UnresolvableReferenceError is returned when no VCS backend can provide a
// dependency that is not part of the workspace.
type UnresolvableReferenceError struct {
	Reference vcs.Reference
}

func (e *UnresolvableReferenceError) Error() string {
	return fmt.Sprintf("could not download dependency: no VCS backend recognizes %s", e.Reference)
}
