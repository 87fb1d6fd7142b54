package vcs

// A Repository is a remote repository that can be materialized below a target
// root directory.
type Repository interface {
	Reference() Reference

	// UpdateIfRequired clones or updates the repository below targetRoot. It is
	// idempotent, and returns a FullReference only if the checked-out content
	// changed.
	UpdateIfRequired(targetRoot string) (*FullReference, error)

	// ForceUpdate discards any existing checkout below targetRoot and fetches
	// the repository again.
	ForceUpdate(targetRoot string) error
}

// A Provider resolves references to repositories.
type Provider interface {
	TryProvideFor(ref Reference) (Repository, bool)
}

// A Backend provides repositories of the references it supports.
type Backend interface {
	Supports(ref Reference) bool
	Provide(ref Reference) Repository
}

// Combined is a Provider that asks each of its backends in order.
type Combined []Backend

// NewProvider returns a Provider supporting git, Mercurial and Subversion.
func NewProvider() Combined {
	return Combined{
		GitBackend{},
		MercurialBackend{},
		SubversionBackend{},
	}
}

// TryProvideFor returns the repository of the first backend supporting ref.
func (c Combined) TryProvideFor(ref Reference) (Repository, bool) {
	if ref.Root == "" || ref.URL == "" {
		return nil, false
	}
	for _, backend := range c {
		if backend.Supports(ref) {
			return backend.Provide(ref), true
		}
	}
	return nil, false
}
