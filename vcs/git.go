package vcs

import (
	"os"

	"github.com/apex/log"
	"github.com/pkg/errors"
	git "gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing"
)

// GitBackend provides git repositories through go-git.
type GitBackend struct{}

func (GitBackend) Supports(ref Reference) bool { return ref.Type == Git }

func (GitBackend) Provide(ref Reference) Repository { return &GitRepository{ref: ref} }

// GitRepository implements Repository for a remote git repository.
type GitRepository struct {
	ref Reference
}

func (g *GitRepository) Reference() Reference { return g.ref }

func (g *GitRepository) UpdateIfRequired(targetRoot string) (*FullReference, error) {
	dir := g.ref.Dir(targetRoot)
	r, err := git.PlainOpen(dir)
	if err == git.ErrRepositoryNotExists {
		return g.clone(dir)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not open git repository at %s", dir)
	}

	before, err := r.Head()
	if err != nil {
		return nil, errors.Wrapf(err, "could not read HEAD of %s", dir)
	}

	if g.ref.Ref == "" {
		err = g.pull(r)
	} else {
		err = g.fetchAndCheckout(r)
	}
	if err != nil {
		return nil, err
	}

	after, err := r.Head()
	if err != nil {
		return nil, errors.Wrapf(err, "could not read HEAD of %s", dir)
	}
	if after.Hash() == before.Hash() {
		log.WithField("reference", g.ref.String()).Debug("git repository is up to date")
		return nil, nil
	}
	return g.full(after), nil
}

func (g *GitRepository) ForceUpdate(targetRoot string) error {
	dir := g.ref.Dir(targetRoot)
	err := os.RemoveAll(dir)
	if err != nil {
		return errors.Wrapf(err, "could not remove %s", dir)
	}
	_, err = g.clone(dir)
	return err
}

func (g *GitRepository) clone(dir string) (*FullReference, error) {
	log.WithFields(log.Fields{
		"url": g.ref.URL,
		"dir": dir,
	}).Debug("cloning git repository")

	cleanup := cleanupOnFailure(dir)
	r, err := git.PlainClone(dir, false, &git.CloneOptions{
		URL:               g.ref.URL,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		cleanup()
		return nil, errors.Wrapf(err, "could not clone %s", g.ref.URL)
	}
	if g.ref.Ref != "" {
		err = g.checkout(r)
		if err != nil {
			return nil, err
		}
	}

	head, err := r.Head()
	if err != nil {
		return nil, errors.Wrapf(err, "could not read HEAD of %s", dir)
	}
	return g.full(head), nil
}

func (g *GitRepository) pull(r *git.Repository) error {
	w, err := r.Worktree()
	if err != nil {
		return errors.Wrap(err, "could not open git worktree")
	}
	err = w.Pull(&git.PullOptions{RemoteName: git.DefaultRemoteName})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return errors.Wrapf(err, "could not pull %s", g.ref.URL)
	}
	return nil
}

func (g *GitRepository) fetchAndCheckout(r *git.Repository) error {
	err := r.Fetch(&git.FetchOptions{
		RemoteName: git.DefaultRemoteName,
		Tags:       git.AllTags,
		Force:      true,
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return errors.Wrapf(err, "could not fetch %s", g.ref.URL)
	}
	return g.checkout(r)
}

// checkout moves the worktree to the configured ref. Remote branches take
// precedence over stale local ones.
func (g *GitRepository) checkout(r *git.Repository) error {
	var hash *plumbing.Hash
	var err error
	for _, candidate := range []string{git.DefaultRemoteName + "/" + g.ref.Ref, g.ref.Ref} {
		hash, err = r.ResolveRevision(plumbing.Revision(candidate))
		if err == nil {
			break
		}
	}
	if err != nil {
		return errors.Wrapf(err, "could not resolve %s", g.ref.String())
	}

	w, err := r.Worktree()
	if err != nil {
		return errors.Wrap(err, "could not open git worktree")
	}
	err = w.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true})
	if err != nil {
		return errors.Wrapf(err, "could not check out %s", g.ref.String())
	}
	return nil
}

func (g *GitRepository) full(head *plumbing.Reference) *FullReference {
	branch := ""
	if head.Name().IsBranch() {
		branch = head.Name().Short()
	}
	return &FullReference{
		Reference: g.ref,
		Revision:  head.Hash().String(),
		Branch:    branch,
	}
}
