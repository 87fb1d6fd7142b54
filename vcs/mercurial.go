package vcs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/sopak/gopathdeps/exec"
)

// MercurialBackend provides Mercurial repositories through the `hg` binary.
type MercurialBackend struct{}

func (MercurialBackend) Supports(ref Reference) bool { return ref.Type == Mercurial }

func (MercurialBackend) Provide(ref Reference) Repository { return &MercurialRepository{ref: ref} }

// MercurialRepository implements Repository for a remote Mercurial repository.
type MercurialRepository struct {
	ref Reference
}

func (m *MercurialRepository) Reference() Reference { return m.ref }

func hgCmd() (string, error) {
	cmd, _, err := exec.Which("--version", os.Getenv("HG_BINARY"), "hg")
	if err != nil {
		return "", errors.Wrap(err, "could not find Mercurial binary")
	}
	return cmd, nil
}

func (m *MercurialRepository) UpdateIfRequired(targetRoot string) (*FullReference, error) {
	cmd, err := hgCmd()
	if err != nil {
		return nil, err
	}

	dir := m.ref.Dir(targetRoot)
	exists, err := CheckedOut(dir, Mercurial)
	if err != nil {
		return nil, err
	}
	if !exists {
		return m.clone(cmd, dir)
	}

	before, err := hgRevision(cmd, dir)
	if err != nil {
		return nil, err
	}
	_, _, err = exec.Run(exec.Cmd{Name: cmd, Argv: []string{"pull"}, Dir: dir})
	if err != nil {
		return nil, errors.Wrapf(err, "could not pull %s", m.ref.URL)
	}
	_, _, err = exec.Run(exec.Cmd{Name: cmd, Argv: m.updateArgv(), Dir: dir})
	if err != nil {
		return nil, errors.Wrapf(err, "could not update %s", m.ref.String())
	}
	after, err := hgRevision(cmd, dir)
	if err != nil {
		return nil, err
	}
	if after == before {
		log.WithField("reference", m.ref.String()).Debug("Mercurial repository is up to date")
		return nil, nil
	}
	return m.full(cmd, dir, after)
}

func (m *MercurialRepository) ForceUpdate(targetRoot string) error {
	cmd, err := hgCmd()
	if err != nil {
		return err
	}
	dir := m.ref.Dir(targetRoot)
	err = os.RemoveAll(dir)
	if err != nil {
		return errors.Wrapf(err, "could not remove %s", dir)
	}
	_, err = m.clone(cmd, dir)
	return err
}

func (m *MercurialRepository) clone(cmd, dir string) (*FullReference, error) {
	err := os.MkdirAll(filepath.Dir(dir), 0755)
	if err != nil {
		return nil, err
	}
	cleanup := cleanupOnFailure(dir)
	argv := []string{"clone"}
	if m.ref.Ref != "" {
		argv = append(argv, "-u", m.ref.Ref)
	}
	argv = append(argv, m.ref.URL, dir)
	_, _, err = exec.Run(exec.Cmd{Name: cmd, Argv: argv})
	if err != nil {
		cleanup()
		return nil, errors.Wrapf(err, "could not clone %s", m.ref.URL)
	}
	revision, err := hgRevision(cmd, dir)
	if err != nil {
		return nil, err
	}
	return m.full(cmd, dir, revision)
}

func (m *MercurialRepository) updateArgv() []string {
	if m.ref.Ref == "" {
		return []string{"update"}
	}
	return []string{"update", "-r", m.ref.Ref}
}

func (m *MercurialRepository) full(cmd, dir, revision string) (*FullReference, error) {
	branch, _, err := exec.Run(exec.Cmd{Name: cmd, Argv: []string{"branch"}, Dir: dir})
	if err != nil {
		return nil, errors.Wrapf(err, "could not run `%s branch`", cmd)
	}
	return &FullReference{
		Reference: m.ref,
		Revision:  revision,
		Branch:    strings.TrimSpace(branch),
	}, nil
}

func hgRevision(cmd, dir string) (string, error) {
	// hg log -l 1 -r . --template '{node}'
	revision, _, err := exec.Run(exec.Cmd{
		Name: cmd,
		Argv: []string{"log", "-l", "1", "-r", ".", "--template", "{node}"},
		Dir:  dir,
	})
	if err != nil {
		return "", errors.Wrapf(err, "could not get latest revision ID")
	}
	return strings.TrimSpace(revision), nil
}
