package vcs

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/sopak/gopathdeps/files"
)

// Errors that occur when finding VCS repositories.
var (
	ErrNoVCSInDir = errors.New("could not find VCS repository in directory")
)

// In returns the type of VCS repository rooted at a directory, or
// ErrNoVCSInDir if none is found.
func In(dirname string) (VCS, error) {
	for _, vcs := range Types {
		ok, err := files.ExistsFolder(filepath.Join(dirname, MetadataFolder(vcs)))
		if err != nil {
			return 0, err
		}
		if ok {
			return vcs, nil
		}
	}
	return 0, ErrNoVCSInDir
}

// CheckedOut reports whether dirname is the root of a want repository. A
// directory holding a repository of another VCS is an error, since updating it
// would mix checkouts.
func CheckedOut(dirname string, want VCS) (bool, error) {
	found, err := In(dirname)
	if err == ErrNoVCSInDir {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if found != want {
		return false, errors.Errorf("%s holds a %s checkout, not %s", dirname, found, want)
	}
	return true, nil
}
