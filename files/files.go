// Package files implements utility routines for finding and reading files.
package files

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/apex/log"
)

func fileMode(elem ...string) (os.FileMode, error) {
	file, err := os.Stat(filepath.Join(elem...))
	if err != nil {
		return 0, err
	}

	return file.Mode(), nil
}

// Exists reports whether a regular file exists at the joined path.
func Exists(pathElems ...string) (bool, error) {
	mode, err := fileMode(pathElems...)
	if notExistErr(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return mode.IsRegular(), nil
}

// ExistsFolder reports whether a directory exists at the joined path.
func ExistsFolder(pathElems ...string) (bool, error) {
	mode, err := fileMode(pathElems...)
	if notExistErr(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return mode.IsDir(), nil
}

func ReadFile(pathElems ...string) ([]byte, error) {
	name := filepath.Join(pathElems...)

	log.WithField("filename", name).Debug("reading file")
	contents, err := ioutil.ReadFile(name)
	if err != nil {
		log.WithError(err).WithField("filename", name).Debug("could not read file")
	}

	return contents, err
}

// notExistErr also accepts ENOTDIR, which stat returns when a parent of the
// path is a regular file, e.g.
// stat /some/file.json/child: not a directory
// Other errors, such as permission failures, are real errors.
func notExistErr(err error) bool {
	return os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR)
}

// Within reports whether dir is root or lies below it. Both paths are compared
// lexically after cleaning.
func Within(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
