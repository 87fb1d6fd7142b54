package files

import (
	"errors"
	"path/filepath"
)

var (
	ErrDirNotFound = errors.New("no directory found during walk")
	ErrStopWalk    = errors.New("walk: stop")
)

// A WalkUpFunc takes a directory and returns an error.
type WalkUpFunc func(dir string) error

// WalkUpWithin takes a root, a starting directory and a WalkUpFunc, and calls
// the function, passing each ancestor of the starting directory in upwards
// order. The walk visits root itself but never its ancestors. A starting
// directory outside of root is never visited.
//
// If the function returns ErrStopWalk, then WalkUpWithin stops and returns the
// current directory name. If the function returns any other error, then the
// walk stops and that error is returned. If ErrStopWalk is never returned,
// WalkUpWithin returns ErrDirNotFound.
func WalkUpWithin(root, startdir string, walker WalkUpFunc) (string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	dir, err := filepath.Abs(startdir)
	if err != nil {
		return "", err
	}
	if !Within(root, dir) {
		return "", ErrDirNotFound
	}
	return walkUp(dir, func(d string) bool { return d != root }, walker)
}

func walkUp(dir string, more func(dir string) bool, walker WalkUpFunc) (string, error) {
	for ; more(dir); dir = filepath.Dir(dir) {
		err := walker(dir)
		if err == ErrStopWalk {
			return dir, nil
		}
		if err != nil {
			return "", err
		}
	}

	// Run once at the last directory.
	err := walker(dir)
	if err == ErrStopWalk {
		return dir, nil
	}
	if err != nil {
		return "", err
	}
	return "", ErrDirNotFound
}
