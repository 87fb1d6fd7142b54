// Package cache sweeps the dependency cache.
package cache

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/apex/log"
	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"

	"github.com/sopak/gopathdeps/config"
	"github.com/sopak/gopathdeps/dependency"
	"github.com/sopak/gopathdeps/files"
	"github.com/sopak/gopathdeps/vcs"
)

// A Sweeper deletes directories from the dependency cache.
type Sweeper struct {
	Root             string
	DeleteUnknown    bool
	DeleteAllOnClean bool
}

// New constructs the Sweeper configured by s.
func New(s config.Settings) *Sweeper {
	return &Sweeper{
		Root:             s.Dependencies.Cache,
		DeleteUnknown:    s.Dependencies.DeleteUnknown,
		DeleteAllOnClean: s.Dependencies.DeleteAllOnClean,
	}
}

// WalkError is returned when the cache could not be walked. Nothing is deleted
// when it occurs.
type WalkError struct {
	Root  string
	Cause error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("could not walk dependency cache %s: %s", e.Root, e.Cause)
}

func (e *WalkError) Unwrap() error {
	return e.Cause
}

// KnownIdentifiers returns the repository roots of every declared dependency,
// sorted. Keeping whole repositories keeps their metadata folders and sibling
// packages.
func KnownIdentifiers(configurations dependency.Configurations) []string {
	known := mapset.NewThreadUnsafeSet()
	for _, dep := range configurations.All() {
		known.Add(vcs.RootOf(dep.Name))
	}

	var roots []string
	for _, root := range known.ToSlice() {
		roots = append(roots, root.(string))
	}
	sort.Strings(roots)
	return roots
}

// DeleteUnknownIfRequired deletes every directory that is not related to a
// known identifier, deepest first, if deleting unknown directories is enabled.
// It returns the deleted directories.
func (s *Sweeper) DeleteUnknownIfRequired(known []string) ([]string, error) {
	if !s.DeleteUnknown {
		return nil, nil
	}
	candidates, err := s.Unknown(known)
	if err != nil {
		return nil, err
	}
	return remove(candidates)
}

// DeleteAllIfRequired deletes the whole dependency cache, if enabled. It
// returns the directories the cache contained, deepest first and the root
// last. A root that is a symbolic link is emptied instead of removed.
func (s *Sweeper) DeleteAllIfRequired() ([]string, error) {
	if !s.DeleteAllOnClean {
		return nil, nil
	}
	dirs, err := s.All()
	if err != nil || len(dirs) == 0 {
		return nil, err
	}

	log.WithField("root", s.Root).Debug("deleting dependency cache")
	err = removeRoot(s.Root)
	if err != nil {
		return nil, err
	}
	return dirs, nil
}

// removeRoot removes the cache root. A root that is a symbolic link keeps the
// link and its target directory, and only the target's contents are removed,
// so the configured location stays usable.
func removeRoot(root string) error {
	info, err := os.Lstat(root)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return os.RemoveAll(root)
	}

	target, err := filepath.EvalSymlinks(root)
	if err != nil {
		return err
	}
	entries, err := ioutil.ReadDir(target)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		err := os.RemoveAll(filepath.Join(target, entry.Name()))
		if err != nil {
			return err
		}
	}
	return nil
}

// All returns every directory of the cache, deepest first and the root last.
func (s *Sweeper) All() ([]string, error) {
	dirs, err := directories(s.Root)
	if err != nil {
		return nil, err
	}
	deepestFirst(dirs)
	return dirs, nil
}

// Unknown returns the directories that a sweep would delete, deepest first.
func (s *Sweeper) Unknown(known []string) ([]string, error) {
	states, err := Classify(s.Root, mapset.NewThreadUnsafeSetFromSlice(toInterfaces(known)))
	if err != nil {
		return nil, err
	}

	var candidates []string
	for dir, state := range states {
		if state == Unknown {
			candidates = append(candidates, dir)
		}
	}
	deepestFirst(candidates)
	return candidates, nil
}

// Classify returns the state of every directory below root. known holds
// slash-separated identifiers relative to root.
func Classify(root string, known mapset.Set) (map[string]State, error) {
	root = filepath.Clean(root)
	dirs, err := directories(root)
	if err != nil {
		return nil, err
	}
	if len(dirs) > 0 {
		dirs = dirs[1:] // The root itself is never classified.
	}
	return classify(root, dirs, known), nil
}

// classify is independent of the order of dirs: a match upgrades its
// ancestors whenever it is visited, and a descendant is recognized by its
// identifier rather than by the states seen so far.
func classify(root string, dirs []string, known mapset.Set) map[string]State {
	states := make(map[string]State)
	upgrade := func(dir string, state State) {
		if current, ok := states[dir]; !ok || current < state {
			states[dir] = state
		}
	}

	for _, dir := range dirs {
		id := identifier(root, dir)
		switch {
		case known.Contains(id):
			upgrade(dir, Match)
			for ancestor := filepath.Dir(dir); ancestor != root && files.Within(root, ancestor); ancestor = filepath.Dir(ancestor) {
				upgrade(ancestor, AncestorOfMatch)
			}
		case hasKnownAncestor(id, known):
			upgrade(dir, DescendantOfMatch)
		default:
			upgrade(dir, Unknown)
		}
	}
	return states
}

func identifier(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return dir
	}
	return filepath.ToSlash(rel)
}

func hasKnownAncestor(id string, known mapset.Set) bool {
	for ancestor := path.Dir(id); ancestor != "." && ancestor != "/"; ancestor = path.Dir(ancestor) {
		if known.Contains(ancestor) {
			return true
		}
	}
	return false
}

// directories returns root and every directory below it in walk order. A
// missing root has no directories. A root that is a symbolic link is walked
// through, and the directories are reported below root.
func directories(root string) ([]string, error) {
	ok, err := files.ExistsFolder(root)
	if err != nil {
		return nil, &WalkError{Root: root, Cause: err}
	}
	if !ok {
		regular, err := files.Exists(root)
		if err != nil {
			return nil, &WalkError{Root: root, Cause: err}
		}
		if regular {
			return nil, &WalkError{Root: root, Cause: errors.New("not a directory")}
		}
		return nil, nil
	}

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, &WalkError{Root: root, Cause: err}
	}

	var dirs []string
	err = filepath.Walk(resolved, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(resolved, p)
		if err != nil {
			return err
		}
		dirs = append(dirs, filepath.Join(root, rel))
		return nil
	})
	if err != nil {
		return nil, &WalkError{Root: root, Cause: err}
	}
	return dirs, nil
}

// deepestFirst sorts directories so that every directory precedes its
// ancestors.
func deepestFirst(dirs []string) {
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
}

// remove deletes dirs in order. It stops at the first failure, and returns
// the directories deleted so far.
func remove(dirs []string) ([]string, error) {
	var deleted []string
	for _, dir := range dirs {
		log.WithField("dir", dir).Debug("deleting unknown directory")
		err := os.RemoveAll(dir)
		if err != nil {
			return deleted, err
		}
		deleted = append(deleted, dir)
	}
	return deleted, nil
}

func toInterfaces(strs []string) []interface{} {
	is := make([]interface{}, len(strs))
	for i, s := range strs {
		is[i] = s
	}
	return is
}
