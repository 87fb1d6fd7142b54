// Package fixtures builds throwaway GOPATH trees and git repositories for
// tests.
package fixtures

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	git "gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/plumbing/object"
)

// Directory creates a temporary directory that is removed when the test
// finishes.
func Directory(t *testing.T) string {
	dir, err := ioutil.TempDir("", "gopathdeps-fixtures-")
	require.NoError(t, err)
	dir, err = filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// Tree writes files below root. Keys are slash-separated paths relative to
// root; a key ending in "/" creates an empty directory.
func Tree(t *testing.T, root string, tree map[string]string) {
	for name, contents := range tree {
		path := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0644))
	}
}

// GoFile returns the contents of a Go source file in package pkg that imports
// every path in imports.
func GoFile(pkg string, imports ...string) string {
	src := "package " + pkg + "\n"
	if len(imports) > 0 {
		src += "\nimport (\n"
		for _, i := range imports {
			src += "\t_ \"" + i + "\"\n"
		}
		src += ")\n"
	}
	return src
}

// Workspace is a GOPATH-style layout with a workspace, a dependency cache and
// a toolchain root, all below one temporary directory.
type Workspace struct {
	Gopath string // Workspace GOPATH; sources live in Gopath/src.
	Cache  string // Dependency cache root.
	Goroot string // Toolchain root; sources live in Goroot/src.
}

// NewWorkspace creates an empty Workspace.
func NewWorkspace(t *testing.T) Workspace {
	dir := Directory(t)
	w := Workspace{
		Gopath: filepath.Join(dir, "gopath"),
		Cache:  filepath.Join(dir, "cache"),
		Goroot: filepath.Join(dir, "goroot"),
	}
	for _, d := range []string{w.Src(), w.Cache, w.GorootSrc()} {
		require.NoError(t, os.MkdirAll(d, 0755))
	}
	return w
}

func (w Workspace) Src() string { return filepath.Join(w.Gopath, "src") }

func (w Workspace) GorootSrc() string { return filepath.Join(w.Goroot, "src") }

// GitRepository initializes a git repository at dir and commits tree to it.
// It returns the commit hash.
func GitRepository(t *testing.T, dir string, tree map[string]string) string {
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return Commit(t, dir, tree)
}

// Commit writes tree into the git repository at dir and commits it. It returns
// the commit hash.
func Commit(t *testing.T, dir string, tree map[string]string) string {
	r, err := git.PlainOpen(dir)
	require.NoError(t, err)
	w, err := r.Worktree()
	require.NoError(t, err)

	Tree(t, dir, tree)
	var names []string
	for name := range tree {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, err := w.Add(name)
		require.NoError(t, err)
	}

	hash, err := w.Commit("fixture", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "fixture",
			Email: "fixture@example.org",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
	return hash.String()
}
