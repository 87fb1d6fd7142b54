package files_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sopak/gopathdeps/files"
)

func TestNonExistentParentIsNotErr(t *testing.T) {
	ok, err := files.Exists(filepath.Join("testdata", "parent", "does", "not", "exist", "file"))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFileParentIsNotErr(t *testing.T) {
	dir, err := ioutil.TempDir("", "gopathdeps-files")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "file.json")
	require.NoError(t, ioutil.WriteFile(file, []byte("{}"), 0644))

	ok, err := files.ExistsFolder(file, "child")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPermissionDeniedIsErr(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permissions are not enforced")
	}
	dir, err := ioutil.TempDir("", "gopathdeps-files")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.MkdirAll(filepath.Join(locked, "inner"), 0755))
	require.NoError(t, os.Chmod(locked, 0))
	defer os.Chmod(locked, 0755)

	_, err = files.ExistsFolder(locked, "inner")
	assert.Error(t, err)
	_, err = files.ContainsSources(filepath.Join(locked, "inner"))
	assert.Error(t, err)
}

func TestWithin(t *testing.T) {
	root := filepath.Join("gopath", "src")
	assert.True(t, files.Within(root, root))
	assert.True(t, files.Within(root, filepath.Join(root, "github.com", "a")))
	assert.False(t, files.Within(root, "gopath"))
	assert.False(t, files.Within(root, filepath.Join("gopath", "srcfoo")))
	assert.True(t, files.Within(root, filepath.Join(root, "..foo")))
}

func TestSourceFiles(t *testing.T) {
	dir, err := ioutil.TempDir("", "gopathdeps-files")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	for _, name := range []string{"b.go", "a.go", "README.md", "a_test.go"} {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte("package a\n"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.go"), 0755))

	found, err := files.SourceFiles(dir)
	assert.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.go"),
		filepath.Join(dir, "a_test.go"),
		filepath.Join(dir, "b.go"),
	}, found)

	ok, err := files.ContainsSources(dir)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = files.ContainsSources(filepath.Join(dir, "missing"))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestWalkUpWithinStops(t *testing.T) {
	start := filepath.Join(os.TempDir(), "a", "b")
	var seen []string
	found, err := files.WalkUpWithin(os.TempDir(), start, func(dir string) error {
		seen = append(seen, dir)
		if filepath.Base(dir) == "a" {
			return files.ErrStopWalk
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(os.TempDir(), "a"), found)
	assert.Len(t, seen, 2)
}

func TestWalkUpWithinVisitsRootButNotAbove(t *testing.T) {
	root := filepath.Join(os.TempDir(), "gopath", "src")
	start := filepath.Join(root, "github.com", "a")

	var seen []string
	_, err := files.WalkUpWithin(root, start, func(dir string) error {
		seen = append(seen, dir)
		return nil
	})
	assert.Equal(t, files.ErrDirNotFound, err)
	assert.Equal(t, []string{start, filepath.Join(root, "github.com"), root}, seen)

	_, err = files.WalkUpWithin(root, os.TempDir(), func(dir string) error {
		t.Fatalf("visited %s outside of root", dir)
		return nil
	})
	assert.Equal(t, files.ErrDirNotFound, err)
}
