package cache_test

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	mapset "github.com/deckarep/golang-set"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sopak/gopathdeps/cache"
	"github.com/sopak/gopathdeps/dependency"
	"github.com/sopak/gopathdeps/testing/fixtures"
)

func sweepFixture(t *testing.T) string {
	root := fixtures.Directory(t)
	fixtures.Tree(t, root, map[string]string{
		"a/b/sub/sub.go": fixtures.GoFile("sub"),
		"a/b/b.go":       fixtures.GoFile("b"),
		"a/other/o.go":   fixtures.GoFile("other"),
		"x/y/y.go":       fixtures.GoFile("y"),
	})
	return root
}

func TestDeleteUnknownKeepsRelatives(t *testing.T) {
	root := sweepFixture(t)
	s := cache.Sweeper{Root: root, DeleteUnknown: true}

	deleted, err := s.DeleteUnknownIfRequired([]string{"a/b"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "x", "y"),
		filepath.Join(root, "x"),
		filepath.Join(root, "a", "other"),
	}, deleted)

	assert.DirExists(t, filepath.Join(root, "a"))
	assert.DirExists(t, filepath.Join(root, "a", "b"))
	assert.DirExists(t, filepath.Join(root, "a", "b", "sub"))
	assert.NoDirExists(t, filepath.Join(root, "a", "other"))
	assert.NoDirExists(t, filepath.Join(root, "x"))
	assert.DirExists(t, root)
}

func TestDeleteUnknownDisabled(t *testing.T) {
	root := sweepFixture(t)
	s := cache.Sweeper{Root: root}

	deleted, err := s.DeleteUnknownIfRequired([]string{"a/b"})
	require.NoError(t, err)
	assert.Empty(t, deleted)
	assert.DirExists(t, filepath.Join(root, "x", "y"))
}

func TestUnknownIsADryRun(t *testing.T) {
	root := sweepFixture(t)
	s := cache.Sweeper{Root: root}

	candidates, err := s.Unknown([]string{"a/b"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "x", "y"),
		filepath.Join(root, "x"),
		filepath.Join(root, "a", "other"),
	}, candidates)
	assert.DirExists(t, filepath.Join(root, "x", "y"))
}

func TestClassify(t *testing.T) {
	root := sweepFixture(t)
	fixtures.Tree(t, root, map[string]string{"a/b/.git/": ""})

	states, err := cache.Classify(root, mapset.NewSet("a/b"))
	require.NoError(t, err)
	assert.Equal(t, map[string]cache.State{
		filepath.Join(root, "a"):              cache.AncestorOfMatch,
		filepath.Join(root, "a", "b"):         cache.Match,
		filepath.Join(root, "a", "b", ".git"): cache.DescendantOfMatch,
		filepath.Join(root, "a", "b", "sub"):  cache.DescendantOfMatch,
		filepath.Join(root, "a", "other"):     cache.Unknown,
		filepath.Join(root, "x"):              cache.Unknown,
		filepath.Join(root, "x", "y"):         cache.Unknown,
	}, states)
}

func TestClassifyMissingRoot(t *testing.T) {
	states, err := cache.Classify(filepath.Join(fixtures.Directory(t), "missing"), mapset.NewSet())
	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestClassifyWalkFailure(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permissions are not enforced")
	}
	root := sweepFixture(t)
	locked := filepath.Join(root, "x")
	require.NoError(t, os.Chmod(locked, 0))
	defer os.Chmod(locked, 0755)

	s := cache.Sweeper{Root: root, DeleteUnknown: true}
	deleted, err := s.DeleteUnknownIfRequired([]string{"a/b"})
	assert.Empty(t, deleted)
	var walkErr *cache.WalkError
	require.True(t, errors.As(err, &walkErr))
	assert.Equal(t, root, walkErr.Root)
	assert.DirExists(t, filepath.Join(root, "a", "other"))
}

func TestDeleteAll(t *testing.T) {
	root := sweepFixture(t)

	s := cache.Sweeper{Root: root}
	deleted, err := s.DeleteAllIfRequired()
	require.NoError(t, err)
	assert.Empty(t, deleted)
	assert.DirExists(t, root)

	s.DeleteAllOnClean = true
	deleted, err = s.DeleteAllIfRequired()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "x", "y"),
		filepath.Join(root, "x"),
		filepath.Join(root, "a", "other"),
		filepath.Join(root, "a", "b", "sub"),
		filepath.Join(root, "a", "b"),
		filepath.Join(root, "a"),
		root,
	}, deleted)
	assert.NoDirExists(t, root)

	deleted, err = s.DeleteAllIfRequired()
	require.NoError(t, err)
	assert.Empty(t, deleted)
}

func symlinkedRoot(t *testing.T) (link, target string) {
	if runtime.GOOS == "windows" {
		t.Skip("symbolic links require privileges")
	}
	target = sweepFixture(t)
	link = filepath.Join(fixtures.Directory(t), "cache")
	require.NoError(t, os.Symlink(target, link))
	return link, target
}

func TestDeleteUnknownThroughSymlinkedRoot(t *testing.T) {
	link, target := symlinkedRoot(t)
	s := cache.Sweeper{Root: link, DeleteUnknown: true}

	deleted, err := s.DeleteUnknownIfRequired([]string{"a/b"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(link, "x", "y"),
		filepath.Join(link, "x"),
		filepath.Join(link, "a", "other"),
	}, deleted)
	assert.NoDirExists(t, filepath.Join(target, "x"))
	assert.DirExists(t, filepath.Join(target, "a", "b", "sub"))
}

func TestDeleteAllEmptiesSymlinkedRoot(t *testing.T) {
	link, target := symlinkedRoot(t)
	s := cache.Sweeper{Root: link, DeleteAllOnClean: true}

	deleted, err := s.DeleteAllIfRequired()
	require.NoError(t, err)
	require.NotEmpty(t, deleted)
	assert.Equal(t, link, deleted[len(deleted)-1])
	assert.Contains(t, deleted, filepath.Join(link, "x", "y"))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
	entries, err := ioutil.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRootThatIsAFile(t *testing.T) {
	root := filepath.Join(fixtures.Directory(t), "cache")
	require.NoError(t, ioutil.WriteFile(root, []byte("not a cache"), 0644))

	s := cache.Sweeper{Root: root, DeleteUnknown: true, DeleteAllOnClean: true}
	_, err := s.DeleteUnknownIfRequired(nil)
	var walkErr *cache.WalkError
	require.True(t, errors.As(err, &walkErr))
	assert.Equal(t, root, walkErr.Root)

	_, err = s.DeleteAllIfRequired()
	assert.Error(t, err)
	assert.FileExists(t, root)
}

func TestKnownIdentifiers(t *testing.T) {
	configurations := dependency.Configurations{
		dependency.Build: {
			dependency.New("github.com/pkg/errors"),
			dependency.New("github.com/acme/lib/sub/pkg"),
		},
		dependency.Test: {
			dependency.New("github.com/acme/lib"),
			dependency.New("example.org/unknown/host"),
		},
	}
	assert.Equal(t, []string{
		"example.org/unknown/host",
		"github.com/acme/lib",
		"github.com/pkg/errors",
	}, cache.KnownIdentifiers(configurations))
}
