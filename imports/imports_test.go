package imports_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sopak/gopathdeps/dependency"
	"github.com/sopak/gopathdeps/imports"
	"github.com/sopak/gopathdeps/testing/fixtures"
)

func TestIsExternal(t *testing.T) {
	external := []string{
		"github.com/pkg/errors",
		"golang.org/x/net/context",
		"gopkg.in/yaml.v2",
		"example.org/repo.git/sub",
		"my-host.io/a/b/c",
	}
	for _, p := range external {
		assert.True(t, imports.IsExternal(p), p)
	}

	internal := []string{
		"fmt",
		"net/http",
		"C",
		"example.com",
		"./relative",
		"",
		"github.com/evil/..",
		"github.com/a/b/../../../../etc",
		"github.com/a/./b",
		"github.com/a//b",
		"github.com/a/b/",
	}
	for _, p := range internal {
		assert.False(t, imports.IsExternal(p), p)
	}
}

func TestParseRaw(t *testing.T) {
	output := "\"fmt\"\n  \"github.com/pkg/errors\"  \n\nnot quoted\n\"\n\"unterminated\n\"\"\n"
	assert.Equal(t, []string{"fmt", "github.com/pkg/errors", ""}, imports.ParseRaw(output))
	assert.Empty(t, imports.ParseRaw(""))
}

func TestBuiltinExtract(t *testing.T) {
	dir := fixtures.Directory(t)
	file := filepath.Join(dir, "main.go")
	fixtures.Tree(t, dir, map[string]string{
		"main.go": "package main\n\nimport (\n\t\"fmt\"\n\tx `github.com/a/b`\n)\n\nfunc main() { fmt.Println(x.Y) }\n",
	})

	output, err := imports.Builtin{}.Extract(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"fmt", "github.com/a/b"}, imports.ParseRaw(output))
}

func TestBuiltinExtractInvalidFile(t *testing.T) {
	dir := fixtures.Directory(t)
	fixtures.Tree(t, dir, map[string]string{"bad.go": "this is not go"})

	_, err := imports.Builtin{}.Extract(filepath.Join(dir, "bad.go"))
	var toolErr *imports.ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "builtin", toolErr.Tool)
}

func TestToolExtract(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extractor fixture is a shell script")
	}
	dir := fixtures.Directory(t)
	script := filepath.Join(dir, "extract")
	fixtures.Tree(t, dir, map[string]string{
		"extract": "#!/bin/sh\necho '\"github.com/a/b\"'\necho '\"fmt\"'\n",
	})
	require.NoError(t, os.Chmod(script, 0755))

	output, err := imports.Tool{Cmd: script}.Extract("whatever.go")
	require.NoError(t, err)
	assert.Equal(t, []string{"github.com/a/b", "fmt"}, imports.ParseRaw(output))
}

func TestToolExtractMissingBinary(t *testing.T) {
	_, err := imports.Tool{Cmd: "gopathdeps-no-such-extractor"}.Extract("main.go")
	var toolErr *imports.ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "main.go", toolErr.File)
	assert.Contains(t, err.Error(), "gopathdeps-no-such-extractor")
}

// recordingResolver resolves every import to an unresolved dependency and
// remembers where it was demanded from.
type recordingResolver struct {
	lock       sync.Mutex
	demandedBy map[string]string
}

func (r *recordingResolver) ResolvePackage(demandedBy dependency.Dependency, importPath string) (dependency.Dependency, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.demandedBy == nil {
		r.demandedBy = make(map[string]string)
	}
	r.demandedBy[importPath] = demandedBy.Location
	return dependency.Dependency{Name: importPath, Kind: dependency.Unresolved}, nil
}

func TestTransitiveImports(t *testing.T) {
	w := fixtures.NewWorkspace(t)
	fixtures.Tree(t, w.Cache, map[string]string{
		"example.com/a/a.go":     fixtures.GoFile("a", "fmt", "example.com/z", "example.com/b"),
		"example.com/a/a2.go":    fixtures.GoFile("a", "example.com/b", "example.com/c/sub"),
		"example.com/a/sub/s.go": fixtures.GoFile("sub", "example.com/ignored"),
	})
	fixtures.Tree(t, w.Src(), map[string]string{
		"example.com/a/w.go": fixtures.GoFile("a", "example.com/w"),
	})

	r := &recordingResolver{}
	s := imports.Scanner{
		Resolver:        r,
		DependencyCache: w.Cache,
		WorkspaceSource: w.Src(),
		Parallelism:     2,
	}
	deps, err := s.TransitiveImports(dependency.New("example.com/a"))
	require.NoError(t, err)

	var names []string
	for _, d := range deps {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"example.com/b", "example.com/c/sub", "example.com/w", "example.com/z"}, names)
	assert.Equal(t, filepath.Join(w.Cache, "example.com", "a"), r.demandedBy["example.com/b"])
	assert.Equal(t, filepath.Join(w.Src(), "example.com", "a"), r.demandedBy["example.com/w"])
}

func TestTransitiveImportsScansLocation(t *testing.T) {
	w := fixtures.NewWorkspace(t)
	vendored := filepath.Join(w.Src(), "github.com", "me", "proj", "vendor", "example.com", "v")
	fixtures.Tree(t, vendored, map[string]string{
		"v.go": fixtures.GoFile("v", "example.com/deep"),
	})

	s := imports.Scanner{
		Resolver:        &recordingResolver{},
		DependencyCache: w.Cache,
		WorkspaceSource: w.Src(),
	}
	deps, err := s.TransitiveImports(dependency.Dependency{
		Name:     "example.com/v",
		Kind:     dependency.Implicit,
		Location: vendored,
	})
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "example.com/deep", deps[0].Name)
}

func TestTransitiveImportsLocationDecidesSharedImports(t *testing.T) {
	w := fixtures.NewWorkspace(t)
	vendored := filepath.Join(w.Src(), "github.com", "me", "proj", "vendor", "example.com", "a")
	fixtures.Tree(t, vendored, map[string]string{
		"v.go": fixtures.GoFile("a", "example.com/shared"),
	})
	fixtures.Tree(t, w.Cache, map[string]string{
		"example.com/a/a.go": fixtures.GoFile("a", "example.com/shared", "example.com/cached"),
	})

	r := &recordingResolver{}
	s := imports.Scanner{
		Resolver:        r,
		DependencyCache: w.Cache,
		WorkspaceSource: w.Src(),
	}
	deps, err := s.TransitiveImports(dependency.Dependency{
		Name:     "example.com/a",
		Kind:     dependency.Implicit,
		Location: vendored,
	})
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, vendored, r.demandedBy["example.com/shared"])
	assert.Equal(t, filepath.Join(w.Cache, "example.com", "a"), r.demandedBy["example.com/cached"])
}

func TestTransitiveImportsMissingDirectories(t *testing.T) {
	w := fixtures.NewWorkspace(t)
	s := imports.Scanner{
		Resolver:        &recordingResolver{},
		DependencyCache: w.Cache,
		WorkspaceSource: w.Src(),
	}
	deps, err := s.TransitiveImports(dependency.New("example.com/nowhere"))
	require.NoError(t, err)
	assert.Empty(t, deps)
}

type failingExtractor struct{}

func (failingExtractor) Extract(file string) (string, error) {
	if strings.HasSuffix(file, "b.go") {
		return "", &imports.ToolError{Tool: "failing", File: file, Cause: errors.New("boom")}
	}
	return "\"example.com/ok\"\n", nil
}

func TestTransitiveImportsExtractorFailure(t *testing.T) {
	w := fixtures.NewWorkspace(t)
	fixtures.Tree(t, w.Cache, map[string]string{
		"example.com/a/a.go": fixtures.GoFile("a"),
		"example.com/a/b.go": fixtures.GoFile("a"),
	})

	s := imports.Scanner{
		Resolver:        &recordingResolver{},
		Extractor:       failingExtractor{},
		DependencyCache: w.Cache,
	}
	_, err := s.TransitiveImports(dependency.New("example.com/a"))
	var toolErr *imports.ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, filepath.Join(w.Cache, "example.com", "a", "b.go"), toolErr.File)
}
