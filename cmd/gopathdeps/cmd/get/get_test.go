package get_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sopak/gopathdeps/cmd/gopathdeps/cmd/get"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/display"
	"github.com/sopak/gopathdeps/config"
	"github.com/sopak/gopathdeps/dependency"
	"github.com/sopak/gopathdeps/fetch"
	"github.com/sopak/gopathdeps/testing/fixtures"
)

func TestRequiredAddsProjectAndPackages(t *testing.T) {
	w := fixtures.NewWorkspace(t)
	fixtures.Tree(t, w.Src(), map[string]string{
		"github.com/me/proj/main.go": fixtures.GoFile("main"),
	})
	s := config.Settings{Package: "github.com/me/proj", Gopath: w.Gopath}

	required, err := get.Required(s, []string{"github.com/acme/tool"})
	require.NoError(t, err)
	assert.Equal(t, []dependency.Dependency{
		{
			Name:     "github.com/me/proj",
			Kind:     dependency.Source,
			Location: filepath.Join(w.Src(), "github.com", "me", "proj"),
		},
		dependency.New("github.com/acme/tool"),
	}, required)
}

func TestRequiredSkipsMissingProject(t *testing.T) {
	display.Test()
	w := fixtures.NewWorkspace(t)
	s := config.Settings{Package: "github.com/me/proj", Gopath: w.Gopath}

	required, err := get.Required(s, nil)
	require.NoError(t, err)
	assert.Empty(t, required)

	require.Len(t, display.TestHandler.Entries, 1)
	entry := display.TestHandler.Entries[0]
	assert.Equal(t, log.WarnLevel, entry.Level)
	assert.Equal(t, "project package is not in the workspace", entry.Message)
}

func TestSummarizeJSON(t *testing.T) {
	results := fetch.Results{
		"github.com/b/b": {
			Dependency: dependency.Dependency{Name: "github.com/b/b", Kind: dependency.Implicit, Location: "/cache/github.com/b/b"},
			Outcome:    fetch.Downloaded,
		},
		"github.com/a/a": {
			Dependency: dependency.Dependency{Name: "github.com/a/a", Kind: dependency.Source},
			Outcome:    fetch.AlreadyPresent,
		},
	}

	data, err := json.Marshal(get.Summarize(results))
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"name": "github.com/a/a", "kind": "source", "outcome": "already-present"},
		{"name": "github.com/b/b", "kind": "implicit", "location": "/cache/github.com/b/b", "outcome": "downloaded"}
	]`, string(data))
}
