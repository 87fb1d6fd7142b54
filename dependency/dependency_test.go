package dependency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sopak/gopathdeps/dependency"
)

func TestKindToString(t *testing.T) {
	testcases := []struct {
		Kind dependency.Kind
		str  string
	}{
		{dependency.Source, "source"},
		{dependency.Implicit, "implicit"},
		{dependency.System, "system"},
		{dependency.Unresolved, "unresolved"},
		{0, ""},
		{1000000, ""},
	}
	for _, tc := range testcases {
		assert.Equal(t, tc.str, tc.Kind.String())
	}
}

func TestParseKindRoundTrips(t *testing.T) {
	for _, k := range dependency.AllKinds {
		parsed, err := dependency.ParseKind(k.String())
		assert.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := dependency.ParseKind("nonsense")
	assert.Equal(t, dependency.ErrUnknownKind, err)
}

func TestGetAllConfigurations(t *testing.T) {
	c := dependency.Configurations{
		dependency.Test:  {dependency.New("github.com/stretchr/testify")},
		dependency.Build: {dependency.New("github.com/pkg/errors"), dependency.New("github.com/apex/log")},
	}

	all, err := c.Get("")
	assert.NoError(t, err)
	assert.Equal(t, []dependency.Dependency{
		dependency.New("github.com/pkg/errors"),
		dependency.New("github.com/apex/log"),
		dependency.New("github.com/stretchr/testify"),
	}, all)
}

func TestGetWellKnownButUndeclaredConfiguration(t *testing.T) {
	c := dependency.Configurations{}

	deps, err := c.Get(dependency.Tool)
	assert.NoError(t, err)
	assert.Empty(t, deps)

	_, err = c.Get("release")
	assert.Error(t, err)
}

func TestSortByIdentifier(t *testing.T) {
	deps := []dependency.Dependency{
		dependency.New("golang.org/x/net"),
		dependency.New("github.com/b/b"),
		dependency.New("github.com/a/a"),
	}
	dependency.Sort(deps)
	assert.Equal(t, "github.com/a/a", deps[0].Name)
	assert.Equal(t, "github.com/b/b", deps[1].Name)
	assert.Equal(t, "golang.org/x/net", deps[2].Name)
}
