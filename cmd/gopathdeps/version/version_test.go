package version

import (
	"strings"
	"testing"

	"github.com/blang/semver"
	"github.com/stretchr/testify/assert"
)

type versions struct {
	name string

	buildType string
	version   string
	commit    string
}

var noLdFlags = versions{
	name: "NoLdFlags",
}

var dev = versions{
	name: "Development",

	buildType: "development",
	version:   "some-branch-name",
	commit:    "12345abcdef",
}

var prod = versions{
	name: "Release",

	buildType: "release",
	version:   "v1.2.3-validsemanticversion",
	commit:    "67890foobar",
}

func set(v versions) {
	BuildType = v.buildType
	Version = v.version
	Commit = v.commit
}

func TestShortStringHasNoSpaces(t *testing.T) {
	for _, tc := range []versions{noLdFlags, dev, prod} {
		t.Run(tc.name, func(t *testing.T) {
			set(tc)
			if s := ShortString(); s == "" || len(strings.Fields(s)) > 1 {
				t.Errorf("ShortString() was empty or had whitespace: %#v", s)
			}
		})
	}
}

func TestSemver(t *testing.T) {
	set(dev)
	_, err := Semver()
	assert.Equal(t, ErrIsDevelopment, err)

	set(prod)
	v, err := Semver()
	assert.NoError(t, err)
	assert.Equal(t, semver.MustParse("1.2.3-validsemanticversion"), v)

	set(noLdFlags)
}
