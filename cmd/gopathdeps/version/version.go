// Package version reports the version of the running binary. Its variables
// are set by linker flags at release time.
package version

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/blang/semver"
)

var (
	BuildType string
	Version   string
	Commit    string
	GoVersion = runtime.Version()
)

var ErrIsDevelopment = errors.New("this development binary has no semantic version")

func IsDevelopment() bool {
	return BuildType == "development" || Version == ""
}

func String() string {
	return fmt.Sprintf("%s (revision %s compiled with %s)", ShortString(), Commit, GoVersion)
}

func ShortString() string {
	if IsDevelopment() {
		if Commit == "" {
			return "development"
		}
		return Commit
	}
	return Version
}

func Semver() (semver.Version, error) {
	if IsDevelopment() {
		return semver.Version{}, ErrIsDevelopment
	}
	return semver.Parse(strings.TrimPrefix(Version, "v"))
}
