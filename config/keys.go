package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"
	isatty "github.com/mattn/go-isatty"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/sopak/gopathdeps/cmd/gopathdeps/flags"
	"github.com/sopak/gopathdeps/dependency"
	"github.com/sopak/gopathdeps/exec"
)

/**** Global configuration keys ****/

// Interactive is true if the user desires interactive output.
func Interactive() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) && !BoolFlag(flags.NoAnsi)
}

// Debug is true if the user has requested debug-level logging.
func Debug() bool {
	return BoolFlag(flags.Debug)
}

// Filepath is the configuration file path.
func Filepath() string {
	return filename
}

/**** Workspace configuration keys ****/

// Package is the import path of the project.
func Package() string {
	return strings.TrimSuffix(TryStrings(
		StringFlag(flags.Package),
		file.Package,
		os.Getenv("GOPATHDEPS_PACKAGE"),
	), "/")
}

// Gopath is the root of the workspace. It defaults to ~/go, like the Go tool.
func Gopath() (string, error) {
	if p := StringFlag(flags.Gopath); p != "" {
		return expand(p, "")
	}
	if p := file.Build.Gopath; p != "" {
		return expand(p, fileDir())
	}
	if p := firstGopath(os.Getenv("GOPATH")); p != "" {
		return expand(p, "")
	}
	return expand("~/go", "")
}

// Goroot is the toolchain root. If it is not configured, it is asked from the
// Go tool.
func Goroot() (string, error) {
	if p := StringFlag(flags.Goroot); p != "" {
		return expand(p, "")
	}
	if p := file.Toolchain.Goroot; p != "" {
		return expand(p, fileDir())
	}
	if p := os.Getenv("GOROOT"); p != "" {
		return expand(p, "")
	}

	cmd, output, err := exec.WhichArgs([]string{"env", "GOROOT"}, os.Getenv("GOPATHDEPS_GO_CMD"), "go")
	if err != nil {
		return "", errors.Wrap(err, "could not find GOROOT")
	}
	log.WithFields(log.Fields{"cmd": cmd, "goroot": output}).Debug("asked go tool for GOROOT")
	return expand(strings.TrimSpace(output), "")
}

// ImportsExtractor is the external import extraction tool. It is empty when
// the built-in extractor should be used.
func ImportsExtractor() (string, error) {
	if p := file.Toolchain.ImportsExtractor; p != "" {
		return expand(p, fileDir())
	}
	if p := os.Getenv("GOPATHDEPS_IMPORTS_EXTRACTOR"); p != "" {
		return expand(p, "")
	}
	return "", nil
}

/**** Dependency configuration keys ****/

// DependencyCache is the directory that fetched dependencies are kept in.
func DependencyCache() (string, error) {
	if p := StringFlag(flags.Cache); p != "" {
		return expand(p, "")
	}
	if p := file.Dependencies.Cache; p != "" {
		return expand(p, fileDir())
	}
	if p := os.Getenv("GOPATHDEPS_CACHE"); p != "" {
		return expand(p, "")
	}
	return expand("~/.gopathdeps/cache", "")
}

func ForceUpdate() bool {
	return TryBools(flagBool(flags.ForceUpdate), file.Dependencies.ForceUpdate, envBool("GOPATHDEPS_FORCE_UPDATE"))
}

func DeleteUnknown() bool {
	return TryBools(file.Dependencies.DeleteUnknown, envBool("GOPATHDEPS_DELETE_UNKNOWN"))
}

func DeleteAllOnClean() bool {
	return TryBools(file.Dependencies.DeleteAllOnClean, envBool("GOPATHDEPS_DELETE_ALL_ON_CLEAN"))
}

// Parallelism bounds concurrent import extraction. Zero selects GOMAXPROCS.
func Parallelism() int {
	if file.Dependencies.Parallelism > 0 {
		return file.Dependencies.Parallelism
	}
	if n, err := strconv.Atoi(os.Getenv("GOPATHDEPS_PARALLELISM")); err == nil && n > 0 {
		return n
	}
	return 0
}

// Configurations are the declared dependencies of the configuration file.
func Configurations() (dependency.Configurations, error) {
	configurations := make(dependency.Configurations)
	declared := map[string][]DependencyProperties{
		dependency.Build: file.Dependencies.Build,
		dependency.Test:  file.Dependencies.Test,
		dependency.Tool:  file.Dependencies.Tool,
	}
	for name, properties := range declared {
		for _, p := range properties {
			dep, err := p.Dependency(fileDir())
			if err != nil {
				return nil, errors.Wrapf(err, "invalid %s dependency", name)
			}
			configurations[name] = append(configurations[name], dep)
		}
	}
	return configurations, nil
}

// Dependency converts the declaration into a Dependency. A relative location
// is taken relative to dir.
func (p DependencyProperties) Dependency(dir string) (dependency.Dependency, error) {
	if p.Name == "" {
		return dependency.Dependency{}, errors.New("dependency has no name")
	}
	kind, err := dependency.ParseKind(p.Type)
	if err != nil {
		return dependency.Dependency{}, errors.Wrapf(err, "dependency %s", p.Name)
	}
	location := ""
	if p.Location != "" {
		location, err = expand(p.Location, dir)
		if err != nil {
			return dependency.Dependency{}, err
		}
	}
	return dependency.Dependency{
		Name:     strings.TrimSuffix(p.Name, "/"),
		Version:  p.Version,
		Kind:     kind,
		Location: location,
	}, nil
}

// fileDir is the directory that relative paths in the configuration file are
// relative to.
func fileDir() string {
	if filename == "" {
		return ""
	}
	return filepath.Dir(filename)
}

// expand resolves "~" and makes path absolute, relative to dir or the working
// directory.
func expand(path, dir string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(err, "could not expand %s", path)
	}
	if !filepath.IsAbs(expanded) && dir != "" {
		expanded = filepath.Join(dir, expanded)
	}
	return filepath.Abs(expanded)
}

// firstGopath returns the first entry of a GOPATH list.
func firstGopath(gopath string) string {
	return strings.Split(gopath, string(filepath.ListSeparator))[0]
}
