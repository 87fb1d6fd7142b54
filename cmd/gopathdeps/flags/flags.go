// Package flags defines the command line flags shared by commands.
package flags

import (
	"fmt"

	"github.com/urfave/cli"
)

func abbr(fullname string) string {
	return fmt.Sprintf("%c, %s", fullname[0], fullname)
}

// WithGlobalFlags adds the flags every command accepts.
func WithGlobalFlags(f []cli.Flag) []cli.Flag {
	return append(f, Global...)
}

var (
	Global  = []cli.Flag{ConfigF, NoAnsiF, DebugF}
	Config  = "config"
	ConfigF = cli.StringFlag{Name: abbr(Config), Usage: "path to config file (default: '.gopathdeps.{yml,yaml,toml}')"}
	NoAnsi  = "no-ansi"
	NoAnsiF = cli.BoolFlag{Name: NoAnsi, Usage: "do not use interactive mode (ANSI codes)"}
	Debug   = "debug"
	DebugF  = cli.BoolFlag{Name: Debug, Usage: "print debug information to stderr"}
)

// WithWorkspaceFlags adds the flags that locate the workspace.
func WithWorkspaceFlags(f []cli.Flag) []cli.Flag {
	return append(f, Workspace...)
}

var (
	Workspace = []cli.Flag{PackageF, GopathF, GorootF, CacheF}
	Package   = "package"
	PackageF  = cli.StringFlag{Name: abbr(Package), Usage: "import path of the project (default: 'package' in config file)"}
	Gopath    = "gopath"
	GopathF   = cli.StringFlag{Name: Gopath, Usage: "workspace GOPATH (default: $GOPATH)"}
	Goroot    = "goroot"
	GorootF   = cli.StringFlag{Name: Goroot, Usage: "toolchain root (default: $GOROOT or `go env GOROOT`)"}
	Cache     = "cache"
	CacheF    = cli.StringFlag{Name: Cache, Usage: "dependency cache directory (default: '~/.gopathdeps/cache')"}
)

var (
	Configuration  = "configuration"
	ConfigurationF = cli.StringFlag{Name: Configuration, Usage: "dependency configuration to resolve: build, test or tool (default: all)"}
	ForceUpdate    = "force-update"
	ForceUpdateF   = cli.BoolFlag{Name: ForceUpdate, Usage: "fetch every dependency again, even if it is present"}
	JSON           = "json"
	JSONF          = cli.BoolFlag{Name: JSON, Usage: "print results as JSON"}
	DryRun         = "dry-run"
	DryRunF        = cli.BoolFlag{Name: DryRun, Usage: "print what would be deleted without deleting it"}
)

// Combine merges flag lists, dropping duplicates. It panics if two different
// flags share a name.
func Combine(lists ...[]cli.Flag) []cli.Flag {
	seen := make(map[string]cli.Flag)
	var combined []cli.Flag
	for _, list := range lists {
		for _, f := range list {
			prev, ok := seen[f.GetName()]
			if ok && prev != f {
				panic("conflicting definitions of flag " + f.GetName())
			}
			if ok {
				continue
			}
			seen[f.GetName()] = f
			combined = append(combined, f)
		}
	}
	return combined
}
