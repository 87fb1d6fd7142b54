// Package get implements `gopathdeps get`.
package get

import (
	"fmt"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli"

	"github.com/sopak/gopathdeps/cmd/gopathdeps/cmdutil"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/display"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/flags"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/setup"
	"github.com/sopak/gopathdeps/config"
	"github.com/sopak/gopathdeps/dependency"
	"github.com/sopak/gopathdeps/fetch"
	"github.com/sopak/gopathdeps/files"
)

// Cmd exports the `get` CLI command.
var Cmd = cli.Command{
	Name:      "get",
	Usage:     "Resolve the project's dependencies and fetch the missing ones",
	Action:    Run,
	ArgsUsage: "[PKG...]",
	Flags: flags.WithGlobalFlags(flags.WithWorkspaceFlags([]cli.Flag{
		flags.ConfigurationF,
		flags.ForceUpdateF,
		flags.JSONF,
	})),
}

var _ cli.ActionFunc = Run

// Run resolves and fetches dependencies, and prints the results.
func Run(ctx *cli.Context) error {
	s, err := setup.SetContext(ctx)
	if err != nil {
		return err
	}

	results, err := Do(s, config.StringFlag(flags.Configuration), config.Args())
	if err != nil {
		return cmdutil.Explain(err)
	}

	if config.BoolFlag(flags.JSON) {
		_, err = display.JSON(Summarize(results))
		return err
	}
	for _, r := range results.Sorted() {
		fmt.Printf("%-60s %-10s %s\n", r.Dependency.Name, r.Dependency.Kind, r.Outcome)
	}
	return nil
}

// Do resolves the dependencies of configuration plus the given packages.
func Do(s config.Settings, configuration string, pkgs []string) (fetch.Results, error) {
	defer display.ClearProgress()
	display.InProgress("Resolving dependencies...")

	engine, err := fetch.New(s)
	if err != nil {
		return nil, err
	}
	required, err := Required(s, pkgs)
	if err != nil {
		return nil, err
	}
	return engine.Resolve(configuration, required...)
}

// Required returns the dependencies that must be resolved in addition to the
// declared ones: the project itself, if it is in the workspace, and pkgs.
func Required(s config.Settings, pkgs []string) ([]dependency.Dependency, error) {
	var required []dependency.Dependency
	if s.Package != "" {
		location := filepath.Join(s.WorkspaceSource(), filepath.FromSlash(s.Package))
		ok, err := files.ExistsFolder(location)
		if err != nil {
			return nil, err
		}
		if ok {
			required = append(required, dependency.Dependency{
				Name:     s.Package,
				Kind:     dependency.Source,
				Location: location,
			})
		} else {
			log.WithField("location", location).Warn("project package is not in the workspace")
		}
	}
	for _, pkg := range pkgs {
		required = append(required, dependency.New(pkg))
	}
	return required, nil
}

// Result is the JSON representation of a fetch result.
type Result struct {
	Name     string          `json:"name"`
	Version  string          `json:"version,omitempty"`
	Kind     dependency.Kind `json:"kind"`
	Location string          `json:"location,omitempty"`
	Parent   string          `json:"parent,omitempty"`
	Outcome  fetch.Outcome   `json:"outcome"`
}

// Summarize converts results for JSON output, ordered by identifier.
func Summarize(results fetch.Results) []Result {
	summary := make([]Result, 0, len(results))
	for _, r := range results.Sorted() {
		summary = append(summary, Result{
			Name:     r.Dependency.Name,
			Version:  r.Dependency.Version,
			Kind:     r.Dependency.Kind,
			Location: r.Dependency.Location,
			Parent:   r.Dependency.Parent,
			Outcome:  r.Outcome,
		})
	}
	return summary
}
