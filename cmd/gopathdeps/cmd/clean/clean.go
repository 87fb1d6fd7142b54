// Package clean implements `gopathdeps clean`.
package clean

import (
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli"

	"github.com/sopak/gopathdeps/cache"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/cmdutil"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/display"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/flags"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/setup"
	"github.com/sopak/gopathdeps/config"
)

// Cmd exports the `clean` CLI command.
var Cmd = cli.Command{
	Name:   "clean",
	Usage:  "Delete unknown dependencies, or the whole dependency cache, as configured",
	Action: Run,
	Flags: flags.WithGlobalFlags(flags.WithWorkspaceFlags([]cli.Flag{
		flags.DryRunF,
	})),
}

var _ cli.ActionFunc = Run

// Run sweeps the dependency cache and prints the deleted directories.
func Run(ctx *cli.Context) error {
	s, err := setup.SetContext(ctx)
	if err != nil {
		return err
	}

	dirs, err := Do(cache.New(s), cache.KnownIdentifiers(s.Dependencies.Configurations), config.BoolFlag(flags.DryRun))
	if err != nil {
		return cmdutil.Explain(err)
	}
	for _, dir := range dirs {
		fmt.Println(dir)
	}
	return nil
}

// Do deletes unknown directories and then the whole cache, each only if
// enabled. In a dry run, it returns the directories that would be deleted
// without deleting them.
func Do(sweeper *cache.Sweeper, known []string, dryRun bool) ([]string, error) {
	defer display.ClearProgress()
	display.InProgress("Cleaning dependency cache...")

	if dryRun {
		return plan(sweeper, known)
	}

	deleted, err := sweeper.DeleteUnknownIfRequired(known)
	if err != nil {
		return deleted, err
	}
	all, err := sweeper.DeleteAllIfRequired()
	deleted = append(deleted, all...)
	if err != nil {
		return deleted, err
	}

	log.WithField("count", len(deleted)).Info("cleaned dependency cache")
	return deleted, nil
}

func plan(sweeper *cache.Sweeper, known []string) ([]string, error) {
	if sweeper.DeleteAllOnClean {
		return sweeper.All()
	}
	if sweeper.DeleteUnknown {
		return sweeper.Unknown(known)
	}
	return nil, nil
}
