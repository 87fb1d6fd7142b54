// Package validate implements `gopathdeps validate`.
package validate

import (
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli"

	"github.com/sopak/gopathdeps/cmd/gopathdeps/display"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/flags"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/setup"
	"github.com/sopak/gopathdeps/config"
	"github.com/sopak/gopathdeps/errors"
	"github.com/sopak/gopathdeps/verify"
)

// Cmd exports the `validate` CLI command.
var Cmd = cli.Command{
	Name:      "validate",
	Usage:     "Check that every package imported by the project can be found",
	Action:    Run,
	ArgsUsage: "[PKG]",
	Flags:     flags.WithGlobalFlags(flags.WithWorkspaceFlags(nil)),
}

var _ cli.ActionFunc = Run

// Run validates the import tree of the project, or of the given package.
func Run(ctx *cli.Context) error {
	s, err := setup.SetContext(ctx)
	if err != nil {
		return err
	}

	pkg := s.Package
	if args := config.Args(); len(args) > 0 {
		pkg = args[0]
	}
	if pkg == "" {
		return &errors.Error{
			Type:            errors.User,
			Message:         "no package to validate",
			Troubleshooting: "Set `package` in your configuration file, pass --package, or name the package to validate as an argument.",
		}
	}

	unresolved, err := Do(s, pkg)
	if err != nil {
		return err
	}
	if len(unresolved) == 0 {
		log.WithField("package", pkg).Info("all imports found")
		return nil
	}
	for _, name := range unresolved {
		fmt.Println(name)
	}
	return &errors.Error{
		Type:            errors.User,
		Message:         fmt.Sprintf("%d imported packages of %s could not be found", len(unresolved), pkg),
		Troubleshooting: "Run `gopathdeps get` to fetch missing dependencies, or declare them in your configuration file.",
	}
}

// Do returns the packages imported by pkg that cannot be found.
func Do(s config.Settings, pkg string) ([]string, error) {
	defer display.ClearProgress()
	display.InProgress("Validating imports...")

	v, err := verify.New(s)
	if err != nil {
		return nil, err
	}
	return v.Verify(pkg)
}
