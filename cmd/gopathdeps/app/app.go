// Package app assembles the gopathdeps command line application.
package app

import (
	"github.com/urfave/cli"

	"github.com/sopak/gopathdeps/cmd/gopathdeps/cmd/clean"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/cmd/get"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/cmd/validate"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/flags"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/version"
)

// New constructs the application. Running it without a command runs `get`.
func New() *cli.App {
	return &cli.App{
		Name:                 "gopathdeps",
		Usage:                "Fetch and clean the dependencies of a GOPATH workspace",
		Version:              version.String(),
		Action:               get.Run,
		EnableBashCompletion: true,
		Flags:                flags.Combine(get.Cmd.Flags, clean.Cmd.Flags, validate.Cmd.Flags),
		Commands: []cli.Command{
			get.Cmd,
			clean.Cmd,
			validate.Cmd,
		},
	}
}
