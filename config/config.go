// Package config implements application-level configuration functionality.
//
// It works by loading configuration sources (CLI flags, a configuration file
// and the environment) and providing functions which compute relevant
// configuration values from these sources.
//
// Every value has its own computation strategy, so it is easy to determine
// which source set a particular value. Flags take precedence over the
// configuration file, which takes precedence over the environment.
package config

import (
	"github.com/apex/log"
	"github.com/urfave/cli"

	"github.com/sopak/gopathdeps/cmd/gopathdeps/flags"
)

var (
	ctx      *cli.Context
	file     File
	filename string
)

// SetContext initializes application-level configuration from the CLI
// context, and loads the configuration file.
func SetContext(c *cli.Context) error {
	ctx = c

	f, fname, err := ReadFile(StringFlag(flags.Config))
	if err == ErrFileNotFound {
		log.Debug("no configuration file found")
		file = File{}
		filename = ""
		return nil
	}
	if err != nil {
		return err
	}

	log.WithField("filename", fname).Debug("loaded configuration file")
	file = f
	filename = fname
	return nil
}
