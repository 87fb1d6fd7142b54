// Package setup implements initialization for all application packages.
package setup

import (
	"github.com/apex/log"
	"github.com/urfave/cli"

	"github.com/sopak/gopathdeps/cmd/gopathdeps/display"
	"github.com/sopak/gopathdeps/config"
)

// SetContext initializes all application-level packages, and returns the
// settings of the run.
func SetContext(ctx *cli.Context) (config.Settings, error) {
	// Set up configuration.
	err := config.SetContext(ctx)
	if err != nil {
		return config.Settings{}, err
	}

	// Set up logging.
	display.SetInteractive(config.Interactive())
	display.SetDebug(config.Debug())
	if filename := config.Filepath(); filename != "" {
		log.WithField("filename", filename).Debug("using configuration file")
	}

	return config.Load()
}
