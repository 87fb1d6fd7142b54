package main

import (
	"os"

	"github.com/apex/log"

	"github.com/sopak/gopathdeps/cmd/gopathdeps/app"
	"github.com/sopak/gopathdeps/cmd/gopathdeps/display"
)

func main() {
	display.Init()
	err := app.New().Run(os.Args)
	if err != nil {
		display.ClearProgress()
		log.WithField("log", display.File()).Debug("debug log written")
		log.Fatal(err.Error())
	}
}
