package errors

import (
	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
)

const width = 78

var ReportBugMessage = `

` + color.HiYellowString("REPORTING A BUG:") + `
` + wordwrap.WrapString("Please try troubleshooting before filing a bug. When you do, please attach the debug log from:", width) + `

  ` + color.HiGreenString("gopathdeps <cmd> --debug") + `
`

var UnresolvableReferenceMessage = wordwrap.WrapString("No version control backend recognizes this import path. Supported hosts are github.com, bitbucket.org, gitlab.com, golang.org/x and gopkg.in; other hosts need a VCS suffix in the import path, such as example.org/repo.git. Packages that live in your workspace should be declared with `type: source`.", width)

var MissingToolMessage = wordwrap.WrapString("The import extractor could not be run. Check `toolchain.imports_extractor` in your configuration file, or remove it to use the built-in extractor.", width)

var CacheWalkMessage = wordwrap.WrapString("The dependency cache could not be read. Check that `dependencies.cache` points to a directory you can read and write, or run `gopathdeps clean` with `delete_all_on_clean` enabled to start over.", width)
