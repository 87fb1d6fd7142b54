// Package imports discovers the packages imported by a dependency's sources.
package imports

import (
	"regexp"
	"strings"

	"golang.org/x/mod/module"
)

// externalPattern matches import paths whose first segment is a host name,
// such as "github.com/pkg/errors". Standard library packages like "fmt" or
// "net/http" never match.
var externalPattern = regexp.MustCompile(`^[a-zA-Z0-9\-]+\.[a-zA-Z0-9\-.]+/[a-zA-Z0-9\-_.~$]+[^ ]*$`)

// IsExternal reports whether importPath must be resolved outside of the
// toolchain. Paths that are not clean, such as ones with "." or ".."
// elements, are never external: they could name directories outside of the
// roots they are resolved in.
func IsExternal(importPath string) bool {
	return externalPattern.MatchString(importPath) && module.CheckImportPath(importPath) == nil
}

// ParseRaw parses the output of an import extractor. Every trimmed, non-empty
// line that is enclosed in double quotes is one import path.
func ParseRaw(output string) []string {
	var paths []string
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) < 2 || !strings.HasPrefix(trimmed, `"`) || !strings.HasSuffix(trimmed, `"`) {
			continue
		}
		paths = append(paths, trimmed[1:len(trimmed)-1])
	}
	return paths
}
