package imports

import (
	"fmt"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/sopak/gopathdeps/exec"
)

// An Extractor lists the imports of a single Go source file. The output holds
// one double-quoted import path per line.
type Extractor interface {
	Extract(file string) (string, error)
}

// Tool runs an external extractor binary with the file as its only argument.
type Tool struct {
	Cmd string
}

// Extract implements Extractor.
func (t Tool) Extract(file string) (string, error) {
	stdout, _, err := exec.Run(exec.Cmd{
		Name: t.Cmd,
		Argv: []string{file},
	})
	if err != nil {
		return "", &ToolError{Tool: t.Cmd, File: file, Cause: err}
	}
	return stdout, nil
}

// Builtin extracts imports with go/parser. It is used when no extractor binary
// is configured.
type Builtin struct{}

// Extract implements Extractor.
func (Builtin) Extract(file string) (string, error) {
	f, err := parser.ParseFile(token.NewFileSet(), file, nil, parser.ImportsOnly)
	if err != nil {
		return "", &ToolError{Tool: "builtin", File: file, Cause: err}
	}

	var b strings.Builder
	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			return "", &ToolError{Tool: "builtin", File: file, Cause: err}
		}
		b.WriteString(strconv.Quote(path))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// ToolError is returned when imports could not be extracted from a file.
type ToolError struct {
	Tool  string
	File  string
	Cause error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("could not extract imports of %s using %s: %s", e.File, e.Tool, e.Cause)
}

func (e *ToolError) Unwrap() error {
	return e.Cause
}
