// Package exec runs external commands such as the import extractor and the
// Mercurial and Subversion clients.
package exec

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/apex/log"
	"github.com/pkg/errors"
)

// Cmd represents a single command. If Name and Argv are set, this is treated as
// an executable. If Command is set, this is treated as a shell command.
type Cmd struct {
	Name    string   // Executable name.
	Argv    []string // Executable arguments.
	Command string   // Shell command.

	Dir string // The Command's working directory.

	// If neither Env nor WithEnv are set, the environment is inherited from os.Environ().
	Env     map[string]string // If set, the command's environment is _set_ to Env.
	WithEnv map[string]string // If set, the command's environment is _added_ to WithEnv.
}

// BuildExec converts a Cmd into an *exec.Cmd without running it.
func BuildExec(cmd Cmd) (*exec.Cmd, *bytes.Buffer) {
	var stderr bytes.Buffer
	xc := exec.Command(cmd.Name, cmd.Argv...)
	xc.Stderr = &stderr

	if cmd.Dir != "" {
		xc.Dir = cmd.Dir
	}

	if cmd.Env != nil {
		xc.Env = toEnv(cmd.Env)
	} else if cmd.WithEnv != nil {
		xc.Env = append(xc.Env, toEnv(cmd.WithEnv)...)
		xc.Env = append(xc.Env, os.Environ()...)
	} else {
		xc.Env = os.Environ()
	}

	return xc, &stderr
}

// Run executes a `Cmd`.
func Run(cmd Cmd) (stdout, stderr string, err error) {
	log.WithFields(log.Fields{
		"name": cmd.Name,
		"argv": cmd.Argv,
		"dir":  cmd.Dir,
	}).Debug("running command")

	xc, stderrBuffer := BuildExec(cmd)
	stdoutBuffer, err := xc.Output()
	stdout = string(stdoutBuffer)
	stderr = stderrBuffer.String()

	log.WithFields(log.Fields{
		"stdout": stdout,
		"stderr": stderr,
	}).Debug("done running")

	if err != nil {
		return stdout, stderr, errors.Wrapf(err, "could not run `%s %s`: %s", cmd.Name, strings.Join(cmd.Argv, " "), strings.TrimSpace(stderr))
	}
	return stdout, stderr, nil
}

func toEnv(env map[string]string) []string {
	var out []string
	for key, val := range env {
		out = append(out, key+"="+val)
	}
	return out
}
