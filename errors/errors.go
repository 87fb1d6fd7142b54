// Package errors implements user-facing errors that carry troubleshooting
// instructions.
package errors

import (
	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/pkg/errors"
)

// Type classifies where an Error most likely originates.
type Type string

const (
	Unknown Type = "unknown" // Cause not yet classified.
	User    Type = "user"    // Configuration or input the user can fix.
	Exec    Type = "exec"    // An external command or VCS operation failed.
)

// Error is an application-level error primitive that supports user error
// message reporting.
type Error struct {
	Cause           error
	Type            Type
	Message         string
	Troubleshooting string
	Link            string
}

// New returns an error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf returns a formatted error.
func Errorf(format string, args ...interface{}) error {
	return errors.Errorf(format, args...)
}

// Wrap annotates err with message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Cause returns the underlying cause of err.
func Cause(err error) error {
	return errors.Cause(err)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	} else if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Type == User || e.Type == Exec {
		msg = color.RedString("%s", msg)
	}

	if e.Troubleshooting != "" {
		msg += "\n\n" + color.HiYellowString("TROUBLESHOOTING:") + "\n" + wordwrap.WrapString(e.Troubleshooting, width)
	}
	if e.Link != "" {
		msg += "\n\n" + wordwrap.WrapString("For more information, see: ", width) + color.HiBlueString(e.Link)
	}
	if e.Type == Unknown {
		msg += ReportBugMessage
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}
