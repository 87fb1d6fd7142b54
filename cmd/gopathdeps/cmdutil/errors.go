// Package cmdutil holds helpers shared by commands.
package cmdutil

import (
	"github.com/sopak/gopathdeps/cache"
	"github.com/sopak/gopathdeps/errors"
	"github.com/sopak/gopathdeps/fetch"
	"github.com/sopak/gopathdeps/imports"
)

// Explain attaches troubleshooting instructions to the errors that users can
// act on. Other errors are returned unchanged.
func Explain(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errors.Error); ok {
		return err
	}

	var unresolvable *fetch.UnresolvableReferenceError
	var tool *imports.ToolError
	var walk *cache.WalkError
	switch {
	case errors.As(err, &unresolvable):
		return &errors.Error{
			Cause:           err,
			Type:            errors.User,
			Troubleshooting: errors.UnresolvableReferenceMessage,
		}
	case errors.As(err, &tool):
		return &errors.Error{
			Cause:           err,
			Type:            errors.Exec,
			Troubleshooting: errors.MissingToolMessage,
		}
	case errors.As(err, &walk):
		return &errors.Error{
			Cause:           err,
			Type:            errors.Exec,
			Troubleshooting: errors.CacheWalkMessage,
		}
	default:
		return err
	}
}
