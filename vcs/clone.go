package vcs

import (
	"os"

	"github.com/apex/log"
)

// cleanupOnFailure returns a function that removes dir after a failed clone.
// A dir that already existed before the clone is left in place, since it may
// hold sources that were not fetched by us.
func cleanupOnFailure(dir string) func() {
	_, err := os.Lstat(dir)
	if err == nil || !os.IsNotExist(err) {
		return func() {}
	}
	return func() {
		err := os.RemoveAll(dir)
		if err != nil {
			log.WithError(err).WithField("dir", dir).Warn("could not remove partial checkout")
		}
	}
}
