package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/sopak/gopathdeps/files"
)

var ErrFileNotFound = errors.New("no files existed")

// TryStrings returns the first non-empty candidate.
func TryStrings(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// TryBools returns the first candidate that is set.
func TryBools(candidates ...*bool) bool {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return false
}

// TryFiles returns the first candidate that exists.
func TryFiles(candidates ...string) (string, error) {
	for _, c := range candidates {
		ok, err := files.Exists(c)
		if err != nil {
			return "", err
		}
		if ok {
			return c, nil
		}
	}
	return "", ErrFileNotFound
}

// flagBool is set only when the flag is true, so that an absent flag falls
// through to other sources.
func flagBool(name string) *bool {
	if BoolFlag(name) {
		return boolPtr(true)
	}
	return nil
}

// envBool is set only when the environment variable parses as a boolean.
func envBool(name string) *bool {
	b, err := strconv.ParseBool(os.Getenv(name))
	if err != nil {
		return nil
	}
	return &b
}

func boolPtr(b bool) *bool {
	return &b
}
