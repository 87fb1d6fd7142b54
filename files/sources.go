package files

import (
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar"
)

// SourceExtension is the file extension that marks a Go source file.
const SourceExtension = ".go"

// SourceFiles returns the Go source files directly inside dir, sorted. A
// missing directory has no source files.
func SourceFiles(dir string) ([]string, error) {
	ok, err := ExistsFolder(dir)
	if err != nil || !ok {
		return nil, err
	}

	matches, err := doublestar.Glob(filepath.Join(escape(dir), "*"+SourceExtension))
	if err != nil {
		return nil, err
	}

	var sources []string
	for _, match := range matches {
		regular, err := Exists(match)
		if err != nil {
			return nil, err
		}
		if regular {
			sources = append(sources, match)
		}
	}
	sort.Strings(sources)
	return sources, nil
}

// ContainsSources reports whether dir exists and contains at least one Go
// source file.
func ContainsSources(dir string) (bool, error) {
	sources, err := SourceFiles(dir)
	if err != nil {
		return false, err
	}
	return len(sources) > 0, nil
}

// escape quotes glob metacharacters so that a directory name is matched
// literally.
func escape(dir string) string {
	var escaped []rune
	for _, r := range dir {
		switch r {
		case '*', '?', '[', ']', '{', '}':
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, r)
	}
	return string(escaped)
}
