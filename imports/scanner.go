package imports

import (
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/apex/log"
	"github.com/remeh/sizedwaitgroup"

	"github.com/sopak/gopathdeps/dependency"
	"github.com/sopak/gopathdeps/files"
)

// A Resolver resolves an import path, imported by demandedBy, to a dependency.
type Resolver interface {
	ResolvePackage(demandedBy dependency.Dependency, importPath string) (dependency.Dependency, error)
}

// A Scanner computes the imports of dependencies.
type Scanner struct {
	Resolver        Resolver
	Extractor       Extractor
	DependencyCache string
	WorkspaceSource string
	Parallelism     int // Defaults to GOMAXPROCS.
}

// TransitiveImports returns the external packages imported by the sources of
// dep, resolved and sorted by identifier. Sources are read from the
// dependency's location and from its directories below the dependency cache
// and the workspace.
//
// An import is resolved from the first of those directories, in that order,
// whose sources import it, so that directory's vendor folders win.
func (s *Scanner) TransitiveImports(dep dependency.Dependency) ([]dependency.Dependency, error) {
	var sources []string
	perDir := make(map[string][]string)
	dirs := s.sourceDirs(dep)
	seenFile := make(map[string]bool)
	for _, dir := range dirs {
		found, err := files.SourceFiles(dir)
		if err != nil {
			return nil, err
		}
		for _, file := range found {
			if seenFile[file] {
				continue
			}
			seenFile[file] = true
			perDir[dir] = append(perDir[dir], file)
			sources = append(sources, file)
		}
	}
	sort.Strings(sources)

	extracted, err := s.extractAll(sources)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var deps []dependency.Dependency
	for _, dir := range dirs {
		demandedBy := dep
		demandedBy.Location = dir
		for _, file := range perDir[dir] {
			for _, importPath := range extracted[file] {
				if seen[importPath] || !IsExternal(importPath) {
					continue
				}
				seen[importPath] = true
				resolved, err := s.Resolver.ResolvePackage(demandedBy, importPath)
				if err != nil {
					return nil, err
				}
				deps = append(deps, resolved)
			}
		}
	}
	dependency.Sort(deps)

	log.WithFields(log.Fields{
		"dependency": dep.Name,
		"files":      len(sources),
		"imports":    len(deps),
	}).Debug("scanned imports")
	return deps, nil
}

func (s *Scanner) sourceDirs(dep dependency.Dependency) []string {
	var dirs []string
	if dep.Location != "" {
		dirs = append(dirs, dep.Location)
	}
	for _, root := range []string{s.DependencyCache, s.WorkspaceSource} {
		if root != "" {
			dirs = append(dirs, filepath.Join(root, filepath.FromSlash(dep.Group())))
		}
	}
	return dirs
}

// extractAll runs the extractor over every file using a bounded pool. On
// failure, the error of the first failing file in sorted order is returned.
func (s *Scanner) extractAll(sources []string) (map[string][]string, error) {
	parallelism := s.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	extractor := s.Extractor
	if extractor == nil {
		extractor = Builtin{}
	}

	wg := sizedwaitgroup.New(parallelism)
	lock := sync.Mutex{}
	extracted := make(map[string][]string)
	failures := make(map[string]error)
	for _, f := range sources {
		wg.Add()
		go func(file string) {
			defer wg.Done()

			output, err := extractor.Extract(file)

			lock.Lock()
			defer lock.Unlock()
			if err != nil {
				failures[file] = err
				return
			}
			extracted[file] = ParseRaw(output)
		}(f)
	}
	wg.Wait()

	for _, file := range sources {
		if err, ok := failures[file]; ok {
			return nil, err
		}
	}
	return extracted, nil
}
