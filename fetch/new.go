package fetch

import (
	"github.com/sopak/gopathdeps/config"
	"github.com/sopak/gopathdeps/imports"
	"github.com/sopak/gopathdeps/resolver"
	"github.com/sopak/gopathdeps/vcs"
)

// New constructs an Engine backed by version control and the import scanner.
func New(s config.Settings) (*Engine, error) {
	r, err := resolver.FromSettings(s)
	if err != nil {
		return nil, err
	}
	return &Engine{
		Configurations:  s.Dependencies.Configurations,
		Provider:        vcs.NewProvider(),
		Scanner:         NewScanner(s, r),
		DependencyCache: r.Roots.DependencyCache,
		WorkspaceSource: r.Roots.WorkspaceSource,
		ForceUpdate:     s.Dependencies.ForceUpdate,
	}, nil
}

// NewScanner constructs the import scanner configured by s.
func NewScanner(s config.Settings, r *resolver.Resolver) *imports.Scanner {
	var extractor imports.Extractor = imports.Builtin{}
	if s.ImportsExtractor != "" {
		extractor = imports.Tool{Cmd: s.ImportsExtractor}
	}
	return &imports.Scanner{
		Resolver:        r,
		Extractor:       extractor,
		DependencyCache: r.Roots.DependencyCache,
		WorkspaceSource: r.Roots.WorkspaceSource,
		Parallelism:     s.Dependencies.Parallelism,
	}
}
