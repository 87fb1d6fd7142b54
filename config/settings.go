package config

import (
	"path/filepath"

	"github.com/apex/log"

	"github.com/sopak/gopathdeps/dependency"
)

// Settings are the assembled configuration of a run.
type Settings struct {
	Package          string // Import path of the project.
	Gopath           string
	Goroot           string
	ImportsExtractor string // Empty selects the built-in extractor.
	Dependencies     Dependencies
}

// Dependencies are the settings of dependency resolution and cleaning.
type Dependencies struct {
	Cache            string
	ForceUpdate      bool
	DeleteUnknown    bool
	DeleteAllOnClean bool
	Parallelism      int
	Configurations   dependency.Configurations
}

// WorkspaceSource is the source root of the workspace.
func (s Settings) WorkspaceSource() string {
	return filepath.Join(s.Gopath, "src")
}

// ToolchainSource is the source root of the toolchain.
func (s Settings) ToolchainSource() string {
	if s.Goroot == "" {
		return ""
	}
	return filepath.Join(s.Goroot, "src")
}

// Load computes Settings from the loaded configuration sources.
func Load() (Settings, error) {
	gopath, err := Gopath()
	if err != nil {
		return Settings{}, err
	}
	goroot, err := Goroot()
	if err != nil {
		return Settings{}, err
	}
	extractor, err := ImportsExtractor()
	if err != nil {
		return Settings{}, err
	}
	cache, err := DependencyCache()
	if err != nil {
		return Settings{}, err
	}
	configurations, err := Configurations()
	if err != nil {
		return Settings{}, err
	}

	s := Settings{
		Package:          Package(),
		Gopath:           gopath,
		Goroot:           goroot,
		ImportsExtractor: extractor,
		Dependencies: Dependencies{
			Cache:            cache,
			ForceUpdate:      ForceUpdate(),
			DeleteUnknown:    DeleteUnknown(),
			DeleteAllOnClean: DeleteAllOnClean(),
			Parallelism:      Parallelism(),
			Configurations:   configurations,
		},
	}
	log.WithField("settings", s).Debug("loaded settings")
	return s, nil
}
