// Package dependency defines a Go package dependency within a GOPATH-style
// workspace.
package dependency

import (
	"sort"

	"github.com/pkg/errors"
)

// Well-known configuration names.
const (
	Build = "build"
	Test  = "test"
	Tool  = "tool"
)

// A Dependency is a single Go package, identified by its import path.
type Dependency struct {
	Name    string // Import identifier, e.g. "github.com/pkg/errors".
	Version string // VCS ref (branch, tag or revision) to check out, if any.
	Kind    Kind

	// Location is where the package's sources were found. It is empty when the
	// dependency has not been resolved to a concrete directory.
	Location string

	// Parent is the identifier of the dependency whose vendor folder provided
	// this one. It is a lookup key, never an owning reference.
	Parent string
}

// New returns an implicit dependency on the package at importPath.
func New(importPath string) Dependency {
	return Dependency{
		Name: importPath,
		Kind: Implicit,
	}
}

// Group returns the identifier under which this dependency's sources are laid
// out below a root directory.
func (d Dependency) Group() string {
	return d.Name
}

func (d Dependency) String() string {
	s := d.Name
	if d.Version != "" {
		s += "@" + d.Version
	}
	return s + " (" + d.Kind.String() + ")"
}

// Sort orders dependencies by identifier.
func Sort(deps []Dependency) {
	sort.SliceStable(deps, func(i, j int) bool {
		return deps[i].Name < deps[j].Name
	})
}

// Configurations maps a configuration name (e.g. "build") to the dependencies
// declared for it.
type Configurations map[string][]Dependency

// Names returns the configuration names in lexical order.
func (c Configurations) Names() []string {
	var names []string
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the dependencies declared for a configuration. The empty name
// selects the dependencies of every configuration.
func (c Configurations) Get(name string) ([]Dependency, error) {
	if name == "" {
		return c.All(), nil
	}
	deps, ok := c[name]
	if !ok {
		switch name {
		case Build, Test, Tool:
			return nil, nil
		}
		return nil, errors.Errorf("unknown configuration %q", name)
	}
	return append([]Dependency(nil), deps...), nil
}

// All returns the declared dependencies of every configuration, ordered by
// configuration name and then by declaration.
func (c Configurations) All() []Dependency {
	var all []Dependency
	for _, name := range c.Names() {
		all = append(all, c[name]...)
	}
	return all
}
