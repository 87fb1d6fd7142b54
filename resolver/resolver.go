// Package resolver locates the sources of an imported package.
//
// Lookup follows a fixed order of tiers, and the first tier that finds a
// directory containing Go sources wins:
//
//   1. The closest enclosing vendor folder of the importing package.
//   2. The dependency cache.
//   3. The workspace's source root ($GOPATH/src).
//   4. The toolchain's source root ($GOROOT/src).
//
// An import that no tier finds is unresolved, and becomes a candidate for
// fetching.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/apex/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"golang.org/x/mod/module"

	"github.com/sopak/gopathdeps/config"
	"github.com/sopak/gopathdeps/dependency"
	"github.com/sopak/gopathdeps/files"
)

// A Tier is one lookup location.
type Tier int

const (
	Vendor Tier = iota
	Cache
	Workspace
	Toolchain
)

// Tiers lists every tier in lookup order.
var Tiers = []Tier{Vendor, Cache, Workspace, Toolchain}

func (t Tier) String() string {
	switch t {
	case Vendor:
		return "vendor"
	case Cache:
		return "cache"
	case Workspace:
		return "workspace"
	case Toolchain:
		return "toolchain"
	default:
		return ""
	}
}

// Roots are the well-known directories that packages are looked up in.
type Roots struct {
	WorkspaceSource string // $GOPATH/src of the workspace.
	DependencyCache string
	ToolchainSource string // $GOROOT/src.
}

// Abs returns the roots as absolute paths.
func (r Roots) Abs() (Roots, error) {
	var err error
	for _, root := range []*string{&r.WorkspaceSource, &r.DependencyCache, &r.ToolchainSource} {
		if *root == "" {
			continue
		}
		*root, err = filepath.Abs(*root)
		if err != nil {
			return Roots{}, err
		}
	}
	return r, nil
}

const probeCacheSize = 4096

// A Resolver resolves import paths to dependencies.
type Resolver struct {
	Roots       Roots
	PackageName string // The project's own import path.

	probes *lru.Cache[string, bool]
}

// New constructs a Resolver. packageName is the project's own import path; it
// decides which workspace packages are sources of the project.
func New(roots Roots, packageName string) (*Resolver, error) {
	abs, err := roots.Abs()
	if err != nil {
		return nil, errors.Wrap(err, "could not resolve root directories")
	}
	probes, err := lru.New[string, bool](probeCacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		Roots:       abs,
		PackageName: strings.TrimSuffix(packageName, "/"),
		probes:      probes,
	}, nil
}

// FromSettings constructs the Resolver of the workspace configured by s.
func FromSettings(s config.Settings) (*Resolver, error) {
	return New(Roots{
		WorkspaceSource: s.WorkspaceSource(),
		DependencyCache: s.Dependencies.Cache,
		ToolchainSource: s.ToolchainSource(),
	}, s.Package)
}

// ResolvePackage resolves importPath, imported by demandedBy, to a dependency.
// An invalid import path is unresolved and never looked up.
func (r *Resolver) ResolvePackage(demandedBy dependency.Dependency, importPath string) (dependency.Dependency, error) {
	if err := module.CheckImportPath(importPath); err != nil {
		log.WithError(err).WithField("import", importPath).Warn("invalid import path")
		return dependency.Dependency{
			Name: importPath,
			Kind: dependency.Unresolved,
		}, nil
	}

	for _, tier := range Tiers {
		dep, ok, err := r.resolveIn(tier, demandedBy, importPath)
		if err != nil {
			return dependency.Dependency{}, errors.Wrapf(err, "could not look up %s in %s", importPath, tier)
		}
		if ok {
			log.WithFields(log.Fields{
				"import":   importPath,
				"tier":     tier.String(),
				"location": dep.Location,
			}).Debug("resolved import")
			return dep, nil
		}
	}

	log.WithField("import", importPath).Debug("import is unresolved")
	return dependency.Dependency{
		Name: importPath,
		Kind: dependency.Unresolved,
	}, nil
}

func (r *Resolver) resolveIn(tier Tier, demandedBy dependency.Dependency, importPath string) (dependency.Dependency, bool, error) {
	switch tier {
	case Vendor:
		return r.resolveVendor(demandedBy, importPath)
	case Cache:
		return r.resolveUnder(r.Roots.DependencyCache, importPath, dependency.Implicit)
	case Workspace:
		kind := dependency.Implicit
		if r.IsProjectSource(importPath) {
			kind = dependency.Source
		}
		return r.resolveUnder(r.Roots.WorkspaceSource, importPath, kind)
	case Toolchain:
		return r.resolveUnder(r.Roots.ToolchainSource, importPath, dependency.System)
	default:
		return dependency.Dependency{}, false, errors.Errorf("unknown tier %d", tier)
	}
}

// IsProjectSource reports whether importPath is the project's package or one
// of its sub-packages.
func (r *Resolver) IsProjectSource(importPath string) bool {
	if r.PackageName == "" {
		return false
	}
	return importPath == r.PackageName || strings.HasPrefix(importPath, r.PackageName+"/")
}

func (r *Resolver) resolveUnder(root, importPath string, kind dependency.Kind) (dependency.Dependency, bool, error) {
	if root == "" {
		return dependency.Dependency{}, false, nil
	}
	location := filepath.Join(root, filepath.FromSlash(importPath))
	ok, err := r.containsSources(location)
	if err != nil || !ok {
		return dependency.Dependency{}, false, err
	}
	return dependency.Dependency{
		Name:     importPath,
		Kind:     kind,
		Location: location,
	}, true, nil
}

// resolveVendor walks upwards from the importing package's location and
// returns the closest vendor folder that provides importPath. The walk never
// leaves the root that contains the importing package.
func (r *Resolver) resolveVendor(demandedBy dependency.Dependency, importPath string) (dependency.Dependency, bool, error) {
	if demandedBy.Location == "" {
		return dependency.Dependency{}, false, nil
	}
	start, err := filepath.Abs(demandedBy.Location)
	if err != nil {
		return dependency.Dependency{}, false, err
	}
	root := r.enclosingRoot(start)
	if root == "" {
		return dependency.Dependency{}, false, nil
	}

	var location string
	_, err = files.WalkUpWithin(root, start, func(dir string) error {
		candidate := filepath.Join(dir, "vendor", filepath.FromSlash(importPath))
		ok, err := r.containsSources(candidate)
		if err != nil {
			return err
		}
		if ok {
			location = candidate
			return files.ErrStopWalk
		}
		return nil
	})
	if err == files.ErrDirNotFound {
		return dependency.Dependency{}, false, nil
	}
	if err != nil {
		return dependency.Dependency{}, false, err
	}
	return dependency.Dependency{
		Name:     importPath,
		Kind:     dependency.Implicit,
		Location: location,
		Parent:   demandedBy.Name,
	}, true, nil
}

// enclosingRoot returns the workspace or dependency cache root that contains
// dir, or "" if neither does.
func (r *Resolver) enclosingRoot(dir string) string {
	for _, root := range []string{r.Roots.WorkspaceSource, r.Roots.DependencyCache} {
		if root != "" && files.Within(root, dir) {
			return root
		}
	}
	return ""
}

// containsSources memoizes positive probes only: fetching may create a
// directory that an earlier probe found missing.
func (r *Resolver) containsSources(dir string) (bool, error) {
	if _, ok := r.probes.Get(dir); ok {
		return true, nil
	}
	ok, err := files.ContainsSources(dir)
	if err != nil {
		return false, err
	}
	if ok {
		r.probes.Add(dir, true)
	}
	return ok, nil
}
