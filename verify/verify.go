// Package verify checks that every package imported by a project can be
// found, using the same lookup rules as resolution.
package verify

import (
	"go/build"
	"sort"

	"github.com/KyleBanks/depth"
	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/sopak/gopathdeps/config"
	"github.com/sopak/gopathdeps/dependency"
	"github.com/sopak/gopathdeps/resolver"
)

// A Verifier traces import trees.
type Verifier struct {
	Resolver *resolver.Resolver
	Context  build.Context
}

// New constructs a Verifier for the workspace of s.
func New(s config.Settings) (*Verifier, error) {
	r, err := resolver.FromSettings(s)
	if err != nil {
		return nil, err
	}

	ctx := build.Default
	ctx.GOPATH = s.Gopath
	if s.Goroot != "" {
		ctx.GOROOT = s.Goroot
	}
	return &Verifier{Resolver: r, Context: ctx}, nil
}

// Verify traces the import tree of pkg and returns the packages that could not
// be found, sorted. Standard library packages are not traced.
func (v *Verifier) Verify(pkg string) ([]string, error) {
	tree := depth.Tree{
		Importer: &importer{resolver: v.Resolver, ctx: v.Context},
	}
	err := tree.Resolve(pkg)
	if err != nil {
		return nil, errors.Wrapf(err, "could not resolve %s", pkg)
	}

	seen := make(map[string]bool)
	collect(tree.Root, seen)

	var unresolved []string
	for name, resolved := range seen {
		if !resolved {
			unresolved = append(unresolved, name)
		}
	}
	sort.Strings(unresolved)
	log.WithFields(log.Fields{
		"package":    pkg,
		"packages":   len(seen),
		"unresolved": len(unresolved),
	}).Debug("verified import tree")
	return unresolved, nil
}

// collect records whether each package of the tree was resolved. A package
// counts as resolved if any occurrence of it was.
func collect(p *depth.Pkg, seen map[string]bool) {
	seen[p.Name] = seen[p.Name] || p.Resolved
	for i := range p.Deps {
		collect(&p.Deps[i], seen)
	}
}

// importer implements depth.Importer on top of the resolver's lookup.
type importer struct {
	resolver *resolver.Resolver
	ctx      build.Context
}

func (i *importer) Import(name, srcDir string, mode build.ImportMode) (*build.Package, error) {
	if name == "C" {
		return &build.Package{Name: "C", ImportPath: "C", Goroot: true}, nil
	}

	demandedBy := dependency.Dependency{Location: srcDir}
	dep, err := i.resolver.ResolvePackage(demandedBy, name)
	if err != nil {
		return nil, err
	}
	if dep.Kind == dependency.Unresolved {
		return nil, errors.Errorf("cannot find package %s", name)
	}

	pkg, err := i.ctx.ImportDir(dep.Location, mode)
	if err != nil {
		if _, ok := err.(*build.NoGoError); !ok {
			return nil, errors.Wrapf(err, "could not import %s", name)
		}
	}
	pkg.ImportPath = name
	pkg.Goroot = dep.Kind == dependency.System
	return pkg, nil
}
