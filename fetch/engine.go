// Package fetch resolves the transitive dependencies of a project and fetches
// the missing ones through version control.
package fetch

import (
	"strings"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/sopak/gopathdeps/dependency"
	"github.com/sopak/gopathdeps/vcs"
)

// A Scanner lists the imports of a dependency.
type Scanner interface {
	TransitiveImports(dep dependency.Dependency) ([]dependency.Dependency, error)
}

// An Engine resolves and fetches dependencies.
type Engine struct {
	Configurations dependency.Configurations
	Provider       vcs.Provider
	Scanner        Scanner

	DependencyCache string
	WorkspaceSource string
	ForceUpdate     bool
}

// Resolve fetches the declared dependencies of configuration, the required
// dependencies and everything they import, breadth-first. The empty
// configuration selects every declared dependency.
//
// Every identifier is handled at most once. Any failure aborts the run, and
// no results are returned.
func (e *Engine) Resolve(configuration string, required ...dependency.Dependency) (Results, error) {
	declared, err := e.Configurations.Get(configuration)
	if err != nil {
		return nil, err
	}

	var queue []dependency.Dependency
	queue = append(queue, declared...)
	queue = append(queue, required...)

	target := e.TargetFor(configuration)
	results := make(Results)
	for len(queue) > 0 {
		dep := queue[0]
		queue = queue[1:]
		if _, ok := results[dep.Name]; ok {
			continue
		}

		outcome, err := e.fetch(dep, target)
		if err != nil {
			return nil, err
		}
		results[dep.Name] = Result{Dependency: dep, Outcome: outcome}

		imports, err := e.Scanner.TransitiveImports(dep)
		if err != nil {
			return nil, errors.Wrapf(err, "could not scan imports of %s", dep.Name)
		}
		queue = append(queue, imports...)
	}

	e.logSummary(configuration, results)
	return results, nil
}

// TargetFor returns the root directory that dependencies of configuration are
// fetched into.
func (e *Engine) TargetFor(configuration string) string {
	if configuration == dependency.Tool {
		return e.WorkspaceSource
	}
	return e.DependencyCache
}

func (e *Engine) fetch(dep dependency.Dependency, target string) (Outcome, error) {
	// Toolchain packages ship with the Go distribution and have no repository.
	switch dep.Kind {
	case dependency.Source, dependency.System:
		log.WithField("dependency", dep.Name).Debug("dependency is part of the workspace or toolchain")
		return AlreadyPresent, nil
	}

	ref, _ := vcs.ParseReference(dep.Name, dep.Version)
	repository, ok := e.Provider.TryProvideFor(ref)
	if !ok {
		return AlreadyPresent, &UnresolvableReferenceError{Reference: ref}
	}

	if e.ForceUpdate {
		err := repository.ForceUpdate(target)
		if err != nil {
			return AlreadyPresent, errors.Wrapf(err, "could not update %s", ref)
		}
		log.WithField("reference", ref.String()).Info("dependency updated")
		return Downloaded, nil
	}

	log.WithField("reference", ref.String()).Debug("updating dependency if required")
	full, err := repository.UpdateIfRequired(target)
	if err != nil {
		return AlreadyPresent, errors.Wrapf(err, "could not update %s", ref)
	}
	if full == nil {
		log.WithField("reference", ref.String()).Debug("no update required")
		return AlreadyPresent, nil
	}
	log.WithFields(log.Fields{
		"reference": ref.String(),
		"revision":  full.Revision,
	}).Info("dependency updated")
	return Downloaded, nil
}

func (e *Engine) logSummary(configuration string, results Results) {
	if len(results) == 0 {
		return
	}
	title := "All"
	if configuration != "" {
		title = strings.ToUpper(configuration[:1]) + configuration[1:]
	}
	var b strings.Builder
	b.WriteString(title + " dependencies:")
	for _, result := range results.Sorted() {
		b.WriteString("\n\t* " + result.Dependency.String())
	}
	log.Info(b.String())
}
