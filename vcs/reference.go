package vcs

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/mod/module"
)

// A Reference identifies a repository that provides an import path, and the
// ref within it to check out.
type Reference struct {
	Name string // The import identifier this reference was derived from.
	Root string // Import path of the repository root, e.g. "github.com/pkg/errors".
	Type VCS
	URL  string // Remote location to clone from.
	Ref  string // Branch, tag or revision. Empty selects the remote's default.
}

func (r Reference) String() string {
	s := r.Root
	if s == "" {
		s = r.Name
	}
	if r.Ref != "" {
		s += "@" + r.Ref
	}
	return s
}

// Dir returns the directory below targetRoot that holds the repository.
func (r Reference) Dir(targetRoot string) string {
	return filepath.Join(targetRoot, filepath.FromSlash(r.Root))
}

// A FullReference is a Reference pinned to the revision that was checked out.
type FullReference struct {
	Reference
	Revision string
	Branch   string
}

type host struct {
	name    string
	pattern *regexp.Regexp
	vcs     func(match []string) VCS
	url     func(match []string) string
}

const segment = `[A-Za-z0-9_.\-~]+`

func always(vcs VCS) func([]string) VCS {
	return func([]string) VCS { return vcs }
}

func https(match []string) string {
	return "https://" + match[1]
}

// Known hosts, tried in order. The first submatch of every pattern is the
// repository root.
var hosts = []host{
	{
		name:    "GitHub",
		pattern: regexp.MustCompile(`^(github\.com/` + segment + `/` + segment + `)(/.*)?$`),
		vcs:     always(Git),
		url:     https,
	},
	{
		name:    "Bitbucket",
		pattern: regexp.MustCompile(`^(bitbucket\.org/` + segment + `/` + segment + `)(/.*)?$`),
		vcs:     always(Git),
		url:     https,
	},
	{
		name:    "GitLab",
		pattern: regexp.MustCompile(`^(gitlab\.com/` + segment + `/` + segment + `)(/.*)?$`),
		vcs:     always(Git),
		url:     https,
	},
	{
		name:    "Go sub-repositories",
		pattern: regexp.MustCompile(`^(golang\.org/x/(` + segment + `))(/.*)?$`),
		vcs:     always(Git),
		url: func(match []string) string {
			return "https://go.googlesource.com/" + match[2]
		},
	},
	{
		name:    "gopkg.in",
		pattern: regexp.MustCompile(`^(gopkg\.in/(?:[A-Za-z0-9_\-]+/)?[A-Za-z0-9_\-.]+\.v[0-9]+)(/.*)?$`),
		vcs:     always(Git),
		url:     https,
	},
	{
		name:    "VCS suffix",
		pattern: regexp.MustCompile(`^([A-Za-z0-9\-]+\.[A-Za-z0-9\-.]+(?:/` + segment + `)*?\.(git|hg|svn))(/.*)?$`),
		vcs: func(match []string) VCS {
			switch match[2] {
			case "hg":
				return Mercurial
			case "svn":
				return Subversion
			default:
				return Git
			}
		},
		url: func(match []string) string {
			if match[2] == "git" {
				return "https://" + match[1]
			}
			return "https://" + strings.TrimSuffix(match[1], "."+match[2])
		},
	},
}

// ParseReference derives the repository reference for an import identifier
// from its host. It returns false when no known host pattern matches, or when
// name is not a valid import path.
func ParseReference(name, ref string) (Reference, bool) {
	if module.CheckImportPath(name) != nil {
		return Reference{Name: name, Ref: ref}, false
	}
	for _, h := range hosts {
		match := h.pattern.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		return Reference{
			Name: name,
			Root: match[1],
			Type: h.vcs(match),
			URL:  h.url(match),
			Ref:  ref,
		}, true
	}
	return Reference{Name: name, Ref: ref}, false
}

// RootOf returns the repository root of an import identifier, or the
// identifier itself when its host is unknown.
func RootOf(name string) string {
	ref, ok := ParseReference(name, "")
	if !ok {
		return name
	}
	return ref.Root
}
