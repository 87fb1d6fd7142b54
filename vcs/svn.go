package vcs

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/sopak/gopathdeps/exec"
)

// SubversionBackend provides Subversion repositories through the `svn` binary.
type SubversionBackend struct{}

func (SubversionBackend) Supports(ref Reference) bool { return ref.Type == Subversion }

func (SubversionBackend) Provide(ref Reference) Repository { return &SubversionRepository{ref: ref} }

// SubversionRepository implements Repository for a remote Subversion
// repository. A Ref is interpreted as a revision number.
type SubversionRepository struct {
	ref Reference
}

func (s *SubversionRepository) Reference() Reference { return s.ref }

func svnCmd() (string, error) {
	cmd, _, err := exec.Which("--version", os.Getenv("SVN_BINARY"), "svn")
	if err != nil {
		return "", errors.Wrap(err, "could not find svn binary")
	}
	return cmd, nil
}

func (s *SubversionRepository) UpdateIfRequired(targetRoot string) (*FullReference, error) {
	cmd, err := svnCmd()
	if err != nil {
		return nil, err
	}

	dir := s.ref.Dir(targetRoot)
	exists, err := CheckedOut(dir, Subversion)
	if err != nil {
		return nil, err
	}
	if !exists {
		return s.checkout(cmd, dir)
	}

	before, err := readSvnInfo(cmd, dir)
	if err != nil {
		return nil, err
	}
	argv := []string{"update"}
	if s.ref.Ref != "" {
		argv = append(argv, "-r", s.ref.Ref)
	}
	_, _, err = exec.Run(exec.Cmd{Name: cmd, Argv: argv, Dir: dir})
	if err != nil {
		return nil, errors.Wrapf(err, "could not update %s", s.ref.String())
	}
	after, err := readSvnInfo(cmd, dir)
	if err != nil {
		return nil, err
	}
	if after.Entry.Revision == before.Entry.Revision {
		log.WithField("reference", s.ref.String()).Debug("Subversion checkout is up to date")
		return nil, nil
	}
	return s.full(after), nil
}

func (s *SubversionRepository) ForceUpdate(targetRoot string) error {
	cmd, err := svnCmd()
	if err != nil {
		return err
	}
	dir := s.ref.Dir(targetRoot)
	err = os.RemoveAll(dir)
	if err != nil {
		return errors.Wrapf(err, "could not remove %s", dir)
	}
	_, err = s.checkout(cmd, dir)
	return err
}

func (s *SubversionRepository) checkout(cmd, dir string) (*FullReference, error) {
	err := os.MkdirAll(filepath.Dir(dir), 0755)
	if err != nil {
		return nil, err
	}
	cleanup := cleanupOnFailure(dir)
	argv := []string{"checkout"}
	if s.ref.Ref != "" {
		argv = append(argv, "-r", s.ref.Ref)
	}
	argv = append(argv, s.ref.URL, dir)
	_, _, err = exec.Run(exec.Cmd{Name: cmd, Argv: argv})
	if err != nil {
		cleanup()
		return nil, errors.Wrapf(err, "could not check out %s", s.ref.URL)
	}
	info, err := readSvnInfo(cmd, dir)
	if err != nil {
		return nil, err
	}
	return s.full(info), nil
}

func (s *SubversionRepository) full(info svnInfo) *FullReference {
	return &FullReference{
		Reference: s.ref,
		Revision:  info.Entry.Revision,
		Branch:    svnBranchFromInfo(&info),
	}
}

func readSvnInfo(cmd, dir string) (svnInfo, error) {
	var info svnInfo
	stdout, _, err := exec.Run(exec.Cmd{
		Name: cmd,
		Argv: []string{"info", "--xml"},
		Dir:  dir,
	})
	if err != nil {
		return info, errors.Wrapf(err, "could not run `%s info`", cmd)
	}
	err = info.unmarshalXML([]byte(stdout))
	return info, err
}

// svnBranchFromInfo extracts the name of the branch from the info provided.
func svnBranchFromInfo(info *svnInfo) string {
	relativeURL := strings.TrimPrefix(info.Entry.RelativeURL, "^")

	// trimmed has just what follows the path of the URL locating the project.
	trimmed := strings.TrimPrefix(
		strings.TrimPrefix(info.Entry.URL, info.Entry.Repository.Root),
		relativeURL,
	)

	// Branches are typically identified by being under this directory.
	branches := "/branches/"

	if strings.HasPrefix(trimmed, branches) {
		trimmed = strings.TrimPrefix(trimmed, branches)
	} else {
		trimmed = strings.TrimPrefix(trimmed, "/")
	}

	if trimmed != "" {
		return trimmed
	}
	return "trunk"
}

// The svnInfo type represents the result of running `svn info --xml`.
type svnInfo struct {
	Entry infoEntry `xml:"entry"`
}

type infoEntry struct {
	Path string `xml:"path,attr"`

	// Revision is the latest revision ID, a numeric string.
	Revision string `xml:"revision,attr"`
	Kind     string `xml:"kind,attr"`

	// URL is the remote location from which the repo can be downloaded.
	URL         string `xml:"url"`
	RelativeURL string `xml:"relative-url"`
	Repository  struct {
		Root string `xml:"root"`
		Uuid string `xml:"uuid"`
	} `xml:"repository"`
}

func (s *svnInfo) unmarshalXML(data []byte) error {
	return xml.Unmarshal(data, s)
}
