// Package gitrepo reads version-control state from a local checkout:
// the current branch, the HEAD commit, per-subpath history and the
// canonical remote. It never shells out to git; everything goes through
// go-git against the on-disk repository.
package gitrepo

import (
	"io"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Error kinds surfaced by the inspector. Callers match with errors.Is.
var (
	ErrNotARepository = errors.New("not a git repository")
	ErrDetachedHead   = errors.New("HEAD is detached, no branch checked out")
	ErrNoSuchRevision = errors.New("path has no recorded history")
	ErrNoValidRemote  = errors.New("no remote points at a supported hosting provider")
)

// supportedHosts are the hosting providers krait knows how to build raw
// fetch URLs for.
var supportedHosts = map[string]bool{
	"github.com":    true,
	"gitlab.com":    true,
	"bitbucket.org": true,
}

// Repository is an open local checkout.
type Repository struct {
	repo *git.Repository
}

// Open opens the checkout rooted at path. A directory that is not under
// version control fails with ErrNotARepository.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.Wrap(ErrNotARepository, path)
		}
		return nil, errors.Wrapf(err, "failed to open repository at %s", path)
	}
	return &Repository{repo: repo}, nil
}

// CurrentBranch returns the short name of the branch HEAD points at.
func (r *Repository) CurrentBranch() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve HEAD")
	}
	if !ref.Name().IsBranch() {
		return "", ErrDetachedHead
	}
	return ref.Name().Short(), nil
}

// HeadCommit returns the id of the HEAD commit and its committer
// timestamp in seconds since epoch.
func (r *Repository) HeadCommit() (string, int64, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", 0, errors.Wrap(err, "failed to resolve HEAD")
	}
	commit, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return "", 0, errors.Wrapf(err, "failed to read commit %s", ref.Hash())
	}
	return commit.Hash.String(), commit.Committer.When.Unix(), nil
}

// LastCommitTouching returns the id of the most recent commit that
// modified subpath (a repo-relative, slash-separated path). A subpath
// with no history at all, e.g. an untracked directory, fails with
// ErrNoSuchRevision.
func (r *Repository) LastCommitTouching(subpath string) (string, error) {
	subpath = strings.TrimSuffix(subpath, "/")

	iter, err := r.repo.Log(&git.LogOptions{
		PathFilter: func(p string) bool {
			return p == subpath || strings.HasPrefix(p, subpath+"/")
		},
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to walk history of %s", subpath)
	}
	defer iter.Close()

	commit, err := iter.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", errors.Wrap(ErrNoSuchRevision, subpath)
		}
		return "", errors.Wrapf(err, "failed to walk history of %s", subpath)
	}
	return commit.Hash.String(), nil
}

// PrimaryRemoteURL selects, among the configured remotes, the first one
// whose URL points at a supported hosting provider and returns it in
// normalized "host/owner/repo" form. "origin" wins over other remotes.
func (r *Repository) PrimaryRemoteURL() (string, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return "", errors.Wrap(err, "failed to list remotes")
	}

	sort.Slice(remotes, func(i, j int) bool {
		a, b := remotes[i].Config().Name, remotes[j].Config().Name
		if a == git.DefaultRemoteName {
			return true
		}
		if b == git.DefaultRemoteName {
			return false
		}
		return a < b
	})

	for _, remote := range remotes {
		for _, raw := range remote.Config().URLs {
			normalized, ok := NormalizeRemoteURL(raw)
			if !ok {
				logrus.Debugf("skipping remote %s url %s: unsupported host", remote.Config().Name, raw)
				continue
			}
			return normalized, nil
		}
	}
	return "", ErrNoValidRemote
}

// NormalizeRemoteURL reduces a git remote URL to "host/owner/repo" and
// reports whether the host is a supported provider. It understands
// https, ssh and scp-like forms.
func NormalizeRemoteURL(raw string) (string, bool) {
	s := raw
	for _, prefix := range []string{"https://", "http://", "ssh://", "git://"} {
		s = strings.TrimPrefix(s, prefix)
	}

	// scp-like syntax: git@github.com:owner/repo.git
	if at := strings.Index(s, "@"); at >= 0 {
		s = s[at+1:]
	}
	s = strings.Replace(s, ":", "/", 1)
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")

	host, _, found := strings.Cut(s, "/")
	if !found || !supportedHosts[host] {
		return "", false
	}
	return s, true
}
