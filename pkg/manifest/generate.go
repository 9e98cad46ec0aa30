package manifest

import (
	"os"
	"path"
	"path/filepath"

	"github.com/moby/patternmatcher"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"krait/pkg/digest"
	"krait/pkg/gitrepo"
	"krait/pkg/pkgdesc"
)

// PackagesDir is the repository subdirectory generation scans; each of
// its immediate subdirectories is one package.
const PackagesDir = "packages"

// GenerateStats reports what a generation run scanned.
type GenerateStats struct {
	Packages    int
	Files       int
	HashedBytes int64
}

// Generate scans the checkout rooted at repoRoot and folds every
// package directory into seed, returning the merged manifest. The seed
// is not mutated; callers get back an independent value and decide
// themselves whether to write it anywhere, so a failed run never leaves
// a partially updated manifest behind.
func Generate(repoRoot string, seed *Manifest) (*Manifest, *GenerateStats, error) {
	repo, err := gitrepo.Open(repoRoot)
	if err != nil {
		return nil, nil, err
	}

	m := seed.Clone()
	stats := &GenerateStats{}

	// A pre-existing repo location is preserved, never re-resolved.
	if m.Repo == "" {
		m.Repo, err = repo.PrimaryRemoteURL()
		if err != nil {
			return nil, nil, err
		}
	}

	m.LatestCommit, m.LastUpdate, err = repo.HeadCommit()
	if err != nil {
		return nil, nil, err
	}

	branch, err := repo.CurrentBranch()
	if err != nil {
		return nil, nil, err
	}

	ignorePatterns, err := ReadIgnoreFile(repoRoot)
	if err != nil {
		return nil, nil, err
	}
	var matcher *patternmatcher.PatternMatcher
	if len(ignorePatterns) > 0 {
		matcher, err = patternmatcher.New(ignorePatterns)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "invalid %s patterns", IgnoreFile)
		}
	}

	dirents, err := os.ReadDir(filepath.Join(repoRoot, PackagesDir))
	switch {
	case os.IsNotExist(err):
		return nil, nil, errors.Wrap(ErrNoPackagesDirectory, repoRoot)
	case err != nil:
		return nil, nil, errors.Wrapf(err, "failed to read %s directory", PackagesDir)
	}

	for _, dirent := range dirents {
		if !dirent.IsDir() {
			continue
		}
		name := dirent.Name()

		version, entry, err := scanPackage(repoRoot, name, m.Repo, branch, repo, matcher, stats)
		if err != nil {
			return nil, nil, err
		}

		m.replaceOrAppend(name, version, *entry)
		stats.Packages++
	}

	return m, stats, nil
}

func scanPackage(repoRoot, name, repoURL, branch string, repo *gitrepo.Repository, matcher *patternmatcher.PatternMatcher, stats *GenerateStats) (string, *PackageEntry, error) {
	pkgPath := path.Join(PackagesDir, name)
	pkgDir := filepath.Join(repoRoot, PackagesDir, name)

	desc, err := pkgdesc.Read(pkgDir)
	if err != nil {
		return "", nil, err
	}

	commit, err := repo.LastCommitTouching(pkgPath)
	if err != nil {
		return "", nil, err
	}

	entry := &PackageEntry{
		Path:     pkgPath,
		Commit:   commit,
		Contents: []ContentFile{},
	}

	files, err := os.ReadDir(pkgDir)
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to read package directory %s", pkgPath)
	}

	for _, file := range files {
		if file.IsDir() {
			return "", nil, errors.Wrap(ErrUnsupportedNestedContent, path.Join(pkgPath, file.Name()))
		}
		if file.Name() == pkgdesc.FileName {
			continue
		}

		filePath := path.Join(pkgPath, file.Name())
		if matcher != nil {
			ignored, err := matcher.MatchesOrParentMatches(filePath)
			if err != nil {
				return "", nil, errors.Wrapf(err, "failed to match %s against %s", filePath, IgnoreFile)
			}
			if ignored {
				logrus.Debugf("skipping %s: matches %s", filePath, IgnoreFile)
				continue
			}
		}

		// Digests are always recomputed from the bytes on disk, never
		// carried over from a previous manifest.
		sum, err := digest.Sum(filepath.Join(pkgDir, file.Name()))
		if err != nil {
			return "", nil, err
		}
		if info, err := file.Info(); err == nil {
			stats.HashedBytes += info.Size()
		}

		entry.Contents = append(entry.Contents, ContentFile{
			Name:   file.Name(),
			Path:   filePath,
			Digest: sum,
			URL:    RawFetchURL(repoURL, branch, filePath),
		})
		stats.Files++
	}

	return desc.Version, entry, nil
}
