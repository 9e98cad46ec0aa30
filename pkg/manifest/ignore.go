package manifest

import (
	"os"
	"path/filepath"

	"github.com/moby/patternmatcher/ignorefile"
	"github.com/pkg/errors"
)

// IgnoreFile lists patterns of repo-relative paths that generation
// leaves out of package contents.
const IgnoreFile = ".kraitignore"

// ReadIgnoreFile reads the .kraitignore file at the repository root and
// returns its patterns. A missing file is not an error.
func ReadIgnoreFile(root string) ([]string, error) {
	f, err := os.Open(filepath.Join(root, IgnoreFile))
	switch {
	case os.IsNotExist(err):
		return nil, nil
	case err != nil:
		return nil, errors.Wrapf(err, "failed to open %s", IgnoreFile)
	}
	defer f.Close()

	patterns, err := ignorefile.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", IgnoreFile)
	}
	return patterns, nil
}
