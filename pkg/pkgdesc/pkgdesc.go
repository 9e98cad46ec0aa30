// Package pkgdesc reads the per-package descriptor script. A descriptor
// is a small Lua file inside each package directory declaring, at
// minimum, the package version; everything else it sets is left for the
// install step and ignored here.
package pkgdesc

import (
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"krait/pkg/script"
)

// FileName is the descriptor file inside every package directory. It is
// never listed as package content.
const FileName = "manifest.lua"

// ErrMissing reports a package directory without a descriptor.
var ErrMissing = errors.New("package directory has no " + FileName)

// Descriptor is the parsed per-package descriptor.
type Descriptor struct {
	Version string
}

// Read loads and executes the descriptor in dir and extracts its
// declared version. The descriptor runs in the same no-capability
// sandbox as the manifest itself.
func Read(dir string) (*Descriptor, error) {
	src, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrMissing, dir)
		}
		return nil, errors.Wrapf(err, "failed to read descriptor in %s", dir)
	}
	return Parse(string(src), dir)
}

// Parse executes descriptor source and extracts the version field. The
// dir argument is only used for error context.
func Parse(src, dir string) (*Descriptor, error) {
	s := script.NewSandbox(0)
	defer s.Close()

	if err := s.Run(src); err != nil {
		return nil, errors.Wrapf(err, "failed to execute descriptor in %s", dir)
	}

	version, ok := script.AsString(s.Global("version"))
	if !ok || version == "" {
		return nil, errors.Errorf("descriptor in %s does not declare a version", dir)
	}
	if _, err := semver.StrictNewVersion(version); err != nil {
		return nil, errors.Wrapf(err, "descriptor in %s declares invalid version %q", dir, version)
	}

	return &Descriptor{Version: version}, nil
}
