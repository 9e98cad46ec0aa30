package command

import (
	"path/filepath"

	"github.com/pkg/errors"

	"krait/pkg/config"
	"krait/pkg/manifest"
	"krait/pkg/manifest/luacodec"
)

// LoadManifest finds and parses the nearest manifest: the one in cwd
// first, then the copy in the host metadata directory. The returned
// path is where the manifest was found.
func LoadManifest(cwd string) (*manifest.Manifest, string, error) {
	codec := luacodec.New()

	for _, path := range []string{
		filepath.Join(cwd, manifest.FileName),
		filepath.Join(config.Dir(), manifest.FileName),
	} {
		m, err := manifest.Load(path, codec)
		if err != nil {
			return nil, "", err
		}
		if m == nil {
			continue
		}
		if err := manifest.Validate(m); err != nil {
			return nil, "", errors.Wrapf(err, "manifest at %s is not usable", path)
		}
		return m, path, nil
	}
	return nil, "", errors.New("no manifest found, run 'krait generate' inside a package repository first")
}
