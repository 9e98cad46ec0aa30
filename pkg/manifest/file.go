package manifest

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Load reads and parses the manifest file at path with the given codec.
// A missing file yields (nil, nil) so callers can fall back to a fresh
// manifest.
func Load(path string, c Codec) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest at %s", path)
	}
	return c.Parse(string(data))
}

// Save serializes m with the given codec and atomically replaces the
// file at path: the text lands in a temp file first and is renamed into
// place, so a crash mid-write never leaves a truncated manifest.
func Save(path string, m *Manifest, c Codec) error {
	text, err := c.Serialize(m)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp manifest in %s", dir)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write manifest")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to write manifest")
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(err, "failed to write manifest")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "failed to replace manifest at %s", path)
	}
	return nil
}
