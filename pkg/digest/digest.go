package digest

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Sum computes the SHA-1 content fingerprint of the file at path and
// returns it as a 40 character hex string. The file is streamed through
// the hasher, so arbitrarily large files are fine.
//
// SHA-1 is a deliberate, frozen choice: fingerprints are persisted in
// manifests and compared across runs, so the algorithm must never change.
func Sum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s for hashing", path)
	}
	defer f.Close()

	return SumReader(f)
}

// SumReader computes the SHA-1 hex fingerprint of everything readable
// from r.
func SumReader(r io.Reader) (string, error) {
	h := sha1.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", errors.Wrap(err, "failed to hash content")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
