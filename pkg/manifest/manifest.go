// Package manifest holds the typed model of a krait repository manifest,
// the merge engine that folds freshly scanned package data into it, and
// the generation walk that scans a checkout into manifest entries.
package manifest

import "github.com/pkg/errors"

// FileName is the manifest file kept at the repository root and mirrored
// into the host's local metadata directory.
const FileName = "manifest"

// Error kinds surfaced by generation. Callers match with errors.Is.
var (
	ErrNoPackagesDirectory      = errors.New("repository has no packages directory")
	ErrUnsupportedNestedContent = errors.New("package directories must not contain nested directories")
)

// Manifest describes every package published by one repository.
type Manifest struct {
	// Repo is the canonical remote location in host/owner/repo form.
	// Empty until resolved; once set it is preserved across runs.
	Repo string

	// LatestCommit is the repository HEAD at last generation, and
	// LastUpdate its committer timestamp in seconds since epoch.
	LatestCommit string
	LastUpdate   int64

	// Packages maps package name to version to the entries scanned for
	// that version. A version holds a list because several package
	// directories may declare the same name and version (platform
	// variants); order within the list is append order.
	Packages map[string]map[string][]PackageEntry
}

// PackageEntry is one scanned package directory for one version.
type PackageEntry struct {
	// Path of the package directory relative to the repository root.
	Path string `validate:"required"`
	// Commit that last modified that subpath.
	Commit string `validate:"omitempty,hexadecimal"`
	// Contents lists the files directly inside the directory.
	Contents []ContentFile
}

// ContentFile is one file inside a package directory.
type ContentFile struct {
	Name   string `validate:"required"`
	Path   string `validate:"required"`
	Digest string `validate:"omitempty,len=40,hexadecimal"`
	URL    string `validate:"omitempty,url"`
}

// New returns an empty manifest with initialized maps.
func New() *Manifest {
	return &Manifest{Packages: make(map[string]map[string][]PackageEntry)}
}

// Entries returns the entry list recorded for a package name and
// version, or nil if none is known.
func (m *Manifest) Entries(name, version string) []PackageEntry {
	versions, ok := m.Packages[name]
	if !ok {
		return nil
	}
	return versions[version]
}

// Clone returns a structurally independent deep copy.
func (m *Manifest) Clone() *Manifest {
	out := New()
	out.Repo = m.Repo
	out.LatestCommit = m.LatestCommit
	out.LastUpdate = m.LastUpdate
	for name, versions := range m.Packages {
		out.Packages[name] = make(map[string][]PackageEntry, len(versions))
		for version, entries := range versions {
			copied := make([]PackageEntry, len(entries))
			for i, entry := range entries {
				copied[i] = entry.clone()
			}
			out.Packages[name][version] = copied
		}
	}
	return out
}

func (e PackageEntry) clone() PackageEntry {
	out := e
	out.Contents = make([]ContentFile, len(e.Contents))
	copy(out.Contents, e.Contents)
	return out
}

// Codec converts between the typed model and its external script-syntax
// text form. Implementations must uphold the round-trip law: parsing a
// serialized manifest reproduces it field for field.
type Codec interface {
	Parse(text string) (*Manifest, error)
	Serialize(m *Manifest) (string, error)
}
