package manifest

// Merge records entry under name and version, creating the nested maps
// as needed. It always appends: multiple distinct package directories
// may legitimately map to the same name and version, so deduplication is
// the caller's business (generation replaces same-path entries before
// appending, see replaceOrAppend). All other packages and versions are
// left structurally untouched.
func (m *Manifest) Merge(name, version string, entry PackageEntry) {
	if m.Packages == nil {
		m.Packages = make(map[string]map[string][]PackageEntry)
	}
	versions, ok := m.Packages[name]
	if !ok {
		versions = make(map[string][]PackageEntry)
		m.Packages[name] = versions
	}
	versions[version] = append(versions[version], entry)
}

// replaceOrAppend is the regeneration-time variant of Merge: an existing
// entry with the same path is replaced in place by the freshly scanned
// one, so rerunning generation against an unchanged repository is
// idempotent instead of growing duplicate entries.
func (m *Manifest) replaceOrAppend(name, version string, entry PackageEntry) {
	for i, existing := range m.Entries(name, version) {
		if existing.Path == entry.Path {
			m.Packages[name][version][i] = entry
			return
		}
	}
	m.Merge(name, version, entry)
}
