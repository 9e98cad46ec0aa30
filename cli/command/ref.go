package command

import (
	"sort"
	"strings"

	"github.com/fvbommel/sortorder"
	"github.com/pkg/errors"

	"krait/pkg/manifest"
)

// ParseRef splits a "name[@version]" argument.
func ParseRef(arg string) (name, version string) {
	name, version, _ = strings.Cut(arg, "@")
	return name, version
}

// ResolveVersion picks the version to operate on: the requested one if
// present, otherwise the highest version the manifest knows for the
// package (natural order, so 10.0.0 beats 9.0.0).
func ResolveVersion(m *manifest.Manifest, name, version string) (string, error) {
	versions, ok := m.Packages[name]
	if !ok || len(versions) == 0 {
		return "", errors.Errorf("package %q not found in manifest", name)
	}

	if version != "" {
		if _, ok := versions[version]; !ok {
			return "", errors.Errorf("package %q has no version %q", name, version)
		}
		return version, nil
	}

	all := make([]string, 0, len(versions))
	for v := range versions {
		all = append(all, v)
	}
	sort.Sort(sortorder.Natural(all))
	return all[len(all)-1], nil
}
