package command

import (
	"os"
	"path/filepath"

	"krait/pkg/config"
)

// IsInstalled reports whether any version of the named package is
// present in the local cache.
func IsInstalled(name string) bool {
	entries, err := os.ReadDir(filepath.Join(config.CacheDir(), name))
	if err != nil {
		return false
	}
	return len(entries) > 0
}

// InstalledVersions returns the cached versions of the named package in
// directory order, or nil when none are installed.
func InstalledVersions(name string) []string {
	entries, err := os.ReadDir(filepath.Join(config.CacheDir(), name))
	if err != nil {
		return nil
	}
	var versions []string
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}
	return versions
}
