// Package config resolves where krait keeps per-host state: the config
// file, the package cache and the bin directory.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"krait/pkg/config/configfile"

	"github.com/sirupsen/logrus"
)

const (
	// EnvOverrideConfigDir overrides the metadata directory location.
	EnvOverrideConfigDir = "KRAIT_CONFIG"

	configFileName = "config.json"
	configFileDir  = ".krait"
)

var (
	initConfigDir = new(sync.Once)
	configDir     string
)

func resetConfigDir() {
	initConfigDir = new(sync.Once)
	configDir = ""
}

// Dir returns the directory krait metadata lives in, ~/.krait unless
// overridden through KRAIT_CONFIG or SetDir.
func Dir() string {
	initConfigDir.Do(func() {
		if configDir != "" {
			return
		}
		if dir := os.Getenv(EnvOverrideConfigDir); dir != "" {
			configDir = dir
			return
		}
		home, err := os.UserHomeDir()
		if err != nil {
			logrus.WithError(err).Debug("failed to resolve home directory")
		}
		configDir = filepath.Join(home, configFileDir)
	})
	return configDir
}

// SetDir overrides the metadata directory, e.g. from the --config flag.
func SetDir(dir string) {
	resetConfigDir()
	configDir = filepath.Clean(dir)
}

// CacheDir is where installed package content is kept.
func CacheDir() string {
	return filepath.Join(Dir(), "cache")
}

// BinDir is where package entry points get linked.
func BinDir() string {
	return filepath.Join(Dir(), "bin")
}

// Path returns the full path of the config file.
func Path() string {
	return filepath.Join(Dir(), configFileName)
}

// LoadDefaultConfigFile reads the config file from the metadata
// directory, falling back to an empty config when none exists yet.
func LoadDefaultConfigFile() *configfile.ConfigFile {
	cf := configfile.New(Path())
	if err := cf.Load(); err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Debugf("failed to load %s", Path())
		}
	}
	return cf
}
