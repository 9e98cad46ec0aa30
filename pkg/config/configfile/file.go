// Package configfile reads and writes the ~/.krait/config.json file.
package configfile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ConfigFile is the persisted host configuration.
type ConfigFile struct {
	Filename string `json:"-"` // Note: for internal use only

	// Repo is the default package repository in host/owner/repo form;
	// Mirror, when set, is tried before Repo.
	Repo   string `json:"repo,omitempty"`
	Mirror string `json:"mirror,omitempty"`
}

// New initializes an empty configuration file for the given filename.
func New(fn string) *ConfigFile {
	return &ConfigFile{Filename: fn}
}

// Load populates the receiver from its file.
func (cf *ConfigFile) Load() error {
	data, err := os.ReadFile(cf.Filename)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, cf); err != nil {
		return errors.Wrapf(err, "failed to parse %s", cf.Filename)
	}
	return nil
}

// Save writes the config back to disk, creating the directory first.
func (cf *ConfigFile) Save() error {
	if cf.Filename == "" {
		return errors.New("can't save config with empty filename")
	}
	if err := os.MkdirAll(filepath.Dir(cf.Filename), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(cf.Filename))
	}

	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(cf.Filename, append(data, '\n'), 0o600); err != nil {
		return errors.Wrapf(err, "failed to write %s", cf.Filename)
	}
	return nil
}
