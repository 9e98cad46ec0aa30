package configfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cf := New(path)
	cf.Repo = "github.com/m1ten/krait-pkgs"
	cf.Mirror = "github.com/mirror/krait-pkgs"
	require.NoError(t, cf.Save())

	loaded := New(path)
	require.NoError(t, loaded.Load())
	assert.Equal(t, cf.Repo, loaded.Repo)
	assert.Equal(t, cf.Mirror, loaded.Mirror)
}

func TestLoadMissingFile(t *testing.T) {
	cf := New(filepath.Join(t.TempDir(), "config.json"))
	err := cf.Load()
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	err := New(path).Load()
	require.Error(t, err)
	assert.False(t, os.IsNotExist(err))
}
