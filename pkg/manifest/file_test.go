package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krait/pkg/manifest"
	"krait/pkg/manifest/luacodec"
)

func TestLoadMissingFile(t *testing.T) {
	m, err := manifest.Load(filepath.Join(t.TempDir(), manifest.FileName), luacodec.New())
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), manifest.FileName)
	codec := luacodec.New()

	m := manifest.New()
	m.Repo = "github.com/m1ten/krait-pkgs"
	m.LatestCommit = "0123456789abcdef0123456789abcdef01234567"
	m.LastUpdate = 1756500000
	m.Merge("foo", "1.0.0", manifest.PackageEntry{
		Path:     "packages/foo",
		Commit:   "0123456789abcdef0123456789abcdef01234567",
		Contents: []manifest.ContentFile{},
	})

	require.NoError(t, manifest.Save(path, m, codec))

	loaded, err := manifest.Load(path, codec)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, manifest.FileName)

	require.NoError(t, manifest.Save(path, manifest.New(), luacodec.New()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, manifest.FileName, entries[0].Name())
}
