package digest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSumKnownValue(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "hi")

	sum, err := Sum(path)
	require.NoError(t, err)
	assert.Equal(t, "c22b5f9178342609428d6f51b2c5af4c0bde6a42", sum)
}

func TestSumStable(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "some content")

	first, err := Sum(path)
	require.NoError(t, err)
	second, err := Sum(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSumChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "some content")

	before, err := Sum(path)
	require.NoError(t, err)

	writeFile(t, dir, "a.txt", "some content!")
	after, err := Sum(path)
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestSumMissingFile(t *testing.T) {
	_, err := Sum(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSumReaderMatchesSum(t *testing.T) {
	content := strings.Repeat("Hello, World!", 1024)
	path := writeFile(t, t.TempDir(), "big.txt", content)

	fromFile, err := Sum(path)
	require.NoError(t, err)
	fromReader, err := SumReader(strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, fromFile, fromReader)
}
