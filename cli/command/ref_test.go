package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krait/pkg/manifest"
)

func TestParseRef(t *testing.T) {
	name, version := ParseRef("foo@1.0.0")
	assert.Equal(t, "foo", name)
	assert.Equal(t, "1.0.0", version)

	name, version = ParseRef("foo")
	assert.Equal(t, "foo", name)
	assert.Empty(t, version)
}

func TestResolveVersion(t *testing.T) {
	m := manifest.New()
	for _, v := range []string{"1.0.0", "9.0.0", "10.0.0"} {
		m.Merge("foo", v, manifest.PackageEntry{Path: "packages/foo"})
	}

	got, err := ResolveVersion(m, "foo", "")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0", got)

	got, err = ResolveVersion(m, "foo", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", got)

	_, err = ResolveVersion(m, "foo", "2.0.0")
	require.Error(t, err)

	_, err = ResolveVersion(m, "missing", "")
	require.Error(t, err)
}
