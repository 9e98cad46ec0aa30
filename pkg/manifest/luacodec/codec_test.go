package luacodec

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krait/pkg/manifest"
)

func sampleManifest() *manifest.Manifest {
	m := manifest.New()
	m.Repo = "github.com/m1ten/krait-pkgs"
	m.LatestCommit = "0123456789abcdef0123456789abcdef01234567"
	m.LastUpdate = 1756500000
	m.Merge("foo", "1.0.0", manifest.PackageEntry{
		Path:   "packages/foo",
		Commit: "89abcdef0123456789abcdef0123456789abcdef",
		Contents: []manifest.ContentFile{
			{
				Name:   "a.txt",
				Path:   "packages/foo/a.txt",
				Digest: "c22b5f9178342609428d6f51b2c5af4c0bde6a42",
				URL:    "https://raw.githubusercontent.com/m1ten/krait-pkgs/main/packages/foo/a.txt",
			},
			{
				Name:   "install.lua",
				Path:   "packages/foo/install.lua",
				Digest: "da39a3ee5e6b4b0d3255bfef95601890afd80709",
				URL:    "https://raw.githubusercontent.com/m1ten/krait-pkgs/main/packages/foo/install.lua",
			},
		},
	})
	m.Merge("foo", "2.0.0", manifest.PackageEntry{
		Path:     "packages/foo-v2",
		Commit:   "89abcdef0123456789abcdef0123456789abcdef",
		Contents: []manifest.ContentFile{},
	})
	m.Merge("bar", "0.1.0", manifest.PackageEntry{
		Path:     "packages/bar",
		Commit:   "aaaabbbbccccddddeeeeffff0000111122223333",
		Contents: []manifest.ContentFile{},
	})
	return m
}

func TestRoundTrip(t *testing.T) {
	m := sampleManifest()

	text, err := Serialize(m)
	require.NoError(t, err)

	parsed, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
}

func TestRoundTripEmptyManifest(t *testing.T) {
	m := manifest.New()

	text, err := Serialize(m)
	require.NoError(t, err)

	parsed, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
}

func TestRoundTripAwkwardStrings(t *testing.T) {
	m := manifest.New()
	m.Repo = "github.com/o\"wner/re\\po"
	m.Merge("weird", "1.0.0", manifest.PackageEntry{
		Path:   "packages/weird",
		Commit: "cafe",
		Contents: []manifest.ContentFile{
			{
				Name:   "tab\there.txt",
				Path:   "packages/weird/new\nline\x01\x312.txt",
				Digest: "da39a3ee5e6b4b0d3255bfef95601890afd80709",
				URL:    "https://example/\"quoted\"",
			},
		},
	})

	text, err := Serialize(m)
	require.NoError(t, err)

	parsed, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
}

func TestSerializeDeterministic(t *testing.T) {
	m := sampleManifest()

	first, err := Serialize(m)
	require.NoError(t, err)
	second, err := Serialize(m)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSerializeHeader(t *testing.T) {
	text, err := Serialize(manifest.New())
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	require.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[0], "--"))
	assert.True(t, strings.HasPrefix(lines[1], "--"))
	assert.Contains(t, lines[0], "DO NOT EDIT")
}

func TestSerializeNaturalVersionOrder(t *testing.T) {
	m := manifest.New()
	for _, v := range []string{"10.0.0", "2.0.0", "1.0.0"} {
		m.Merge("foo", v, manifest.PackageEntry{Path: "packages/foo"})
	}

	text, err := Serialize(m)
	require.NoError(t, err)

	i2 := strings.Index(text, `"2.0.0"`)
	i10 := strings.Index(text, `"10.0.0"`)
	require.Positive(t, i2)
	require.Positive(t, i10)
	assert.Less(t, i2, i10, "versions must sort naturally, not lexically")
}

func TestParseHandwrittenManifest(t *testing.T) {
	parsed, err := Parse(`
local m = krait.manifest
m.repo = "github.com/m1ten/krait-pkgs"
m.latest_commit = "abc123"
m.last_update = 1700000000
m.packages["foo"] = {}
m.packages["foo"]["1.0.0"] = {
	{ path = "packages/foo", commit = "abc123", contents = {
		{ name = "a.txt", path = "packages/foo/a.txt", digest = "ffff", url = "https://x/a.txt" },
	} },
}
`)
	require.NoError(t, err)

	assert.Equal(t, "github.com/m1ten/krait-pkgs", parsed.Repo)
	assert.Equal(t, int64(1700000000), parsed.LastUpdate)
	entries := parsed.Entries("foo", "1.0.0")
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Contents, 1)
	assert.Equal(t, "a.txt", entries[0].Contents[0].Name)
}

func TestParseReplacedManifestTable(t *testing.T) {
	parsed, err := Parse(`
krait.manifest = {
	repo = "github.com/somewhere/else",
	last_update = 5,
	packages = { foo = { ["1.0.0"] = { { path = "packages/foo" } } } },
}
`)
	require.NoError(t, err)
	assert.Equal(t, "github.com/somewhere/else", parsed.Repo)
	require.Len(t, parsed.Entries("foo", "1.0.0"), 1)
}

func TestParseIgnoresUnrepresentableValues(t *testing.T) {
	parsed, err := Parse(`
local m = krait.manifest
m.repo = "github.com/m1ten/krait-pkgs"
m.helper = function() return 1 end
m.packages["foo"] = {}
m.packages["foo"]["1.0.0"] = {
	{ path = "packages/foo", commit = function() end },
}
`)
	require.NoError(t, err)
	assert.Equal(t, "github.com/m1ten/krait-pkgs", parsed.Repo)
	entries := parsed.Entries("foo", "1.0.0")
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Commit)
}

func TestParseCoercesNumbers(t *testing.T) {
	parsed, err := Parse(`
local m = krait.manifest
m.latest_commit = 42
m.last_update = "1700000000"
`)
	require.NoError(t, err)
	assert.Equal(t, "42", parsed.LatestCommit)
	assert.Equal(t, int64(1700000000), parsed.LastUpdate)
}

func TestParseToleratesDeepNesting(t *testing.T) {
	var b strings.Builder
	b.WriteString("local t = {}\nlocal cur = t\n")
	b.WriteString("for i = 1, 2000 do cur.next = {} cur = cur.next end\n")
	b.WriteString("krait.manifest.extra = t\n")
	b.WriteString(`krait.manifest.repo = "github.com/deep/nest"` + "\n")

	parsed, err := Parse(b.String())
	require.NoError(t, err)
	assert.Equal(t, "github.com/deep/nest", parsed.Repo)
}

func TestParseWrongFieldTypes(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"repo table", `krait.manifest.repo = {}`},
		{"last_update bool", `krait.manifest.last_update = true`},
		{"packages string", `krait.manifest.packages = "nope"`},
		{"versions string", `krait.manifest.packages["foo"] = "1.0.0"`},
		{"entries string", `krait.manifest.packages["foo"] = { ["1.0.0"] = "entry" }`},
		{"entry commit table", `krait.manifest.packages["foo"] = { ["1.0.0"] = { { commit = {} } } }`},
		{"root replaced by string", `krait.manifest = "nope"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestParseScriptFailure(t *testing.T) {
	_, err := Parse(`error("boom")`)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseRunawayScript(t *testing.T) {
	c := &Codec{ExecTimeout: 50 * time.Millisecond}
	_, err := c.Parse(`while true do end`)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "script execution exceeded limit", perr.Detail)
}
