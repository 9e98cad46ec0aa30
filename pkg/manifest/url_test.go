package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawFetchURL(t *testing.T) {
	tests := []struct {
		repo string
		want string
	}{
		{
			"github.com/m1ten/krait-pkgs",
			"https://raw.githubusercontent.com/m1ten/krait-pkgs/main/packages/foo/a.txt",
		},
		{
			"gitlab.com/group/project",
			"https://gitlab.com/group/project/-/raw/main/packages/foo/a.txt",
		},
		{
			"bitbucket.org/team/repo",
			"https://bitbucket.org/team/repo/raw/main/packages/foo/a.txt",
		},
		{
			"example.com/own/repo",
			"https://example.com/own/repo/main/packages/foo/a.txt",
		},
	}

	for _, tt := range tests {
		got := RawFetchURL(tt.repo, "main", "packages/foo/a.txt")
		assert.Equal(t, tt.want, got, tt.repo)
	}
}

func TestRawFetchURLDeterministic(t *testing.T) {
	first := RawFetchURL("github.com/a/b", "dev", "packages/x/y.txt")
	second := RawFetchURL("github.com/a/b", "dev", "packages/x/y.txt")
	assert.Equal(t, first, second)
}
