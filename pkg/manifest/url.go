package manifest

import (
	"fmt"
	"strings"
)

// Raw fetch URL templates per hosting provider. The placeholders are
// owner/repo, branch and the repo-relative file path.
var rawURLTemplates = map[string]string{
	"github.com":    "https://raw.githubusercontent.com/%s/%s/%s",
	"gitlab.com":    "https://gitlab.com/%s/-/raw/%s/%s",
	"bitbucket.org": "https://bitbucket.org/%s/raw/%s/%s",
}

// RawFetchURL derives the fully qualified fetch URL for one content
// file. It is a pure function of the normalized repository location
// (host/owner/repo), the branch and the repo-relative path, so
// regeneration always reproduces the same URL.
func RawFetchURL(repo, branch, path string) string {
	host, rest, found := strings.Cut(repo, "/")
	if tmpl, ok := rawURLTemplates[host]; found && ok {
		return fmt.Sprintf(tmpl, rest, branch, path)
	}
	// Unknown hosts keep the generic scheme so hand-maintained repo
	// fields still yield a deterministic URL.
	return fmt.Sprintf("https://%s/%s/%s", repo, branch, path)
}
