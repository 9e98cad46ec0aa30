// Package fetch is the downstream consumer side of the manifest: it
// downloads content files from their recorded URLs and verifies the
// bytes against the recorded fingerprint before handing them over.
package fetch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/henvic/httpretty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"krait/pkg/digest"
	"krait/pkg/manifest"
)

// ErrDigestMismatch reports downloaded bytes whose fingerprint does not
// match the manifest.
var ErrDigestMismatch = errors.New("downloaded content does not match recorded digest")

// Client downloads and verifies package content.
type Client struct {
	http *http.Client
}

// NewClient returns a fetch client. With debug logging enabled every
// request and response is traced to stderr.
func NewClient() *Client {
	transport := http.DefaultTransport

	if logrus.GetLevel() == logrus.DebugLevel {
		logger := &httpretty.Logger{
			Time:           true,
			TLS:            false,
			RequestHeader:  true,
			RequestBody:    false,
			ResponseHeader: true,
			ResponseBody:   false,
		}
		logger.SetOutput(os.Stderr)
		transport = logger.RoundTripper(transport)
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   60 * time.Second,
		},
	}
}

// File downloads url into dest, creating parent directories as needed.
// The body lands in a temp file first and is renamed into place.
func (c *Client) File(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to build request for %s", url)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.Errorf("failed to fetch %s: %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, errors.Wrapf(err, "failed to create %s", filepath.Dir(dest))
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".fetch-*")
	if err != nil {
		return 0, errors.Wrap(err, "failed to create temp download file")
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return 0, errors.Wrapf(err, "failed to download %s", url)
	}
	if err := tmp.Close(); err != nil {
		return 0, errors.Wrapf(err, "failed to download %s", url)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, errors.Wrapf(err, "failed to move download into %s", dest)
	}
	return n, nil
}

// Content downloads one manifest content file into destDir under its
// recorded name and verifies its digest. A mismatch removes the file
// again and fails with ErrDigestMismatch.
func (c *Client) Content(ctx context.Context, file manifest.ContentFile, destDir string) error {
	dest := filepath.Join(destDir, file.Name)

	n, err := c.File(ctx, file.URL, dest)
	if err != nil {
		return err
	}
	logrus.Debugf("fetched %s (%d bytes) from %s", file.Name, n, file.URL)

	if file.Digest == "" {
		return nil
	}
	sum, err := digest.Sum(dest)
	if err != nil {
		return err
	}
	if sum != file.Digest {
		os.Remove(dest)
		return errors.Wrapf(ErrDigestMismatch, "%s: got %s, want %s", file.Name, sum, file.Digest)
	}
	return nil
}
