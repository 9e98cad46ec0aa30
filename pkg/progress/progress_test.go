package progress

import (
	"bytes"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledIndicatorIsInert(t *testing.T) {
	var buf bytes.Buffer
	var p Progress

	err := p.RunWithProgress("Fetching", func() error {
		time.Sleep(50 * time.Millisecond)
		return nil
	}, &buf)
	require.NoError(t, err)

	assert.Empty(t, buf.String())
	assert.Nil(t, p.progressIndicator)
}

func TestEnabledIndicatorTargetsStream(t *testing.T) {
	var buf bytes.Buffer
	p := Progress{ProgressIndicatorEnabled: true}

	p.StartProgressIndicatorWithLabel("Installing foo@1.0.0", &buf)
	require.NotNil(t, p.progressIndicator)
	assert.Equal(t, "Installing foo@1.0.0 ", p.progressIndicator.Prefix)
	assert.Equal(t, &buf, p.progressIndicator.Writer)

	// A second start relabels the running indicator in place.
	p.StartProgressIndicatorWithLabel("Installing bar@2.0.0", &buf)
	assert.Equal(t, "Installing bar@2.0.0 ", p.progressIndicator.Prefix)

	p.StopProgressIndicator()
	assert.Nil(t, p.progressIndicator)
}

func TestRunWithProgressStopsOnError(t *testing.T) {
	var buf bytes.Buffer
	p := Progress{ProgressIndicatorEnabled: true}

	boom := errors.New("fetch failed")
	err := p.RunWithProgress("Installing", func() error { return boom }, &buf)
	assert.Equal(t, boom, err)
	assert.Nil(t, p.progressIndicator)
}
