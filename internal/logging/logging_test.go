// internal/logging/logging_test.go
package logging

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Options{Level: "debug"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log, err = New(&buf, Options{Level: "warn"})
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	_, err = New(&buf, Options{Level: "loud"})
	assert.Error(t, err)
}

func TestQuietCapsAtErrors(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Options{Level: "info", Quiet: true})
	require.NoError(t, err)
	log.Info("hidden")
	assert.Empty(t, buf.String())
	log.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestFileTee(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "run.log")
	log, err := New(&buf, Options{Level: "info", File: path})
	require.NoError(t, err)
	log.Info("both sinks")
	assert.Contains(t, buf.String(), "both sinks")
}
