package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The ingest command must honor its own flags end to end: the worker
// count reaches the engine and per-document failures surface as a
// non-zero result without aborting the batch.
func TestIngestCommand_ReportsFailedDocuments(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	err := newApp().Run([]string{"indexit", "--data-dir", t.TempDir(),
		"ingest", "--workers", "2", missing})

	require.Error(t, err)
	assert.ErrorContains(t, err, "1 of 1 documents failed")
}

func TestIngestCommand_RequiresArguments(t *testing.T) {
	err := newApp().Run([]string{"indexit", "--data-dir", t.TempDir(), "ingest"})
	assert.ErrorContains(t, err, "at least one file")
}

func TestApp_RejectsUnknownLogLevel(t *testing.T) {
	err := newApp().Run([]string{"indexit", "--log-level", "loud", "count"})
	assert.ErrorContains(t, err, "invalid log level")
}
