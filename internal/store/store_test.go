package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
)

func TestFileName(t *testing.T) {
	ts := time.Date(2026, 10, 15, 9, 4, 5, 0, time.Local)
	assert.Equal(t, "informe_20261015_090405.json", FileName(ts))
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	s, err := New(dir)
	require.NoError(t, err)

	rep := &collector.Report{
		CollectedAt: time.Date(2026, 10, 15, 9, 4, 5, 0, time.Local),
		User:        collector.Ok("josé"),
		Software:    collector.Ok(collector.SoftwareList{"Café <Pro> & Co"}),
		Token:       "abcDEF123456789",
	}

	path, err := s.Save(rep)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "informe_20261015_090405.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"user": "josé"`)
	assert.Contains(t, string(data), `"Café <Pro> & Co"`)
	assert.Contains(t, string(data), "\n    \"os\": ")

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "abcDEF123456789", doc["token"])
	assert.NotContains(t, doc, "error")

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestPurge(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	old := FileName(time.Now().Add(-48 * time.Hour))
	recent := FileName(time.Now().Add(-time.Hour))
	for _, name := range []string{old, recent, "notes.txt", "informe_garbage.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}

	n, err := s.Purge(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.NoFileExists(t, filepath.Join(dir, old))
	assert.FileExists(t, filepath.Join(dir, recent))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
	assert.FileExists(t, filepath.Join(dir, "informe_garbage.json"))
}
