package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-tangra/go-tangra-sysreport/internal/collector"
)

const (
	filePrefix = "informe_"
	fileExt    = ".json"
	timeLayout = "20060102_150405"
)

// Store writes reports as JSON files into a directory.
type Store struct {
	dir string
}

// New creates dir if needed and returns a Store writing into it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the report directory.
func (s *Store) Dir() string { return s.dir }

// FileName returns the report file name for a collection time.
func FileName(t time.Time) string {
	return filePrefix + t.Local().Format(timeLayout) + fileExt
}

// Save writes rep as indented UTF-8 JSON and returns the file path. HTML
// and non-ASCII characters are written unescaped.
func (s *Store) Save(rep *collector.Report) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(rep); err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	path := filepath.Join(s.dir, FileName(rep.CollectedAt))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Purge deletes report files whose embedded timestamp is older than the
// given duration. Files not named like reports are left alone.
func (s *Store) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("list reports: %w", err)
	}

	cutoff := time.Now().Add(-olderThan)
	var n int64
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		ts, ok := reportTime(e.Name())
		if !ok || e.IsDir() || !ts.Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return n, fmt.Errorf("purge reports: %w", err)
		}
		n++
	}
	return n, nil
}

func reportTime(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileExt) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileExt)
	t, err := time.ParseInLocation(timeLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
