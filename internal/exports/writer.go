package exports

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/schedule-builder/internal/remote"
)

// Writer saves export payloads under basePath and keeps a manifest of what was saved.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// Save writes the export atomically and returns the path written.
// An identical file already on disk is left untouched.
func (w *Writer) Save(ctx context.Context, exp remote.Export) (string, error) {
	if w == nil {
		return "", errors.New("export writer not configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := sanitizeFilename(exp.Filename)
	if name == "" {
		return "", errors.New("export filename required")
	}

	target := ExportPath(w.basePath, name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}

	if existing, err := os.ReadFile(target); err != nil || !bytes.Equal(existing, exp.Data) {
		tmp := target + ".tmp"
		if err := os.WriteFile(tmp, exp.Data, 0o644); err != nil {
			return "", err
		}
		if err := os.Rename(tmp, target); err != nil {
			return "", err
		}
	}

	if err := w.updateManifest(Entry{
		Filename:    name,
		ContentType: exp.ContentType,
		Size:        len(exp.Data),
		SavedAt:     w.now().UTC(),
	}); err != nil {
		return "", err
	}
	return target, nil
}

func (w *Writer) updateManifest(entry Entry) error {
	manifestPath := filepath.Join(w.basePath, manifestFile)
	m, _ := readManifest(manifestPath, w.retentionDays)

	entries := make([]Entry, 0, len(m.Exports)+1)
	for _, e := range m.Exports {
		if e.Filename != entry.Filename {
			entries = append(entries, e)
		}
	}
	entries = append(entries, entry)

	m.Exports = w.pruneOldExports(entries)
	m.Retention.Days = w.retentionDays
	return writeManifest(w.basePath, m, w.now())
}

func (w *Writer) pruneOldExports(entries []Entry) []Entry {
	now := w.now().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.SavedAt.Before(cutoff) {
			_ = os.Remove(ExportPath(w.basePath, e.Filename))
			continue
		}
		keep = append(keep, e)
	}
	sort.Slice(keep, func(i, j int) bool {
		return keep[i].Filename < keep[j].Filename
	})
	return keep
}

// ExportPath builds the on-disk location of an export file.
func ExportPath(basePath, filename string) string {
	return filepath.Join(basePath, "files", filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) || name == ".." {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
