package exports

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const manifestFile = "manifest.json"

// Manifest tracks saved exports.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Retention   Retention `json:"retention"`
	Exports     []Entry   `json:"exports"`
}

type Retention struct {
	Days int `json:"days"`
}

// Entry describes one saved export file.
type Entry struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType,omitempty"`
	Size        int       `json:"size"`
	SavedAt     time.Time `json:"savedAt"`
}

func defaultManifest(retentionDays int) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Retention:   Retention{Days: retentionDays},
		Exports:     []Entry{},
	}
}

// ReadManifest loads the manifest under basePath. A missing manifest yields an empty one.
func ReadManifest(basePath string) (Manifest, error) {
	m, err := readManifest(filepath.Join(basePath, manifestFile), 0)
	if err != nil && os.IsNotExist(err) {
		return m, nil
	}
	return m, err
}

func readManifest(path string, retentionDays int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retentionDays), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retentionDays), err
	}
	if m.Exports == nil {
		m.Exports = []Entry{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.GeneratedAt = now.UTC()
	path := filepath.Join(basePath, manifestFile)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
