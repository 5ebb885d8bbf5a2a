package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hupe1980/colgo/dtype"
)

const (
	ManifestFileName = "MANIFEST"
	CurrentFileName  = "CURRENT"
	ManifestVersion  = 1
)

// Manifest describes a dataset: the set of column files that make it up
// and the schema they share.
type Manifest struct {
	Version int          `json:"version"`
	ID      uint64       `json:"id"`
	Rows    uint64       `json:"rows"`
	Schema  []ColumnInfo `json:"schema"`
	Files   []FileInfo   `json:"files"`
}

// ColumnInfo describes one column of the dataset schema.
type ColumnInfo struct {
	Name string     `json:"name"`
	Type dtype.Type `json:"type"`
}

// FileInfo describes a single column file.
type FileInfo struct {
	Path string `json:"path"` // Relative to the dataset dir
	Rows uint64 `json:"rows"`
}

// ManifestStore manages the manifest file and atomic updates. The CURRENT
// file points at the latest manifest, so a partially written manifest is
// never visible to readers.
type ManifestStore struct {
	dir string
	mu  sync.Mutex
}

// NewManifestStore creates a manifest store rooted at dir.
func NewManifestStore(dir string) *ManifestStore {
	return &ManifestStore{dir: dir}
}

// Load loads the current manifest. A dataset dir without a CURRENT file
// yields an empty manifest.
func (s *ManifestStore) Load() (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := os.ReadFile(filepath.Join(s.dir, CurrentFileName))
	if os.IsNotExist(err) {
		return &Manifest{Version: ManifestVersion}, nil
	}
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, string(content)))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Version != ManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version: %d (expected %d)", m.Version, ManifestVersion)
	}
	return &m, nil
}

// Save atomically saves a new manifest and swings CURRENT to it.
func (s *ManifestStore) Save(m *Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.Version = ManifestVersion
	m.ID++

	filename := fmt.Sprintf("%s-%06d.json", ManifestFileName, m.ID)
	path := filepath.Join(s.dir, filename)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	if err := writeFileSync(path, data); err != nil {
		return err
	}
	if err := syncDir(s.dir); err != nil {
		return err
	}

	if err := writeFileSync(filepath.Join(s.dir, CurrentFileName), []byte(filename)); err != nil {
		return err
	}
	return syncDir(s.dir)
}

// writeFileSync writes data to path via a temp file, fsync and rename.
func writeFileSync(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
