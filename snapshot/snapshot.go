// Package snapshot persists the full cache state as a single JSON
// document and loads it back on startup.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/krisalay/search-cache/types"
)

const (
	// FileName is the snapshot file inside the storage directory.
	FileName = "search_cache.json"

	// FormatVersion identifies the on-disk schema.
	FormatVersion = "1.0"
)

// Stats holds the cumulative counters carried across restarts.
type Stats struct {
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Inserts     uint64 `json:"inserts"`
	Evictions   uint64 `json:"evictions"`
	Expirations uint64 `json:"expirations"`
}

// Snapshot is the on-disk document: one per cache instance, rewritten in
// full after every mutating operation.
type Snapshot struct {
	Version   string                       `json:"version"`
	Timestamp string                       `json:"timestamp"`
	Stats     Stats                        `json:"stats"`
	Entries   map[string]types.EntryRecord `json:"entries"`
}

// New returns an empty snapshot stamped with the given save time.
func New(now time.Time) *Snapshot {
	return &Snapshot{
		Version:   FormatVersion,
		Timestamp: now.Format(time.RFC3339),
		Entries:   make(map[string]types.EntryRecord),
	}
}

// File reads and writes snapshots at a fixed path.
type File struct {
	path string
}

// NewFile returns a File for the snapshot inside dir.
func NewFile(dir string) *File {
	return &File{path: filepath.Join(dir, FileName)}
}

// Path returns the snapshot file location.
func (f *File) Path() string {
	return f.path
}

// Load reads and parses the snapshot. A missing, unreadable or malformed
// file is an error here; the cache layer maps any load error to an empty
// cache rather than surfacing it.
func (f *File) Load() (*Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Entries == nil {
		s.Entries = make(map[string]types.EntryRecord)
	}
	return &s, nil
}

// Save writes the snapshot by writing a temp file next to the target and
// renaming it into place, so a crash mid-write never leaves a
// half-written document behind.
func (f *File) Save(s *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
