package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

// FileStore appends health runs to a jsonl file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save appends record.
func (f *FileStore) Save(record domain.HistoryRecord) error {
	ensureID(&record)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.FilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = file.Write(append(data, '\n'))
	return err
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Records returns runs newest first, skipping malformed lines.
func (f *FileStore) Records(repo string, limit int) ([]domain.HistoryRecord, error) {
	f.mu.Lock()
	all, err := f.load()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	var records []domain.HistoryRecord
	// Walk backwards so equal timestamps keep the latest append first.
	for i := len(all) - 1; i >= 0; i-- {
		if repo == "" || all[i].RepoPath == repo {
			records = append(records, all[i])
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Latest returns the most recent run for repo, or nil when none exists.
func (f *FileStore) Latest(repo string) (*domain.HistoryRecord, error) {
	records, err := f.Records(repo, 1)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}

// Prune rewrites the file without runs recorded before cutoff.
func (f *FileStore) Prune(before time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all, err := f.load()
	if err != nil || len(all) == 0 {
		return 0, err
	}
	kept := all[:0]
	for _, rec := range all {
		if !rec.Timestamp.Before(before) {
			kept = append(kept, rec)
		}
	}
	removed := len(all) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	tmp := f.path + ".tmp"
	if err := writeJSONL(tmp, kept); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return 0, err
	}
	return removed, nil
}

// ExportJSON copies every run to dest as JSON lines, newest first.
func (f *FileStore) ExportJSON(dest string) error {
	records, err := f.Records("", 0)
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

// load reads all entries in append order (best-effort).
func (f *FileStore) load() ([]domain.HistoryRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var records []domain.HistoryRecord
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var rec domain.HistoryRecord
		if err := json.Unmarshal(line, &rec); err == nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

var _ ports.HistoryRepository = (*FileStore)(nil)
